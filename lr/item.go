package lr

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pillmayer-lab/cflang/lr/iteratable"
)

// Production is one grammar rule, tagged with its declaration index within
// its nonterminal's Rule list — the index a reduce action needs to look up
// which Rule (and hence which semantic action) produced it.
type Production struct {
	Nonterminal string
	Items       []string
	Index       int
}

// Less orders productions lexicographically on (Nonterminal, Items, Index),
// a total order over productions.
func (p Production) Less(o Production) bool {
	if p.Nonterminal != o.Nonterminal {
		return p.Nonterminal < o.Nonterminal
	}
	n := len(p.Items)
	if len(o.Items) < n {
		n = len(o.Items)
	}
	for i := 0; i < n; i++ {
		if p.Items[i] != o.Items[i] {
			return p.Items[i] < o.Items[i]
		}
	}
	if len(p.Items) != len(o.Items) {
		return len(p.Items) < len(o.Items)
	}
	return p.Index < o.Index
}

func (p Production) key() string {
	return p.Nonterminal + "\x00" + strings.Join(p.Items, "\x00") + "\x00#" + strconv.Itoa(p.Index)
}

// Item is an LR(0) item: a Production together with a dot position marking
// how much of the RHS has already been matched.
type Item struct {
	Production Production
	Dot        int
}

// Key implements iteratable.Element.
func (it Item) Key() string {
	return it.Production.key() + "\x00@" + strconv.Itoa(it.Dot)
}

// Equals implements iteratable.Element.
func (it Item) Equals(other iteratable.Element) bool {
	o, ok := other.(Item)
	return ok && o.Key() == it.Key()
}

// SymbolAtDot returns the symbol immediately after the dot, or ("", false)
// if the dot is at the end of the production (a reduce item).
func (it Item) SymbolAtDot() (string, bool) {
	if it.Dot < len(it.Production.Items) {
		return it.Production.Items[it.Dot], true
	}
	return "", false
}

// IsReduceItem reports whether the dot has reached the end of the production.
func (it Item) IsReduceItem() bool { return it.Dot >= len(it.Production.Items) }

// IsHaltItem reports whether it is the accepting item of the synthetic
// start production (dot after the sole RHS symbol of StartSymbol -> S).
func (it Item) IsHaltItem() bool {
	return it.Production.Nonterminal == StartSymbol && it.IsReduceItem()
}

// Advance returns the item with its dot moved one position to the right.
func (it Item) Advance() Item {
	return Item{Production: it.Production, Dot: it.Dot + 1}
}

// itemFromProduction returns the initial (dot-at-zero) item for p.
func itemFromProduction(p Production) Item { return Item{Production: p, Dot: 0} }

// closure computes the LR(0) closure of a seed set of items: for every
// item with the dot immediately before a nonterminal N, add N's initial
// items, repeating to a fixed point.
func closure(g *Grammar, seed *iteratable.Set) *iteratable.Set {
	result := seed.Copy()
	worklist := result.Values()
	for len(worklist) > 0 {
		it := worklist[0].(Item)
		worklist = worklist[1:]
		sym, ok := it.SymbolAtDot()
		if !ok || !g.IsNonterminal(sym) {
			continue
		}
		for i, r := range g.Rules(sym) {
			ni := itemFromProduction(Production{Nonterminal: sym, Items: r.Terms, Index: i})
			if !result.Contains(ni) {
				result.Add(ni)
				worklist = append(worklist, ni)
			}
		}
	}
	return result
}

// successorsOf partitions items by the symbol immediately after the dot,
// applying the closure to each shifted item set — successorsOf(items)[X]
// is the closure of "shift every item in items over X".
func successorsOf(g *Grammar, items *iteratable.Set) map[string]*iteratable.Set {
	byShift := map[string]*iteratable.Set{}
	for _, e := range items.Values() {
		it := e.(Item)
		sym, ok := it.SymbolAtDot()
		if !ok {
			continue
		}
		if byShift[sym] == nil {
			byShift[sym] = iteratable.NewSet()
		}
		byShift[sym].Add(it.Advance())
	}
	out := make(map[string]*iteratable.Set, len(byShift))
	for sym, seed := range byShift {
		out[sym] = closure(g, seed)
	}
	return out
}

// shiftSymbols returns the symbols successorsOf partitions on, sorted for
// deterministic iteration.
func shiftSymbols(m map[string]*iteratable.Set) []string {
	out := make([]string, 0, len(m))
	for s := range m {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
