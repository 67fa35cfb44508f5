package xform

import (
	"github.com/pillmayer-lab/cflang/cfg"
	"golang.org/x/exp/slices"
)

// cnfBase is the first code point ToCNF uses for its fresh helper
// nonterminals (terminal wrappers and binarisation chain symbols).
const cnfBase = '\U000EA000'

// ToCNF converts g to weak Chomsky Normal Form: every production has the
// shape A -> BC, A -> a, or (only at the start symbol) A -> ε. This is the
// classical three-pass construction (eliminate epsilon, eliminate unit
// productions, then binarise/terminal-wrap), tailored to allow a single
// epsilon production surviving at the start symbol rather than requiring
// language-preserving epsilon elimination to fail on nullable languages.
func ToCNF(g *cfg.CFG) *cfg.CFG {
	next := rune(cnfBase)
	fresh := func() rune {
		r := next
		next++
		return r
	}

	work := &cfg.CFG{Alphabet: g.Alphabet, Start: g.Start, Nonterminals: map[rune]struct{}{}}
	for n := range g.Nonterminals {
		work.AddNonterminal(n)
	}
	work.Productions = append(work.Productions, g.Productions...)

	startNullable := isNullable(work, g.Start)

	work = eliminateEpsilon(work)
	work = eliminateUnit(work)

	if startNullable {
		work.AddProduction(cfg.Production{LHS: work.Start})
	}

	out := &cfg.CFG{Alphabet: g.Alphabet, Start: work.Start, Nonterminals: map[rune]struct{}{}}
	for n := range work.Nonterminals {
		out.AddNonterminal(n)
	}

	// Wrap any terminal appearing alongside another symbol in a
	// length>=2 RHS with a fresh unit nonterminal, then binarise RHSs of
	// length >= 3.
	termWrap := map[rune]rune{}
	wrapTerminal := func(r rune) rune {
		if nt, ok := termWrap[r]; ok {
			return nt
		}
		nt := fresh()
		termWrap[r] = nt
		out.AddProduction(cfg.Production{LHS: nt, RHS: []cfg.Symbol{cfg.NewTerminal(r)}})
		return nt
	}

	for _, p := range work.Productions {
		if len(p.RHS) <= 1 {
			out.AddProduction(p)
			continue
		}
		// stage 1: wrap bare terminals
		rhs := make([]cfg.Symbol, len(p.RHS))
		for i, s := range p.RHS {
			if s.IsTerminal() {
				rhs[i] = cfg.NewNonterminal(wrapTerminal(s.Rune))
			} else {
				rhs[i] = s
			}
		}
		// stage 2: binarise
		for len(rhs) > 2 {
			tail := fresh()
			tailRHS := []cfg.Symbol{rhs[len(rhs)-2], rhs[len(rhs)-1]}
			out.AddProduction(cfg.Production{LHS: tail, RHS: tailRHS})
			rhs = append(rhs[:len(rhs)-2], cfg.NewNonterminal(tail))
		}
		out.AddProduction(cfg.Production{LHS: p.LHS, RHS: rhs})
	}
	for nt := range termWrap {
		out.AddNonterminal(nt)
	}
	// eliminateEpsilon drops every ε production it sees, including a
	// nonterminal's only production if that production was ε -> the
	// nonterminal survives in out.Nonterminals with nothing on its LHS.
	// pruneUseless (shared with Intersect's Bar-Hillel cleanup) strips
	// exactly that: nonterminals with no surviving production, and
	// anything only reachable through them.
	return pruneUseless(out)
}

// prodKey builds a dedup key for a production, used to keep the epsilon-
// and unit-elimination passes from emitting the same rewritten production
// twice.
func prodKey(p cfg.Production) string {
	var b []byte
	b = append(b, []byte(string(p.LHS))...)
	b = append(b, '|')
	for _, s := range p.RHS {
		if s.IsTerminal() {
			b = append(b, 'T')
		} else {
			b = append(b, 'N')
		}
		b = append(b, []byte(string(s.Rune))...)
	}
	return string(b)
}

func isNullable(g *cfg.CFG, n rune) bool {
	seen := map[rune]bool{}
	var rec func(n rune) bool
	rec = func(n rune) bool {
		if seen[n] {
			return false
		}
		seen[n] = true
		defer delete(seen, n)
		for _, p := range g.ProductionsFor(n) {
			if p.IsEpsilon() {
				return true
			}
			all := true
			for _, s := range p.RHS {
				if s.IsTerminal() || !rec(s.Rune) {
					all = false
					break
				}
			}
			if all {
				return true
			}
		}
		return false
	}
	return rec(n)
}

// eliminateEpsilon drops all epsilon productions, adding, for every
// production containing a nullable nonterminal, every way of omitting
// occurrences of it (never producing an all-omitted empty RHS at the same
// production, since that regenerates the epsilon rule we just removed).
func eliminateEpsilon(g *cfg.CFG) *cfg.CFG {
	nullable := map[rune]bool{}
	for n := range g.Nonterminals {
		if isNullable(g, n) {
			nullable[n] = true
		}
	}

	out := &cfg.CFG{Alphabet: g.Alphabet, Start: g.Start, Nonterminals: map[rune]struct{}{}}
	for n := range g.Nonterminals {
		out.AddNonterminal(n)
	}

	seen := map[string]bool{}
	addUnique := func(p cfg.Production) {
		key := prodKey(p)
		if !seen[key] {
			seen[key] = true
			out.AddProduction(p)
		}
	}

	for _, p := range g.Productions {
		if p.IsEpsilon() {
			continue
		}
		nullableIdx := []int{}
		for i, s := range p.RHS {
			if s.IsNonterminal() && nullable[s.Rune] {
				nullableIdx = append(nullableIdx, i)
			}
		}
		for mask := 0; mask < (1 << len(nullableIdx)); mask++ {
			omit := map[int]bool{}
			for bit, idx := range nullableIdx {
				if mask&(1<<bit) != 0 {
					omit[idx] = true
				}
			}
			var rhs []cfg.Symbol
			for i, s := range p.RHS {
				if !omit[i] {
					rhs = append(rhs, s)
				}
			}
			if len(rhs) == 0 {
				continue // don't regenerate epsilon here
			}
			addUnique(cfg.Production{LHS: p.LHS, RHS: rhs})
		}
	}
	return out
}

// eliminateUnit removes productions of the shape A -> B (B a nonterminal),
// replacing them with A -> (B's own RHS), transitively.
func eliminateUnit(g *cfg.CFG) *cfg.CFG {
	out := &cfg.CFG{Alphabet: g.Alphabet, Start: g.Start, Nonterminals: map[rune]struct{}{}}
	for n := range g.Nonterminals {
		out.AddNonterminal(n)
	}

	unitClosure := func(n rune) map[rune]bool {
		reach := map[rune]bool{n: true}
		stack := []rune{n}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, p := range g.ProductionsFor(cur) {
				if len(p.RHS) == 1 && p.RHS[0].IsNonterminal() {
					b := p.RHS[0].Rune
					if !reach[b] {
						reach[b] = true
						stack = append(stack, b)
					}
				}
			}
		}
		return reach
	}

	seen := map[string]bool{}
	addUnique := func(p cfg.Production) {
		key := prodKey(p)
		if !seen[key] {
			seen[key] = true
			out.AddProduction(p)
		}
	}

	for _, n := range g.SortedNonterminals() {
		reach := unitClosure(n)
		bs := make([]rune, 0, len(reach))
		for b := range reach {
			bs = append(bs, b)
		}
		slices.Sort(bs)
		for _, b := range bs {
			for _, p := range g.ProductionsFor(b) {
				if len(p.RHS) == 1 && p.RHS[0].IsNonterminal() {
					continue // unit production itself, don't re-add
				}
				addUnique(cfg.Production{LHS: n, RHS: p.RHS})
			}
		}
	}
	return out
}
