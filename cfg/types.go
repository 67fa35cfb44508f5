package cfg

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Alphabet is a finite set of Unicode code points usable as terminal
// symbols. Membership, not order, is what matters; iteration order of a
// Runes() call is always sorted so that every consumer sees a deterministic
// sequence.
type Alphabet map[rune]struct{}

// NewAlphabet builds an Alphabet from a list of runes.
func NewAlphabet(runes ...rune) Alphabet {
	a := make(Alphabet, len(runes))
	for _, r := range runes {
		a[r] = struct{}{}
	}
	return a
}

// Contains reports whether r is a member of the alphabet.
func (a Alphabet) Contains(r rune) bool {
	_, ok := a[r]
	return ok
}

// Runes returns the alphabet's members in ascending code-point order.
func (a Alphabet) Runes() []rune {
	rs := make([]rune, 0, len(a))
	for r := range a {
		rs = append(rs, r)
	}
	slices.Sort(rs)
	return rs
}

// SymbolKind tags a Symbol as terminal or nonterminal. Go has no sum types,
// so Symbol is a small tagged struct instead of a class hierarchy.
type SymbolKind int8

const (
	// Terminal symbols carry a single alphabet code point.
	Terminal SymbolKind = iota
	// Nonterminal symbols carry a grammar-internal name rune.
	Nonterminal
)

// Symbol is either a Terminal(rune) or a Nonterminal(rune). Both terminals
// and nonterminals are single code points — nonterminals just live
// outside the declared alphabet.
type Symbol struct {
	Kind SymbolKind
	Rune rune
}

// NewTerminal builds a terminal symbol.
func NewTerminal(r rune) Symbol { return Symbol{Kind: Terminal, Rune: r} }

// NewNonterminal builds a nonterminal symbol.
func NewNonterminal(r rune) Symbol { return Symbol{Kind: Nonterminal, Rune: r} }

// IsTerminal reports whether s is a terminal symbol.
func (s Symbol) IsTerminal() bool { return s.Kind == Terminal }

// IsNonterminal reports whether s is a nonterminal symbol.
func (s Symbol) IsNonterminal() bool { return s.Kind == Nonterminal }

func (s Symbol) String() string { return string(s.Rune) }

// Production is one grammar rule: LHS -> RHS (RHS may be empty, denoting an
// epsilon production).
type Production struct {
	LHS rune
	RHS []Symbol
}

// IsEpsilon reports whether this production's RHS is empty.
func (p Production) IsEpsilon() bool { return len(p.RHS) == 0 }

func (p Production) String() string {
	var b strings.Builder
	b.WriteRune(p.LHS)
	b.WriteString(" -> ")
	if p.IsEpsilon() {
		b.WriteRune('ε')
	} else {
		for i, s := range p.RHS {
			if i > 0 {
				b.WriteRune(' ')
			}
			b.WriteString(s.String())
		}
	}
	return b.String()
}

// CFG is a context-free grammar: an alphabet of terminals, a set of
// nonterminals, a distinguished start symbol and an ordered list of
// productions. Production order is preserved (it matters for
// deterministic output such as silly-rename's encounter order).
type CFG struct {
	Alphabet     Alphabet
	Nonterminals map[rune]struct{}
	Start        rune
	Productions  []Production
}

// NewCFG builds an empty grammar over the given alphabet and start symbol.
func NewCFG(alphabet Alphabet, start rune) *CFG {
	return &CFG{
		Alphabet:     alphabet,
		Nonterminals: map[rune]struct{}{start: {}},
		Start:        start,
	}
}

// AddNonterminal registers n as a nonterminal, idempotently.
func (g *CFG) AddNonterminal(n rune) {
	if g.Nonterminals == nil {
		g.Nonterminals = map[rune]struct{}{}
	}
	g.Nonterminals[n] = struct{}{}
}

// AddProduction appends a production, registering its LHS as a nonterminal.
func (g *CFG) AddProduction(p Production) {
	g.AddNonterminal(p.LHS)
	g.Productions = append(g.Productions, p)
}

// IsNonterminal reports whether n is a declared nonterminal of g.
func (g *CFG) IsNonterminal(n rune) bool {
	_, ok := g.Nonterminals[n]
	return ok
}

// ProductionsFor returns, in declaration order, the productions whose LHS is n.
func (g *CFG) ProductionsFor(n rune) []Production {
	var out []Production
	for _, p := range g.Productions {
		if p.LHS == n {
			out = append(out, p)
		}
	}
	return out
}

// SortedNonterminals returns the grammar's nonterminals in ascending
// code-point order, for deterministic fixed-point iteration.
func (g *CFG) SortedNonterminals() []rune {
	ns := make([]rune, 0, len(g.Nonterminals))
	for n := range g.Nonterminals {
		ns = append(ns, n)
	}
	slices.Sort(ns)
	return ns
}

// String renders g in the same "N -> a b | c" textual form cfg/cfgtext
// accepts, one declaration per nonterminal, in order of first appearance
// as an LHS.
func (g *CFG) String() string {
	var b strings.Builder
	seen := map[rune]bool{}
	order := []rune{}
	for _, p := range g.Productions {
		if !seen[p.LHS] {
			seen[p.LHS] = true
			order = append(order, p.LHS)
		}
	}
	for _, n := range order {
		b.WriteRune(n)
		b.WriteString(" -> ")
		prods := g.ProductionsFor(n)
		for i, p := range prods {
			if i > 0 {
				b.WriteString(" | ")
			}
			if p.IsEpsilon() {
				b.WriteRune('ε')
				continue
			}
			for j, s := range p.RHS {
				if j > 0 {
					b.WriteRune(' ')
				}
				b.WriteString(s.String())
			}
		}
		b.WriteRune('\n')
	}
	return b.String()
}
