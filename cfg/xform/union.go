package xform

import "github.com/pillmayer-lab/cflang/cfg"

// unionStart is the fresh start symbol Union introduces.
const unionStart = '\U000E0001'

// unionNamespaceBase is the first code point Union assigns to b's
// nonterminals. b's own names are only ever "small" originals or the
// plane-14 ranges the earlier pipeline stages (singletonStart,
// intersectBase, cnfBase) mint, all of which stay below this base, so
// allocating b's fresh names sequentially from here — rather than adding
// a fixed offset to b's existing values — keeps every renamed nonterminal
// a valid, in-range Unicode code point regardless of what b's names were.
const unionNamespaceBase = '\U000F0000'

// Union builds a grammar for L(a) ∪ L(b): a's nonterminals are kept as-is,
// b's nonterminals are remapped into a disjoint code-point range starting
// at unionNamespaceBase, and a fresh start symbol S' -> S_a | S_b is
// added. a and b are assumed to share the same alphabet.
func Union(a, b *cfg.CFG) *cfg.CFG {
	shifted := map[rune]rune{}
	next := rune(unionNamespaceBase)
	shift := func(n rune) rune {
		if r, ok := shifted[n]; ok {
			return r
		}
		r := next
		next++
		shifted[n] = r
		return r
	}

	out := cfg.NewCFG(a.Alphabet, unionStart)
	out.AddProduction(cfg.Production{LHS: unionStart, RHS: []cfg.Symbol{cfg.NewNonterminal(a.Start)}})
	out.AddProduction(cfg.Production{LHS: unionStart, RHS: []cfg.Symbol{cfg.NewNonterminal(shift(b.Start))}})

	for _, p := range a.Productions {
		out.AddProduction(p)
	}
	for _, p := range b.Productions {
		np := cfg.Production{LHS: shift(p.LHS)}
		for _, s := range p.RHS {
			if s.IsNonterminal() {
				np.RHS = append(np.RHS, cfg.NewNonterminal(shift(s.Rune)))
			} else {
				np.RHS = append(np.RHS, s)
			}
		}
		out.AddProduction(np)
	}
	return out
}
