package xform

import "github.com/pillmayer-lab/cflang/cfg"

// kBaseUnicode is the first code point silly-rename assigns, chosen from
// the Miscellaneous Symbols and Pictographs block so renamed grammars are
// visibly unrelated to their source at a glance.
const kBaseUnicode = 0x1F300

// SillyRename deterministically remaps every nonterminal of g to a fresh
// code point starting at kBaseUnicode, assigned in the order nonterminals
// are first encountered while scanning productions left to right (LHS
// before RHS, production order as declared) — then finally the start
// symbol.
func SillyRename(g *cfg.CFG) *cfg.CFG {
	replacements := map[rune]rune{}
	next := rune(kBaseUnicode)
	nameFor := func(n rune) rune {
		if r, ok := replacements[n]; ok {
			return r
		}
		r := next
		next++
		replacements[n] = r
		return r
	}

	for _, p := range g.Productions {
		nameFor(p.LHS)
		for _, s := range p.RHS {
			if s.IsNonterminal() {
				nameFor(s.Rune)
			}
		}
	}
	nameFor(g.Start)

	out := cfg.NewCFG(g.Alphabet, replacements[g.Start])
	for _, p := range g.Productions {
		np := cfg.Production{LHS: replacements[p.LHS]}
		for _, s := range p.RHS {
			if s.IsNonterminal() {
				np.RHS = append(np.RHS, cfg.NewNonterminal(replacements[s.Rune]))
			} else {
				np.RHS = append(np.RHS, s)
			}
		}
		out.AddProduction(np)
	}
	return out
}
