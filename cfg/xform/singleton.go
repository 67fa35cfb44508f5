package xform

import "github.com/pillmayer-lab/cflang/cfg"

// singletonStart is the start symbol of the grammar Singleton produces. It
// is a plane-14 code point unlikely to collide with a caller's own
// nonterminal naming.
const singletonStart = '\U000E0000'

// Singleton builds S -> s1 | s2 | ... | sn, one alternative per distinct
// string in strings, each alternative a literal sequence of terminals
// drawn from alphabet.
func Singleton(strings []string, alphabet cfg.Alphabet) *cfg.CFG {
	g := cfg.NewCFG(alphabet, singletonStart)
	for _, s := range strings {
		p := cfg.Production{LHS: singletonStart}
		for _, r := range s {
			p.RHS = append(p.RHS, cfg.NewTerminal(r))
		}
		g.AddProduction(p)
	}
	return g
}
