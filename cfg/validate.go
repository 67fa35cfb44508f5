package cfg

import "github.com/pillmayer-lab/cflang/cflang"

// Validate checks g's structural invariants, run after every
// transformation step in the obfuscation pipeline:
//
//  1. every terminal symbol appearing in a production RHS is a member of
//     g.Alphabet;
//  2. every nonterminal symbol appearing in a production RHS is a member
//     of g.Nonterminals;
//  3. g.Start is a member of g.Nonterminals;
//  4. the set of LHS symbols across all productions equals g.Nonterminals
//     exactly (no declared nonterminal without a production, no LHS that
//     wasn't declared).
//
// These are the "fatal, abort the operation" class of diagnostic per the
// module's error taxonomy — callers should treat a non-nil return as
// unrecoverable for the grammar in hand, not something to retry.
func Validate(g *CFG) error {
	if !g.IsNonterminal(g.Start) {
		return cflang.NewError(cflang.StructuralInvariant,
			"start symbol %q is not a declared nonterminal", string(g.Start))
	}

	lhsSet := map[rune]struct{}{}
	for _, p := range g.Productions {
		lhsSet[p.LHS] = struct{}{}
		if !g.IsNonterminal(p.LHS) {
			return cflang.NewError(cflang.StructuralInvariant,
				"production LHS %q is not a declared nonterminal", string(p.LHS))
		}
		for _, s := range p.RHS {
			if s.IsTerminal() {
				if !g.Alphabet.Contains(s.Rune) {
					return cflang.NewError(cflang.AlphabetViolation,
						"terminal %q in production %s is outside the alphabet", string(s.Rune), p.String())
				}
			} else {
				if !g.IsNonterminal(s.Rune) {
					return cflang.NewError(cflang.StructuralInvariant,
						"nonterminal %q in production %s was never declared", string(s.Rune), p.String())
				}
			}
		}
	}

	for n := range g.Nonterminals {
		if _, ok := lhsSet[n]; !ok {
			return cflang.NewError(cflang.StructuralInvariant,
				"nonterminal %q is declared but has no production", string(n))
		}
	}
	for n := range lhsSet {
		if !g.IsNonterminal(n) {
			return cflang.NewError(cflang.StructuralInvariant,
				"production LHS %q was never declared a nonterminal", string(n))
		}
	}
	return nil
}
