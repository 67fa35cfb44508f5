package lr

// eofMarker stands for end-of-input in a FOLLOW set.
const eofMarker = "\x00$"

// LRAnalysis holds the nullable set and the FIRST/FOLLOW sets computed for
// a Grammar.
type LRAnalysis struct {
	g        *Grammar
	nullable map[string]bool
	first    map[string]map[string]bool
	follow   map[string]map[string]bool
}

// Grammar returns the analysed grammar.
func (ga *LRAnalysis) Grammar() *Grammar { return ga.g }

// Nullable reports whether nonterminal n can derive ε.
func (ga *LRAnalysis) Nullable(n string) bool { return ga.nullable[n] }

// First returns FIRST(n) as a sorted slice of terminal names (never
// includes the epsilon marker; use Nullable for that).
func (ga *LRAnalysis) First(n string) []string { return sortedKeys(ga.first[n]) }

// Follow returns FOLLOW(n) as a sorted slice of terminal names, using
// "$" to denote end-of-input.
func (ga *LRAnalysis) Follow(n string) []string {
	set := map[string]bool{}
	for k := range ga.follow[n] {
		if k == eofMarker {
			set["$"] = true
		} else {
			set[k] = true
		}
	}
	return sortedKeys(set)
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// Analyze computes nullable/FIRST/FOLLOW for g.
func Analyze(g *Grammar) *LRAnalysis {
	tracer().Debugf("lr: analyzing grammar %q (%d nonterminals)", g.Name(), len(g.Nonterminals()))
	ga := &LRAnalysis{g: g}
	ga.nullable = computeNullable(g)
	ga.first = computeFirst(g, ga.nullable)
	ga.follow = computeFollow(g, ga.nullable, ga.first)
	tracer().Debugf("lr: analysis done, %d nullable nonterminals", len(ga.nullable))
	return ga
}

// computeNullable is a fixed point over "every RHS symbol is nullable"
// (vacuously true for an empty RHS).
func computeNullable(g *Grammar) map[string]bool {
	nullable := map[string]bool{}
	for round, changed := 0, true; changed; round++ {
		changed = false
		for _, nt := range g.Nonterminals() {
			if nullable[nt] {
				continue
			}
			for _, r := range g.Rules(nt) {
				allNullable := true
				for _, sym := range r.Terms {
					if !nullable[sym] {
						allNullable = false
						break
					}
				}
				if allNullable {
					nullable[nt] = true
					changed = true
					break
				}
			}
		}
		tracer().Debugf("lr: nullable fixed-point round %d, changed=%v", round, changed)
	}
	return nullable
}

// computeFirst is the standard fixed point: FIRST(terminal) = {terminal};
// FIRST(A) accumulates FIRST of each RHS symbol until a non-nullable one is
// hit.
func computeFirst(g *Grammar, nullable map[string]bool) map[string]map[string]bool {
	first := map[string]map[string]bool{}
	for _, nt := range g.Nonterminals() {
		first[nt] = map[string]bool{}
	}
	for round, changed := 0, true; changed; round++ {
		changed = false
		for _, nt := range g.Nonterminals() {
			for _, r := range g.Rules(nt) {
				for _, sym := range r.Terms {
					if g.IsNonterminal(sym) {
						for t := range first[sym] {
							if !first[nt][t] {
								first[nt][t] = true
								changed = true
							}
						}
						if !nullable[sym] {
							break
						}
					} else {
						if !first[nt][sym] {
							first[nt][sym] = true
							changed = true
						}
						break
					}
				}
			}
		}
		tracer().Debugf("lr: FIRST fixed-point round %d, changed=%v", round, changed)
	}
	return first
}

// computeFollow implements the three standard FOLLOW rules:
//
//  1. $ ∈ FOLLOW(StartSymbol)
//  2. for A -> α B β: FIRST(β) \ {ε} ⊆ FOLLOW(B)
//  3. for A -> α B β with β nullable (or β empty): FOLLOW(A) ⊆ FOLLOW(B)
//
// The inner scanning loop stops at the first terminal or non-nullable
// nonterminal, falling through to rule 3 only if the scan reaches the end
// of the production while remaining nullable throughout.
func computeFollow(g *Grammar, nullable map[string]bool, first map[string]map[string]bool) map[string]map[string]bool {
	follow := map[string]map[string]bool{}
	for _, nt := range g.Nonterminals() {
		follow[nt] = map[string]bool{}
	}
	follow[StartSymbol][eofMarker] = true

	for round, changed := 0, true; changed; round++ {
		changed = false
		for _, nt := range g.Nonterminals() {
			for _, r := range g.Rules(nt) {
				for i, sym := range r.Terms {
					if !g.IsNonterminal(sym) {
						continue
					}
					restNullable := true
					for j := i + 1; j < len(r.Terms); j++ {
						next := r.Terms[j]
						if g.IsNonterminal(next) {
							for t := range first[next] {
								if !follow[sym][t] {
									follow[sym][t] = true
									changed = true
								}
							}
							if !nullable[next] {
								restNullable = false
								break
							}
						} else {
							if !follow[sym][next] {
								follow[sym][next] = true
								changed = true
							}
							restNullable = false
							break
						}
					}
					if restNullable {
						for t := range follow[nt] {
							if !follow[sym][t] {
								follow[sym][t] = true
								changed = true
							}
						}
					}
				}
			}
		}
		tracer().Debugf("lr: FOLLOW fixed-point round %d, changed=%v", round, changed)
	}
	return follow
}
