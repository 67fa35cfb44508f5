package xform

import "github.com/pillmayer-lab/cflang/cfg"
import "github.com/pillmayer-lab/cflang/cfg/automaton"

// intersectBase is the first code point Intersect uses to name its
// synthetic (state, nonterminal, state) triple nonterminals.
const intersectBase = '\U000E8000'

type triple struct {
	from int
	nt   rune
	to   int
}

// Intersect builds a grammar for L(g) ∩ L(d), the classical Bar-Hillel
// construction: a synthetic nonterminal (p, A, q) derives exactly the
// strings A can derive that drive d from state p to state q. The start
// symbol is a fresh nonterminal deriving from (d.Start, g.Start, f) for
// every accepting state f.
func Intersect(g *cfg.CFG, d *automaton.DFA) *cfg.CFG {
	names := map[triple]rune{}
	next := rune(intersectBase)
	nameFor := func(t triple) rune {
		if r, ok := names[t]; ok {
			return r
		}
		r := next
		next++
		names[t] = r
		return r
	}

	start := next
	next++

	out := cfg.NewCFG(g.Alphabet, start)

	for state, accepting := range d.Accept {
		if accepting {
			out.AddProduction(cfg.Production{
				LHS: start,
				RHS: []cfg.Symbol{cfg.NewNonterminal(nameFor(triple{d.Start, g.Start, state}))},
			})
		}
	}

	// chains enumerates every sequence of DFA states q0=p,...,qk=q
	// consistent with a production's RHS: terminals force a specific
	// transition, nonterminals range freely over every DFA state.
	var chains func(rhs []cfg.Symbol, p int) [][]int
	chains = func(rhs []cfg.Symbol, p int) [][]int {
		if len(rhs) == 0 {
			return [][]int{{p}}
		}
		var out [][]int
		s := rhs[0]
		if s.IsTerminal() {
			q, ok := d.Delta[p][s.Rune]
			if !ok {
				return nil
			}
			for _, rest := range chains(rhs[1:], q) {
				out = append(out, append([]int{p}, rest...))
			}
			return out
		}
		for q := 0; q < d.NumStates; q++ {
			for _, rest := range chains(rhs[1:], q) {
				out = append(out, append([]int{p}, rest...))
			}
		}
		return out
	}

	for p := 0; p < d.NumStates; p++ {
		for _, prod := range g.Productions {
			for _, chain := range chains(prod.RHS, p) {
				q := chain[len(chain)-1]
				np := cfg.Production{LHS: nameFor(triple{p, prod.LHS, q})}
				for i, s := range prod.RHS {
					if s.IsNonterminal() {
						np.RHS = append(np.RHS, cfg.NewNonterminal(nameFor(triple{chain[i], s.Rune, chain[i+1]})))
					} else {
						np.RHS = append(np.RHS, s)
					}
				}
				out.AddProduction(np)
			}
		}
	}

	return pruneUseless(out)
}

// generatingSet computes, by the standard bottom-up fixed point, the set
// of g's nonterminals that can derive some terminal string.
func generatingSet(g *cfg.CFG) map[rune]bool {
	gen := map[rune]bool{}
	for changed := true; changed; {
		changed = false
		for _, p := range g.Productions {
			if gen[p.LHS] {
				continue
			}
			all := true
			for _, s := range p.RHS {
				if s.IsNonterminal() && !gen[s.Rune] {
					all = false
					break
				}
			}
			if all {
				gen[p.LHS] = true
				changed = true
			}
		}
	}
	return gen
}

// pruneUseless drops non-generating and start-unreachable productions from
// a Bar-Hillel construction's output. chains ranges every RHS nonterminal
// of a production over the full DFA state space, so it mints a triple
// (c_i, s, q) for every q even when no chain of s's own productions from
// c_i actually reaches q — that triple is then referenced as an RHS
// nonterminal without ever appearing as an LHS. This is the standard
// "remove useless symbols" cleanup that resolves it: keep only productions
// built entirely from generating symbols, then keep only what's reachable
// from the start symbol through what remains.
func pruneUseless(g *cfg.CFG) *cfg.CFG {
	gen := generatingSet(g)

	kept := make([]cfg.Production, 0, len(g.Productions))
	for _, p := range g.Productions {
		if !gen[p.LHS] {
			continue
		}
		ok := true
		for _, s := range p.RHS {
			if s.IsNonterminal() && !gen[s.Rune] {
				ok = false
				break
			}
		}
		if ok {
			kept = append(kept, p)
		}
	}

	byLHS := map[rune][]cfg.Production{}
	for _, p := range kept {
		byLHS[p.LHS] = append(byLHS[p.LHS], p)
	}

	reachable := map[rune]bool{g.Start: true}
	queue := []rune{g.Start}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, p := range byLHS[n] {
			for _, s := range p.RHS {
				if s.IsNonterminal() && !reachable[s.Rune] {
					reachable[s.Rune] = true
					queue = append(queue, s.Rune)
				}
			}
		}
	}

	out := cfg.NewCFG(g.Alphabet, g.Start)
	for _, p := range kept {
		if reachable[p.LHS] {
			out.AddProduction(p)
		}
	}
	return out
}
