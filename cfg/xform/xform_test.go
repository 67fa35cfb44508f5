package xform

import (
	"testing"

	"github.com/pillmayer-lab/cflang/cfg"
	"github.com/pillmayer-lab/cflang/cfg/automaton"
)

func abGrammar() *cfg.CFG {
	g := cfg.NewCFG(cfg.NewAlphabet('a', 'b'), 'S')
	g.AddProduction(cfg.Production{LHS: 'S', RHS: []cfg.Symbol{cfg.NewTerminal('a'), cfg.NewNonterminal('S')}})
	g.AddProduction(cfg.Production{LHS: 'S', RHS: nil})
	return g
}

func TestSillyRenameProducesValidGrammar(t *testing.T) {
	g := abGrammar()
	out := SillyRename(g)
	if err := cfg.Validate(out); err != nil {
		t.Fatalf("Validate(SillyRename(g)) = %v", err)
	}
	if out.Start < kBaseUnicode {
		t.Errorf("renamed start %q is below kBaseUnicode", out.Start)
	}
	for n := range g.Nonterminals {
		if out.IsNonterminal(n) {
			t.Errorf("renamed grammar still has original nonterminal %q", n)
		}
	}
}

func TestSillyRenameIsDeterministic(t *testing.T) {
	g := abGrammar()
	a := SillyRename(g)
	b := SillyRename(g)
	if a.String() != b.String() {
		t.Errorf("SillyRename is not deterministic:\n%s\nvs\n%s", a, b)
	}
}

func TestSingletonHasOneProductionPerString(t *testing.T) {
	alphabet := cfg.NewAlphabet('a', 'b')
	g := Singleton([]string{"ab", "ba"}, alphabet)
	if err := cfg.Validate(g); err != nil {
		t.Fatalf("Validate(Singleton) = %v", err)
	}
	if len(g.Productions) != 2 {
		t.Fatalf("got %d productions, want 2", len(g.Productions))
	}
}

func TestUnionKeepsBothOperandsValid(t *testing.T) {
	alphabet := cfg.NewAlphabet('a', 'b')
	a := Singleton([]string{"a"}, alphabet)
	b := Singleton([]string{"b"}, alphabet)
	u := Union(a, b)
	if err := cfg.Validate(u); err != nil {
		t.Fatalf("Validate(Union) = %v", err)
	}
	if !u.IsNonterminal(u.Start) {
		t.Errorf("union start %q not registered as nonterminal", u.Start)
	}
}

func TestIntersectWithExactSetComplementIsStructurallyValid(t *testing.T) {
	g := abGrammar()
	d := automaton.ExactSetComplement([]rune{'a', 'b'}, []string{"a", "ab"})
	out := Intersect(g, d)
	if err := cfg.Validate(out); err != nil {
		t.Fatalf("Validate(Intersect) = %v", err)
	}
}

// TestIntersectPrunesUnreachableTriples exercises a grammar/DFA pair where a
// nonterminal's own productions reach only one state from any given start
// state, not every state in the DFA: chains mints a triple nonterminal for
// every end state regardless, so without the cleanup pass the result would
// reference triples that never appear as any production's LHS.
func TestIntersectPrunesUnreachableTriples(t *testing.T) {
	alphabet := cfg.NewAlphabet('a')
	g := cfg.NewCFG(alphabet, 'S')
	g.AddProduction(cfg.Production{LHS: 'S', RHS: []cfg.Symbol{cfg.NewNonterminal('T'), cfg.NewNonterminal('T')}})
	g.AddProduction(cfg.Production{LHS: 'T', RHS: []cfg.Symbol{cfg.NewTerminal('a')}})

	d := &automaton.DFA{
		Alphabet:  []rune{'a'},
		NumStates: 3,
		Start:     0,
		Accept:    []bool{false, true, true},
		Delta: map[int]map[rune]int{
			0: {'a': 1},
			1: {'a': 2},
			2: {'a': 2},
		},
	}

	out := Intersect(g, d)
	if err := cfg.Validate(out); err != nil {
		t.Fatalf("Validate(Intersect) = %v", err)
	}
}

// TestToCNFDropsNonterminalsStrippedOfAllProductions exercises a grammar
// where a nonterminal's only production is epsilon: eliminateEpsilon drops
// the production but nothing removes the now-productionless nonterminal
// from the declared set unless ToCNF prunes it afterwards.
func TestToCNFDropsNonterminalsStrippedOfAllProductions(t *testing.T) {
	alphabet := cfg.NewAlphabet('a')
	g := cfg.NewCFG(alphabet, 'S')
	g.AddProduction(cfg.Production{LHS: 'S', RHS: []cfg.Symbol{cfg.NewNonterminal('A'), cfg.NewNonterminal('B')}})
	g.AddProduction(cfg.Production{LHS: 'A', RHS: []cfg.Symbol{cfg.NewTerminal('a')}})
	g.AddProduction(cfg.Production{LHS: 'B', RHS: nil})

	out := ToCNF(g)
	if err := cfg.Validate(out); err != nil {
		t.Fatalf("Validate(ToCNF) = %v", err)
	}
}

func TestToCNFProducesWeakChomskyNormalForm(t *testing.T) {
	g := abGrammar()
	out := ToCNF(g)
	if err := cfg.Validate(out); err != nil {
		t.Fatalf("Validate(ToCNF) = %v", err)
	}
	for _, p := range out.Productions {
		switch {
		case p.IsEpsilon():
			if p.LHS != out.Start {
				t.Errorf("epsilon production on non-start nonterminal %q", p.LHS)
			}
		case len(p.RHS) == 1:
			if !p.RHS[0].IsTerminal() {
				t.Errorf("length-1 RHS %v is not a terminal", p)
			}
		case len(p.RHS) == 2:
			if !p.RHS[0].IsNonterminal() || !p.RHS[1].IsNonterminal() {
				t.Errorf("length-2 RHS %v is not two nonterminals", p)
			}
		default:
			t.Errorf("production %v is not in weak CNF shape", p)
		}
	}
}
