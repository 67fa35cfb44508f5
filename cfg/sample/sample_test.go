package sample

import (
	"math/rand"
	"testing"
	"time"

	"github.com/pillmayer-lab/cflang/cfg"
)

func abStarGrammar() *cfg.CFG {
	g := cfg.NewCFG(cfg.NewAlphabet('a', 'b'), 'S')
	g.AddProduction(cfg.Production{LHS: 'S', RHS: []cfg.Symbol{cfg.NewTerminal('a'), cfg.NewNonterminal('S')}})
	g.AddProduction(cfg.Production{LHS: 'S', RHS: []cfg.Symbol{cfg.NewTerminal('b'), cfg.NewNonterminal('S')}})
	g.AddProduction(cfg.Production{LHS: 'S', RHS: nil})
	return g
}

func TestGeneratorProducesMatchableStrings(t *testing.T) {
	g := abStarGrammar()
	rng := rand.New(rand.NewSource(1))
	gen := Generator(g, rng)
	match := Matcher(g)
	found := 0
	for i := 0; i < 200; i++ {
		ok, s := gen(10)
		if !ok {
			continue
		}
		found++
		if !match(s) {
			t.Errorf("generated string %q not accepted by its own grammar", s)
		}
	}
	if found == 0 {
		t.Fatal("generator never produced a string within budget")
	}
}

func TestMatcherRejectsStringsOutsideLanguage(t *testing.T) {
	g := abStarGrammar()
	match := Matcher(g)
	if match("c") {
		t.Error("Matcher accepted a string containing a symbol outside the alphabet")
	}
	if !match("") {
		t.Error("Matcher rejected the empty string, which S -> ε accepts")
	}
	if !match("aabba") {
		t.Error("Matcher rejected \"aabba\", which (a|b)* accepts")
	}
}

func TestMatcherTerminatesOnLeftRecursion(t *testing.T) {
	g := cfg.NewCFG(cfg.NewAlphabet('a'), 'S')
	g.AddProduction(cfg.Production{LHS: 'S', RHS: []cfg.Symbol{cfg.NewNonterminal('S'), cfg.NewTerminal('a')}})
	g.AddProduction(cfg.Production{LHS: 'S', RHS: []cfg.Symbol{cfg.NewTerminal('a')}})
	match := Matcher(g)
	done := make(chan bool)
	go func() { done <- match("aaa") }()
	select {
	case ok := <-done:
		if !ok {
			t.Error("Matcher(\"aaa\") = false, want true for left-recursive a+ grammar")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Matcher did not terminate on a left-recursive grammar")
	}
}

func TestSeemEquivalentDetectsMismatch(t *testing.T) {
	a := cfg.NewCFG(cfg.NewAlphabet('a'), 'S')
	a.AddProduction(cfg.Production{LHS: 'S', RHS: []cfg.Symbol{cfg.NewTerminal('a')}})

	b := cfg.NewCFG(cfg.NewAlphabet('a'), 'S')
	b.AddProduction(cfg.Production{LHS: 'S', RHS: nil})

	ok, witness := SeemEquivalent(a, b, rand.New(rand.NewSource(2)))
	if ok {
		t.Fatal("SeemEquivalent reported equivalence for two clearly different languages")
	}
	if witness == "" {
		t.Log("witness was the empty string, which is a valid mismatch witness here")
	}
}

func TestSeemEquivalentAcceptsIdenticalGrammars(t *testing.T) {
	g := abStarGrammar()
	ok, witness := SeemEquivalent(g, g, rand.New(rand.NewSource(3)))
	if !ok {
		t.Fatalf("SeemEquivalent(g, g) = false, witness %q", witness)
	}
}
