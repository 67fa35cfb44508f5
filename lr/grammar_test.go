package lr

import "testing"

func buildMinimalGrammar(t *testing.T) *Grammar {
	t.Helper()
	b := NewGrammarBuilder("Minimal")
	b.Rule("S", []string{"a"}, "$$ = $1")
	b.Rule("S", []string{"b"}, "$$ = $1")
	b.Type("S", "string")
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("Grammar() error = %v", err)
	}
	return g
}

func TestGrammarBuilderInjectsStartProduction(t *testing.T) {
	g := buildMinimalGrammar(t)
	sp := g.StartProduction()
	if sp.Nonterminal != StartSymbol {
		t.Errorf("StartProduction().Nonterminal = %q, want %q", sp.Nonterminal, StartSymbol)
	}
	if len(sp.Items) != 1 || sp.Items[0] != "S" {
		t.Errorf("StartProduction().Items = %v, want [S]", sp.Items)
	}
}

func TestGrammarBuilderRejectsReservedName(t *testing.T) {
	b := NewGrammarBuilder("X")
	b.Rule(StartSymbol, []string{"a"}, "")
	b.Type(StartSymbol, "string")
	if _, err := b.Grammar(); err == nil {
		t.Fatal("expected an error declaring a nonterminal named StartSymbol")
	}
}

func TestGrammarBuilderRejectsMissingStartType(t *testing.T) {
	b := NewGrammarBuilder("X")
	b.Rule("S", []string{"a"}, "")
	if _, err := b.Grammar(); err == nil {
		t.Fatal("expected an error for a start symbol with no registered type")
	}
}

func TestGrammarIsNonterminal(t *testing.T) {
	g := buildMinimalGrammar(t)
	if !g.IsNonterminal("S") {
		t.Error("IsNonterminal(\"S\") = false, want true")
	}
	if g.IsNonterminal("a") {
		t.Error("IsNonterminal(\"a\") = true, want false")
	}
}

func TestGrammarAllProductionsIncludesStartProduction(t *testing.T) {
	g := buildMinimalGrammar(t)
	var sawStart bool
	for _, p := range g.AllProductions() {
		if p.Nonterminal == StartSymbol {
			sawStart = true
		}
	}
	if !sawStart {
		t.Error("AllProductions() did not include the synthetic start production")
	}
}
