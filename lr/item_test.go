package lr

import (
	"testing"

	"github.com/pillmayer-lab/cflang/lr/iteratable"
)

func TestProductionLessOrdersByNonterminalThenItemsThenIndex(t *testing.T) {
	a := Production{Nonterminal: "A", Items: []string{"x"}, Index: 0}
	b := Production{Nonterminal: "B", Items: []string{"x"}, Index: 0}
	if !a.Less(b) {
		t.Error("A < B by nonterminal expected")
	}
	c := Production{Nonterminal: "A", Items: []string{"x", "y"}, Index: 0}
	if !a.Less(c) {
		t.Error("shorter Items should sort before a longer prefix-extension")
	}
	d := Production{Nonterminal: "A", Items: []string{"x"}, Index: 1}
	if !a.Less(d) {
		t.Error("same Nonterminal/Items should tie-break on Index")
	}
}

func TestItemSymbolAtDot(t *testing.T) {
	p := Production{Nonterminal: "E", Items: []string{"E", "+", "E"}}
	it := Item{Production: p, Dot: 1}
	sym, ok := it.SymbolAtDot()
	if !ok || sym != "+" {
		t.Errorf("SymbolAtDot() = (%q, %v), want (\"+\", true)", sym, ok)
	}
	end := Item{Production: p, Dot: 3}
	if _, ok := end.SymbolAtDot(); ok {
		t.Error("SymbolAtDot() at end of production should report ok=false")
	}
}

func TestItemIsReduceItem(t *testing.T) {
	p := Production{Nonterminal: "E", Items: []string{"id"}}
	if (Item{Production: p, Dot: 0}).IsReduceItem() {
		t.Error("dot at 0 of a 1-symbol RHS should not be a reduce item")
	}
	if !(Item{Production: p, Dot: 1}).IsReduceItem() {
		t.Error("dot at end of RHS should be a reduce item")
	}
}

func TestItemIsHaltItem(t *testing.T) {
	p := Production{Nonterminal: StartSymbol, Items: []string{"E"}}
	if !(Item{Production: p, Dot: 1}).IsHaltItem() {
		t.Error("completed start production should be a halt item")
	}
	if (Item{Production: p, Dot: 0}).IsHaltItem() {
		t.Error("start production with dot at 0 should not be a halt item")
	}
	other := Production{Nonterminal: "E", Items: []string{"id"}}
	if (Item{Production: other, Dot: 1}).IsHaltItem() {
		t.Error("a completed non-start production should not be a halt item")
	}
}

func TestItemAdvanceMovesDotRight(t *testing.T) {
	p := Production{Nonterminal: "E", Items: []string{"E", "+", "E"}}
	it := Item{Production: p, Dot: 0}
	next := it.Advance()
	if next.Dot != 1 {
		t.Errorf("Advance().Dot = %d, want 1", next.Dot)
	}
	if it.Dot != 0 {
		t.Error("Advance() must not mutate the receiver")
	}
}

func TestItemKeyDistinguishesDotPosition(t *testing.T) {
	p := Production{Nonterminal: "E", Items: []string{"id"}}
	a := Item{Production: p, Dot: 0}
	b := Item{Production: p, Dot: 1}
	if a.Key() == b.Key() {
		t.Error("items differing only in Dot must have distinct keys")
	}
	if !a.Equals(a) {
		t.Error("Equals() should be reflexive")
	}
	if a.Equals(b) {
		t.Error("items differing in Dot must not be Equals()")
	}
}

func TestClosureAddsNonterminalInitialItems(t *testing.T) {
	b := NewGrammarBuilder("Test")
	b.Rule("E", []string{"E", "+", "T"}, "")
	b.Rule("E", []string{"T"}, "")
	b.Rule("T", []string{"id"}, "")
	b.Type("E", "int")
	b.Type("T", "int")
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("Grammar() error = %v", err)
	}

	seedProd := Production{Nonterminal: StartSymbol, Items: []string{"E"}, Index: 0}
	seed := iteratable.NewSet(itemFromProduction(seedProd))
	closed := closure(g, seed)

	sawEFromT := false
	sawTFromID := false
	for _, e := range closed.Values() {
		it := e.(Item)
		if it.Production.Nonterminal == "E" && it.Dot == 0 && len(it.Production.Items) == 1 && it.Production.Items[0] == "T" {
			sawEFromT = true
		}
		if it.Production.Nonterminal == "T" && it.Dot == 0 {
			sawTFromID = true
		}
	}
	if !sawEFromT {
		t.Error("closure should add the initial item for E -> T")
	}
	if !sawTFromID {
		t.Error("closure should transitively add the initial item for T -> id")
	}
}

func TestSuccessorsOfPartitionsBySymbolAndClosesEach(t *testing.T) {
	b := NewGrammarBuilder("Test")
	b.Rule("E", []string{"E", "+", "T"}, "")
	b.Rule("E", []string{"T"}, "")
	b.Rule("T", []string{"id"}, "")
	b.Type("E", "int")
	b.Type("T", "int")
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("Grammar() error = %v", err)
	}

	seedProd := Production{Nonterminal: StartSymbol, Items: []string{"E"}, Index: 0}
	seed := closure(g, iteratable.NewSet(itemFromProduction(seedProd)))
	succ := successorsOf(g, seed)

	if _, ok := succ["id"]; !ok {
		t.Fatal("expected a successor set on shifting \"id\"")
	}
	found := false
	for _, e := range succ["id"].Values() {
		it := e.(Item)
		if it.Production.Nonterminal == "T" && it.Dot == 1 {
			found = true
		}
	}
	if !found {
		t.Error("shifting \"id\" should produce the completed T -> id. item")
	}

	syms := shiftSymbols(succ)
	for i := 1; i < len(syms); i++ {
		if syms[i-1] > syms[i] {
			t.Errorf("shiftSymbols() = %v, not sorted", syms)
		}
	}
}
