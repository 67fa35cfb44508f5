package lrtest

import (
	"testing"

	"github.com/pillmayer-lab/cflang/lr"
)

func buildAStarBGrammar(t *testing.T) *lr.TableGenerator {
	t.Helper()
	b := lr.NewGrammarBuilder("AStarB")
	b.Rule("S", []string{"a", "S"}, "")
	b.Rule("S", []string{"b"}, "")
	b.Type("S", "string")
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("Grammar() error = %v", err)
	}
	tg := lr.NewTableGenerator(lr.Analyze(g))
	tg.CreateTables()
	if tg.HasConflicts {
		t.Fatalf("unexpected conflicts building a*b's table")
	}
	return tg
}

func TestParserAcceptsValidStrings(t *testing.T) {
	tg := buildAStarBGrammar(t)
	p := NewParser(tg)
	for _, tokens := range [][]string{
		{"b"},
		{"a", "b"},
		{"a", "a", "a", "b"},
	} {
		ok, err := p.Parse(tokens)
		if err != nil {
			t.Fatalf("Parse(%v) error = %v", tokens, err)
		}
		if !ok {
			t.Errorf("Parse(%v) = false, want true", tokens)
		}
	}
}

func TestParserRejectsInvalidStrings(t *testing.T) {
	tg := buildAStarBGrammar(t)
	p := NewParser(tg)
	for _, tokens := range [][]string{
		{"a"},
		{"b", "b"},
		{},
	} {
		ok, _ := p.Parse(tokens)
		if ok {
			t.Errorf("Parse(%v) = true, want false", tokens)
		}
	}
}
