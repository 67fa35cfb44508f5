package cfgjson

import (
	"testing"

	"github.com/pillmayer-lab/cflang/cfg"
)

func buildGrammar() *cfg.CFG {
	g := cfg.NewCFG(cfg.NewAlphabet('a'), 'S')
	g.AddProduction(cfg.Production{LHS: 'S', RHS: []cfg.Symbol{cfg.NewTerminal('a'), cfg.NewNonterminal('S')}})
	g.AddProduction(cfg.Production{LHS: 'S', RHS: nil})
	return g
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	g := buildGrammar()
	data, err := Encode(g)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	got, err := Decode(data, g.Alphabet)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got.Start != g.Start {
		t.Errorf("Start = %q, want %q", got.Start, g.Start)
	}
	if len(got.Productions) != len(g.Productions) {
		t.Fatalf("got %d productions, want %d", len(got.Productions), len(g.Productions))
	}
	for i := range g.Productions {
		if got.Productions[i].String() != g.Productions[i].String() {
			t.Errorf("production[%d] = %v, want %v", i, got.Productions[i], g.Productions[i])
		}
	}
}

func TestEncodeDecodeNonASCIINonterminal(t *testing.T) {
	g := cfg.NewCFG(cfg.NewAlphabet('a'), '𝕊')
	g.AddProduction(cfg.Production{LHS: '𝕊', RHS: []cfg.Symbol{cfg.NewTerminal('a'), cfg.NewNonterminal('𝕊')}})
	g.AddProduction(cfg.Production{LHS: '𝕊', RHS: nil})

	data1, err := Encode(g)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	decoded, err := Decode(data1, g.Alphabet)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	data2, err := Encode(decoded)
	if err != nil {
		t.Fatalf("re-Encode() error = %v", err)
	}
	if string(data1) != string(data2) {
		t.Errorf("encode(decode(encode(g))) != encode(g):\n%s\nvs\n%s", data2, data1)
	}
}

func TestDecodeRejectsOutOfAlphabetTerminal(t *testing.T) {
	g := buildGrammar()
	data, err := Encode(g)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if _, err := Decode(data, cfg.NewAlphabet('z')); err == nil {
		t.Fatal("expected an AlphabetViolation decoding against a mismatched alphabet")
	}
}
