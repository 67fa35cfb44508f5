package obfuscate

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/pillmayer-lab/cflang/cfg"
	"github.com/pillmayer-lab/cflang/cfg/sample"
)

func abStarGrammar() *cfg.CFG {
	g := cfg.NewCFG(cfg.NewAlphabet('a', 'b'), 'S')
	g.AddProduction(cfg.Production{LHS: 'S', RHS: []cfg.Symbol{cfg.NewTerminal('a'), cfg.NewNonterminal('S')}})
	g.AddProduction(cfg.Production{LHS: 'S', RHS: []cfg.Symbol{cfg.NewTerminal('b'), cfg.NewNonterminal('S')}})
	g.AddProduction(cfg.Production{LHS: 'S', RHS: nil})
	return g
}

func TestObfuscatePreservesLanguage(t *testing.T) {
	g := abStarGrammar()
	rng := rand.New(rand.NewSource(42))
	out, err := Obfuscate(g, rng)
	if err != nil {
		t.Fatalf("Obfuscate() error = %v", err)
	}
	if err := cfg.Validate(out); err != nil {
		t.Fatalf("Validate(Obfuscate(g)) = %v", err)
	}

	matchOrig := sample.Matcher(g)
	matchOut := sample.Matcher(out)
	for _, s := range []string{"", "a", "b", "ab", "ba", "aabb", "bbbbaaaa"} {
		if matchOrig(s) != matchOut(s) {
			t.Errorf("mismatch on %q: original=%v obfuscated=%v", s, matchOrig(s), matchOut(s))
		}
	}
}

func TestObfuscateReportsSamplingExhaustionOnTinyLanguage(t *testing.T) {
	g := cfg.NewCFG(cfg.NewAlphabet('a'), 'S')
	g.AddProduction(cfg.Production{LHS: 'S', RHS: []cfg.Symbol{cfg.NewTerminal('a')}})
	rng := rand.New(rand.NewSource(7))
	_, err := Obfuscate(g, rng)
	if err == nil {
		t.Fatal("expected a sampling-exhaustion error for a single-string language")
	}
}

func TestWriteResultEnvelope(t *testing.T) {
	g := abStarGrammar()
	var buf bytes.Buffer
	if err := WriteResult(&buf, g.Alphabet, g); err != nil {
		t.Fatalf("WriteResult() error = %v", err)
	}
	var envelope struct {
		Alphabet string          `json:"alphabet"`
		CFG      json.RawMessage `json:"cfg"`
	}
	if err := json.Unmarshal(buf.Bytes(), &envelope); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if envelope.Alphabet == "" {
		t.Error("envelope has an empty alphabet field")
	}
	if len(envelope.CFG) == 0 {
		t.Error("envelope has an empty cfg field")
	}
}
