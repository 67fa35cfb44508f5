package lr

import (
	"encoding/json"
	"sort"

	"github.com/pillmayer-lab/cflang/cflang"
)

// ruleJSON is one alternative of a nonterminal's production in the
// parser-generator's JSON configuration.
type ruleJSON struct {
	Production []string `json:"production"`
	Code       string   `json:"code"`
}

// configJSON mirrors the parser-generator config object. Decoded with
// encoding/json rather than a hand-written easyjson codec: unlike the CFG
// JSON form (high-volume, produced by the obfuscation pipeline for every
// generated variant), a parser-generator config is authored once per
// grammar and read once — there is no hot path here to justify
// hand-rolled marshaling.
type configJSON struct {
	Grammar          map[string][]ruleJSON `json:"grammar"`
	StartSymbol      string                `json:"start-symbol"`
	Priorities       []string              `json:"priorities"`
	NonterminalTypes map[string]string     `json:"nonterminal-types"`
	HeaderExtras     []string              `json:"header-extras"`
	Verbose          bool                  `json:"verbose"`
	ParserName       string                `json:"parser-name"`
}

// ParseConfig decodes a parser-generator JSON configuration into a
// *Grammar. The declared start-symbol is added to the builder
// first, so GrammarBuilder's "first Rule call wins" convention agrees
// with the config's explicit field; the remaining nonterminals are added
// in sorted order for deterministic typeToField assignment.
func ParseConfig(data []byte) (*Grammar, error) {
	var cfg configJSON
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, cflang.NewError(cflang.ParseError, "malformed parser-generator config: %v", err)
	}
	if cfg.StartSymbol == "" {
		return nil, cflang.NewError(cflang.ParseError, "parser-generator config missing \"start-symbol\"")
	}
	if _, ok := cfg.Grammar[cfg.StartSymbol]; !ok {
		return nil, cflang.NewError(cflang.ParseError, "start symbol %q has no productions", cfg.StartSymbol)
	}

	b := NewGrammarBuilder(cfg.ParserName)
	b.Priorities(cfg.Priorities...)
	b.Verbose(cfg.Verbose)
	for _, line := range cfg.HeaderExtras {
		b.HeaderExtra(line)
	}
	for nt, typ := range cfg.NonterminalTypes {
		b.Type(nt, typ)
	}

	order := make([]string, 0, len(cfg.Grammar))
	for nt := range cfg.Grammar {
		if nt != cfg.StartSymbol {
			order = append(order, nt)
		}
	}
	sort.Strings(order)
	order = append([]string{cfg.StartSymbol}, order...)

	for _, nt := range order {
		for _, r := range cfg.Grammar[nt] {
			b.Rule(nt, r.Production, r.Code)
		}
	}

	return b.Grammar()
}
