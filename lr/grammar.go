package lr

import (
	"sort"

	"github.com/pillmayer-lab/cflang/cflang"
	"github.com/pillmayer-lab/cflang/runtime"
)

// StartSymbol is the reserved synthetic start nonterminal every Grammar
// carries, wrapping the user's declared start symbol in a single
// production "StartSymbol -> userStart". A user grammar that declares a
// nonterminal by this exact name is rejected with a
// ReservedNameCollision error.
const StartSymbol = "_parserInternalStart"

// Rule is one alternative of a nonterminal's production: an ordered list
// of terminal/nonterminal symbol names and a semantic action written in
// the "$$"/"$N" substitution convention (see package lr/emit).
type Rule struct {
	Terms  []string
	Action string
}

// Grammar is the parser-generator's grammar description: named symbols
// (not the single-rune symbols of package cfg), one or more Rules per
// nonterminal, terminal shift priorities, and the type/emission metadata
// the JSON parser-generator configuration carries.
type Grammar struct {
	name             string
	grammar          map[string][]Rule
	priorities       []string
	nonterminalTypes map[string]string
	typeToField      map[string]string
	headerExtras     []string
	verbose          bool
}

// Name returns the grammar's parser name (used by lr/emit for the
// "%% Parser Name %%" marker).
func (g *Grammar) Name() string { return g.name }

// Verbose reports whether the generated parser should emit trace output.
func (g *Grammar) Verbose() bool { return g.verbose }

// HeaderExtras returns literal source lines to splice into the generated
// header via lr/emit's "%% Header Extras %%" marker.
func (g *Grammar) HeaderExtras() []string { return g.headerExtras }

// Priorities returns the terminal precedence list, highest precedence
// first, as originally declared.
func (g *Grammar) Priorities() []string { return g.priorities }

// IsNonterminal reports whether sym has at least one Rule, i.e. is a
// grammar-declared nonterminal rather than a terminal symbol name.
func (g *Grammar) IsNonterminal(sym string) bool {
	_, ok := g.grammar[sym]
	return ok
}

// Rules returns nt's alternatives in declaration order.
func (g *Grammar) Rules(nt string) []Rule { return g.grammar[nt] }

// TypeOf returns nt's declared type, or "_unused_" if none was registered.
func (g *Grammar) TypeOf(nt string) string {
	if t, ok := g.nonterminalTypes[nt]; ok {
		return t
	}
	return "_unused_"
}

// FieldFor returns the synthetic struct field name assigned to typ.
func (g *Grammar) FieldFor(typ string) string { return g.typeToField[typ] }

// Nonterminals returns every declared nonterminal, including StartSymbol,
// in ascending lexicographic order — the fixed, deterministic iteration
// order every fixed-point algorithm in this package relies on.
func (g *Grammar) Nonterminals() []string {
	ns := make([]string, 0, len(g.grammar))
	for n := range g.grammar {
		ns = append(ns, n)
	}
	sort.Strings(ns)
	return ns
}

// AllProductions enumerates every production of the grammar (including the
// synthetic start production) as Production values carrying their
// declaration index; the table generator numbers reduce targets by their
// position in this list.
func (g *Grammar) AllProductions() []Production {
	var out []Production
	for _, nt := range g.Nonterminals() {
		for i, r := range g.grammar[nt] {
			out = append(out, Production{Nonterminal: nt, Items: r.Terms, Index: i})
		}
	}
	return out
}

// StartProduction returns the single synthetic "StartSymbol -> userStart" production.
func (g *Grammar) StartProduction() Production {
	return Production{Nonterminal: StartSymbol, Items: g.grammar[StartSymbol][0].Terms, Index: 0}
}

// GrammarBuilder incrementally builds a Grammar: the first nonterminal a
// Rule is added for becomes the user start symbol, wrapped automatically
// in the reserved StartSymbol production once Grammar() is called.
type GrammarBuilder struct {
	name             string
	grammar          map[string][]Rule
	priorities       []string
	nonterminalTypes map[string]string
	headerExtras     []string
	verbose          bool
	userStart        string
	declOrder        []string
	declSeen         map[string]bool
}

// NewGrammarBuilder creates a builder for a parser named name.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{
		name:             name,
		grammar:          map[string][]Rule{},
		nonterminalTypes: map[string]string{},
		declSeen:         map[string]bool{},
	}
}

// Rule adds one alternative for nonterminal nt.
func (b *GrammarBuilder) Rule(nt string, terms []string, action string) *GrammarBuilder {
	if b.userStart == "" {
		b.userStart = nt
	}
	if !b.declSeen[nt] {
		b.declSeen[nt] = true
		b.declOrder = append(b.declOrder, nt)
	}
	b.grammar[nt] = append(b.grammar[nt], Rule{Terms: terms, Action: action})
	return b
}

// Priorities sets the terminal shift-precedence list, highest first.
func (b *GrammarBuilder) Priorities(terms ...string) *GrammarBuilder {
	b.priorities = terms
	return b
}

// Type registers nt's semantic-value type.
func (b *GrammarBuilder) Type(nt, typ string) *GrammarBuilder {
	b.nonterminalTypes[nt] = typ
	return b
}

// HeaderExtra appends a literal source line for the generated header.
func (b *GrammarBuilder) HeaderExtra(line string) *GrammarBuilder {
	b.headerExtras = append(b.headerExtras, line)
	return b
}

// Verbose toggles trace output in the generated parser.
func (b *GrammarBuilder) Verbose(v bool) *GrammarBuilder {
	b.verbose = v
	return b
}

// Grammar finalises the builder, injecting the synthetic StartSymbol
// production and the typeToField registry. Returns ReservedNameCollision
// if the user declared a nonterminal literally named StartSymbol, or
// MissingStartType if the user start symbol has no registered Type.
func (b *GrammarBuilder) Grammar() (*Grammar, error) {
	if b.userStart == "" {
		return nil, cflang.NewError(cflang.ParseError, "grammar has no productions")
	}
	if _, reserved := b.grammar[StartSymbol]; reserved {
		return nil, cflang.NewError(cflang.ReservedNameCollision,
			"nonterminal %q is reserved for the synthetic start symbol", StartSymbol)
	}
	startType, ok := b.nonterminalTypes[b.userStart]
	if !ok {
		return nil, cflang.NewError(cflang.MissingStartType,
			"start symbol %q has no registered type", b.userStart)
	}

	g := &Grammar{
		name:             b.name,
		grammar:          map[string][]Rule{},
		priorities:       b.priorities,
		nonterminalTypes: map[string]string{},
		headerExtras:     b.headerExtras,
		verbose:          b.verbose,
	}
	for nt, rules := range b.grammar {
		g.grammar[nt] = rules
	}
	g.grammar[StartSymbol] = []Rule{{Terms: []string{b.userStart}, Action: "This won't be generated."}}
	for nt, typ := range b.nonterminalTypes {
		g.nonterminalTypes[nt] = typ
	}
	g.nonterminalTypes[StartSymbol] = startType

	reg := runtime.NewFieldRegistry()
	for _, nt := range b.declOrder {
		if typ, ok := b.nonterminalTypes[nt]; ok {
			reg.FieldFor(typ)
		}
	}
	g.typeToField = reg.AsMap()

	return g, nil
}
