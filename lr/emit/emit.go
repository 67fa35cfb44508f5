package emit

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pillmayer-lab/cflang/lr"
)

// reduceFunctionName is "reduce_<NT>_from_<s1>_<s2>_...", grounded on
// ParserGenerator.cpp's reduceFunctionNameFor.
func reduceFunctionName(p lr.Production) string {
	var b strings.Builder
	fmt.Fprintf(&b, "reduce_%s_from", p.Nonterminal)
	for _, sym := range p.Items {
		b.WriteByte('_')
		b.WriteString(sym)
	}
	return b.String()
}

// reduceThunkName appends the fixed "__thunk" suffix.
func reduceThunkName(p lr.Production) string {
	return reduceFunctionName(p) + "__thunk"
}

// substituteAction rewrites a semantic action's placeholders in a single
// longest-match-first pass: "$$" becomes "_parserArg0" first, then every
// remaining "$" becomes "_parserArg" (the bare "$" replacement leaves the
// digit that already followed it in the source text intact).
func substituteAction(action string) string {
	replaced := strings.ReplaceAll(action, "$$", "_parserArg0")
	return strings.ReplaceAll(replaced, "$", "_parserArg")
}

// codeUsesArgument reports whether a production's semantic action
// mentions the substituted name for argument index (1-based).
func codeUsesArgument(action string, index int) bool {
	return strings.Contains(substituteAction(action), "_parserArg"+strconv.Itoa(index))
}

// findRule locates the Rule (and hence the raw action text) a Production
// was built from, by scanning the nonterminal's rules for a term sequence
// matching the production's items.
func findRule(g *lr.Grammar, p lr.Production) (lr.Rule, bool) {
	for _, r := range g.Rules(p.Nonterminal) {
		if len(r.Terms) != len(p.Items) {
			continue
		}
		match := true
		for i, t := range r.Terms {
			if t != p.Items[i] {
				match = false
				break
			}
		}
		if match {
			return r, true
		}
	}
	return lr.Rule{}, false
}

// reduceFunctionSignature renders "<type> reduce_..._from_...(<args>)",
// omitting the name of an argument the semantic action never references.
// Grounded on ParserGenerator.cpp's reduceFunctionFor.
func reduceFunctionSignature(g *lr.Grammar, p lr.Production) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s(", g.TypeOf(p.Nonterminal), reduceFunctionName(p))
	rule, _ := findRule(g, p)
	for i, sym := range p.Items {
		if g.IsNonterminal(sym) {
			b.WriteString(g.TypeOf(sym))
		} else {
			b.WriteString("string")
		}
		if codeUsesArgument(rule.Action, i+1) {
			fmt.Fprintf(&b, " _parserArg%d", i+1)
		}
		if i+1 != len(p.Items) {
			b.WriteString(", ")
		}
	}
	b.WriteString(")")
	return b.String()
}

// reduceThunkSource renders the untyped-to-typed bridging function body,
// grounded on ParserGenerator.cpp's reduceThunkFor.
func reduceThunkSource(g *lr.Grammar, p lr.Production) string {
	var b strings.Builder
	fmt.Fprintf(&b, "func %s(", reduceThunkName(p))
	hasType := g.TypeOf(p.Nonterminal) != "_unused_"
	for i, sym := range p.Items {
		b.WriteString("StackData")
		argUsed := hasType && (!g.IsNonterminal(sym) || g.TypeOf(sym) != "_unused_")
		if argUsed {
			fmt.Fprintf(&b, " a%d", i)
		}
		if i+1 != len(p.Items) {
			b.WriteString(", ")
		}
	}
	b.WriteString(") AuxData {\n")
	if !hasType {
		b.WriteString("\treturn AuxData{}\n")
	} else {
		b.WriteString("\tvar result AuxData\n")
		fmt.Fprintf(&b, "\tresult.%s = %s(", g.FieldFor(g.TypeOf(p.Nonterminal)), reduceFunctionName(p))
		for i, sym := range p.Items {
			if g.IsNonterminal(sym) {
				if g.TypeOf(sym) != "_unused_" {
					fmt.Fprintf(&b, "a%d.Data.%s", i, g.FieldFor(g.TypeOf(sym)))
				} else {
					b.WriteString("nil")
				}
			} else {
				fmt.Fprintf(&b, "a%d.Token.Data", i)
			}
			if i+1 != len(p.Items) {
				b.WriteString(", ")
			}
		}
		b.WriteString(")\n\treturn result\n")
	}
	b.WriteString("}\n")
	return b.String()
}

// reduceFunctionSource renders the reduce function body: a temporary
// holding the result, the substituted user action, and its return.
// Grounded on ParserGenerator.cpp's reduceFunctions.
func reduceFunctionSource(g *lr.Grammar, p lr.Production) string {
	rule, _ := findRule(g, p)
	var b strings.Builder
	fmt.Fprintf(&b, "func %s {\n", reduceFunctionSignature(g, p))
	fmt.Fprintf(&b, "\tvar _parserArg0 %s\n", g.TypeOf(p.Nonterminal))
	fmt.Fprintf(&b, "\t%s\n", substituteAction(rule.Action))
	b.WriteString("\treturn _parserArg0\n}\n")
	return b.String()
}

// distinctReduceProductions returns every reduce production appearing in
// any CFSM state, deduplicated by reduce-function name, skipping
// productions whose nonterminal carries no registered type — matching
// ParserGenerator.cpp's "don't generate something we don't need" guard.
func distinctReduceProductions(g *lr.Grammar, tg *lr.TableGenerator) []lr.Production {
	seen := map[string]lr.Production{}
	for _, s := range tg.CFSM().States() {
		for _, e := range s.Items.Values() {
			it := e.(lr.Item)
			if !it.IsReduceItem() || it.IsHaltItem() {
				continue
			}
			if g.TypeOf(it.Production.Nonterminal) == "_unused_" {
				continue
			}
			seen[reduceFunctionName(it.Production)] = it.Production
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]lr.Production, len(names))
	for i, n := range names {
		out[i] = seen[n]
	}
	return out
}

// allReduceThunks returns every reduce production's thunk, unconditionally
// (a thunk is generated for every reduce item, typed or not) — matching
// ParserGenerator.cpp's reduceThunks.
func allReduceThunks(tg *lr.TableGenerator) []lr.Production {
	seen := map[string]lr.Production{}
	for _, s := range tg.CFSM().States() {
		for _, e := range s.Items.Values() {
			it := e.(lr.Item)
			if !it.IsReduceItem() || it.IsHaltItem() {
				continue
			}
			seen[reduceThunkName(it.Production)] = it.Production
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]lr.Production, len(names))
	for i, n := range names {
		out[i] = seen[n]
	}
	return out
}

func nonterminalsBlock(g *lr.Grammar) string {
	var b strings.Builder
	for _, nt := range g.Nonterminals() {
		if nt == lr.StartSymbol {
			continue
		}
		fmt.Fprintf(&b, "\t%s\n", nt)
	}
	return b.String()
}

func auxEntriesBlock(g *lr.Grammar) string {
	types := make([]string, 0)
	seen := map[string]bool{}
	for _, nt := range g.Nonterminals() {
		t := g.TypeOf(nt)
		if t == "_unused_" || seen[t] {
			continue
		}
		seen[t] = true
		types = append(types, t)
	}
	sort.Strings(types)
	var b strings.Builder
	for _, t := range types {
		fmt.Fprintf(&b, "\t%s %s\n", g.FieldFor(t), t)
	}
	return b.String()
}

// actionTableBlock renders one composite-literal entry per CFSM state,
// keyed by the terminal or nonterminal symbol and naming a Shift/Reduce/
// Accept/Goto command. Grounded on ParserGenerator.cpp's actionTable, with
// the "Nonterminal::X vs TokenType::X" C++ discriminator translated into
// a bare Go symbol name (this module's tables are symbol-name indexed
// already, so no cast is needed).
func actionTableBlock(g *lr.Grammar, tg *lr.TableGenerator) string {
	var b strings.Builder
	action := tg.ActionTable()
	goTo := tg.GotoTable()
	prods := tg.Productions()

	gotoCols := goTo.Columns()
	actionCols := action.Columns()

	for _, s := range tg.CFSM().States() {
		fmt.Fprintf(&b, "{ // state %d\n", s.ID)

		for _, nt := range gotoCols {
			if to, ok := goTo.Goto(s.ID, nt); ok {
				fmt.Fprintf(&b, "\t%q: Goto{%d},\n", nt, to)
			}
		}
		for _, sym := range actionCols {
			kind, target, ok := action.Action(s.ID, sym)
			if !ok {
				continue
			}
			switch kind {
			case lr.ShiftAction:
				fmt.Fprintf(&b, "\t%q: Shift{%d},\n", sym, target)
			case lr.AcceptAction:
				fmt.Fprintf(&b, "\t%q: Accept{},\n", sym)
			case lr.ReduceAction:
				p := prods[target]
				fmt.Fprintf(&b, "\t%q: Reduce{%s},\n", sym, reduceThunkName(p))
			}
		}
		b.WriteString("},\n")
	}
	return b.String()
}

func reducePrototypesBlock(g *lr.Grammar, tg *lr.TableGenerator) string {
	var b strings.Builder
	for _, p := range distinctReduceProductions(g, tg) {
		fmt.Fprintf(&b, "%s\n", reduceFunctionSignature(g, p))
	}
	return b.String()
}

func reduceFunctionsBlock(g *lr.Grammar, tg *lr.TableGenerator) string {
	var b strings.Builder
	for _, p := range distinctReduceProductions(g, tg) {
		b.WriteString(reduceFunctionSource(g, p))
		b.WriteByte('\n')
	}
	return b.String()
}

func reduceThunksBlock(g *lr.Grammar, tg *lr.TableGenerator) string {
	var b strings.Builder
	for _, p := range allReduceThunks(tg) {
		b.WriteString(reduceThunkSource(g, p))
	}
	return b.String()
}

func headerExtrasBlock(g *lr.Grammar) string {
	return strings.Join(g.HeaderExtras(), "\n")
}

// Markers pairs every "%% Tag %%" placeholder with its generated text,
// matching the eleven substitutions of
// ParserGenerator.cpp's outputReplaced.
func Markers(g *lr.Grammar, tg *lr.TableGenerator) map[string]string {
	return map[string]string{
		"%% Nonterminals %%":      nonterminalsBlock(g),
		"%% Aux Entries %%":       auxEntriesBlock(g),
		"%% Action Table %%":      actionTableBlock(g, tg),
		"%% Reduce Prototypes %%": reducePrototypesBlock(g, tg),
		"%% Reduce Thunks %%":     reduceThunksBlock(g, tg),
		"%% Reduce Functions %%":  reduceFunctionsBlock(g, tg),
		"%% Parser Return %%":     g.TypeOf(lr.StartSymbol),
		"%% Header Extras %%":     headerExtrasBlock(g),
		"%% Verbose %%":           strconv.FormatBool(g.Verbose()),
		"%% Return Field %%":      g.FieldFor(g.TypeOf(lr.StartSymbol)),
		"%% Parser Name %%":       g.Name(),
	}
}

// Render substitutes every marker of Markers into template, in the fixed
// order ParserGenerator.cpp's outputReplaced applies them, via
// strings.ReplaceAll.
func Render(template string, g *lr.Grammar, tg *lr.TableGenerator) string {
	out := template
	order := []string{
		"%% Nonterminals %%", "%% Aux Entries %%", "%% Action Table %%",
		"%% Reduce Prototypes %%", "%% Reduce Thunks %%", "%% Reduce Functions %%",
		"%% Parser Return %%", "%% Header Extras %%", "%% Verbose %%",
		"%% Return Field %%", "%% Parser Name %%",
	}
	markers := Markers(g, tg)
	for _, tag := range order {
		out = strings.ReplaceAll(out, tag, markers[tag])
	}
	return out
}

// RenderPair renders both the header and source templates for g, matching
// ParserGenerator.cpp's two outputReplaced calls for
// "<parser-name>Parser.h" / "<parser-name>Parser.cpp".
func RenderPair(headerTemplate, sourceTemplate string, g *lr.Grammar, tg *lr.TableGenerator) (header, source string) {
	return Render(headerTemplate, g, tg), Render(sourceTemplate, g, tg)
}
