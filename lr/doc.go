/*
Package lr implements the LR(0)-structured / SLR(1) parser-table
generator: FIRST/FOLLOW set computation, canonical LR(0) configurating
sets, and shift/reduce ACTION-table construction with priority-based
conflict resolution, plus source emission via literal template
substitution (subpackage lr/emit).

Building a Grammar

Grammars are built from a JSON parser-generator configuration (see
ParseConfig) or programmatically via GrammarBuilder. Symbols
are plain strings; every production may carry a semantic action written
in the "$$"/"$N" substitution convention (Rule).

    b := lr.NewGrammarBuilder("Expr")
    b.Rule("E", []string{"E", "+", "T"}, "$$ = $1 + $3")
    b.Rule("E", []string{"T"}, "$$ = $1")
    b.Rule("T", []string{"num"}, "$$ = $1")
    b.Type("E", "int")
    b.Priorities("+")
    g, err := b.Grammar()

Static Grammar Analysis

Once the grammar is complete it is subjected to Analysis, which computes
the nullable set and the FIRST and FOLLOW sets by the standard fixed-point
algorithms.

    ga := lr.Analyze(g)
    fmt.Println(ga.First("T"))
    fmt.Println(ga.Follow("E"))

Parser Table Construction

Grammar analysis feeds a TableGenerator, which builds the canonical LR(0)
configurating sets (the CFSM), then the GOTO and priority-resolved ACTION
tables.

    tg := lr.NewTableGenerator(ga)
    tg.CreateTables()
    tg.CFSM()         // the characteristic finite state machine
    tg.ActionTable()  // shift/reduce/halt table

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cflang.lr'.
func tracer() tracing.Trace {
	return tracing.Select("cflang.lr")
}
