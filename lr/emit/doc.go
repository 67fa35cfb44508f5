// Package emit renders a generated grammar and its ACTION/GOTO tables into
// generated-parser source, by substituting fixed "%% Tag %%" markers in a
// pair of template files with generated text.
//
// Every generated section (nonterminal declarations, the ACTION/GOTO
// tables, reduce-function prototypes/thunks/bodies, the parser's return
// type, extra header text) is built with strings.Builder and iterated in
// an explicit sorted order rather than raw map range, so two runs over the
// same grammar produce byte-identical output.
package emit
