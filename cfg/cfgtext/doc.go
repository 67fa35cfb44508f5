/*
Package cfgtext implements the hand-rolled scanner and recursive-descent
parser for the CFG textual notation:

	Grammar      -> VariableDecl+
	VariableDecl -> Nonterminal Arrow ProductionList
	ProductionList -> Production (Bar Production)*
	Production   -> "ε" | Symbol+

Terminal/nonterminal disambiguation is alphabet-driven: a rune is a
terminal iff it is a member of the caller-supplied alphabet, and a
nonterminal otherwise (modulo the small set of punctuation runes the
grammar reserves for itself: "->", "→", "|", "ε").

The scanner buffers a small pushback stack of runes rather than a full
lookahead window, since the only multi-rune tokens it needs to recognize
are the "->" digraph and the "eps" keyword.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cfgtext
