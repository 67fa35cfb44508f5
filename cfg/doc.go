/*
Package cfg implements the context-free grammar data model: alphabets,
symbols, productions and grammars, plus the structural validator that
checks a grammar against its own alphabet and declared nonterminal set.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cfg
