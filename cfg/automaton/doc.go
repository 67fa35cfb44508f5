/*
Package automaton implements the small DFA type used by cfg/xform's
CFG×DFA intersection and by cfg/obfuscate's language-preserving
obfuscation step, plus the one DFA construction the obfuscator actually
needs: the complement of a finite set of exact strings over an alphabet.

A general regex-to-NFA compiler, subset construction and DFA minimiser are
out of scope: ExactSetComplement's target language is always the
complement of a finite set of exact strings, a shape that can be built
directly as a trie without a general regex pipeline behind it.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package automaton
