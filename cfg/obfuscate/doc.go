/*
Package obfuscate implements the language-preserving CFG obfuscation
pipeline: sample a handful of strings from the grammar, build the DFA
accepting everything except those strings, intersect it with the grammar,
re-add the sampled strings via union, normalise to weak Chomsky Normal
Form, and finally rename every nonterminal to an unrecognisable code
point — checking the whole pipeline against the original grammar with a
differential fuzz-equivalence pass before returning.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package obfuscate
