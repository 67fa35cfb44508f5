/*
Package xform implements CFG composition and normalisation: building a
singleton-language grammar for a fixed set of strings, deterministic
"silly rename" of nonterminals to fresh Unicode code points, the classical
Bar-Hillel CFG×DFA intersection construction, disjoint-namespace CFG
union, and conversion to weak Chomsky Normal Form.

Intersection, union and CNF conversion are the classical textbook
constructions for these operations.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package xform
