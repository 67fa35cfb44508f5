/*
Package sample implements grammar-driven string sampling, membership
matching, and differential fuzz-equivalence checking between two
grammars.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package sample
