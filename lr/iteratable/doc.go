/*
Package iteratable implements a small destructive set container geared
towards the LR(0) item-set constructions the table generator builds:
closures, GOTO successor sets, and CFSM state comparison all reduce to
set membership, union, and equality tests over Item values.

Unusually for a Go container, Add and Union mutate and return the
receiver rather than a fresh value — callers that need an unmodified
original must Copy it first.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package iteratable
