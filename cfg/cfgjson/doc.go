/*
Package cfgjson implements the CFG's alternate JSON encoding:

	{"start": "S", "rules": [{"name": "S", "production": [{"type": "T", "data": "a"}]}]}

top-level "start" and "rules", per-rule "name" and "production",
per-symbol "type" of "T" or "NT" and single-code-point "data".

Marshalling is hand-written against mailru/easyjson's jwriter/jlexer,
following the shape easyjson's own generated code produces, rather than
using encoding/json: this JSON form is produced at high volume by the
obfuscation pipeline for every generated variant, and hand-rolled
marshaling avoids reflection on that hot path.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cfgjson
