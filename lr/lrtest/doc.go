// Package lrtest is a minimal SLR(1) table-walking parser used only from
// this module's own tests, to validate that a generated ACTION/GOTO table
// pair actually accepts and rejects the strings it should.
//
// It is not a public deliverable of this module — no runtime parser
// engine is exported outside of tests. It walks a plain []string token
// slice rather than a streaming scanner interface, since the test
// grammars it drives are small.
package lrtest
