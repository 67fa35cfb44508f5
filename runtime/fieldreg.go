/*
Package runtime holds the ordered type-name registry the parser generator
uses to assign synthetic struct field names ("field0", "field1", ...) to
the distinct nonterminal types a grammar declares.

Field identifiers must be handed out in the order their type names are
first seen, so FieldRegistry pairs the lookup map with an explicit
insertion-order slice rather than relying on map iteration.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package runtime

import "fmt"

// FieldRegistry assigns each distinct type name a synthetic field
// identifier ("field0", "field1", ...) the first time that type name is
// seen, and returns the same identifier on every subsequent lookup.
type FieldRegistry struct {
	fields map[string]string
	order  []string
}

// NewFieldRegistry creates an empty registry.
func NewFieldRegistry() *FieldRegistry {
	return &FieldRegistry{fields: map[string]string{}}
}

// FieldFor returns typ's assigned field identifier, registering it first
// if this is the first time typ has been seen.
func (r *FieldRegistry) FieldFor(typ string) string {
	if f, ok := r.fields[typ]; ok {
		return f
	}
	f := fmt.Sprintf("field%d", len(r.order))
	r.fields[typ] = f
	r.order = append(r.order, typ)
	return f
}

// Lookup returns typ's field identifier without registering it, reporting
// whether typ has been seen before.
func (r *FieldRegistry) Lookup(typ string) (string, bool) {
	f, ok := r.fields[typ]
	return f, ok
}

// Types returns every registered type name in insertion order.
func (r *FieldRegistry) Types() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// AsMap returns a snapshot of the type-name -> field-identifier mapping.
// The map itself carries no order; use Types for that.
func (r *FieldRegistry) AsMap() map[string]string {
	out := make(map[string]string, len(r.fields))
	for k, v := range r.fields {
		out[k] = v
	}
	return out
}
