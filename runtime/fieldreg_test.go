package runtime

import "testing"

func TestFieldForAssignsInInsertionOrder(t *testing.T) {
	r := NewFieldRegistry()
	if got := r.FieldFor("int"); got != "field0" {
		t.Errorf("FieldFor(int) = %q, want field0", got)
	}
	if got := r.FieldFor("string"); got != "field1" {
		t.Errorf("FieldFor(string) = %q, want field1", got)
	}
	if got := r.FieldFor("float64"); got != "field2" {
		t.Errorf("FieldFor(float64) = %q, want field2", got)
	}
}

func TestFieldForIsIdempotent(t *testing.T) {
	r := NewFieldRegistry()
	first := r.FieldFor("int")
	second := r.FieldFor("string")
	again := r.FieldFor("int")
	if again != first {
		t.Errorf("FieldFor(int) second call = %q, want %q", again, first)
	}
	if r.FieldFor("string") != second {
		t.Error("FieldFor(string) changed on repeated lookup")
	}
}

func TestLookupReportsUnseenTypes(t *testing.T) {
	r := NewFieldRegistry()
	if _, ok := r.Lookup("int"); ok {
		t.Error("Lookup(int) on empty registry = true, want false")
	}
	r.FieldFor("int")
	f, ok := r.Lookup("int")
	if !ok || f != "field0" {
		t.Errorf("Lookup(int) = (%q, %v), want (field0, true)", f, ok)
	}
}

func TestTypesReturnsInsertionOrder(t *testing.T) {
	r := NewFieldRegistry()
	r.FieldFor("c")
	r.FieldFor("a")
	r.FieldFor("b")
	got := r.Types()
	want := []string{"c", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("Types() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Types()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAsMapSnapshotIsIndependent(t *testing.T) {
	r := NewFieldRegistry()
	r.FieldFor("int")
	m := r.AsMap()
	m["int"] = "mutated"
	if got, _ := r.Lookup("int"); got != "field0" {
		t.Errorf("mutating AsMap() snapshot affected registry: got %q", got)
	}
}
