package iteratable

// Element is anything that can live in a Set: it must be able to compute a
// stable string key (used for O(1) membership and dedup) and compare
// itself against another Element of the same concrete type.
type Element interface {
	Key() string
	Equals(other Element) bool
}

// Set is a small special-purpose set container geared towards the
// item-set constructions LR(0) closure/goto need: fast membership by key,
// destructive union, and a simple iteration protocol. As the package doc
// warns, all mutating operations act on (and return) the receiver.
//
// No implementation of this type existed in the retrieved example pack —
// only its package doc comment did. This authors the API inferred from
// its call sites in the parser-table generator (Add/Copy/Union/Equals/
// IterateOnce/Next/Item/AppendTo/Size/Empty).
type Set struct {
	items map[string]Element
	order []string
	iter  int
	iterOK bool
}

// NewSet creates an empty Set, optionally pre-populated with initial.
func NewSet(initial ...Element) *Set {
	s := &Set{items: map[string]Element{}}
	for _, e := range initial {
		s.Add(e)
	}
	return s
}

// Add inserts e if not already present (by Key), returning the receiver.
func (s *Set) Add(e Element) *Set {
	k := e.Key()
	if _, ok := s.items[k]; !ok {
		s.items[k] = e
		s.order = append(s.order, k)
	}
	return s
}

// Contains reports whether an element with e's key is already a member.
func (s *Set) Contains(e Element) bool {
	_, ok := s.items[e.Key()]
	return ok
}

// Size returns the number of elements.
func (s *Set) Size() int { return len(s.order) }

// Empty reports whether the set has no elements.
func (s *Set) Empty() bool { return len(s.order) == 0 }

// Copy returns a shallow copy of s (elements themselves are not cloned).
func (s *Set) Copy() *Set {
	cp := NewSet()
	for _, k := range s.order {
		cp.Add(s.items[k])
	}
	return cp
}

// Union destructively adds every element of other into s, returning s.
func (s *Set) Union(other *Set) *Set {
	if other == nil {
		return s
	}
	for _, k := range other.order {
		s.Add(other.items[k])
	}
	return s
}

// Equals reports whether s and other contain exactly the same keys.
func (s *Set) Equals(other *Set) bool {
	if other == nil || len(s.order) != len(other.order) {
		return false
	}
	for k := range s.items {
		if _, ok := other.items[k]; !ok {
			return false
		}
	}
	return true
}

// Values returns every element, in insertion order.
func (s *Set) Values() []Element {
	out := make([]Element, len(s.order))
	for i, k := range s.order {
		out[i] = s.items[k]
	}
	return out
}

// AppendTo appends every element of s to dst, in insertion order, and
// returns the extended slice.
func (s *Set) AppendTo(dst []Element) []Element {
	for _, k := range s.order {
		dst = append(dst, s.items[k])
	}
	return dst
}

// IterateOnce resets the iteration cursor to the start of the set.
func (s *Set) IterateOnce() *Set {
	s.iter = -1
	s.iterOK = true
	return s
}

// Next advances the iteration cursor, reporting whether an element is
// available at the new position.
func (s *Set) Next() bool {
	if !s.iterOK {
		return false
	}
	s.iter++
	return s.iter < len(s.order)
}

// Item returns the element at the current iteration cursor.
func (s *Set) Item() Element {
	if s.iter < 0 || s.iter >= len(s.order) {
		return nil
	}
	return s.items[s.order[s.iter]]
}
