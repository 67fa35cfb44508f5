/*
Package sparse implements a sparse integer matrix used as the backing
store for the parser generator's GOTO and ACTION tables. Most (state,
symbol) pairs never occur — a grammar with a few dozen states and a
few dozen symbols only ever populates a small fraction of the full
state x symbol grid — so a dense [][]int32 wastes almost all of its
cells. Each occupied cell holds either a single int32 (a GOTO target
state) or a pair of int32 (an ACTION table entry: action kind plus
target/production index).

This is a COO (triplet) encoding: occupied cells are kept sorted by
(row, col) in a flat slice, and lookups binary search that slice for the
first entry not strictly left of (row, col).

    https://medium.com/@jmaxg3/101-ways-to-store-a-sparse-matrix-c7f2bf15a229

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package sparse

import (
	"fmt"
	"sort"
)

// IntMatrix is a sparse M x N matrix of int32 values (or int32 pairs).
// Construct with
//
//     m := NewIntMatrix(10, 10, -1)  // last argument is the null-value
//
// Then
//
//     m.Set(2, 3, 4711)   // set a value
//     v := m.Value(2, 3)  // returns 4711
//     m.Add(2, 3, 123)    // add a second value at the same cell
//     n := m.ValueCount() // still 1: one cell occupied
//     v = m.Value(9, 9)   // returns -1, the null-value
//
// Cells cannot be deleted once set, only overwritten with the null-value;
// the backing slice never shrinks.
type IntMatrix struct {
	cells   []cell
	rowcnt  int
	colcnt  int
	nullval int32
}

// cell is one occupied (row, col) position and its stored pair.
type cell struct {
	row, col int
	value    pair
}

// NewIntMatrix creates an m x n matrix. nullValue marks unoccupied cells;
// use DefaultNullValue absent a more specific sentinel.
func NewIntMatrix(m, n int, nullValue int32) *IntMatrix {
	return &IntMatrix{
		cells:   []cell{},
		rowcnt:  m,
		colcnt:  n,
		nullval: nullValue,
	}
}

// DefaultNullValue is the conventional empty-cell sentinel (minimum int32).
const DefaultNullValue = -2147483648

// M returns the row count.
func (m *IntMatrix) M() int { return m.rowcnt }

// N returns the column count.
func (m *IntMatrix) N() int { return m.colcnt }

// NullValue returns the sentinel this matrix uses for unoccupied cells.
func (m *IntMatrix) NullValue() int32 { return m.nullval }

// ValueCount returns the number of occupied cells.
func (m *IntMatrix) ValueCount() int { return len(m.cells) }

// slotFor binary searches the sorted cells slice for (i,j), returning the
// index of an exact match and true, or the insertion point that keeps the
// slice sorted and false.
func (m *IntMatrix) slotFor(i, j int) (int, bool) {
	at := sort.Search(len(m.cells), func(k int) bool { return !m.cells[k].leftOf(i, j) })
	return at, at < len(m.cells) && m.cells[at].at(i, j)
}

// Value returns the primary component stored at (i,j), or NullValue if
// the cell is unoccupied.
func (m *IntMatrix) Value(i, j int) int32 {
	if at, ok := m.slotFor(i, j); ok {
		return m.cells[at].value.first
	}
	return m.nullval
}

// Values returns both components stored at (i,j), or (NullValue, NullValue)
// if the cell is unoccupied.
func (m *IntMatrix) Values(i, j int) (int32, int32) {
	if at, ok := m.slotFor(i, j); ok {
		return m.cells[at].value.first, m.cells[at].value.second
	}
	return m.nullval, m.nullval
}

// Set overwrites the value stored at (i,j), discarding any second
// component previously stored there.
func (m *IntMatrix) Set(i, j int, value int32) *IntMatrix {
	return m.write(i, j, value, false)
}

// Add stores value at (i,j): as the first component if the cell is empty,
// otherwise as the second component, overwriting any second component
// already stored there.
func (m *IntMatrix) Add(i, j int, value int32) *IntMatrix {
	return m.write(i, j, value, true)
}

func (m *IntMatrix) write(i, j int, value int32, appendComponent bool) *IntMatrix {
	at, found := m.slotFor(i, j)
	if found {
		if appendComponent {
			m.cells[at].value = m.cells[at].value.with(value, m.nullval)
		} else {
			m.cells[at].value = newPair(value, m.nullval)
		}
		return m
	}
	nc := cell{row: i, col: j, value: newPair(value, m.nullval)}
	m.cells = append(m.cells, nc)
	copy(m.cells[at+1:], m.cells[at:])
	m.cells[at] = nc
	return m
}

// with returns v with n stored in whichever component is still the
// null-value, or overwriting the second component if both are occupied.
func (v pair) with(n int32, nullval int32) pair {
	if v.first == nullval {
		v.first = n
	} else if v.second == nullval {
		v.second = n
	} else {
		v.second = n
	}
	return v
}

func (c *cell) leftOf(i, j int) bool {
	return c.row < i || c.row == i && c.col < j
}

func (c *cell) at(i, j int) bool {
	return c.row == i && c.col == j
}

// pair holds up to two int32 components per occupied cell.
type pair struct {
	first, second int32
}

func (p pair) String() string {
	return fmt.Sprintf("[%d,%d]", p.first, p.second)
}

func newPair(a, b int32) pair {
	return pair{first: a, second: b}
}
