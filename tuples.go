package cspjson

import (
	"fmt"
	"math"
	"slices"
)

// Flat is the arity of a flat list of integers.
const Flat = -1

// Tuples is an owned, contiguous block of integers viewed either as a flat
// list (arity Flat) or as Len rows of exactly Arity integers.
//
// The zero value is an empty store of arity 0, not Flat: it is a valid empty
// no-goods list but not a valid flat list, so a zero Tuples used as Csp.Vars
// or Constraint.Vars fails Validate with an arity code. Use FlatOf() for an
// empty flat list. A non-zero store comes from
// NewTuples, FlatOf or TuplesOf, which keep len(Data()) == Len()*|Arity()|.
type Tuples struct {
	size  int
	arity int
	data  []int
}

// NewTuples allocates size tuples of the given arity, zero filled. It fails
// with CodeNullOrInvalidArgument for a negative size or an arity below Flat,
// and with CodeOutOfMemory when the element count does not fit in an int.
func NewTuples(size, arity int) (Tuples, error) {
	if size < 0 || arity < Flat {
		return Tuples{}, newIssue(CodeNullOrInvalidArgument, "", -1)
	}
	w := width(arity)
	if w != 0 && size > math.MaxInt/w {
		return Tuples{}, newIssue(CodeOutOfMemory, "", -1)
	}
	t := Tuples{size: size, arity: arity}
	if n := size * w; n > 0 {
		t.data = make([]int, n)
	}
	return t, nil
}

// FlatOf builds a flat store holding vals.
func FlatOf(vals ...int) Tuples {
	t := Tuples{size: len(vals), arity: Flat}
	if len(vals) > 0 {
		t.data = append([]int(nil), vals...)
	}
	return t
}

// TuplesOf builds a store of rows sharing one arity. It panics when a row
// length differs from arity.
func TuplesOf(arity int, rows ...[]int) Tuples {
	t, err := NewTuples(len(rows), arity)
	if err != nil {
		panic(err)
	}
	for i, r := range rows {
		t.SetTuple(i, r...)
	}
	return t
}

func width(arity int) int {
	if arity == Flat {
		return 1
	}
	return arity
}

// Len returns the number of entries (ints for a flat store, rows otherwise).
func (t Tuples) Len() int { return t.size }

// Arity returns Flat or the row width.
func (t Tuples) Arity() int { return t.arity }

// IsFlat reports whether t is a flat list.
func (t Tuples) IsFlat() bool { return t.arity == Flat }

// Data exposes the backing storage (row-major).
func (t Tuples) Data() []int { return t.data }

// At returns the i-th integer of the backing storage.
func (t Tuples) At(i int) int { return t.data[i] }

// Set stores v at storage index i.
func (t Tuples) Set(i, v int) { t.data[i] = v }

// Tuple returns row i as a slice aliasing the storage. A flat store yields
// one-element rows.
func (t Tuples) Tuple(i int) []int {
	w := width(t.arity)
	return t.data[i*w : (i+1)*w : (i+1)*w]
}

// SetTuple copies vals into row i. It panics when len(vals) differs from the
// row width.
func (t Tuples) SetTuple(i int, vals ...int) {
	row := t.Tuple(i)
	if len(vals) != len(row) {
		panic(fmt.Sprintf("cspjson: tuple %d has %d values, want %d", i, len(vals), len(row)))
	}
	copy(row, vals)
}

// Equal reports whether both stores have the same shape and contents.
func (t Tuples) Equal(o Tuples) bool {
	return t.size == o.size && t.arity == o.arity && slices.Equal(t.data, o.data)
}

// Contains reports whether v occurs in the storage (linear scan).
func (t Tuples) Contains(v int) bool {
	return slices.Contains(t.data, v)
}

// Free releases the storage and resets t to the zero value.
func (t *Tuples) Free() {
	if t == nil {
		return
	}
	*t = Tuples{}
}
