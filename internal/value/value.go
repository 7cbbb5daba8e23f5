// Released under an MIT license. See LICENSE.

// Package value provides nanolisp's tagged value type.
//
// A value is either a number, carrying any float64, or a tagged value,
// carrying a kind and a 32-bit ordinal. What an ordinal means depends on
// the kind: a byte offset into the arena's name region for an atom, a
// primitive table index, or a cell slot index for a cons or closure.
package value

import "math"

// Kind identifies what a value holds.
type Kind uint8

// Number is the zero Kind so that the zero T is the number 0.
const (
	Number Kind = iota
	Atom
	Prim
	Cons
	Clos
	Nil
)

// T (value) is a single Lisp value.
type T struct {
	kind Kind
	ord  uint32
	num  float64
}

type value = T

// Null is the empty list.
var Null = T{kind: Nil} //nolint:gochecknoglobals

// Num creates a number. Every float64, including NaN and the infinities,
// is a valid number.
func Num(f float64) T {
	return T{num: f}
}

// Box creates a tagged value with the kind k and the ordinal i.
// Box must not be used to create numbers; use Num.
func Box(k Kind, i uint32) T {
	return T{kind: k, ord: i}
}

// Kind returns the kind of the value v.
func (v value) Kind() Kind {
	return v.kind
}

// Ord returns the ordinal of the tagged value v, and 0 for a number.
func (v value) Ord() uint32 {
	return v.ord
}

// Float returns the value of the number v. For a tagged value Float
// returns NaN, so that arithmetic on non-numbers propagates NaN.
func (v value) Float() float64 {
	if v.kind != Number {
		return math.NaN()
	}

	return v.num
}

// Equal returns true if v and o are the identical value: the same bit
// pattern for numbers (so a NaN is equal to itself, and 0 and -0 are
// not equal), the same kind and ordinal otherwise. Two separately
// allocated cells with equal contents are not Equal.
func (v value) Equal(o T) bool {
	if v.kind != o.kind {
		return false
	}

	if v.kind == Number {
		return math.Float64bits(v.num) == math.Float64bits(o.num)
	}

	return v.ord == o.ord
}
