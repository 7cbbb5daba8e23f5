// Released under an MIT license. See LICENSE.

// Package printer renders nanolisp values as text.
package printer

import (
	"fmt"
	"strings"

	"github.com/nanolisp/nanolisp/internal/value"
)

// Source resolves the ordinals of tagged values. The engine satisfies it.
type Source interface {
	AtomName(ord uint32) string
	PrimName(ord uint32) string
	Pair(p value.T) (car, cdr value.T)
}

// Print renders v: () for the empty list, an atom by its interned name,
// a primitive as <name>, a closure as {ordinal}, a list in parentheses
// with a dotted tail when the tail is not itself a list, and a number
// with ten significant digits.
func Print(s Source, v value.T) string {
	var b strings.Builder

	print(s, &b, v)

	return b.String()
}

func print(s Source, b *strings.Builder, v value.T) {
	switch v.Kind() {
	case value.Nil:
		b.WriteString("()")
	case value.Atom:
		b.WriteString(s.AtomName(v.Ord()))
	case value.Prim:
		b.WriteString("<" + s.PrimName(v.Ord()) + ">")
	case value.Clos:
		fmt.Fprintf(b, "{%d}", v.Ord())
	case value.Cons:
		list(s, b, v)
	default:
		fmt.Fprintf(b, "%.10g", v.Float())
	}
}

func list(s Source, b *strings.Builder, t value.T) {
	b.WriteByte('(')

	for {
		car, cdr := s.Pair(t)

		print(s, b, car)

		t = cdr
		if t.Kind() == value.Nil {
			break
		}

		if t.Kind() != value.Cons {
			b.WriteString(" . ")
			print(s, b, t)

			break
		}

		b.WriteByte(' ')
	}

	b.WriteByte(')')
}
