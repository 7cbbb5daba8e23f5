// Released under an MIT license. See LICENSE.

package engine

import (
	"github.com/nanolisp/nanolisp/internal/value"
)

// A primitive receives the raw, unevaluated argument list t and the
// caller's environment e, and decides itself whether to evaluate t.
type prim struct {
	name string
	fn   func(m *engine, t, e value.T) value.T
}

// The primitive table. A PRIM value's ordinal is its index here, so the
// order is part of the engine's identity: apply dispatches through it
// and the printer uses it for display names. The table is populated in
// init because its entries and apply refer to each other.
//
//nolint:gochecknoglobals
var prims []prim

func init() { //nolint:gochecknoinits
	prims = []prim{
		{"eval", evaluate},
		{"quote", quote},
		{"cons", cons},
		{"car", car},
		{"cdr", cdr},
		{"+", add},
		{"-", sub},
		{"*", mul},
		{"/", div},
		{"int", truncate},
		{"<", lt},
		{"equ", eq},
		{"or", or},
		{"and", and},
		{"not", not},
		{"cond", cond},
		{"if", branch},
		{"let*", letStar},
		{"lambda", lambda},
		{"define", define},
		{"quit", quitSession},
	}
}

// (eval x) evaluates its evaluated argument once more.
func evaluate(m *engine, t, e value.T) value.T {
	return m.eval(m.car(m.evlis(t, e)), e)
}

// (quote x) returns x unevaluated.
func quote(m *engine, t, _ value.T) value.T {
	return m.car(t)
}

// (cons x y) constructs the pair (x . y).
func cons(m *engine, t, e value.T) value.T {
	t = m.evlis(t, e)

	return m.cons(m.car(t), m.car(m.cdr(t)))
}

// (car p) returns the head of the pair p, or ERR if p is not a pair.
func car(m *engine, t, e value.T) value.T {
	return m.car(m.car(m.evlis(t, e)))
}

// (cdr p) returns the tail of the pair p, or ERR if p is not a pair.
func cdr(m *engine, t, e value.T) value.T {
	return m.cdr(m.car(m.evlis(t, e)))
}

// The arithmetic primitives fold left over their operands with the
// first operand as the starting value. A non-number operand turns the
// result into NaN.

func add(m *engine, t, e value.T) value.T {
	t = m.evlis(t, e)
	n := m.car(t).Float()

	for t = m.cdr(t); t.Kind() == value.Cons; t = m.cdr(t) {
		n += m.car(t).Float()
	}

	return value.Num(n)
}

func sub(m *engine, t, e value.T) value.T {
	t = m.evlis(t, e)
	n := m.car(t).Float()

	for t = m.cdr(t); t.Kind() == value.Cons; t = m.cdr(t) {
		n -= m.car(t).Float()
	}

	return value.Num(n)
}

func mul(m *engine, t, e value.T) value.T {
	t = m.evlis(t, e)
	n := m.car(t).Float()

	for t = m.cdr(t); t.Kind() == value.Cons; t = m.cdr(t) {
		n *= m.car(t).Float()
	}

	return value.Num(n)
}

func div(m *engine, t, e value.T) value.T {
	t = m.evlis(t, e)
	n := m.car(t).Float()

	for t = m.cdr(t); t.Kind() == value.Cons; t = m.cdr(t) {
		n /= m.car(t).Float()
	}

	return value.Num(n)
}

// (int n) truncates n when it is within the range an int64 represents
// exactly, and leaves it unchanged otherwise.
func truncate(m *engine, t, e value.T) value.T {
	v := m.car(m.evlis(t, e))

	if n := v.Float(); n < 1e16 && n > -1e16 {
		return value.Num(float64(int64(n)))
	}

	return v
}

// (< x y) is numeric less-than. Any comparison involving a non-number
// is false.
func lt(m *engine, t, e value.T) value.T {
	t = m.evlis(t, e)

	return m.truth(m.car(t).Float() < m.car(m.cdr(t)).Float())
}

// (equ x y) is identity: bit-pattern equality, not structural equality.
func eq(m *engine, t, e value.T) value.T {
	t = m.evlis(t, e)

	return m.truth(m.car(t).Equal(m.car(m.cdr(t))))
}

// (not x) is t iff x is the empty list.
func not(m *engine, t, e value.T) value.T {
	return m.truth(m.car(m.evlis(t, e)).Kind() == value.Nil)
}

// (or x1 ... xk) evaluates left to right and returns the first operand
// that is not the empty list, without evaluating the rest.
func or(m *engine, t, e value.T) value.T {
	x := value.Null

	for t.Kind() == value.Cons {
		x = m.eval(m.car(t), e)
		if x.Kind() != value.Nil {
			break
		}

		t = m.cdr(t)
	}

	return x
}

// (and x1 ... xk) evaluates left to right and stops at the first
// operand that is the empty list, returning the last one evaluated.
func and(m *engine, t, e value.T) value.T {
	x := value.Null

	for t.Kind() == value.Cons {
		x = m.eval(m.car(t), e)
		if x.Kind() == value.Nil {
			break
		}

		t = m.cdr(t)
	}

	return x
}

// (cond (x1 y1) ... (xk yk)) evaluates guards left to right and returns
// the body of the first truthy one. When no guard matches the exhausted
// list falls through the pair accessors to ERR.
func cond(m *engine, t, e value.T) value.T {
	for t.Kind() == value.Cons && m.eval(m.car(m.car(t)), e).Kind() == value.Nil {
		t = m.cdr(t)
	}

	return m.eval(m.car(m.cdr(m.car(t))), e)
}

// (if x y z) evaluates y when x is truthy and z otherwise.
func branch(m *engine, t, e value.T) value.T {
	if m.eval(m.car(t), e).Kind() == value.Nil {
		t = m.cdr(t)
	}

	return m.eval(m.car(m.cdr(t)), e)
}

// (let* (v1 x1) ... (vk xk) y) binds each vi in turn, each binding
// visible to the next, and evaluates y in the fully extended
// environment.
func letStar(m *engine, t, e value.T) value.T {
	for ; m.letForm(t); t = m.cdr(t) {
		e = m.pair(m.car(m.car(t)), m.eval(m.car(m.cdr(m.car(t))), e), e)
	}

	return m.eval(m.car(t), e)
}

// (lambda v x) constructs a closure over the current environment.
func lambda(m *engine, t, e value.T) value.T {
	return m.closure(m.car(t), m.car(m.cdr(t)), e)
}

// (define v x) evaluates x in the current environment, binds v to the
// result in the global environment, and returns v.
func define(m *engine, t, e value.T) value.T {
	m.env = m.pair(m.car(t), m.eval(m.car(m.cdr(t)), e), m.env)

	return m.car(t)
}

// (quit) ends the session.
func quitSession(*engine, value.T, value.T) value.T {
	panic(quit{})
}
