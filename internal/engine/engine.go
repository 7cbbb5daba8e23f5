// Released under an MIT license. See LICENSE.

// Package engine provides an evaluator for parsed nanolisp expressions.
//
// An engine owns an arena and a global environment rooted in it. An
// environment is a list of (name . value) pairs terminated by the empty
// list; extending an environment prepends a pair and never mutates
// existing cells. Every define prepends to the global environment, so
// the global environment's head is always the most recently allocated
// long-lived cell and every cell allocated above it while evaluating
// one top-level expression can be discarded afterwards by Reclaim.
package engine

import (
	"errors"

	"github.com/nanolisp/nanolisp/internal/arena"
	"github.com/nanolisp/nanolisp/internal/value"
)

// Default arena capacities, in value slots and name bytes.
const (
	DefaultCells = 8192
	DefaultNames = 2048
)

// ErrQuit is reported by Eval when the expression asked the session to end.
var ErrQuit = errors.New("quit")

// T (engine) is one interpreter instance.
type T struct {
	a   *arena.T
	env value.T // Global environment.
	tru value.T // The atom t, explicit truth.
	err value.T // The atom ERR, returned to indicate errors.
}

type engine = T

// Panics used to unwind the evaluator. Eval turns both into errors.
type fatal struct{ err error }

type quit struct{}

// New creates an engine with cells value slots and names bytes of atom
// capacity, and installs the primitives in a fresh global environment.
// The capacities must at least hold the primitive bindings; New panics
// when they cannot.
func New(cells, names int) *T {
	m := &T{a: arena.New(cells, names), env: value.Null}

	m.err = m.atom("ERR")
	m.tru = m.atom("t")
	m.env = m.pair(m.tru, m.tru, value.Null)

	for i, p := range prims {
		m.env = m.pair(m.atom(p.name), value.Box(value.Prim, uint32(i)), m.env)
	}

	return m
}

// Eval evaluates one top-level expression against the global
// environment. Failures the evaluator expresses as values (unbound
// symbols, type mismatches) come back as the ERR atom, not as an error;
// err is non-nil only for arena exhaustion or ErrQuit.
func (m *engine) Eval(x value.T) (v value.T, err error) {
	defer func() {
		switch r := recover().(type) {
		case nil:
		case fatal:
			v, err = value.Null, r.err
		case quit:
			v, err = value.Null, ErrQuit
		default:
			panic(r)
		}
	}()

	return m.eval(x, m.env), nil
}

// Reclaim discards every cell allocated since the last time the global
// environment grew. It must only be called between top-level
// evaluations; a closure over a local environment that is not reachable
// from the global environment does not survive it.
func (m *engine) Reclaim() {
	if m.env.Kind() == value.Cons {
		m.a.Reset(m.env.Ord())
	} else {
		m.a.Reset(uint32(m.a.Cap()))
	}
}

// Free returns the number of free cell slots in the arena.
func (m *engine) Free() int {
	return m.a.Free()
}

// Intern returns the atom for name. The reader uses this to build
// expression trees.
func (m *engine) Intern(name string) (value.T, error) {
	return m.a.Intern(name)
}

// Cons allocates a new cell. The reader uses this to build expression
// trees.
func (m *engine) Cons(car, cdr value.T) (value.T, error) {
	return m.a.Cons(car, cdr)
}

// AtomName returns the interned name of the atom with the ordinal ord.
func (m *engine) AtomName(ord uint32) string {
	return m.a.NameAt(ord)
}

// PrimName returns the name of the primitive with the ordinal ord.
func (m *engine) PrimName(ord uint32) string {
	if int(ord) >= len(prims) {
		return "?"
	}

	return prims[ord].name
}

// Pair returns the car and cdr of the cell addressed by p.
func (m *engine) Pair(p value.T) (car, cdr value.T) {
	return m.a.Car(p), m.a.Cdr(p)
}

// The evaluator proper. Structural recursion over value kinds: an atom
// is looked up, a cons applies the value of its head to its unevaluated
// tail, and everything else is self-evaluating.
func (m *engine) eval(x, e value.T) value.T {
	switch x.Kind() {
	case value.Atom:
		return m.assoc(x, e)
	case value.Cons:
		return m.apply(m.eval(m.car(x), e), m.cdr(x), e)
	default:
		return x
	}
}

// apply invokes the primitive or closure f on the unevaluated argument
// list t. Each primitive decides itself whether to evaluate t.
func (m *engine) apply(f, t, e value.T) value.T {
	switch f.Kind() {
	case value.Prim:
		return prims[f.Ord()].fn(m, t, e)
	case value.Clos:
		return m.reduce(f, t, e)
	default:
		return m.err
	}
}

// reduce applies the closure f: it evaluates the arguments t eagerly in
// the caller's environment e, binds them to the closure's parameter
// list, and evaluates the body in the extended environment. A closure
// that captured the empty list resolves free variables against the
// global environment as it is now, which is what lets a define refer to
// itself. Recursion depth here grows with call depth; there is no
// tail-call optimization.
func (m *engine) reduce(f, t, e value.T) value.T {
	captured := m.cdr(f)
	if captured.Kind() == value.Nil {
		captured = m.env
	}

	return m.eval(m.cdr(m.car(f)), m.bind(m.car(m.car(f)), m.evlis(t, e), captured))
}

// evlis evaluates the list t, building a new list of the results. A
// non-list tail that is an atom is treated as a spread: it is looked up
// and its value, a list, becomes the remaining arguments. This is how a
// variadic function forwards the rest of its arguments in one go.
func (m *engine) evlis(t, e value.T) value.T {
	switch t.Kind() {
	case value.Cons:
		return m.cons(m.eval(m.car(t), e), m.evlis(m.cdr(t), e))
	case value.Atom:
		return m.assoc(t, e)
	default:
		return value.Null
	}
}

// bind extends e by destructuring the parameter list v against the
// argument list t. A lone symbol takes the entire remaining argument
// list, which is how variadic parameters work. Extra arguments are
// ignored; missing arguments bind whatever destructuring an exhausted
// list yields, which is the ERR atom.
func (m *engine) bind(v, t, e value.T) value.T {
	switch v.Kind() {
	case value.Nil:
		return e
	case value.Cons:
		return m.bind(m.cdr(v), m.cdr(t), m.pair(m.car(v), m.car(t), e))
	default:
		return m.pair(v, t, e)
	}
}

// assoc looks the symbol v up in the environment e. Names compare by
// identity: interning guarantees one ordinal per name.
func (m *engine) assoc(v, e value.T) value.T {
	for e.Kind() == value.Cons && !v.Equal(m.car(m.car(e))) {
		e = m.cdr(e)
	}

	if e.Kind() == value.Cons {
		return m.cdr(m.car(e))
	}

	return m.err
}

// pair prepends the binding (v . x) to the environment e.
func (m *engine) pair(v, x, e value.T) value.T {
	return m.cons(m.cons(v, x), e)
}

// closure builds a closure capturing e. A capture of the current global
// environment is collapsed to the empty list so the closure sees later
// global defines.
func (m *engine) closure(v, x, e value.T) value.T {
	captured := e
	if e.Equal(m.env) {
		captured = value.Null
	}

	return value.Box(value.Clos, m.pair(v, x, captured).Ord())
}

// letForm is true when t looks like a (name value) binding rather than
// the trailing body expression of a let*: a non-empty list whose tail
// is also a non-empty list.
func (m *engine) letForm(t value.T) bool {
	return t.Kind() == value.Cons && m.cdr(t).Kind() == value.Cons
}

// car returns the head of the pair p, or the ERR atom if p is not a
// pair. Closures are cells too, which is what lets reduce take them
// apart; it also means errors pass through car unchanged, since the
// ERR atom is not a pair.
func (m *engine) car(p value.T) value.T {
	if k := p.Kind(); k != value.Cons && k != value.Clos {
		return m.err
	}

	return m.a.Car(p)
}

// cdr returns the tail of the pair p, or the ERR atom if p is not a pair.
func (m *engine) cdr(p value.T) value.T {
	if k := p.Kind(); k != value.Cons && k != value.Clos {
		return m.err
	}

	return m.a.Cdr(p)
}

// cons allocates a cell, unwinding to Eval if the arena is full.
func (m *engine) cons(car, cdr value.T) value.T {
	p, err := m.a.Cons(car, cdr)
	if err != nil {
		panic(fatal{err})
	}

	return p
}

// atom interns a name, unwinding to Eval if the arena is full.
func (m *engine) atom(name string) value.T {
	a, err := m.a.Intern(name)
	if err != nil {
		panic(fatal{err})
	}

	return a
}

// truth maps a Go bool to the atom t or the empty list.
func (m *engine) truth(v bool) value.T {
	if v {
		return m.tru
	}

	return value.Null
}
