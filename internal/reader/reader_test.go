// Released under an MIT license. See LICENSE.

package reader

import (
	"errors"
	"io"
	"testing"

	"github.com/nanolisp/nanolisp/internal/arena"
	"github.com/nanolisp/nanolisp/internal/value"
)

type harness struct {
	t *testing.T
	a *arena.T
	r *T
}

func setup(t *testing.T, lines ...string) *harness {
	t.Helper()

	a := arena.New(256, 256)

	return &harness{t: t, a: a, r: New(a, func() (string, bool) {
		if len(lines) == 0 {
			return "", false
		}

		line := lines[0]
		lines = lines[1:]

		return line, true
	})}
}

func (h *harness) read() value.T {
	h.t.Helper()

	x, err := h.r.Read()
	if err != nil {
		h.t.Fatalf("Read: %v", err)
	}

	return x
}

func (h *harness) number(x value.T, want float64) {
	h.t.Helper()

	if x.Kind() != value.Number || x.Float() != want {
		h.t.Errorf("got kind %d (%g), want the number %g", x.Kind(), x.Float(), want)
	}
}

func (h *harness) atom(x value.T, name string) {
	h.t.Helper()

	if x.Kind() != value.Atom {
		h.t.Fatalf("got kind %d, want an atom", x.Kind())
	}

	if got := h.a.NameAt(x.Ord()); got != name {
		h.t.Errorf("got atom %s, want %s", got, name)
	}
}

func TestNumbers(t *testing.T) {
	h := setup(t, "42 -2.5e3 0.5")

	h.number(h.read(), 42)
	h.number(h.read(), -2500)
	h.number(h.read(), 0.5)
}

func TestAtoms(t *testing.T) {
	h := setup(t, "foo bar foo 1x")

	x := h.read()
	h.atom(x, "foo")
	h.atom(h.read(), "bar")

	// Same text, identical atom.
	if !h.read().Equal(x) {
		t.Error("foo interned twice gave distinct atoms")
	}

	// Not a full numeric literal, so it is an atom.
	h.atom(h.read(), "1x")
}

func TestList(t *testing.T) {
	h := setup(t, "(1 2 3)")

	x := h.read()

	for _, want := range []float64{1, 2, 3} {
		if x.Kind() != value.Cons {
			t.Fatalf("got kind %d, want a cons", x.Kind())
		}

		h.number(h.a.Car(x), want)

		x = h.a.Cdr(x)
	}

	if x.Kind() != value.Nil {
		t.Errorf("list did not end in (), got kind %d", x.Kind())
	}
}

func TestEmptyList(t *testing.T) {
	h := setup(t, "()")

	if x := h.read(); x.Kind() != value.Nil {
		t.Errorf("got kind %d, want ()", x.Kind())
	}
}

func TestDottedPair(t *testing.T) {
	h := setup(t, "(1 . 2)")

	x := h.read()

	if x.Kind() != value.Cons {
		t.Fatalf("got kind %d, want a cons", x.Kind())
	}

	h.number(h.a.Car(x), 1)
	h.number(h.a.Cdr(x), 2)
}

func TestDottedTailLeniency(t *testing.T) {
	h := setup(t, "(1 . 2 3)")

	// The expression after a dotted tail ends the list; whatever
	// follows it before the closing paren is dropped, and the paren
	// itself is left for the next read, which takes it as an atom.
	x := h.read()

	h.number(h.a.Car(x), 1)
	h.number(h.a.Cdr(x), 2)

	h.atom(h.read(), ")")
}

func TestQuoteShorthand(t *testing.T) {
	h := setup(t, "'x")

	q := h.read()

	h.atom(h.a.Car(q), "quote")
	h.atom(h.a.Car(h.a.Cdr(q)), "x")

	if h.a.Cdr(h.a.Cdr(q)).Kind() != value.Nil {
		t.Error("quote form did not end in ()")
	}
}

func TestNestedList(t *testing.T) {
	h := setup(t, "(a (b) c)")

	x := h.read()

	h.atom(h.a.Car(x), "a")

	inner := h.a.Car(h.a.Cdr(x))
	h.atom(h.a.Car(inner), "b")

	h.atom(h.a.Car(h.a.Cdr(h.a.Cdr(x))), "c")
}

func TestComments(t *testing.T) {
	h := setup(t, "; a comment", "42 ; trailing", "(1 ; inside a list", "2)")

	h.number(h.read(), 42)

	x := h.read()
	h.number(h.a.Car(x), 1)
	h.number(h.a.Car(h.a.Cdr(x)), 2)
}

func TestExpressionSpansLines(t *testing.T) {
	h := setup(t, "(1", "2", ")")

	x := h.read()

	h.number(h.a.Car(x), 1)
	h.number(h.a.Car(h.a.Cdr(x)), 2)
}

func TestEndOfInput(t *testing.T) {
	h := setup(t, "1")

	h.number(h.read(), 1)

	if _, err := h.r.Read(); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestAllocationFailure(t *testing.T) {
	a := arena.New(2, 64)

	r := New(a, func() (string, bool) { return "(1 2 3)", true })

	if _, err := r.Read(); !errors.Is(err, arena.ErrCellsFull) {
		t.Errorf("expected ErrCellsFull, got %v", err)
	}
}
