// Released under an MIT license. See LICENSE.

// Package reader turns text into nanolisp expression trees.
//
// The reader recognizes parenthesized lists, 'x as shorthand for
// (quote x), a dotted tail (. x) inside a list, and comments from a
// semicolon to the end of the line. An atomic token is parsed as a
// number when the whole token is a numeric literal, and interned as an
// atom otherwise.
package reader

import (
	"io"
	"strconv"

	"github.com/nanolisp/nanolisp/internal/value"
)

// Allocator builds the values the reader produces. The engine
// satisfies it.
type Allocator interface {
	Cons(car, cdr value.T) (value.T, error)
	Intern(name string) (value.T, error)
}

// T (reader) encapsulates the nanolisp lexer and parser.
type T struct {
	alloc Allocator
	l     *lexer
	more  func() (string, bool) // Request another line of input.
}

type reader = T

// New creates a reader that allocates through a and calls more when it
// needs another line of input.
func New(a Allocator, more func() (string, bool)) *T {
	return &T{alloc: a, l: newLexer(), more: more}
}

// Read parses one expression. It reports io.EOF when input is
// exhausted, and otherwise only fails when the allocator does.
func (r *reader) Read() (value.T, error) {
	t, err := r.next()
	if err != nil {
		return value.Null, err
	}

	return r.parse(t)
}

func (r *reader) next() (*Token, error) {
	for {
		if t := r.l.Token(); t != nil {
			return t, nil
		}

		line, ok := r.more()
		if !ok {
			return nil, io.EOF
		}

		r.l.Scan(line + "\n")
	}
}

func (r *reader) parse(t *Token) (value.T, error) {
	switch t.Class {
	case Open:
		return r.list()
	case Quote:
		return r.quote()
	default:
		return r.atomic(t.Text)
	}
}

func (r *reader) list() (value.T, error) {
	t, err := r.next()
	if err != nil {
		return value.Null, err
	}

	if t.Class == Close {
		return value.Null, nil
	}

	// A dotted tail: the next expression ends the list.
	if t.Class == Symbol && t.Text == "." {
		x, err := r.Read()
		if err != nil {
			return value.Null, err
		}

		// The token after the tail is dropped without checking that
		// it closes the list; anything extra between a dotted tail
		// and the closing paren is deliberately ignored.
		if _, err := r.next(); err != nil {
			return value.Null, err
		}

		return x, nil
	}

	x, err := r.parse(t)
	if err != nil {
		return value.Null, err
	}

	rest, err := r.list()
	if err != nil {
		return value.Null, err
	}

	return r.alloc.Cons(x, rest)
}

func (r *reader) quote() (value.T, error) {
	q, err := r.alloc.Intern("quote")
	if err != nil {
		return value.Null, err
	}

	x, err := r.Read()
	if err != nil {
		return value.Null, err
	}

	rest, err := r.alloc.Cons(x, value.Null)
	if err != nil {
		return value.Null, err
	}

	return r.alloc.Cons(q, rest)
}

func (r *reader) atomic(text string) (value.T, error) {
	if n, err := strconv.ParseFloat(text, 64); err == nil {
		return value.Num(n), nil
	}

	return r.alloc.Intern(text)
}
