// Released under an MIT license. See LICENSE.

// Package arena provides nanolisp's fixed-capacity allocator.
//
// An arena is two fixed regions: a byte region holding interned,
// NUL-terminated atom names, growing up from offset 0, and a region of
// value slots holding cons cells, growing down from the top. A cons
// cell is two adjacent slots at (sp, sp+1) holding (cdr, car); the
// cell's ordinal is its sp at allocation time, so ordinals strictly
// decrease as cells are allocated and allocation order can be recovered
// from ordinal magnitude.
//
// Nothing is freed individually. Atom names are interned for the life
// of the arena. Cells are discarded en masse by resetting sp to an
// earlier mark.
package arena

import (
	"errors"

	"github.com/nanolisp/nanolisp/internal/value"
)

// Allocation failures. The arena never aborts; callers decide how to
// degrade when a region fills.
var (
	ErrCellsFull = errors.New("arena: cell region full")
	ErrNamesFull = errors.New("arena: atom name region full")
)

// T (arena) is a fixed-capacity allocator for atom names and cons cells.
type T struct {
	cells []value.T // Cons cells, allocated from the top down.
	names []byte    // Interned atom names, allocated from the bottom up.
	hp    uint32    // First free byte in names.
	sp    uint32    // Lowest used slot in cells.
}

type arena = T

// New creates an arena with cells value slots and names bytes of atom
// name capacity.
func New(cells, names int) *T {
	return &T{
		cells: make([]value.T, cells),
		names: make([]byte, names),
		sp:    uint32(cells),
	}
}

// Intern returns the atom for name, interning it if needed. Interning
// the same text twice yields the identical value. Interned names are
// never reclaimed.
func (a *arena) Intern(name string) (value.T, error) {
	i := uint32(0)
	for i < a.hp {
		s := a.NameAt(i)
		if s == name {
			return value.Box(value.Atom, i), nil
		}

		i += uint32(len(s)) + 1
	}

	if int(a.hp)+len(name)+1 > len(a.names) {
		return value.Null, ErrNamesFull
	}

	copy(a.names[a.hp:], name)
	a.names[a.hp+uint32(len(name))] = 0
	a.hp += uint32(len(name)) + 1

	return value.Box(value.Atom, i), nil
}

// NameAt returns the name interned at the byte offset ord.
func (a *arena) NameAt(ord uint32) string {
	end := ord
	for a.names[end] != 0 {
		end++
	}

	return string(a.names[ord:end])
}

// Cons allocates a cell holding (cdr, car) and returns the cons value
// addressing it.
func (a *arena) Cons(car, cdr value.T) (value.T, error) {
	if a.sp < 2 {
		return value.Null, ErrCellsFull
	}

	a.sp -= 2
	a.cells[a.sp] = cdr
	a.cells[a.sp+1] = car

	return value.Box(value.Cons, a.sp), nil
}

// Car returns the car of the cell addressed by p.
// If p is not a cons or a closure, this function will panic.
func (a *arena) Car(p value.T) value.T {
	return a.cells[cell(p)+1]
}

// Cdr returns the cdr of the cell addressed by p.
// If p is not a cons or a closure, this function will panic.
func (a *arena) Cdr(p value.T) value.T {
	return a.cells[cell(p)]
}

func cell(p value.T) uint32 {
	if k := p.Kind(); k != value.Cons && k != value.Clos {
		panic("arena: not a pair")
	}

	return p.Ord()
}

// Mark captures the current cell allocation point.
func (a *arena) Mark() uint32 {
	return a.sp
}

// Reset discards every cell allocated since the mark m was captured.
// No destructors run; cells never hold non-arena resources.
func (a *arena) Reset(m uint32) {
	a.sp = m
}

// Free returns the number of free cell slots.
func (a *arena) Free() int {
	return int(a.sp)
}

// Cap returns the total number of cell slots.
func (a *arena) Cap() int {
	return len(a.cells)
}
