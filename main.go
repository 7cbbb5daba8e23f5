/*
Nanolisp is a tiny Lisp interpreter. It reads one expression at a time
from standard input, evaluates it against a global environment of named
bindings and built-in operations, prints the result, and repeats until
input ends:

	[8104]> (define fact (lambda (n) (if (< n 1) 1 (* n (fact (- n 1))))))
	fact
	[8058]> (fact 5)
	120

All allocation happens in one fixed-capacity arena shared by interned
atom names and cons cells; the cells built while evaluating a top-level
expression are discarded en masse once its result has been printed.

Nanolisp is released under an MIT-style license.
*/
package main

import (
	"os"

	"github.com/nanolisp/nanolisp/internal/engine"
	"github.com/nanolisp/nanolisp/internal/options"
	"github.com/nanolisp/nanolisp/internal/ui"
)

func main() {
	options.Parse()

	os.Exit(ui.Run(engine.New(engine.DefaultCells, engine.DefaultNames)))
}
