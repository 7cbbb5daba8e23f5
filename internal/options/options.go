// Released under an MIT license. See LICENSE.

// Package options handles nanolisp's command line and interactive mode.
package options

import (
	"os"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"
)

//nolint:gochecknoglobals
var (
	interactive bool

	usage = `nanolisp

Usage:
  nanolisp
  nanolisp -h

Options:
  -h, --help  Display this help.

Expressions are read from stdin and one result is printed per
expression; end of input ends the session. If stdin is a TTY, line
editing and history are enabled.
`
)

// Interactive returns true if nanolisp is reading from a terminal.
func Interactive() bool {
	return interactive
}

// Parse processes the command line.
func Parse() {
	_, err := docopt.ParseDoc(usage)
	if err != nil {
		// Error in the usage doc. This should never happen.
		panic(err.Error())
	}

	interactive = isatty.IsTerminal(os.Stdin.Fd())
}
