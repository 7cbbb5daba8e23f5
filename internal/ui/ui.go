// Released under an MIT license. See LICENSE.

// Package ui provides nanolisp's read-eval-print loop.
package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/peterh/liner"

	"github.com/nanolisp/nanolisp/internal/engine"
	"github.com/nanolisp/nanolisp/internal/options"
	"github.com/nanolisp/nanolisp/internal/printer"
	"github.com/nanolisp/nanolisp/internal/reader"
)

const banner = "--- nanolisp ---"

// Run reads expressions, evaluates them against m, prints each result,
// and reclaims the arena after each one, until input ends. It returns
// the process exit status.
func Run(m *engine.T) int {
	fmt.Println(banner)

	if !options.Interactive() {
		s := bufio.NewScanner(os.Stdin)

		return loop(m, func() (string, bool) {
			if !s.Scan() {
				return "", false
			}

			return s.Text(), true
		}, nil)
	}

	cli := liner.NewLiner()
	defer cli.Close()

	cli.SetCtrlCAborts(true)

	aborted := false

	// The prompt shows the remaining free cell capacity.
	return loop(m, func() (string, bool) {
		line, err := cli.Prompt(fmt.Sprintf("[%d]> ", m.Free()))

		switch err {
		case nil:
			if line != "" {
				cli.AppendHistory(line)
			}

			return line, true
		case liner.ErrPromptAborted:
			aborted = true

			return "", false
		default:
			return "", false
		}
	}, &aborted)
}

func loop(m *engine.T, more func() (string, bool), aborted *bool) int {
	r := reader.New(m, more)

	for {
		x, err := r.Read()
		if err != nil {
			if aborted != nil && *aborted {
				// Ctrl-C: abandon the partial expression.
				*aborted = false

				fmt.Println()
				m.Reclaim()

				r = reader.New(m, more)

				continue
			}

			if errors.Is(err, io.EOF) {
				return 0
			}

			// The arena filled while building an expression.
			// Reclaiming frees the partial tree.
			fmt.Fprintln(os.Stderr, "error:", err)
			m.Reclaim()

			r = reader.New(m, more)

			continue
		}

		v, err := m.Eval(x)

		switch {
		case err == nil:
			fmt.Println(printer.Print(m, v))
		case errors.Is(err, engine.ErrQuit):
			return 0
		default:
			fmt.Fprintln(os.Stderr, "error:", err)
		}

		m.Reclaim()
	}
}
