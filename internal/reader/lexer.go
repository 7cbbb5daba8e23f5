// Released under an MIT license. See LICENSE.

package reader

// The lexer below uses the state function approach from Go's
// text/template lexer, described in Rob Pike's talk "Lexical Scanning
// in Go". See https://talks.golang.org/2011/lex.slide for details.

type action func(*lexer) action

type lexer struct {
	bytes  string   // Buffer being scanned.
	first  int      // Index of the current token's first byte.
	index  int      // Index of the current byte.
	queue  []string // Buffers waiting to be scanned.
	state  action   // Current action.
	tokens chan *Token
}

func newLexer() *lexer {
	return &lexer{state: skipSpace, tokens: make(chan *Token, 16)}
}

// Scan passes a buffer to the lexer for scanning. Tokens never span
// buffers, so each buffer should end in a newline.
func (l *lexer) Scan(text string) {
	l.queue = append(l.queue, text)
}

// Token returns the next token, or nil if the lexer needs more input.
func (l *lexer) Token() *Token {
	for {
		select {
		case t := <-l.tokens:
			return t
		default:
		}

		if l.index == len(l.bytes) && !l.gather() {
			return nil
		}

		l.state = l.state(l)
	}
}

func (l *lexer) gather() bool {
	if len(l.queue) == 0 {
		return false
	}

	l.bytes = l.queue[0]
	l.queue = l.queue[1:]
	l.first, l.index = 0, 0

	return true
}

func (l *lexer) emit(c Class) {
	l.tokens <- &Token{Class: c, Text: l.bytes[l.first:l.index]}
	l.first = l.index
}

func skipSpace(l *lexer) action {
	for l.index < len(l.bytes) {
		c := l.bytes[l.index]

		switch {
		case c == ';':
			return skipComment
		case c <= ' ':
			l.index++
		default:
			l.first = l.index

			return scanToken
		}
	}

	return skipSpace
}

// A comment runs from a semicolon to the end of the line.
func skipComment(l *lexer) action {
	for l.index < len(l.bytes) {
		if l.bytes[l.index] == '\n' {
			return skipSpace
		}

		l.index++
	}

	return skipSpace
}

func scanToken(l *lexer) action {
	switch l.bytes[l.index] {
	case '(':
		l.index++
		l.emit(Open)
	case ')':
		l.index++
		l.emit(Close)
	case '\'':
		l.index++
		l.emit(Quote)
	default:
		return scanSymbol
	}

	return skipSpace
}

func scanSymbol(l *lexer) action {
	for l.index < len(l.bytes) {
		c := l.bytes[l.index]
		if c <= ' ' || c == '(' || c == ')' || c == ';' {
			break
		}

		l.index++
	}

	l.emit(Symbol)

	return skipSpace
}
