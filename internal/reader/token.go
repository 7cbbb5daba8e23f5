// Released under an MIT license. See LICENSE.

package reader

// Class is the lexical class of a token.
type Class int

// Token classes. A Symbol is any run of non-delimiter characters; the
// parser decides whether it is a number, a dot, or an atom.
const (
	Open Class = iota
	Close
	Quote
	Symbol
)

// Token is one lexical token.
type Token struct {
	Class Class
	Text  string
}
