// Package expr tokenizes and parses dice expressions such as "-2d3+1d4".
//
// The grammar, from lowest to highest precedence:
//
//	expr   := addsub
//	addsub := muldiv (('+' | '-') muldiv)*
//	muldiv := unary (('*' | '/') unary)*
//	unary  := ('+' | '-') unary | leaf
//	leaf   := NUMBER | '(' addsub ')'
//
// NUMBER is any run of digits, 'd' separators and at most one '.'; whether it
// names a plain number or a dice variable is decided when the literal is
// interpreted, not while scanning.
package expr

import "fmt"

// Kind identifies the category of a token.
type Kind int

const (
	// EOF marks the end of input. Once reached it is returned forever.
	EOF Kind = iota
	Add
	Subtract
	Multiply
	Divide
	OpenParen
	CloseParen
	// Number carries literal text: a decimal number or NdM dice notation.
	Number
)

var kindNames = map[Kind]string{
	EOF:        "EOF",
	Add:        "Add",
	Subtract:   "Subtract",
	Multiply:   "Multiply",
	Divide:     "Divide",
	OpenParen:  "OpenParen",
	CloseParen: "CloseParen",
	Number:     "Number",
}

// String returns the kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is one lexical unit of an expression.
type Token struct {
	Kind Kind
	// Text is the source text of the token; empty for EOF.
	Text string
	// Pos is the 0-based byte offset of the token in the input.
	Pos int
}

// String describes the token for error messages.
func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "end of input"
	case Number:
		return fmt.Sprintf("number %q", t.Text)
	default:
		return fmt.Sprintf("%q", t.Text)
	}
}
