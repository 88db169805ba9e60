package expr

import (
	"strconv"
	"strings"

	"github.com/louisbranch/dicestats/internal/core/dice"
)

// Node is an expression tree node.
type Node interface {
	// Pos returns the byte offset of the token that introduced the node.
	Pos() int
	// String renders the node fully parenthesized.
	String() string
	node()
}

// Op is a binary operator.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return "?"
	}
}

// Literal is a number or dice literal, kept as source text.
type Literal struct {
	Text   string
	Offset int
}

// Unary negates its operand.
type Unary struct {
	Operand Node
	Offset  int
}

// Binary applies Op to Left and Right.
type Binary struct {
	Op     Op
	Left   Node
	Right  Node
	Offset int
}

func (l *Literal) Pos() int { return l.Offset }
func (u *Unary) Pos() int   { return u.Offset }
func (b *Binary) Pos() int  { return b.Offset }

func (l *Literal) String() string { return l.Text }
func (u *Unary) String() string   { return "(-" + u.Operand.String() + ")" }
func (b *Binary) String() string {
	return "(" + b.Left.String() + " " + b.Op.String() + " " + b.Right.String() + ")"
}

func (*Literal) node() {}
func (*Unary) node()   {}
func (*Binary) node()  {}

// IsDice reports whether the literal is written in dice notation.
func (l *Literal) IsDice() bool {
	return strings.ContainsRune(l.Text, dice.Separator)
}

// Dice interprets the literal as NdM.
func (l *Literal) Dice() (dice.Spec, error) {
	spec, err := dice.ParseSpec(l.Text)
	if err != nil {
		return dice.Spec{}, &EvaluationError{Pos: l.Offset, Text: l.Text, Reason: "invalid dice literal", Err: err}
	}
	return spec, nil
}

// Number interprets the literal as a decimal number.
func (l *Literal) Number() (float64, error) {
	value, err := strconv.ParseFloat(l.Text, 64)
	if err != nil {
		return 0, &EvaluationError{Pos: l.Offset, Text: l.Text, Reason: "invalid number literal", Err: err}
	}
	return value, nil
}
