package expr

import "fmt"

// LexError reports a character that cannot start any token.
type LexError struct {
	Char rune
	Pos  int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("unexpected character %q at position %d", e.Char, e.Pos)
}

// SyntaxError reports a token sequence the grammar does not accept.
type SyntaxError struct {
	Pos     int
	Token   Token
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at position %d: %s", e.Pos, e.Message)
}

// EvaluationError reports a well-formed expression that cannot be evaluated,
// such as a division by zero or a dice literal with zero sides.
type EvaluationError struct {
	Pos    int
	Text   string
	Reason string
	Err    error
}

func (e *EvaluationError) Error() string {
	msg := fmt.Sprintf("evaluation error at position %d: %s", e.Pos, e.Reason)
	if e.Text != "" {
		msg = fmt.Sprintf("evaluation error at position %d (%q): %s", e.Pos, e.Text, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

// UnsupportedExpressionError reports a structure with no defined statistics:
// a product of two dice variables or a division by one.
type UnsupportedExpressionError struct {
	Pos    int
	Reason string
}

func (e *UnsupportedExpressionError) Error() string {
	return fmt.Sprintf("unsupported expression at position %d: %s", e.Pos, e.Reason)
}
