package expr

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/louisbranch/dicestats/internal/core/dice"
)

// Tokenizer produces tokens lazily from a reader, one at a time.
type Tokenizer struct {
	r        *bufio.Reader
	pos      int
	lastSize int
	current  Token
	atEOF    bool
}

// NewTokenizer returns a tokenizer positioned on the first token of r.
func NewTokenizer(r io.Reader) (*Tokenizer, error) {
	t := &Tokenizer{r: bufio.NewReader(r)}
	if err := t.Next(); err != nil {
		return nil, err
	}
	return t, nil
}

// Token returns the current token.
func (t *Tokenizer) Token() Token {
	return t.current
}

// Next advances to the following token. After EOF it is a no-op.
func (t *Tokenizer) Next() error {
	if t.atEOF {
		return nil
	}

	ch, ok, err := t.read()
	for ok && unicode.IsSpace(ch) {
		ch, ok, err = t.read()
	}
	if err != nil {
		return err
	}
	if !ok {
		t.atEOF = true
		t.current = Token{Kind: EOF, Pos: t.pos}
		return nil
	}

	start := t.pos - t.lastSize
	if kind, single := singleCharKinds[ch]; single {
		t.current = Token{Kind: kind, Text: string(ch), Pos: start}
		return nil
	}
	if isNumberStart(ch) {
		text, err := t.scanNumber(ch)
		if err != nil {
			return err
		}
		t.current = Token{Kind: Number, Text: text, Pos: start}
		return nil
	}
	return &LexError{Char: ch, Pos: start}
}

var singleCharKinds = map[rune]Kind{
	'+': Add,
	'-': Subtract,
	'*': Multiply,
	'/': Divide,
	'(': OpenParen,
	')': CloseParen,
}

func isNumberStart(ch rune) bool {
	return isDigit(ch) || ch == '.' || ch == dice.Separator
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

// scanNumber consumes digits, dice separators and a single decimal point.
// A second '.' ends the token and is left for the next call.
func (t *Tokenizer) scanNumber(first rune) (string, error) {
	var buf strings.Builder
	buf.WriteRune(first)
	sawPoint := first == '.'
	for {
		ch, ok, err := t.read()
		if err != nil {
			return "", err
		}
		if !ok {
			return buf.String(), nil
		}
		switch {
		case isDigit(ch), ch == dice.Separator:
			buf.WriteRune(ch)
		case ch == '.' && !sawPoint:
			sawPoint = true
			buf.WriteRune(ch)
		default:
			if err := t.unread(); err != nil {
				return "", err
			}
			return buf.String(), nil
		}
	}
}

// read returns the next rune; ok is false at end of input.
func (t *Tokenizer) read() (rune, bool, error) {
	ch, size, err := t.r.ReadRune()
	if errors.Is(err, io.EOF) {
		t.lastSize = 0
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read expression: %w", err)
	}
	t.pos += size
	t.lastSize = size
	return ch, true, nil
}

func (t *Tokenizer) unread() error {
	if err := t.r.UnreadRune(); err != nil {
		return fmt.Errorf("unread expression: %w", err)
	}
	t.pos -= t.lastSize
	t.lastSize = 0
	return nil
}
