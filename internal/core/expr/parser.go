package expr

import (
	"fmt"
	"io"
	"strings"
)

// Parse builds the expression tree for input.
func Parse(input string) (Node, error) {
	return ParseReader(strings.NewReader(input))
}

// ParseReader builds the expression tree for the text read from r.
// Parsing stops at the first error.
func ParseReader(r io.Reader) (Node, error) {
	tokens, err := NewTokenizer(r)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	if tok := p.peek(); tok.Kind == EOF {
		return nil, &SyntaxError{Pos: tok.Pos, Token: tok, Message: "empty expression"}
	}

	root, err := p.addSub()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Kind != EOF {
		return nil, &SyntaxError{
			Pos:     tok.Pos,
			Token:   tok,
			Message: fmt.Sprintf("unexpected %s at end of expression", tok),
		}
	}
	return root, nil
}

type parser struct {
	tokens *Tokenizer
}

func (p *parser) peek() Token {
	return p.tokens.Token()
}

func (p *parser) advance() error {
	return p.tokens.Next()
}

func (p *parser) addSub() (Node, error) {
	left, err := p.mulDiv()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		var op Op
		switch tok.Kind {
		case Add:
			op = OpAdd
		case Subtract:
			op = OpSub
		default:
			return left, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.mulDiv()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right, Offset: tok.Pos}
	}
}

func (p *parser) mulDiv() (Node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		var op Op
		switch tok.Kind {
		case Multiply:
			op = OpMul
		case Divide:
			op = OpDiv
		default:
			return left, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right, Offset: tok.Pos}
	}
}

func (p *parser) unary() (Node, error) {
	tok := p.peek()
	switch tok.Kind {
	case Add:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.unary()
	case Subtract:
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Unary{Operand: operand, Offset: tok.Pos}, nil
	default:
		return p.leaf()
	}
}

func (p *parser) leaf() (Node, error) {
	tok := p.peek()
	switch tok.Kind {
	case Number:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &Literal{Text: tok.Text, Offset: tok.Pos}, nil
	case OpenParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.addSub()
		if err != nil {
			return nil, err
		}
		closing := p.peek()
		if closing.Kind != CloseParen {
			return nil, &SyntaxError{
				Pos:     closing.Pos,
				Token:   closing,
				Message: fmt.Sprintf("expected ')' to close '(' at position %d, found %s", tok.Pos, closing),
			}
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return inner, nil
	case EOF:
		return nil, &SyntaxError{Pos: tok.Pos, Token: tok, Message: "unexpected end of expression"}
	default:
		return nil, &SyntaxError{Pos: tok.Pos, Token: tok, Message: fmt.Sprintf("unexpected %s", tok)}
	}
}
