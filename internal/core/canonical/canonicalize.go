package canonical

import (
	"fmt"
	"math"

	"github.com/louisbranch/dicestats/internal/core/expr"
)

// Parse parses input and canonicalizes the resulting tree.
func Parse(input string) (Form, error) {
	node, err := expr.Parse(input)
	if err != nil {
		return nil, err
	}
	return Canonicalize(node)
}

// Canonicalize expands node into a Form. Multiplication distributes every
// left term over every right term; a divisor must be free of dice and is
// folded to a single constant first. Terms appear in traversal order.
func Canonicalize(node expr.Node) (Form, error) {
	switch n := node.(type) {
	case *expr.Literal:
		return literal(n)
	case *expr.Unary:
		operand, err := Canonicalize(n.Operand)
		if err != nil {
			return nil, err
		}
		return operand.Negate(), nil
	case *expr.Binary:
		left, err := Canonicalize(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := Canonicalize(n.Right)
		if err != nil {
			return nil, err
		}
		switch n.Op {
		case expr.OpAdd:
			return append(left, right...), nil
		case expr.OpSub:
			return append(left, right.Negate()...), nil
		case expr.OpMul:
			return multiply(n, left, right)
		case expr.OpDiv:
			return divide(n, left, right)
		}
		return nil, fmt.Errorf("canonicalize: unknown operator %v", n.Op)
	default:
		return nil, fmt.Errorf("canonicalize: unknown node %T", node)
	}
}

func literal(n *expr.Literal) (Form, error) {
	if n.IsDice() {
		spec, err := n.Dice()
		if err != nil {
			return nil, err
		}
		return Form{{Sign: Positive, Coefficient: 1, Dice: &spec}}, nil
	}
	value, err := n.Number()
	if err != nil {
		return nil, err
	}
	return Form{{Sign: Positive, Coefficient: value}}, nil
}

func multiply(n *expr.Binary, left, right Form) (Form, error) {
	out := make(Form, 0, len(left)*len(right))
	for _, l := range left {
		for _, r := range right {
			term, err := NewTerm(l.Sign.Mul(r.Sign), l.Coefficient*r.Coefficient, l.Dice, r.Dice)
			if err != nil {
				return nil, &expr.UnsupportedExpressionError{Pos: n.Pos(), Reason: err.Error()}
			}
			if err := checkFinite(n, term.Coefficient); err != nil {
				return nil, err
			}
			out = append(out, term)
		}
	}
	return out, nil
}

func divide(n *expr.Binary, left, right Form) (Form, error) {
	if len(right.DiceTerms()) > 0 {
		return nil, &expr.UnsupportedExpressionError{Pos: n.Pos(), Reason: "division by a dice variable is not supported"}
	}
	divisor := right.Constant()
	if divisor == 0 {
		return nil, &expr.EvaluationError{Pos: n.Pos(), Text: n.String(), Reason: "division by zero"}
	}
	sign := Positive
	if divisor < 0 {
		sign, divisor = Negative, -divisor
	}

	out := make(Form, 0, len(left))
	for _, l := range left {
		term := Term{Sign: l.Sign.Mul(sign), Coefficient: l.Coefficient / divisor, Dice: l.Dice}
		if err := checkFinite(n, term.Coefficient); err != nil {
			return nil, err
		}
		out = append(out, term)
	}
	return out, nil
}

func checkFinite(n *expr.Binary, value float64) error {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return &expr.EvaluationError{Pos: n.Pos(), Text: n.String(), Reason: "coefficient out of range"}
	}
	return nil
}
