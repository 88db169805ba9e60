package stats

import (
	"fmt"
	"math"

	"github.com/louisbranch/dicestats/internal/core/expr"
)

// ExpectedValueOf evaluates node with every dice literal replaced by its
// expectation. Division is evaluated numerically, so it is defined for any
// non-zero divisor, including one that contains dice.
func ExpectedValueOf(node expr.Node) (float64, error) {
	switch n := node.(type) {
	case *expr.Literal:
		if n.IsDice() {
			spec, err := n.Dice()
			if err != nil {
				return 0, err
			}
			return spec.Expectation(), nil
		}
		return n.Number()
	case *expr.Unary:
		value, err := ExpectedValueOf(n.Operand)
		if err != nil {
			return 0, err
		}
		return -value, nil
	case *expr.Binary:
		left, err := ExpectedValueOf(n.Left)
		if err != nil {
			return 0, err
		}
		right, err := ExpectedValueOf(n.Right)
		if err != nil {
			return 0, err
		}
		var value float64
		switch n.Op {
		case expr.OpAdd:
			value = left + right
		case expr.OpSub:
			value = left - right
		case expr.OpMul:
			value = left * right
		case expr.OpDiv:
			if right == 0 {
				return 0, &expr.EvaluationError{Pos: n.Pos(), Text: n.String(), Reason: "division by zero"}
			}
			value = left / right
		default:
			return 0, fmt.Errorf("expected value: unknown operator %v", n.Op)
		}
		if math.IsInf(value, 0) || math.IsNaN(value) {
			return 0, &expr.EvaluationError{Pos: n.Pos(), Text: n.String(), Reason: "value out of range"}
		}
		return value, nil
	default:
		return 0, fmt.Errorf("expected value: unknown node %T", node)
	}
}
