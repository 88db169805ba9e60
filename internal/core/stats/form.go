package stats

import (
	"errors"
	"fmt"

	"github.com/louisbranch/dicestats/internal/core/canonical"
	"github.com/louisbranch/dicestats/internal/core/dice"
	"github.com/louisbranch/dicestats/internal/core/expr"
)

// maxOutcomes bounds the support of a convolved distribution.
const maxOutcomes = 1 << 20

// VarianceOf sums coefficient² × Var(NdM) across the dice terms of form.
// Terms are independent and constants contribute nothing.
func VarianceOf(form canonical.Form) float64 {
	var variance float64
	for _, term := range form.DiceTerms() {
		coefficient := term.Value()
		variance += coefficient * coefficient * term.Dice.Variance()
	}
	return variance
}

// DistributionOf convolves the scaled distribution of every dice term and
// shifts the result by the form's constant.
//
// A convolution visits every pair of outcomes, so each step is rejected
// before it runs when the pair count would exceed maxOutcomes.
func DistributionOf(form canonical.Form) (Distribution, error) {
	dist := Point(0)
	for _, term := range form.DiceTerms() {
		size, ok := supportSize(*term.Dice)
		if !ok || len(dist) > maxOutcomes/size {
			return nil, tooLarge(form)
		}
		termDist, err := DiceDistribution(*term.Dice, term.Value())
		if err != nil {
			if errors.Is(err, dice.ErrDistributionTooLarge) {
				return nil, &expr.EvaluationError{Text: term.Dice.String(), Reason: "distribution too large", Err: err}
			}
			return nil, fmt.Errorf("distribution of %s: %w", term.Dice, err)
		}
		dist = Convolve(dist, termDist)
	}
	return dist.Shift(form.Constant()), nil
}

// supportSize returns Count·(Sides-1)+1, or false when it exceeds
// maxOutcomes. Invalid specs count as a single outcome and are reported by
// DiceDistribution.
func supportSize(spec dice.Spec) (int, bool) {
	if spec.Validate() != nil {
		return 1, true
	}
	if spec.Sides-1 > 0 && spec.Count > (maxOutcomes-1)/(spec.Sides-1) {
		return 0, false
	}
	return spec.Count*(spec.Sides-1) + 1, true
}

func tooLarge(form canonical.Form) error {
	return &expr.EvaluationError{Text: form.String(), Reason: "distribution too large", Err: dice.ErrDistributionTooLarge}
}
