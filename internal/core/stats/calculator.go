package stats

import (
	"github.com/louisbranch/dicestats/internal/core/canonical"
	"github.com/louisbranch/dicestats/internal/core/expr"
)

// Result holds the requested statistics. Statistics that were not requested
// keep their zero value and Distribution stays nil.
type Result struct {
	ExpectedValue float64
	Variance      float64
	Distribution  Distribution
}

// CalculateStatistic parses expression once and computes only the requested
// kinds. With no kinds the expression is still parsed and validated.
func CalculateStatistic(expression string, kinds ...Kind) (Result, error) {
	set, err := NewKinds(kinds...)
	if err != nil {
		return Result{}, err
	}
	node, err := expr.Parse(expression)
	if err != nil {
		return Result{}, err
	}
	return Calculate(node, set)
}

// Calculate computes the statistics in set for a parsed expression.
func Calculate(node expr.Node, set Kinds) (Result, error) {
	var result Result
	if set.Has(ExpectedValue) {
		value, err := ExpectedValueOf(node)
		if err != nil {
			return Result{}, err
		}
		result.ExpectedValue = value
	}
	if !set.Has(Variance) && !set.Has(ProbabilityDistribution) {
		return result, nil
	}

	form, err := canonical.Canonicalize(node)
	if err != nil {
		return Result{}, err
	}
	if set.Has(Variance) {
		result.Variance = VarianceOf(form)
	}
	if set.Has(ProbabilityDistribution) {
		dist, err := DistributionOf(form)
		if err != nil {
			return Result{}, err
		}
		result.Distribution = dist
	}
	return result, nil
}
