package stats

import (
	"math/rand"

	"github.com/louisbranch/dicestats/internal/core/canonical"
	"github.com/louisbranch/dicestats/internal/core/dice"
)

// Sample is one random draw of an expression.
type Sample struct {
	Value float64
	// Rolls lists the faces rolled for each dice term, in term order.
	Rolls []dice.Roll
}

// SampleForm draws one outcome of form. The value is always in the support
// of DistributionOf(form).
func SampleForm(form canonical.Form, rng *rand.Rand) (Sample, error) {
	terms := form.DiceTerms()
	sample := Sample{Value: form.Constant()}
	if len(terms) == 0 {
		return sample, nil
	}

	specs := make([]dice.Spec, len(terms))
	for i, term := range terms {
		specs[i] = *term.Dice
	}
	result, err := dice.RollWithRng(rng, specs)
	if err != nil {
		return Sample{}, err
	}
	for i, roll := range result.Rolls {
		sample.Value += terms[i].Value() * float64(roll.Total)
	}
	sample.Rolls = result.Rolls
	return sample, nil
}

// Roll parses expression and draws one seeded outcome.
func Roll(expression string, seed int64) (Sample, error) {
	form, err := canonical.Parse(expression)
	if err != nil {
		return Sample{}, err
	}
	return SampleForm(form, rand.New(rand.NewSource(seed)))
}
