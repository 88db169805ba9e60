package stats

import (
	"math"
	"sort"

	"github.com/louisbranch/dicestats/internal/core/dice"
)

// keyPrecision is the resolution of distribution support values. Values
// closer than this are merged into one outcome.
const keyPrecision = 1e9

// Distribution maps outcome values to their probabilities.
type Distribution map[float64]float64

// Outcome is one support value and its probability.
type Outcome struct {
	Value       float64
	Probability float64
}

func key(value float64) float64 {
	if math.Abs(value) > math.MaxFloat64/keyPrecision {
		// beyond this magnitude float64 spacing already exceeds the resolution
		return value
	}
	k := math.Round(value*keyPrecision) / keyPrecision
	if k == 0 {
		// fold -0 into 0
		return 0
	}
	return k
}

// Point returns the distribution of a constant.
func Point(value float64) Distribution {
	return Distribution{key(value): 1}
}

// add accumulates probability at value.
func (d Distribution) add(value, probability float64) {
	d[key(value)] += probability
}

// Support returns the outcome values in ascending order.
func (d Distribution) Support() []float64 {
	values := make([]float64, 0, len(d))
	for value := range d {
		values = append(values, value)
	}
	sort.Float64s(values)
	return values
}

// Outcomes returns every outcome ordered by value.
func (d Distribution) Outcomes() []Outcome {
	support := d.Support()
	out := make([]Outcome, len(support))
	for i, value := range support {
		out[i] = Outcome{Value: value, Probability: d[value]}
	}
	return out
}

// FromOutcomes rebuilds a distribution, merging duplicate values.
func FromOutcomes(outcomes []Outcome) Distribution {
	d := make(Distribution, len(outcomes))
	for _, outcome := range outcomes {
		d.add(outcome.Value, outcome.Probability)
	}
	return d
}

// Probability returns the probability of value, or 0 outside the support.
func (d Distribution) Probability(value float64) float64 {
	return d[key(value)]
}

// Total returns the sum of all probabilities.
func (d Distribution) Total() float64 {
	var total float64
	for _, p := range d {
		total += p
	}
	return total
}

// Mean returns Σ v·P(v).
func (d Distribution) Mean() float64 {
	var mean float64
	for value, p := range d {
		mean += value * p
	}
	return mean
}

// Variance returns Σ (v-mean)²·P(v).
func (d Distribution) Variance() float64 {
	mean := d.Mean()
	var variance float64
	for value, p := range d {
		delta := value - mean
		variance += delta * delta * p
	}
	return variance
}

// AtLeast returns P(X >= threshold).
func (d Distribution) AtLeast(threshold float64) float64 {
	var total float64
	for value, p := range d {
		if value >= key(threshold) {
			total += p
		}
	}
	return total
}

// Scale multiplies every support value by factor. Outcomes that collide,
// as with a zero factor, are merged.
func (d Distribution) Scale(factor float64) Distribution {
	out := make(Distribution, len(d))
	for value, p := range d {
		out.add(value*factor, p)
	}
	return out
}

// Shift adds offset to every support value.
func (d Distribution) Shift(offset float64) Distribution {
	out := make(Distribution, len(d))
	for value, p := range d {
		out.add(value+offset, p)
	}
	return out
}

// Convolve returns the distribution of X+Y for independent X ~ a, Y ~ b.
func Convolve(a, b Distribution) Distribution {
	out := make(Distribution, len(a)+len(b))
	for va, pa := range a {
		for vb, pb := range b {
			out.add(va+vb, pa*pb)
		}
	}
	return out
}

// DiceDistribution returns the distribution of factor × spec.
func DiceDistribution(spec dice.Spec, factor float64) (Distribution, error) {
	outcomes, err := spec.Distribution()
	if err != nil {
		return nil, err
	}
	out := make(Distribution, len(outcomes))
	for _, outcome := range outcomes {
		out.add(float64(outcome.Value)*factor, outcome.Probability)
	}
	return out, nil
}
