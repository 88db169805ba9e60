package stats

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/louisbranch/dicestats/internal/core/canonical"
	"github.com/louisbranch/dicestats/internal/core/dice"
)

func TestConvolveIsCommutativeAndAssociative(t *testing.T) {
	a, err := DiceDistribution(dice.Spec{Count: 1, Sides: 4}, 1)
	if err != nil {
		t.Fatalf("DiceDistribution() error = %v", err)
	}
	b, err := DiceDistribution(dice.Spec{Count: 2, Sides: 3}, -1)
	if err != nil {
		t.Fatalf("DiceDistribution() error = %v", err)
	}
	c, err := DiceDistribution(dice.Spec{Count: 1, Sides: 6}, 0.5)
	if err != nil {
		t.Fatalf("DiceDistribution() error = %v", err)
	}

	sameDistribution(t, Convolve(a, b), Convolve(b, a))
	sameDistribution(t, Convolve(Convolve(a, b), c), Convolve(a, Convolve(b, c)))
}

func TestDistributionHelpers(t *testing.T) {
	d := FromOutcomes([]Outcome{{Value: 2, Probability: 0.25}, {Value: 1, Probability: 0.5}, {Value: 2, Probability: 0.25}})
	if got := d.Probability(2); !almostEqual(got, 0.5) {
		t.Fatalf("P(2) = %v, want 0.5", got)
	}
	outcomes := d.Outcomes()
	if len(outcomes) != 2 || outcomes[0].Value != 1 || outcomes[1].Value != 2 {
		t.Fatalf("Outcomes() = %+v", outcomes)
	}
	if got := d.AtLeast(1.5); !almostEqual(got, 0.5) {
		t.Fatalf("AtLeast(1.5) = %v", got)
	}
	if got := d.Scale(0); len(got) != 1 || !almostEqual(got[0], 1) {
		t.Fatalf("Scale(0) = %v", got)
	}
	if got := d.Shift(-1).Support(); got[0] != 0 || got[1] != 1 {
		t.Fatalf("Shift(-1) support = %v", got)
	}
}

func TestSampleStaysInSupport(t *testing.T) {
	form, err := canonical.Parse("-2d3+0.5*1d4+1")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	dist, err := DistributionOf(form)
	if err != nil {
		t.Fatalf("DistributionOf() error = %v", err)
	}
	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 200; i++ {
		sample, err := SampleForm(form, rng)
		if err != nil {
			t.Fatalf("SampleForm() error = %v", err)
		}
		if dist.Probability(sample.Value) == 0 {
			t.Fatalf("sample %v outside support %v", sample.Value, dist.Support())
		}
		if len(sample.Rolls) != 2 {
			t.Fatalf("got %d rolls, want 2", len(sample.Rolls))
		}
	}
}

func TestRollIsDeterministic(t *testing.T) {
	first, err := Roll("3d6+2", 7)
	if err != nil {
		t.Fatalf("Roll() error = %v", err)
	}
	second, err := Roll("3d6+2", 7)
	if err != nil {
		t.Fatalf("Roll() error = %v", err)
	}
	if first.Value != second.Value {
		t.Fatalf("values differ: %v vs %v", first.Value, second.Value)
	}
	if first.Value < 5 || first.Value > 20 {
		t.Fatalf("value %v outside [5, 20]", first.Value)
	}

	constant, err := Roll("4*2", 1)
	if err != nil || constant.Value != 8 || constant.Rolls != nil {
		t.Fatalf("Roll(4*2) = %+v, %v", constant, err)
	}
}

func TestKeyKeepsHugeValuesFinite(t *testing.T) {
	for _, value := range []float64{1e300, -1e300, math.MaxFloat64} {
		support := Point(value).Support()
		if len(support) != 1 || support[0] != value {
			t.Fatalf("Point(%v) support = %v", value, support)
		}
	}

	literal := "1" + strings.Repeat("0", 300)
	result, err := CalculateStatistic(literal+"+1d2", ExpectedValue, ProbabilityDistribution)
	if err != nil {
		t.Fatalf("CalculateStatistic() error = %v", err)
	}
	if math.IsInf(result.ExpectedValue, 0) {
		t.Fatalf("expected value = %v", result.ExpectedValue)
	}
	for value := range result.Distribution {
		if math.IsInf(value, 0) || math.IsNaN(value) {
			t.Fatalf("support value %v is not finite", value)
		}
	}
}

func TestRollRejectsTooManyThrows(t *testing.T) {
	_, err := Roll("100000000000000000d6", 1)
	if !errors.Is(err, dice.ErrTooManyThrows) {
		t.Fatalf("Roll() error = %v, want ErrTooManyThrows", err)
	}
}

func TestDistributionOfRejectsLargeConvolutionUpFront(t *testing.T) {
	tests := []string{
		"1d3000+0.001*1d3000",
		"1d1000000+0.001*1d1000000",
		"1d1024+1d1025",
	}
	for _, expression := range tests {
		t.Run(expression, func(t *testing.T) {
			_, err := CalculateStatistic(expression, ProbabilityDistribution)
			if !errors.Is(err, dice.ErrDistributionTooLarge) {
				t.Fatalf("CalculateStatistic(%q) error = %v, want ErrDistributionTooLarge", expression, err)
			}
		})
	}

	result, err := CalculateStatistic("1d1024+1d1024", ProbabilityDistribution)
	if err != nil {
		t.Fatalf("CalculateStatistic(1d1024+1d1024) error = %v", err)
	}
	if got := len(result.Distribution); got != 2047 {
		t.Fatalf("got %d outcomes, want 2047", got)
	}
}
