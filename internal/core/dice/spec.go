// Package dice models dice variables and their closed-form statistics.
//
// A dice variable NdM is the sum of N independent uniform draws from
// {1, ..., M}. The package computes its expectation, variance, and exact
// probability mass function, and can also roll it with a seeded source.
package dice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Separator splits the throw count from the side count in dice notation.
const Separator = 'd'

// maxSupport bounds the number of distinct outcomes a single dice variable
// may expand into when its distribution is requested.
const maxSupport = 1 << 20

// maxThrows bounds the number of dice a single Spec may roll.
const maxThrows = maxSupport

// ErrMissingDice indicates a roll request had no dice specified.
var ErrMissingDice = errors.New("at least one die must be provided")

// ErrInvalidDiceSpec indicates a die specification has invalid fields.
var ErrInvalidDiceSpec = errors.New("dice must have positive sides and count")

// ErrDistributionTooLarge indicates a distribution cannot be represented
// with float64 probabilities or exceeds the supported outcome count.
var ErrDistributionTooLarge = errors.New("dice distribution is too large to compute")

// ErrTooManyThrows indicates a roll asked for more dice than can be rolled.
var ErrTooManyThrows = errors.New("too many dice to roll")

// Spec describes a dice variable: Count throws of a die with Sides faces.
type Spec struct {
	Count int
	Sides int
}

// ParseSpec interprets text written as <count>d<sides>.
//
// Both parts must be non-empty decimal integers and each must be at least 1.
func ParseSpec(text string) (Spec, error) {
	count, sides, ok := strings.Cut(text, string(Separator))
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q has no dice separator", ErrInvalidDiceSpec, text)
	}
	n, err := parseCount(count)
	if err != nil {
		return Spec{}, fmt.Errorf("%w: throws in %q: %v", ErrInvalidDiceSpec, text, err)
	}
	m, err := parseCount(sides)
	if err != nil {
		return Spec{}, fmt.Errorf("%w: sides in %q: %v", ErrInvalidDiceSpec, text, err)
	}
	spec := Spec{Count: n, Sides: m}
	if err := spec.Validate(); err != nil {
		return Spec{}, fmt.Errorf("%w: %q", err, text)
	}
	return spec, nil
}

func parseCount(text string) (int, error) {
	if text == "" {
		return 0, errors.New("missing value")
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("unexpected %q", r)
		}
	}
	return strconv.Atoi(text)
}

// Validate reports ErrInvalidDiceSpec unless both fields are positive.
func (s Spec) Validate() error {
	if s.Sides <= 0 || s.Count <= 0 {
		return ErrInvalidDiceSpec
	}
	return nil
}

// String renders the spec in dice notation, e.g. "2d6".
func (s Spec) String() string {
	return fmt.Sprintf("%d%c%d", s.Count, Separator, s.Sides)
}

// Min returns the smallest possible sum.
func (s Spec) Min() int {
	return s.Count
}

// Max returns the largest possible sum.
func (s Spec) Max() int {
	return s.Count * s.Sides
}

// Expectation returns N(M+1)/2.
func (s Spec) Expectation() float64 {
	return float64(s.Count) * (float64(s.Sides) + 1) / 2
}

// Variance returns N times the population variance of one fair die,
// (M²-1)/12, which equals the sum of squared deviations from (M+1)/2
// divided by M.
func (s Spec) Variance() float64 {
	sides := float64(s.Sides)
	return float64(s.Count) * (sides*sides - 1) / 12
}
