// Package stats computes the expected value, variance and probability
// distribution of dice expressions.
package stats

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind indicates a statistic name that is not recognized.
var ErrUnknownKind = errors.New("unknown statistic kind")

// Kind names one statistic that can be requested.
type Kind int

const (
	ExpectedValue Kind = iota + 1
	Variance
	ProbabilityDistribution
)

// AllKinds lists every statistic in a stable order.
func AllKinds() []Kind {
	return []Kind{ExpectedValue, Variance, ProbabilityDistribution}
}

// String returns the wire name, e.g. "EXPECTED_VALUE".
func (k Kind) String() string {
	switch k {
	case ExpectedValue:
		return "EXPECTED_VALUE"
	case Variance:
		return "VARIANCE"
	case ProbabilityDistribution:
		return "PROBABILITY_DISTRIBUTION"
	default:
		return fmt.Sprintf("KIND_%d", int(k))
	}
}

// ParseKind accepts wire names and their common spellings, ignoring case,
// underscores, dashes and spaces.
func ParseKind(name string) (Kind, error) {
	normalized := strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', ' ':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(name)))

	switch normalized {
	case "expectedvalue", "expected", "ev", "mean":
		return ExpectedValue, nil
	case "variance", "var":
		return Variance, nil
	case "probabilitydistribution", "distribution", "pmf":
		return ProbabilityDistribution, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Kinds is a set of requested statistics.
type Kinds uint8

// NewKinds builds a set from kinds. Unknown values yield ErrUnknownKind.
func NewKinds(kinds ...Kind) (Kinds, error) {
	var set Kinds
	for _, kind := range kinds {
		if kind < ExpectedValue || kind > ProbabilityDistribution {
			return 0, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
		}
		set |= 1 << kind
	}
	return set, nil
}

// Has reports whether kind is in the set.
func (s Kinds) Has(kind Kind) bool {
	return s&(1<<kind) != 0
}

// List returns the members in AllKinds order.
func (s Kinds) List() []Kind {
	var out []Kind
	for _, kind := range AllKinds() {
		if s.Has(kind) {
			out = append(out, kind)
		}
	}
	return out
}
