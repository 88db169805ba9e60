// Package check evaluates difficulty checks against rolled totals and
// against the full distribution of an expression.
package check

import "github.com/louisbranch/dicestats/internal/core/stats"

// MeetsDifficulty returns true if total >= difficulty.
func MeetsDifficulty(total, difficulty float64) bool {
	return total >= difficulty
}

// Margin calculates the margin of success or failure.
// Positive values indicate success, negative indicate failure.
func Margin(total, difficulty float64) float64 {
	return total - difficulty
}

// Result represents the outcome of a difficulty check.
type Result struct {
	Success bool
	Margin  float64
}

// Check performs a difficulty check and returns the result.
func Check(total, difficulty float64) Result {
	return Result{
		Success: MeetsDifficulty(total, difficulty),
		Margin:  Margin(total, difficulty),
	}
}

// Odds summarizes a difficulty check over every possible outcome.
type Odds struct {
	Success float64
	Failure float64
	// ExpectedMargin is the mean of Margin over the distribution.
	ExpectedMargin float64
}

// Chance computes the odds of meeting difficulty given dist.
func Chance(dist stats.Distribution, difficulty float64) Odds {
	success := dist.AtLeast(difficulty)
	return Odds{
		Success:        success,
		Failure:        dist.Total() - success,
		ExpectedMargin: dist.Mean() - difficulty*dist.Total(),
	}
}
