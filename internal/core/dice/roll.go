package dice

import "math/rand"

// Request describes a seeded roll of one or more dice variables.
type Request struct {
	Dice []Spec
	Seed int64
}

// Roll captures the faces rolled for one Spec.
type Roll struct {
	Spec    Spec
	Results []int
	Total   int
}

// Result captures the rolls for every Spec in a request.
type Result struct {
	Rolls []Roll
	Total int
}

// RollDice rolls dice based on the provided request.
//
// # Determinism
//
// RollDice is deterministic with respect to the Seed field on Request.
// Given the same Seed and the same Dice slice (including order and values),
// RollDice will always produce the same Result.
//
// # Ordering
//
// Rolls appear in the same order as the Spec entries in Request.Dice.
//
// # Errors
//
//   - At least one Spec must be provided in Request.Dice, otherwise
//     ErrMissingDice is returned.
//   - Each Spec must have Sides > 0 and Count > 0, otherwise
//     ErrInvalidDiceSpec is returned.
//   - No Spec may roll more than 1<<20 dice, otherwise ErrTooManyThrows is
//     returned.
func RollDice(request Request) (Result, error) {
	return RollWithRng(rand.New(rand.NewSource(request.Seed)), request.Dice)
}

// RollWithRng rolls dice using a provided random source.
// Callers that sample many expressions share one source across calls.
func RollWithRng(rng *rand.Rand, specs []Spec) (Result, error) {
	if len(specs) == 0 {
		return Result{}, ErrMissingDice
	}
	for _, spec := range specs {
		if err := spec.Validate(); err != nil {
			return Result{}, err
		}
		if spec.Count > maxThrows {
			return Result{}, ErrTooManyThrows
		}
	}

	rolls := make([]Roll, 0, len(specs))
	total := 0
	for _, spec := range specs {
		roll := Roll{Spec: spec, Results: make([]int, spec.Count)}
		for i := range roll.Results {
			roll.Results[i] = rollDie(rng, spec.Sides)
			roll.Total += roll.Results[i]
		}
		rolls = append(rolls, roll)
		total += roll.Total
	}

	return Result{Rolls: rolls, Total: total}, nil
}

// rollDie rolls a single die with the provided number of sides.
func rollDie(rng *rand.Rand, sides int) int {
	return rng.Intn(sides) + 1
}
