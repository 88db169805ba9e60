package dice

import (
	"math"
	"math/big"
)

// Outcome pairs one possible sum with its probability.
type Outcome struct {
	Value       int
	Probability float64
}

// Distribution returns the probability of every sum in [Min, Max], ordered
// by value.
//
// Only the lower half of the support is computed; the distribution of a sum
// of fair dice is symmetric around its mean, so each probability is mirrored
// onto the complementary value Min+Max-v. Counts are exact integers and each
// probability is rounded once, when ways(v) is divided by M^N.
func (s Spec) Distribution() ([]Outcome, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.Sides > maxSupport || s.Count > maxSupport/s.Sides {
		return nil, ErrDistributionTooLarge
	}
	if math.IsInf(math.Pow(float64(s.Sides), float64(s.Count)), 0) {
		return nil, ErrDistributionTooLarge
	}

	total := new(big.Int).Exp(big.NewInt(int64(s.Sides)), big.NewInt(int64(s.Count)), nil)
	denominator := new(big.Float).SetInt(total)
	ways := newWayCounter(s.Count, s.Sides)

	lo, hi := s.Min(), s.Max()
	outcomes := make([]Outcome, hi-lo+1)
	for low, high := lo, hi; low <= high; low, high = low+1, high-1 {
		numerator := new(big.Float).SetInt(ways.next())
		p, _ := new(big.Float).SetPrec(53).Quo(numerator, denominator).Float64()
		outcomes[low-lo] = Outcome{Value: low, Probability: p}
		outcomes[high-lo] = Outcome{Value: high, Probability: p}
	}
	return outcomes, nil
}

// WaysToObtain counts the rolls of throws dice with sides faces that sum to
// value.
//
// It applies inclusion-exclusion to the generating function
// (x + x² + ... + x^sides)^throws:
//
//	ways(v) = Σ_{k=0}^{⌊(v-N)/M⌋} (-1)^k · C(N, k) · C(v-N-M·k+N-1, N-1)
//
// The sum is evaluated exactly; the result is rounded only when converted to
// float64.
func WaysToObtain(value, throws, sides int) float64 {
	offset := value - throws
	if throws <= 0 || sides <= 0 || offset < 0 || offset > throws*(sides-1) {
		return 0
	}
	ways := newWayCounter(throws, sides)
	var count *big.Int
	for i := 0; i <= offset; i++ {
		count = ways.next()
	}
	f, _ := new(big.Float).SetInt(count).Float64()
	return f
}

// wayCounter evaluates ways(v) for consecutive offsets v-N = 0, 1, 2, ...
// It keeps every C(a+N-1, N-1) seen so far because the k-th term of offset a
// reuses the one of offset a-M·k.
type wayCounter struct {
	throws int
	sides  int
	// stars[a] = C(a+N-1, N-1)
	stars []*big.Int
	// choose[k] = C(N, k)
	choose []*big.Int
}

func newWayCounter(throws, sides int) *wayCounter {
	return &wayCounter{
		throws: throws,
		sides:  sides,
		choose: []*big.Int{big.NewInt(1)},
	}
}

// next returns ways(N + a) for the next offset a.
func (c *wayCounter) next() *big.Int {
	offset := len(c.stars)
	star := big.NewInt(1)
	if offset > 0 {
		star.Mul(c.stars[offset-1], big.NewInt(int64(offset+c.throws-1)))
		star.Quo(star, big.NewInt(int64(offset)))
	}
	c.stars = append(c.stars, star)

	ways := new(big.Int)
	term := new(big.Int)
	for k := 0; k <= c.throws && c.sides*k <= offset; k++ {
		term.Mul(c.binomial(k), c.stars[offset-c.sides*k])
		if k%2 == 1 {
			ways.Sub(ways, term)
		} else {
			ways.Add(ways, term)
		}
	}
	return ways
}

// binomial returns C(N, k), extending the cached row on demand.
func (c *wayCounter) binomial(k int) *big.Int {
	for i := len(c.choose); i <= k; i++ {
		next := new(big.Int).Mul(c.choose[i-1], big.NewInt(int64(c.throws-i+1)))
		c.choose = append(c.choose, next.Quo(next, big.NewInt(int64(i))))
	}
	return c.choose[k]
}

// Binomial returns C(n, k) through the falling product
// Π_{i=0}^{k-1} (n-i)/(i+1), which also covers negative and fractional n.
func Binomial(n float64, k int) float64 {
	if k < 0 {
		return 0
	}
	value := 1.0
	for i := 0; i < k; i++ {
		value *= (n - float64(i)) / float64(i+1)
	}
	return value
}
