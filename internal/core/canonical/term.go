// Package canonical rewrites expression trees into a flat sum of signed
// terms, each a coefficient times at most one dice variable.
package canonical

import (
	"errors"
	"strconv"
	"strings"

	"github.com/louisbranch/dicestats/internal/core/dice"
)

// ErrMultipleDice indicates a term would hold more than one dice variable.
var ErrMultipleDice = errors.New("product of two dice variables is not supported")

// Sign is the algebraic sign of a term.
type Sign int

const (
	Positive Sign = iota
	Negative
)

// Flip returns the opposite sign.
func (s Sign) Flip() Sign {
	if s == Negative {
		return Positive
	}
	return Negative
}

// Mul combines two signs: equal signs give Positive.
func (s Sign) Mul(other Sign) Sign {
	if s == other {
		return Positive
	}
	return Negative
}

// Float returns 1 or -1.
func (s Sign) Float() float64 {
	if s == Negative {
		return -1
	}
	return 1
}

func (s Sign) String() string {
	if s == Negative {
		return "-"
	}
	return "+"
}

// Term is Sign × Coefficient × Dice, where a nil Dice makes the term a
// constant. Coefficient is never negative; negation lives in Sign.
type Term struct {
	Sign        Sign
	Coefficient float64
	Dice        *dice.Spec
}

// NewTerm builds a term from its factors. Nil factors are skipped; more than
// one dice factor yields ErrMultipleDice.
func NewTerm(sign Sign, coefficient float64, factors ...*dice.Spec) (Term, error) {
	term := Term{Sign: sign, Coefficient: coefficient}
	for _, factor := range factors {
		if factor == nil {
			continue
		}
		if term.Dice != nil {
			return Term{}, ErrMultipleDice
		}
		spec := *factor
		term.Dice = &spec
	}
	return term, nil
}

// Value returns the signed coefficient.
func (t Term) Value() float64 {
	return t.Sign.Float() * t.Coefficient
}

// IsConstant reports whether the term has no dice variable.
func (t Term) IsConstant() bool {
	return t.Dice == nil
}

// Form is an ordered sum of terms.
type Form []Term

// Negate returns a copy with every sign flipped.
func (f Form) Negate() Form {
	out := make(Form, len(f))
	for i, term := range f {
		term.Sign = term.Sign.Flip()
		out[i] = term
	}
	return out
}

// Constant returns the signed sum of the constant terms.
func (f Form) Constant() float64 {
	var total float64
	for _, term := range f {
		if term.IsConstant() {
			total += term.Value()
		}
	}
	return total
}

// DiceTerms returns the terms that carry a dice variable, in order.
func (f Form) DiceTerms() []Term {
	var out []Term
	for _, term := range f {
		if !term.IsConstant() {
			out = append(out, term)
		}
	}
	return out
}

// String renders the form as an expression that canonicalizes back to the
// same terms, e.g. "-2d3+1d4" or "0.5*1d6-3".
func (f Form) String() string {
	if len(f) == 0 {
		return "0"
	}
	var b strings.Builder
	for i, term := range f {
		if i > 0 || term.Sign == Negative {
			b.WriteString(term.Sign.String())
		}
		coefficient := strconv.FormatFloat(term.Coefficient, 'f', -1, 64)
		switch {
		case term.IsConstant():
			b.WriteString(coefficient)
		case term.Coefficient == 1:
			b.WriteString(term.Dice.String())
		default:
			b.WriteString(coefficient)
			b.WriteByte('*')
			b.WriteString(term.Dice.String())
		}
	}
	return b.String()
}
