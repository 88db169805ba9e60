package canonical

import (
	"errors"
	"testing"

	"github.com/louisbranch/dicestats/internal/core/dice"
)

func TestSign(t *testing.T) {
	if Positive.Flip() != Negative || Negative.Flip() != Positive {
		t.Fatal("Flip does not toggle")
	}
	tests := []struct {
		a, b, want Sign
	}{
		{Positive, Positive, Positive},
		{Positive, Negative, Negative},
		{Negative, Positive, Negative},
		{Negative, Negative, Positive},
	}
	for _, tt := range tests {
		if got := tt.a.Mul(tt.b); got != tt.want {
			t.Errorf("%v.Mul(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestNewTerm(t *testing.T) {
	d6 := &dice.Spec{Count: 1, Sides: 6}
	term, err := NewTerm(Negative, 2, nil, d6)
	if err != nil {
		t.Fatalf("NewTerm() error = %v", err)
	}
	if term.Value() != -2 || term.Dice == nil || *term.Dice != *d6 {
		t.Fatalf("term = %+v", term)
	}
	d6.Sides = 8
	if term.Dice.Sides != 6 {
		t.Fatal("term shares its dice factor with the caller")
	}

	if _, err := NewTerm(Positive, 1, d6, d6); !errors.Is(err, ErrMultipleDice) {
		t.Fatalf("NewTerm with two dice error = %v, want ErrMultipleDice", err)
	}
}

func TestFormAccessors(t *testing.T) {
	form := Form{
		{Sign: Positive, Coefficient: 3},
		{Sign: Negative, Coefficient: 2, Dice: &dice.Spec{Count: 1, Sides: 4}},
		{Sign: Negative, Coefficient: 5},
	}
	if got := form.Constant(); got != -2 {
		t.Fatalf("Constant() = %v, want -2", got)
	}
	if got := len(form.DiceTerms()); got != 1 {
		t.Fatalf("DiceTerms() has %d terms, want 1", got)
	}
	if got := form.String(); got != "3-2*1d4-5" {
		t.Fatalf("String() = %q", got)
	}
	if got := form.Negate().String(); got != "-3+2*1d4+5" {
		t.Fatalf("Negate().String() = %q", got)
	}
	if got := (Form{}).String(); got != "0" {
		t.Fatalf("empty String() = %q", got)
	}
}
