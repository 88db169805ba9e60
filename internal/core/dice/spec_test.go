package dice

import (
	"errors"
	"math"
	"testing"
)

const tolerance = 1e-12

func TestParseSpec(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    Spec
		wantErr bool
	}{
		{name: "single die", text: "1d6", want: Spec{Count: 1, Sides: 6}},
		{name: "many dice", text: "12d20", want: Spec{Count: 12, Sides: 20}},
		{name: "one sided", text: "3d1", want: Spec{Count: 3, Sides: 1}},
		{name: "missing throws", text: "d6", wantErr: true},
		{name: "missing sides", text: "2d", wantErr: true},
		{name: "zero sides", text: "2d0", wantErr: true},
		{name: "zero throws", text: "0d6", wantErr: true},
		{name: "second separator", text: "2d6d4", wantErr: true},
		{name: "decimal point", text: "2.5d6", wantErr: true},
		{name: "plain number", text: "42", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSpec(tt.text)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDiceSpec) {
					t.Fatalf("ParseSpec(%q) error = %v, want ErrInvalidDiceSpec", tt.text, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSpec(%q) error = %v", tt.text, err)
			}
			if got != tt.want {
				t.Fatalf("ParseSpec(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
			if got.String() != tt.text {
				t.Fatalf("String() = %q, want %q", got.String(), tt.text)
			}
		})
	}
}

func TestSpecExpectation(t *testing.T) {
	tests := []struct {
		spec Spec
		want float64
	}{
		{Spec{Count: 1, Sides: 6}, 3.5},
		{Spec{Count: 2, Sides: 6}, 7},
		{Spec{Count: 3, Sides: 4}, 7.5},
		{Spec{Count: 5, Sides: 1}, 5},
	}
	for _, tt := range tests {
		if got := tt.spec.Expectation(); math.Abs(got-tt.want) > tolerance {
			t.Errorf("%s expectation = %v, want %v", tt.spec, got, tt.want)
		}
	}
}

func TestSpecVarianceMatchesDefinition(t *testing.T) {
	for sides := 1; sides <= 20; sides++ {
		mean := float64(sides+1) / 2
		var want float64
		for k := 1; k <= sides; k++ {
			d := float64(k) - mean
			want += d * d / float64(sides)
		}
		for count := 1; count <= 4; count++ {
			spec := Spec{Count: count, Sides: sides}
			if got := spec.Variance(); math.Abs(got-want*float64(count)) > 1e-9 {
				t.Fatalf("%s variance = %v, want %v", spec, got, want*float64(count))
			}
		}
	}
}

func TestSpecVarianceKnownValues(t *testing.T) {
	if got := (Spec{Count: 1, Sides: 6}).Variance(); math.Abs(got-35.0/12) > tolerance {
		t.Fatalf("1d6 variance = %v, want 35/12", got)
	}
	if got := (Spec{Count: 1, Sides: 3}).Variance(); math.Abs(got-2.0/3) > tolerance {
		t.Fatalf("1d3 variance = %v, want 2/3", got)
	}
	if got := (Spec{Count: 1, Sides: 4}).Variance(); math.Abs(got-1.25) > tolerance {
		t.Fatalf("1d4 variance = %v, want 1.25", got)
	}
}
