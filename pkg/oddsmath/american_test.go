package oddsmath_test

import (
	"errors"
	"math"
	"testing"

	"github.com/XavierBriggs/fortuna/services/ledger-service/pkg/oddsmath"
)

func TestAmericanToDecimal(t *testing.T) {
	tests := []struct {
		name     string
		american float64
		want     float64
	}{
		{"Positive odds +100", 100, 2.0},
		{"Positive odds +150", 150, 2.5},
		{"Positive odds +200", 200, 3.0},
		{"Negative odds -110", -110, 1.909090909},
		{"Negative odds -150", -150, 1.666666667},
		{"Negative odds -200", -200, 1.5},
		{"Fractional text-derived +120.0", 120.0, 2.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := oddsmath.AmericanToDecimal(tt.american)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if math.Abs(got-tt.want) > 0.0001 {
				t.Errorf("AmericanToDecimal(%v) = %f, want %f", tt.american, got, tt.want)
			}
		})
	}
}

func TestAmericanToDecimal_Invalid(t *testing.T) {
	for _, v := range []float64{0, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := oddsmath.AmericanToDecimal(v)
		if !errors.Is(err, oddsmath.ErrInvalidOdds) {
			t.Errorf("AmericanToDecimal(%v) error = %v, want ErrInvalidOdds", v, err)
		}
	}
}

func TestDecimalToAmerican(t *testing.T) {
	tests := []struct {
		name    string
		decimal float64
		want    int64
	}{
		{"Even odds 2.0", 2.0, 100},
		{"Underdog 2.5", 2.5, 150},
		{"Underdog 3.0", 3.0, 200},
		{"Favorite 1.909", 1.909, -110},
		{"Favorite 1.667", 1.667, -150},
		{"Favorite 1.5", 1.5, -200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := oddsmath.DecimalToAmerican(tt.decimal)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			// Allow ±1 for rounding
			if d := got - tt.want; d > 1 || d < -1 {
				t.Errorf("DecimalToAmerican(%f) = %d, want %d", tt.decimal, got, tt.want)
			}
		})
	}
}

func TestDecimalToAmerican_Invalid(t *testing.T) {
	for _, v := range []float64{1.0, 0.5, 0, -2, math.NaN(), math.Inf(1), 1e18, math.MaxFloat64} {
		_, err := oddsmath.DecimalToAmerican(v)
		if !errors.Is(err, oddsmath.ErrInvalidOdds) {
			t.Errorf("DecimalToAmerican(%v) error = %v, want ErrInvalidOdds", v, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for o := int64(100); o <= 5000; o += 7 {
		for _, american := range []int64{o, -o} {
			dec, err := oddsmath.AmericanToDecimal(float64(american))
			if err != nil {
				t.Fatalf("AmericanToDecimal(%d): %v", american, err)
			}

			back, err := oddsmath.DecimalToAmerican(dec)
			if err != nil {
				t.Fatalf("DecimalToAmerican(%f): %v", dec, err)
			}

			want := american
			if want == -100 {
				// -100 and +100 are the same even-money price
				want = 100
			}

			if d := back - want; d > 1 || d < -1 {
				t.Errorf("round trip %d -> %f -> %d", american, dec, back)
			}
		}
	}
}

func TestAmericanToImpliedProbability(t *testing.T) {
	tests := []struct {
		name     string
		american float64
		want     float64
	}{
		{"Even odds +100", 100, 0.50},
		{"Favorite -110", -110, 0.5238},
		{"Heavy favorite -200", -200, 0.6667},
		{"Underdog +150", 150, 0.40},
		{"Heavy underdog +300", 300, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := oddsmath.AmericanToImpliedProbability(tt.american)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("AmericanToImpliedProbability(%v) = %f, want %f", tt.american, got, tt.want)
			}
		})
	}
}

func TestProbabilityToAmerican(t *testing.T) {
	tests := []struct {
		name        string
		probability float64
		wantMin     int64
		wantMax     int64
	}{
		{"50% (even odds)", 0.50, 99, 101},
		{"52.38% (-110)", 0.5238, -111, -109},
		{"40% (+150)", 0.40, 149, 151},
		{"25% (+300)", 0.25, 299, 301},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := oddsmath.ProbabilityToAmerican(tt.probability)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got < tt.wantMin || got > tt.wantMax {
				t.Errorf("ProbabilityToAmerican(%f) = %d, want between %d and %d", tt.probability, got, tt.wantMin, tt.wantMax)
			}
		})
	}

	if _, err := oddsmath.ProbabilityToAmerican(1.2); !errors.Is(err, oddsmath.ErrInvalidOdds) {
		t.Errorf("expected ErrInvalidOdds for probability 1.2, got %v", err)
	}
}
