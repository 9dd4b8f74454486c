package oddsmath_test

import (
	"testing"

	"github.com/XavierBriggs/fortuna/services/ledger-service/pkg/oddsmath"
)

func TestCombine(t *testing.T) {
	tests := []struct {
		name string
		odds []oddsmath.Odds
		want int64
	}{
		{
			name: "two underdogs",
			// 2.5 * 3.0 = 7.5
			odds: []oddsmath.Odds{oddsmath.NewOdds(150), oddsmath.NewOdds(200)},
			want: 650,
		},
		{
			name: "two -110 legs",
			// 1.90909^2 = 3.6446
			odds: []oddsmath.Odds{oddsmath.NewOdds(-110), oddsmath.NewOdds(-110)},
			want: 264,
		},
		{
			name: "unparseable leg is skipped",
			odds: []oddsmath.Odds{oddsmath.NewOdds(150), oddsmath.ParseOdds("n/a"), oddsmath.ParseOdds("+200")},
			want: 650,
		},
		{
			name: "zero odds leg is skipped",
			odds: []oddsmath.Odds{oddsmath.NewOdds(0), oddsmath.NewOdds(-200)},
			want: -200,
		},
		{
			name: "empty input",
			odds: nil,
			want: 0,
		},
		{
			name: "all unparseable",
			odds: []oddsmath.Odds{oddsmath.ParseOdds(""), oddsmath.ParseOdds("abc")},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := oddsmath.Combine(tt.odds)
			if d := got - tt.want; d > 1 || d < -1 {
				t.Errorf("Combine() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCombine_OutOfRangeIsNoPrice(t *testing.T) {
	// 11^20 and a +1e20 price both overflow an int64 American price
	longshots := make([]oddsmath.Odds, 20)
	for i := range longshots {
		longshots[i] = oddsmath.NewOdds(1000)
	}

	tests := []struct {
		name string
		odds []oddsmath.Odds
	}{
		{"twenty +1000 legs", longshots},
		{"exponent text price", []oddsmath.Odds{oddsmath.ParseOdds("1e20")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := oddsmath.Combine(tt.odds); got != 0 {
				t.Errorf("Combine() = %d, want 0", got)
			}
		})
	}
}

func TestCombine_SingleLegIdentity(t *testing.T) {
	for _, american := range []float64{-500, -250, -110, 100, 120, 450, 1200} {
		got := oddsmath.Combine([]oddsmath.Odds{oddsmath.NewOdds(american)})
		if d := float64(got) - american; d > 1 || d < -1 {
			t.Errorf("Combine([%v]) = %d", american, got)
		}
	}
}

func TestCombineDecimal(t *testing.T) {
	product, used := oddsmath.CombineDecimal([]oddsmath.Odds{
		oddsmath.NewOdds(100),
		oddsmath.ParseOdds("junk"),
		oddsmath.NewOdds(100),
	})

	if used != 2 {
		t.Errorf("used = %d, want 2", used)
	}
	if product != 4.0 {
		t.Errorf("product = %v, want 4.0", product)
	}
}
