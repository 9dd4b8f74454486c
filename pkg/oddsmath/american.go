package oddsmath

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidOdds is returned by the conversion entry points for zero,
// non-finite or otherwise unconvertible odds.
var ErrInvalidOdds = errors.New("invalid odds")

// AmericanToDecimal converts American odds to a decimal multiplier
// American +150 → Decimal 2.50
// American -150 → Decimal 1.67
func AmericanToDecimal(american float64) (float64, error) {
	if american == 0 || math.IsNaN(american) || math.IsInf(american, 0) {
		return 0, fmt.Errorf("%w: american odds %v", ErrInvalidOdds, american)
	}

	if american > 0 {
		// Positive odds: (american / 100) + 1
		return (american / 100.0) + 1.0, nil
	}

	// Negative odds: (100 / abs(american)) + 1
	return (100.0 / -american) + 1.0, nil
}

// maxAmerican is 2^63, the first magnitude an int64 price cannot hold
const maxAmerican = float64(math.MaxInt64)

// DecimalToAmerican converts a decimal multiplier to American odds
// Decimal 2.50 → American +150
// Decimal 1.67 → American -150
// Prices beyond the int64 range are rejected rather than wrapped.
func DecimalToAmerican(decimal float64) (int64, error) {
	if math.IsNaN(decimal) || math.IsInf(decimal, 0) || decimal <= 1.0 {
		return 0, fmt.Errorf("%w: decimal multiplier %v must be > 1.0", ErrInvalidOdds, decimal)
	}

	var american float64
	if decimal >= 2.0 {
		// Positive American odds: (decimal - 1) * 100
		american = math.Round((decimal - 1.0) * 100.0)
	} else {
		// Negative American odds: -100 / (decimal - 1)
		american = math.Round(-100.0 / (decimal - 1.0))
	}

	if american >= maxAmerican || american < -maxAmerican {
		return 0, fmt.Errorf("%w: decimal multiplier %v overflows american odds", ErrInvalidOdds, decimal)
	}
	return int64(american), nil
}

// DecimalToImpliedProbability converts decimal odds to implied probability
// Decimal 2.00 → 0.50 (50%)
// Decimal 1.50 → 0.667 (66.7%)
func DecimalToImpliedProbability(decimal float64) (float64, error) {
	if decimal <= 0 || math.IsNaN(decimal) || math.IsInf(decimal, 0) {
		return 0, fmt.Errorf("%w: decimal odds %v must be > 0", ErrInvalidOdds, decimal)
	}

	return 1.0 / decimal, nil
}

// ProbabilityToDecimal converts probability to decimal odds
func ProbabilityToDecimal(probability float64) (float64, error) {
	if probability <= 0 || probability >= 1 || math.IsNaN(probability) {
		return 0, fmt.Errorf("%w: probability %v must be between 0 and 1", ErrInvalidOdds, probability)
	}

	return 1.0 / probability, nil
}

// AmericanToImpliedProbability converts American odds directly to implied probability
func AmericanToImpliedProbability(american float64) (float64, error) {
	decimal, err := AmericanToDecimal(american)
	if err != nil {
		return 0, err
	}

	return DecimalToImpliedProbability(decimal)
}

// ProbabilityToAmerican converts probability directly to American odds
func ProbabilityToAmerican(probability float64) (int64, error) {
	decimal, err := ProbabilityToDecimal(probability)
	if err != nil {
		return 0, err
	}

	return DecimalToAmerican(decimal)
}
