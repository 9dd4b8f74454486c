package settlement

import (
	"time"

	"github.com/XavierBriggs/fortuna/services/ledger-service/pkg/models"
	"github.com/XavierBriggs/fortuna/services/ledger-service/pkg/oddsmath"
	"github.com/shopspring/decimal"
)

// ParlayResolution is the outcome of resolving one parlay's legs
type ParlayResolution struct {
	Status             models.Status
	Profit             decimal.Decimal
	CombinedOdds       int64
	ImpliedProbability float64
	Category           string
}

// ResolveParlay resolves status, profit, combined odds and category for the
// legs of one parlay. An empty leg list yields a pending, zero-profit result.
func ResolveParlay(legs []models.Leg) ParlayResolution {
	if len(legs) == 0 {
		return ParlayResolution{Status: models.StatusPending, Profit: decimal.Zero, Category: models.CategoryUnknown}
	}

	stake := representative(legs, func(l *models.Leg) decimal.Decimal { return l.Stake })
	payout := representative(legs, func(l *models.Leg) decimal.Decimal { return l.PotentialPayout })
	return resolveSorted(SortLegs(legs), stake, payout)
}

func resolveSorted(legs []models.Leg, stake, payout decimal.Decimal) ParlayResolution {
	statuses := make([]models.Status, len(legs))
	persisted := make([]decimal.NullDecimal, len(legs))
	odds := make([]oddsmath.Odds, len(legs))
	for i := range legs {
		statuses[i] = legs[i].Status
		persisted[i] = legs[i].Profit
		odds[i] = legs[i].Odds
	}

	status := ResolveParlayStatus(statuses)
	combined := oddsmath.Combine(odds)

	res := ParlayResolution{
		Status:       status,
		Profit:       ResolveParlayProfit(status, stake, payout, persisted),
		CombinedOdds: combined,
		Category:     parlayCategory(legs),
	}
	if combined != 0 {
		if p, err := oddsmath.AmericanToImpliedProbability(float64(combined)); err == nil {
			res.ImpliedProbability = p
		}
	}
	return res
}

// ResolveParlayStatus decides a parlay's status from its leg statuses alone.
// A lost leg always loses the parlay; all won wins it; won legs mixed with
// void or push legs void it; anything else is still pending.
func ResolveParlayStatus(statuses []models.Status) models.Status {
	if len(statuses) == 0 {
		return models.StatusPending
	}

	won, voided := 0, 0
	for _, s := range statuses {
		switch s {
		case models.StatusLost:
			return models.StatusLost
		case models.StatusWon:
			won++
		case models.StatusVoid, models.StatusPush:
			voided++
		case models.StatusPending:
		}
	}

	switch {
	case won == len(statuses):
		return models.StatusWon
	case voided > 0 && won+voided == len(statuses):
		return models.StatusVoid
	default:
		return models.StatusPending
	}
}

// ResolveParlayProfit derives realised profit from an already resolved
// status. Persisted leg profits only ever supply the number for a win.
func ResolveParlayProfit(status models.Status, stake, payout decimal.Decimal, persisted []decimal.NullDecimal) decimal.Decimal {
	switch status {
	case models.StatusWon:
		for _, p := range persisted {
			if p.Valid && !p.Decimal.IsZero() {
				return p.Decimal
			}
		}
		return payout.Sub(stake)
	case models.StatusLost:
		return stake.Neg()
	case models.StatusVoid, models.StatusPush, models.StatusPending:
		return decimal.Zero
	default:
		return decimal.Zero
	}
}

func parlayCategory(legs []models.Leg) string {
	label := ""
	for i := range legs {
		c := legs[i].Category
		if c == "" {
			continue
		}
		if label == "" {
			label = c
			continue
		}
		if c != label {
			return models.CategoryMulti
		}
	}
	if label == "" {
		return models.CategoryUnknown
	}
	return label
}

func latestEffectiveTime(legs []models.Leg) time.Time {
	var latest time.Time
	for i := range legs {
		if t := legs[i].EffectiveTime(); t.After(latest) {
			latest = t
		}
	}
	return latest
}
