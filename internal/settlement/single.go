package settlement

import (
	"github.com/XavierBriggs/fortuna/services/ledger-service/pkg/models"
	"github.com/shopspring/decimal"
)

// ResolveSingle returns the profit of a leg that is not part of a parlay.
// A persisted profit is authoritative; otherwise it follows from the status.
func ResolveSingle(leg models.Leg) decimal.Decimal {
	if leg.Profit.Valid {
		return leg.Profit.Decimal
	}

	switch leg.Status {
	case models.StatusWon:
		return leg.PotentialPayout.Sub(leg.Stake)
	case models.StatusLost:
		return leg.Stake.Neg()
	case models.StatusVoid, models.StatusPush, models.StatusPending:
		return decimal.Zero
	default:
		return decimal.Zero
	}
}
