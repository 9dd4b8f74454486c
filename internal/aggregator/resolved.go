package aggregator

import (
	"time"

	"github.com/XavierBriggs/fortuna/services/ledger-service/internal/settlement"
	"github.com/XavierBriggs/fortuna/services/ledger-service/pkg/models"
	"github.com/shopspring/decimal"
)

// ResolvedBet is a parlay or a single reduced to the fields the reductions need
type ResolvedBet struct {
	ID        string
	IsParlay  bool
	Status    models.Status
	Stake     decimal.Decimal
	Profit    decimal.Decimal
	Category  string
	Timestamp time.Time
	PlacedAt  time.Time
}

// Realized is the profit the bet contributes to totals; pending bets
// contribute nothing whatever their recorded profit.
func (b ResolvedBet) Realized() decimal.Decimal {
	if !b.Status.IsFinal() {
		return decimal.Zero
	}
	return b.Profit
}

// Unify reduces parlays and singles to one list, parlays first.
func Unify(singles []models.Leg, parlays []*models.ParlayGroup) []ResolvedBet {
	bets := make([]ResolvedBet, 0, len(singles)+len(parlays))

	for _, p := range parlays {
		bets = append(bets, ResolvedBet{
			ID:        p.ID,
			IsParlay:  true,
			Status:    p.Status,
			Stake:     p.Stake,
			Profit:    p.Profit,
			Category:  p.Category,
			Timestamp: p.SettledAt,
			PlacedAt:  p.PlacedAt,
		})
	}

	for _, leg := range singles {
		bets = append(bets, ResolvedBet{
			ID:        leg.ID,
			Status:    leg.Status,
			Stake:     leg.Stake,
			Profit:    settlement.ResolveSingle(leg),
			Category:  leg.CategoryLabel(),
			Timestamp: leg.EffectiveTime(),
			PlacedAt:  leg.PlacedAt,
		})
	}

	return bets
}
