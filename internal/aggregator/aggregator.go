package aggregator

import (
	"sort"

	"github.com/XavierBriggs/fortuna/services/ledger-service/pkg/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Aggregate computes the headline metrics for a set of resolved bets.
//
// Win rate and ROI only look at won/lost bets. TotalProfit covers every bet,
// with pending bets counting zero, and is what the daily series sums to.
func Aggregate(bets []ResolvedBet) models.AggregateMetrics {
	m := models.AggregateMetrics{
		TotalBets:     len(bets),
		TotalProfit:   decimal.Zero,
		SettledProfit: decimal.Zero,
		SettledStaked: decimal.Zero,
		TotalStaked:   decimal.Zero,
		AvgStake:      decimal.Zero,
		BiggestWin:    decimal.Zero,
		BiggestLoss:   decimal.Zero,
		Streak:        models.Streak{Type: models.StreakNone},
	}

	for _, b := range bets {
		m.TotalStaked = m.TotalStaked.Add(b.Stake)

		realized := b.Realized()
		m.TotalProfit = m.TotalProfit.Add(realized)
		if realized.GreaterThan(m.BiggestWin) {
			m.BiggestWin = realized
		}
		if loss := realized.Neg(); loss.GreaterThan(m.BiggestLoss) {
			m.BiggestLoss = loss
		}

		switch b.Status {
		case models.StatusWon:
			m.Wins++
		case models.StatusLost:
			m.Losses++
		case models.StatusPending:
			m.PendingBets++
		case models.StatusVoid, models.StatusPush:
			m.VoidBets++
		}

		if b.Status.IsDecided() {
			m.SettledProfit = m.SettledProfit.Add(b.Profit)
			m.SettledStaked = m.SettledStaked.Add(b.Stake)
		}
	}

	m.SettledBets = m.Wins + m.Losses
	m.WinRatePct = ratioPct(m.Wins, m.SettledBets)
	m.ROIPct = decimalPct(m.SettledProfit, m.SettledStaked)
	if m.TotalBets > 0 {
		m.AvgStake = m.TotalStaked.Div(decimal.NewFromInt(int64(m.TotalBets)))
	}
	m.Streak = CurrentStreak(bets)

	return m
}

// CurrentStreak counts the run of identical won/lost outcomes starting at the
// most recent settled bet. Ties on timestamp are broken by id.
func CurrentStreak(bets []ResolvedBet) models.Streak {
	settled := make([]ResolvedBet, 0, len(bets))
	for _, b := range bets {
		if b.Status.IsDecided() {
			settled = append(settled, b)
		}
	}
	if len(settled) == 0 {
		return models.Streak{Type: models.StreakNone}
	}

	sort.SliceStable(settled, func(i, j int) bool {
		a, b := settled[i].Timestamp, settled[j].Timestamp
		if !a.Equal(b) {
			return a.After(b)
		}
		return settled[i].ID > settled[j].ID
	})

	head := settled[0].Status
	length := 0
	for _, b := range settled {
		if b.Status != head {
			break
		}
		length++
	}

	streakType := models.StreakLoss
	if head == models.StatusWon {
		streakType = models.StreakWin
	}
	return models.Streak{Length: length, Type: streakType}
}

func ratioPct(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d) * 100
}

func decimalPct(n, d decimal.Decimal) float64 {
	if d.IsZero() {
		return 0
	}
	return n.Div(d).Mul(hundred).InexactFloat64()
}
