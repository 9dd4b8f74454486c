package aggregator

import (
	"sort"

	"github.com/XavierBriggs/fortuna/services/ledger-service/pkg/models"
	"github.com/shopspring/decimal"
)

// CategoryBreakdown groups bets by category, ordered by category name.
//
// WinRatePct here is wins over all bets in the category, pending included,
// which is not the settled-only rate Aggregate reports.
func CategoryBreakdown(bets []ResolvedBet) []models.CategoryStats {
	byCategory := make(map[string]*models.CategoryStats)

	for _, b := range bets {
		category := b.Category
		if category == "" {
			category = models.CategoryUnknown
		}

		stats, ok := byCategory[category]
		if !ok {
			stats = &models.CategoryStats{
				Category:      category,
				Profit:        decimal.Zero,
				SettledStaked: decimal.Zero,
			}
			byCategory[category] = stats
		}

		stats.Bets++
		stats.Profit = stats.Profit.Add(b.Realized())

		switch b.Status {
		case models.StatusWon:
			stats.Wins++
		case models.StatusLost:
			stats.Losses++
		case models.StatusPending:
			stats.Pending++
		case models.StatusVoid, models.StatusPush:
		}

		if b.Status.IsDecided() {
			stats.SettledStaked = stats.SettledStaked.Add(b.Stake)
		}
	}

	result := make([]models.CategoryStats, 0, len(byCategory))
	for _, stats := range byCategory {
		stats.WinRatePct = ratioPct(stats.Wins, stats.Bets)
		stats.ROIPct = decimalPct(stats.Profit, stats.SettledStaked)
		result = append(result, *stats)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Category < result[j].Category
	})

	return result
}
