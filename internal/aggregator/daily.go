package aggregator

import (
	"sort"
	"time"

	"github.com/XavierBriggs/fortuna/services/ledger-service/pkg/models"
	"github.com/shopspring/decimal"
)

const dayLayout = "2006-01-02"

// DailySeries buckets bets by calendar day in loc (each timestamp's own zone
// when loc is nil). Profit and Final follow the bet's timestamp and count
// final bets only. Staked and Bets follow the day the bet was placed, falling
// back to the timestamp when no placement time is recorded. Cumulative is the
// running profit in date order.
func DailySeries(bets []ResolvedBet, loc *time.Location) []models.DailyPnL {
	days := make(map[string]*models.DailyPnL)

	dayOf := func(ts time.Time) *models.DailyPnL {
		if loc != nil {
			ts = ts.In(loc)
		}
		key := ts.Format(dayLayout)

		day, ok := days[key]
		if !ok {
			day = &models.DailyPnL{
				Date:   key,
				Profit: decimal.Zero,
				Staked: decimal.Zero,
			}
			days[key] = day
		}
		return day
	}

	for _, b := range bets {
		placed := b.PlacedAt
		if placed.IsZero() {
			placed = b.Timestamp
		}
		placedDay := dayOf(placed)
		placedDay.Bets++
		placedDay.Staked = placedDay.Staked.Add(b.Stake)

		if b.Status.IsFinal() {
			day := dayOf(b.Timestamp)
			day.Final++
			day.Profit = day.Profit.Add(b.Realized())
		}
	}

	series := make([]models.DailyPnL, 0, len(days))
	for _, day := range days {
		series = append(series, *day)
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Date < series[j].Date
	})

	running := decimal.Zero
	for i := range series {
		running = running.Add(series[i].Profit)
		series[i].Cumulative = running
	}

	return series
}
