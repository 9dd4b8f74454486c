package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StreakType is the outcome a streak is made of
type StreakType string

const (
	StreakNone StreakType = "none"
	StreakWin  StreakType = "win"
	StreakLoss StreakType = "loss"
)

// Streak is the run of identical outcomes ending at the most recent settled bet
type Streak struct {
	Length int        `json:"length"`
	Type   StreakType `json:"type"`
}

// AggregateMetrics provides headline P&L statistics for a set of bets.
// Parlays count once regardless of leg count.
type AggregateMetrics struct {
	TotalBets     int             `json:"total_bets"`
	SettledBets   int             `json:"settled_bets"`
	Wins          int             `json:"wins"`
	Losses        int             `json:"losses"`
	PendingBets   int             `json:"pending_bets"`
	VoidBets      int             `json:"void_bets"`
	WinRatePct    float64         `json:"win_rate_pct"`
	ROIPct        float64         `json:"roi_pct"`
	TotalProfit   decimal.Decimal `json:"total_profit"`
	SettledProfit decimal.Decimal `json:"settled_profit"`
	SettledStaked decimal.Decimal `json:"settled_staked"`
	TotalStaked   decimal.Decimal `json:"total_staked"`
	AvgStake      decimal.Decimal `json:"avg_stake"`
	BiggestWin    decimal.Decimal `json:"biggest_win"`
	BiggestLoss   decimal.Decimal `json:"biggest_loss"`
	Streak        Streak          `json:"streak"`
}

// DailyPnL is one calendar day of the profit series
type DailyPnL struct {
	Date       string          `json:"date"`
	Profit     decimal.Decimal `json:"profit"`
	Staked     decimal.Decimal `json:"staked"`
	Cumulative decimal.Decimal `json:"cumulative"`
	Bets       int             `json:"bets"`
	Final      int             `json:"final"`
}

// CategoryStats provides per-category statistics
type CategoryStats struct {
	Category      string          `json:"category"`
	Bets          int             `json:"bets"`
	Wins          int             `json:"wins"`
	Losses        int             `json:"losses"`
	Pending       int             `json:"pending"`
	Profit        decimal.Decimal `json:"profit"`
	SettledStaked decimal.Decimal `json:"settled_staked"`
	WinRatePct    float64         `json:"win_rate_pct"`
	ROIPct        float64         `json:"roi_pct"`
}

// Report bundles everything computed for one scope of legs
type Report struct {
	Metrics     AggregateMetrics `json:"metrics"`
	Daily       []DailyPnL       `json:"daily"`
	Categories  []CategoryStats  `json:"categories"`
	Parlays     []*ParlayGroup   `json:"parlays"`
	Singles     []Leg            `json:"singles"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// ErrorResponse is the JSON body of every error reply
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
