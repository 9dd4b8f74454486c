package models

import (
	"time"

	"github.com/XavierBriggs/fortuna/services/ledger-service/pkg/oddsmath"
	"github.com/shopspring/decimal"
)

// Category labels used when a bet has no single category
const (
	CategoryMulti   = "multi"
	CategoryUnknown = "unknown"
)

// Leg is one recorded wager line. Legs that share a GroupID and have
// IsParlay set settle together as a parlay.
type Leg struct {
	ID              string              `json:"id"`
	UserID          string              `json:"user_id,omitempty"`
	GroupID         string              `json:"group_id,omitempty"`
	IsParlay        bool                `json:"is_parlay"`
	Category        string              `json:"category"`
	BookKey         string              `json:"book_key,omitempty"`
	MarketKey       string              `json:"market_key,omitempty"`
	OutcomeName     string              `json:"outcome_name,omitempty"`
	Stake           decimal.Decimal     `json:"stake"`
	PotentialPayout decimal.Decimal     `json:"potential_payout"`
	Status          Status              `json:"status"`
	Profit          decimal.NullDecimal `json:"profit"`
	Odds            oddsmath.Odds       `json:"odds"`
	PlacedAt        time.Time           `json:"placed_at"`
	EventAt         *time.Time          `json:"event_at,omitempty"`
}

// EffectiveTime is the time a leg is attributed to: the event time when
// known, otherwise the placement time.
func (l *Leg) EffectiveTime() time.Time {
	if l.EventAt != nil && !l.EventAt.IsZero() {
		return *l.EventAt
	}
	return l.PlacedAt
}

// CategoryLabel returns the leg's category, or CategoryUnknown when empty.
func (l *Leg) CategoryLabel() string {
	if l.Category == "" {
		return CategoryUnknown
	}
	return l.Category
}

// ParlayGroup is a parlay rebuilt from its legs on every pass
type ParlayGroup struct {
	ID                 string          `json:"id"`
	Legs               []Leg           `json:"legs"`
	Category           string          `json:"category"`
	Stake              decimal.Decimal `json:"stake"`
	PotentialPayout    decimal.Decimal `json:"potential_payout"`
	CombinedOdds       int64           `json:"combined_odds"`
	ImpliedProbability float64         `json:"implied_probability"`
	Status             Status          `json:"status"`
	Profit             decimal.Decimal `json:"profit"`
	PlacedAt           time.Time       `json:"placed_at"`
	SettledAt          time.Time       `json:"settled_at"`
}
