package ledger

import (
	"time"

	"github.com/XavierBriggs/fortuna/services/ledger-service/internal/aggregator"
	"github.com/XavierBriggs/fortuna/services/ledger-service/internal/settlement"
	"github.com/XavierBriggs/fortuna/services/ledger-service/pkg/models"
)

// Service turns a flat set of legs into a Report
type Service struct {
	location *time.Location
	now      func() time.Time
}

// NewService creates a ledger service that buckets days in loc
func NewService(loc *time.Location) *Service {
	return &Service{
		location: loc,
		now:      time.Now,
	}
}

// Location returns the zone used for daily bucketing
func (s *Service) Location() *time.Location {
	return s.location
}

// Build groups, resolves and aggregates legs. It has no side effects and is
// safe to call concurrently.
func (s *Service) Build(legs []models.Leg) *models.Report {
	singles, parlays := settlement.Group(legs)
	bets := aggregator.Unify(singles, parlays)

	if singles == nil {
		singles = []models.Leg{}
	}

	return &models.Report{
		Metrics:     aggregator.Aggregate(bets),
		Daily:       aggregator.DailySeries(bets, s.location),
		Categories:  aggregator.CategoryBreakdown(bets),
		Parlays:     parlays,
		Singles:     singles,
		GeneratedAt: s.now().UTC(),
	}
}
