package settlement

import (
	"sort"

	"github.com/XavierBriggs/fortuna/services/ledger-service/pkg/models"
	"github.com/shopspring/decimal"
)

// membership is the combined reading of a leg's group id and parlay flag,
// which upstream stores independently and which may disagree.
type membership int

const (
	memberNone    membership = iota // neither id nor flag
	memberPartial                   // one of id / flag without the other
	memberGrouped                   // both present
)

func membershipOf(leg *models.Leg) membership {
	hasID := leg.GroupID != ""
	switch {
	case hasID && leg.IsParlay:
		return memberGrouped
	case hasID || leg.IsParlay:
		return memberPartial
	default:
		return memberNone
	}
}

// Group splits legs into singles and parlays. Only legs with both a group id
// and the parlay flag join a parlay; everything else is returned as a single
// in input order. Parlays are returned in order of first appearance of their
// group id and are fully resolved.
func Group(legs []models.Leg) ([]models.Leg, []*models.ParlayGroup) {
	var singles []models.Leg
	var order []string
	members := make(map[string][]models.Leg)

	for _, leg := range legs {
		switch membershipOf(&leg) {
		case memberGrouped:
			if _, seen := members[leg.GroupID]; !seen {
				order = append(order, leg.GroupID)
			}
			members[leg.GroupID] = append(members[leg.GroupID], leg)
		case memberPartial, memberNone:
			singles = append(singles, leg)
		}
	}

	parlays := make([]*models.ParlayGroup, 0, len(order))
	for _, groupID := range order {
		parlays = append(parlays, buildParlay(groupID, members[groupID]))
	}

	return singles, parlays
}

func buildParlay(groupID string, legs []models.Leg) *models.ParlayGroup {
	// representative amounts come from the original order, before sorting
	stake := representative(legs, func(l *models.Leg) decimal.Decimal { return l.Stake })
	payout := representative(legs, func(l *models.Leg) decimal.Decimal { return l.PotentialPayout })

	sorted := SortLegs(legs)
	res := resolveSorted(sorted, stake, payout)

	return &models.ParlayGroup{
		ID:                 groupID,
		Legs:               sorted,
		Category:           res.Category,
		Stake:              stake,
		PotentialPayout:    payout,
		CombinedOdds:       res.CombinedOdds,
		ImpliedProbability: res.ImpliedProbability,
		Status:             res.Status,
		Profit:             res.Profit,
		PlacedAt:           sorted[0].PlacedAt,
		SettledAt:          latestEffectiveTime(sorted),
	}
}

// representative returns the first positive value in leg order, or the first
// leg's value when none is positive. Upstream often stores the real stake on
// one leg only and zeroes the rest.
func representative(legs []models.Leg, field func(*models.Leg) decimal.Decimal) decimal.Decimal {
	if len(legs) == 0 {
		return decimal.Zero
	}
	for i := range legs {
		if v := field(&legs[i]); v.IsPositive() {
			return v
		}
	}
	return field(&legs[0])
}

// SortLegs returns a copy of legs ordered by placement time ascending, with
// missing times first and ties broken by leg id.
func SortLegs(legs []models.Leg) []models.Leg {
	sorted := make([]models.Leg, len(legs))
	copy(sorted, legs)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].PlacedAt, sorted[j].PlacedAt
		if !a.Equal(b) {
			return a.Before(b)
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}
