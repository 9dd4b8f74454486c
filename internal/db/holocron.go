package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/XavierBriggs/fortuna/services/ledger-service/pkg/models"
	"github.com/lib/pq"
)

// MaxBets is the most bets one leg query returns; parlays count once
const MaxBets = 10000

// LegFilters scopes a leg query to one user and an optional window.
// Limit is a bet count, capped at MaxBets; zero means MaxBets.
type LegFilters struct {
	UserID     string
	Categories []string
	Since      *time.Time
	Until      *time.Time
	Limit      int
}

// HolocronDB defines the read operations the ledger needs from Holocron
type HolocronDB interface {
	Ping(ctx context.Context) error
	GetLegs(ctx context.Context, filters LegFilters) ([]models.Leg, error)
	GetUsersSettledSince(ctx context.Context, since time.Time) ([]string, error)
	Close() error
}

// HolocronPostgres implements HolocronDB for PostgreSQL
type HolocronPostgres struct {
	db *sql.DB
}

// NewHolocronPostgres creates a new Holocron database client
func NewHolocronPostgres(dsn string) (*HolocronPostgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &HolocronPostgres{db: db}, nil
}

// Ping checks database connectivity
func (h *HolocronPostgres) Ping(ctx context.Context) error {
	return h.db.PingContext(ctx)
}

// GetLegs retrieves the recorded legs for a user
func (h *HolocronPostgres) GetLegs(ctx context.Context, filters LegFilters) ([]models.Leg, error) {
	query, args := buildLegQuery(filters)

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query legs: %w", err)
	}
	defer rows.Close()

	legs := []models.Leg{}
	for rows.Next() {
		var (
			leg      models.Leg
			groupID  sql.NullString
			category sql.NullString
			placedAt sql.NullTime
			eventAt  sql.NullTime
		)

		err := rows.Scan(
			&leg.ID, &leg.UserID, &groupID, &leg.IsParlay, &category,
			&leg.BookKey, &leg.MarketKey, &leg.OutcomeName,
			&leg.Stake, &leg.PotentialPayout, &leg.Status, &leg.Profit, &leg.Odds,
			&placedAt, &eventAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan leg: %w", err)
		}

		leg.GroupID = groupID.String
		leg.Category = category.String
		if placedAt.Valid {
			leg.PlacedAt = placedAt.Time
		}
		if eventAt.Valid {
			t := eventAt.Time
			leg.EventAt = &t
		}

		legs = append(legs, leg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate legs: %w", err)
	}

	return legs, nil
}

// buildLegQuery renders the leg query with positional arguments. The limit
// counts bets, not legs: a parlay's legs are kept or dropped together, and
// the newest bets are the ones kept.
func buildLegQuery(filters LegFilters) (string, []interface{}) {
	scoped := `
			SELECT l.*
			FROM bet_legs l
			WHERE l.user_id = $1`

	args := []interface{}{filters.UserID}
	argPos := 2

	if len(filters.Categories) > 0 {
		scoped += groupClause("l.sport_key = ANY($%[1]d)", "g.sport_key = ANY($%[1]d)", argPos)
		args = append(args, pq.Array(filters.Categories))
		argPos++
	}

	// parlays are rebuilt from all their legs, so the window is applied per group
	if filters.Since != nil {
		scoped += windowClause(">=", "MAX", argPos)
		args = append(args, *filters.Since)
		argPos++
	}

	if filters.Until != nil {
		scoped += windowClause("<=", "MIN", argPos)
		args = append(args, *filters.Until)
		argPos++
	}

	query := fmt.Sprintf(`
		WITH scoped AS (%s
		),
		kept AS (
			SELECT COALESCE('group:' || s.parlay_group_id::text, 'leg:' || s.id::text) AS bet_key
			FROM scoped s
			GROUP BY 1
			ORDER BY MAX(s.placed_at) DESC NULLS LAST, bet_key DESC
			LIMIT $%d
		)
		SELECT
			l.id::text, l.user_id, l.parlay_group_id, COALESCE(l.is_parlay, false), l.sport_key,
			COALESCE(l.book_key, ''), COALESCE(l.market_key, ''), COALESCE(l.outcome_name, ''),
			COALESCE(l.stake_amount, 0), COALESCE(l.potential_payout, 0), l.result, l.profit, l.odds::text,
			l.placed_at, l.event_at
		FROM scoped l
		WHERE COALESCE('group:' || l.parlay_group_id::text, 'leg:' || l.id::text) IN (SELECT bet_key FROM kept)
		ORDER BY l.placed_at ASC NULLS FIRST, l.id ASC
	`, scoped, argPos)
	args = append(args, effectiveLimit(filters.Limit))

	return query, args
}

// effectiveLimit caps a requested bet limit at MaxBets
func effectiveLimit(limit int) int {
	if limit <= 0 || limit > MaxBets {
		return MaxBets
	}
	return limit
}

// groupClause applies a leg predicate to singles directly and to parlays
// through any of their legs, so a matching parlay is returned whole
func groupClause(legPred, groupPred string, argPos int) string {
	return fmt.Sprintf(`
			AND (
				(l.parlay_group_id IS NULL AND `+legPred+`)
				OR l.parlay_group_id IN (
					SELECT g.parlay_group_id FROM bet_legs g
					WHERE g.user_id = $1 AND g.parlay_group_id IS NOT NULL AND `+groupPred+`
				)
			)`, argPos)
}

// windowClause keeps singles placed inside the bound and whole parlays whose
// group reaches inside it
func windowClause(op, agg string, argPos int) string {
	return fmt.Sprintf(`
		AND (
			(l.parlay_group_id IS NULL AND l.placed_at %[1]s $%[3]d)
			OR l.parlay_group_id IN (
				SELECT g.parlay_group_id FROM bet_legs g
				WHERE g.user_id = $1 AND g.parlay_group_id IS NOT NULL
				GROUP BY g.parlay_group_id
				HAVING %[2]s(g.placed_at) %[1]s $%[3]d
			)
		)`, op, agg, argPos)
}

// GetUsersSettledSince returns users with at least one leg settled after since
func (h *HolocronPostgres) GetUsersSettledSince(ctx context.Context, since time.Time) ([]string, error) {
	query := `
		SELECT DISTINCT user_id
		FROM bet_legs
		WHERE settled_at IS NOT NULL AND settled_at > $1
		ORDER BY user_id
	`

	rows, err := h.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("query settled users: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, userID)
	}

	return users, rows.Err()
}

// Close closes the database connection
func (h *HolocronPostgres) Close() error {
	return h.db.Close()
}
