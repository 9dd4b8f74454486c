package refresher

import (
	"context"
	"fmt"
	"time"

	"github.com/XavierBriggs/fortuna/services/ledger-service/internal/cache"
	"github.com/XavierBriggs/fortuna/services/ledger-service/internal/db"
	"github.com/XavierBriggs/fortuna/services/ledger-service/internal/ledger"
	"github.com/XavierBriggs/fortuna/services/ledger-service/internal/publisher"
	"github.com/XavierBriggs/fortuna/services/ledger-service/internal/retry"
)

// Refresher rebuilds cached reports for users whose legs have settled
type Refresher struct {
	holocronDB   db.HolocronDB
	cache        cache.ReportCache
	publisher    publisher.Publisher
	ledger       *ledger.Service
	pollInterval time.Duration
	retry        *retry.RetryPolicy
	lastRun      time.Time
	now          func() time.Time
}

// NewRefresher creates a new refresher
func NewRefresher(holocronDB db.HolocronDB, reportCache cache.ReportCache, pub publisher.Publisher, svc *ledger.Service, pollInterval time.Duration) *Refresher {
	return &Refresher{
		holocronDB:   holocronDB,
		cache:        reportCache,
		publisher:    pub,
		ledger:       svc,
		pollInterval: pollInterval,
		retry:        retry.NewRetryPolicy(3, 500*time.Millisecond),
		now:          time.Now,
	}
}

// Start begins the refresh polling loop
func (r *Refresher) Start(ctx context.Context) error {
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	// look back one interval on the first pass
	r.lastRun = r.now().Add(-r.pollInterval)

	if _, err := r.RunOnce(ctx); err != nil {
		fmt.Printf("[Ledger] initial refresh error: %v\n", err)
	}

	for {
		select {
		case <-ticker.C:
			if _, err := r.RunOnce(ctx); err != nil {
				fmt.Printf("[Ledger] refresh error: %v\n", err)
			}
		case <-ctx.Done():
			return nil
		}
	}
}

// RunOnce refreshes every user with legs settled since the previous pass and
// returns how many reports were rebuilt
func (r *Refresher) RunOnce(ctx context.Context) (refreshed int, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic in refresh pass: %v", rec)
			fmt.Printf("[Ledger] PANIC: %v\n", rec)
		}
	}()

	started := r.now()

	users, err := r.holocronDB.GetUsersSettledSince(ctx, r.lastRun)
	if err != nil {
		return 0, fmt.Errorf("get settled users: %w", err)
	}

	if len(users) == 0 {
		r.lastRun = started
		return 0, nil
	}

	fmt.Printf("[Ledger] Found %d users with newly settled legs\n", len(users))

	for i, userID := range users {
		if err := r.refreshUser(ctx, userID); err != nil {
			fmt.Printf("[Ledger] error refreshing user %s (%d/%d): %v\n", userID, i+1, len(users), err)
			continue
		}
		refreshed++
	}

	fmt.Printf("[Ledger] Refreshed %d/%d reports\n", refreshed, len(users))

	r.lastRun = started
	return refreshed, nil
}

// refreshUser rebuilds a user's unscoped report, caches it and announces it
func (r *Refresher) refreshUser(ctx context.Context, userID string) error {
	legs, err := r.holocronDB.GetLegs(ctx, db.LegFilters{UserID: userID, Limit: db.MaxBets})
	if err != nil {
		return fmt.Errorf("get legs: %w", err)
	}

	report := r.ledger.Build(legs)

	if r.cache != nil {
		if err := r.cache.Invalidate(ctx, userID); err != nil {
			fmt.Printf("[Ledger] failed to invalidate cache for %s: %v\n", userID, err)
		}
		if err := r.cache.SetReport(ctx, userID, "", report); err != nil {
			return fmt.Errorf("cache report: %w", err)
		}
	}

	if r.publisher != nil {
		err := r.retry.Execute(ctx, func(ctx context.Context) error {
			_, err := r.publisher.PublishLedgerUpdate(ctx, userID, report)
			return err
		})
		if err != nil {
			return fmt.Errorf("publish update: %w", err)
		}
	}

	return nil
}
