package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/XavierBriggs/fortuna/services/ledger-service/internal/cache"
	"github.com/XavierBriggs/fortuna/services/ledger-service/internal/db"
	"github.com/XavierBriggs/fortuna/services/ledger-service/internal/ledger"
	"github.com/XavierBriggs/fortuna/services/ledger-service/pkg/models"
)

const (
	defaultUserID  = "default"
	maxPreviewBody = 1 << 20
)

// LedgerHandler serves settlement reports
type LedgerHandler struct {
	holocronDB db.HolocronDB
	cache      cache.ReportCache
	ledger     *ledger.Service
}

// NewLedgerHandler creates a new ledger handler. reportCache may be nil.
func NewLedgerHandler(holocronDB db.HolocronDB, reportCache cache.ReportCache, svc *ledger.Service) *LedgerHandler {
	return &LedgerHandler{
		holocronDB: holocronDB,
		cache:      reportCache,
		ledger:     svc,
	}
}

// HealthCheck returns the health status of the service
func (h *LedgerHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.holocronDB.Ping(ctx); err != nil {
		respondError(w, http.StatusServiceUnavailable, "database unhealthy", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "ledger-service",
	})
}

// GetSummary returns the full report for a user
// Query params: user, sport, since, until, limit
func (h *LedgerHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	report, ok := h.loadReport(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// GetMetrics returns only the headline metrics
func (h *LedgerHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	report, ok := h.loadReport(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, report.Metrics)
}

// GetDaily returns the daily P&L series
func (h *LedgerHandler) GetDaily(w http.ResponseWriter, r *http.Request) {
	report, ok := h.loadReport(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"days":  report.Daily,
		"count": len(report.Daily),
	})
}

// GetCategories returns the per-category breakdown
func (h *LedgerHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	report, ok := h.loadReport(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"categories": report.Categories,
		"count":      len(report.Categories),
	})
}

// GetParlays returns the rebuilt parlays
func (h *LedgerHandler) GetParlays(w http.ResponseWriter, r *http.Request) {
	report, ok := h.loadReport(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"parlays": report.Parlays,
		"count":   len(report.Parlays),
	})
}

// PreviewRequest is the body of a preview call
type PreviewRequest struct {
	Legs []models.Leg `json:"legs"`
}

// PreviewReport builds a report from posted legs without touching storage
func (h *LedgerHandler) PreviewReport(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPreviewBody)).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	for i, leg := range req.Legs {
		if leg.Stake.IsNegative() || leg.PotentialPayout.IsNegative() {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("leg %d: stake and potential_payout must be >= 0", i), nil)
			return
		}
	}

	respondJSON(w, http.StatusOK, h.ledger.Build(req.Legs))
}

// loadReport resolves the request scope, serving from cache when possible.
// It writes the error response itself and reports whether to continue.
func (h *LedgerHandler) loadReport(w http.ResponseWriter, r *http.Request) (*models.Report, bool) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filters, err := h.parseFilters(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error(), nil)
		return nil, false
	}

	scope := scopeKey(filters)

	if h.cache != nil {
		cached, err := h.cache.GetReport(ctx, filters.UserID, scope)
		if err != nil {
			fmt.Printf("[Ledger] cache read failed for %s: %v\n", filters.UserID, err)
		} else if cached != nil {
			return cached, true
		}
	}

	legs, err := h.holocronDB.GetLegs(ctx, filters)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve legs", err)
		return nil, false
	}

	report := h.ledger.Build(legs)

	if h.cache != nil {
		if err := h.cache.SetReport(ctx, filters.UserID, scope, report); err != nil {
			fmt.Printf("[Ledger] cache write failed for %s: %v\n", filters.UserID, err)
		}
	}

	return report, true
}

func (h *LedgerHandler) parseFilters(r *http.Request) (db.LegFilters, error) {
	filters := db.LegFilters{
		UserID:     r.URL.Query().Get("user"),
		Categories: parseListParam(r, "sport"),
		Limit:      parseIntParam(r, "limit", db.MaxBets),
	}
	if filters.UserID == "" {
		filters.UserID = defaultUserID
	}
	if filters.Limit <= 0 || filters.Limit > db.MaxBets {
		filters.Limit = db.MaxBets
	}

	var err error
	if filters.Since, err = parseTimeParam(r, "since", h.ledger.Location()); err != nil {
		return filters, err
	}
	if filters.Until, err = parseTimeParam(r, "until", h.ledger.Location()); err != nil {
		return filters, err
	}
	if filters.Since != nil && filters.Until != nil && filters.Until.Before(*filters.Since) {
		return filters, fmt.Errorf("until must not be before since")
	}

	return filters, nil
}

// scopeKey identifies a filtered report in the cache; "" is the unscoped report
func scopeKey(filters db.LegFilters) string {
	if len(filters.Categories) == 0 && filters.Since == nil && filters.Until == nil && filters.Limit == db.MaxBets {
		return ""
	}

	parts := []string{strings.Join(filters.Categories, ",")}
	for _, t := range []*time.Time{filters.Since, filters.Until} {
		if t == nil {
			parts = append(parts, "")
			continue
		}
		parts = append(parts, t.UTC().Format(time.RFC3339))
	}
	parts = append(parts, fmt.Sprint(filters.Limit))
	return strings.Join(parts, "|")
}
