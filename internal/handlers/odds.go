package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/XavierBriggs/fortuna/services/ledger-service/pkg/oddsmath"
)

// OddsHandler exposes the odds conversions
type OddsHandler struct{}

// NewOddsHandler creates a new odds handler
func NewOddsHandler() *OddsHandler {
	return &OddsHandler{}
}

// CombineOdds combines comma separated American prices into parlay odds
// Query params: odds (e.g. "+150,-110")
func (h *OddsHandler) CombineOdds(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("odds")
	if raw == "" {
		respondError(w, http.StatusBadRequest, "odds parameter is required", nil)
		return
	}

	tokens := strings.Split(raw, ",")
	odds := make([]oddsmath.Odds, len(tokens))
	for i, token := range tokens {
		odds[i] = oddsmath.ParseOdds(token)
	}

	product, used := oddsmath.CombineDecimal(odds)
	combined := oddsmath.Combine(odds)

	resp := map[string]interface{}{
		"combined_odds":       combined,
		"decimal":             product,
		"implied_probability": 0.0,
		"legs_used":           used,
		"legs_total":          len(tokens),
	}
	if combined != 0 {
		if p, err := oddsmath.DecimalToImpliedProbability(product); err == nil {
			resp["implied_probability"] = p
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

// ConvertOdds converts one price between American, decimal and implied
// probability. Query params: american, or probability (0 < p < 1)
func (h *OddsHandler) ConvertOdds(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("american") == "" && r.URL.Query().Get("probability") != "" {
		h.convertProbability(w, r)
		return
	}

	american, ok := oddsmath.ParseOdds(r.URL.Query().Get("american")).American()
	if !ok {
		respondError(w, http.StatusBadRequest, "american must be a number", nil)
		return
	}

	decimal, err := oddsmath.AmericanToDecimal(american)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	probability, err := oddsmath.DecimalToImpliedProbability(decimal)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"american":            american,
		"decimal":             decimal,
		"implied_probability": probability,
	})
}

// convertProbability prices a win probability as fair odds
func (h *OddsHandler) convertProbability(w http.ResponseWriter, r *http.Request) {
	probability, err := strconv.ParseFloat(r.URL.Query().Get("probability"), 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "probability must be a number", nil)
		return
	}

	decimal, err := oddsmath.ProbabilityToDecimal(probability)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	american, err := oddsmath.ProbabilityToAmerican(probability)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"american":            american,
		"decimal":             decimal,
		"implied_probability": probability,
	})
}
