package handlers_test

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/XavierBriggs/fortuna/services/ledger-service/internal/handlers"
)

func TestCombineOdds(t *testing.T) {
	tests := []struct {
		name         string
		odds         string
		wantCombined float64
		wantUsed     float64
		wantTotal    float64
	}{
		{"two underdogs", "+200,+150", 650, 2, 2},
		{"skips unparseable", "+200,abc,+150", 650, 2, 3},
		{"two favorites", "-110,-110", 264, 2, 2},
		{"nothing usable", "abc,0", 0, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := handlers.NewOddsHandler()

			req := httptest.NewRequest("GET", "/api/v1/odds/combine?odds="+url.QueryEscape(tt.odds), nil)
			w := httptest.NewRecorder()

			handler.CombineOdds(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", w.Code)
			}

			var response map[string]interface{}
			if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}

			if response["combined_odds"] != tt.wantCombined {
				t.Errorf("combined_odds = %v, want %v", response["combined_odds"], tt.wantCombined)
			}
			if response["legs_used"] != tt.wantUsed {
				t.Errorf("legs_used = %v, want %v", response["legs_used"], tt.wantUsed)
			}
			if response["legs_total"] != tt.wantTotal {
				t.Errorf("legs_total = %v, want %v", response["legs_total"], tt.wantTotal)
			}
			if tt.wantCombined == 0 && response["implied_probability"] != 0.0 {
				t.Errorf("implied_probability = %v, want 0", response["implied_probability"])
			}
		})
	}
}

func TestCombineOdds_MissingParam(t *testing.T) {
	handler := handlers.NewOddsHandler()

	req := httptest.NewRequest("GET", "/api/v1/odds/combine", nil)
	w := httptest.NewRecorder()

	handler.CombineOdds(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestConvertOdds_Success(t *testing.T) {
	handler := handlers.NewOddsHandler()

	req := httptest.NewRequest("GET", "/api/v1/odds/convert?american=-110", nil)
	w := httptest.NewRecorder()

	handler.ConvertOdds(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var response struct {
		American           float64 `json:"american"`
		Decimal            float64 `json:"decimal"`
		ImpliedProbability float64 `json:"implied_probability"`
	}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if math.Abs(response.Decimal-1.9091) > 0.001 {
		t.Errorf("decimal = %v, want ~1.9091", response.Decimal)
	}
	if math.Abs(response.ImpliedProbability-0.5238) > 0.001 {
		t.Errorf("implied_probability = %v, want ~0.5238", response.ImpliedProbability)
	}
}

func TestConvertOdds_Invalid(t *testing.T) {
	for _, value := range []string{"", "abc", "0", "0x10"} {
		t.Run(value, func(t *testing.T) {
			handler := handlers.NewOddsHandler()

			req := httptest.NewRequest("GET", "/api/v1/odds/convert?american="+url.QueryEscape(value), nil)
			w := httptest.NewRecorder()

			handler.ConvertOdds(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", w.Code)
			}
		})
	}
}

func TestConvertOdds_FromProbability(t *testing.T) {
	tests := []struct {
		probability  string
		wantAmerican float64
		wantDecimal  float64
	}{
		{"0.5", 100, 2.0},
		{"0.8", -400, 1.25},
		{"0.2", 400, 5.0},
	}

	for _, tt := range tests {
		t.Run(tt.probability, func(t *testing.T) {
			handler := handlers.NewOddsHandler()

			req := httptest.NewRequest("GET", "/api/v1/odds/convert?probability="+tt.probability, nil)
			w := httptest.NewRecorder()

			handler.ConvertOdds(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", w.Code)
			}

			var response struct {
				American float64 `json:"american"`
				Decimal  float64 `json:"decimal"`
			}
			if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}

			if response.American != tt.wantAmerican {
				t.Errorf("american = %v, want %v", response.American, tt.wantAmerican)
			}
			if math.Abs(response.Decimal-tt.wantDecimal) > 1e-9 {
				t.Errorf("decimal = %v, want %v", response.Decimal, tt.wantDecimal)
			}
		})
	}
}

func TestConvertOdds_InvalidProbability(t *testing.T) {
	for _, value := range []string{"abc", "0", "1", "1.5", "-0.2"} {
		t.Run(value, func(t *testing.T) {
			handler := handlers.NewOddsHandler()

			req := httptest.NewRequest("GET", "/api/v1/odds/convert?probability="+url.QueryEscape(value), nil)
			w := httptest.NewRecorder()

			handler.ConvertOdds(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", w.Code)
			}
		})
	}
}
