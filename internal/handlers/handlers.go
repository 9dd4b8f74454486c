package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/XavierBriggs/fortuna/services/ledger-service/pkg/models"
)

func parseIntParam(r *http.Request, param string, defaultValue int) int {
	valueStr := r.URL.Query().Get(param)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// parseTimeParam accepts RFC3339 timestamps or plain dates in loc
func parseTimeParam(r *http.Request, param string, loc *time.Location) (*time.Time, error) {
	valueStr := r.URL.Query().Get(param)
	if valueStr == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, valueStr); err == nil {
		return &t, nil
	}

	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation("2006-01-02", valueStr, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q", param, valueStr)
	}
	return &t, nil
}

func parseListParam(r *http.Request, param string) []string {
	valueStr := r.URL.Query().Get(param)
	if valueStr == "" {
		return nil
	}

	var out []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		fmt.Printf("error encoding response: %v\n", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errResp := models.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	}

	if err != nil {
		fmt.Printf("error: %s - %v\n", message, err)
	}

	if err := json.NewEncoder(w).Encode(errResp); err != nil {
		fmt.Printf("error encoding error response: %v\n", err)
	}
}
