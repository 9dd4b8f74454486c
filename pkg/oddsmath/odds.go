package oddsmath

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Odds is an American odds price as recorded on a leg. Feeds deliver it either
// as a number or as a text token; the text is parsed once when the Odds is
// built, and a token that does not parse leaves the Odds without a value.
type Odds struct {
	value float64
	valid bool
}

// NewOdds wraps a numeric American price.
func NewOdds(american float64) Odds {
	if math.IsNaN(american) || math.IsInf(american, 0) {
		return Odds{}
	}
	return Odds{value: american, valid: true}
}

// ParseOdds parses a base-10 text price such as "+150", "-110" or "250.0".
func ParseOdds(text string) Odds {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "+")
	if text == "" || strings.ContainsAny(text, "xX") {
		// base-10 only; ParseFloat would also take hex floats
		return Odds{}
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Odds{}
	}
	return NewOdds(v)
}

// American returns the parsed price and whether one is present.
func (o Odds) American() (float64, bool) {
	return o.value, o.valid
}

// Multiplier returns the decimal multiplier, or ErrInvalidOdds when the price
// is missing or zero.
func (o Odds) Multiplier() (float64, error) {
	if !o.valid {
		return 0, fmt.Errorf("%w: no parseable price", ErrInvalidOdds)
	}
	return AmericanToDecimal(o.value)
}

func (o Odds) String() string {
	if !o.valid {
		return ""
	}
	if o.value > 0 {
		return "+" + strconv.FormatFloat(o.value, 'f', -1, 64)
	}
	return strconv.FormatFloat(o.value, 'f', -1, 64)
}

// MarshalJSON writes the price as a number, or null when absent.
func (o Odds) MarshalJSON() ([]byte, error) {
	if !o.valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON accepts a number, a string token or null.
func (o *Odds) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*o = Odds{}
		return nil
	}

	if data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return fmt.Errorf("decode odds text: %w", err)
		}
		*o = ParseOdds(text)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode odds number: %w", err)
	}
	*o = NewOdds(v)
	return nil
}

// Scan implements sql.Scanner for integer, float and text columns.
func (o *Odds) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*o = Odds{}
	case int64:
		*o = NewOdds(float64(v))
	case float64:
		*o = NewOdds(v)
	case string:
		*o = ParseOdds(v)
	case []byte:
		*o = ParseOdds(string(v))
	default:
		return fmt.Errorf("scan odds: unsupported type %T", src)
	}
	return nil
}

// Value implements driver.Valuer.
func (o Odds) Value() (driver.Value, error) {
	if !o.valid {
		return nil, nil
	}
	return o.value, nil
}
