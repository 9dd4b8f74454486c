package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStatus is returned when a status token is not recognised.
var ErrUnknownStatus = errors.New("unknown settlement status")

// Status is the settlement state of a leg or a bet
type Status uint8

const (
	StatusPending Status = iota
	StatusWon
	StatusLost
	StatusVoid
	StatusPush
)

// ParseStatus maps a stored status token to a Status. Both the ledger
// vocabulary (won/lost) and the settlement-service vocabulary (win/loss)
// are accepted.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "open":
		return StatusPending, nil
	case "won", "win":
		return StatusWon, nil
	case "lost", "loss":
		return StatusLost, nil
	case "void", "cancelled", "canceled":
		return StatusVoid, nil
	case "push":
		return StatusPush, nil
	default:
		return StatusPending, fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
}

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	case StatusVoid:
		return "void"
	case StatusPush:
		return "push"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// IsDecided reports whether the bet finished as a win or a loss.
func (s Status) IsDecided() bool {
	return s == StatusWon || s == StatusLost
}

// IsFinal reports whether the bet is no longer pending.
func (s Status) IsFinal() bool {
	return s != StatusPending
}

// IsVoid reports whether the stake was returned (void or push).
func (s Status) IsVoid() bool {
	return s == StatusVoid || s == StatusPush
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("decode status: %w", err)
	}
	parsed, err := ParseStatus(text)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Scan implements sql.Scanner
func (s *Status) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseStatus(v)
		if err != nil {
			return err
		}
		*s = parsed
	case []byte:
		parsed, err := ParseStatus(string(v))
		if err != nil {
			return err
		}
		*s = parsed
	case nil:
		*s = StatusPending
	default:
		return fmt.Errorf("scan status: unsupported type %T", src)
	}
	return nil
}

// Value implements driver.Valuer
func (s Status) Value() (driver.Value, error) {
	return s.String(), nil
}
