package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/XavierBriggs/fortuna/services/ledger-service/pkg/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// LedgerUpdate is the message announcing a rebuilt report
type LedgerUpdate struct {
	MessageID   string                  `json:"message_id"`
	UserID      string                  `json:"user_id"`
	Metrics     models.AggregateMetrics `json:"metrics"`
	GeneratedAt time.Time               `json:"generated_at"`
}

// Publisher announces report updates
type Publisher interface {
	PublishLedgerUpdate(ctx context.Context, userID string, report *models.Report) (string, error)
}

// StreamPublisher publishes ledger updates to a Redis stream
type StreamPublisher struct {
	client *redis.Client
	stream string
	newID  func() string
}

// NewStreamPublisher creates a new stream publisher
func NewStreamPublisher(client *redis.Client, stream string) *StreamPublisher {
	return &StreamPublisher{
		client: client,
		stream: stream,
		newID:  func() string { return uuid.NewString() },
	}
}

// NewLedgerUpdate builds the message for a report
func NewLedgerUpdate(messageID, userID string, report *models.Report) LedgerUpdate {
	return LedgerUpdate{
		MessageID:   messageID,
		UserID:      userID,
		Metrics:     report.Metrics,
		GeneratedAt: report.GeneratedAt,
	}
}

// PublishLedgerUpdate publishes a summary of the report and returns the message id
func (p *StreamPublisher) PublishLedgerUpdate(ctx context.Context, userID string, report *models.Report) (string, error) {
	update := NewLedgerUpdate(p.newID(), userID, report)

	data, err := json.Marshal(update)
	if err != nil {
		return "", fmt.Errorf("marshaling ledger update: %w", err)
	}

	err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: 10000,
		Approx: true,
		Values: map[string]interface{}{
			"data":         string(data),
			"message_id":   update.MessageID,
			"user_id":      userID,
			"total_profit": report.Metrics.TotalProfit.String(),
			"win_rate_pct": fmt.Sprintf("%.2f", report.Metrics.WinRatePct),
		},
	}).Err()
	if err != nil {
		return "", fmt.Errorf("publish ledger update: %w", err)
	}

	return update.MessageID, nil
}
