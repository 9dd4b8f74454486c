package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/XavierBriggs/fortuna/services/ledger-service/pkg/models"
	"github.com/redis/go-redis/v9"
)

// DefaultReportTTL is used when the cache is built with a non-positive TTL
const DefaultReportTTL = 10 * time.Minute

// ReportCache stores computed reports keyed by user and scope
type ReportCache interface {
	GetReport(ctx context.Context, userID, scope string) (*models.Report, error)
	SetReport(ctx context.Context, userID, scope string, report *models.Report) error
	Invalidate(ctx context.Context, userID string) error
}

// RedisReportCache implements ReportCache on Redis
type RedisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisReportCache creates a new Redis-backed report cache
func NewRedisReportCache(client *redis.Client, ttl time.Duration) *RedisReportCache {
	if ttl <= 0 {
		ttl = DefaultReportTTL
	}
	return &RedisReportCache{
		client: client,
		ttl:    ttl,
	}
}

// TTL returns how long reports stay cached
func (c *RedisReportCache) TTL() time.Duration {
	return c.ttl
}

// ReportKey is the Redis key of one cached report
func ReportKey(userID, scope string) string {
	if scope == "" {
		scope = "all"
	}
	return fmt.Sprintf("ledger:report:%s:%s", userID, scope)
}

func scopesKey(userID string) string {
	return fmt.Sprintf("ledger:scopes:%s", userID)
}

// GetReport returns a cached report, or nil on a miss
func (c *RedisReportCache) GetReport(ctx context.Context, userID, scope string) (*models.Report, error) {
	data, err := c.client.Get(ctx, ReportKey(userID, scope)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}

	return DecodeReport(data)
}

// SetReport stores a report and remembers its key for invalidation
func (c *RedisReportCache) SetReport(ctx context.Context, userID, scope string, report *models.Report) error {
	data, err := EncodeReport(report)
	if err != nil {
		return err
	}

	key := ReportKey(userID, scope)

	pipe := c.client.Pipeline()
	pipe.Set(ctx, key, data, c.ttl)
	pipe.SAdd(ctx, scopesKey(userID), key)
	pipe.Expire(ctx, scopesKey(userID), c.ttl)

	_, err = pipe.Exec(ctx)
	return err
}

// Invalidate drops every cached report for a user
func (c *RedisReportCache) Invalidate(ctx context.Context, userID string) error {
	keys, err := c.client.SMembers(ctx, scopesKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("list cached scopes: %w", err)
	}

	keys = append(keys, scopesKey(userID))
	return c.client.Del(ctx, keys...).Err()
}

// EncodeReport is the stored form of a report
func EncodeReport(report *models.Report) ([]byte, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("marshaling report: %w", err)
	}
	return data, nil
}

// DecodeReport reads a report written by EncodeReport
func DecodeReport(data []byte) (*models.Report, error) {
	var report models.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("unmarshaling report: %w", err)
	}
	return &report, nil
}
