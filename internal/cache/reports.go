// Package cache provides the redis cache-aside layer for generated
// reports. Reports are immutable once created, so cached entries never
// go stale; the TTL only bounds memory use.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"talent-engine/internal/common/logger"
	"talent-engine/internal/models"
)

const reportKeyPrefix = "report:result:"

// ReportCache stores generated reports keyed by result id.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewReportCache(client *redis.Client, ttl time.Duration, log logger.Logger) *ReportCache {
	return &ReportCache{
		client: client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "report-cache"}),
	}
}

// Get returns the cached report for a result id, or nil on a miss.
// Cache failures degrade to a miss; the store remains authoritative.
func (c *ReportCache) Get(ctx context.Context, resultID string) *models.Report {
	val, err := c.client.Get(ctx, reportKeyPrefix+resultID).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("report cache read failed", map[string]interface{}{
				"resultId": resultID,
				"error":    err.Error(),
			})
		}
		return nil
	}

	var report models.Report
	if err := json.Unmarshal([]byte(val), &report); err != nil {
		c.logger.Warn("report cache entry corrupt, dropping", map[string]interface{}{
			"resultId": resultID,
			"error":    err.Error(),
		})
		_ = c.client.Del(ctx, reportKeyPrefix+resultID).Err()
		return nil
	}
	return &report
}

// Set stores a report under its result id. Best effort.
func (c *ReportCache) Set(ctx context.Context, report *models.Report) {
	encoded, err := json.Marshal(report)
	if err != nil {
		c.logger.Warn("report cache encode failed", map[string]interface{}{
			"resultId": report.ResultID,
			"error":    err.Error(),
		})
		return
	}
	if err := c.client.Set(ctx, reportKeyPrefix+report.ResultID, encoded, c.ttl).Err(); err != nil {
		c.logger.Warn("report cache write failed", map[string]interface{}{
			"resultId": report.ResultID,
			"error":    err.Error(),
		})
	}
}

// Invalidate drops the cached entry for a result id, used when
// visibility metadata changes.
func (c *ReportCache) Invalidate(ctx context.Context, resultID string) {
	if err := c.client.Del(ctx, reportKeyPrefix+resultID).Err(); err != nil {
		c.logger.Warn("report cache invalidate failed", map[string]interface{}{
			"resultId": resultID,
			"error":    err.Error(),
		})
	}
}
