package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talent-engine/internal/common/logger"
	"talent-engine/internal/models"
)

func createTestCache(t *testing.T) (*ReportCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewReportCache(client, time.Hour, logger.NewTestLogger(t)), mr
}

func createCachedReport(resultID string) *models.Report {
	return &models.Report{
		ID:         "report-1",
		ResultID:   resultID,
		TotalScore: 82,
		TalentType: models.TypeCognitive,
	}
}

func TestReportCache_SetAndGet(t *testing.T) {
	c, _ := createTestCache(t)
	ctx := context.Background()

	report := createCachedReport("result-1")
	c.Set(ctx, report)

	got := c.Get(ctx, "result-1")
	require.NotNil(t, got)
	assert.Equal(t, report.ID, got.ID)
	assert.Equal(t, report.TotalScore, got.TotalScore)
	assert.Equal(t, report.TalentType, got.TalentType)
}

func TestReportCache_MissReturnsNil(t *testing.T) {
	c, _ := createTestCache(t)
	assert.Nil(t, c.Get(context.Background(), "absent"))
}

func TestReportCache_ExpiredEntryIsMiss(t *testing.T) {
	c, mr := createTestCache(t)
	ctx := context.Background()

	c.Set(ctx, createCachedReport("result-1"))
	mr.FastForward(2 * time.Hour)

	assert.Nil(t, c.Get(ctx, "result-1"))
}

func TestReportCache_CorruptEntryIsDroppedAndMisses(t *testing.T) {
	c, mr := createTestCache(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(reportKeyPrefix+"result-1", "{not json"))

	assert.Nil(t, c.Get(ctx, "result-1"))
	assert.False(t, mr.Exists(reportKeyPrefix+"result-1"))
}

func TestReportCache_Invalidate(t *testing.T) {
	c, mr := createTestCache(t)
	ctx := context.Background()

	c.Set(ctx, createCachedReport("result-1"))
	require.True(t, mr.Exists(reportKeyPrefix+"result-1"))

	c.Invalidate(ctx, "result-1")
	assert.False(t, mr.Exists(reportKeyPrefix+"result-1"))
}

func TestReportCache_SetUsesConfiguredTTL(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewReportCache(client, 30*time.Minute, logger.NewTestLogger(t))

	report := createCachedReport("result-1")
	encoded, err := json.Marshal(report)
	require.NoError(t, err)

	mock.ExpectSet(reportKeyPrefix+"result-1", encoded, 30*time.Minute).SetVal("OK")
	c.Set(context.Background(), report)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportCache_GetErrorDegradesToMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewReportCache(client, time.Hour, logger.NewTestLogger(t))

	mock.ExpectGet(reportKeyPrefix + "result-1").SetErr(errors.New("connection refused"))

	assert.Nil(t, c.Get(context.Background(), "result-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportCache_DownRedisDegradesToMiss(t *testing.T) {
	c, mr := createTestCache(t)
	ctx := context.Background()
	mr.Close()

	c.Set(ctx, createCachedReport("result-1"))
	assert.Nil(t, c.Get(ctx, "result-1"))
}
