package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "talent-engine/internal/common/errors"
	"talent-engine/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func createStoredReport() *models.Report {
	return &models.Report{
		ID:         "report-1",
		UserID:     "user-1",
		ResultID:   "result-1",
		TestID:     "test-1",
		TotalScore: 82,
		DimensionScores: []models.DimensionScore{
			{Category: models.CategoryCognitive, Dimension: "Cognitive Ability", Score: 90, MaxScore: 100, Percentage: 90, Level: models.LevelExcellent},
		},
		TalentType:  models.TypeCognitive,
		TalentLevel: models.LevelGood,
		Summary:     "summary",
		Strengths:   []string{"strength"},
		Weaknesses:  []string{"weakness"},
		Suggestions: []string{"suggestion"},
		ShareID:     "abc123",
	}
}

var reportColumnNames = []string{
	"id", "user_id", "result_id", "test_id", "total_score", "dimension_scores",
	"talent_type", "talent_level", "summary", "strengths", "weaknesses",
	"suggestions", "chart_data", "share_id", "is_public", "share_count",
	"view_count", "created_at", "updated_at",
}

func createReportRows(t *testing.T, report *models.Report) *sqlmock.Rows {
	mustJSON := func(v interface{}) []byte {
		b, err := json.Marshal(v)
		require.NoError(t, err)
		return b
	}
	now := time.Now()
	return sqlmock.NewRows(reportColumnNames).AddRow(
		report.ID, report.UserID, report.ResultID, report.TestID, report.TotalScore,
		mustJSON(report.DimensionScores), string(report.TalentType), string(report.TalentLevel),
		report.Summary, mustJSON(report.Strengths), mustJSON(report.Weaknesses),
		mustJSON(report.Suggestions), mustJSON(report.ChartData), report.ShareID,
		report.IsPublic, report.ShareCount, report.ViewCount, now, now,
	)
}

// ==========================
// Create Tests
// ==========================

func TestReportStore_Create_Success(t *testing.T) {
	db, mock := createMockDB(t)
	store := NewReportStore(db)

	mock.ExpectExec("INSERT INTO reports").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Create(context.Background(), createStoredReport())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportStore_Create_DuplicateResult(t *testing.T) {
	db, mock := createMockDB(t)
	store := NewReportStore(db)

	mock.ExpectExec("INSERT INTO reports").
		WillReturnError(&pq.Error{Code: pq.ErrorCode(uniqueViolation)})

	err := store.Create(context.Background(), createStoredReport())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeDuplicateReport))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportStore_Create_QueryFailure(t *testing.T) {
	db, mock := createMockDB(t)
	store := NewReportStore(db)

	mock.ExpectExec("INSERT INTO reports").
		WillReturnError(sql.ErrConnDone)

	err := store.Create(context.Background(), createStoredReport())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeQueryExecutionFailed))
}

// ==========================
// Get Tests
// ==========================

func TestReportStore_GetByID_Success(t *testing.T) {
	db, mock := createMockDB(t)
	store := NewReportStore(db)
	expected := createStoredReport()

	mock.ExpectQuery("SELECT (.+) FROM reports WHERE id =").
		WithArgs("report-1").
		WillReturnRows(createReportRows(t, expected))

	got, err := store.GetByID(context.Background(), "report-1")
	require.NoError(t, err)

	assert.Equal(t, expected.ID, got.ID)
	assert.Equal(t, expected.TotalScore, got.TotalScore)
	assert.Equal(t, expected.TalentType, got.TalentType)
	require.Len(t, got.DimensionScores, 1)
	assert.Equal(t, 90, got.DimensionScores[0].Score)
	assert.Equal(t, expected.Strengths, got.Strengths)
}

func TestReportStore_GetByID_NotFound(t *testing.T) {
	db, mock := createMockDB(t)
	store := NewReportStore(db)

	mock.ExpectQuery("SELECT (.+) FROM reports WHERE id =").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := store.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeReportNotFound))
}

func TestReportStore_GetByShareID_RequiresPublic(t *testing.T) {
	db, mock := createMockDB(t)
	store := NewReportStore(db)

	mock.ExpectQuery("SELECT (.+) FROM reports WHERE share_id = (.+) AND is_public = true").
		WithArgs("abc123").
		WillReturnError(sql.ErrNoRows)

	_, err := store.GetByShareID(context.Background(), "abc123")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeReportNotFound))
}

func TestReportStore_GetByIDs(t *testing.T) {
	db, mock := createMockDB(t)
	store := NewReportStore(db)
	expected := createStoredReport()

	mock.ExpectQuery("SELECT (.+) FROM reports WHERE id = ANY").
		WillReturnRows(createReportRows(t, expected))

	reports, err := store.GetByIDs(context.Background(), []string{"report-1"})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, expected.ID, reports[0].ID)
}

func TestReportStore_GetByIDs_EmptyInput(t *testing.T) {
	db, _ := createMockDB(t)
	store := NewReportStore(db)

	reports, err := store.GetByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, reports)
}

// ==========================
// List and Update Tests
// ==========================

func TestReportStore_ListByUser(t *testing.T) {
	db, mock := createMockDB(t)
	store := NewReportStore(db)
	expected := createStoredReport()

	mock.ExpectQuery("SELECT (.+) FROM reports\\s+WHERE user_id =").
		WithArgs("user-1", 10, 0).
		WillReturnRows(createReportRows(t, expected))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM reports WHERE user_id =").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	reports, total, err := store.ListByUser(context.Background(), "user-1", 1, 10)
	require.NoError(t, err)
	assert.Len(t, reports, 1)
	assert.Equal(t, 7, total)
}

func TestReportStore_SetVisibility_NotFound(t *testing.T) {
	db, mock := createMockDB(t)
	store := NewReportStore(db)

	mock.ExpectExec("UPDATE reports SET is_public =").
		WithArgs("missing", true).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.SetVisibility(context.Background(), "missing", true)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeReportNotFound))
}

func TestReportStore_IncrementViewCount(t *testing.T) {
	db, mock := createMockDB(t)
	store := NewReportStore(db)

	mock.ExpectExec("UPDATE reports SET view_count = view_count \\+ 1").
		WithArgs("report-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.IncrementViewCount(context.Background(), "report-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
