package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	apperrors "talent-engine/internal/common/errors"
	"talent-engine/internal/models"
)

// ResultStore persists assessment sessions and their answer sets.
type ResultStore struct {
	db *sql.DB
}

func NewResultStore(db *sql.DB) *ResultStore {
	return &ResultStore{db: db}
}

const resultColumns = `id, user_id, COALESCE(report_id, ''), test_id, answers,
	start_time, COALESCE(end_time, start_time), total_duration, status,
	created_at, updated_at`

// Create inserts a new in-progress result.
func (s *ResultStore) Create(ctx context.Context, result *models.Result) error {
	answers, err := json.Marshal(result.Answers)
	if err != nil {
		return apperrors.NewQueryExecutionFailedError("encode answers", err)
	}

	query := `INSERT INTO results
		(id, user_id, test_id, answers, start_time, total_duration, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())`
	if _, err := s.db.ExecContext(ctx, query,
		result.ID, result.UserID, result.TestID, answers,
		result.StartTime, result.TotalDuration, string(result.Status),
	); err != nil {
		return apperrors.NewQueryExecutionFailedError("create result", err)
	}
	return nil
}

// GetByID fetches a result by its primary id.
func (s *ResultStore) GetByID(ctx context.Context, id string) (*models.Result, error) {
	query := `SELECT ` + resultColumns + ` FROM results WHERE id = $1`
	return s.getOne(ctx, query, id)
}

// GetByTestID fetches a result by its public test id.
func (s *ResultStore) GetByTestID(ctx context.Context, testID string) (*models.Result, error) {
	query := `SELECT ` + resultColumns + ` FROM results WHERE test_id = $1`
	return s.getOne(ctx, query, testID)
}

func (s *ResultStore) getOne(ctx context.Context, query, ref string) (*models.Result, error) {
	var (
		r       models.Result
		answers []byte
	)
	err := s.db.QueryRowContext(ctx, query, ref).Scan(
		&r.ID, &r.UserID, &r.ReportID, &r.TestID, &answers,
		&r.StartTime, &r.EndTime, &r.TotalDuration, &r.Status,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewResultNotFoundError(ref)
		}
		return nil, apperrors.NewQueryExecutionFailedError("get result", err)
	}
	if len(answers) > 0 {
		if err := json.Unmarshal(answers, &r.Answers); err != nil {
			return nil, apperrors.NewQueryExecutionFailedError("decode answers", err)
		}
	}
	return &r, nil
}

// UpdateAnswers replaces the stored answer set of an in-progress result.
func (s *ResultStore) UpdateAnswers(ctx context.Context, id string, answers []models.Answer) error {
	encoded, err := json.Marshal(answers)
	if err != nil {
		return apperrors.NewQueryExecutionFailedError("encode answers", err)
	}

	query := `UPDATE results SET answers = $2, updated_at = NOW() WHERE id = $1 AND status = $3`
	res, err := s.db.ExecContext(ctx, query, id, encoded, string(models.StatusInProgress))
	if err != nil {
		return apperrors.NewQueryExecutionFailedError("update answers", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return apperrors.NewResultNotFoundError(id)
	}
	return nil
}

// Complete marks a result completed with its end time and duration.
func (s *ResultStore) Complete(ctx context.Context, id string, endTime time.Time, totalDuration int64) error {
	query := `UPDATE results SET status = $2, end_time = $3, total_duration = $4, updated_at = NOW()
		WHERE id = $1 AND status = $5`
	res, err := s.db.ExecContext(ctx, query,
		id, string(models.StatusCompleted), endTime, totalDuration, string(models.StatusInProgress),
	)
	if err != nil {
		return apperrors.NewQueryExecutionFailedError("complete result", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return apperrors.NewResultNotFoundError(id)
	}
	return nil
}

// SetReportID links a generated report back to its result.
func (s *ResultStore) SetReportID(ctx context.Context, resultID, reportID string) error {
	query := `UPDATE results SET report_id = $2, updated_at = NOW() WHERE id = $1`
	if _, err := s.db.ExecContext(ctx, query, resultID, reportID); err != nil {
		return apperrors.NewQueryExecutionFailedError("set result report id", err)
	}
	return nil
}
