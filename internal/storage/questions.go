// Package storage holds the postgres stores for the assessment catalog,
// session results and generated reports. The engine itself owns no
// storage; these adapters sit at the persistence boundary.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"

	apperrors "talent-engine/internal/common/errors"
	"talent-engine/internal/models"
)

// QuestionStore reads the immutable question catalog.
type QuestionStore struct {
	db *sql.DB
}

func NewQuestionStore(db *sql.DB) *QuestionStore {
	return &QuestionStore{db: db}
}

const questionColumns = `id, question_text, question_type, category, dimension,
	COALESCE(sub_dimension, ''), options, is_reverse, difficulty, ord, is_active,
	created_at, updated_at`

// ListActive returns every active question ordered by its catalog order.
func (s *QuestionStore) ListActive(ctx context.Context) ([]models.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE is_active = true ORDER BY ord`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("list active questions", err)
	}
	defer rows.Close()

	return scanQuestions(rows)
}

// ListActiveByCategory returns the active questions for one category.
func (s *QuestionStore) ListActiveByCategory(ctx context.Context, category models.Category) ([]models.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE is_active = true AND category = $1 ORDER BY ord`
	rows, err := s.db.QueryContext(ctx, query, string(category))
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("list active questions by category", err)
	}
	defer rows.Close()

	return scanQuestions(rows)
}

// CountActive returns the number of active questions, the denominator
// for completeness checks.
func (s *QuestionStore) CountActive(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM questions WHERE is_active = true`
	if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, apperrors.NewQueryExecutionFailedError("count active questions", err)
	}
	return count, nil
}

// CountByIDs returns how many of the given ids exist in the catalog,
// used to reject answers for unknown questions.
func (s *QuestionStore) CountByIDs(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	encoded, err := json.Marshal(ids)
	if err != nil {
		return 0, apperrors.NewQueryExecutionFailedError("count questions by ids", err)
	}
	var count int
	query := `SELECT COUNT(*) FROM questions WHERE id IN (SELECT jsonb_array_elements_text($1::jsonb))`
	if err := s.db.QueryRowContext(ctx, query, encoded).Scan(&count); err != nil {
		return 0, apperrors.NewQueryExecutionFailedError("count questions by ids", err)
	}
	return count, nil
}

func scanQuestions(rows *sql.Rows) ([]models.Question, error) {
	var questions []models.Question
	for rows.Next() {
		var (
			q       models.Question
			options []byte
		)
		err := rows.Scan(
			&q.ID, &q.QuestionText, &q.QuestionType, &q.Category, &q.Dimension,
			&q.SubDimension, &options, &q.IsReverse, &q.Difficulty, &q.Order,
			&q.IsActive, &q.CreatedAt, &q.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewQueryExecutionFailedError("scan question", err)
		}
		if len(options) > 0 {
			if err := json.Unmarshal(options, &q.Options); err != nil {
				return nil, apperrors.NewQueryExecutionFailedError("decode question options", err)
			}
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("iterate questions", err)
	}
	return questions, nil
}
