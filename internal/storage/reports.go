package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/lib/pq"

	apperrors "talent-engine/internal/common/errors"
	"talent-engine/internal/models"
)

// uniqueViolation is the postgres error code for a unique-constraint
// violation, the signal that another request already created the
// report for this result.
const uniqueViolation = "23505"

// ReportStore persists generated reports. The unique index on
// result_id enforces the create-exactly-once invariant; Create
// translates a violation into a DUPLICATE_REPORT error so callers can
// re-fetch the stored row.
type ReportStore struct {
	db *sql.DB
}

func NewReportStore(db *sql.DB) *ReportStore {
	return &ReportStore{db: db}
}

const reportColumns = `id, user_id, result_id, test_id, total_score, dimension_scores,
	talent_type, talent_level, summary, strengths, weaknesses, suggestions, chart_data,
	COALESCE(share_id, ''), is_public, share_count, view_count, created_at, updated_at`

// Create inserts a new report.
func (s *ReportStore) Create(ctx context.Context, report *models.Report) error {
	encoded, err := encodeReportJSON(report)
	if err != nil {
		return err
	}

	query := `INSERT INTO reports
		(id, user_id, result_id, test_id, total_score, dimension_scores, talent_type,
		 talent_level, summary, strengths, weaknesses, suggestions, chart_data,
		 share_id, is_public, share_count, view_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, 0, 0, NOW(), NOW())`
	_, err = s.db.ExecContext(ctx, query,
		report.ID, report.UserID, report.ResultID, report.TestID, report.TotalScore,
		encoded.dimensionScores, string(report.TalentType), string(report.TalentLevel),
		report.Summary, encoded.strengths, encoded.weaknesses, encoded.suggestions,
		encoded.chartData, report.ShareID, report.IsPublic,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return apperrors.NewDuplicateReportError(report.ResultID)
		}
		return apperrors.NewQueryExecutionFailedError("create report", err)
	}
	return nil
}

// GetByID fetches a report by its primary id.
func (s *ReportStore) GetByID(ctx context.Context, id string) (*models.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1`
	return s.getOne(ctx, query, id)
}

// GetByResultID fetches the report generated for a result, if any.
func (s *ReportStore) GetByResultID(ctx context.Context, resultID string) (*models.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE result_id = $1`
	return s.getOne(ctx, query, resultID)
}

// GetByShareID fetches a publicly shared report by its share token.
func (s *ReportStore) GetByShareID(ctx context.Context, shareID string) (*models.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE share_id = $1 AND is_public = true`
	return s.getOne(ctx, query, shareID)
}

// ListByUser returns a page of a user's reports, newest first, plus the
// total count.
func (s *ReportStore) ListByUser(ctx context.Context, userID string, page, limit int) ([]models.Report, int, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	query := `SELECT ` + reportColumns + ` FROM reports
		WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := s.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, apperrors.NewQueryExecutionFailedError("list reports", err)
	}
	defer rows.Close()

	var reports []models.Report
	for rows.Next() {
		r, err := scanReport(rows.Scan)
		if err != nil {
			return nil, 0, apperrors.NewQueryExecutionFailedError("scan report", err)
		}
		reports = append(reports, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewQueryExecutionFailedError("iterate reports", err)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM reports WHERE user_id = $1`
	if err := s.db.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, apperrors.NewQueryExecutionFailedError("count reports", err)
	}

	return reports, total, nil
}

// GetByIDs fetches a set of reports by id, used by comparison.
func (s *ReportStore) GetByIDs(ctx context.Context, ids []string) ([]models.Report, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = ANY($1) ORDER BY created_at ASC`
	rows, err := s.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("get reports by ids", err)
	}
	defer rows.Close()

	var reports []models.Report
	for rows.Next() {
		r, err := scanReport(rows.Scan)
		if err != nil {
			return nil, apperrors.NewQueryExecutionFailedError("scan report", err)
		}
		reports = append(reports, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("iterate reports", err)
	}
	return reports, nil
}

// IncrementViewCount bumps the view counter, application-owned metadata.
func (s *ReportStore) IncrementViewCount(ctx context.Context, id string) error {
	query := `UPDATE reports SET view_count = view_count + 1, updated_at = NOW() WHERE id = $1`
	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return apperrors.NewQueryExecutionFailedError("increment view count", err)
	}
	return nil
}

// SetVisibility toggles public sharing for a report.
func (s *ReportStore) SetVisibility(ctx context.Context, id string, public bool) error {
	query := `UPDATE reports SET is_public = $2, updated_at = NOW() WHERE id = $1`
	res, err := s.db.ExecContext(ctx, query, id, public)
	if err != nil {
		return apperrors.NewQueryExecutionFailedError("set report visibility", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return apperrors.NewReportNotFoundError(id)
	}
	return nil
}

func (s *ReportStore) getOne(ctx context.Context, query, ref string) (*models.Report, error) {
	row := s.db.QueryRowContext(ctx, query, ref)
	r, err := scanReport(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewReportNotFoundError(ref)
		}
		var se *apperrors.StandardError
		if errors.As(err, &se) {
			return nil, err
		}
		return nil, apperrors.NewQueryExecutionFailedError("get report", err)
	}
	return r, nil
}

type encodedReport struct {
	dimensionScores []byte
	strengths       []byte
	weaknesses      []byte
	suggestions     []byte
	chartData       []byte
}

func encodeReportJSON(report *models.Report) (*encodedReport, error) {
	var (
		enc encodedReport
		err error
	)
	if enc.dimensionScores, err = json.Marshal(report.DimensionScores); err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("encode dimension scores", err)
	}
	if enc.strengths, err = json.Marshal(report.Strengths); err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("encode strengths", err)
	}
	if enc.weaknesses, err = json.Marshal(report.Weaknesses); err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("encode weaknesses", err)
	}
	if enc.suggestions, err = json.Marshal(report.Suggestions); err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("encode suggestions", err)
	}
	if enc.chartData, err = json.Marshal(report.ChartData); err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("encode chart data", err)
	}
	return &enc, nil
}

func scanReport(scan func(dest ...interface{}) error) (*models.Report, error) {
	var (
		r               models.Report
		dimensionScores []byte
		strengths       []byte
		weaknesses      []byte
		suggestions     []byte
		chartData       []byte
	)
	err := scan(
		&r.ID, &r.UserID, &r.ResultID, &r.TestID, &r.TotalScore, &dimensionScores,
		&r.TalentType, &r.TalentLevel, &r.Summary, &strengths, &weaknesses,
		&suggestions, &chartData, &r.ShareID, &r.IsPublic, &r.ShareCount,
		&r.ViewCount, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		// raw scan errors (including sql.ErrNoRows) pass through for the
		// caller to classify
		return nil, err
	}

	if err := json.Unmarshal(dimensionScores, &r.DimensionScores); err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("decode dimension scores", err)
	}
	if err := json.Unmarshal(strengths, &r.Strengths); err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("decode strengths", err)
	}
	if err := json.Unmarshal(weaknesses, &r.Weaknesses); err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("decode weaknesses", err)
	}
	if err := json.Unmarshal(suggestions, &r.Suggestions); err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("decode suggestions", err)
	}
	if err := json.Unmarshal(chartData, &r.ChartData); err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("decode chart data", err)
	}
	return &r, nil
}
