// Package service contains the application services that orchestrate
// scoring, persistence and caching around the assessment lifecycle.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "talent-engine/internal/common/errors"
	"talent-engine/internal/common/logger"
	"talent-engine/internal/common/metrics"
	"talent-engine/internal/common/observability"
	"talent-engine/internal/models"
	"talent-engine/internal/report"
	"talent-engine/internal/scoring"
)

// ReportStore is the persistence surface the report service needs.
type ReportStore interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id string) (*models.Report, error)
	GetByResultID(ctx context.Context, resultID string) (*models.Report, error)
	GetByShareID(ctx context.Context, shareID string) (*models.Report, error)
	ListByUser(ctx context.Context, userID string, page, limit int) ([]models.Report, int, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Report, error)
	IncrementViewCount(ctx context.Context, id string) error
	SetVisibility(ctx context.Context, id string, public bool) error
}

// ResultStore is the slice of result persistence the report service needs.
type ResultStore interface {
	GetByID(ctx context.Context, id string) (*models.Result, error)
	GetByTestID(ctx context.Context, testID string) (*models.Result, error)
	SetReportID(ctx context.Context, resultID, reportID string) error
}

// QuestionStore supplies the active question catalog.
type QuestionStore interface {
	ListActive(ctx context.Context) ([]models.Question, error)
	CountActive(ctx context.Context) (int, error)
	CountByIDs(ctx context.Context, ids []string) (int, error)
}

// ReportCache is the optional cache-aside layer; a nil implementation
// is not allowed, use cache.NewReportCache or a no-op in tests.
type ReportCache interface {
	Get(ctx context.Context, resultID string) *models.Report
	Set(ctx context.Context, report *models.Report)
	Invalidate(ctx context.Context, resultID string)
}

// ReportService generates, fetches and compares reports. Generation is
// idempotent per result: concurrent callers race on the unique result
// index and the loser re-reads the winner's row.
type ReportService struct {
	reports   ReportStore
	results   ResultStore
	questions QuestionStore
	cache     ReportCache
	names     scoring.Names
	pageSize  int
	obs       *observability.Observability
	logger    logger.Logger
}

func NewReportService(
	reports ReportStore,
	results ResultStore,
	questions QuestionStore,
	cache ReportCache,
	names scoring.Names,
	pageSize int,
	obs *observability.Observability,
	log logger.Logger,
) *ReportService {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &ReportService{
		reports:   reports,
		results:   results,
		questions: questions,
		cache:     cache,
		names:     names,
		pageSize:  pageSize,
		obs:       obs,
		logger:    log.WithFields(map[string]interface{}{"service": "report"}),
	}
}

// Generate scores the completed result identified by ref (a result id
// or a test id) and persists the report. Returns the existing report
// when one was already generated for the result.
func (s *ReportService) Generate(ctx context.Context, ref string) (*models.Report, error) {
	start := time.Now()

	result, err := s.resolveResult(ctx, ref)
	if err != nil {
		return nil, err
	}
	if result.Status != models.StatusCompleted {
		return nil, apperrors.NewResultNotCompletedError(result.TestID, string(result.Status))
	}

	if existing := s.lookupExisting(ctx, result); existing != nil {
		return existing, nil
	}

	questions, err := s.questions.ListActive(ctx)
	if err != nil {
		s.recordFailure(ctx, err)
		return nil, err
	}

	answers := result.AnswerMap()
	if answered := countAnswered(questions, answers); answered < len(questions) {
		err := apperrors.NewIncompleteAnswerSetError(answered, len(questions))
		s.recordFailure(ctx, err)
		return nil, err
	}

	data, err := scoring.ComputeTotalScore(questions, answers, s.names)
	if err != nil {
		s.recordFailure(ctx, err)
		return nil, err
	}
	narrative := report.GenerateNarrative(data)

	now := time.Now().UTC()
	rep := &models.Report{
		ID:              uuid.NewString(),
		UserID:          result.UserID,
		ResultID:        result.ID,
		TestID:          result.TestID,
		TotalScore:      data.TotalScore,
		DimensionScores: data.DimensionScores,
		TalentType:      data.TalentType,
		TalentLevel:     data.TalentLevel,
		Summary:         narrative.Summary,
		Strengths:       narrative.Strengths,
		Weaknesses:      narrative.Weaknesses,
		Suggestions:     narrative.Suggestions,
		ChartData:       narrative.ChartData,
		ShareID:         newShareID(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.reports.Create(ctx, rep); err != nil {
		if apperrors.IsCode(err, apperrors.ErrCodeDuplicateReport) {
			// Lost the race; the other writer's report is authoritative.
			return s.reports.GetByResultID(ctx, result.ID)
		}
		s.recordFailure(ctx, err)
		return nil, err
	}

	if err := s.results.SetReportID(ctx, result.ID, rep.ID); err != nil {
		s.logger.Warn("failed to back-link report to result", map[string]interface{}{
			"resultId": result.ID,
			"reportId": rep.ID,
			"error":    err.Error(),
		})
	}
	s.cache.Set(ctx, rep)

	elapsed := time.Since(start)
	metrics.ScoringDuration.Observe(elapsed.Seconds())
	metrics.ReportsGenerated.WithLabelValues(string(rep.TalentType)).Inc()
	s.obs.RecordReportProcessed(ctx, "generated")
	s.obs.RecordReportDuration(ctx, elapsed, "generated")

	s.logger.Info("report generated", map[string]interface{}{
		"reportId":   rep.ID,
		"resultId":   result.ID,
		"talentType": rep.TalentType,
		"totalScore": rep.TotalScore,
	})
	return rep, nil
}

// GetByID fetches a report, serving from cache when possible.
func (s *ReportService) GetByID(ctx context.Context, id string) (*models.Report, error) {
	rep, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return rep, nil
}

// GetByResultID fetches the report for a result, cache first.
func (s *ReportService) GetByResultID(ctx context.Context, resultID string) (*models.Report, error) {
	if cached := s.cache.Get(ctx, resultID); cached != nil {
		metrics.ReportCacheHits.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.ReportCacheHits.WithLabelValues("miss").Inc()

	rep, err := s.reports.GetByResultID(ctx, resultID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, rep)
	return rep, nil
}

// GetShared resolves a public share link and counts the view.
func (s *ReportService) GetShared(ctx context.Context, shareID string) (*models.Report, error) {
	rep, err := s.reports.GetByShareID(ctx, shareID)
	if err != nil {
		return nil, err
	}
	if err := s.reports.IncrementViewCount(ctx, rep.ID); err != nil {
		s.logger.Warn("view count update failed", map[string]interface{}{
			"reportId": rep.ID,
			"error":    err.Error(),
		})
	} else {
		rep.ViewCount++
	}
	return rep, nil
}

// ListByUser returns one page of a user's reports plus the total count.
func (s *ReportService) ListByUser(ctx context.Context, userID string, page, limit int) ([]models.Report, int, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = s.pageSize
	}
	return s.reports.ListByUser(ctx, userID, page, limit)
}

// SetVisibility toggles public sharing for a report.
func (s *ReportService) SetVisibility(ctx context.Context, id string, public bool) (*models.Report, error) {
	rep, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.reports.SetVisibility(ctx, id, public); err != nil {
		return nil, err
	}
	rep.IsPublic = public
	s.cache.Invalidate(ctx, rep.ResultID)
	return rep, nil
}

// Compare fetches the named reports and computes their comparison.
func (s *ReportService) Compare(ctx context.Context, reportIDs []string) (*models.Comparison, error) {
	reports, err := s.reports.GetByIDs(ctx, reportIDs)
	if err != nil {
		return nil, err
	}
	cmp, err := report.CompareReports(reports)
	if err != nil {
		return nil, err
	}
	metrics.ComparisonsTotal.Inc()
	return cmp, nil
}

// resolveResult accepts either a result id or a test id.
func (s *ReportService) resolveResult(ctx context.Context, ref string) (*models.Result, error) {
	result, err := s.results.GetByID(ctx, ref)
	if err == nil {
		return result, nil
	}
	if !apperrors.IsCode(err, apperrors.ErrCodeResultNotFound) {
		return nil, err
	}
	return s.results.GetByTestID(ctx, ref)
}

// lookupExisting short-circuits generation when the result already has
// a report, preferring the cache.
func (s *ReportService) lookupExisting(ctx context.Context, result *models.Result) *models.Report {
	if cached := s.cache.Get(ctx, result.ID); cached != nil {
		metrics.ReportCacheHits.WithLabelValues("hit").Inc()
		return cached
	}
	if result.ReportID == "" {
		return nil
	}
	metrics.ReportCacheHits.WithLabelValues("miss").Inc()
	rep, err := s.reports.GetByID(ctx, result.ReportID)
	if err != nil {
		return nil
	}
	s.cache.Set(ctx, rep)
	return rep
}

func (s *ReportService) recordFailure(ctx context.Context, err error) {
	metrics.ReportGenerationFailed.WithLabelValues(string(apperrors.CodeOf(err))).Inc()
	s.obs.RecordReportProcessed(ctx, "failed")
}

// countAnswered counts catalog questions with a recorded answer.
func countAnswered(questions []models.Question, answers map[string]int) int {
	n := 0
	for _, q := range questions {
		if _, ok := answers[q.ID]; ok {
			n++
		}
	}
	return n
}

// newShareID produces a compact share token from a UUIDv4.
func newShareID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
