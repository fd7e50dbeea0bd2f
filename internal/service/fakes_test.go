package service

import (
	"context"
	"time"

	apperrors "talent-engine/internal/common/errors"
	"talent-engine/internal/models"
)

// In-memory fakes for the store interfaces. They enforce the same
// error contracts as the postgres stores so the services can be tested
// without a database.

type fakeReportStore struct {
	byID      map[string]*models.Report
	createErr error
	created   []*models.Report
}

func newFakeReportStore() *fakeReportStore {
	return &fakeReportStore{byID: make(map[string]*models.Report)}
}

func (s *fakeReportStore) Create(_ context.Context, report *models.Report) error {
	if s.createErr != nil {
		return s.createErr
	}
	for _, r := range s.byID {
		if r.ResultID == report.ResultID {
			return apperrors.NewDuplicateReportError(report.ResultID)
		}
	}
	clone := *report
	s.byID[report.ID] = &clone
	s.created = append(s.created, &clone)
	return nil
}

func (s *fakeReportStore) GetByID(_ context.Context, id string) (*models.Report, error) {
	if r, ok := s.byID[id]; ok {
		clone := *r
		return &clone, nil
	}
	return nil, apperrors.NewReportNotFoundError(id)
}

func (s *fakeReportStore) GetByResultID(_ context.Context, resultID string) (*models.Report, error) {
	for _, r := range s.byID {
		if r.ResultID == resultID {
			clone := *r
			return &clone, nil
		}
	}
	return nil, apperrors.NewReportNotFoundError(resultID)
}

func (s *fakeReportStore) GetByShareID(_ context.Context, shareID string) (*models.Report, error) {
	for _, r := range s.byID {
		if r.ShareID == shareID && r.IsPublic {
			clone := *r
			return &clone, nil
		}
	}
	return nil, apperrors.NewReportNotFoundError(shareID)
}

func (s *fakeReportStore) ListByUser(_ context.Context, userID string, page, limit int) ([]models.Report, int, error) {
	var reports []models.Report
	for _, r := range s.byID {
		if r.UserID == userID {
			reports = append(reports, *r)
		}
	}
	return reports, len(reports), nil
}

func (s *fakeReportStore) GetByIDs(_ context.Context, ids []string) ([]models.Report, error) {
	var reports []models.Report
	for _, id := range ids {
		if r, ok := s.byID[id]; ok {
			reports = append(reports, *r)
		}
	}
	return reports, nil
}

func (s *fakeReportStore) IncrementViewCount(_ context.Context, id string) error {
	r, ok := s.byID[id]
	if !ok {
		return apperrors.NewReportNotFoundError(id)
	}
	r.ViewCount++
	return nil
}

func (s *fakeReportStore) SetVisibility(_ context.Context, id string, public bool) error {
	r, ok := s.byID[id]
	if !ok {
		return apperrors.NewReportNotFoundError(id)
	}
	r.IsPublic = public
	return nil
}

type fakeResultStore struct {
	byID      map[string]*models.Result
	reportIDs map[string]string
}

func newFakeResultStore(results ...*models.Result) *fakeResultStore {
	s := &fakeResultStore{
		byID:      make(map[string]*models.Result),
		reportIDs: make(map[string]string),
	}
	for _, r := range results {
		s.byID[r.ID] = r
	}
	return s
}

func (s *fakeResultStore) Create(_ context.Context, result *models.Result) error {
	s.byID[result.ID] = result
	return nil
}

func (s *fakeResultStore) GetByID(_ context.Context, id string) (*models.Result, error) {
	if r, ok := s.byID[id]; ok {
		return r, nil
	}
	return nil, apperrors.NewResultNotFoundError(id)
}

func (s *fakeResultStore) GetByTestID(_ context.Context, testID string) (*models.Result, error) {
	for _, r := range s.byID {
		if r.TestID == testID {
			return r, nil
		}
	}
	return nil, apperrors.NewResultNotFoundError(testID)
}

func (s *fakeResultStore) UpdateAnswers(_ context.Context, id string, answers []models.Answer) error {
	r, ok := s.byID[id]
	if !ok || r.Status != models.StatusInProgress {
		return apperrors.NewResultNotFoundError(id)
	}
	r.Answers = answers
	return nil
}

func (s *fakeResultStore) Complete(_ context.Context, id string, endTime time.Time, totalDuration int64) error {
	r, ok := s.byID[id]
	if !ok || r.Status != models.StatusInProgress {
		return apperrors.NewResultNotFoundError(id)
	}
	r.Status = models.StatusCompleted
	r.EndTime = endTime
	r.TotalDuration = totalDuration
	return nil
}

func (s *fakeResultStore) SetReportID(_ context.Context, resultID, reportID string) error {
	if r, ok := s.byID[resultID]; ok {
		r.ReportID = reportID
	}
	s.reportIDs[resultID] = reportID
	return nil
}

type fakeQuestionStore struct {
	questions []models.Question
}

func (s *fakeQuestionStore) ListActive(_ context.Context) ([]models.Question, error) {
	return s.questions, nil
}

func (s *fakeQuestionStore) CountActive(_ context.Context) (int, error) {
	return len(s.questions), nil
}

func (s *fakeQuestionStore) CountByIDs(_ context.Context, ids []string) (int, error) {
	known := make(map[string]bool, len(s.questions))
	for _, q := range s.questions {
		known[q.ID] = true
	}
	count := 0
	for _, id := range ids {
		if known[id] {
			count++
		}
	}
	return count, nil
}

type fakeCache struct {
	entries map[string]*models.Report
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*models.Report)}
}

func (c *fakeCache) Get(_ context.Context, resultID string) *models.Report {
	return c.entries[resultID]
}

func (c *fakeCache) Set(_ context.Context, report *models.Report) {
	c.entries[report.ResultID] = report
}

func (c *fakeCache) Invalidate(_ context.Context, resultID string) {
	delete(c.entries, resultID)
}
