package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "talent-engine/internal/common/errors"
	"talent-engine/internal/common/logger"
	"talent-engine/internal/models"
)

// SessionStore is the result persistence surface the assessment
// service needs.
type SessionStore interface {
	Create(ctx context.Context, result *models.Result) error
	GetByID(ctx context.Context, id string) (*models.Result, error)
	GetByTestID(ctx context.Context, testID string) (*models.Result, error)
	UpdateAnswers(ctx context.Context, id string, answers []models.Answer) error
	Complete(ctx context.Context, id string, endTime time.Time, totalDuration int64) error
}

// Progress summarizes how far through the catalog a session is.
type Progress struct {
	Answered int `json:"answered"`
	Total    int `json:"total"`
	Percent  int `json:"percent"`
}

// AssessmentService manages the answer-collection lifecycle: start a
// session, save answers incrementally, complete when every active
// question is answered.
type AssessmentService struct {
	results   SessionStore
	questions QuestionStore
	logger    logger.Logger
}

func NewAssessmentService(results SessionStore, questions QuestionStore, log logger.Logger) *AssessmentService {
	return &AssessmentService{
		results:   results,
		questions: questions,
		logger:    log.WithFields(map[string]interface{}{"service": "assessment"}),
	}
}

// Start opens a new in-progress session for a user.
func (s *AssessmentService) Start(ctx context.Context, userID string) (*models.Result, error) {
	now := time.Now().UTC()
	result := &models.Result{
		ID:        uuid.NewString(),
		UserID:    userID,
		TestID:    uuid.NewString(),
		Answers:   []models.Answer{},
		StartTime: now,
		Status:    models.StatusInProgress,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.results.Create(ctx, result); err != nil {
		return nil, err
	}
	s.logger.Info("assessment started", map[string]interface{}{
		"testId": result.TestID,
		"userId": userID,
	})
	return result, nil
}

// SaveAnswers merges a batch of answers into the session, replacing
// earlier answers to the same questions. The session must still be in
// progress and every answer must reference an active catalog question.
func (s *AssessmentService) SaveAnswers(ctx context.Context, testID string, answers []models.Answer) (*models.Result, error) {
	if len(answers) == 0 {
		return nil, apperrors.NewInvalidAnswerError("empty answer batch")
	}

	result, err := s.results.GetByTestID(ctx, testID)
	if err != nil {
		return nil, err
	}
	if result.Status != models.StatusInProgress {
		return nil, apperrors.NewResultNotCompletedError(testID, string(result.Status))
	}

	ids := make([]string, 0, len(answers))
	seen := make(map[string]bool, len(answers))
	now := time.Now().UTC()
	for i, a := range answers {
		if a.AnswerValue < 1 || a.AnswerValue > 5 {
			return nil, apperrors.NewInvalidAnswerError(
				fmt.Sprintf("answer value %d for question %s out of range 1..5", a.AnswerValue, a.QuestionID))
		}
		if a.QuestionID == "" {
			return nil, apperrors.NewInvalidAnswerError("answer missing question id")
		}
		if !seen[a.QuestionID] {
			seen[a.QuestionID] = true
			ids = append(ids, a.QuestionID)
		}
		if answers[i].Timestamp.IsZero() {
			answers[i].Timestamp = now
		}
	}

	known, err := s.questions.CountByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if known != len(ids) {
		return nil, apperrors.NewInvalidAnswerError(
			fmt.Sprintf("%d of %d answered questions not in the active catalog", len(ids)-known, len(ids)))
	}

	result.Answers = mergeAnswers(result.Answers, answers)
	result.UpdatedAt = now
	if err := s.results.UpdateAnswers(ctx, result.ID, result.Answers); err != nil {
		return nil, err
	}
	return result, nil
}

// Complete closes the session once every active question has an
// answer. Total duration is the sum of the recorded per-answer
// durations, falling back to wall time since the session started.
func (s *AssessmentService) Complete(ctx context.Context, testID string) (*models.Result, error) {
	result, err := s.results.GetByTestID(ctx, testID)
	if err != nil {
		return nil, err
	}
	if result.Status == models.StatusCompleted {
		return result, nil
	}
	if result.Status != models.StatusInProgress {
		return nil, apperrors.NewResultNotCompletedError(testID, string(result.Status))
	}

	total, err := s.questions.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(result.Answers) < total {
		return nil, apperrors.NewIncompleteAnswerSetError(len(result.Answers), total)
	}

	endTime := time.Now().UTC()
	duration := sumDurations(result.Answers)
	if duration == 0 {
		duration = endTime.Sub(result.StartTime).Milliseconds()
	}
	if err := s.results.Complete(ctx, result.ID, endTime, duration); err != nil {
		return nil, err
	}

	result.Status = models.StatusCompleted
	result.EndTime = endTime
	result.TotalDuration = duration
	s.logger.Info("assessment completed", map[string]interface{}{
		"testId":   testID,
		"answers":  len(result.Answers),
		"duration": duration,
	})
	return result, nil
}

// Progress reports answered-vs-total for a session.
func (s *AssessmentService) Progress(ctx context.Context, testID string) (*Progress, error) {
	result, err := s.results.GetByTestID(ctx, testID)
	if err != nil {
		return nil, err
	}
	total, err := s.questions.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	p := &Progress{Answered: len(result.Answers), Total: total}
	if total > 0 {
		p.Percent = len(result.Answers) * 100 / total
	}
	return p, nil
}

// mergeAnswers upserts incoming answers by question id, keeping the
// original answer order for untouched questions.
func mergeAnswers(existing, incoming []models.Answer) []models.Answer {
	index := make(map[string]int, len(existing))
	merged := make([]models.Answer, len(existing))
	copy(merged, existing)
	for i, a := range merged {
		index[a.QuestionID] = i
	}
	for _, a := range incoming {
		if i, ok := index[a.QuestionID]; ok {
			merged[i] = a
			continue
		}
		index[a.QuestionID] = len(merged)
		merged = append(merged, a)
	}
	return merged
}

func sumDurations(answers []models.Answer) int64 {
	var total int64
	for _, a := range answers {
		total += a.Duration
	}
	return total
}
