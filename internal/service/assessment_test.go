package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "talent-engine/internal/common/errors"
	"talent-engine/internal/common/logger"
	"talent-engine/internal/models"
)

type assessmentFixture struct {
	service *AssessmentService
	results *fakeResultStore
}

func createAssessmentService(t *testing.T, results ...*models.Result) *assessmentFixture {
	f := &assessmentFixture{results: newFakeResultStore(results...)}
	f.service = NewAssessmentService(f.results, &fakeQuestionStore{questions: createCatalog()}, logger.NewTestLogger(t))
	return f
}

func createSession() *models.Result {
	return &models.Result{
		ID:        "result-1",
		UserID:    "user-1",
		TestID:    "test-1",
		StartTime: time.Now().Add(-5 * time.Minute),
		Status:    models.StatusInProgress,
	}
}

func TestAssessmentService_Start(t *testing.T) {
	f := createAssessmentService(t)

	result, err := f.service.Start(context.Background(), "user-1")
	require.NoError(t, err)

	assert.NotEmpty(t, result.ID)
	assert.NotEmpty(t, result.TestID)
	assert.NotEqual(t, result.ID, result.TestID)
	assert.Equal(t, models.StatusInProgress, result.Status)
	assert.Empty(t, result.Answers)

	stored, err := f.results.GetByTestID(context.Background(), result.TestID)
	require.NoError(t, err)
	assert.Equal(t, result.ID, stored.ID)
}

func TestAssessmentService_SaveAnswers(t *testing.T) {
	tests := []struct {
		name         string
		answers      []models.Answer
		expectedCode apperrors.ErrorCode
	}{
		{
			name: "valid batch",
			answers: []models.Answer{
				{QuestionID: "cog-1", AnswerValue: 4},
				{QuestionID: "cre-1", AnswerValue: 2},
			},
		},
		{
			name:         "empty batch rejected",
			answers:      nil,
			expectedCode: apperrors.ErrCodeInvalidAnswer,
		},
		{
			name: "value above scale rejected",
			answers: []models.Answer{
				{QuestionID: "cog-1", AnswerValue: 6},
			},
			expectedCode: apperrors.ErrCodeInvalidAnswer,
		},
		{
			name: "value below scale rejected",
			answers: []models.Answer{
				{QuestionID: "cog-1", AnswerValue: 0},
			},
			expectedCode: apperrors.ErrCodeInvalidAnswer,
		},
		{
			name: "unknown question rejected",
			answers: []models.Answer{
				{QuestionID: "ghost", AnswerValue: 3},
			},
			expectedCode: apperrors.ErrCodeInvalidAnswer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := createAssessmentService(t, createSession())

			result, err := f.service.SaveAnswers(context.Background(), "test-1", tt.answers)
			if tt.expectedCode != "" {
				require.Error(t, err)
				assert.True(t, apperrors.IsCode(err, tt.expectedCode))
				return
			}

			require.NoError(t, err)
			assert.Len(t, result.Answers, len(tt.answers))
			for _, a := range result.Answers {
				assert.False(t, a.Timestamp.IsZero())
			}
		})
	}
}

func TestAssessmentService_SaveAnswers_UpsertsByQuestion(t *testing.T) {
	session := createSession()
	session.Answers = []models.Answer{
		{QuestionID: "cog-1", AnswerValue: 2},
		{QuestionID: "cre-1", AnswerValue: 3},
	}
	f := createAssessmentService(t, session)

	result, err := f.service.SaveAnswers(context.Background(), "test-1", []models.Answer{
		{QuestionID: "cog-1", AnswerValue: 5},
		{QuestionID: "emo-1", AnswerValue: 4},
	})
	require.NoError(t, err)

	require.Len(t, result.Answers, 3)
	byQuestion := result.AnswerMap()
	assert.Equal(t, 5, byQuestion["cog-1"], "re-answer replaces the earlier value")
	assert.Equal(t, 3, byQuestion["cre-1"])
	assert.Equal(t, 4, byQuestion["emo-1"])
}

func TestAssessmentService_SaveAnswers_ClosedSession(t *testing.T) {
	session := createSession()
	session.Status = models.StatusCompleted
	f := createAssessmentService(t, session)

	_, err := f.service.SaveAnswers(context.Background(), "test-1", []models.Answer{
		{QuestionID: "cog-1", AnswerValue: 3},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeResultNotCompleted))
}

func TestAssessmentService_Complete(t *testing.T) {
	session := createSession()
	session.Answers = []models.Answer{
		{QuestionID: "cog-1", AnswerValue: 5, Duration: 4000},
		{QuestionID: "cre-1", AnswerValue: 4, Duration: 3000},
		{QuestionID: "emo-1", AnswerValue: 3, Duration: 2500},
		{QuestionID: "pra-1", AnswerValue: 2, Duration: 1500},
	}
	f := createAssessmentService(t, session)

	result, err := f.service.Complete(context.Background(), "test-1")
	require.NoError(t, err)

	assert.Equal(t, models.StatusCompleted, result.Status)
	assert.False(t, result.EndTime.IsZero())
	assert.Equal(t, int64(11000), result.TotalDuration)
}

func TestAssessmentService_Complete_Incomplete(t *testing.T) {
	session := createSession()
	session.Answers = []models.Answer{{QuestionID: "cog-1", AnswerValue: 5}}
	f := createAssessmentService(t, session)

	_, err := f.service.Complete(context.Background(), "test-1")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeIncompleteAnswerSet))
}

func TestAssessmentService_Complete_AlreadyCompletedIsIdempotent(t *testing.T) {
	session := createSession()
	session.Status = models.StatusCompleted
	f := createAssessmentService(t, session)

	result, err := f.service.Complete(context.Background(), "test-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, result.Status)
}

func TestAssessmentService_Progress(t *testing.T) {
	session := createSession()
	session.Answers = []models.Answer{
		{QuestionID: "cog-1", AnswerValue: 5},
		{QuestionID: "cre-1", AnswerValue: 4},
	}
	f := createAssessmentService(t, session)

	progress, err := f.service.Progress(context.Background(), "test-1")
	require.NoError(t, err)

	assert.Equal(t, 2, progress.Answered)
	assert.Equal(t, 4, progress.Total)
	assert.Equal(t, 50, progress.Percent)
}
