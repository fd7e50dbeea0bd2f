package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "talent-engine/internal/common/errors"
	"talent-engine/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createQuestion(id string, category models.Category, subDimension string, reverse bool) models.Question {
	return models.Question{
		ID:           id,
		Category:     category,
		SubDimension: subDimension,
		IsReverse:    reverse,
		IsActive:     true,
	}
}

// ==========================
// Dimension Score Tests
// ==========================

func TestComputeDimensionScore(t *testing.T) {
	tests := []struct {
		name          string
		questions     []models.Question
		answers       map[string]int
		expectedScore int
		expectedLevel models.TalentLevel
	}{
		{
			name: "all max answers normalize to 100",
			questions: []models.Question{
				createQuestion("q1", models.CategoryCognitive, "", false),
				createQuestion("q2", models.CategoryCognitive, "", false),
			},
			answers:       map[string]int{"q1": 5, "q2": 5},
			expectedScore: 100,
			expectedLevel: models.LevelExcellent,
		},
		{
			name: "all min answers normalize to 20",
			questions: []models.Question{
				createQuestion("q1", models.CategoryCognitive, "", false),
			},
			answers:       map[string]int{"q1": 1},
			expectedScore: 20,
			expectedLevel: models.LevelDeveloping,
		},
		{
			name: "mixed answers with a reverse item",
			questions: []models.Question{
				createQuestion("q1", models.CategoryCognitive, "", false),
				createQuestion("q2", models.CategoryCognitive, "", false),
				createQuestion("q3", models.CategoryCognitive, "", true),
			},
			// 5 + 4 + (6-2) = 13, avg 4.333, normalized 87
			answers:       map[string]int{"q1": 5, "q2": 4, "q3": 2},
			expectedScore: 87,
			expectedLevel: models.LevelExcellent,
		},
		{
			name: "unanswered questions excluded from the average",
			questions: []models.Question{
				createQuestion("q1", models.CategoryCognitive, "", false),
				createQuestion("q2", models.CategoryCognitive, "", false),
				createQuestion("q3", models.CategoryCognitive, "", false),
			},
			answers:       map[string]int{"q1": 5},
			expectedScore: 100,
			expectedLevel: models.LevelExcellent,
		},
		{
			name: "no answers at all yields zero",
			questions: []models.Question{
				createQuestion("q1", models.CategoryCognitive, "", false),
			},
			answers:       map[string]int{},
			expectedScore: 0,
			expectedLevel: models.LevelDeveloping,
		},
		{
			name: "other-category questions are ignored",
			questions: []models.Question{
				createQuestion("q1", models.CategoryCognitive, "", false),
				createQuestion("q2", models.CategoryCreativity, "", false),
			},
			answers:       map[string]int{"q1": 4, "q2": 1},
			expectedScore: 80,
			expectedLevel: models.LevelGood,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, err := ComputeDimensionScore(models.CategoryCognitive, tt.questions, tt.answers, DefaultNames)
			require.NoError(t, err)

			assert.Equal(t, models.CategoryCognitive, score.Category)
			assert.Equal(t, "Cognitive Ability", score.Dimension)
			assert.Equal(t, tt.expectedScore, score.Score)
			assert.Equal(t, tt.expectedScore, score.Percentage)
			assert.Equal(t, 100, score.MaxScore)
			assert.Equal(t, tt.expectedLevel, score.Level)
		})
	}
}

func TestComputeDimensionScore_ReverseInversion(t *testing.T) {
	questions := []models.Question{
		createQuestion("q1", models.CategoryEmotional, "", true),
	}

	tests := []struct {
		answer   int
		expected int
	}{
		{answer: 1, expected: 100}, // inverted to 5
		{answer: 3, expected: 60},  // midpoint is a fixed point
		{answer: 5, expected: 20},  // inverted to 1
	}

	for _, tt := range tests {
		score, err := ComputeDimensionScore(models.CategoryEmotional, questions, map[string]int{"q1": tt.answer}, DefaultNames)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, score.Score, "answer %d", tt.answer)
	}
}

func TestComputeDimensionScore_SubDimensions(t *testing.T) {
	questions := []models.Question{
		createQuestion("q1", models.CategoryCognitive, "logic", false),
		createQuestion("q2", models.CategoryCognitive, "logic", false),
		createQuestion("q3", models.CategoryCognitive, "memory", false),
	}
	answers := map[string]int{"q1": 5, "q2": 4, "q3": 3}

	score, err := ComputeDimensionScore(models.CategoryCognitive, questions, answers, DefaultNames)
	require.NoError(t, err)

	// logic avg 4.5 -> 90, memory avg 3 -> 60
	assert.Equal(t, map[string]int{"logic": 90, "memory": 60}, score.SubDimensions)
}

func TestComputeDimensionScore_MissingQuestions(t *testing.T) {
	tests := []struct {
		name      string
		questions []models.Question
	}{
		{
			name:      "empty catalog",
			questions: nil,
		},
		{
			name: "only inactive questions",
			questions: []models.Question{
				{ID: "q1", Category: models.CategoryPractical, IsActive: false},
			},
		},
		{
			name: "only other categories",
			questions: []models.Question{
				createQuestion("q1", models.CategoryCognitive, "", false),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeDimensionScore(models.CategoryPractical, tt.questions, map[string]int{"q1": 3}, DefaultNames)
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeMissingQuestions))
		})
	}
}

func TestNamesFromConfig(t *testing.T) {
	names := NamesFromConfig(map[string]string{
		"cognitive": "Reasoning",
	})

	assert.Equal(t, "Reasoning", names.For(models.CategoryCognitive))
	assert.Equal(t, "Creativity", names.For(models.CategoryCreativity))
	assert.Equal(t, "unmapped", names.For(models.Category("unmapped")))
}
