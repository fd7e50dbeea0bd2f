package scoring

import (
	"math"

	"talent-engine/internal/models"
)

// ScoreData is the full scored outcome of one completed answer set,
// ready for narrative generation.
type ScoreData struct {
	TotalScore      int
	DimensionScores []models.DimensionScore
	TalentType      models.TalentType
	TalentLevel     models.TalentLevel
}

// ComputeTotalScore scores all four categories in canonical order and
// classifies the overall type and level. The questions slice holds the
// full active catalog; answers maps question id to answer value.
func ComputeTotalScore(
	questions []models.Question,
	answers map[string]int,
	names Names,
) (*ScoreData, error) {
	dimensionScores := make([]models.DimensionScore, 0, len(models.Categories))
	sum := 0

	for _, category := range models.Categories {
		score, err := ComputeDimensionScore(category, questions, answers, names)
		if err != nil {
			return nil, err
		}
		dimensionScores = append(dimensionScores, score)
		sum += score.Score
	}

	totalScore := int(math.Round(float64(sum) / float64(len(dimensionScores))))

	return &ScoreData{
		TotalScore:      totalScore,
		DimensionScores: dimensionScores,
		TalentType:      ClassifyTalentType(dimensionScores),
		TalentLevel:     ClassifyLevel(totalScore),
	}, nil
}

// MeanDimensionScore returns the arithmetic mean of the dimension
// scores, used by the suggestion rules.
func MeanDimensionScore(scores []models.DimensionScore) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, d := range scores {
		sum += d.Score
	}
	return float64(sum) / float64(len(scores))
}
