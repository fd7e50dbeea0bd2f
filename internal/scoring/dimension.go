// Package scoring converts raw Likert answers into normalized dimension
// scores and classifies talent levels and types. Every function here is
// pure: no I/O, no shared state.
package scoring

import (
	"math"

	"talent-engine/internal/common/errors"
	"talent-engine/internal/models"
)

// maxAnswerValue is the top of the Likert scale; reverse items invert
// around its midpoint (6 - v maps 1..5 onto 5..1).
const maxAnswerValue = 5

// ComputeDimensionScore converts the answers for one category into a
// normalized 0-100 DimensionScore with sub-dimension sub-scores.
//
// Questions not marked active or belonging to another category are
// ignored. Questions without a recorded answer are excluded from the
// average rather than zero-filled; completeness is the caller's
// responsibility (see service.GenerateReport).
func ComputeDimensionScore(
	category models.Category,
	questions []models.Question,
	answers map[string]int,
	names Names,
) (models.DimensionScore, error) {
	active := make([]models.Question, 0, len(questions))
	for _, q := range questions {
		if q.IsActive && q.Category == category {
			active = append(active, q)
		}
	}

	if len(active) == 0 {
		return models.DimensionScore{}, errors.NewMissingQuestionsError(string(category))
	}

	var (
		total    int
		answered int
	)
	type subAgg struct {
		total int
		count int
	}
	subTotals := make(map[string]*subAgg)

	for _, q := range active {
		value, ok := answers[q.ID]
		if !ok {
			continue
		}

		score := value
		if q.IsReverse {
			score = maxAnswerValue + 1 - value
		}
		total += score
		answered++

		if q.SubDimension != "" {
			agg, ok := subTotals[q.SubDimension]
			if !ok {
				agg = &subAgg{}
				subTotals[q.SubDimension] = agg
			}
			agg.total += score
			agg.count++
		}
	}

	normalized := 0
	if answered > 0 {
		normalized = normalize(float64(total) / float64(answered))
	}

	subDimensions := make(map[string]int, len(subTotals))
	for name, agg := range subTotals {
		subDimensions[name] = normalize(float64(agg.total) / float64(agg.count))
	}

	return models.DimensionScore{
		Category:      category,
		Dimension:     names.For(category),
		Score:         normalized,
		MaxScore:      100,
		Percentage:    normalized,
		Level:         ClassifyLevel(normalized),
		SubDimensions: subDimensions,
	}, nil
}

// normalize converts a 1..5 average onto the 0-100 scale, rounded to
// the nearest integer.
func normalize(average float64) int {
	return int(math.Round(average / maxAnswerValue * 100))
}
