// Package report synthesizes narrative report content from scored
// assessment data and compares a user's report history. Both halves are
// pure functions over value types plus the fixed template tables.
package report

import (
	"fmt"
	"sort"

	"talent-engine/internal/models"
	"talent-engine/internal/scoring"
)

// Narrative is the generated human-readable report content.
type Narrative struct {
	Summary     string           `json:"summary"`
	Strengths   []string         `json:"strengths"`
	Weaknesses  []string         `json:"weaknesses"`
	Suggestions []string         `json:"suggestions"`
	ChartData   models.ChartData `json:"chartData"`
}

// GenerateNarrative produces summary, strengths, weaknesses,
// suggestions and chart-ready series data from scored assessment data.
// Referentially transparent: same input, same output.
func GenerateNarrative(data *scoring.ScoreData) *Narrative {
	return &Narrative{
		Summary:     generateSummary(data),
		Strengths:   generateStrengths(data.DimensionScores),
		Weaknesses:  generateWeaknesses(data.DimensionScores),
		Suggestions: generateSuggestions(data.TalentType, data.DimensionScores),
		ChartData:   generateChartData(data.DimensionScores),
	}
}

func generateSummary(data *scoring.ScoreData) string {
	profile := TypeProfileFor(data.TalentType)
	return fmt.Sprintf(summaryTemplate,
		data.TotalScore,
		scoring.LevelDescription(data.TalentLevel),
		profile.Name,
		profile.Description,
	)
}

func generateStrengths(scores []models.DimensionScore) []string {
	var strengths []string

	sorted := make([]models.DimensionScore, len(scores))
	copy(sorted, scores)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	top := sorted
	if len(top) > 2 {
		top = top[:2]
	}
	for _, dim := range top {
		if dim.Score < strengthScoreThreshold {
			continue
		}
		if tmpl, ok := strengthTemplates[dim.Category]; ok {
			strengths = append(strengths, fmt.Sprintf(tmpl, dim.Dimension, dim.Score))
		} else {
			strengths = append(strengths, fmt.Sprintf(strengthFallbackTemplate, dim.Dimension))
		}
	}

	// Sub-dimension strengths: the top sub-score of each dimension,
	// when it clears the bar.
	for _, dim := range scores {
		name, score, ok := topSubDimension(dim.SubDimensions)
		if ok && score >= subDimensionScoreStrength {
			strengths = append(strengths, fmt.Sprintf(subDimensionTemplate, dim.Dimension, name, score))
		}
	}

	if len(strengths) == 0 {
		return []string{noStrengthsSentence}
	}
	return strengths
}

// topSubDimension picks the highest-scoring sub-dimension, breaking
// score ties by name so the output is deterministic.
func topSubDimension(subs map[string]int) (string, int, bool) {
	if len(subs) == 0 {
		return "", 0, false
	}
	names := make([]string, 0, len(subs))
	for name := range subs {
		names = append(names, name)
	}
	sort.Strings(names)

	best := names[0]
	for _, name := range names[1:] {
		if subs[name] > subs[best] {
			best = name
		}
	}
	return best, subs[best], true
}

func generateWeaknesses(scores []models.DimensionScore) []string {
	var weaknesses []string

	sorted := make([]models.DimensionScore, len(scores))
	copy(sorted, scores)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score < sorted[j].Score
	})

	for _, dim := range sorted {
		if dim.Score >= weaknessScoreThreshold {
			continue
		}
		if tmpl, ok := weaknessTemplates[dim.Category]; ok {
			weaknesses = append(weaknesses, fmt.Sprintf(tmpl, dim.Dimension, dim.Score))
		} else {
			weaknesses = append(weaknesses, fmt.Sprintf(weaknessFallbackTemplate, dim.Dimension))
		}
	}

	if len(weaknesses) == 0 {
		return []string{noWeaknessesSentence}
	}
	return weaknesses
}

func generateSuggestions(talentType models.TalentType, scores []models.DimensionScore) []string {
	suggestions := make([]string, 0, 4)
	suggestions = append(suggestions, typeSuggestions[talentType]...)

	mean := scoring.MeanDimensionScore(scores)
	switch {
	case mean >= raiseTheBarMeanThreshold:
		suggestions = append(suggestions, raiseTheBarSentence)
	case mean < improvementMeanThreshold:
		suggestions = append(suggestions, improvementPlanSentence)
	}

	return suggestions
}

// generateChartData projects the dimension scores into radar and bar
// series, order-preserving across both representations.
func generateChartData(scores []models.DimensionScore) models.ChartData {
	radar := models.RadarChart{
		Dimensions: make([]string, 0, len(scores)),
		Values:     make([]int, 0, len(scores)),
	}
	bar := make([]models.BarChartEntry, 0, len(scores))

	for _, dim := range scores {
		radar.Dimensions = append(radar.Dimensions, dim.Dimension)
		radar.Values = append(radar.Values, dim.Score)

		subScores := dim.SubDimensions
		if subScores == nil {
			subScores = map[string]int{}
		}
		bar = append(bar, models.BarChartEntry{
			Dimension: dim.Dimension,
			Score:     dim.Score,
			SubScores: subScores,
		})
	}

	return models.ChartData{Radar: radar, Bar: bar}
}
