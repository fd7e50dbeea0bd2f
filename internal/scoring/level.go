package scoring

import "talent-engine/internal/models"

// ClassifyLevel maps a 0-100 score to its four-tier qualitative level.
// Total function: boundaries are inclusive on the lower bound of each
// tier and every integer maps to exactly one level.
func ClassifyLevel(score int) models.TalentLevel {
	switch {
	case score >= 85:
		return models.LevelExcellent
	case score >= 70:
		return models.LevelGood
	case score >= 55:
		return models.LevelAverage
	default:
		return models.LevelDeveloping
	}
}

// levelDescriptions holds the display wording per level.
var levelDescriptions = map[models.TalentLevel]string{
	models.LevelExcellent:  "excellent",
	models.LevelGood:       "good",
	models.LevelAverage:    "average",
	models.LevelDeveloping: "developing",
}

// LevelDescription returns the display wording for a level.
func LevelDescription(level models.TalentLevel) string {
	return levelDescriptions[level]
}
