package models

import "time"

// TalentType is the classified dominant-trait label for a completed
// assessment. The set is closed; see scoring.ClassifyTalentType.
type TalentType string

const (
	TypeBalanced           TalentType = "balanced"
	TypeCognitive          TalentType = "cognitive"
	TypeCreative           TalentType = "creative"
	TypeEmotional          TalentType = "emotional"
	TypePractical          TalentType = "practical"
	TypeCognitiveCreative  TalentType = "cognitive-creative"
	TypeEmotionalPractical TalentType = "emotional-practical"
)

// TalentLevel is the four-tier qualitative banding of a 0-100 score.
type TalentLevel string

const (
	LevelExcellent  TalentLevel = "excellent"
	LevelGood       TalentLevel = "good"
	LevelAverage    TalentLevel = "average"
	LevelDeveloping TalentLevel = "developing"
)

// DimensionScore is the normalized 0-100 outcome for one category.
// Category is the stable key; Dimension is the configured display name.
type DimensionScore struct {
	Category      Category       `json:"category"`
	Dimension     string         `json:"dimension"`
	Score         int            `json:"score"`
	MaxScore      int            `json:"maxScore"`
	Percentage    int            `json:"percentage"`
	Level         TalentLevel    `json:"level"`
	SubDimensions map[string]int `json:"subDimensions,omitempty"`
}

// RadarChart holds the dimension labels and values in report order.
type RadarChart struct {
	Dimensions []string `json:"dimensions"`
	Values     []int    `json:"values"`
}

// BarChartEntry is one dimension's bar with its sub-scores.
type BarChartEntry struct {
	Dimension string         `json:"dimension"`
	Score     int            `json:"score"`
	SubScores map[string]int `json:"subScores"`
}

// ChartData is a pure projection of the dimension scores.
type ChartData struct {
	Radar RadarChart      `json:"radar"`
	Bar   []BarChartEntry `json:"bar"`
}

// Report is the persisted outcome of scoring one completed result.
// Created exactly once per result (unique index on ResultID); only the
// visibility and counter metadata mutate afterwards.
type Report struct {
	ID              string           `json:"id"`
	UserID          string           `json:"userId"`
	ResultID        string           `json:"resultId"`
	TestID          string           `json:"testId"`
	TotalScore      int              `json:"totalScore"`
	DimensionScores []DimensionScore `json:"dimensionScores"`
	TalentType      TalentType       `json:"talentType"`
	TalentLevel     TalentLevel      `json:"talentLevel"`
	Summary         string           `json:"summary"`
	Strengths       []string         `json:"strengths"`
	Weaknesses      []string         `json:"weaknesses"`
	Suggestions     []string         `json:"suggestions"`
	ChartData       ChartData        `json:"chartData"`
	ShareID         string           `json:"shareId,omitempty"`
	IsPublic        bool             `json:"isPublic"`
	ShareCount      int              `json:"shareCount"`
	ViewCount       int              `json:"viewCount"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// ComparisonEntry is the per-report projection used for comparison.
type ComparisonEntry struct {
	ID              string           `json:"id"`
	Date            time.Time        `json:"date"`
	TotalScore      int              `json:"totalScore"`
	TalentType      TalentType       `json:"talentType"`
	DimensionScores []DimensionScore `json:"dimensionScores"`
}

// DimensionChange is the score delta for one dimension label between
// the earliest and latest compared reports.
type DimensionChange struct {
	Dimension string `json:"dimension"`
	Change    int    `json:"change"`
}

// Trend summarizes movement between the earliest and latest reports.
type Trend struct {
	TotalScoreChange int               `json:"totalScoreChange"`
	DimensionChanges []DimensionChange `json:"dimensionChanges"`
	Direction        string            `json:"direction"` // up | down | stable
}

// Comparison is the outcome of comparing a user's report history.
// Trend is nil when fewer than two reports were supplied.
type Comparison struct {
	Reports []ComparisonEntry `json:"reports"`
	Trend   *Trend            `json:"trend,omitempty"`
}
