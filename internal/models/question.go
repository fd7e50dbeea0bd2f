package models

import "time"

// Category identifies one of the four top-level competency buckets.
type Category string

const (
	CategoryCognitive  Category = "cognitive"
	CategoryCreativity Category = "creativity"
	CategoryEmotional  Category = "emotional"
	CategoryPractical  Category = "practical"
)

// Categories lists the four buckets in their canonical report order.
var Categories = []Category{
	CategoryCognitive,
	CategoryCreativity,
	CategoryEmotional,
	CategoryPractical,
}

// AnswerOption is one selectable option on a Likert item.
type AnswerOption struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// Question is immutable reference data from the assessment catalog.
// The scoring engine reads only Category, SubDimension and IsReverse;
// the remaining fields serve presentation and import.
type Question struct {
	ID           string         `json:"id"`
	QuestionText string         `json:"questionText"`
	QuestionType string         `json:"questionType"` // single | scenario
	Category     Category       `json:"category"`
	Dimension    string         `json:"dimension"`
	SubDimension string         `json:"subDimension,omitempty"`
	Options      []AnswerOption `json:"options"`
	IsReverse    bool           `json:"isReverse"`
	Difficulty   int            `json:"difficulty"`
	Order        int            `json:"order"`
	IsActive     bool           `json:"isActive"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}
