package models

import "time"

// ResultStatus tracks the lifecycle of one assessment session.
type ResultStatus string

const (
	StatusInProgress ResultStatus = "in_progress"
	StatusCompleted  ResultStatus = "completed"
	StatusAbandoned  ResultStatus = "abandoned"
)

// Answer is one recorded response, 1..5 on the Likert scale.
type Answer struct {
	QuestionID  string    `json:"questionId"`
	AnswerValue int       `json:"answerValue"`
	Duration    int64     `json:"duration,omitempty"` // milliseconds
	Timestamp   time.Time `json:"timestamp"`
}

// Result is one assessment session and its full answer set.
type Result struct {
	ID            string       `json:"id"`
	UserID        string       `json:"userId"`
	ReportID      string       `json:"reportId,omitempty"`
	TestID        string       `json:"testId"`
	Answers       []Answer     `json:"answers"`
	StartTime     time.Time    `json:"startTime"`
	EndTime       time.Time    `json:"endTime,omitempty"`
	TotalDuration int64        `json:"totalDuration"` // milliseconds
	Status        ResultStatus `json:"status"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// AnswerMap indexes answer values by question id for scoring lookups.
func (r *Result) AnswerMap() map[string]int {
	m := make(map[string]int, len(r.Answers))
	for _, a := range r.Answers {
		m[a.QuestionID] = a.AnswerValue
	}
	return m
}
