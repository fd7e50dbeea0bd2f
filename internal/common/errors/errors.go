// Package errors provides standardized error handling for the scoring
// and report pipeline.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Scoring / engine errors
	ErrCodeMissingQuestions    ErrorCode = "MISSING_QUESTIONS"
	ErrCodeIncompleteAnswerSet ErrorCode = "INCOMPLETE_ANSWER_SET"
	ErrCodeNoReports           ErrorCode = "NO_REPORTS"
	ErrCodeDimensionMismatch   ErrorCode = "DIMENSION_MISMATCH"

	// Result / report lifecycle errors
	ErrCodeResultNotFound     ErrorCode = "RESULT_NOT_FOUND"
	ErrCodeResultNotCompleted ErrorCode = "RESULT_NOT_COMPLETED"
	ErrCodeReportNotFound     ErrorCode = "REPORT_NOT_FOUND"
	ErrCodeDuplicateReport    ErrorCode = "DUPLICATE_REPORT"
	ErrCodeInvalidAnswer      ErrorCode = "INVALID_ANSWER"

	// Storage errors
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Is lets errors.Is match two StandardErrors by code.
func (e *StandardError) Is(target error) bool {
	var se *StandardError
	if !stderrors.As(target, &se) {
		return false
	}
	return e.Code == se.Code
}

// CodeOf extracts the error code from err, or empty when err is not a
// StandardError.
func CodeOf(err error) ErrorCode {
	var se *StandardError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ""
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// ==========================
// Error Constructors
// ==========================

// NewMissingQuestionsError signals a category with no active questions.
func NewMissingQuestionsError(category string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingQuestions,
		Message:   "No active questions found for category",
		Details:   fmt.Sprintf("category: %s", category),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewIncompleteAnswerSetError signals fewer answers than active questions.
func NewIncompleteAnswerSetError(answered, total int) *StandardError {
	return &StandardError{
		Code:      ErrCodeIncompleteAnswerSet,
		Message:   "Answer set does not cover all active questions",
		Details:   fmt.Sprintf("answered %d of %d questions", answered, total),
		Retryable: false,
		Metadata: map[string]interface{}{
			"answered": answered,
			"total":    total,
		},
		Timestamp: time.Now().UTC(),
	}
}

// NewNoReportsError signals a comparison request with zero reports.
func NewNoReportsError() *StandardError {
	return &StandardError{
		Code:      ErrCodeNoReports,
		Message:   "No reports supplied for comparison",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDimensionMismatchError signals reports whose dimension label sets
// differ, which would make a trend pairing silently wrong.
func NewDimensionMismatchError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDimensionMismatch,
		Message:   "Compared reports carry different dimension sets",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewResultNotFoundError creates a non-retryable lookup error.
func NewResultNotFoundError(ref string) *StandardError {
	return &StandardError{
		Code:      ErrCodeResultNotFound,
		Message:   "Assessment result not found",
		Details:   fmt.Sprintf("ref: %s", ref),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewResultNotCompletedError signals scoring requested on an unfinished session.
func NewResultNotCompletedError(testID, status string) *StandardError {
	return &StandardError{
		Code:      ErrCodeResultNotCompleted,
		Message:   "Assessment is not completed, report cannot be generated",
		Details:   fmt.Sprintf("testId: %s, status: %s", testID, status),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewReportNotFoundError creates a non-retryable lookup error.
func NewReportNotFoundError(ref string) *StandardError {
	return &StandardError{
		Code:      ErrCodeReportNotFound,
		Message:   "Report not found",
		Details:   fmt.Sprintf("ref: %s", ref),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDuplicateReportError signals a unique-constraint violation on the
// result-to-report relationship. Callers treat it as "re-fetch and
// return the stored report", never as a failure to surface.
func NewDuplicateReportError(resultID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDuplicateReport,
		Message:   "Report already exists for result",
		Details:   fmt.Sprintf("resultId: %s", resultID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidAnswerError creates a non-retryable answer validation error.
func NewInvalidAnswerError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidAnswer,
		Message:   "Answer payload validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("operation: %s, error: %s", operation, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// Utility Functions
// ==========================

// GetRetryCount returns the recommended retry count per error code.
// The engine itself never retries (it is pure and deterministic); retry
// counts apply only to the storage boundary.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed, ErrCodeQueryExecutionFailed:
		return 3
	default:
		return 0 // engine and business errors: no retry
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "QUESTION") || strings.Contains(codeStr, "ANSWER"):
		return "SCORING"
	case strings.Contains(codeStr, "REPORT") || strings.Contains(codeStr, "DIMENSION"):
		return "REPORT"
	case strings.Contains(codeStr, "RESULT"):
		return "RESULT"
	default:
		return "OTHER"
	}
}
