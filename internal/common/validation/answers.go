// Package validation checks inbound answer submission payloads against
// a JSON schema before they reach the session service.
package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// answerPayloadSchema constrains a save-answers request: a non-empty
// list of {questionId, answerValue 1..5, optional duration}.
const answerPayloadSchema = `{
	"type": "object",
	"properties": {
		"answers": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"properties": {
					"questionId": { "type": "string", "minLength": 1 },
					"answerValue": { "type": "integer", "minimum": 1, "maximum": 5 },
					"duration": { "type": "integer", "minimum": 0 }
				},
				"required": ["questionId", "answerValue"],
				"additionalProperties": false
			}
		}
	},
	"required": ["answers"],
	"additionalProperties": false
}`

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

var answerSchema = gojsonschema.NewStringLoader(answerPayloadSchema)

// ValidateAnswerPayload validates a raw save-answers request body.
func ValidateAnswerPayload(body []byte) (*ValidationResult, error) {
	result, err := gojsonschema.Validate(answerSchema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, fmt.Errorf("schema validation failed to run: %w", err)
	}

	if result.Valid() {
		return &ValidationResult{Valid: true}, nil
	}

	out := &ValidationResult{Valid: false}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return out, nil
}
