package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

var intentMapSchema = map[string]interface{}{
	"type": "object",
	"additionalProperties": map[string]interface{}{
		"oneOf": []interface{}{
			map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{
					"type":      []interface{}{"string", "number", "boolean"},
					"minLength": 1,
				},
			},
			map[string]interface{}{"type": "null"},
		},
	},
}

// CatalogDocumentSchema accepts the versioned catalog form or the legacy
// bare mapping of intent id to phrase list.
var CatalogDocumentSchema = map[string]interface{}{
	"oneOf": []interface{}{
		map[string]interface{}{
			"type":     "object",
			"required": []interface{}{"version"},
			"properties": map[string]interface{}{
				"version": map[string]interface{}{"type": "integer", "enum": []interface{}{1}},
				"intents": map[string]interface{}{
					"oneOf": []interface{}{intentMapSchema, map[string]interface{}{"type": "null"}},
				},
			},
			"additionalProperties": false,
		},
		intentMapSchema,
	},
}

// ChatRequestSchema is the body of POST /api/v2/assistant/chat.
var ChatRequestSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"message"},
	"properties": map[string]interface{}{
		"message": map[string]interface{}{"type": "string"},
	},
}

// ChatJobSchema is the variable set of an assistant-chat job.
var ChatJobSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"message"},
	"properties": map[string]interface{}{
		"message":        map[string]interface{}{"type": "string"},
		"employeeNumber": map[string]interface{}{"type": []interface{}{"integer", "null"}},
		"userRoleId":     map[string]interface{}{"type": []interface{}{"integer", "null"}},
		"username":       map[string]interface{}{"type": []interface{}{"string", "null"}},
	},
}

// Validate checks document against a JSON schema expressed as Go values.
// The error return is reserved for an unusable schema or document; schema
// violations are reported in the result.
func Validate(schema map[string]interface{}, document interface{}) (*ValidationResult, error) {
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewGoLoader(document))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	return out, nil
}

func ValidateCatalogDocument(document interface{}) (*ValidationResult, error) {
	return Validate(CatalogDocumentSchema, document)
}

func ValidateChatRequest(body map[string]interface{}) (*ValidationResult, error) {
	return Validate(ChatRequestSchema, body)
}

func ValidateChatJob(variables map[string]interface{}) (*ValidationResult, error) {
	return Validate(ChatJobSchema, variables)
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}

// Error joins all messages, for wrapping into a single error value.
func (vr *ValidationResult) Error() string {
	return strings.Join(vr.GetErrorMessages(), "; ")
}
