package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ChatRequestSchema accepts either a single message (or its "content" alias)
// or a list of role/content turns. All fields are optional; an empty request
// is answered with a prompt to say something.
const ChatRequestSchema = `{
  "type": "object",
  "properties": {
    "message": {"type": "string", "maxLength": 4000},
    "content": {"type": "string", "maxLength": 4000},
    "messages": {
      "type": "array",
      "maxItems": 100,
      "items": {
        "type": "object",
        "properties": {
          "role": {"type": "string"},
          "content": {"type": "string", "maxLength": 4000},
          "message": {"type": "string", "maxLength": 4000}
        }
      }
    }
  }
}`

var chatRequestSchema = mustSchema(ChatRequestSchema)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func mustSchema(raw string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
	if err != nil {
		panic(fmt.Sprintf("invalid built-in schema: %v", err))
	}
	return schema
}

// ValidateChatRequest checks a raw request body. A body that is not JSON is
// reported as an error, not as an invalid result.
func ValidateChatRequest(body []byte) (*ValidationResult, error) {
	return Validate(chatRequestSchema, gojsonschema.NewBytesLoader(body))
}

func Validate(schema *gojsonschema.Schema, document gojsonschema.JSONLoader) (*ValidationResult, error) {
	result, err := schema.Validate(document)
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
		if err.Field == field || strings.HasPrefix(err.Field, field+".") {
			return true
		}
	}
	return false
}
