package config

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const scoringSchema = `{
  "type": "object",
  "required": ["weights", "readiness_thresholds"],
  "additionalProperties": false,
  "properties": {
    "weights": {
      "type": "object",
      "required": ["core", "optional", "project", "ats", "structure"],
      "additionalProperties": false,
      "properties": {
        "core": {"type": "number", "minimum": 0},
        "optional": {"type": "number", "minimum": 0},
        "project": {"type": "number", "minimum": 0},
        "ats": {"type": "number", "minimum": 0},
        "structure": {"type": "number", "minimum": 0}
      }
    },
    "readiness_thresholds": {
      "type": "object",
      "required": ["job_ready", "improving"],
      "additionalProperties": false,
      "properties": {
        "job_ready": {"type": "integer", "minimum": 0, "maximum": 100},
        "improving": {"type": "integer", "minimum": 0, "maximum": 100}
      }
    }
  }
}`

const skillsSchema = `{
  "type": "object",
  "additionalProperties": {
    "type": "array",
    "items": {"type": "string", "minLength": 1}
  }
}`

const rolesSchema = `{
  "type": "object",
  "additionalProperties": {
    "type": "object",
    "required": ["core", "optional"],
    "additionalProperties": false,
    "properties": {
      "core": {"type": "array", "items": {"type": "string", "minLength": 1}},
      "optional": {"type": "array", "items": {"type": "string", "minLength": 1}}
    }
  }
}`

// validateDocument checks a raw config document against its JSON schema
// before unmarshalling, so malformed files fail with field-level messages
// instead of partial zero-valued structs.
func validateDocument(filename, schema string, document []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(document),
	)
	if err != nil {
		return &Error{File: filename, Message: err.Error()}
	}
	if result.Valid() {
		return nil
	}
	violations := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return &Error{File: filename, Message: strings.Join(violations, "; ")}
}
