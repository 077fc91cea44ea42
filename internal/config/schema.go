package config

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// configSchema describes the shape of the on-disk config document. Validation
// runs against the raw JSON before unmarshal so type mismatches are reported
// with field paths instead of mapstructure decode errors.
const configSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "telegram": {
      "type": "object",
      "properties": {
        "bot_token": {"type": "string"},
        "owner_id": {"type": "integer"},
        "admin_id": {"type": "integer"}
      }
    },
    "openai": {
      "type": "object",
      "properties": {
        "api_key": {"type": "string"}
      }
    },
    "anthropic": {
      "type": "object",
      "properties": {
        "api_key": {"type": "string"}
      }
    },
    "rate_limit": {
      "type": "object",
      "properties": {
        "min_interval_ms": {"type": "integer", "minimum": 0}
      }
    },
    "sessions": {
      "type": "object",
      "properties": {
        "database_file": {"type": "string"},
        "max_idle_days": {"type": "integer", "minimum": 0}
      }
    },
    "logging": {
      "type": "object",
      "properties": {
        "level": {"type": "string", "enum": ["debug", "info", "warn", "error"]},
        "file": {"type": "string"},
        "console": {"type": "boolean"},
        "pretty": {"type": "boolean"}
      }
    },
    "data_dir": {"type": "string"}
  },
  "additionalProperties": false
}`

// ValidateDocument validates a raw config document against the schema
func ValidateDocument(raw []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(configSchema)
	documentLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate config: %w", err)
	}

	if !result.Valid() {
		errs := result.Errors()
		if len(errs) > 0 {
			return fmt.Errorf("invalid config: %s", errs[0].String())
		}
		return fmt.Errorf("invalid config")
	}

	return nil
}
