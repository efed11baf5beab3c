package grammarir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// documentSchema is the JSON Schema a decoded GrammarDocument's wire form
// must satisfy before the analyser or engine ever sees it. It only checks
// the outer shape (field names/types); Expr's per-Kind field combinations
// are not checked anywhere on the decode path.
const documentSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://opal-lang.dev/schemas/grammar-document.json",
  "type": "object",
  "required": ["format_version", "lex_rules", "syn_rules", "start_rule"],
  "properties": {
    "format_version": {"type": "string"},
    "start_rule": {"type": "integer", "minimum": 0},
    "node_types": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name": {"type": "string"},
          "whitespace_like": {"type": "boolean"}
        }
      }
    },
    "lex_rules": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["type", "pattern"],
        "properties": {
          "type": {"type": "integer"},
          "pattern": {"type": "string"},
          "custom_fn": {"type": "string"}
        }
      }
    },
    "syn_rules": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["body"],
        "properties": {
          "body": {"type": "object"}
        }
      }
    }
  }
}`

var (
	schemaOnce sync.Once
	compiled   *jsonschema.Schema
	compileErr error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource("grammar-document.json", bytes.NewReader([]byte(documentSchema))); err != nil {
			compileErr = fmt.Errorf("grammarir: add schema resource: %w", err)
			return
		}
		s, err := c.Compile("grammar-document.json")
		if err != nil {
			compileErr = fmt.Errorf("grammarir: compile schema: %w", err)
			return
		}
		compiled = s
	})
	return compiled, compileErr
}

// ValidateSchema checks raw JSON grammar-document bytes against the
// bundled schema before any Go-level decoding is attempted.
func ValidateSchema(data []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("grammarir: invalid json: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("grammarir: %w", err)
	}
	return nil
}
