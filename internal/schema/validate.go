// Package schema validates verify-helper documents against the embedded JSON schemas.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	schemafs "github.com/AndreyAkinshin/verifyhelper/schema"
)

const (
	configSchemaName       = "config.schema.json"
	verificationSchemaName = "verification.schema.json"
	resultSchemaName       = "result.schema.json"
)

var (
	schemas     map[string]*jsonschema.Schema
	compileOnce sync.Once
	compileErr  error
)

// compileSchemas compiles all embedded schemas once.
func compileSchemas() error {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		names := []string{configSchemaName, verificationSchemaName, resultSchemaName}

		for _, name := range names {
			data, err := schemafs.FS.ReadFile(name)
			if err != nil {
				compileErr = fmt.Errorf("read %s: %w", name, err)
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
			if err != nil {
				compileErr = fmt.Errorf("unmarshal %s: %w", name, err)
				return
			}
			if err := compiler.AddResource(name, doc); err != nil {
				compileErr = fmt.Errorf("add %s resource: %w", name, err)
				return
			}
		}

		compiled := make(map[string]*jsonschema.Schema, len(names))
		for _, name := range names {
			sch, err := compiler.Compile(name)
			if err != nil {
				compileErr = fmt.Errorf("compile %s: %w", name, err)
				return
			}
			compiled[name] = sch
		}
		schemas = compiled
	})

	return compileErr
}

func validate(name, what string, data []byte) error {
	if err := compileSchemas(); err != nil {
		return err
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return validateValue(name, what, v)
}

func validateValue(name, what string, v any) error {
	if err := compileSchemas(); err != nil {
		return err
	}
	if err := schemas[name].Validate(v); err != nil {
		return fmt.Errorf("%s validation failed: %w", what, err)
	}
	return nil
}

// ValidateVerification validates a verification input document (verify_files.json).
func ValidateVerification(data []byte) error {
	return validate(verificationSchemaName, "verification input", data)
}

// ValidateResult validates a verification result document.
func ValidateResult(data []byte) error {
	return validate(resultSchemaName, "result", data)
}

// ValidateConfig validates a decoded configuration document.
// The value must use JSON-compatible types (map[string]any, []any, float64, ...).
func ValidateConfig(v any) error {
	return validateValue(configSchemaName, "config", normalizeNumbers(v))
}

// normalizeNumbers converts integer values produced by YAML decoding into float64,
// which the schema validator accepts as JSON numbers.
func normalizeNumbers(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = normalizeNumbers(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = normalizeNumbers(val)
		}
		return out
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case uint64:
		return float64(x)
	default:
		return v
	}
}
