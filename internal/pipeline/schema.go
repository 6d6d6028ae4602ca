package pipeline

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed pipeline.schema.json
var embeddedSchemaData []byte

// Validator validates a pipeline declaration against the embedded JSON Schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles the embedded schema.
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("pipeline.json", strings.NewReader(string(embeddedSchemaData))); err != nil {
		return nil, fmt.Errorf("add embedded schema resource: %w", err)
	}

	schema, err := compiler.Compile("pipeline.json")
	if err != nil {
		return nil, fmt.Errorf("compile embedded schema: %w", err)
	}

	return &Validator{schema: schema}, nil
}

// Validate checks a decoded config against the schema. The struct is
// round-tripped through JSON because the schema operates on plain values.
func (v *Validator) Validate(cfg *Config) error {
	jsonData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config for validation: %w", err)
	}

	var value any
	if err := json.Unmarshal(jsonData, &value); err != nil {
		return fmt.Errorf("unmarshal config for validation: %w", err)
	}

	if err := v.schema.Validate(value); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			var messages []string
			collectErrors(validationErr, &messages)
			return fmt.Errorf("schema validation failed:\n%s", strings.Join(messages, "\n"))
		}
		return fmt.Errorf("schema validation failed: %w", err)
	}

	return nil
}

func collectErrors(err *jsonschema.ValidationError, messages *[]string) {
	if err.InstanceLocation != "" && len(err.Causes) == 0 {
		*messages = append(*messages, fmt.Sprintf("- %s: %s", err.InstanceLocation, err.Message))
	}
	for _, cause := range err.Causes {
		collectErrors(cause, messages)
	}
}
