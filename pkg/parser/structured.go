package parser

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	jsvalidate "github.com/santhosh-tekuri/jsonschema/v5"
)

// Structured parses model output into a typed Go struct. The struct is
// reflected into a JSON schema once at construction; the schema is embedded
// in the format instructions and the model's output is validated against it
// before unmarshalling.
type Structured struct {
	schemaJSON string
	compiled   *jsvalidate.Schema
}

// NewStructured builds a Structured parser for the given struct type.
// Field names come from json tags, descriptions from jsonschema tags.
func NewStructured(target interface{}) (*Structured, error) {
	reflector := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	schema := reflector.Reflect(target)

	b, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	compiled, err := jsvalidate.CompileString("output.schema.json", string(b))
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return &Structured{
		schemaJSON: string(b),
		compiled:   compiled,
	}, nil
}

// FormatInstructions embeds the JSON schema in the prompt so the model
// knows the exact shape to produce.
func (s *Structured) FormatInstructions() string {
	return "The output should be a JSON object conforming to the JSON schema below.\n" +
		"Do not include any text outside the JSON.\n\n" + s.schemaJSON
}

// Parse extracts the JSON object from text, validates it against the
// schema, and unmarshals it into out.
func (s *Structured) Parse(text string, out interface{}) error {
	raw, err := ExtractObject(text)
	if err != nil {
		return err
	}

	var value interface{}
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return fmt.Errorf("failed to decode JSON output: %w", err)
	}
	if err := s.compiled.Validate(value); err != nil {
		return fmt.Errorf("output does not match schema: %w", err)
	}

	return json.Unmarshal([]byte(raw), out)
}
