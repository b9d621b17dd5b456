// Package parser turns raw model output into usable Go values. Each parser
// also knows how to describe its expected format so the instructions can be
// embedded in the prompt.
package parser

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Str trims whitespace from model output. The simplest parser, useful as
// the tail of a chain.
type Str struct{}

// Parse returns the trimmed text.
func (Str) Parse(text string) (string, error) {
	return strings.TrimSpace(text), nil
}

// CommaSeparated parses model output into a list of strings.
type CommaSeparated struct{}

// FormatInstructions tells the model how to answer.
func (CommaSeparated) FormatInstructions() string {
	return "Your response should be a list of comma separated values, eg: `foo, bar, baz`"
}

// Parse splits the output on commas and trims each item. Empty items are
// dropped so a trailing comma does not produce a phantom entry.
func (CommaSeparated) Parse(text string) ([]string, error) {
	parts := strings.Split(strings.TrimSpace(text), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if item := strings.TrimSpace(p); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no items found in output: %q", text)
	}
	return out, nil
}

// JSON extracts a JSON object from model output into a generic map. Models
// often wrap JSON in markdown fences or prose; ExtractObject strips both.
type JSON struct{}

// FormatInstructions tells the model how to answer.
func (JSON) FormatInstructions() string {
	return "Return a JSON object. Do not include any text outside the JSON."
}

// Parse extracts and decodes the first JSON object in the output.
func (JSON) Parse(text string) (map[string]interface{}, error) {
	raw, err := ExtractObject(text)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("failed to decode JSON output: %w", err)
	}
	return out, nil
}

// ExtractObject locates the outermost JSON object in text, tolerating
// ```json fences and surrounding prose.
func ExtractObject(text string) (string, error) {
	cleaned := strings.TrimSpace(text)
	if i := strings.Index(cleaned, "```"); i >= 0 {
		cleaned = cleaned[i+3:]
		cleaned = strings.TrimPrefix(cleaned, "json")
		if j := strings.Index(cleaned, "```"); j >= 0 {
			cleaned = cleaned[:j]
		}
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("no JSON object found in output: %q", text)
	}
	return cleaned[start : end+1], nil
}
