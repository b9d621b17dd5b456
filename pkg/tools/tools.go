// Package tools builds LLM tool definitions from plain Go functions using
// reflection. Field names come from json tags, per-field descriptions from
// description tags.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/barekit/praxis/pkg/llm"
)

var (
	ctxType   = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType = reflect.TypeOf((*error)(nil)).Elem()
)

// Tool represents a tool the model may call.
type Tool struct {
	Name        string
	Description string
	Function    interface{}
	Definition  llm.ToolDefinition
}

// New creates a Tool from a function. The function takes an optional
// context.Context followed by exactly one struct (or pointer to struct)
// argument, and returns (string, error) or just error.
func New(name string, description string, fn interface{}) (*Tool, error) {
	def, err := generateDefinition(name, description, fn)
	if err != nil {
		return nil, err
	}

	return &Tool{
		Name:        name,
		Description: description,
		Function:    fn,
		Definition:  *def,
	}, nil
}

// Call executes the tool with the given JSON arguments.
func (t *Tool) Call(ctx context.Context, argsJSON string) (string, error) {
	fnVal := reflect.ValueOf(t.Function)
	fnType := fnVal.Type()

	argIdx := 0
	takesCtx := fnType.NumIn() > 0 && fnType.In(0) == ctxType
	if takesCtx {
		argIdx = 1
	}

	argType := fnType.In(argIdx)
	isPtr := false
	if argType.Kind() == reflect.Ptr {
		argType = argType.Elem()
		isPtr = true
	}

	argVal := reflect.New(argType)
	if err := json.Unmarshal([]byte(argsJSON), argVal.Interface()); err != nil {
		return "", fmt.Errorf("failed to parse arguments: %w", err)
	}

	var args []reflect.Value
	if takesCtx {
		args = append(args, reflect.ValueOf(ctx))
	}
	if isPtr {
		args = append(args, argVal)
	} else {
		args = append(args, argVal.Elem())
	}

	results := fnVal.Call(args)

	// Expected returns: (string, error) or (error).
	var output string
	var err error

	switch len(results) {
	case 1:
		if !results[0].IsNil() {
			err = results[0].Interface().(error)
		}
	case 2:
		output = results[0].String()
		if !results[1].IsNil() {
			err = results[1].Interface().(error)
		}
	default:
		return "", fmt.Errorf("unexpected number of return values: %d", len(results))
	}

	return output, err
}

func generateDefinition(name, description string, fn interface{}) (*llm.ToolDefinition, error) {
	t := reflect.TypeOf(fn)
	if t == nil || t.Kind() != reflect.Func {
		return nil, fmt.Errorf("expected a function, got %v", t)
	}

	numIn := t.NumIn()
	argIdx := 0
	if numIn > 0 && t.In(0) == ctxType {
		argIdx = 1
	}
	if numIn != argIdx+1 {
		return nil, fmt.Errorf("function must take an optional context and exactly one argument struct")
	}

	if n := t.NumOut(); n < 1 || n > 2 || t.Out(n-1) != errorType {
		return nil, fmt.Errorf("function must return (string, error) or error")
	}

	argType := t.In(argIdx)
	if argType.Kind() == reflect.Ptr {
		argType = argType.Elem()
	}
	if argType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("function argument must be a struct or pointer to struct")
	}

	properties := make(map[string]interface{})
	required := []string{}

	for i := 0; i < argType.NumField(); i++ {
		field := argType.Field(i)
		jsonTag := field.Tag.Get("json")
		if jsonTag == "" {
			jsonTag = field.Name
		}
		parts := strings.Split(jsonTag, ",")
		fieldName := parts[0]

		prop := map[string]interface{}{
			"type": goTypeToJSONType(field.Type),
		}
		if descTag := field.Tag.Get("description"); descTag != "" {
			prop["description"] = descTag
		}

		properties[fieldName] = prop
		required = append(required, fieldName)
	}

	params := map[string]interface{}{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}

	return &llm.ToolDefinition{
		Type: "function",
		Function: llm.ToolFunction{
			Name:        name,
			Description: description,
			Parameters:  params,
		},
	}, nil
}

func goTypeToJSONType(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	default:
		return "string"
	}
}
