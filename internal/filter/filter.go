package filter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jmespath/go-jmespath"
)

// Apply renders a variable value as indented JSON, narrowed by a JMESPath
// query when one is given (e.g. items[?active].name)
func Apply(value any, query string) (string, error) {
	doc, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("value is not JSON-serializable: %w", err)
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return indent(doc)
	}

	return applyJMESPath(doc, query)
}

// Validate reports whether expression is a valid JMESPath expression
func Validate(expression string) error {
	if _, err := jmespath.Compile(expression); err != nil {
		return fmt.Errorf("invalid JMESPath expression '%s': %w", expression, err)
	}
	return nil
}

// applyJMESPath applies a JMESPath expression to a JSON document
func applyJMESPath(doc []byte, expression string) (string, error) {
	// Re-decode without json.Number so JMESPath compares numbers as numbers
	var data interface{}
	if err := json.Unmarshal(doc, &data); err != nil {
		return "", fmt.Errorf("invalid JSON: %w", err)
	}

	jp, err := jmespath.Compile(expression)
	if err != nil {
		return "", fmt.Errorf("invalid JMESPath expression '%s': %w", expression, err)
	}

	result, err := jp.Search(data)
	if err != nil {
		return "", fmt.Errorf("JMESPath search failed: %w", err)
	}

	if result == nil {
		return "null", nil
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}

	return string(output), nil
}

func indent(doc []byte) (string, error) {
	var data interface{}
	if err := json.Unmarshal(doc, &data); err != nil {
		return "", fmt.Errorf("invalid JSON: %w", err)
	}

	output, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal value: %w", err)
	}
	return string(output), nil
}
