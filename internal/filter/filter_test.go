package filter

import (
	"encoding/json"
	"testing"
)

func TestApply_NoQuery(t *testing.T) {
	got, err := Apply(map[string]any{"name": "Olla", "n": json.Number("2")}, "")
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	want := "{\n  \"n\": 2,\n  \"name\": \"Olla\"\n}"
	if got != want {
		t.Errorf("Apply() = %q, want %q", got, want)
	}
}

func TestApply_Query(t *testing.T) {
	value := []any{
		map[string]any{"name": "a", "score": json.Number("10")},
		map[string]any{"name": "b", "score": json.Number("30")},
		map[string]any{"name": "c", "score": json.Number("20")},
	}

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"projection", "[].name", "[\n  \"a\",\n  \"b\",\n  \"c\"\n]"},
		{"numeric filter", "[?score > `15`].name", "[\n  \"b\",\n  \"c\"\n]"},
		{"index", "[0].score", "10"},
		{"missing field", "[0].missing", "null"},
		{"function", "length(@)", "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(value, tt.query)
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Apply() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApply_InvalidExpression(t *testing.T) {
	if _, err := Apply([]any{1}, "[?"); err == nil {
		t.Error("expected error for invalid expression")
	}
	if err := Validate("[?"); err == nil {
		t.Error("Validate() should reject invalid expression")
	}
	if err := Validate("items[].name"); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestApply_Scalar(t *testing.T) {
	got, err := Apply("hello", "")
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got != `"hello"` {
		t.Errorf("Apply() = %q", got)
	}
}
