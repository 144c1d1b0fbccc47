package render

import (
	"encoding/json"
	"fmt"

	"github.com/studiowebux/ollaterm/internal/types"
)

// MaxStringPreview is the number of characters of a string value shown in the sidebar
const MaxStringPreview = 50

// FormatValue returns the short preview of a variable value
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		runes := []rune(val)
		if len(runes) > MaxStringPreview {
			return `"` + string(runes[:MaxStringPreview]) + `..."`
		}
		return `"` + val + `"`
	case []any:
		return fmt.Sprintf("[%d items]", len(val))
	case map[string]any:
		return fmt.Sprintf("{%d keys}", len(val))
	case types.Variables:
		return fmt.Sprintf("{%d keys}", len(val))
	case json.Number:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// PrettyJSON returns v as indented JSON, falling back to FormatValue
func PrettyJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return FormatValue(v)
	}
	return string(data)
}
