package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TableRow is one loosely typed row of a descriptive table: a mapping
// from column name to a scalar value (string, number, or null).
type TableRow map[string]any

// DescriptiveTable is one backend-produced table with a title and
// arbitrary row shape.
type DescriptiveTable struct {
	Title string     `json:"title"`
	Data  []TableRow `json:"data"`

	// headerOrder preserves the first row's key order as decoded,
	// since Go maps do not.
	headerOrder []string
}

func (t *DescriptiveTable) UnmarshalJSON(data []byte) error {
	type alias DescriptiveTable
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	*t = DescriptiveTable(decoded)
	t.headerOrder = firstRowKeyOrder(data)
	return nil
}

// Headers derives the column headers from the first row's key order.
// Tables with no rows have no headers.
func (t DescriptiveTable) Headers() []string {
	return t.headerOrder
}

// IsEmpty reports whether the table has no rows to render.
func (t DescriptiveTable) IsEmpty() bool {
	return len(t.Data) == 0
}

// FormatCell renders a single cell value for display. Nulls become a
// dash, preformatted currency strings pass through unchanged, and
// everything else is stringified.
func FormatCell(value any) string {
	if value == nil {
		return "-"
	}
	if s, ok := value.(string); ok {
		return s
	}
	if f, ok := value.(float64); ok {
		if f == float64(int64(f)) {
			return fmt.Sprintf("%d", int64(f))
		}
		return fmt.Sprintf("%v", f)
	}
	return fmt.Sprintf("%v", value)
}

// firstRowKeyOrder scans the raw JSON of a table for the first data row
// and returns its keys in document order.
func firstRowKeyOrder(raw []byte) []string {
	var probe struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil || len(probe.Data) == 0 {
		return nil
	}

	decoder := json.NewDecoder(strings.NewReader(string(probe.Data[0])))
	token, err := decoder.Token()
	if err != nil || token != json.Delim('{') {
		return nil
	}

	var keys []string
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		key, ok := token.(string)
		if !ok {
			break
		}
		keys = append(keys, key)
		// Skip the value so the next token is a key again.
		if err := skipValue(decoder); err != nil {
			break
		}
	}
	return keys
}

// skipValue consumes one JSON value from the decoder.
func skipValue(decoder *json.Decoder) error {
	token, err := decoder.Token()
	if err != nil {
		return err
	}
	delim, ok := token.(json.Delim)
	if !ok {
		return nil
	}
	if delim == '{' || delim == '[' {
		depth := 1
		for depth > 0 {
			token, err := decoder.Token()
			if err != nil {
				return err
			}
			if d, ok := token.(json.Delim); ok {
				switch d {
				case '{', '[':
					depth++
				case '}', ']':
					depth--
				}
			}
		}
	}
	return nil
}
