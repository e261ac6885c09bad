// Package fields normalizes the loosely typed list and number values
// clients send for recipe ingredients and steps. The same logical list
// may arrive as a JSON array, a JSON-array string, or a comma/newline
// delimited string; all of them resolve to the same canonical []string.
package fields

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseList converts an arbitrary decoded value into an ordered list of
// trimmed, non-empty strings. Order of first appearance is preserved.
// Values that are neither lists nor strings normalize to an empty list.
func ParseList(value any) []string {
	switch v := value.(type) {
	case nil:
		return []string{}
	case []string:
		out := []string{}
		for _, item := range v {
			if t := strings.TrimSpace(item); t != "" {
				out = append(out, t)
			}
		}
		return out
	case []any:
		return cleanAll(v)
	case string:
		return ParseListString(v)
	default:
		return []string{}
	}
}

// ParseListString normalizes a raw string. A strict JSON-array parse is
// attempted first; anything that doesn't yield an array silently falls
// through to comma/newline splitting rather than surfacing an error.
func ParseListString(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{}
	}

	var arr []any
	if err := json.Unmarshal([]byte(s), &arr); err == nil && arr != nil {
		return cleanAll(arr)
	}

	// Fallback: commas count as line breaks
	out := []string{}
	for _, line := range strings.Split(strings.ReplaceAll(s, ",", "\n"), "\n") {
		if t := strings.TrimSpace(line); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func cleanAll(items []any) []string {
	out := []string{}
	for _, item := range items {
		if t := strings.TrimSpace(stringify(item)); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// JSON numbers decode as float64; keep integers integral
		if t == math.Trunc(t) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

// StringList is the canonical list stored as a JSON column. A nil list
// marshals as [] so recipe responses never emit null.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, (*[]string)(l))
	case string:
		return json.Unmarshal([]byte(v), (*[]string)(l))
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
}

func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// FlexList binds a request field that may be a JSON array or a string.
// It resolves to the canonical list once, at the request boundary.
type FlexList struct {
	Values []string
}

func (f *FlexList) UnmarshalJSON(b []byte) error {
	var arr []any
	if err := json.Unmarshal(b, &arr); err == nil {
		f.Values = cleanAll(arr)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		f.Values = ParseListString(s)
		return nil
	}
	f.Values = []string{}
	return nil
}

// FlexInt binds a request field that may be a JSON number or a numeric
// string. Valid reports whether a usable value was present; junk input
// never fails the request, it just leaves Valid false.
type FlexInt struct {
	Value int
	Valid bool
}

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		f.Value = int(n)
		f.Valid = true
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			f.Value = 0
			f.Valid = true
			return nil
		}
		if v, err := strconv.Atoi(s); err == nil {
			f.Value = v
			f.Valid = true
		}
	}
	return nil
}
