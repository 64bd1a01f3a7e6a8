package crud

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/personnel-web/internal/pkg/validator"
)

// Record is a backend document kept as raw JSON values so unknown fields
// survive a round trip.
type Record map[string]any

// ID returns "_id", falling back to "id".
func (r Record) ID() string {
	if id := r.String("_id"); id != "" {
		return id
	}
	return r.String("id")
}

// String returns the field as text. Embedded references yield their id.
func (r Record) String(key string) string {
	return stringOf(r[key], true)
}

func stringOf(v any, refAsID bool) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case json.Number:
		return t.String()
	case map[string]any:
		if refAsID {
			return Record(t).ID()
		}
		return RefLabel(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// Bool reads a boolean field, accepting "true"/"false" strings.
func (r Record) Bool(key string) bool {
	switch t := r[key].(type) {
	case bool:
		return t
	case string:
		b, _ := strconv.ParseBool(t)
		return b
	}
	return false
}

// Ref returns the id and display label of an embedded reference, which may
// be an object or a bare id.
func (r Record) Ref(key string) (id, label string) {
	switch t := r[key].(type) {
	case map[string]any:
		return Record(t).ID(), RefLabel(t)
	case string:
		return t, t
	}
	return "", ""
}

// Display renders a field for a table cell.
func (r Record) Display(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case bool:
		if t {
			return "Yes"
		}
		return "No"
	case string:
		return validator.DateOnly(t)
	case map[string]any:
		return RefLabel(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, stringOf(item, false))
		}
		return strings.Join(parts, ", ")
	}
	return stringOf(v, false)
}

// RefLabel is "name (regimentalNo)" for people and "name" for everything else.
func RefLabel(m map[string]any) string {
	name, _ := m["name"].(string)
	reg, _ := m["regimentalNo"].(string)
	switch {
	case name != "" && reg != "":
		return name + " (" + reg + ")"
	case name != "":
		return name
	case reg != "":
		return reg
	}
	return Record(m).ID()
}

// Clone copies the top level of r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
