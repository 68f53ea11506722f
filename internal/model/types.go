package model

import "strings"

// Field models a single free-text input of the certificate form. Name doubles
// as the key used in a ValueMap and as the literal label printed on the
// certificate, so the two never drift apart.
type Field struct {
	Name        string `json:"name"`
	ID          string `json:"id"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder,omitempty"`
	Section     string `json:"section,omitempty"`
}

// FormModel is the ordered field schema for one certificate variant. Fields
// keep declaration order; renderers and collectors iterate them as-is.
type FormModel struct {
	ID          string            `json:"id"`
	Title       string            `json:"title,omitempty"`
	Description string            `json:"description,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Labels returns the field labels in schema order.
func (f FormModel) Labels() []string {
	out := make([]string, 0, len(f.Fields))
	for _, field := range f.Fields {
		out = append(out, field.Name)
	}
	return out
}

// Has reports whether label is part of the schema.
func (f FormModel) Has(label string) bool {
	for _, field := range f.Fields {
		if field.Name == label {
			return true
		}
	}
	return false
}

// ValueMap maps a field label to the user supplied text. Lookups of unknown
// labels yield the empty string.
type ValueMap map[string]string

// Get returns the value stored for label or "".
func (v ValueMap) Get(label string) string {
	if v == nil {
		return ""
	}
	return v[label]
}

// Clone returns a shallow copy so callers can hand maps across pipeline stages
// without sharing ownership.
func (v ValueMap) Clone() ValueMap {
	out := make(ValueMap, len(v))
	for key, value := range v {
		out[key] = value
	}
	return out
}

// Placeholder formats the input hint shown for an empty field.
func Placeholder(label string) string {
	return "Enter " + label + "..."
}

// FieldID turns a label such as "Batch No." into an attribute friendly id
// ("batch-no").
func FieldID(label string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(label) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
