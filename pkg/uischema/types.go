package uischema

// Wildcard is the form id whose overlay applies to every variant.
const Wildcard = "*"

// Store keeps the parsed overlays keyed by variant id. It is safe for
// concurrent readers when treated as immutable after construction.
type Store struct {
	forms map[string]Form
}

// Form describes the overlay for one variant (or Wildcard).
type Form struct {
	ID     string
	Source string
	Form   FormConfig
	// Fields is keyed by catalog label.
	Fields map[string]FieldConfig
}

// FormConfig overrides page-level text.
type FormConfig struct {
	Title       string            `json:"title" yaml:"title"`
	Description string            `json:"description" yaml:"description"`
	Placeholder string            `json:"placeholder" yaml:"placeholder"`
	Metadata    map[string]string `json:"metadata" yaml:"metadata"`
}

// FieldConfig overrides how a single input is presented. Placeholder may
// contain {label}, replaced with the field caption.
type FieldConfig struct {
	Label        string `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder  string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	OriginalPath string `json:"-" yaml:"-"`
}

// Form returns the overlay registered for id.
func (s *Store) Form(id string) (Form, bool) {
	if s == nil {
		return Form{}, false
	}
	form, ok := s.forms[id]
	return form, ok
}

// Empty reports whether the store holds any overlays.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}
