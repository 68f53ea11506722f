package variant

import (
	"errors"
	"sort"
)

// ErrNotFound is returned when a variant id is not present in the store.
var ErrNotFound = errors.New("variant: not found")

// Header layout modes.
const (
	HeaderPaired  = "paired"
	HeaderStacked = "stacked"
)

// paddedColumnWidth fills missing column widths, matching the certificate
// helper that always draws against three columns.
const paddedColumnWidth = 50

// Store keeps the parsed variants. It is safe for concurrent readers when
// treated as immutable after construction.
type Store struct {
	variants    map[string]Variant
	defaultName string
}

// Variant is one certificate layout.
type Variant struct {
	ID           string
	Source       string
	Title        string
	Description  string
	RunningTitle string
	Page         PageConfig
	Header       HeaderLayout
	Editable     []string
	Sections     []SectionLayout
}

// PageConfig describes the single page the certificate is drawn on. Sizes
// are in millimetres.
type PageConfig struct {
	Size        string  `json:"size" yaml:"size"`
	Orientation string  `json:"orientation" yaml:"orientation"`
	FontFamily  string  `json:"fontFamily" yaml:"fontFamily"`
	Margin      float64 `json:"margin" yaml:"margin"`
	Width       float64 `json:"-" yaml:"-"`
	Height      float64 `json:"-" yaml:"-"`
}

// PrintableWidth is the distance between the left and right margins.
func (p PageConfig) PrintableWidth() float64 {
	return p.Width - 2*p.Margin
}

// HeaderLayout configures the customer/product/batch block.
type HeaderLayout struct {
	Mode    string       `json:"mode" yaml:"mode"`
	Border  string       `json:"border" yaml:"border"`
	Columns ColumnLayout `json:"columns" yaml:"columns"`
}

// TitleLayout configures a section title bar.
type TitleLayout struct {
	FontSize float64 `json:"fontSize" yaml:"fontSize"`
	Height   float64 `json:"height" yaml:"height"`
	Align    string  `json:"align" yaml:"align"`
	Border   string  `json:"border" yaml:"border"`
}

// ColumnLayout holds the column widths, row height and font size of a table.
type ColumnLayout struct {
	Widths    []float64 `json:"widths" yaml:"widths"`
	RowHeight float64   `json:"rowHeight" yaml:"rowHeight"`
	FontSize  float64   `json:"fontSize" yaml:"fontSize"`
}

// Width returns the width of column idx, padding absent columns.
func (c ColumnLayout) Width(idx int) float64 {
	if idx >= 0 && idx < len(c.Widths) {
		return c.Widths[idx]
	}
	return paddedColumnWidth
}

// SectionLayout is the layout of one titled table section.
type SectionLayout struct {
	ID      string       `json:"id" yaml:"id"`
	Title   TitleLayout  `json:"title" yaml:"title"`
	Columns ColumnLayout `json:"columns" yaml:"columns"`
}

// Section returns the layout for the section id when the variant prints it.
func (v Variant) Section(id string) (SectionLayout, bool) {
	for _, section := range v.Sections {
		if section.ID == id {
			return section, true
		}
	}
	return SectionLayout{}, false
}

// Includes reports whether the variant prints section id.
func (v Variant) Includes(id string) bool {
	_, ok := v.Section(id)
	return ok
}

// IsEditable reports whether label is part of the variant's input schema.
func (v Variant) IsEditable(label string) bool {
	for _, editable := range v.Editable {
		if editable == label {
			return true
		}
	}
	return false
}

// Variant returns the variant registered under id.
func (s *Store) Variant(id string) (Variant, error) {
	if s == nil {
		return Variant{}, ErrNotFound
	}
	v, ok := s.variants[id]
	if !ok {
		return Variant{}, ErrNotFound
	}
	return v, nil
}

// IDs lists the variant ids in lexical order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.variants))
	for id := range s.variants {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Default returns the id flagged as default, falling back to the first id.
func (s *Store) Default() string {
	if s == nil {
		return ""
	}
	if s.defaultName != "" {
		return s.defaultName
	}
	if ids := s.IDs(); len(ids) > 0 {
		return ids[0]
	}
	return ""
}

// Empty reports whether the store holds any variants.
func (s *Store) Empty() bool {
	return s == nil || len(s.variants) == 0
}
