package variant

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-coagen/pkg/catalog"
)

var pageSizes = map[string][2]float64{
	"a4":     {210, 297},
	"a5":     {148, 210},
	"letter": {215.9, 279.4},
	"legal":  {215.9, 355.6},
}

var sectionDefaults = SectionLayout{
	Title: TitleLayout{FontSize: 9, Height: 6, Align: "C", Border: "1"},
	Columns: ColumnLayout{
		Widths:    []float64{60, 60, 50},
		RowHeight: 5,
		FontSize:  8,
	},
}

// LoadFS walks the provided filesystem and parses JSON/YAML variant files.
// When fsys is nil or no variant files are present, the returned store is
// empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{variants: make(map[string]Variant)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isVariantFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("variant: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for rawID, raw := range doc.Variants {
			id := strings.TrimSpace(rawID)
			if id == "" {
				return fmt.Errorf("variant: file %s defines an empty variant id", path)
			}
			if _, exists := store.variants[id]; exists {
				return fmt.Errorf("variant: duplicate variant %q (file %s)", id, path)
			}
			v, err := normaliseVariant(raw, id, path)
			if err != nil {
				return err
			}
			if raw.Default {
				if store.defaultName != "" {
					return fmt.Errorf("variant: %q and %q are both marked default", store.defaultName, id)
				}
				store.defaultName = id
			}
			store.variants[id] = v
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

type documentFile struct {
	Variants map[string]variantFile `json:"variants" yaml:"variants"`
}

type variantFile struct {
	Default      bool            `json:"default" yaml:"default"`
	Title        string          `json:"title" yaml:"title"`
	Description  string          `json:"description" yaml:"description"`
	RunningTitle string          `json:"runningTitle" yaml:"runningTitle"`
	Page         PageConfig      `json:"page" yaml:"page"`
	Header       HeaderLayout    `json:"header" yaml:"header"`
	Editable     []string        `json:"editable" yaml:"editable"`
	Sections     []SectionLayout `json:"sections" yaml:"sections"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("variant: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("variant: parse %s: %w", source, err)
	}
	return doc, nil
}

func normaliseVariant(raw variantFile, id, source string) (Variant, error) {
	v := Variant{
		ID:           id,
		Source:       source,
		Title:        strings.TrimSpace(raw.Title),
		Description:  SanitizeDescription(raw.Description),
		RunningTitle: strings.TrimSpace(raw.RunningTitle),
	}

	page, err := normalisePage(raw.Page)
	if err != nil {
		return Variant{}, fmt.Errorf("variant: %q (file %s): %w", id, source, err)
	}
	v.Page = page

	header, err := normaliseHeader(raw.Header, page)
	if err != nil {
		return Variant{}, fmt.Errorf("variant: %q (file %s): %w", id, source, err)
	}
	v.Header = header

	sections, err := normaliseSections(raw.Sections, page)
	if err != nil {
		return Variant{}, fmt.Errorf("variant: %q (file %s): %w", id, source, err)
	}
	v.Sections = sections

	editable, err := normaliseEditable(raw.Editable, v)
	if err != nil {
		return Variant{}, fmt.Errorf("variant: %q (file %s): %w", id, source, err)
	}
	v.Editable = editable

	return v, nil
}

func normalisePage(raw PageConfig) (PageConfig, error) {
	page := raw
	page.Size = strings.ToLower(strings.TrimSpace(page.Size))
	if page.Size == "" {
		page.Size = "a4"
	}
	dims, ok := pageSizes[page.Size]
	if !ok {
		return PageConfig{}, fmt.Errorf("unsupported page size %q", raw.Size)
	}

	page.Orientation = strings.ToUpper(strings.TrimSpace(page.Orientation))
	switch page.Orientation {
	case "", "P":
		page.Orientation = "P"
		page.Width, page.Height = dims[0], dims[1]
	case "L":
		page.Width, page.Height = dims[1], dims[0]
	default:
		return PageConfig{}, fmt.Errorf("unsupported orientation %q", raw.Orientation)
	}

	if strings.TrimSpace(page.FontFamily) == "" {
		page.FontFamily = "Helvetica"
	}
	if page.Margin == 0 {
		page.Margin = 10
	}
	if page.Margin < 0 || page.PrintableWidth() <= 0 {
		return PageConfig{}, fmt.Errorf("invalid page margin %v", raw.Margin)
	}
	return page, nil
}

func normaliseHeader(raw HeaderLayout, page PageConfig) (HeaderLayout, error) {
	header := raw
	header.Mode = strings.ToLower(strings.TrimSpace(header.Mode))
	if header.Mode == "" {
		header.Mode = HeaderPaired
	}
	if header.Mode != HeaderPaired && header.Mode != HeaderStacked {
		return HeaderLayout{}, fmt.Errorf("header: unknown mode %q", raw.Mode)
	}
	if header.Border == "" {
		header.Border = "1"
	}
	if len(header.Columns.Widths) == 0 {
		header.Columns.Widths = []float64{60, 60}
	}
	if header.Columns.RowHeight == 0 {
		header.Columns.RowHeight = 5
	}
	if header.Columns.FontSize == 0 {
		header.Columns.FontSize = 8
	}
	if err := validateColumns(header.Columns, 2, page); err != nil {
		return HeaderLayout{}, fmt.Errorf("header: %w", err)
	}
	return header, nil
}

func normaliseSections(raw []SectionLayout, page PageConfig) ([]SectionLayout, error) {
	seen := make(map[string]struct{}, len(raw))
	byID := make(map[string]SectionLayout, len(raw))
	for idx, entry := range raw {
		id := strings.TrimSpace(entry.ID)
		if id == "" {
			return nil, fmt.Errorf("section at index %d has no id", idx)
		}
		if id == catalog.SectionHeader {
			return nil, fmt.Errorf("section %q is configured under header", id)
		}
		if _, ok := catalog.SectionByID(id); !ok {
			return nil, fmt.Errorf("unknown section %q", id)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("duplicate section %q", id)
		}
		seen[id] = struct{}{}

		section, err := normaliseSection(entry, page)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", id, err)
		}
		section.ID = id
		byID[id] = section
	}

	// Sections print in catalog order regardless of how the file lists them.
	out := make([]SectionLayout, 0, len(byID))
	for _, known := range catalog.Sections() {
		section, ok := byID[known.ID]
		if !ok {
			if !known.Optional {
				return nil, fmt.Errorf("required section %q is missing", known.ID)
			}
			continue
		}
		out = append(out, section)
	}
	return out, nil
}

func normaliseSection(raw SectionLayout, page PageConfig) (SectionLayout, error) {
	section := raw
	if section.Title.FontSize == 0 {
		section.Title.FontSize = sectionDefaults.Title.FontSize
	}
	if section.Title.Height == 0 {
		section.Title.Height = sectionDefaults.Title.Height
	}
	section.Title.Align = strings.ToUpper(strings.TrimSpace(section.Title.Align))
	if section.Title.Align == "" {
		section.Title.Align = sectionDefaults.Title.Align
	}
	switch section.Title.Align {
	case "L", "C", "R":
	default:
		return SectionLayout{}, fmt.Errorf("title: unknown alignment %q", raw.Title.Align)
	}
	if section.Title.Border == "" {
		section.Title.Border = sectionDefaults.Title.Border
	}
	if section.Title.FontSize < 0 || section.Title.Height < 0 {
		return SectionLayout{}, fmt.Errorf("title: sizes must be positive")
	}

	if len(section.Columns.Widths) == 0 {
		section.Columns.Widths = append([]float64(nil), sectionDefaults.Columns.Widths...)
	}
	if section.Columns.RowHeight == 0 {
		section.Columns.RowHeight = sectionDefaults.Columns.RowHeight
	}
	if section.Columns.FontSize == 0 {
		section.Columns.FontSize = sectionDefaults.Columns.FontSize
	}
	if err := validateColumns(section.Columns, 3, page); err != nil {
		return SectionLayout{}, err
	}
	return section, nil
}

// validateColumns checks the widths the renderer will actually draw: want
// columns, padded when the layout lists fewer.
func validateColumns(cols ColumnLayout, want int, page PageConfig) error {
	if len(cols.Widths) < 2 {
		return fmt.Errorf("columns: need at least 2 widths, got %d", len(cols.Widths))
	}
	for idx, width := range cols.Widths {
		if width <= 0 {
			return fmt.Errorf("columns: width at index %d must be positive", idx)
		}
	}
	if cols.RowHeight < 0 || cols.FontSize < 0 {
		return fmt.Errorf("columns: row height and font size must be positive")
	}
	total := 0.0
	for idx := 0; idx < want; idx++ {
		total += cols.Width(idx)
	}
	if total > page.PrintableWidth() {
		return fmt.Errorf("columns: total width %.1f exceeds printable width %.1f", total, page.PrintableWidth())
	}
	return nil
}

func normaliseEditable(raw []string, v Variant) ([]string, error) {
	if len(raw) == 0 {
		for _, label := range catalog.Fields() {
			if section, _ := catalog.FieldSection(label); section == catalog.SectionHeader || v.Includes(section) {
				raw = append(raw, label)
			}
		}
	}

	wanted := make(map[string]struct{}, len(raw))
	for _, entry := range raw {
		label := strings.TrimSpace(entry)
		section, ok := catalog.FieldSection(label)
		if !ok {
			return nil, fmt.Errorf("editable: unknown field %q", entry)
		}
		if section != catalog.SectionHeader && !v.Includes(section) {
			return nil, fmt.Errorf("editable: field %q belongs to section %q which is not printed", label, section)
		}
		if _, dup := wanted[label]; dup {
			return nil, fmt.Errorf("editable: duplicate field %q", label)
		}
		wanted[label] = struct{}{}
	}

	// Keep catalog order so the form always lists fields the same way.
	out := make([]string, 0, len(wanted))
	for _, label := range catalog.Fields() {
		if _, ok := wanted[label]; ok {
			out = append(out, label)
		}
	}
	return out, nil
}

func isVariantFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
