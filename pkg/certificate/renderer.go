// Package certificate lays out a Certificate of Analysis. The drawing script
// is fixed; a variant.Variant decides which fields are editable, which
// optional sections appear and the geometry of every section.
package certificate

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-coagen/pkg/catalog"
	"github.com/goliatone/go-coagen/pkg/document"
	"github.com/goliatone/go-coagen/pkg/model"
	"github.com/goliatone/go-coagen/pkg/variant"
)

// DocumentTitle is written into the PDF metadata.
const DocumentTitle = "Certificate of Analysis"

// ErrOverflow is returned when a variant's layout runs past the bottom margin.
// Certificates are always a single page.
var ErrOverflow = errors.New("certificate: layout overflows the page")

// Renderer turns a ValueMap into a Document for a single variant. It holds
// no mutable state and can be shared between requests.
type Renderer struct {
	variant variant.Variant
}

// New returns a Renderer for v.
func New(v variant.Variant) *Renderer {
	return &Renderer{variant: v}
}

// Variant returns the variant the renderer draws.
func (r *Renderer) Variant() variant.Variant {
	return r.variant
}

// Render draws the certificate. Labels missing from values, or not editable
// in the variant, print as empty strings.
func (r *Renderer) Render(values model.ValueMap) (*document.Document, error) {
	v := r.variant
	ctx := document.NewContext(DocumentTitle, document.Page{
		Width:       v.Page.Width,
		Height:      v.Page.Height,
		Orientation: v.Page.Orientation,
		Margin:      v.Page.Margin,
	})

	ctx.AddPage()
	if v.RunningTitle != "" {
		r.runningTitle(ctx)
	}
	r.header(ctx, values)
	for _, section := range catalog.Sections() {
		layout, ok := v.Section(section.ID)
		if !ok {
			continue
		}
		r.section(ctx, section, layout, values)
	}

	doc, err := ctx.Finish()
	if err != nil {
		return nil, fmt.Errorf("certificate: %w", err)
	}
	if limit := v.Page.Height - v.Page.Margin; doc.Bottom() > limit {
		return nil, fmt.Errorf("%w: variant %q ends at %.1fmm, limit %.1fmm", ErrOverflow, v.ID, doc.Bottom(), limit)
	}
	return doc, nil
}

func (r *Renderer) value(values model.ValueMap, label string) string {
	if !r.variant.IsEditable(label) {
		return ""
	}
	return values.Get(label)
}

func (r *Renderer) runningTitle(ctx *document.Context) {
	header := r.variant.Header.Columns
	ctx.SetFont(r.variant.Page.FontFamily, "B", header.FontSize+4)
	ctx.CellLn(0, header.RowHeight+4, r.variant.RunningTitle, "", "C")
	ctx.Ln(2)
}

func (r *Renderer) header(ctx *document.Context, values model.ValueMap) {
	layout := r.variant.Header
	cols := layout.Columns
	ctx.SetFont(r.variant.Page.FontFamily, "", cols.FontSize)

	field := func(label string) string {
		return label + ": " + r.value(values, label)
	}

	if layout.Mode == variant.HeaderStacked {
		for _, label := range catalog.HeaderFields() {
			ctx.CellLn(0, cols.RowHeight, field(label), layout.Border, "")
		}
		return
	}

	fields := catalog.HeaderFields()
	ctx.CellLn(0, cols.RowHeight, field(fields[0]), layout.Border, "")
	for i := 1; i < len(fields); i += 2 {
		if i+1 >= len(fields) {
			ctx.CellLn(cols.Width(0), cols.RowHeight, field(fields[i]), layout.Border, "")
			break
		}
		ctx.Cell(cols.Width(0), cols.RowHeight, field(fields[i]), layout.Border, "")
		ctx.CellLn(cols.Width(1), cols.RowHeight, field(fields[i+1]), layout.Border, "")
	}
}

func (r *Renderer) section(ctx *document.Context, section catalog.Section, layout variant.SectionLayout, values model.ValueMap) {
	ctx.SetFont(r.variant.Page.FontFamily, "B", layout.Title.FontSize)
	ctx.CellLn(0, layout.Title.Height, section.Title, layout.Title.Border, layout.Title.Align)

	for _, row := range section.Rows {
		if row.HasSpec() {
			r.tableRow(ctx, layout.Columns, row.Label, row.Spec, r.value(values, row.Field), true)
			continue
		}
		r.tableRow(ctx, layout.Columns, row.Label, row.Literal, "", false)
	}
}

func (r *Renderer) tableRow(ctx *document.Context, cols variant.ColumnLayout, first, second, third string, withThird bool) {
	ctx.SetFont(r.variant.Page.FontFamily, "", cols.FontSize)
	ctx.Cell(cols.Width(0), cols.RowHeight, first, "1", "")
	ctx.Cell(cols.Width(1), cols.RowHeight, second, "1", "")
	if withThird {
		ctx.Cell(cols.Width(2), cols.RowHeight, third, "1", "")
	}
	ctx.Ln(-1)
}
