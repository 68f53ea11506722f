package document

import (
	"sort"
	"strings"
)

// OpKind enumerates the drawing operations a Document can hold.
type OpKind int

const (
	OpAddPage OpKind = iota
	OpSetFont
	OpCell
)

func (k OpKind) String() string {
	switch k {
	case OpAddPage:
		return "page"
	case OpSetFont:
		return "font"
	case OpCell:
		return "cell"
	default:
		return "unknown"
	}
}

// Font identifies a core font face.
type Font struct {
	Family string
	Style  string
	Size   float64
}

// Page describes the page geometry in millimetres.
type Page struct {
	Width       float64
	Height      float64
	Orientation string
	Margin      float64
}

// Op is a single drawing step. Cells carry absolute positions so a
// serializer never needs its own cursor.
type Op struct {
	Kind   OpKind
	Font   Font
	X      float64
	Y      float64
	W      float64
	H      float64
	Text   string
	Border string
	Align  string
}

// Document is an immutable, ordered sequence of drawing operations.
type Document struct {
	title string
	page  Page
	ops   []Op
}

// Title returns the document title used for PDF metadata.
func (d *Document) Title() string {
	if d == nil {
		return ""
	}
	return d.title
}

// Page returns the page geometry.
func (d *Document) Page() Page {
	if d == nil {
		return Page{}
	}
	return d.page
}

// Ops returns a copy of the recorded operations.
func (d *Document) Ops() []Op {
	if d == nil {
		return nil
	}
	return append([]Op(nil), d.ops...)
}

// Cells returns only the cell operations, in emission order.
func (d *Document) Cells() []Op {
	if d == nil {
		return nil
	}
	var out []Op
	for _, op := range d.ops {
		if op.Kind == OpCell {
			out = append(out, op)
		}
	}
	return out
}

// Texts returns the text of every cell in emission order, including empty
// value cells.
func (d *Document) Texts() []string {
	cells := d.Cells()
	out := make([]string, len(cells))
	for i, cell := range cells {
		out[i] = cell.Text
	}
	return out
}

// Lines groups cells sharing a baseline and joins their text with " | ",
// top to bottom. It is the text a reader sees, row by row.
func (d *Document) Lines() []string {
	cells := d.Cells()
	if len(cells) == 0 {
		return nil
	}

	type row struct {
		y     float64
		cells []Op
	}
	var rows []*row
	index := make(map[float64]*row)
	for _, cell := range cells {
		r, ok := index[cell.Y]
		if !ok {
			r = &row{y: cell.Y}
			index[cell.Y] = r
			rows = append(rows, r)
		}
		r.cells = append(r.cells, cell)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].y < rows[j].y })

	out := make([]string, 0, len(rows))
	for _, r := range rows {
		sort.SliceStable(r.cells, func(i, j int) bool { return r.cells[i].X < r.cells[j].X })
		parts := make([]string, len(r.cells))
		for i, cell := range r.cells {
			parts[i] = cell.Text
		}
		out = append(out, strings.Join(parts, " | "))
	}
	return out
}

// Bottom reports the lowest y coordinate reached by any cell.
func (d *Document) Bottom() float64 {
	bottom := 0.0
	for _, cell := range d.Cells() {
		if end := cell.Y + cell.H; end > bottom {
			bottom = end
		}
	}
	return bottom
}
