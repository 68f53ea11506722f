package document

import "errors"

// ErrNoPage is recorded when a cell is drawn before AddPage.
var ErrNoPage = errors.New("document: cell drawn before the first page")

// Context is the drawing state threaded through each rendering step: the
// document under construction, the cursor and the current font. It follows
// the cell model of classic PDF table generators: a cell of width 0 extends
// to the right margin, and a line break returns to the left margin.
type Context struct {
	doc      *Document
	x, y     float64
	font     Font
	lastH    float64
	hasPage  bool
	finished bool
	err      error
}

// NewContext starts a document with the given title and page geometry.
func NewContext(title string, page Page) *Context {
	return &Context{
		doc: &Document{title: title, page: page},
		x:   page.Margin,
		y:   page.Margin,
	}
}

// X returns the cursor abscissa.
func (c *Context) X() float64 { return c.x }

// Y returns the cursor ordinate.
func (c *Context) Y() float64 { return c.y }

// Font returns the current font.
func (c *Context) Font() Font { return c.font }

// AddPage records a new page and moves the cursor to the top-left margin.
func (c *Context) AddPage() {
	if c.finished {
		return
	}
	c.doc.ops = append(c.doc.ops, Op{Kind: OpAddPage})
	c.hasPage = true
	c.x = c.doc.page.Margin
	c.y = c.doc.page.Margin
}

// SetFont switches the current font. Repeated calls with the same face are
// not recorded.
func (c *Context) SetFont(family, style string, size float64) {
	if c.finished {
		return
	}
	next := Font{Family: family, Style: style, Size: size}
	if next == c.font {
		return
	}
	c.font = next
	c.doc.ops = append(c.doc.ops, Op{Kind: OpSetFont, Font: next})
}

// Cell draws a cell at the cursor and advances it to the right.
func (c *Context) Cell(w, h float64, text, border, align string) {
	c.cell(w, h, text, border, align, false)
}

// CellLn draws a cell at the cursor and moves to the start of the next line.
func (c *Context) CellLn(w, h float64, text, border, align string) {
	c.cell(w, h, text, border, align, true)
}

// Ln moves the cursor to the left margin, h below the current line. A
// negative h reuses the height of the last cell.
func (c *Context) Ln(h float64) {
	if h < 0 {
		h = c.lastH
	}
	c.x = c.doc.page.Margin
	c.y += h
}

// Finish seals the document and returns it together with the first error
// recorded while drawing.
func (c *Context) Finish() (*Document, error) {
	c.finished = true
	return c.doc, c.err
}

func (c *Context) cell(w, h float64, text, border, align string, ln bool) {
	if c.finished {
		return
	}
	if !c.hasPage {
		if c.err == nil {
			c.err = ErrNoPage
		}
		return
	}
	if w == 0 {
		w = c.doc.page.Width - c.doc.page.Margin - c.x
	}
	c.doc.ops = append(c.doc.ops, Op{
		Kind:   OpCell,
		Font:   c.font,
		X:      c.x,
		Y:      c.y,
		W:      w,
		H:      h,
		Text:   text,
		Border: border,
		Align:  align,
	})
	c.lastH = h
	if ln {
		c.Ln(h)
		return
	}
	c.x += w
}
