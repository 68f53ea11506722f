// Package pdftext reads generated certificates back into text rows. It is
// used by the CLI inspect command and by round-trip tests.
package pdftext

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNotPDF is returned when the input does not start with a PDF header.
var ErrNotPDF = errors.New("pdftext: input is not a PDF")

// CellSeparator joins the cells of one extracted row, matching
// document.Document.Lines.
const CellSeparator = " | "

const (
	rowTolerance = 2.0
	gapTolerance = 1.0
)

// Page holds the rows of one page, top to bottom.
type Page struct {
	Number int
	Rows   []string
}

// Result is the text content of a PDF.
type Result struct {
	Pages []Page
}

// PageCount returns the number of pages read.
func (r Result) PageCount() int {
	return len(r.Pages)
}

// Rows flattens every page into a single slice.
func (r Result) Rows() []string {
	var out []string
	for _, page := range r.Pages {
		out = append(out, page.Rows...)
	}
	return out
}

// Text returns every row separated by newlines.
func (r Result) Text() string {
	return strings.Join(r.Rows(), "\n")
}

// Extract parses data and groups the positioned text of every page into rows.
func Extract(data []byte) (result Result, err error) {
	if !IsPDF(data) {
		return Result{}, ErrNotPDF
	}

	// The reader panics on some malformed content streams.
	defer func() {
		if recovered := recover(); recovered != nil {
			result = Result{}
			err = fmt.Errorf("pdftext: malformed document: %v", recovered)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Result{}, fmt.Errorf("pdftext: open: %w", err)
	}

	total := reader.NumPage()
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		result.Pages = append(result.Pages, Page{
			Number: i,
			Rows:   groupRows(page.Content().Text),
		})
	}
	return result, nil
}

// IsPDF reports whether data starts with the PDF magic bytes.
func IsPDF(data []byte) bool {
	return len(data) >= 5 && string(data[:5]) == "%PDF-"
}

type row struct {
	y     float64
	texts []pdf.Text
}

// groupRows collects texts sharing a baseline, then splits each row into
// cells wherever consecutive glyphs leave a horizontal gap.
func groupRows(texts []pdf.Text) []string {
	var rows []row
	for _, t := range texts {
		if t.S == "" {
			continue
		}
		placed := false
		for i := range rows {
			if abs(rows[i].y-t.Y) < rowTolerance {
				rows[i].texts = append(rows[i].texts, t)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, row{y: t.Y, texts: []pdf.Text{t}})
		}
	}

	// PDF user space grows upwards.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].y > rows[j].y
	})

	out := make([]string, 0, len(rows))
	for _, r := range rows {
		if line := joinCells(r.texts); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func joinCells(texts []pdf.Text) string {
	sort.SliceStable(texts, func(i, j int) bool {
		return texts[i].X < texts[j].X
	})

	var cells []string
	var current strings.Builder
	end := 0.0
	for idx, t := range texts {
		if idx > 0 && t.X > end+gapTolerance {
			cells = appendCell(cells, current.String())
			current.Reset()
		}
		current.WriteString(t.S)
		if next := t.X + t.W; idx == 0 || next > end {
			end = next
		}
	}
	cells = appendCell(cells, current.String())
	return strings.Join(cells, CellSeparator)
}

func appendCell(cells []string, cell string) []string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return cells
	}
	return append(cells, cell)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
