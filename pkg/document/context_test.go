package document_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-coagen/pkg/document"
)

var a4 = document.Page{Width: 210, Height: 297, Orientation: "P", Margin: 10}

func TestContext_CellModel(t *testing.T) {
	ctx := document.NewContext("Test", a4)
	ctx.AddPage()
	ctx.SetFont("Helvetica", "", 8)
	ctx.SetFont("Helvetica", "", 8)

	ctx.CellLn(0, 5, "Customer: Acme", "1", "")
	ctx.Cell(60, 6, "Moisture (%)", "1", "")
	ctx.Cell(60, 6, "less than 12%", "1", "")
	ctx.Cell(50, 6, "8.5", "1", "")
	ctx.Ln(-1)
	ctx.Ln(2)
	if ctx.X() != 10 || ctx.Y() != 23 {
		t.Fatalf("cursor = (%v, %v), want (10, 23)", ctx.X(), ctx.Y())
	}

	doc, err := ctx.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}

	var kinds []string
	for _, op := range doc.Ops() {
		kinds = append(kinds, op.Kind.String())
	}
	wantKinds := []string{"page", "font", "cell", "cell", "cell", "cell"}
	if diff := cmp.Diff(wantKinds, kinds); diff != "" {
		t.Fatalf("ops mismatch (-want +got):\n%s", diff)
	}

	cells := doc.Cells()
	if cells[0].W != 190 {
		t.Fatalf("zero width cell = %v, want the printable width", cells[0].W)
	}
	if cells[1].X != 10 || cells[1].Y != 15 || cells[2].X != 70 || cells[3].X != 130 {
		t.Fatalf("row cells misplaced: %+v", cells[1:])
	}

	wantLines := []string{"Customer: Acme", "Moisture (%) | less than 12% | 8.5"}
	if diff := cmp.Diff(wantLines, doc.Lines()); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	if doc.Bottom() != 21 {
		t.Fatalf("bottom = %v, want 21", doc.Bottom())
	}
	if doc.Title() != "Test" || doc.Page() != a4 {
		t.Fatalf("metadata mismatch: %q %+v", doc.Title(), doc.Page())
	}
}

func TestContext_CellBeforePage(t *testing.T) {
	ctx := document.NewContext("Test", a4)
	ctx.Cell(10, 5, "orphan", "", "")
	doc, err := ctx.Finish()
	if !errors.Is(err, document.ErrNoPage) {
		t.Fatalf("err = %v, want ErrNoPage", err)
	}
	if len(doc.Cells()) != 0 {
		t.Fatalf("orphan cell recorded")
	}
}

func TestContext_SealedAfterFinish(t *testing.T) {
	ctx := document.NewContext("Test", a4)
	ctx.AddPage()
	doc, _ := ctx.Finish()
	ctx.CellLn(0, 5, "late", "", "")
	ctx.AddPage()
	if len(doc.Ops()) != 1 {
		t.Fatalf("document changed after Finish: %d ops", len(doc.Ops()))
	}

	ops := doc.Ops()
	ops[0].Text = "mutated"
	if doc.Ops()[0].Text != "" {
		t.Fatalf("Ops must return a copy")
	}
}

func TestDocument_NilSafe(t *testing.T) {
	var doc *document.Document
	if doc.Title() != "" || doc.Ops() != nil || doc.Lines() != nil || doc.Bottom() != 0 {
		t.Fatalf("nil document must read as empty")
	}
}
