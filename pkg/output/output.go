// Package output serializes a document.Document into PDF bytes and packages
// them as a downloadable artifact.
package output

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/goliatone/go-coagen/pkg/document"
)

const (
	// Filename is the download name of every generated certificate.
	Filename = "COA_Food_Filled.pdf"
	// ContentType is the MIME type of the artifact.
	ContentType = "application/pdf"
)

// DefaultCreationDate is stamped into the PDF info dictionary unless
// overridden, so equal documents serialize to equal bytes.
var DefaultCreationDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// ErrSerialize wraps every failure reported by the PDF backend.
var ErrSerialize = errors.New("output: serialize document")

// Artifact is a fully materialised download.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Option configures a Serializer.
type Option func(*Serializer)

// WithCompression toggles content stream compression.
func WithCompression(enabled bool) Option {
	return func(s *Serializer) {
		s.compress = enabled
	}
}

// WithCreationDate overrides the creation and modification dates written to
// the PDF metadata. A zero time keeps the default.
func WithCreationDate(t time.Time) Option {
	return func(s *Serializer) {
		if !t.IsZero() {
			s.created = t.UTC()
		}
	}
}

// WithCreator sets the creator entry of the PDF metadata.
func WithCreator(creator string) Option {
	return func(s *Serializer) {
		s.creator = strings.TrimSpace(creator)
	}
}

// Serializer replays documents onto go-pdf/fpdf.
type Serializer struct {
	compress bool
	created  time.Time
	creator  string
}

// NewSerializer constructs a Serializer with compression enabled.
func NewSerializer(options ...Option) *Serializer {
	s := &Serializer{
		compress: true,
		created:  DefaultCreationDate,
		creator:  "coagen",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Serialize renders doc into a complete PDF byte stream.
func (s *Serializer) Serialize(doc *document.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: document is nil", ErrSerialize)
	}

	page := doc.Page()
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: orientation(page.Orientation),
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: portraitWidth(page), Ht: portraitHeight(page)},
	})
	pdf.SetMargins(page.Margin, page.Margin, page.Margin)
	pdf.SetAutoPageBreak(false, page.Margin)
	pdf.SetCompression(s.compress)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(s.created)
	pdf.SetModificationDate(s.created)
	pdf.SetTitle(doc.Title(), true)
	if s.creator != "" {
		pdf.SetCreator(s.creator, true)
	}

	for _, op := range doc.Ops() {
		switch op.Kind {
		case document.OpAddPage:
			pdf.AddPage()
		case document.OpSetFont:
			pdf.SetFont(op.Font.Family, op.Font.Style, op.Font.Size)
		case document.OpCell:
			pdf.SetXY(op.X, op.Y)
			pdf.CellFormat(op.W, op.H, encodeText(op.Text), op.Border, 0, op.Align, false, 0, "")
		}
		if pdf.Err() {
			return nil, fmt.Errorf("%w: %v", ErrSerialize, pdf.Error())
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialize, err)
	}
	return buf.Bytes(), nil
}

// Dispatch serializes doc and wraps the bytes with the fixed filename and
// content type.
func (s *Serializer) Dispatch(doc *document.Document) (Artifact, error) {
	data, err := s.Serialize(doc)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{
		Filename:    Filename,
		ContentType: ContentType,
		Data:        data,
	}, nil
}

// encodeText converts UTF-8 into the Windows-1252 bytes expected by the core
// fonts. Runes outside the code page print as '?'.
func encodeText(text string) string {
	if isASCII(text) {
		return text
	}
	out := make([]byte, 0, len(text))
	for _, r := range text {
		b, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			b = '?'
		}
		out = append(out, b)
	}
	return string(out)
}

func isASCII(text string) bool {
	for i := 0; i < len(text); i++ {
		if text[i] >= 0x80 {
			return false
		}
	}
	return true
}

func orientation(value string) string {
	if strings.EqualFold(value, "L") {
		return "L"
	}
	return "P"
}

// fpdf takes the portrait size and swaps it for landscape pages.
func portraitWidth(page document.Page) float64 {
	if page.Width > page.Height {
		return page.Height
	}
	return page.Width
}

func portraitHeight(page document.Page) float64 {
	if page.Width > page.Height {
		return page.Width
	}
	return page.Height
}
