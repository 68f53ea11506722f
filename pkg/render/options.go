package render

import theme "github.com/goliatone/go-theme"

// Status kinds understood by renderers.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the form model.
type RenderOptions struct {
	// Action is the URL the form posts to.
	Action string
	// DownloadAction is the URL that streams the PDF directly.
	DownloadAction string
	// Values pre-populates inputs, keyed by field label.
	Values map[string]string
	// Hidden adds hidden inputs, e.g. the selected variant.
	Hidden []HiddenField
	// Variants lists the selectable certificate layouts.
	Variants []VariantOption
	// Status is shown above the form after a submission.
	Status *Status
	// Download links a generated artifact inline.
	Download *Download
	// Theme carries resolved theme tokens and CSS variables.
	Theme *theme.RendererConfig
}

// Status is a one-line outcome message.
type Status struct {
	Kind    string
	Message string
}

// Download is an inline artifact link.
type Download struct {
	Label       string
	Filename    string
	ContentType string
	URI         string
}

// VariantOption is one entry of the variant switcher.
type VariantOption struct {
	ID       string
	Title    string
	Selected bool
}
