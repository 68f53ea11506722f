package render

import (
	"context"

	"github.com/goliatone/go-coagen/pkg/model"
)

// Renderer converts a FormModel into a byte representation (an HTML page,
// a values document collected on a terminal, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormModel, options RenderOptions) ([]byte, error)
}
