// Package coagen is the top-level entry point of the Certificate of Analysis
// generator: it re-exports the orchestrator and the embedded assets.
package coagen

import (
	"context"
	"fmt"
	"os"

	"github.com/goliatone/go-coagen/pkg/collect"
	"github.com/goliatone/go-coagen/pkg/model"
	"github.com/goliatone/go-coagen/pkg/orchestrator"
	"github.com/goliatone/go-coagen/pkg/output"
	"github.com/goliatone/go-coagen/pkg/render"
	theme "github.com/goliatone/go-theme"
)

// RenderOptions describes per-request overrides for form pages.
type RenderOptions = render.RenderOptions

// ValueMap maps field labels to user supplied text.
type ValueMap = model.ValueMap

// Artifact is a generated certificate ready for download.
type Artifact = output.Artifact

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate renders the certificate for values using the named variant (empty
// for the default) and returns the PDF artifact.
func Generate(ctx context.Context, variantID string, values map[string]string, options ...orchestrator.Option) (Artifact, error) {
	gen := orchestrator.New(options...)
	result, err := gen.Generate(ctx, orchestrator.Request{
		Variant: variantID,
		Values:  collect.Map(values),
	})
	if err != nil {
		return Artifact{}, err
	}
	return result.Artifact, nil
}

// GenerateFile is Generate followed by writing the PDF to path. An empty path
// writes output.Filename in the working directory.
func GenerateFile(ctx context.Context, path, variantID string, values map[string]string, options ...orchestrator.Option) (string, error) {
	artifact, err := Generate(ctx, variantID, values, options...)
	if err != nil {
		return "", err
	}
	if path == "" {
		path = artifact.Filename
	}
	if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
		return "", fmt.Errorf("coagen: write %s: %w", path, err)
	}
	return path, nil
}

// RenderFormHTML renders the HTML input form of a variant.
func RenderFormHTML(ctx context.Context, variantID string, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.RenderForm(ctx, orchestrator.FormRequest{
		Variant:       variantID,
		RenderOptions: opts,
	})
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// the form page receives resolved tokens and assets.
func WithThemeSelector(selector theme.ThemeSelector, defaultTheme, defaultVariant string) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector, defaultTheme, defaultVariant)
}
