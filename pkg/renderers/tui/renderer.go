package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-coagen/pkg/model"
	"github.com/goliatone/go-coagen/pkg/render"
)

// Renderer implements render.Renderer for terminal sessions: it prompts for
// every field and returns the collected values as a document that can be fed
// back through a values file.
type Renderer struct {
	collector *Collector
}

// New constructs a terminal renderer with defaults (survey driver, JSON
// output).
func New(options ...Option) (render.Renderer, error) {
	return &Renderer{collector: NewCollector(options...)}, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.collector.cfg.outputFormat {
	case OutputFormatYAML:
		return "application/yaml"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts for the form and serializes the answers. opts.Values
// prefill the prompts.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	values, err := r.collector.Collect(ctx, form, model.ValueMap(opts.Values))
	if err != nil {
		return nil, err
	}
	return r.serialize(form, values)
}

func (r *Renderer) serialize(form model.FormModel, values model.ValueMap) ([]byte, error) {
	switch r.collector.cfg.outputFormat {
	case OutputFormatYAML:
		// A node keeps the form order, which a plain map would lose.
		node := &yaml.Node{Kind: yaml.MappingNode}
		for _, field := range form.Fields {
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: field.Name},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: values[field.Name]},
			)
		}
		out, err := yaml.Marshal(node)
		if err != nil {
			return nil, fmt.Errorf("tui: encode yaml: %w", err)
		}
		return out, nil
	case OutputFormatPrettyText:
		var b strings.Builder
		for _, field := range form.Fields {
			fmt.Fprintf(&b, "%s: %s\n", field.Label, values[field.Name])
		}
		return []byte(b.String()), nil
	default:
		out, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: encode json: %w", err)
		}
		return out, nil
	}
}
