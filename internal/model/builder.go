package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-coagen/pkg/catalog"
	"github.com/goliatone/go-coagen/pkg/variant"
)

// Builder converts variant definitions into form models.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Placeholder != nil {
		opts.Placeholder = options.Placeholder
	}
	return &Builder{opts: opts}
}

// Build lists the editable fields of v in print order.
func (b *Builder) Build(v variant.Variant) (FormModel, error) {
	if strings.TrimSpace(v.ID) == "" {
		return FormModel{}, errors.New("model: variant id is required")
	}

	form := FormModel{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		Metadata:    map[string]string{},
	}
	if v.RunningTitle != "" {
		form.Metadata["runningTitle"] = v.RunningTitle
	}
	if v.Source != "" {
		form.Metadata["source"] = v.Source
	}

	labels := make(map[string]struct{}, len(v.Editable))
	ids := make(map[string]string, len(v.Editable))
	for _, label := range v.Editable {
		if _, dup := labels[label]; dup {
			return FormModel{}, fmt.Errorf("model: duplicate field %q", label)
		}
		labels[label] = struct{}{}

		id := FieldID(label)
		if other, clash := ids[id]; clash {
			return FormModel{}, fmt.Errorf("model: fields %q and %q share id %q", other, label, id)
		}
		ids[id] = label

		section, ok := catalog.FieldSection(label)
		if !ok {
			return FormModel{}, fmt.Errorf("model: unknown field %q", label)
		}

		form.Fields = append(form.Fields, Field{
			Name:        label,
			ID:          id,
			Label:       label,
			Placeholder: b.opts.Placeholder(label),
			Section:     section,
		})
	}

	if len(form.Metadata) == 0 {
		form.Metadata = nil
	}
	return form, nil
}
