package uischema

import (
	"fmt"
	"strings"

	pkgmodel "github.com/goliatone/go-coagen/pkg/model"
	"github.com/goliatone/go-coagen/pkg/variant"
)

const labelToken = "{label}"

// Decorator applies overlays to form models.
type Decorator struct {
	store *Store
}

// NewDecorator builds a Decorator backed by the provided store. When store is
// nil or empty, the decorator becomes a no-op.
func NewDecorator(store *Store) *Decorator {
	return &Decorator{store: store}
}

// Decorate applies the wildcard overlay and then the overlay registered for
// form.ID. Fields named by the wildcard but absent from the form are
// skipped; a variant overlay naming a missing field is an error.
func (d *Decorator) Decorate(form *pkgmodel.FormModel) error {
	if d == nil || d.store.Empty() || form == nil {
		return nil
	}

	if overlay, ok := d.store.Form(Wildcard); ok {
		if err := apply(form, overlay, false); err != nil {
			return err
		}
	}
	if overlay, ok := d.store.Form(form.ID); ok {
		if err := apply(form, overlay, true); err != nil {
			return err
		}
	}
	return nil
}

func apply(form *pkgmodel.FormModel, overlay Form, strict bool) error {
	if overlay.Form.Title != "" {
		form.Title = overlay.Form.Title
	}
	if desc := variant.SanitizeDescription(overlay.Form.Description); desc != "" {
		form.Description = desc
	}
	if len(overlay.Form.Metadata) > 0 {
		if form.Metadata == nil {
			form.Metadata = make(map[string]string, len(overlay.Form.Metadata))
		}
		for k, v := range overlay.Form.Metadata {
			form.Metadata[k] = v
		}
	}

	if strict {
		for label := range overlay.Fields {
			if !form.Has(label) {
				return fmt.Errorf("uischema: form %q (file %s) configures field %q which the variant does not edit", overlay.ID, overlay.Source, label)
			}
		}
	}

	for idx := range form.Fields {
		field := &form.Fields[idx]
		cfg, ok := overlay.Fields[field.Name]
		if cfg.Label != "" {
			field.Label = cfg.Label
		}

		pattern := overlay.Form.Placeholder
		if ok && cfg.Placeholder != "" {
			pattern = cfg.Placeholder
		}
		if pattern != "" {
			field.Placeholder = strings.ReplaceAll(pattern, labelToken, field.Label)
		}
	}
	return nil
}
