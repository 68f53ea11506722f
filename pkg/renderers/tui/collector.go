package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-coagen/pkg/model"
)

// Collector prompts for each form field on a terminal.
type Collector struct {
	cfg config
}

// NewCollector constructs a Collector backed by survey unless another driver
// is supplied.
func NewCollector(options ...Option) *Collector {
	return &Collector{cfg: newConfig(options)}
}

// Collect asks once per field, in form order. The message is the label, the
// help text is the placeholder and prefill supplies defaults. The result has
// exactly one entry per field.
func (c *Collector) Collect(ctx context.Context, form model.FormModel, prefill model.ValueMap) (model.ValueMap, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if form.Title != "" {
		if err := c.cfg.driver.Info(ctx, c.cfg.theme.InfoPrefix+form.Title); err != nil {
			return nil, fmt.Errorf("tui: info: %w", err)
		}
	}

	values := make(model.ValueMap, len(form.Fields))
	for _, field := range form.Fields {
		value, err := c.cfg.driver.Input(ctx, InputConfig{
			Message: c.cfg.theme.PromptPrefix + field.Label,
			Help:    field.Placeholder,
			Default: prefill.Get(field.Name),
		})
		if err != nil {
			return nil, fmt.Errorf("tui: prompt %q: %w", field.Label, err)
		}
		values[field.Name] = value
	}

	if c.cfg.confirm {
		ok, err := c.cfg.driver.Confirm(ctx, ConfirmConfig{
			Message: "Generate PDF?",
			Default: true,
		})
		if err != nil {
			return nil, fmt.Errorf("tui: confirm: %w", err)
		}
		if !ok {
			return nil, ErrDeclined
		}
	}
	return values, nil
}

// SelectVariant asks which layout to use. current preselects an entry.
func (c *Collector) SelectVariant(ctx context.Context, ids []string, current string) (string, error) {
	if len(ids) == 0 {
		return "", errors.New("tui: no variants to choose from")
	}
	if len(ids) == 1 {
		return ids[0], nil
	}
	idx, err := c.cfg.driver.Select(ctx, SelectConfig{
		Message:      c.cfg.theme.PromptPrefix + "Certificate variant",
		Options:      ids,
		DefaultIndex: indexOf(ids, current),
	})
	if err != nil {
		return "", fmt.Errorf("tui: select variant: %w", err)
	}
	if idx < 0 || idx >= len(ids) {
		return "", fmt.Errorf("tui: select variant: index %d out of range", idx)
	}
	return ids[idx], nil
}
