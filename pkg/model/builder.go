package model

import (
	"github.com/goliatone/go-coagen/internal/model"
	"github.com/goliatone/go-coagen/pkg/variant"
)

// Builder converts certificate variants into form models.
type Builder interface {
	Build(v variant.Variant) (FormModel, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	placeholder func(string) string
}

// WithPlaceholder overrides the input hint generation function.
func WithPlaceholder(fn func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.placeholder = fn
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		opt(&cfg)
	}

	internalOpts := model.Options{}
	if cfg.placeholder != nil {
		internalOpts.Placeholder = cfg.placeholder
	}

	return model.New(internalOpts)
}
