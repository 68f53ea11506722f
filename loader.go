package coagen

import (
	"io/fs"

	"github.com/goliatone/go-coagen/pkg/model"
	"github.com/goliatone/go-coagen/pkg/variant"
)

// LoadVariants parses every JSON/YAML variant file in fsys.
func LoadVariants(fsys fs.FS) (*variant.Store, error) {
	return variant.LoadFS(fsys)
}

// NewBuilder constructs the form model builder while keeping the concrete
// type hidden from consumers.
func NewBuilder(options ...model.BuilderOption) model.Builder {
	return model.NewBuilder(options...)
}
