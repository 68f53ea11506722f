package variant

import (
	"embed"
	"io/fs"
)

//go:embed variants/*.yaml
var embeddedVariants embed.FS

// EmbeddedFS exposes the built-in variant definitions.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedVariants, "variants")
	if err != nil {
		return embeddedVariants
	}
	return sub
}

// Default loads the embedded variants.
func Default() (*Store, error) {
	return LoadFS(EmbeddedFS())
}
