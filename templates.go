package coagen

import (
	"io/fs"

	"github.com/goliatone/go-coagen/pkg/renderers/vanilla"
	"github.com/goliatone/go-coagen/pkg/variant"
)

// EmbeddedTemplates exposes the built-in form page templates so callers can
// reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// EmbeddedVariants exposes the built-in variant definitions.
func EmbeddedVariants() fs.FS {
	return variant.EmbeddedFS()
}

// AssetsFS exposes the stylesheet of the form page.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(coagen.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
