package template

import "io"

// TemplateRenderer mirrors the github.com/goliatone/go-template engine
// contract. Renderers depend on this interface rather than on pongo2.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
