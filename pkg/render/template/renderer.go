package template

import (
	"io"
)

// TemplateRenderer is the engine contract shared by the template adapters.
// Render picks inline content or a named template, RenderTemplate and
// RenderString force one or the other.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
