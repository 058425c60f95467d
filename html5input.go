// Package html5input renders HTML `<input>` elements whose validation
// attributes (`required`, `min`, `max`, `maxlength`, `pattern`, `type`,
// `readonly`) derive from the constraint metadata of the bound field.
//
// Template authors write one tag and the markup follows the model:
//
//	{% html5_input for="user.name" id="yourID" class="class1 class2" %}
//
// renders, for a field tagged `validate:"required,max=8"` holding "alice",
//
//	<input name="user.name" value="alice" id="yourID" class="class1 class2" required="required" maxlength="8" type="text">
//
// Struct tags in go-playground/validator syntax, maps and OpenAPI component
// schemas (see pkg/openapi) all serve as metadata sources. The pongo2 engine
// lives in pkg/render/template/gotemplate, the html/template helper in
// pkg/render/template/htmltemplate.
package html5input

import (
	"context"
	"fmt"
	"html/template"
	"io"

	"github.com/goliatone/go-html5input/pkg/attrs"
	pkgopenapi "github.com/goliatone/go-html5input/pkg/openapi"
	"github.com/goliatone/go-html5input/pkg/render/template/gotemplate"
	"github.com/goliatone/go-html5input/pkg/render/template/htmltemplate"
	"github.com/goliatone/go-html5input/pkg/resolver"
)

// Render writes the element for expr to w using the default resolver. data
// supplies the root variables: a map, a struct, a model.FieldSource or a
// resolver.Scope.
func Render(w io.Writer, tag *attrs.Set, expr string, data any) error {
	r := resolver.Default()
	return r.Write(w, tag, expr, r.DataScope(data))
}

// NewEngine constructs a pongo2 engine with the input tag registered.
func NewEngine(options ...gotemplate.Option) (*gotemplate.Engine, error) {
	return gotemplate.New(options...)
}

// FuncMap returns the html/template helper bound to r (or the default
// resolver when r is nil).
func FuncMap(r *resolver.Resolver) template.FuncMap {
	return htmltemplate.FuncMap(r)
}

// LoadModels loads an OpenAPI document and extracts its component schema
// models in one step.
func LoadModels(ctx context.Context, src pkgopenapi.Source, loaderOptions []pkgopenapi.LoaderOption, parserOptions ...pkgopenapi.ParserOption) (pkgopenapi.Models, error) {
	if src == nil {
		return nil, fmt.Errorf("html5input: openapi source is nil")
	}
	doc, err := NewLoader(loaderOptions...).Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("html5input: load %s: %w", src.Location(), err)
	}
	models, err := NewParser(parserOptions...).Models(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("html5input: parse %s: %w", src.Location(), err)
	}
	return models, nil
}
