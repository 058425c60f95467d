// Package template defines the engine contract for template integrations of
// the `<input>` resolver. The gotemplate subpackage provides a pongo2 engine
// with an `html5_input` tag; the htmltemplate subpackage exposes the same
// behaviour as an html/template function.
package template
