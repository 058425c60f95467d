// Package htmltemplate exposes the `<input>` resolver to html/template.
//
//	tmpl := template.New("form").Funcs(htmltemplate.FuncMap(nil))
//	{{ html5input . "user.name" "id" "yourID" "required" nil }}
//
// The dot is the scope: its struct fields, map keys, or FieldSource fields
// name the root variables of the path. Attribute arguments come in name,
// value pairs; a nil value marks a valueless attribute.
package htmltemplate

import (
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/goliatone/go-html5input/pkg/attrs"
	"github.com/goliatone/go-html5input/pkg/resolver"
)

// FuncName is the key FuncMap registers the helper under.
const FuncName = "html5input"

// ErrOddAttributes reports an attribute list without a value for its last
// name.
var ErrOddAttributes = errors.New("htmltemplate: attribute arguments must come in name/value pairs")

// FuncMap returns the helper bound to r, or to resolver.Default when r is
// nil.
func FuncMap(r *resolver.Resolver) template.FuncMap {
	if r == nil {
		r = resolver.Default()
	}
	return template.FuncMap{
		FuncName: func(data any, expr string, pairs ...any) (template.HTML, error) {
			return Input(r, data, expr, pairs...)
		},
	}
}

// Input renders the element for expr with data as scope.
func Input(r *resolver.Resolver, data any, expr string, pairs ...any) (template.HTML, error) {
	tag, err := tagAttributes(pairs)
	if err != nil {
		return "", err
	}
	if r == nil {
		r = resolver.Default()
	}
	markup, err := r.HTML(tag, expr, r.DataScope(data))
	if err != nil {
		return "", err
	}
	return template.HTML(markup), nil
}

func tagAttributes(pairs []any) (*attrs.Set, error) {
	if len(pairs)%2 != 0 {
		return nil, ErrOddAttributes
	}
	tag := attrs.New()
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("htmltemplate: attribute name at position %d must be a non-empty string, got %T", i, pairs[i])
		}
		switch value := pairs[i+1].(type) {
		case nil:
			tag.SetBare(name)
		case string:
			tag.Set(name, value)
		default:
			tag.Set(name, fmt.Sprint(value))
		}
	}
	return tag, nil
}
