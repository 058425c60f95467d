package resolver

import (
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/goliatone/go-html5input/pkg/attrs"
)

// Render builds the output attribute set for an `<input>` bound to expr.
//
// Synthesized `name` and `value` come first, then the explicit tag
// attributes in caller order, then constraint-derived attributes. `name` is
// the expression exactly as given, even when nothing resolves. The error is
// non-nil only for metadata access faults.
func (r *Resolver) Render(tag *attrs.Set, expr string, scope Scope) (*attrs.Set, error) {
	if r == nil {
		r = defaultResolver
	}
	explicit := explicitAttributes(tag)

	res, err := r.Resolve(expr, scope)
	if err != nil {
		return nil, err
	}

	out := attrs.New()
	if strings.TrimSpace(expr) != "" && !explicit.Has("name") {
		out.Set("name", expr)
	}
	if res.HasValue && !explicit.Has("value") {
		if value, ok := stringify(res.Value); ok {
			out.Set("value", value)
		}
	}
	for _, attr := range explicit.All() {
		out.Set(attr.Name, attr.Value)
	}

	if res.Field != nil {
		r.applyConstraints(out, tag, res.Field)
	}
	return out, nil
}

// Write renders the element for expr to w, followed by a newline.
func (r *Resolver) Write(w io.Writer, tag *attrs.Set, expr string, scope Scope) error {
	if r == nil {
		r = defaultResolver
	}
	out, err := r.Render(tag, expr, scope)
	if err != nil {
		return err
	}
	if r.sanitize {
		return attrs.WriteSanitizedInput(w, out, r.policy)
	}
	return attrs.WriteInput(w, out)
}

// HTML returns the rendered element as a string without the trailing
// newline.
func (r *Resolver) HTML(tag *attrs.Set, expr string, scope Scope) (string, error) {
	var sb strings.Builder
	if err := r.Write(&sb, tag, expr, scope); err != nil {
		return "", err
	}
	return strings.TrimSuffix(sb.String(), "\n"), nil
}

// explicitAttributes copies tag entries that carry a value, dropping the
// reserved `for` key in any letter case.
func explicitAttributes(tag *attrs.Set) *attrs.Set {
	out := attrs.New()
	for _, attr := range tag.All() {
		if strings.EqualFold(attr.Name, ForAttribute) || !attr.HasValue {
			continue
		}
		out.Set(attr.Name, attr.Value)
	}
	return out
}

// stringify renders a resolved value for the `value` attribute. Nil values
// and nil pointers produce nothing.
func stringify(value any) (string, bool) {
	if isNil(value) {
		return "", false
	}
	switch v := value.(type) {
	case string:
		return v, true
	case fmt.Stringer:
		return v.String(), true
	case error:
		return v.Error(), true
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
	}
	if !rv.CanInterface() {
		return "", false
	}

	switch v := rv.Interface().(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case []byte:
		return string(v), true
	case fmt.Stringer:
		return v.String(), true
	default:
		return fmt.Sprint(v), true
	}
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
