package model

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

type structField struct {
	value     any
	hasValue  bool
	meta      TagMetadata
	kind      ValueKind
	immutable bool
}

func (f structField) Value() (any, bool)         { return f.value, f.hasValue }
func (f structField) Constraints() ConstraintSet { return f.meta.Constraints }
func (f structField) Immutable() bool            { return f.immutable }
func (f structField) Kind() ValueKind            { return f.kind }

func (d *Describer) describeStruct(holder, rv reflect.Value, name string) (FieldDescriptor, error) {
	sf, ok := d.matchField(rv.Type(), name)
	if !ok {
		return nil, fmt.Errorf("%w: %q on %s", ErrFieldNotFound, name, rv.Type())
	}

	kind := KindOf(sf.Type)
	meta := ConstraintsFromTags(sf.Tag.Get(d.opts.ValidateTag), sf.Tag.Get(d.opts.PatternTag), kind)
	field := structField{meta: meta, kind: kind, immutable: meta.ReadOnly}

	getter, found, err := d.findGetter(holder, rv, sf.Name)
	if err != nil {
		return nil, err
	}
	if found {
		value, ok := callGetter(getter)
		if !ok {
			return nil, fmt.Errorf("%w: getter for %q failed", ErrFieldNotFound, name)
		}
		field.value, field.hasValue = value, !isNil(value)
		if !sf.IsExported() {
			// Only reachable through its accessor, so form binding cannot set it.
			field.immutable = true
		}
		return field, nil
	}

	if !sf.IsExported() {
		return nil, fmt.Errorf("%w: %q is unexported on %s", ErrFieldNotFound, name, rv.Type())
	}
	fv, err := rv.FieldByIndexErr(sf.Index)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrFieldNotFound, name, err)
	}
	if !fv.CanInterface() {
		return nil, fmt.Errorf("%w: %q is not readable on %s", ErrFieldNotFound, name, rv.Type())
	}
	value := fv.Interface()
	field.value, field.hasValue = value, !isNil(value)
	return field, nil
}

// matchField finds the struct field for a path segment: the exact Go name,
// then a name tag (json, schema, form), then a case-insensitive Go name.
func (d *Describer) matchField(t reflect.Type, name string) (reflect.StructField, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return reflect.StructField{}, false
	}
	fields := reflect.VisibleFields(t)

	for _, sf := range fields {
		if sf.Name == name {
			return sf, true
		}
	}
	for _, tagName := range d.opts.NameTags {
		for _, sf := range fields {
			if tagFieldName(sf.Tag.Get(tagName)) == name {
				return sf, true
			}
		}
	}
	for _, sf := range fields {
		if strings.EqualFold(sf.Name, name) {
			return sf, true
		}
	}
	return reflect.StructField{}, false
}

func tagFieldName(tag string) string {
	if tag == "" || tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	return strings.TrimSpace(name)
}

// findGetter looks up Get<Name> (per prefix) and then <Name> on the value.
// A method that exists but cannot be called without arguments, or returns
// something other than (T) or (T, error), is a metadata access fault.
func (d *Describer) findGetter(holder, rv reflect.Value, fieldName string) (reflect.Value, bool, error) {
	receiver := rv
	switch {
	case holder.Kind() == reflect.Pointer:
		receiver = holder
	case rv.CanAddr():
		receiver = rv.Addr()
	default:
		// Struct values reached by copy (map entries, nested value fields)
		// still expose pointer-receiver accessors.
		ptr := reflect.New(rv.Type())
		ptr.Elem().Set(rv)
		receiver = ptr
	}

	exported := upperFirst(fieldName)
	candidates := make([]string, 0, len(d.opts.GetterPrefixes)+1)
	for _, prefix := range d.opts.GetterPrefixes {
		candidates = append(candidates, prefix+exported)
	}
	if exported != fieldName {
		candidates = append(candidates, exported)
	}

	for _, candidate := range candidates {
		method := receiver.MethodByName(candidate)
		if !method.IsValid() {
			continue
		}
		if err := checkGetterShape(method.Type()); err != nil {
			return reflect.Value{}, false, fmt.Errorf("%w: %s.%s %v", ErrMetadataAccess, rv.Type(), candidate, err)
		}
		return method, true, nil
	}
	return reflect.Value{}, false, nil
}

func checkGetterShape(mt reflect.Type) error {
	if mt.NumIn() != 0 {
		return fmt.Errorf("takes %d argument(s), accessors take none", mt.NumIn())
	}
	switch mt.NumOut() {
	case 1:
		return nil
	case 2:
		if mt.Out(1).Implements(errorType) {
			return nil
		}
		return fmt.Errorf("second result %s is not an error", mt.Out(1))
	default:
		return fmt.Errorf("returns %d values, accessors return (T) or (T, error)", mt.NumOut())
	}
}

// callGetter invokes an accessor. A panicking accessor or a non-nil error
// result reports ok=false.
func callGetter(method reflect.Value) (value any, ok bool) {
	defer func() {
		if recover() != nil {
			value, ok = nil, false
		}
	}()

	out := method.Call(nil)
	if len(out) == 2 && !out[1].IsNil() {
		return nil, false
	}
	if !out[0].CanInterface() {
		return nil, false
	}
	return out[0].Interface(), true
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
