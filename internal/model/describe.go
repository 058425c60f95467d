package model

import (
	"fmt"
	"reflect"
	"strings"
)

// Options controls how Go values are described.
type Options struct {
	// ValidateTag names the struct tag carrying validator rules.
	ValidateTag string
	// PatternTag names the struct tag carrying the Match regular expression.
	PatternTag string
	// NameTags are consulted, in order, when a path segment does not match a
	// Go field name exactly.
	NameTags []string
	// GetterPrefixes are tried before the bare field name when looking for an
	// accessor method ("Get" finds GetName for field Name).
	GetterPrefixes []string
}

// DefaultOptions mirrors the go-playground/validator conventions.
func DefaultOptions() Options {
	return Options{
		ValidateTag:    "validate",
		PatternTag:     "pattern",
		NameTags:       []string{"json", "schema", "form"},
		GetterPrefixes: []string{"Get"},
	}
}

func (o Options) normalized() Options {
	def := DefaultOptions()
	if strings.TrimSpace(o.ValidateTag) == "" {
		o.ValidateTag = def.ValidateTag
	}
	if strings.TrimSpace(o.PatternTag) == "" {
		o.PatternTag = def.PatternTag
	}
	if o.NameTags == nil {
		o.NameTags = def.NameTags
	}
	if o.GetterPrefixes == nil {
		o.GetterPrefixes = def.GetterPrefixes
	}
	return o
}

// Describer produces field descriptors for arbitrary values.
type Describer struct {
	opts Options
}

// NewDescriber returns a Describer using opts; zero fields take defaults.
func NewDescriber(opts Options) *Describer {
	return &Describer{opts: opts.normalized()}
}

// Describe returns the descriptor for field name on obj. FieldSource
// implementations win, then structs (through pointers and interfaces), then
// maps keyed by strings. Anything else yields ErrFieldNotFound.
func (d *Describer) Describe(obj any, name string) (FieldDescriptor, error) {
	if d == nil {
		d = NewDescriber(Options{})
	}
	if obj == nil {
		return nil, fmt.Errorf("%w: %q on nil value", ErrFieldNotFound, name)
	}
	if source, ok := obj.(FieldSource); ok {
		return source.Field(name)
	}

	rv := reflect.ValueOf(obj)
	holder := rv
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, fmt.Errorf("%w: %q on nil value", ErrFieldNotFound, name)
		}
		holder = rv
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		return d.describeStruct(holder, rv, name)
	case reflect.Map:
		return describeMapKey(rv, name)
	default:
		return nil, fmt.Errorf("%w: %q on %s", ErrFieldNotFound, name, rv.Type())
	}
}

// Describe uses a default Describer.
func Describe(obj any, name string) (FieldDescriptor, error) {
	return defaultDescriber.Describe(obj, name)
}

var defaultDescriber = NewDescriber(Options{})

// KindOf classifies a declared Go type.
func KindOf(t reflect.Type) ValueKind {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return KindOther
	}
	switch t.Kind() {
	case reflect.String:
		return KindTextual
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return KindNumeric
	default:
		return KindOther
	}
}
