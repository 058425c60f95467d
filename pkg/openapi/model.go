package openapi

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-html5input/pkg/model"
)

// Models maps component schema names to their constraint models.
type Models map[string]*Model

// Names returns the model names in sorted order.
func (m Models) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the named model, ignoring letter case when no exact match
// exists.
func (m Models) Lookup(name string) (*Model, bool) {
	if found, ok := m[name]; ok && found != nil {
		return found, true
	}
	for key, found := range m {
		if strings.EqualFold(key, name) && found != nil {
			return found, true
		}
	}
	return nil, false
}

// Model describes the constraint metadata of an object schema.
type Model struct {
	Name       string
	Properties map[string]*Property
}

// Property holds the constraints of a single schema property. Object is set
// when the property is itself an object schema so value paths can descend.
type Property struct {
	Name     string
	Type     string
	Format   string
	Kind     model.ValueKind
	Rules    model.ConstraintSet
	ReadOnly bool
	Object   *Model
}

// Property returns the named property, falling back to a case-insensitive
// match.
func (m *Model) Property(name string) (*Property, bool) {
	if m == nil {
		return nil, false
	}
	if prop, ok := m.Properties[name]; ok && prop != nil {
		return prop, true
	}
	for key, prop := range m.Properties {
		if strings.EqualFold(key, name) && prop != nil {
			return prop, true
		}
	}
	return nil, false
}

// Bind pairs the model with a value map. Property values that are maps bind
// to the property's sub-model.
func (m *Model) Bind(values map[string]any) *Object {
	return &Object{model: m, values: values}
}

// Object is a value map interpreted through a Model. It implements
// model.FieldSource.
type Object struct {
	model  *Model
	values map[string]any
}

var _ model.FieldSource = (*Object)(nil)

// Model returns the bound model.
func (o *Object) Model() *Model {
	if o == nil {
		return nil
	}
	return o.model
}

// Field returns the descriptor for a schema property. Properties absent from
// the schema are missing data; properties absent from the value map resolve
// with metadata but no value.
func (o *Object) Field(name string) (model.FieldDescriptor, error) {
	if o == nil || o.model == nil {
		return nil, fmt.Errorf("openapi: %w: %q", model.ErrFieldNotFound, name)
	}
	prop, ok := o.model.Property(name)
	if !ok {
		return nil, fmt.Errorf("openapi: %w: %q on %s", model.ErrFieldNotFound, name, o.model.Name)
	}

	value, has := o.lookup(prop.Name)
	if has && prop.Object != nil {
		if nested, ok := asValueMap(value); ok {
			value = prop.Object.Bind(nested)
		}
	}
	return model.Static{
		Val:      value,
		HasVal:   has,
		Rules:    prop.Rules,
		ReadOnly: prop.ReadOnly,
		ValKind:  prop.Kind,
	}, nil
}

// String renders the bound values as JSON, so an object used directly as an
// input value never prints its address.
func (o *Object) String() string {
	if o == nil || o.values == nil {
		return ""
	}
	data, err := json.Marshal(jsonValue(o.values))
	if err != nil {
		return ""
	}
	return string(data)
}

// jsonValue rewrites YAML-decoded map[any]any values into string-keyed maps.
func jsonValue(value any) any {
	switch typed := value.(type) {
	case *Object:
		if typed == nil {
			return nil
		}
		return jsonValue(typed.values)
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, val := range typed {
			out[key] = jsonValue(val)
		}
		return out
	case map[any]any:
		if converted, ok := asValueMap(typed); ok {
			return jsonValue(converted)
		}
		return typed
	case []any:
		out := make([]any, len(typed))
		for i, val := range typed {
			out[i] = jsonValue(val)
		}
		return out
	default:
		return value
	}
}

func (o *Object) lookup(name string) (any, bool) {
	if o.values == nil {
		return nil, false
	}
	if value, ok := o.values[name]; ok {
		return value, value != nil
	}
	return nil, false
}

func asValueMap(value any) (map[string]any, bool) {
	switch typed := value.(type) {
	case map[string]any:
		return typed, true
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, val := range typed {
			str, ok := key.(string)
			if !ok {
				return nil, false
			}
			out[str] = val
		}
		return out, true
	default:
		return nil, false
	}
}
