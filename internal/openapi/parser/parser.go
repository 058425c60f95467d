package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-html5input/pkg/model"
	pkgopenapi "github.com/goliatone/go-html5input/pkg/openapi"
)

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) *Parser {
	return &Parser{options: options}
}

// Models converts every object schema under components.schemas into a
// constraint model keyed by the component name.
func (p *Parser) Models(ctx context.Context, doc pkgopenapi.Document) (pkgopenapi.Models, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: p.options.ResolveReferences,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if p.options.Validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil, errors.New("openapi parser: document has no component schemas")
	}

	c := newConverter()
	models := make(pkgopenapi.Models, len(spec.Components.Schemas))
	for name, ref := range spec.Components.Schemas {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if ref == nil || ref.Value == nil || !isObject(ref.Value) {
			continue
		}
		models[name] = c.model(name, ref.Value)
	}
	if len(models) == 0 {
		return nil, errors.New("openapi parser: no object schemas extracted")
	}
	return models, nil
}

// converter memoizes models per schema so recursive references terminate.
type converter struct {
	seen map[*openapi3.Schema]*pkgopenapi.Model
}

func newConverter() *converter {
	return &converter{seen: make(map[*openapi3.Schema]*pkgopenapi.Model)}
}

func (c *converter) model(name string, schema *openapi3.Schema) *pkgopenapi.Model {
	if existing, ok := c.seen[schema]; ok {
		return existing
	}
	out := &pkgopenapi.Model{
		Name:       name,
		Properties: make(map[string]*pkgopenapi.Property),
	}
	c.seen[schema] = out
	c.collect(out, schema)
	return out
}

// collect adds the properties of schema and its allOf members to out. Later
// members never override properties already collected.
func (c *converter) collect(out *pkgopenapi.Model, schema *openapi3.Schema) {
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	for name, ref := range schema.Properties {
		if ref == nil || ref.Value == nil {
			continue
		}
		if _, exists := out.Properties[name]; exists {
			if required[name] {
				out.Properties[name].Rules.Required = true
			}
			continue
		}
		out.Properties[name] = c.property(name, refName(ref.Ref), ref.Value, required[name])
	}

	for _, ref := range schema.AllOf {
		if ref == nil || ref.Value == nil {
			continue
		}
		c.collect(out, ref.Value)
	}

	// Required names declared without a local property apply to inherited ones.
	for name := range required {
		if prop, ok := out.Properties[name]; ok {
			prop.Rules.Required = true
		}
	}
}

func (c *converter) property(name, ref string, schema *openapi3.Schema, required bool) *pkgopenapi.Property {
	typ := firstSchemaType(schema.Type)
	prop := &pkgopenapi.Property{
		Name:     name,
		Type:     typ,
		Format:   schema.Format,
		Kind:     kindOf(typ),
		ReadOnly: schema.ReadOnly,
	}

	rules := model.ConstraintSet{Required: required}
	if schema.Min != nil {
		rules.Min = model.Float(*schema.Min)
	}
	if schema.Max != nil {
		rules.Max = model.Float(*schema.Max)
	}
	if schema.MinLength > 0 {
		rules.MinSize = model.Int(int(schema.MinLength))
	}
	if schema.MaxLength != nil {
		rules.MaxSize = model.Int(int(*schema.MaxLength))
	}
	if pattern := strings.TrimSpace(schema.Pattern); pattern != "" {
		rules.Match = model.String(pattern)
	}
	switch strings.ToLower(schema.Format) {
	case "email", "idn-email":
		rules.Email = true
	case "uri", "url", "iri":
		rules.URL = true
	case "password":
		rules.Password = true
	}
	prop.Rules = rules

	if isObject(schema) {
		if ref == "" {
			ref = name
		}
		prop.Object = c.model(ref, schema)
	}
	return prop
}

func isObject(schema *openapi3.Schema) bool {
	if schema.Type != nil && schema.Type.Is(openapi3.TypeObject) {
		return true
	}
	return schema.Type == nil && (len(schema.Properties) > 0 || len(schema.AllOf) > 0)
}

func kindOf(typ string) model.ValueKind {
	switch typ {
	case openapi3.TypeString:
		return model.KindTextual
	case openapi3.TypeInteger, openapi3.TypeNumber:
		return model.KindNumeric
	default:
		return model.KindOther
	}
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	for _, value := range values {
		if value != openapi3.TypeNull {
			return value
		}
	}
	return values[0]
}

func refName(ref string) string {
	if ref == "" {
		return ""
	}
	if idx := strings.LastIndex(ref, "/"); idx >= 0 {
		return ref[idx+1:]
	}
	return ref
}
