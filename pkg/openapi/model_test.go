package openapi_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-html5input/pkg/attrs"
	"github.com/goliatone/go-html5input/pkg/model"
	"github.com/goliatone/go-html5input/pkg/openapi"
	"github.com/goliatone/go-html5input/pkg/resolver"
)

func userModel() *openapi.Model {
	address := &openapi.Model{
		Name: "Address",
		Properties: map[string]*openapi.Property{
			"city": {Name: "city", Kind: model.KindTextual, Rules: model.ConstraintSet{Required: true}},
		},
	}
	return &openapi.Model{
		Name: "User",
		Properties: map[string]*openapi.Property{
			"name":    {Name: "name", Kind: model.KindTextual, Rules: model.ConstraintSet{MaxSize: model.Int(8)}},
			"id":      {Name: "id", Kind: model.KindTextual, ReadOnly: true},
			"address": {Name: "address", Object: address},
		},
	}
}

func TestObject_Field(t *testing.T) {
	obj := userModel().Bind(map[string]any{
		"name":    "alice",
		"address": map[string]any{"city": "Porto"},
	})

	name, err := obj.Field("Name")
	if err != nil {
		t.Fatalf("field: %v", err)
	}
	if value, ok := name.Value(); !ok || value != "alice" {
		t.Fatalf("value = %v, %v", value, ok)
	}
	if name.Kind() != model.KindTextual || *name.Constraints().MaxSize != 8 {
		t.Fatalf("unexpected descriptor %+v", name)
	}

	id, err := obj.Field("id")
	if err != nil {
		t.Fatalf("field: %v", err)
	}
	if _, ok := id.Value(); ok {
		t.Fatalf("absent value should not resolve")
	}
	if !id.Immutable() {
		t.Fatalf("readOnly property should be immutable")
	}

	addr, err := obj.Field("address")
	if err != nil {
		t.Fatalf("field: %v", err)
	}
	value, _ := addr.Value()
	nested, ok := value.(model.FieldSource)
	if !ok {
		t.Fatalf("nested value should bind to its sub-model, got %T", value)
	}
	city, err := nested.Field("city")
	if err != nil {
		t.Fatalf("nested field: %v", err)
	}
	if v, _ := city.Value(); v != "Porto" || !city.Constraints().Required {
		t.Fatalf("unexpected nested descriptor %+v", city)
	}
}

func TestObject_StringRendersValues(t *testing.T) {
	obj := userModel().Bind(map[string]any{
		"name":    "alice",
		"address": map[any]any{"city": "Porto"},
	})

	want := `{"address":{"city":"Porto"},"name":"alice"}`
	if got := obj.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}

	out, err := resolver.Render(attrs.New(), "user", resolver.MapScope{"user": obj})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got, _ := out.Get("value"); got != want {
		t.Fatalf("value = %q, want %q", got, want)
	}

	if got := userModel().Bind(nil).String(); got != "" {
		t.Fatalf("empty object String() = %q", got)
	}
}

func TestObject_UnknownProperty(t *testing.T) {
	_, err := userModel().Bind(nil).Field("nope")
	if !errors.Is(err, model.ErrFieldNotFound) {
		t.Fatalf("expected ErrFieldNotFound, got %v", err)
	}
}

func TestParseSource(t *testing.T) {
	src, err := openapi.ParseSource("https://example.com/api.yaml")
	if err != nil || src.Kind() != openapi.SourceKindURL {
		t.Fatalf("expected url source, got %v %v", src, err)
	}
	src, err = openapi.ParseSource("specs/api.yaml")
	if err != nil || src.Kind() != openapi.SourceKindFile {
		t.Fatalf("expected file source, got %v %v", src, err)
	}
	if _, err := openapi.ParseSource("  "); err == nil {
		t.Fatalf("expected error for empty location")
	}
}
