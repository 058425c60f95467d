package parser

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-html5input/pkg/model"
	pkgopenapi "github.com/goliatone/go-html5input/pkg/openapi"
)

func loadModels(t *testing.T, options ...pkgopenapi.ParserOption) pkgopenapi.Models {
	t.Helper()

	path := filepath.Join("testdata", "users.yaml")
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFile(path), raw)

	models, err := New(pkgopenapi.NewParserOptions(options...)).Models(context.Background(), doc)
	if err != nil {
		t.Fatalf("models: %v", err)
	}
	return models
}

func TestModels_ObjectSchemasOnly(t *testing.T) {
	models := loadModels(t)

	want := []string{"Address", "Admin", "User"}
	if diff := cmp.Diff(want, models.Names()); diff != "" {
		t.Fatalf("model names mismatch (-want +got):\n%s", diff)
	}
}

func TestModels_PropertyConstraints(t *testing.T) {
	user, ok := loadModels(t).Lookup("user")
	if !ok {
		t.Fatalf("expected case-insensitive lookup of User")
	}

	tests := []struct {
		name     string
		kind     model.ValueKind
		rules    model.ConstraintSet
		readOnly bool
	}{
		{name: "id", kind: model.KindTextual, readOnly: true},
		{name: "name", kind: model.KindTextual, rules: model.ConstraintSet{Required: true, MinSize: model.Int(2), MaxSize: model.Int(8)}},
		{name: "email", kind: model.KindTextual, rules: model.ConstraintSet{Required: true, Email: true}},
		{name: "homepage", kind: model.KindTextual, rules: model.ConstraintSet{URL: true}},
		{name: "secret", kind: model.KindTextual, rules: model.ConstraintSet{Password: true}},
		{name: "zip", kind: model.KindTextual, rules: model.ConstraintSet{Match: model.String("^[0-9]{5}$")}},
		{name: "age", kind: model.KindNumeric, rules: model.ConstraintSet{Min: model.Float(1), Max: model.Float(120)}},
		{name: "active", kind: model.KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prop, ok := user.Property(tt.name)
			if !ok {
				t.Fatalf("property %q not found", tt.name)
			}
			if prop.Kind != tt.kind {
				t.Fatalf("kind = %v, want %v", prop.Kind, tt.kind)
			}
			if prop.ReadOnly != tt.readOnly {
				t.Fatalf("readOnly = %v, want %v", prop.ReadOnly, tt.readOnly)
			}
			if diff := cmp.Diff(tt.rules, prop.Rules); diff != "" {
				t.Fatalf("rules mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestModels_NestedAndComposedSchemas(t *testing.T) {
	models := loadModels(t)

	address, ok := models["User"].Property("address")
	if !ok || address.Object == nil {
		t.Fatalf("expected address property bound to a sub-model")
	}
	if address.Object != models["Address"] {
		t.Fatalf("referenced schema should share the component model")
	}
	if address.Object.Name != "Address" {
		t.Fatalf("sub-model name = %q", address.Object.Name)
	}

	admin := models["Admin"]
	level, ok := admin.Property("level")
	if !ok || !level.Rules.Required {
		t.Fatalf("expected required level on Admin, got %+v", level)
	}
	name, ok := admin.Property("name")
	if !ok || !name.Rules.Required || name.Rules.MaxSize == nil || *name.Rules.MaxSize != 8 {
		t.Fatalf("expected inherited name constraints on Admin, got %+v", name)
	}
}

func TestModels_RecursiveReferences(t *testing.T) {
	const document = `{
  "openapi": "3.0.0",
  "info": { "title": "Cycle", "version": "1.0.0" },
  "paths": {},
  "components": {
    "schemas": {
      "PublishingHouse": {
        "type": "object",
        "properties": {
          "headquarters": { "$ref": "#/components/schemas/Headquarters" }
        }
      },
      "Headquarters": {
        "type": "object",
        "properties": {
          "publisher": { "$ref": "#/components/schemas/PublishingHouse" }
        }
      }
    }
  }
}`

	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFile("cycle.json"), []byte(document))
	models, err := New(pkgopenapi.NewParserOptions()).Models(context.Background(), doc)
	if err != nil {
		t.Fatalf("models: %v", err)
	}

	hq, ok := models["PublishingHouse"].Property("headquarters")
	if !ok || hq.Object == nil {
		t.Fatalf("expected headquarters sub-model")
	}
	back, ok := hq.Object.Property("publisher")
	if !ok || back.Object != models["PublishingHouse"] {
		t.Fatalf("cycle should point back at the PublishingHouse model")
	}
}

func TestModels_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "malformed", raw: "openapi: [unclosed"},
		{name: "no components", raw: `{"openapi":"3.0.0","info":{"title":"x","version":"1"},"paths":{}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFile("x.yaml"), []byte(tt.raw))
			if _, err := New(pkgopenapi.NewParserOptions()).Models(context.Background(), doc); err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFile("x.yaml"), []byte("openapi: 3.0.0"))
	if _, err := New(pkgopenapi.NewParserOptions()).Models(ctx, doc); err == nil {
		t.Fatalf("expected context error")
	}
}
