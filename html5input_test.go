package html5input_test

import (
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-html5input"
	"github.com/goliatone/go-html5input/pkg/attrs"
	pkgopenapi "github.com/goliatone/go-html5input/pkg/openapi"
	"github.com/goliatone/go-html5input/pkg/render/template/gotemplate"
	"github.com/goliatone/go-html5input/pkg/testsupport"
)

type user struct {
	Name string `json:"name" validate:"required,max=8"`
}

func TestRender(t *testing.T) {
	var sb strings.Builder
	tag := attrs.FromPairs("for", "user.name", "id", "yourID", "class", "class1 class2")

	if err := html5input.Render(&sb, tag, "user.name", map[string]any{"user": user{Name: "alice"}}); err != nil {
		t.Fatalf("render: %v", err)
	}

	want := "<input name=\"user.name\" value=\"alice\" id=\"yourID\" class=\"class1 class2\" required=\"required\" maxlength=\"8\" type=\"text\">\n"
	if sb.String() != want {
		t.Fatalf("unexpected output\nwant: %q\n got: %q", want, sb.String())
	}
}

func TestOpenAPIModelsThroughEngine(t *testing.T) {
	models, err := html5input.LoadModels(
		testsupport.Context(),
		pkgopenapi.SourceFromFile(filepath.Join("testdata", "openapi.yaml")),
		nil,
	)
	if err != nil {
		t.Fatalf("load models: %v", err)
	}

	engine, err := html5input.NewEngine(gotemplate.WithFS(fstest.MapFS{}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	data := map[string]any{
		"user": models["User"].Bind(map[string]any{
			"id":      "u-1",
			"name":    "alice",
			"email":   "alice@example.com",
			"age":     30,
			"address": map[string]any{"city": "Porto"},
		}),
	}

	const tpl = `{% html5_input for="user.id" %}` +
		`{% html5_input for="user.name" %}` +
		`{% html5_input for="user.email" %}` +
		`{% html5_input for="user.age" %}` +
		`{% html5_input for="user.zip" %}` +
		`{% html5_input for="user.address.city" %}`

	out, err := engine.RenderString(tpl, data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := []map[string]string{
		{"name": "user.id", "value": "u-1", "readonly": "readonly", "type": "text"},
		{"name": "user.name", "value": "alice", "required": "required", "maxlength": "8", "type": "text"},
		{"name": "user.email", "value": "alice@example.com", "required": "required", "type": "email"},
		{"name": "user.age", "value": "30", "min": "1", "max": "120", "type": "number"},
		{"name": "user.zip", "pattern": "^[0-9]{5}$", "type": "text"},
		{"name": "user.address.city", "value": "Porto", "required": "required", "maxlength": "40", "type": "text"},
	}
	if diff := cmp.Diff(want, testsupport.ParseInputs(t, out)); diff != "" {
		t.Fatalf("inputs mismatch (-want +got):\n%s", diff)
	}
}
