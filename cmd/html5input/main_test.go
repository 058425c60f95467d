package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-html5input/pkg/testsupport"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const openapiDoc = `openapi: 3.0.3
info: {title: Users, version: "1"}
paths: {}
components:
  schemas:
    User:
      type: object
      required: [name]
      properties:
        name: {type: string, maxLength: 8}
        email: {type: string, format: email}
`

func TestRun_DataFile(t *testing.T) {
	dir := t.TempDir()
	tpl := writeFile(t, dir, "form.tpl", `{% html5_input for="user.name" id="yourID" %}`)
	data := writeFile(t, dir, "data.yaml", "user:\n  name: alice\n")

	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"--template", tpl, "--data", data}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v (stderr: %s)", err, stderr.String())
	}

	want := "<input name=\"user.name\" value=\"alice\" id=\"yourID\">\n"
	if stdout.String() != want {
		t.Fatalf("unexpected output\nwant: %q\n got: %q", want, stdout.String())
	}
}

func TestRun_OpenAPIBinding(t *testing.T) {
	dir := t.TempDir()
	tpl := writeFile(t, dir, "form.tpl", `{% html5_input for="user.name" %}{% html5_input for="user.email" %}`)
	data := writeFile(t, dir, "data.json", `{"user": {"name": "alice"}}`)
	api := writeFile(t, dir, "api.yaml", openapiDoc)
	out := filepath.Join(dir, "out.html")

	var stdout, stderr bytes.Buffer
	args := []string{"-t", tpl, "-d", data, "--openapi", api, "--bind", "user=user", "-o", out}
	if err := run(context.Background(), args, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v (stderr: %s)", err, stderr.String())
	}
	if !strings.Contains(stderr.String(), "output written") {
		t.Fatalf("expected info log on stderr, got %q", stderr.String())
	}

	rendered, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := []map[string]string{
		{"name": "user.name", "value": "alice", "required": "required", "maxlength": "8", "type": "text"},
		{"name": "user.email", "type": "email"},
	}
	if diff := cmp.Diff(want, testsupport.ParseInputs(t, string(rendered))); diff != "" {
		t.Fatalf("inputs mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_ConfigAndVerbose(t *testing.T) {
	dir := t.TempDir()
	tpl := writeFile(t, dir, "form.html", `{% field for="user.missing" %}`)
	cfg := writeFile(t, dir, "settings.yaml", "tag_name: field\n")

	var stdout, stderr bytes.Buffer
	args := []string{"--template", tpl, "--config", cfg, "--verbose"}
	if err := run(context.Background(), args, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	if stdout.String() != "<input name=\"user.missing\">\n" {
		t.Fatalf("unexpected output %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "field unresolved") {
		t.Fatalf("expected debug log, got %q", stderr.String())
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	tpl := writeFile(t, dir, "form.tpl", `{% html5_input for="user.name" %}`)
	api := writeFile(t, dir, "api.yaml", openapiDoc)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "bind without openapi", args: []string{"-t", tpl, "--bind", "user=User"}, want: "--bind requires --openapi"},
		{name: "bad bind", args: []string{"-t", tpl, "--openapi", api, "--bind", "user"}, want: "invalid --bind"},
		{name: "unknown schema", args: []string{"-t", tpl, "--openapi", api, "--bind", "user=Order"}, want: `schema "Order" not found`},
		{name: "missing data", args: []string{"-t", tpl, "-d", filepath.Join(dir, "nope.yaml")}, want: "load data"},
		{name: "no extension", args: []string{"-t", filepath.Join(dir, "form")}, want: "needs a file extension"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := run(context.Background(), tt.args, &stdout, &stderr)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestRun_TemplatePrompt(t *testing.T) {
	dir := t.TempDir()
	tpl := writeFile(t, dir, "form.tpl", `{% html5_input for="title" %}`)

	restoreInteractive, restorePrompt := interactive, promptTemplate
	t.Cleanup(func() { interactive, promptTemplate = restoreInteractive, restorePrompt })

	interactive = func() bool { return false }
	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), nil, &stdout, &stderr); err == nil || !strings.Contains(err.Error(), "--template is required") {
		t.Fatalf("expected missing template error, got %v", err)
	}

	interactive = func() bool { return true }
	promptTemplate = func() (string, error) { return tpl, nil }
	if err := run(context.Background(), nil, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	if stdout.String() != "<input name=\"title\">\n" {
		t.Fatalf("unexpected output %q", stdout.String())
	}

	promptTemplate = func() (string, error) { return "", errors.New("interrupt") }
	if err := run(context.Background(), nil, &stdout, &stderr); err == nil {
		t.Fatalf("expected prompt error")
	}
}
