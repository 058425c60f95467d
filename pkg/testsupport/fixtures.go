package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/goliatone/go-html5input/pkg/attrs"
)

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents. Tests can assert
// the renderer returns and writes the same payload without duplicating buffer
// setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}

// ParseInputs tokenizes markup and returns the attributes of every `<input>`
// element in document order. Keys come back lower-cased, as a browser would
// see them.
func ParseInputs(t *testing.T, markup string) []map[string]string {
	t.Helper()

	var out []map[string]string
	tokenizer := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if err := tokenizer.Err(); err != nil && err != io.EOF {
				t.Fatalf("tokenize markup: %v", err)
			}
			return out
		case html.StartTagToken, html.SelfClosingTagToken:
			token := tokenizer.Token()
			if token.Data != "input" {
				continue
			}
			found := make(map[string]string, len(token.Attr))
			for _, attr := range token.Attr {
				found[attr.Key] = attr.Val
			}
			out = append(out, found)
		}
	}
}

// MustParseInput expects exactly one `<input>` element in markup.
func MustParseInput(t *testing.T, markup string) map[string]string {
	t.Helper()

	inputs := ParseInputs(t, markup)
	if len(inputs) != 1 {
		t.Fatalf("expected one input element, got %d in %q", len(inputs), markup)
	}
	return inputs[0]
}

// AssertAttributes compares an attribute set (ignoring order) with want.
func AssertAttributes(t *testing.T, want map[string]string, got *attrs.Set) {
	t.Helper()
	if diff := cmp.Diff(want, got.Map()); diff != "" {
		t.Fatalf("attributes mismatch (-want +got):\n%s", diff)
	}
}
