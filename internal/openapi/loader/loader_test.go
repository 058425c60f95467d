package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	pkgopenapi "github.com/goliatone/go-html5input/pkg/openapi"
)

const stub = "openapi: 3.0.3\n"

func TestLoader_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.yaml")
	if err := os.WriteFile(path, []byte(stub), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	doc, err := New(pkgopenapi.NewLoaderOptions()).Load(context.Background(), pkgopenapi.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != stub {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}
	if doc.Location() != path {
		t.Fatalf("location = %q, want %q", doc.Location(), path)
	}
}

func TestLoader_FS(t *testing.T) {
	files := fstest.MapFS{"specs/api.yaml": &fstest.MapFile{Data: []byte(stub)}}
	loader := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithFileSystem(files)))

	doc, err := loader.Load(context.Background(), pkgopenapi.SourceFromFS("specs/api.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != stub {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}

	if _, err := New(pkgopenapi.NewLoaderOptions()).Load(context.Background(), pkgopenapi.SourceFromFS("specs/api.yaml")); err == nil {
		t.Fatalf("expected error without a filesystem")
	}
}

func TestLoader_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(stub))
	}))
	defer server.Close()

	src := pkgopenapi.SourceFromURL(server.URL + "/api.yaml")

	if _, err := New(pkgopenapi.NewLoaderOptions()).Load(context.Background(), src); err == nil {
		t.Fatalf("expected http to be disabled by default")
	}

	loader := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithHTTPClient(server.Client())))
	doc, err := loader.Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != stub {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}

	_, err = loader.Load(context.Background(), pkgopenapi.SourceFromURL(server.URL+"/missing"))
	if err == nil || !strings.Contains(err.Error(), "unexpected status") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestLoader_MaxBytes(t *testing.T) {
	files := fstest.MapFS{"api.yaml": &fstest.MapFile{Data: []byte(stub)}}
	loader := New(pkgopenapi.NewLoaderOptions(
		pkgopenapi.WithFileSystem(files),
		pkgopenapi.WithMaxBytes(4),
	))

	_, err := loader.Load(context.Background(), pkgopenapi.SourceFromFS("api.yaml"))
	if err == nil || !strings.Contains(err.Error(), "exceeds") {
		t.Fatalf("expected size error, got %v", err)
	}
}

func TestLoader_NilSource(t *testing.T) {
	if _, err := New(pkgopenapi.NewLoaderOptions()).Load(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil source")
	}
}
