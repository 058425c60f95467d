package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-html5input/pkg/attrs"
	"github.com/goliatone/go-html5input/pkg/config"
	"github.com/goliatone/go-html5input/pkg/resolver"
)

func TestLoad_YAML(t *testing.T) {
	cfg, err := config.Load(filepath.Join("testdata", "settings.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := config.Default()
	want.TagName = "field"
	want.ValidateTag = "rules"
	want.NameTags = []string{"form"}
	want.TypeInference = false
	want.Sanitize = true
	want.LogLevel = "debug"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	level, err := cfg.Level()
	if err != nil || level != slog.LevelDebug {
		t.Fatalf("level = %v, %v", level, err)
	}
}

func TestLoad_JSONC(t *testing.T) {
	cfg, err := config.Load(filepath.Join("testdata", "settings.jsonc"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := config.Default()
	want.PatternTag = "regex"
	want.GetterPrefixes = []string{"Get", "Read"}
	want.LogLevel = "warn"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		return path
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "missing file", path: filepath.Join(dir, "nope.yaml"), want: "read"},
		{name: "extension", path: write("cfg.toml", "x = 1"), want: "unsupported file extension"},
		{name: "bad yaml", path: write("bad.yaml", "tag_name: [oops"), want: "parse yaml"},
		{name: "bad tag name", path: write("tag.yml", "tag_name: html5-input"), want: "template identifier"},
		{name: "bad level", path: write("lvl.json", `{"log_level": "loud"}`), want: "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(tt.path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestConfig_ResolverOptions(t *testing.T) {
	cfg := config.Default()
	cfg.NameTags = []string{"form"}
	cfg.TypeInference = false

	type signup struct {
		Email string `form:"mail" validate:"required,email"`
	}
	r := resolver.New(cfg.ResolverOptions(nil)...)

	out, err := r.Render(attrs.New(), "user.mail", resolver.MapScope{"user": signup{Email: "a@b.c"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := map[string]string{"name": "user.mail", "value": "a@b.c", "required": "required"}
	if diff := cmp.Diff(want, out.Map()); diff != "" {
		t.Fatalf("attributes mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_EmptyInput(t *testing.T) {
	cfg := config.Default()
	if err := config.Decode([]byte("  \n"), config.FormatYAML, &cfg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(config.Default(), cfg); diff != "" {
		t.Fatalf("empty input changed config:\n%s", diff)
	}
}
