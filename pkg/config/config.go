// Package config loads resolver settings from YAML or JSONC files.
//
//	tag_name: html5_input
//	validate_tag: validate
//	pattern_tag: pattern
//	name_tags: [json, form]
//	getter_prefixes: [Get]
//	type_inference: true
//	sanitize: false
//	log_level: info
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-html5input/pkg/model"
	"github.com/goliatone/go-html5input/pkg/resolver"
)

// Config holds file-level settings. Fields absent from a file keep their
// Default values.
type Config struct {
	TagName        string   `json:"tag_name" yaml:"tag_name"`
	ValidateTag    string   `json:"validate_tag" yaml:"validate_tag"`
	PatternTag     string   `json:"pattern_tag" yaml:"pattern_tag"`
	NameTags       []string `json:"name_tags" yaml:"name_tags"`
	GetterPrefixes []string `json:"getter_prefixes" yaml:"getter_prefixes"`
	TypeInference  bool     `json:"type_inference" yaml:"type_inference"`
	Sanitize       bool     `json:"sanitize" yaml:"sanitize"`
	LogLevel       string   `json:"log_level" yaml:"log_level"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	opts := model.DefaultOptions()
	return Config{
		TagName:        "html5_input",
		ValidateTag:    opts.ValidateTag,
		PatternTag:     opts.PatternTag,
		NameTags:       opts.NameTags,
		GetterPrefixes: opts.GetterPrefixes,
		TypeInference:  true,
		LogLevel:       "info",
	}
}

// Load reads path, picking the format from its extension.
func Load(path string) (Config, error) {
	cfg := Default()
	if err := DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// DecodeFile decodes a YAML (.yaml, .yml) or JSON (.json, .jsonc) file into
// dst. JSON files may carry comments and trailing commas.
func DecodeFile(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	format, err := formatOf(path)
	if err != nil {
		return err
	}
	if err := Decode(data, format, dst); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	return nil
}

// Format names a supported encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

func formatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json", ".jsonc":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("config: unsupported file extension %q", filepath.Ext(path))
	}
}

// Decode unmarshals data in the given format into dst. Empty input leaves
// dst untouched.
func Decode(data []byte, format Format, dst any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, dst); err != nil {
			return fmt.Errorf("parse yaml: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(jsonc.ToJSON(data), dst); err != nil {
			return fmt.Errorf("parse json: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
	return nil
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	if strings.TrimSpace(c.TagName) == "" {
		return fmt.Errorf("tag_name is required")
	}
	for _, r := range c.TagName {
		if r != '_' && !(r >= 'a' && r <= 'z') && !(r >= 'A' && r <= 'Z') && !(r >= '0' && r <= '9') {
			return fmt.Errorf("tag_name %q must be a template identifier", c.TagName)
		}
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	raw := strings.TrimSpace(c.LogLevel)
	if raw == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// ModelOptions converts the tag settings for model.NewDescriber.
func (c Config) ModelOptions() model.Options {
	return model.Options{
		ValidateTag:    c.ValidateTag,
		PatternTag:     c.PatternTag,
		NameTags:       c.NameTags,
		GetterPrefixes: c.GetterPrefixes,
	}
}

// ResolverOptions converts the settings into resolver options. A nil logger
// keeps the resolver default.
func (c Config) ResolverOptions(logger *slog.Logger) []resolver.Option {
	opts := []resolver.Option{
		resolver.WithDescriber(model.NewDescriber(c.ModelOptions())),
		resolver.WithTypeInference(c.TypeInference),
		resolver.WithLogger(logger),
	}
	if c.Sanitize {
		opts = append(opts, resolver.WithSanitizer(nil))
	}
	return opts
}
