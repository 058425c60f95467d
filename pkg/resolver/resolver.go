package resolver

import (
	"io"
	"log/slog"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-html5input/pkg/attrs"
	"github.com/goliatone/go-html5input/pkg/model"
)

// ForAttribute is the reserved tag attribute holding the field path. It is
// matched case-insensitively and never copied to the output.
const ForAttribute = "for"

// Scope resolves the first segment of a field path, typically against the
// calling template's variables.
type Scope interface {
	Lookup(name string) (any, bool)
}

// ScopeFunc adapts a function to Scope.
type ScopeFunc func(name string) (any, bool)

func (f ScopeFunc) Lookup(name string) (any, bool) {
	if f == nil {
		return nil, false
	}
	return f(name)
}

// MapScope is a Scope backed by a map.
type MapScope map[string]any

func (m MapScope) Lookup(name string) (any, bool) {
	value, ok := m[name]
	return value, ok
}

// Option configures a Resolver.
type Option func(*config)

type config struct {
	logger        *slog.Logger
	describer     *model.Describer
	typeInference bool
	sanitize      bool
	policy        *bluemonday.Policy
}

// WithLogger routes debug output about degraded resolutions to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithDescriber overrides how Go values are described (tag names, getter
// prefixes).
func WithDescriber(describer *model.Describer) Option {
	return func(cfg *config) {
		if describer != nil {
			cfg.describer = describer
		}
	}
}

// WithTypeInference toggles deriving `type` from the field. Enabled by
// default.
func WithTypeInference(enabled bool) Option {
	return func(cfg *config) {
		cfg.typeInference = enabled
	}
}

// WithSanitizer passes the rendered element through a bluemonday policy.
// A nil policy selects attrs.DefaultPolicy.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		cfg.sanitize = true
		cfg.policy = policy
	}
}

// Resolver turns a field path plus tag attributes into an `<input>` element.
// It holds configuration only, so one value can serve concurrent renders.
type Resolver struct {
	logger        *slog.Logger
	describer     *model.Describer
	typeInference bool
	sanitize      bool
	policy        *bluemonday.Policy
}

// New constructs a Resolver applying any provided options.
func New(options ...Option) *Resolver {
	cfg := config{typeInference: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.describer == nil {
		cfg.describer = model.NewDescriber(model.DefaultOptions())
	}
	return &Resolver{
		logger:        cfg.logger,
		describer:     cfg.describer,
		typeInference: cfg.typeInference,
		sanitize:      cfg.sanitize,
		policy:        cfg.policy,
	}
}

var defaultResolver = New()

// Default returns the shared Resolver built with default options.
func Default() *Resolver {
	return defaultResolver
}

// Render resolves expr against scope using the default Resolver.
func Render(tag *attrs.Set, expr string, scope Scope) (*attrs.Set, error) {
	return defaultResolver.Render(tag, expr, scope)
}

// DataScope exposes the fields or keys of data as root variables, described
// with the resolver's describer. Scopes and string-keyed maps pass through.
func (r *Resolver) DataScope(data any) Scope {
	if r == nil {
		r = defaultResolver
	}
	switch v := data.(type) {
	case nil:
		return nil
	case Scope:
		return v
	case map[string]any:
		return MapScope(v)
	}
	return ScopeFunc(func(name string) (any, bool) {
		field, err := r.describer.Describe(data, name)
		if err != nil {
			r.debug(err.Error(), name, name)
			return nil, false
		}
		return field.Value()
	})
}
