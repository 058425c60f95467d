package openapi

import "context"

// Parser extracts constraint models from the component schemas of an OpenAPI
// document.
type Parser interface {
	Models(ctx context.Context, doc Document) (Models, error)
}

// ParserOptions configures schema extraction.
type ParserOptions struct {
	// ResolveReferences allows $ref pointers to external documents. Local
	// component references are always followed.
	ResolveReferences bool

	// Validate runs the kin-openapi document validator before extraction.
	Validate bool
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithReferenceResolution toggles external reference resolution.
func WithReferenceResolution(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.ResolveReferences = enabled
	}
}

// WithValidation toggles document validation.
func WithValidation(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.Validate = enabled
	}
}

// NewParserOptions applies ParserOption functions and returns the resulting
// configuration.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{
		ResolveReferences: false,
		Validate:          true,
	}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}
