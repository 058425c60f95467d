package html5input

import (
	internalLoader "github.com/goliatone/go-html5input/internal/openapi/loader"
	internalParser "github.com/goliatone/go-html5input/internal/openapi/parser"
	pkgopenapi "github.com/goliatone/go-html5input/pkg/openapi"
)

// NewLoader constructs an OpenAPI loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	cfg := pkgopenapi.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs an OpenAPI schema parser backed by kin-openapi.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	cfg := pkgopenapi.NewParserOptions(options...)
	return internalParser.New(cfg)
}
