// Package openapi exposes OpenAPI component schemas as a field metadata
// source for `<input>` rendering. Loader and parser contracts live here; the
// kin-openapi backed implementations live under internal/openapi so callers
// never handle kin-openapi types directly.
//
// A parsed Model binds to plain value maps (decoded JSON or YAML) and the
// resulting Object satisfies model.FieldSource:
//
//	models, _ := parser.Models(ctx, doc)
//	scope := resolver.MapScope{"user": models["User"].Bind(values)}
package openapi
