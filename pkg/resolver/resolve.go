package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goliatone/go-html5input/pkg/model"
)

// Resolution is the outcome of walking a field path. The zero value means
// unresolved: no value and no field metadata.
type Resolution struct {
	Value    any
	HasValue bool
	Field    model.FieldDescriptor
}

// Resolved reports whether anything was found.
func (r Resolution) Resolved() bool {
	return r.HasValue || r.Field != nil
}

// ParsePath splits a dotted expression into segments. Empty expressions and
// empty segments ("user..name", ".name") are rejected.
func ParsePath(expr string) ([]string, bool) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, false
	}
	segments := strings.Split(expr, ".")
	for i, segment := range segments {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			return nil, false
		}
		segments[i] = segment
	}
	return segments, true
}

// Resolve walks expr starting from scope. Missing data of any kind yields
// the zero Resolution and a nil error; partial results are discarded. Only
// metadata access faults are returned as errors.
func (r *Resolver) Resolve(expr string, scope Scope) (Resolution, error) {
	segments, ok := ParsePath(expr)
	if !ok {
		r.debug("invalid field path", expr, "")
		return Resolution{}, nil
	}
	if scope == nil {
		r.debug("no scope", expr, segments[0])
		return Resolution{}, nil
	}

	root, found := scope.Lookup(segments[0])
	if !found || isNil(root) {
		r.debug("variable not in scope", expr, segments[0])
		return Resolution{}, nil
	}
	if len(segments) == 1 {
		return Resolution{Value: root, HasValue: true}, nil
	}

	current := root
	last := len(segments) - 1
	for i := 1; i <= last; i++ {
		field, err := r.describer.Describe(current, segments[i])
		if err != nil {
			if errors.Is(err, model.ErrMetadataAccess) {
				return Resolution{}, fmt.Errorf("resolver: field %q: %w", expr, err)
			}
			r.debug(err.Error(), expr, segments[i])
			return Resolution{}, nil
		}

		value, has := field.Value()
		if i == last {
			return Resolution{Value: value, HasValue: has && !isNil(value), Field: field}, nil
		}
		if !has || isNil(value) {
			r.debug("nil intermediate value", expr, segments[i])
			return Resolution{}, nil
		}
		current = value
	}
	return Resolution{}, nil
}

func (r *Resolver) debug(msg, expr, segment string) {
	if !r.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	r.logger.Debug("html5input: field unresolved",
		slog.String("reason", msg),
		slog.String("path", expr),
		slog.String("segment", segment),
	)
}
