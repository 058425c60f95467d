package resolver

import (
	"strconv"

	"github.com/goliatone/go-html5input/pkg/attrs"
	"github.com/goliatone/go-html5input/pkg/model"
)

// applyConstraints fills validation attributes from field metadata. Every
// write is fill-only, so explicit tag attributes and earlier rules win. The
// order is fixed: readonly, required, min, max, range, maxlength, pattern,
// type.
func (r *Resolver) applyConstraints(out, tag *attrs.Set, field model.FieldDescriptor) {
	rules := field.Constraints()

	if field.Immutable() || tag.Has("readonly") {
		out.Fill("readonly", "readonly")
	}
	if rules.Required {
		out.Fill("required", "required")
	}
	if rules.Min != nil {
		out.Fill("min", model.FormatNumber(*rules.Min))
	}
	if rules.Max != nil {
		out.Fill("max", model.FormatNumber(*rules.Max))
	}
	if rules.Range != nil {
		if rules.Range.Min != nil {
			out.Fill("min", model.FormatNumber(*rules.Range.Min))
		}
		if rules.Range.Max != nil {
			out.Fill("max", model.FormatNumber(*rules.Range.Max))
		}
	}
	// MinSize has no HTML5 attribute counterpart.
	if rules.MaxSize != nil {
		out.Fill("maxlength", strconv.Itoa(*rules.MaxSize))
	}
	if rules.Match != nil {
		out.Fill("pattern", *rules.Match)
	}

	if !r.typeInference || out.Has("type") {
		return
	}
	if inputType := inferType(rules, field.Kind()); inputType != "" {
		out.Set("type", inputType)
	}
}

func inferType(rules model.ConstraintSet, kind model.ValueKind) string {
	switch {
	case rules.URL:
		return "url"
	case rules.Email:
		return "email"
	case rules.Password:
		return "password"
	case kind == model.KindTextual:
		return "text"
	case kind == model.KindNumeric:
		return "number"
	default:
		return ""
	}
}
