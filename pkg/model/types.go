package model

import internalmodel "github.com/goliatone/go-html5input/internal/model"

// ValueKind re-exports the internal ValueKind enumeration.
type ValueKind = internalmodel.ValueKind

const (
	KindOther   = internalmodel.KindOther
	KindTextual = internalmodel.KindTextual
	KindNumeric = internalmodel.KindNumeric
)

var (
	ErrFieldNotFound  = internalmodel.ErrFieldNotFound
	ErrMetadataAccess = internalmodel.ErrMetadataAccess
)

type Bounds = internalmodel.Bounds
type ConstraintSet = internalmodel.ConstraintSet
type FieldDescriptor = internalmodel.FieldDescriptor
type FieldSource = internalmodel.FieldSource
type Static = internalmodel.Static
type Options = internalmodel.Options
type Describer = internalmodel.Describer
type Rule = internalmodel.Rule

// NewDescriber constructs a Describer; zero Options fields take defaults.
func NewDescriber(opts Options) *Describer {
	return internalmodel.NewDescriber(opts)
}

// DefaultOptions returns the go-playground/validator tag conventions.
func DefaultOptions() Options {
	return internalmodel.DefaultOptions()
}

// Describe returns the descriptor for field name on obj using default
// options.
func Describe(obj any, name string) (FieldDescriptor, error) {
	return internalmodel.Describe(obj, name)
}

// ParseValidateTag splits a validator tag into rules.
func ParseValidateTag(tag string) []Rule {
	return internalmodel.ParseValidateTag(tag)
}

// Float, Int and String build optional constraint values.
func Float(v float64) *float64 { return internalmodel.Float(v) }
func Int(v int) *int           { return internalmodel.Int(v) }
func String(v string) *string  { return internalmodel.String(v) }

// FormatNumber renders a numeric bound the way attributes carry it.
func FormatNumber(v float64) string {
	return internalmodel.FormatNumber(v)
}
