package model

import (
	"errors"
	"strconv"
)

// ValueKind is the coarse declared type of a field, used to infer the input
// `type` attribute.
type ValueKind int

const (
	KindOther ValueKind = iota
	KindTextual
	KindNumeric
)

func (k ValueKind) String() string {
	switch k {
	case KindTextual:
		return "textual"
	case KindNumeric:
		return "numeric"
	default:
		return "other"
	}
}

var (
	// ErrFieldNotFound reports a path segment that names no field. It is
	// missing data, never a fault.
	ErrFieldNotFound = errors.New("model: field not found")

	// ErrMetadataAccess marks faults raised while reading field metadata,
	// such as a getter whose signature cannot be called without arguments.
	// Callers propagate these instead of degrading.
	ErrMetadataAccess = errors.New("model: metadata access fault")
)

// Bounds is an inclusive numeric range. Either side may be open.
type Bounds struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// ConstraintSet lists the constraints declared on a field. MinSize has no
// HTML attribute counterpart and is kept for callers that inspect the set.
type ConstraintSet struct {
	Required bool     `json:"required,omitempty"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Range    *Bounds  `json:"range,omitempty"`
	MinSize  *int     `json:"minSize,omitempty"`
	MaxSize  *int     `json:"maxSize,omitempty"`
	Match    *string  `json:"match,omitempty"`
	Email    bool     `json:"email,omitempty"`
	URL      bool     `json:"url,omitempty"`
	Password bool     `json:"password,omitempty"`
}

// IsZero reports whether no constraint is declared.
func (c ConstraintSet) IsZero() bool {
	return !c.Required && c.Min == nil && c.Max == nil && c.Range == nil &&
		c.MinSize == nil && c.MaxSize == nil && c.Match == nil &&
		!c.Email && !c.URL && !c.Password
}

// FieldDescriptor exposes one model field to the resolver. Implementations
// never panic; Value reports false when the field holds no value.
type FieldDescriptor interface {
	Value() (any, bool)
	Constraints() ConstraintSet
	Immutable() bool
	Kind() ValueKind
}

// FieldSource is implemented by model objects that describe their own
// fields. Field returns ErrFieldNotFound (or any non-fault error) for missing
// data and an error wrapping ErrMetadataAccess for faults.
type FieldSource interface {
	Field(name string) (FieldDescriptor, error)
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

// FormatNumber renders a bound without a trailing ".0" for whole numbers.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Static is a FieldDescriptor backed by plain values. It is useful for
// FieldSource implementations and tests.
type Static struct {
	Val      any
	HasVal   bool
	Rules    ConstraintSet
	ReadOnly bool
	ValKind  ValueKind
}

func (s Static) Value() (any, bool)         { return s.Val, s.HasVal }
func (s Static) Constraints() ConstraintSet { return s.Rules }
func (s Static) Immutable() bool            { return s.ReadOnly }
func (s Static) Kind() ValueKind            { return s.ValKind }
