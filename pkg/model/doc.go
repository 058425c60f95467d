// Package model defines the field metadata the resolver consumes. A
// FieldDescriptor exposes a field's current value, its ConstraintSet, whether
// it is immutable and its coarse ValueKind. Descriptors come from three
// places: objects implementing FieldSource (for example OpenAPI-bound maps
// from pkg/openapi), Go structs described by reflection over their
// `validate` and `pattern` struct tags (go-playground/validator syntax), and
// string-keyed maps, which carry values but no constraints.
//
// Struct tag mapping:
//
//	required            -> Required
//	min=N / max=N       -> Min/Max on numbers, MinSize/MaxSize on strings
//	gte=N / lte=N       -> Range bounds on numbers, MinSize/MaxSize on strings
//	len=N               -> MinSize and MaxSize on strings
//	email, url|uri      -> Email, URL
//	password, readonly  -> Password, immutable
//	pattern:"..." tag   -> Match
//
// Accessors named Get<Field> or <Field> are preferred over direct field
// access. An unexported field reachable only through its accessor is treated
// as immutable.
package model
