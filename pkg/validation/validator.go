// Package validation checks submitted values against the same struct tags
// that drive `<input>` constraint attributes, so browser and server agree on
// what a valid form is.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Option configures a Validator.
type Option func(*config)

type config struct {
	validateTag string
	patternTag  string
	nameTag     string
}

// WithValidateTag changes the struct tag holding validation rules.
func WithValidateTag(tag string) Option {
	return func(cfg *config) {
		if tag = strings.TrimSpace(tag); tag != "" {
			cfg.validateTag = tag
		}
	}
}

// WithPatternTag changes the struct tag holding the `match` regular
// expression.
func WithPatternTag(tag string) Option {
	return func(cfg *config) {
		if tag = strings.TrimSpace(tag); tag != "" {
			cfg.patternTag = tag
		}
	}
}

// WithNameTag changes the struct tag used to name fields in error paths.
func WithNameTag(tag string) Option {
	return func(cfg *config) {
		if tag = strings.TrimSpace(tag); tag != "" {
			cfg.nameTag = tag
		}
	}
}

// Validator wraps go-playground/validator with the rules understood by the
// input resolver: `password` and `readonly` are rendering hints and always
// pass, `match` checks a string field against its pattern tag.
type Validator struct {
	validate   *validator.Validate
	patternTag string
	patterns   sync.Map
}

// New constructs a Validator.
func New(options ...Option) *Validator {
	cfg := config{
		validateTag: "validate",
		patternTag:  "pattern",
		nameTag:     "json",
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	v := &Validator{
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		patternTag: cfg.patternTag,
	}
	v.validate.SetTagName(cfg.validateTag)
	v.validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get(cfg.nameTag), ",")
		switch name {
		case "-":
			return ""
		case "":
			return field.Name
		default:
			return name
		}
	})

	hint := func(validator.FieldLevel) bool { return true }
	_ = v.validate.RegisterValidation("password", hint)
	_ = v.validate.RegisterValidation("readonly", hint)
	_ = v.validate.RegisterValidation("match", v.matchPattern)
	return v
}

// Struct validates a struct value.
func (v *Validator) Struct(value any) error {
	return v.validate.Struct(value)
}

// Var validates a single value against a rule string.
func (v *Validator) Var(value any, rules string) error {
	return v.validate.Var(value, rules)
}

func (v *Validator) matchPattern(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	value := fl.Field().String()
	if value == "" {
		return true
	}

	parent := fl.Parent()
	for parent.Kind() == reflect.Pointer {
		if parent.IsNil() {
			return false
		}
		parent = parent.Elem()
	}
	if parent.Kind() != reflect.Struct {
		return false
	}
	field, ok := parent.Type().FieldByName(fl.StructFieldName())
	if !ok {
		return false
	}
	pattern := strings.TrimSpace(field.Tag.Get(v.patternTag))
	if pattern == "" {
		return true
	}

	re, err := v.compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(value)
}

// compile anchors patterns the way browsers apply the `pattern` attribute.
func (v *Validator) compile(pattern string) (*regexp.Regexp, error) {
	if cached, ok := v.patterns.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return nil, fmt.Errorf("validation: compile pattern %q: %w", pattern, err)
	}
	v.patterns.Store(pattern, re)
	return re, nil
}

// Errors groups validation failures by field path. Paths use the name tag
// and drop the root struct name, matching the `name` attributes rendered
// for a template variable bound to the validated struct. A nil map means err
// carries no field errors.
func Errors(err error) map[string][]string {
	return ErrorsWithPrefix(err, "")
}

// ErrorsWithPrefix is Errors with every path placed under prefix, the
// template variable name used in the form.
func ErrorsWithPrefix(err error, prefix string) map[string][]string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return nil
	}
	prefix = strings.TrimSpace(prefix)

	out := make(map[string][]string, len(fieldErrors))
	for _, fe := range fieldErrors {
		path := fieldPath(fe.Namespace())
		if prefix != "" {
			path = prefix + "." + path
		}
		out[path] = append(out[path], formatValidationError(fe))
	}
	return out
}

func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

// formatValidationError converts a validator.FieldError to a human-readable
// message.
func formatValidationError(fe validator.FieldError) string {
	textual := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "required"
	case "min", "gte":
		if textual {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max", "lte":
		if textual {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", fe.Param())
	case "email":
		return "must be a valid email address"
	case "url", "uri", "http_url":
		return "must be a valid URL"
	case "match":
		return "has an invalid format"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
