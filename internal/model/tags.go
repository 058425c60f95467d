package model

import (
	"strconv"
	"strings"
)

// Rule is a single entry of a `validate` struct tag.
// For "max=8" Name is "max" and Param is "8".
type Rule struct {
	Name  string
	Param string
}

// ParseValidateTag splits a go-playground/validator tag into rules.
// Input: "required,email,max=8"
// Output: []Rule{{Name:"required"}, {Name:"email"}, {Name:"max", Param:"8"}}
// Parsing stops at "dive" because the rules after it target collection
// elements, not the field itself.
func ParseValidateTag(tag string) []Rule {
	tag = strings.TrimSpace(tag)
	if tag == "" || tag == "-" {
		return nil
	}

	parts := strings.Split(tag, ",")
	rules := make([]Rule, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if part == "dive" {
			break
		}

		rule := Rule{}
		if idx := strings.Index(part, "="); idx > 0 {
			rule.Name = part[:idx]
			rule.Param = part[idx+1:]
		} else {
			rule.Name = part
		}
		rules = append(rules, rule)
	}
	return rules
}

// TagMetadata is what a field's struct tags declare.
type TagMetadata struct {
	Constraints ConstraintSet
	ReadOnly    bool
}

// ConstraintsFromTags maps validate rules plus an optional pattern onto a
// ConstraintSet. min/max/len/gte/lte mean value bounds on numeric fields and
// length bounds on textual ones; for other kinds they are ignored.
func ConstraintsFromTags(validateTag, pattern string, kind ValueKind) TagMetadata {
	var meta TagMetadata
	set := &meta.Constraints

	for _, rule := range ParseValidateTag(validateTag) {
		if strings.Contains(rule.Name, "|") {
			continue
		}
		switch rule.Name {
		case "required":
			set.Required = true
		case "email":
			set.Email = true
		case "url", "uri", "http_url":
			set.URL = true
		case "password":
			set.Password = true
		case "readonly":
			meta.ReadOnly = true
		case "min":
			applyBound(set, kind, rule.Param, boundMin)
		case "max":
			applyBound(set, kind, rule.Param, boundMax)
		case "gte":
			applyBound(set, kind, rule.Param, boundRangeMin)
		case "lte":
			applyBound(set, kind, rule.Param, boundRangeMax)
		case "len":
			if kind == KindTextual {
				if n, ok := parseSize(rule.Param); ok {
					set.MinSize = Int(n)
					set.MaxSize = Int(n)
				}
			}
		}
	}

	if pattern = strings.TrimSpace(pattern); pattern != "" {
		set.Match = String(pattern)
	}
	return meta
}

type boundKind int

const (
	boundMin boundKind = iota
	boundMax
	boundRangeMin
	boundRangeMax
)

func applyBound(set *ConstraintSet, kind ValueKind, param string, which boundKind) {
	switch kind {
	case KindNumeric:
		value, err := strconv.ParseFloat(strings.TrimSpace(param), 64)
		if err != nil {
			return
		}
		switch which {
		case boundMin:
			set.Min = Float(value)
		case boundMax:
			set.Max = Float(value)
		case boundRangeMin:
			ensureRange(set).Min = Float(value)
		case boundRangeMax:
			ensureRange(set).Max = Float(value)
		}
	case KindTextual:
		n, ok := parseSize(param)
		if !ok {
			return
		}
		switch which {
		case boundMin, boundRangeMin:
			if set.MinSize == nil {
				set.MinSize = Int(n)
			}
		case boundMax, boundRangeMax:
			if set.MaxSize == nil {
				set.MaxSize = Int(n)
			}
		}
	}
}

func ensureRange(set *ConstraintSet) *Bounds {
	if set.Range == nil {
		set.Range = &Bounds{}
	}
	return set.Range
}

func parseSize(param string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(param))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
