package attrs

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// InputTag builds the `<input ...>` markup for the set. Entries without a
// value are skipped, as are names that cannot be written as an HTML
// attribute name.
func InputTag(set *Set) string {
	token := html.Token{
		Type:     html.StartTagToken,
		DataAtom: atom.Input,
		Data:     atom.Input.String(),
	}
	for _, attr := range set.All() {
		if !attr.HasValue || !ValidName(attr.Name) {
			continue
		}
		token.Attr = append(token.Attr, html.Attribute{Key: attr.Name, Val: attr.Value})
	}
	return token.String()
}

// WriteInput writes the `<input ...>` element followed by a newline.
func WriteInput(w io.Writer, set *Set) error {
	if w == nil {
		return fmt.Errorf("attrs: writer is nil")
	}
	_, err := io.WriteString(w, InputTag(set)+"\n")
	return err
}

// WriteSanitizedInput writes the element after passing it through policy.
// A nil policy falls back to DefaultPolicy.
func WriteSanitizedInput(w io.Writer, set *Set, policy *bluemonday.Policy) error {
	if w == nil {
		return fmt.Errorf("attrs: writer is nil")
	}
	if policy == nil {
		policy = DefaultPolicy()
	}
	cleaned := strings.TrimSpace(policy.Sanitize(InputTag(set)))
	_, err := io.WriteString(w, cleaned+"\n")
	return err
}

// ValidName reports whether name can be emitted as an attribute name.
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r <= 0x20, r == 0x7f:
			return false
		case r == '"', r == '\'', r == '>', r == '/', r == '=', r == '<':
			return false
		}
	}
	return true
}

var (
	inputPolicyOnce sync.Once
	inputPolicy     *bluemonday.Policy
)

// DefaultPolicy allows a single `input` element carrying form, validation,
// accessibility and data-* attributes. Event handler attributes and unknown
// attributes are stripped.
func DefaultPolicy() *bluemonday.Policy {
	inputPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements("input")
		policy.AllowAttrs(
			"name", "value", "type", "id", "class", "title", "lang", "dir",
			"required", "readonly", "disabled", "min", "max", "step",
			"maxlength", "minlength", "pattern", "placeholder", "size",
			"autocomplete", "autofocus", "inputmode", "list", "form",
			"multiple", "checked", "accept", "tabindex", "spellcheck",
			"aria-label", "aria-describedby", "aria-labelledby",
			"aria-invalid", "aria-required", "role",
		).OnElements("input")
		policy.AllowDataAttributes()
		inputPolicy = policy
	})
	return inputPolicy
}
