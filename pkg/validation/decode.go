package validation

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/schema"
)

// Decoder fills structs from submitted form values whose keys are the
// `name` attributes rendered by the input tag.
type Decoder struct {
	decoder *schema.Decoder
}

// NewDecoder returns a Decoder that matches keys against json tag names and
// ignores keys without a destination field.
func NewDecoder() *Decoder {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	decoder.SetAliasTag("json")
	return &Decoder{decoder: decoder}
}

// Decode copies form into dst. With a non-empty prefix only keys under
// `prefix.` are used and the prefix is stripped, so `user.name` fills the
// `name` field of the struct bound to the `user` template variable.
func (d *Decoder) Decode(dst any, prefix string, form url.Values) error {
	values := form
	if prefix = strings.TrimSpace(prefix); prefix != "" {
		values = make(url.Values, len(form))
		for key, vals := range form {
			rest, ok := strings.CutPrefix(key, prefix+".")
			if !ok || rest == "" {
				continue
			}
			values[rest] = vals
		}
	}
	if err := d.decoder.Decode(dst, values); err != nil {
		return fmt.Errorf("validation: decode form: %w", err)
	}
	return nil
}
