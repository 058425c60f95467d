package attrs

import (
	"sort"
	"strings"
)

// Attr is a single attribute entry. HasValue is false for valueless
// attributes written in a template (`{% html5_input for="x" readonly %}`).
type Attr struct {
	Name     string
	Value    string
	HasValue bool
}

// Set is an insertion-ordered attribute mapping. Keys are case-sensitive;
// LookupFold matches a single key ignoring case.
type Set struct {
	items []Attr
	index map[string]int
}

// New returns an empty Set.
func New() *Set {
	return &Set{index: make(map[string]int)}
}

// FromPairs builds a Set from name/value pairs. A trailing name without a
// value is stored as a valueless attribute.
func FromPairs(pairs ...string) *Set {
	set := New()
	for i := 0; i < len(pairs); i += 2 {
		if i+1 >= len(pairs) {
			set.SetBare(pairs[i])
			break
		}
		set.Set(pairs[i], pairs[i+1])
	}
	return set
}

// FromMap builds a Set from a plain map. Go maps carry no order, so keys are
// inserted in the order given by order; keys missing from order are
// appended sorted by name.
func FromMap(values map[string]string, order ...string) *Set {
	set := New()
	for _, key := range order {
		if value, ok := values[key]; ok {
			set.Set(key, value)
		}
	}
	rest := make([]string, 0, len(values))
	for key := range values {
		if !set.Has(key) {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		set.Set(key, values[key])
	}
	return set
}

// Set stores name=value, replacing an existing entry in place.
func (s *Set) Set(name, value string) {
	s.put(Attr{Name: name, Value: value, HasValue: true})
}

// SetBare stores a valueless attribute.
func (s *Set) SetBare(name string) {
	s.put(Attr{Name: name})
}

// Fill stores name=value only when name is absent and reports whether it
// wrote anything.
func (s *Set) Fill(name, value string) bool {
	if s.Has(name) {
		return false
	}
	s.Set(name, value)
	return true
}

func (s *Set) put(attr Attr) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	name := strings.TrimSpace(attr.Name)
	if name == "" {
		return
	}
	attr.Name = name
	if idx, ok := s.index[name]; ok {
		s.items[idx] = attr
		return
	}
	s.index[name] = len(s.items)
	s.items = append(s.items, attr)
}

// Has reports whether name is present, with or without a value.
func (s *Set) Has(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[name]
	return ok
}

// Get returns the value stored under name. ok is false when the key is
// missing or valueless.
func (s *Set) Get(name string) (string, bool) {
	attr, found := s.Lookup(name)
	if !found || !attr.HasValue {
		return "", false
	}
	return attr.Value, true
}

// Lookup returns the entry stored under name.
func (s *Set) Lookup(name string) (Attr, bool) {
	if s == nil {
		return Attr{}, false
	}
	idx, ok := s.index[name]
	if !ok {
		return Attr{}, false
	}
	return s.items[idx], true
}

// LookupFold is Lookup with case-insensitive key matching.
func (s *Set) LookupFold(name string) (Attr, bool) {
	if s == nil {
		return Attr{}, false
	}
	for _, attr := range s.items {
		if strings.EqualFold(attr.Name, name) {
			return attr, true
		}
	}
	return Attr{}, false
}

// Delete removes name, keeping the order of the remaining entries.
func (s *Set) Delete(name string) {
	if s == nil {
		return
	}
	idx, ok := s.index[name]
	if !ok {
		return
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	delete(s.index, name)
	for i := idx; i < len(s.items); i++ {
		s.index[s.items[i].Name] = i
	}
}

// Len returns the number of entries.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// All returns a copy of the entries in insertion order.
func (s *Set) All() []Attr {
	if s == nil {
		return nil
	}
	return append([]Attr(nil), s.items...)
}

// Names returns the keys in insertion order.
func (s *Set) Names() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.items))
	for i, attr := range s.items {
		out[i] = attr.Name
	}
	return out
}

// Map flattens the entries that carry a value. Valueless entries are
// dropped, matching what gets serialized.
func (s *Set) Map() map[string]string {
	out := make(map[string]string, s.Len())
	for _, attr := range s.All() {
		if attr.HasValue {
			out[attr.Name] = attr.Value
		}
	}
	return out
}

// Clone returns an independent copy.
func (s *Set) Clone() *Set {
	out := New()
	for _, attr := range s.All() {
		out.put(attr)
	}
	return out
}
