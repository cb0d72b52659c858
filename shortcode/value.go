// Package shortcode implements the tag registry, attribute handling,
// filter chains and content expansion behind bracketed content tags such as
// [date format="Y"] or [menu name="primary"].
//
// A Registry is built once at start-up, populated with renderers and filters,
// and then only read while content is rendered.
package shortcode

import "sort"

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	Absent Kind = iota
	String
	Bool
)

// Value is a single attribute value: a string, a boolean or absent.
type Value struct {
	kind Kind
	s    string
	b    bool
}

// Null is the absent value.
var Null = Value{}

// Str returns a string value.
func Str(s string) Value {
	return Value{kind: String, s: s}
}

// Boolean returns a boolean value.
func Boolean(b bool) Value {
	return Value{kind: Bool, b: b}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsSet reports whether v holds a string or a boolean.
func (v Value) IsSet() bool { return v.kind != Absent }

// IsTrue reports whether v is the boolean true. The string "true" is not.
func (v Value) IsTrue() bool { return v.kind == Bool && v.b }

// String returns the string form of v. Booleans follow the usual template
// casting: true is "1", false is "".
func (v Value) String() string {
	switch v.kind {
	case String:
		return v.s
	case Bool:
		if v.b {
			return "1"
		}
	}
	return ""
}

// Truthy reports whether v would count as a non-empty flag: true, or a
// string other than "", "0" and "false".
func (v Value) Truthy() bool {
	switch v.kind {
	case Bool:
		return v.b
	case String:
		return v.s != "" && v.s != "0" && v.s != "false"
	}
	return false
}

// Attrs is the attribute set of one tag occurrence.
type Attrs map[string]Value

// Get returns the value for key, or Null.
func (a Attrs) Get(key string) Value {
	if a == nil {
		return Null
	}
	return a[key]
}

// String returns the string form of key.
func (a Attrs) String(key string) string {
	return a.Get(key).String()
}

// Keys returns the attribute names in sorted order.
func (a Attrs) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy of a.
func (a Attrs) Clone() Attrs {
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
