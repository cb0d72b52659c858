package shortcode

// Normalize merges supplied over defaults. Every default key takes the
// supplied value when it is set, otherwise the default. Supplied keys that
// have no default are carried through unchanged so later alias resolution
// can see them. Neither input is modified.
func Normalize(defaults, supplied Attrs) Attrs {
	out := make(Attrs, len(defaults)+len(supplied))
	for k, def := range defaults {
		if v := supplied.Get(k); v.IsSet() {
			out[k] = v
			continue
		}
		out[k] = def
	}
	for k, v := range supplied {
		if _, ok := defaults[k]; !ok {
			out[k] = v
		}
	}
	return out
}

// Alias copies the value of from onto to when from is set.
func (a Attrs) Alias(from, to string) {
	if v := a.Get(from); v.IsSet() {
		a[to] = v
	}
}
