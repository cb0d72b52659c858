package shortcodes

import (
	"net/url"
	"strings"
)

// Slugify lower-cases s and joins its ASCII letter and digit runs with
// hyphens. "Site Logo.PNG" becomes "site-logo-png".
func Slugify(s string) string {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return (r < 'a' || r > 'z') && (r < '0' || r > '9')
	})
	return strings.Join(words, "-")
}

// BuildURL appends path segments to base. Any URL with segments ends in a
// slash, matching the routes.
func BuildURL(base string, segments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	if len(segments) == 0 {
		return u.String()
	}
	u = u.JoinPath(segments...)
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// FilterEmpty trims vals and drops the empty ones.
func FilterEmpty(vals []string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
