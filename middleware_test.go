package shortcodes

import "testing"

func TestCachePolicy(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/public/uploads/logo.jpg", "public, max-age=31536000, immutable"},
		{"/admin/", "no-store"},
		{"/admin/options/", "no-store"},
		{"/feed.xml", "public, max-age=3600"},
		{"/sitemap.xml", "public, max-age=3600"},
		{"/", "public, max-age=300"},
		{"/blog/hello/", "public, max-age=300"},
	}
	for _, tt := range tests {
		if got := cachePolicy(tt.path); got != tt.expected {
			t.Errorf("cachePolicy(%q) = %q, want %q", tt.path, got, tt.expected)
		}
	}
}
