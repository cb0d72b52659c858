package shortcodes

import (
	"time"

	"github.com/eringen/shortcodes/shortcode"
)

// SiteConfig holds all configuration for a site. Name, Description and
// AdminEmail are fallbacks; values stored as options take precedence.
type SiteConfig struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	AdminEmail  string // Administrator email
	Timezone    string // IANA zone used by [date] when no timezone_string option is set (default "UTC")

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/site.db")

	AdminPassword string // Required: admin login password
	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	PostCacheTTL time.Duration // Post cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/site.db"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for static assets and uploads (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithShortcodes registers extra shortcodes or filters once the built-ins
// are in place. Registering a built-in tag name replaces it.
func WithShortcodes(fn func(*shortcode.Registry)) Option {
	return func(a *App) {
		a.registryHooks = append(a.registryHooks, fn)
	}
}
