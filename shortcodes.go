// Package shortcodes serves a small content site whose posts embed
// shortcodes: bracketed tags such as [date], [site-name], [menu] or [logo]
// that are replaced with live site data when a page is rendered.
//
// The built-in shortcodes read from a Host. Site is the bundled Host, backed
// by SQLite, and App serves it over HTTP with Echo and templ.
package shortcodes

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/eringen/shortcodes/markdown"
	"github.com/eringen/shortcodes/shortcode"
)

// App wires together the store, cache, site host, shortcode registry,
// handlers and middleware.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Store    *Store
	Cache    *PostCache
	Site     *Site
	Registry *shortcode.Registry

	loginLimiter  *LoginLimiter
	customRoutes  []func(*App)
	registryHooks []func(*shortcode.Registry)
	staticDir     string
}

// New creates an App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		staticDir: "public",
	}
	a.Echo.HideBanner = true
	a.Echo.Logger.SetLevel(log.INFO)

	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewRegistry returns a registry holding the built-in shortcodes bound to host.
func NewRegistry(host Host, logger echo.Logger) *shortcode.Registry {
	reg := shortcode.NewRegistry()
	RegisterBuiltins(reg, host, logger)
	return reg
}

// Init opens the store and prepares the registry, middleware and routes
// without starting the listener.
func (a *App) Init() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("shortcodes: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("shortcodes: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("shortcodes: init store: %w", err)
	}
	a.Store = store
	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)
	a.Site = NewSite(a.Config, a.Store, a.Cache, a.Echo.Logger)

	a.Registry = NewRegistry(a.Site, a.Echo.Logger)
	for _, fn := range a.registryHooks {
		fn(a.Registry)
	}

	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start initializes the App and serves until the server stops.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	a.Echo.Logger.Infof("serving %d shortcodes on %s", len(a.Registry.Tags()), a.Config.Addr)
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)

	e.GET("/", a.handleHome)
	e.GET("/blog/:slug/", a.handlePost)
	e.GET("/tag/:tag/", a.handleTag)
	e.GET("/:year/", a.handleYear)
	e.GET("/:year/:month/", a.handleMonth)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.POST("/admin/options/", a.handleAdminOptions)
	e.POST("/admin/images/upload/", a.handleImageUpload)
	e.POST("/admin/images/:id/logo/", a.handleSetLogo)
	e.POST("/admin/images/:id/delete/", a.handleImageDelete)
}

// Expand replaces the shortcodes in content. Writes renderers make to their
// output stream go to w.
func (a *App) Expand(ctx context.Context, w io.Writer, content string) string {
	return a.Registry.Expand(ctx, w, content)
}

// Content returns a component that expands shortcodes in content and renders
// the result as Markdown. Anything a shortcode echoes is written first.
func (a *App) Content(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var echoed bytes.Buffer
		expanded := a.Expand(ctx, &echoed, content)
		if _, err := w.Write(echoed.Bytes()); err != nil {
			return err
		}
		return markdown.Render(w, expanded)
	})
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("shortcodes: required environment variable %s is not set", key)
	}
	return v
}
