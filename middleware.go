package shortcodes

import (
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	sessionName = "admin_session"
	authKey     = "authenticated"
)

// feedPaths are served as files: no trailing-slash redirect, longer caching.
var feedPaths = map[string]bool{
	"/sitemap.xml": true,
	"/feed.xml":    true,
}

func isAsset(path string) bool {
	return strings.HasPrefix(path, "/public/")
}

func (a *App) setupMiddleware() {
	e := a.Echo
	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)
	e.HTTPErrorHandler = a.httpErrorHandler

	e.Use(
		requestLogger(),
		middleware.Recover(),
		middleware.GzipWithConfig(middleware.GzipConfig{
			Level:   5,
			Skipper: func(c echo.Context) bool { return isAsset(c.Request().URL.Path) },
		}),
		securityHeaders(),
		session.Middleware(a.newSessionStore()),
		a.csrf(),
		middleware.AddTrailingSlashWithConfig(middleware.TrailingSlashConfig{
			RedirectCode: http.StatusMovedPermanently,
			Skipper: func(c echo.Context) bool {
				path := c.Request().URL.Path
				return isAsset(path) || feedPaths[path]
			},
		}),
		func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				c.Response().Header().Set("Cache-Control", cachePolicy(c.Request().URL.Path))
				return next(c)
			}
		},
	)
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				c.Logger().Warnf("%s %s -> %d (%s): %v", v.Method, v.URI, v.Status, v.Latency, v.Error)
				return nil
			}
			c.Logger().Infof("%s %s -> %d (%s)", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	})
}

// Uploaded logos are same-origin; remote images are allowed for post content.
func securityHeaders() echo.MiddlewareFunc {
	return middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' https: data:; form-action 'self'; frame-ancestors 'none'",
		HSTSMaxAge:            31536000,
	})
}

func (a *App) csrf() echo.MiddlewareFunc {
	return middleware.CSRFWithConfig(middleware.CSRFConfig{
		TokenLookup:    "header:X-CSRF-Token,form:_csrf",
		CookieName:     "_csrf",
		CookiePath:     "/",
		CookieSameSite: http.SameSiteLaxMode,
		CookieSecure:   a.Config.CookieSecure,
		ErrorHandler: func(err error, c echo.Context) error {
			return c.String(http.StatusForbidden, "Forbidden")
		},
	})
}

// cachePolicy returns the Cache-Control value for path. Pages carry live
// shortcode output such as [date], so they stay short-lived.
func cachePolicy(path string) string {
	switch {
	case isAsset(path):
		return "public, max-age=31536000, immutable"
	case strings.HasPrefix(path, "/admin"):
		return "no-store"
	case feedPaths[path]:
		return "public, max-age=3600"
	}
	return "public, max-age=300"
}

func (a *App) newSessionStore() *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(a.Config.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   12 * 60 * 60,
		SameSite: http.SameSiteLaxMode,
		Secure:   a.Config.CookieSecure,
	}
	return store
}

// IsAdmin reports whether the request carries a logged-in admin session.
func IsAdmin(c echo.Context) bool {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return false
	}
	ok, _ := sess.Values[authKey].(bool)
	return ok
}

// setAdminSession logs the admin in, or out by expiring the cookie.
func setAdminSession(c echo.Context, loggedIn bool) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	if loggedIn {
		sess.Values[authKey] = true
	} else {
		delete(sess.Values, authKey)
		sess.Options.MaxAge = -1
	}
	return sess.Save(c.Request(), c.Response())
}

// CsrfToken returns the CSRF token for forms rendered in this request.
func CsrfToken(c echo.Context) string {
	token, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	return token
}
