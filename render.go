package shortcodes

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/shortcodes/shortcode"
	"github.com/eringen/shortcodes/views"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// renderPage wraps body in the layout. The header menu is the "primary"
// menu rendered through the registry, so menu filters apply to it too.
func (a *App) renderPage(c echo.Context, code int, meta views.PageMeta, body templ.Component) error {
	ctx := c.Request().Context()
	site := views.Site{URL: a.Config.URL}
	var err error
	if site.Name, err = a.Site.BlogInfo(ctx, "name"); err != nil {
		return err
	}
	if site.Description, err = a.Site.BlogInfo(ctx, "description"); err != nil {
		return err
	}
	if nav, ok := a.Registry.Render(ctx, nil, "menu", shortcode.Attrs{
		"name":      shortcode.Str("primary"),
		"container": shortcode.Str("nav"),
	}, ""); ok && nav != "" {
		site.Menu = templ.Raw(nav)
	}
	return RenderStatus(c, code, views.Layout(site, meta, body))
}
