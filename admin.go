package shortcodes

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"

	"github.com/eringen/shortcodes/views"
)

// editableOptions are the options shown on the admin dashboard, in order.
var editableOptions = []views.AdminOption{
	{Name: "blogname", Label: "Site title"},
	{Name: "blogdescription", Label: "Tagline"},
	{Name: "admin_email", Label: "Administration email"},
	{Name: "timezone_string", Label: "Timezone"},
}

var textPolicy = bluemonday.StrictPolicy()

// sanitizeOption cleans an option value before it is stored. Text options
// lose any markup; the email and timezone must parse.
func sanitizeOption(name, value string) (string, error) {
	value = strings.TrimSpace(value)
	switch name {
	case "blogname", "blogdescription":
		return strings.TrimSpace(textPolicy.Sanitize(value)), nil
	case "admin_email":
		if value == "" {
			return "", nil
		}
		addr, err := mail.ParseAddress(value)
		if err != nil {
			return "", fmt.Errorf("invalid email %q", value)
		}
		return addr.Address, nil
	case "timezone_string":
		if _, err := time.LoadLocation(value); err != nil {
			return "", fmt.Errorf("unknown timezone %q", value)
		}
		return value, nil
	}
	return value, nil
}

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return a.renderPage(c, http.StatusOK, views.PageMeta{Title: "Admin"}, views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c, true); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(ip)
	return a.renderPage(c, http.StatusOK, views.PageMeta{Title: "Admin"}, views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := setAdminSession(c, false); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleAdminOptions(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := c.Request().ParseForm(); err != nil {
		return err
	}
	for _, opt := range editableOptions {
		if _, ok := c.Request().PostForm[opt.Name]; !ok {
			continue
		}
		value, err := sanitizeOption(opt.Name, c.FormValue(opt.Name))
		if err != nil {
			return a.redirectAdmin(c, err.Error())
		}
		if err := a.Store.SetOption(opt.Name, value); err != nil {
			return err
		}
	}
	return a.redirectAdmin(c, "Settings saved.")
}

func (a *App) redirectAdmin(c echo.Context, msg string) error {
	return c.Redirect(http.StatusSeeOther, "/admin/?msg="+url.QueryEscape(msg))
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	ctx := c.Request().Context()
	options := make([]views.AdminOption, len(editableOptions))
	for i, opt := range editableOptions {
		value, err := a.Site.Option(ctx, opt.Name)
		if err != nil {
			return err
		}
		opt.Value = value
		options[i] = opt
	}

	logo, err := a.Site.ThemeMod(ctx, "custom_logo")
	if err != nil {
		return err
	}
	attachments, err := a.Store.ListAttachments()
	if err != nil {
		return err
	}
	items := make([]views.AdminAttachment, 0, len(attachments))
	for _, att := range attachments {
		items = append(items, views.AdminAttachment{
			ID:       att.ID,
			Src:      "/public/" + uploadsSubdir + "/" + att.Filename,
			Filename: att.Filename,
			IsLogo:   att.ID == logo.AttachmentID(),
		})
	}
	return a.renderPage(c, http.StatusOK, views.PageMeta{Title: "Admin"},
		views.AdminDashboard(options, items, msg, CsrfToken(c)))
}
