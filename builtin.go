package shortcodes

import (
	"context"
	"io"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/eringen/shortcodes/phpdate"
	"github.com/eringen/shortcodes/shortcode"
)

// Filter hooks the built-in shortcodes pass their values through.
const (
	HookAdminEmail = "shortcodes/admin_email" // string: the admin email
	HookLogoID     = "shortcodes/logo/id"     // id: the logo attachment, 0 for none
	HookLogo       = "shortcodes/logo"        // string: the wrapped logo markup
)

// Host is the platform the built-in shortcodes read from. Site is the
// SQLite-backed implementation; tests supply their own.
type Host interface {
	// Now returns the current time in the site's time zone.
	Now(ctx context.Context) time.Time
	// BlogInfo returns site metadata: "name", "description", "admin_email", "url".
	BlogInfo(ctx context.Context, key string) (string, error)
	// Option returns a raw stored option such as "blogname".
	Option(ctx context.Context, key string) (string, error)
	// ThemeMod returns a stored theme modification such as "custom_logo".
	ThemeMod(ctx context.Context, key string) (ThemeValue, error)
	// Archives renders an archive listing. query is in "type=monthly&limit=12" form.
	Archives(ctx context.Context, query string) (string, error)
	// NavMenu renders a navigation menu. When args.Echo is set the markup is
	// written to w instead of being returned.
	NavMenu(ctx context.Context, w io.Writer, args NavMenuArgs) (string, error)
	// AttachmentImage renders an <img> for the attachment at the named size.
	AttachmentImage(ctx context.Context, id int64, size string, icon bool, attrs map[string]string) (string, error)
	// Title returns the title of the post being rendered, if any.
	Title(ctx context.Context) (string, bool)
	// ArchiveTitle returns the title of the archive being rendered, if any.
	ArchiveTitle(ctx context.Context) (string, bool)
}

// ThemeValue is a stored theme modification. It is either a bare
// attachment ID or a record that carries one.
type ThemeValue struct {
	ID     int64
	Record *ThemeRecord
}

// ThemeRecord is the compound form of a theme modification.
type ThemeRecord struct {
	ID     int64  `json:"ID"`
	URL    string `json:"url,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// AttachmentID returns the record's ID for compound values and the bare ID otherwise.
func (v ThemeValue) AttachmentID() int64 {
	if v.Record != nil {
		return v.Record.ID
	}
	return v.ID
}

// NavMenuArgs is the resolved attribute set handed to Host.NavMenu.
type NavMenuArgs struct {
	Menu       string // slug, name or numeric ID of the menu
	MenuID     string // id attribute of the <ul>
	MenuClass  string // class attribute of the <ul>
	Container  string // wrapping element, "" for none
	Walker     string
	Echo       bool
	FallbackCB string // "" for none

	// Attrs is the full normalized attribute set, unknown keys included.
	Attrs shortcode.Attrs
}

// LogoOptions are the attributes of the logo shortcode.
type LogoOptions struct {
	Size  string
	Class string
	Alt   string
	Echo  bool
}

var menuDefaults = shortcode.Attrs{
	"name":        shortcode.Null,
	"menu":        shortcode.Null,
	"id":          shortcode.Null,
	"menu_id":     shortcode.Null,
	"menu_class":  shortcode.Null,
	"container":   shortcode.Boolean(false),
	"walker":      shortcode.Str(""),
	"echo":        shortcode.Boolean(false),
	"fallback_cb": shortcode.Boolean(false),
}

var logoDefaults = shortcode.Attrs{
	"size":  shortcode.Str("full"),
	"class": shortcode.Str(""),
	"alt":   shortcode.Str(""),
	"echo":  shortcode.Boolean(false),
}

// ResolveMenuArgs normalizes menu attributes. name overrides menu and id
// overrides menu_id.
func ResolveMenuArgs(supplied shortcode.Attrs) NavMenuArgs {
	attrs := shortcode.Normalize(menuDefaults, supplied)
	attrs.Alias("name", "menu")
	attrs.Alias("id", "menu_id")
	return NavMenuArgs{
		Menu:       attrs.String("menu"),
		MenuID:     attrs.String("menu_id"),
		MenuClass:  attrs.String("menu_class"),
		Container:  attrs.String("container"),
		Walker:     attrs.String("walker"),
		Echo:       attrs.Get("echo").Truthy(),
		FallbackCB: attrs.String("fallback_cb"),
		Attrs:      attrs,
	}
}

// ResolveLogoOptions normalizes logo attributes. Echo is only set by a
// boolean true; attribute text such as echo="true" does not enable it.
func ResolveLogoOptions(supplied shortcode.Attrs) LogoOptions {
	attrs := shortcode.Normalize(logoDefaults, supplied)
	return LogoOptions{
		Size:  attrs.String("size"),
		Class: attrs.String("class"),
		Alt:   attrs.String("alt"),
		Echo:  attrs.Get("echo").IsTrue(),
	}
}

func discardLogger() echo.Logger {
	l := log.New("shortcodes")
	l.SetOutput(io.Discard)
	return l
}

type builtins struct {
	host   Host
	reg    *shortcode.Registry
	logger echo.Logger
}

// RegisterBuiltins registers the built-in shortcodes on reg, reading from
// host. A nil logger discards host errors.
func RegisterBuiltins(reg *shortcode.Registry, host Host, logger echo.Logger) {
	if logger == nil {
		logger = discardLogger()
	}
	b := &builtins{host: host, reg: reg, logger: logger}

	adminEmail := b.adminEmail
	reg.Register("date", b.date)
	reg.Register("site-name", b.siteName)
	reg.Register("admin_email", adminEmail)
	reg.Register("admin-email", adminEmail)
	reg.Register("archives", b.archives)
	reg.Register("menu", b.menu)
	reg.Register("logo", b.logo)
	reg.Register("title", b.title)
	reg.Register("archive-title", b.archiveTitle)
}

// [date format="m/d/Y"]
func (b *builtins) date(ctx context.Context, call *shortcode.Call) string {
	format := call.Attrs.String("format")
	if format == "" {
		format = phpdate.Default
	}
	return phpdate.Format(b.host.Now(ctx), format)
}

// [site-name]
func (b *builtins) siteName(ctx context.Context, _ *shortcode.Call) string {
	name, err := b.host.BlogInfo(ctx, "name")
	if err != nil {
		b.logger.Warnf("site-name: %v", err)
		return ""
	}
	return name
}

// [admin-email]
func (b *builtins) adminEmail(ctx context.Context, _ *shortcode.Call) string {
	email, err := b.host.BlogInfo(ctx, "admin_email")
	if err != nil {
		b.logger.Warnf("admin-email: %v", err)
		email = ""
	}
	return b.reg.Strings.Apply(HookAdminEmail, email)
}

// [archives]
func (b *builtins) archives(ctx context.Context, _ *shortcode.Call) string {
	out, err := b.host.Archives(ctx, "type=monthly")
	if err != nil {
		b.logger.Warnf("archives: %v", err)
		return ""
	}
	return out
}

// [menu name="primary" container="nav" menu_class="menu"]
func (b *builtins) menu(ctx context.Context, call *shortcode.Call) string {
	out, err := b.host.NavMenu(ctx, call.Out, ResolveMenuArgs(call.Attrs))
	if err != nil {
		b.logger.Warnf("menu: %v", err)
		return ""
	}
	return out
}

// [logo size="full" class="" alt=""]
func (b *builtins) logo(ctx context.Context, call *shortcode.Call) string {
	opts := ResolveLogoOptions(call.Attrs)

	mod, err := b.host.ThemeMod(ctx, "custom_logo")
	if err != nil {
		b.logger.Warnf("logo: %v", err)
	}
	id := b.reg.IDs.Apply(HookLogoID, mod.AttachmentID())

	var inner string
	if id > 0 {
		inner, err = b.host.AttachmentImage(ctx, id, opts.Size, false, map[string]string{
			"class": opts.Class,
			"alt":   opts.Alt,
		})
		if err != nil {
			b.logger.Warnf("logo: attachment %d: %v", id, err)
		}
	} else {
		inner, err = b.host.Option(ctx, "blogname")
		if err != nil {
			b.logger.Warnf("logo: %v", err)
		}
	}

	html := b.reg.Strings.Apply(HookLogo, `<div class="site-logo">`+inner+`</div>`)
	// The logo writes and returns; menu leaves echo to the host.
	if opts.Echo {
		if _, err := io.WriteString(call.Out, html); err != nil {
			b.logger.Warnf("logo: write: %v", err)
		}
	}
	return html
}

// [title]
func (b *builtins) title(ctx context.Context, _ *shortcode.Call) string {
	title, _ := b.host.Title(ctx)
	return title
}

// [archive-title]
func (b *builtins) archiveTitle(ctx context.Context, _ *shortcode.Call) string {
	title, _ := b.host.ArchiveTitle(ctx)
	return title
}
