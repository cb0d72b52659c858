package shortcodes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/shortcodes/views"
)

// Site is the Host backed by the Store and PostCache.
type Site struct {
	config     SiteConfig
	store      *Store
	cache      *PostCache
	logger     echo.Logger
	now        func() time.Time
	uploadsURL string

	mu    sync.Mutex
	zones map[string]*time.Location
}

var _ Host = (*Site)(nil)

// NewSite returns a Site reading from store through cache. A nil logger
// discards warnings.
func NewSite(cfg SiteConfig, store *Store, cache *PostCache, logger echo.Logger) *Site {
	cfg.setDefaults()
	if logger == nil {
		logger = discardLogger()
	}
	return &Site{
		config:     cfg,
		store:      store,
		cache:      cache,
		logger:     logger,
		now:        time.Now,
		uploadsURL: "/public/" + uploadsSubdir + "/",
		zones:      make(map[string]*time.Location),
	}
}

// optionDefaults are used when an option has never been stored.
func (s *Site) optionDefaults(key string) string {
	switch key {
	case "blogname":
		return s.config.Name
	case "blogdescription":
		return s.config.Description
	case "admin_email":
		return s.config.AdminEmail
	case "timezone_string":
		return s.config.Timezone
	case "siteurl", "home":
		return s.config.URL
	}
	return ""
}

// Now returns the current time in the timezone_string option's zone.
func (s *Site) Now(ctx context.Context) time.Time {
	name, err := s.Option(ctx, "timezone_string")
	if err != nil {
		s.logger.Warnf("timezone: %v", err)
	}
	return s.now().In(s.location(name))
}

// location resolves a zone name once and remembers it. Unknown names
// fall back to UTC.
func (s *Site) location(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if loc, ok := s.zones[name]; ok {
		return loc
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		s.logger.Warnf("timezone %q: %v, using UTC", name, err)
		loc = time.UTC
	}
	s.zones[name] = loc
	return loc
}

// Option returns a stored option, falling back to configuration defaults.
func (s *Site) Option(_ context.Context, key string) (string, error) {
	v, err := s.store.GetOption(key)
	if errors.Is(err, ErrNotFound) {
		return s.optionDefaults(key), nil
	}
	if err != nil {
		return "", fmt.Errorf("option %s: %w", key, err)
	}
	return v, nil
}

// BlogInfo maps site metadata keys onto options.
func (s *Site) BlogInfo(ctx context.Context, key string) (string, error) {
	switch key {
	case "name":
		return s.Option(ctx, "blogname")
	case "description":
		return s.Option(ctx, "blogdescription")
	case "url", "wpurl":
		return s.Option(ctx, "home")
	}
	return s.Option(ctx, key)
}

// ThemeMod returns a theme modification. A missing one is the zero value.
func (s *Site) ThemeMod(_ context.Context, key string) (ThemeValue, error) {
	v, err := s.store.GetThemeMod(key)
	if errors.Is(err, ErrNotFound) {
		return ThemeValue{}, nil
	}
	if err != nil {
		return ThemeValue{}, fmt.Errorf("theme mod %s: %w", key, err)
	}
	return v, nil
}

// Archives lists published posts grouped by month ("type=monthly"), by year
// ("type=yearly") or one link per post ("type=postbypost"). "limit" caps the
// number of lines and "show_post_count=1" appends counts.
func (s *Site) Archives(ctx context.Context, query string) (string, error) {
	q, err := url.ParseQuery(query)
	if err != nil {
		return "", fmt.Errorf("archives query %q: %w", query, err)
	}
	posts, err := s.cache.ListPosts("")
	if err != nil {
		return "", err
	}
	kind := q.Get("type")
	if kind == "" {
		kind = "monthly"
	}

	var links []views.ArchiveLink
	index := make(map[string]int)
	for _, p := range posts {
		if kind == "postbypost" {
			links = append(links, views.ArchiveLink{URL: p.Link, Text: p.Title, Count: 1})
			continue
		}
		d, err := time.Parse(dateLayout, p.Date)
		if err != nil {
			continue
		}
		var link views.ArchiveLink
		switch kind {
		case "yearly":
			link = views.ArchiveLink{URL: fmt.Sprintf("/%04d/", d.Year()), Text: strconv.Itoa(d.Year())}
		case "monthly":
			link = views.ArchiveLink{URL: fmt.Sprintf("/%04d/%02d/", d.Year(), int(d.Month())), Text: d.Format("January 2006")}
		default:
			return "", fmt.Errorf("archives: unsupported type %q", kind)
		}
		if i, ok := index[link.URL]; ok {
			links[i].Count++
			continue
		}
		link.Count = 1
		index[link.URL] = len(links)
		links = append(links, link)
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 && limit < len(links) {
		links = links[:limit]
	}
	showCount := q.Get("show_post_count") == "1" || q.Get("show_post_count") == "true"
	return views.String(ctx, views.ArchiveList(links, showCount))
}

// NavMenu renders the menu named by args.Menu, or the first menu when it is
// empty. An unknown menu renders nothing. With args.Echo the markup goes to
// w and "" is returned.
func (s *Site) NavMenu(ctx context.Context, w io.Writer, args NavMenuArgs) (string, error) {
	ref := args.Menu
	if ref == "" {
		menus, err := s.store.ListMenus()
		if err != nil {
			return "", err
		}
		if len(menus) == 0 {
			return "", nil
		}
		ref = menus[0].Slug
	}
	menu, err := s.store.GetMenu(ref)
	if errors.Is(err, ErrNotFound) {
		s.logger.Debugf("menu %q not found", ref)
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("menu %s: %w", ref, err)
	}

	current, _ := PostFromContext(ctx)
	nav := views.NavMenu{
		Slug:      menu.Slug,
		MenuID:    args.MenuID,
		MenuClass: args.MenuClass,
	}
	if nav.MenuID == "" {
		nav.MenuID = "menu-" + menu.Slug
	}
	switch args.Container {
	case "div", "nav":
		nav.Container = args.Container
	}
	for _, item := range menu.Items {
		nav.Items = append(nav.Items, views.NavItem{
			Title:   item.Title,
			URL:     item.URL,
			Current: current.Link != "" && item.URL == current.Link,
		})
	}

	out, err := views.String(ctx, views.Menu(nav))
	if err != nil {
		return "", err
	}
	if args.Echo {
		_, err := io.WriteString(w, out)
		return "", err
	}
	return out, nil
}

// AttachmentImage renders the attachment at the named size, falling back to
// the full image when that size was never generated. A missing attachment
// renders nothing. icon is accepted for interface parity and ignored.
func (s *Site) AttachmentImage(ctx context.Context, id int64, size string, icon bool, attrs map[string]string) (string, error) {
	att, err := s.store.GetAttachment(id)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("attachment %d: %w", id, err)
	}
	rendition, ok := att.Sizes[size]
	if !ok {
		size = "full"
		rendition = ImageSize{Filename: att.Filename, Width: att.Width, Height: att.Height}
	}
	img := views.Image{
		Src:    s.uploadsURL + rendition.Filename,
		Width:  rendition.Width,
		Height: rendition.Height,
		Class:  attrs["class"],
		Alt:    attrs["alt"],
	}
	if img.Class == "" {
		img.Class = "attachment-" + size + " size-" + size
	}
	if img.Alt == "" {
		img.Alt = att.Alt
	}
	return views.String(ctx, views.Img(img))
}

// Title returns the title of the post in ctx.
func (s *Site) Title(ctx context.Context) (string, bool) {
	p, ok := PostFromContext(ctx)
	if !ok {
		return "", false
	}
	return p.Title, true
}

// ArchiveTitle returns a heading for the archive in ctx.
func (s *Site) ArchiveTitle(ctx context.Context) (string, bool) {
	a, ok := ArchiveFromContext(ctx)
	if !ok {
		return "", false
	}
	return archiveHeading(a), true
}

func archiveHeading(a Archive) string {
	switch a.Kind {
	case "month":
		return "Month: " + time.Date(a.Year, time.Month(a.Month), 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
	case "year":
		return "Year: " + strconv.Itoa(a.Year)
	case "tag":
		return "Tag: " + a.Tag
	}
	return "Archives"
}
