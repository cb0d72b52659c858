package shortcodes

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eringen/shortcodes/views"
)

func (a *App) entries(ctx context.Context, posts []Post) []views.Entry {
	out := make([]views.Entry, 0, len(posts))
	for _, p := range posts {
		pctx := WithPost(ctx, p)
		out = append(out, views.Entry{
			Title:   p.Title,
			Link:    p.Link,
			Date:    p.Date,
			Summary: a.Expand(pctx, nil, p.Summary),
			Tags:    p.Tags,
		})
	}
	return out
}

func (a *App) handleHome(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	tags, err := a.Cache.ListTags()
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	return a.renderPage(c, http.StatusOK, views.PageMeta{URL: BuildURL(a.Config.URL)},
		views.Index("", a.entries(ctx, posts), tags))
}

func (a *App) handlePost(c echo.Context) error {
	post, err := a.Cache.GetPost(c.Param("slug"))
	if err != nil {
		if err == ErrNotFound {
			return a.renderPage(c, http.StatusNotFound, views.PageMeta{Title: "Not found"}, views.NotFound())
		}
		return err
	}
	ctx := WithPost(c.Request().Context(), post)
	c.SetRequest(c.Request().WithContext(ctx))
	meta := views.PageMeta{
		Title:       post.Title,
		Description: a.Expand(ctx, nil, post.Summary),
		URL:         BuildURL(a.Config.URL, "blog", post.Slug),
	}
	entry := views.Entry{Title: post.Title, Link: post.Link, Date: post.Date, Tags: post.Tags}
	return a.renderPage(c, http.StatusOK, meta, views.Article(entry, a.Content(post.Content)))
}

func (a *App) handleTag(c echo.Context) error {
	tag := normalizeTag(c.Param("tag"))
	posts, err := a.Cache.ListPosts(tag)
	if err != nil {
		return err
	}
	return a.renderArchive(c, Archive{Kind: "tag", Tag: tag}, posts)
}

func (a *App) handleYear(c echo.Context) error {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1 {
		return echo.ErrNotFound
	}
	posts, err := a.Cache.ListByDate(year, 0)
	if err != nil {
		return err
	}
	return a.renderArchive(c, Archive{Kind: "year", Year: year}, posts)
}

func (a *App) handleMonth(c echo.Context) error {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1 {
		return echo.ErrNotFound
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		return echo.ErrNotFound
	}
	posts, err := a.Cache.ListByDate(year, month)
	if err != nil {
		return err
	}
	return a.renderArchive(c, Archive{Kind: "month", Year: year, Month: month}, posts)
}

// renderArchive lists posts under the archive heading. Archives with no
// posts are 404s, like unknown pages.
func (a *App) renderArchive(c echo.Context, archive Archive, posts []Post) error {
	if len(posts) == 0 {
		return echo.ErrNotFound
	}
	ctx := WithArchive(c.Request().Context(), archive)
	c.SetRequest(c.Request().WithContext(ctx))
	heading, _ := a.Site.ArchiveTitle(ctx)
	return a.renderPage(c, http.StatusOK, views.PageMeta{Title: heading},
		views.Index(heading, a.entries(ctx, posts), nil))
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = a.renderPage(c, http.StatusNotFound, views.PageMeta{Title: "Not found"}, views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, views.Layout(views.Site{Name: a.Config.Name}, views.PageMeta{}, views.ServerError()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
