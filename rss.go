package shortcodes

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title          string    `xml:"title"`
	Link           string    `xml:"link"`
	Description    string    `xml:"description"`
	ManagingEditor string    `xml:"managingEditor,omitempty"`
	Items          []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// renderRSS writes the feed. Summaries have their shortcodes expanded in
// the context of their own post.
func (a *App) renderRSS(c echo.Context, posts []Post) error {
	ctx := c.Request().Context()
	base := a.Config.URL
	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		pubDate := ""
		if t, err := time.Parse(dateLayout, p.Date); err == nil {
			pubDate = t.Format(time.RFC1123Z)
		}
		postURL := BuildURL(base, "blog", p.Slug)
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        postURL,
			Description: a.Expand(WithPost(ctx, p), nil, p.Summary),
			PubDate:     pubDate,
			GUID:        postURL,
		})
	}
	name, err := a.Site.BlogInfo(ctx, "name")
	if err != nil {
		return err
	}
	desc, err := a.Site.BlogInfo(ctx, "description")
	if err != nil {
		return err
	}
	email, err := a.Site.BlogInfo(ctx, "admin_email")
	if err != nil {
		return err
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:          name,
			Link:           base,
			Description:    desc,
			ManagingEditor: email,
			Items:          items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}
