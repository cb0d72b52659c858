package views

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// Layout wraps body in the site chrome.
func Layout(site Site, meta PageMeta, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := site.Name
		if meta.Title != "" && meta.Title != site.Name {
			title = meta.Title + " | " + site.Name
		}
		desc := meta.Description
		if desc == "" {
			desc = site.Description
		}
		var head html
		head.raw("<!doctype html>\n<html lang=\"en\"><head><meta charset=\"utf-8\">").
			raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`).
			raw("<title>").text(title).raw("</title>").
			raw(`<meta name="description"`).attr("content", desc, false).raw(">")
		if meta.URL != "" {
			head.raw(`<link rel="canonical"`).attr("href", meta.URL, false).raw(">")
		}
		head.raw(`<link rel="alternate" type="application/rss+xml" href="/feed.xml">`).
			raw("</head><body><header><a href=\"/\">").text(site.Name).raw("</a>")
		if _, err := io.WriteString(w, head.String()); err != nil {
			return err
		}
		if site.Menu != nil {
			if err := site.Menu.Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</header><main>"); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</main></body></html>")
		return err
	})
}

// Index lists entries under heading.
func Index(heading string, entries []Entry, tags []string) templ.Component {
	return component(func(b *html) {
		if heading != "" {
			b.raw("<h1>").text(heading).raw("</h1>")
		}
		if len(entries) == 0 {
			b.raw("<p>Nothing here yet.</p>")
		}
		for _, e := range entries {
			b.raw("<article><h2><a").attr("href", e.Link, false).raw(">").text(e.Title).raw("</a></h2>").
				raw("<time").attr("datetime", e.Date, false).raw(">").text(e.Date).raw("</time>").
				raw("<p>").raw(e.Summary).raw("</p></article>")
		}
		if len(tags) > 0 {
			b.raw(`<nav class="tags">`)
			for _, t := range tags {
				b.raw("<a").attr("href", "/tag/"+t+"/", false).raw(">").text(t).raw("</a> ")
			}
			b.raw("</nav>")
		}
	})
}

// Article renders a single post with its already rendered body.
func Article(e Entry, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b html
		b.raw("<article><h1>").text(e.Title).raw("</h1><time").attr("datetime", e.Date, false).raw(">").
			text(e.Date).raw("</time><div class=\"content\">")
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</div></article>")
		return err
	})
}

// NotFound is the 404 page body.
func NotFound() templ.Component {
	return component(func(b *html) {
		b.raw("<h1>Not found</h1><p>The page you asked for does not exist.</p>")
	})
}

// ServerError is the 5xx page body.
func ServerError() templ.Component {
	return component(func(b *html) {
		b.raw("<h1>Something went wrong</h1><p>Please try again later.</p>")
	})
}

// AdminLogin is the admin login form.
func AdminLogin(showError bool, csrfToken string) templ.Component {
	return component(func(b *html) {
		b.raw("<h1>Admin</h1>")
		if showError {
			b.raw(`<p class="error">Wrong password.</p>`)
		}
		b.raw(`<form method="post" action="/admin/login/">`).
			raw(`<input type="hidden" name="_csrf"`).attr("value", csrfToken, false).raw(">").
			raw(`<input type="password" name="password" autofocus>`).
			raw(`<button type="submit">Log in</button></form>`)
	})
}

// AdminDashboard shows the site options form and the uploaded images.
func AdminDashboard(options []AdminOption, attachments []AdminAttachment, message, csrfToken string) templ.Component {
	return component(func(b *html) {
		b.raw("<h1>Site settings</h1>")
		if message != "" {
			b.raw(`<p class="message">`).text(message).raw("</p>")
		}
		b.raw(`<form method="post" action="/admin/options/">`).
			raw(`<input type="hidden" name="_csrf"`).attr("value", csrfToken, false).raw(">")
		for _, o := range options {
			b.raw("<label>").text(o.Label).raw(` <input type="text"`).attr("name", o.Name, false).
				attr("value", o.Value, false).raw("></label>")
		}
		b.raw(`<button type="submit">Save</button></form>`)

		b.raw("<h2>Images</h2>").
			raw(`<form method="post" action="/admin/images/upload/" enctype="multipart/form-data">`).
			raw(`<input type="hidden" name="_csrf"`).attr("value", csrfToken, false).raw(">").
			raw(`<input type="file" name="image" accept="image/*"><input type="text" name="alt" placeholder="Alt text">`).
			raw(`<button type="submit">Upload</button></form><ul class="images">`)
		for _, a := range attachments {
			id := strconv.FormatInt(a.ID, 10)
			b.raw("<li>").raw(`<img`).attr("src", a.Src, false).attr("alt", a.Filename, false).raw(` width="120">`).
				text(a.Filename)
			if a.IsLogo {
				b.raw(" <strong>logo</strong>")
			} else {
				b.raw(`<form method="post"`).attr("action", "/admin/images/"+id+"/logo/", false).raw(">").
					raw(`<input type="hidden" name="_csrf"`).attr("value", csrfToken, false).raw(">").
					raw(`<button type="submit">Use as logo</button></form>`)
			}
			b.raw(`<form method="post"`).attr("action", "/admin/images/"+id+"/delete/", false).raw(">").
				raw(`<input type="hidden" name="_csrf"`).attr("value", csrfToken, false).raw(">").
				raw(`<button type="submit">Delete</button></form></li>`)
		}
		b.raw(`</ul><form method="post" action="/admin/logout/">`).
			raw(`<input type="hidden" name="_csrf"`).attr("value", csrfToken, false).raw(">").
			raw(`<button type="submit">Log out</button></form>`)
	})
}
