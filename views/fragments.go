package views

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// html builds markup with attribute and text escaping.
type html struct {
	strings.Builder
}

func (b *html) raw(s ...string) *html {
	for _, p := range s {
		b.WriteString(p)
	}
	return b
}

func (b *html) text(s string) *html {
	b.WriteString(templ.EscapeString(s))
	return b
}

// attr writes name="value", or nothing when value is empty and omitEmpty is set.
func (b *html) attr(name, value string, omitEmpty bool) *html {
	if omitEmpty && value == "" {
		return b
	}
	b.WriteString(" " + name + `="` + templ.EscapeString(value) + `"`)
	return b
}

func component(build func(b *html)) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b html
		build(&b)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// ArchiveList renders archive links as <li> lines, one per link.
func ArchiveList(links []ArchiveLink, showCount bool) templ.Component {
	return component(func(b *html) {
		for _, l := range links {
			b.raw("\t<li><a href='").text(l.URL).raw("'>").text(l.Text).raw("</a>")
			if showCount {
				b.raw("&nbsp;(", strconv.Itoa(l.Count), ")")
			}
			b.raw("</li>\n")
		}
	})
}

// Menu renders a navigation menu as a <ul>, optionally inside a container element.
func Menu(m NavMenu) templ.Component {
	return component(func(b *html) {
		if m.Container != "" {
			b.raw("<", m.Container).attr("class", "menu-"+m.Slug+"-container", false).raw(">")
		}
		class := m.MenuClass
		if class == "" {
			class = "menu"
		}
		b.raw("<ul").attr("id", m.MenuID, true).attr("class", class, false).raw(">")
		for _, item := range m.Items {
			itemClass := "menu-item"
			if item.Current {
				itemClass += " current-menu-item"
			}
			b.raw("<li").attr("class", itemClass, false).raw("><a").attr("href", item.URL, false).raw(">").
				text(item.Title).raw("</a></li>")
		}
		b.raw("</ul>")
		if m.Container != "" {
			b.raw("</", m.Container, ">")
		}
	})
}

// Img renders an <img> element.
func Img(img Image) templ.Component {
	return component(func(b *html) {
		b.raw("<img")
		if img.Width > 0 && img.Height > 0 {
			b.attr("width", strconv.Itoa(img.Width), false).attr("height", strconv.Itoa(img.Height), false)
		}
		b.attr("src", img.Src, false).attr("class", img.Class, true).attr("alt", img.Alt, false).
			raw(` decoding="async" />`)
	})
}

// String renders c to a string.
func String(ctx context.Context, c templ.Component) (string, error) {
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
