package views

import (
	"context"
	"strings"
	"testing"
)

func TestArchiveList(t *testing.T) {
	links := []ArchiveLink{
		{URL: "/2024/02/", Text: "February 2024", Count: 3},
		{URL: "/2024/01/", Text: "January 2024", Count: 1},
	}
	got, err := String(context.Background(), ArchiveList(links, false))
	if err != nil {
		t.Fatal(err)
	}
	want := "\t<li><a href='/2024/02/'>February 2024</a></li>\n\t<li><a href='/2024/01/'>January 2024</a></li>\n"
	if got != want {
		t.Errorf("ArchiveList = %q, want %q", got, want)
	}

	got, _ = String(context.Background(), ArchiveList(links[:1], true))
	if !strings.Contains(got, "&nbsp;(3)") {
		t.Errorf("ArchiveList with counts = %q", got)
	}
}

func TestMenu(t *testing.T) {
	m := NavMenu{
		Slug:      "primary",
		Items:     []NavItem{{Title: "Home", URL: "/", Current: true}, {Title: "A & B", URL: "/ab/"}},
		MenuID:    "main",
		Container: "nav",
	}
	got, err := String(context.Background(), Menu(m))
	if err != nil {
		t.Fatal(err)
	}
	want := `<nav class="menu-primary-container"><ul id="main" class="menu">` +
		`<li class="menu-item current-menu-item"><a href="/">Home</a></li>` +
		`<li class="menu-item"><a href="/ab/">A &amp; B</a></li></ul></nav>`
	if got != want {
		t.Errorf("Menu =\n%s\nwant\n%s", got, want)
	}
}

func TestMenuWithoutContainer(t *testing.T) {
	got, _ := String(context.Background(), Menu(NavMenu{Slug: "x", MenuClass: "links"}))
	if got != `<ul class="links"></ul>` {
		t.Errorf("Menu = %q", got)
	}
}

func TestImg(t *testing.T) {
	got, _ := String(context.Background(), Img(Image{Src: "/public/uploads/logo.jpg", Width: 300, Height: 100, Class: "attachment-full size-full", Alt: `"Logo"`}))
	want := `<img width="300" height="100" src="/public/uploads/logo.jpg" class="attachment-full size-full" alt="&#34;Logo&#34;" decoding="async" />`
	if got != want {
		t.Errorf("Img =\n%s\nwant\n%s", got, want)
	}
}

func TestLayoutEscapesTitle(t *testing.T) {
	page := Layout(Site{Name: "Site"}, PageMeta{Title: "<Hi>"}, NotFound())
	got, err := String(context.Background(), page)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "<title>&lt;Hi&gt; | Site</title>") {
		t.Errorf("Layout title not escaped: %s", got)
	}
	if !strings.Contains(got, "<h1>Not found</h1>") {
		t.Errorf("Layout missing body: %s", got)
	}
}
