// Package views holds the HTML components used by the site: the fragments
// shortcodes embed (archive lists, menus, images) and the pages around them.
//
// Components are templ.Components so they compose with any templ template.
package views

import "github.com/a-h/templ"

// Site carries site-wide settings into page templates.
type Site struct {
	Name        string
	URL         string
	Description string
	Menu        templ.Component // optional header navigation
}

// PageMeta carries per-page metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical
}

// Entry is a post as listed on index and archive pages.
type Entry struct {
	Title   string
	Link    string
	Date    string
	Summary string
	Tags    []string
}

// ArchiveLink is one line of an archive listing.
type ArchiveLink struct {
	URL   string
	Text  string
	Count int // shown when ShowCount is set on the list
}

// NavItem is one menu entry.
type NavItem struct {
	Title   string
	URL     string
	Current bool
}

// NavMenu describes a rendered navigation menu.
type NavMenu struct {
	Slug      string
	Items     []NavItem
	MenuID    string
	MenuClass string
	Container string
}

// Image describes an <img> element.
type Image struct {
	Src    string
	Width  int
	Height int
	Class  string
	Alt    string
}

// AdminOption is one editable site option on the dashboard.
type AdminOption struct {
	Name  string
	Label string
	Value string
}

// AdminAttachment is one uploaded image on the dashboard.
type AdminAttachment struct {
	ID       int64
	Src      string
	Filename string
	IsLogo   bool
}
