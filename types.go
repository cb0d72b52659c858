package shortcodes

// Post is a blog post. Content may contain shortcodes; they are expanded
// when the post is rendered, never when it is stored.
type Post struct {
	Title     string
	Date      string // YYYY-MM-DD
	Tags      []string
	Summary   string
	Link      string
	Slug      string
	Content   string
	Published bool
}

// Menu is a named navigation menu.
type Menu struct {
	ID    int64
	Slug  string
	Name  string
	Items []MenuItem
}

// MenuItem is one link in a menu, ordered by Position.
type MenuItem struct {
	Title    string
	URL      string
	Position int
}

// Attachment is an uploaded image and its generated sizes.
type Attachment struct {
	ID         int64
	Filename   string
	Alt        string
	Width      int
	Height     int
	UploadedAt string
	Sizes      map[string]ImageSize // keyed by size name, "full" included
}

// ImageSize is one stored rendition of an attachment.
type ImageSize struct {
	Filename string
	Width    int
	Height   int
}

// PageMeta carries per-page metadata into the layout.
type PageMeta struct {
	Title       string
	Description string
	URL         string
}
