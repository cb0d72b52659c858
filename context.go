package shortcodes

import "context"

type postKey struct{}

type archiveKey struct{}

// Archive describes the listing being rendered.
type Archive struct {
	Kind  string // "year", "month" or "tag"
	Year  int
	Month int
	Tag   string
}

// WithPost returns a context in which p is the post being rendered.
func WithPost(ctx context.Context, p Post) context.Context {
	return context.WithValue(ctx, postKey{}, p)
}

// PostFromContext returns the post set by WithPost.
func PostFromContext(ctx context.Context) (Post, bool) {
	p, ok := ctx.Value(postKey{}).(Post)
	return p, ok
}

// WithArchive returns a context in which a is the archive being rendered.
func WithArchive(ctx context.Context, a Archive) context.Context {
	return context.WithValue(ctx, archiveKey{}, a)
}

// ArchiveFromContext returns the archive set by WithArchive.
func ArchiveFromContext(ctx context.Context) (Archive, bool) {
	a, ok := ctx.Value(archiveKey{}).(Archive)
	return a, ok
}
