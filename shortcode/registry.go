package shortcode

import (
	"context"
	"io"
	"sort"
)

// Call describes one tag occurrence being rendered.
type Call struct {
	Tag     string
	Attrs   Attrs
	Content string    // raw inner text of an enclosing tag, "" otherwise
	Out     io.Writer // current output stream, never nil
}

// Renderer produces the replacement text for a tag occurrence.
type Renderer func(ctx context.Context, call *Call) string

// Registry maps tag names to renderers and owns the filter chains renderers
// pass their values through.
type Registry struct {
	tags map[string]Renderer

	// Strings holds chains over rendered text, IDs over numeric identifiers.
	Strings *Filters[string]
	IDs     *Filters[int64]
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		tags:    make(map[string]Renderer),
		Strings: NewFilters[string](),
		IDs:     NewFilters[int64](),
	}
}

// Register binds tag to fn. Registering a tag again replaces the earlier
// renderer. The same renderer may be registered under several tags.
func (r *Registry) Register(tag string, fn Renderer) {
	r.tags[tag] = fn
}

// Lookup returns the renderer registered for tag.
func (r *Registry) Lookup(tag string) (Renderer, bool) {
	fn, ok := r.tags[tag]
	return fn, ok
}

// Tags returns the registered tag names sorted.
func (r *Registry) Tags() []string {
	names := make([]string, 0, len(r.tags))
	for name := range r.tags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render runs the renderer registered for tag. The second result is false
// when no renderer is registered.
func (r *Registry) Render(ctx context.Context, out io.Writer, tag string, attrs Attrs, content string) (string, bool) {
	fn, ok := r.tags[tag]
	if !ok {
		return "", false
	}
	if out == nil {
		out = io.Discard
	}
	if attrs == nil {
		attrs = Attrs{}
	}
	return fn(ctx, &Call{Tag: tag, Attrs: attrs, Content: content, Out: out}), true
}
