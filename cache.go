package shortcodes

import (
	"strings"
	"sync"
	"time"
)

// PostCache is an in-memory cache of published posts and tags with a TTL.
// Archive listings and date pages read from it on every render.
type PostCache struct {
	mu      sync.RWMutex
	posts   []Post
	tags    []string
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

// NewPostCache creates a PostCache backed by the given Store.
func NewPostCache(s *Store, ttl time.Duration) *PostCache {
	return &PostCache{store: s, ttl: ttl}
}

func (c *PostCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.tags = nil
	c.mu.Unlock()
}

// snapshot returns cached posts and tags, reloading under the write lock
// only when the cache is stale.
func (c *PostCache) snapshot() ([]Post, []string, error) {
	c.mu.RLock()
	if c.valid() {
		posts, tags := c.posts, c.tags
		c.mu.RUnlock()
		return posts, tags, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.posts, c.tags, nil
	}
	posts, err := c.store.ListPosts("")
	if err != nil {
		return nil, nil, err
	}
	tags, err := c.store.ListTags()
	if err != nil {
		return nil, nil, err
	}
	if posts == nil {
		posts = []Post{}
	}
	c.posts, c.tags, c.fetched = posts, tags, time.Now()
	return c.posts, c.tags, nil
}

// ListPosts returns published posts, optionally filtered by tag.
func (c *PostCache) ListPosts(tag string) ([]Post, error) {
	posts, _, err := c.snapshot()
	if err != nil || tag == "" {
		return posts, err
	}
	normalized := normalizeTag(tag)
	var filtered []Post
	for _, p := range posts {
		for _, t := range p.Tags {
			if normalizeTag(t) == normalized {
				filtered = append(filtered, p)
				break
			}
		}
	}
	return filtered, nil
}

// ListTags returns all unique tags from published posts.
func (c *PostCache) ListTags() ([]string, error) {
	_, tags, err := c.snapshot()
	return tags, err
}

// GetPost returns a single published post by slug.
func (c *PostCache) GetPost(slug string) (Post, error) {
	posts, _, err := c.snapshot()
	if err != nil {
		return Post{}, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Post{}, ErrNotFound
}

// ListByDate returns published posts dated in year, and in month when
// month is non-zero.
func (c *PostCache) ListByDate(year, month int) ([]Post, error) {
	posts, _, err := c.snapshot()
	if err != nil {
		return nil, err
	}
	var out []Post
	for _, p := range posts {
		d, err := time.Parse(dateLayout, p.Date)
		if err != nil {
			continue
		}
		if d.Year() == year && (month == 0 || int(d.Month()) == month) {
			out = append(out, p)
		}
	}
	return out, nil
}

func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}

const dateLayout = "2006-01-02"
