package shortcodes

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = sql.ErrNoRows

// Store wraps a SQLite database holding posts, site options, theme
// modifications, menus and attachments.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets page renders read while the admin writes; the busy timeout
	// makes writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    tags TEXT NOT NULL,
    summary TEXT NOT NULL,
    content TEXT NOT NULL,
    published INTEGER NOT NULL DEFAULT 1
);
CREATE TABLE IF NOT EXISTS options (
    name TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS theme_mods (
    name TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS menus (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    slug TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS menu_items (
    menu_id INTEGER NOT NULL REFERENCES menus(id),
    position INTEGER NOT NULL,
    title TEXT NOT NULL,
    url TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS attachments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    filename TEXT NOT NULL UNIQUE,
    alt TEXT NOT NULL DEFAULT '',
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    uploaded_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS attachment_sizes (
    attachment_id INTEGER NOT NULL REFERENCES attachments(id),
    size TEXT NOT NULL,
    filename TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    PRIMARY KEY (attachment_id, size)
);
`)
	return err
}

const postColumns = `slug, title, date, tags, summary, content, published`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (Post, error) {
	var slug, title, date, tags, summary, content string
	var published int
	if err := row.Scan(&slug, &title, &date, &tags, &summary, &content, &published); err != nil {
		return Post{}, err
	}
	return Post{
		Slug:      slug,
		Title:     title,
		Date:      date,
		Tags:      ParseTags(tags),
		Summary:   summary,
		Content:   content,
		Link:      "/blog/" + slug + "/",
		Published: published == 1,
	}, nil
}

func (s *Store) queryPosts(query string, args ...any) ([]Post, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ListPosts returns published posts ordered by date descending.
// If tag is non-empty, results are filtered to posts carrying that tag.
func (s *Store) ListPosts(tag string) ([]Post, error) {
	if tag == "" {
		return s.queryPosts(`SELECT ` + postColumns + ` FROM posts WHERE published = 1 ORDER BY date DESC`)
	}
	return s.queryPosts(`SELECT `+postColumns+` FROM posts WHERE published = 1 AND instr(lower(tags), ',' || ? || ',') > 0 ORDER BY date DESC`,
		normalizeTag(tag))
}

// ListAllPosts returns every post, drafts included, ordered by date descending.
func (s *Store) ListAllPosts() ([]Post, error) {
	return s.queryPosts(`SELECT ` + postColumns + ` FROM posts ORDER BY date DESC`)
}

// ListTags returns a sorted, deduplicated slice of all tags from published posts.
func (s *Store) ListTags() ([]string, error) {
	rows, err := s.db.Query(`SELECT tags FROM posts WHERE published = 1`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := make(map[string]struct{})
	for rows.Next() {
		var tags string
		if err := rows.Scan(&tags); err != nil {
			return nil, err
		}
		for _, t := range ParseTags(tags) {
			set[strings.ToLower(t)] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	result := make([]string, 0, len(set))
	for t := range set {
		result = append(result, t)
	}
	sort.Strings(result)
	return result, nil
}

// GetPost returns a single published post by slug.
func (s *Store) GetPost(slug string) (Post, error) {
	return scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ? AND published = 1`, slug))
}

// GetPostAny returns a post by slug regardless of published status.
func (s *Store) GetPostAny(slug string) (Post, error) {
	return scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug))
}

// SavePost upserts a post. Tags are normalized to lowercase.
func (s *Store) SavePost(p Post) error {
	normalized := make([]string, len(p.Tags))
	for i, t := range p.Tags {
		normalized[i] = normalizeTag(t)
	}
	published := 0
	if p.Published {
		published = 1
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO posts (`+postColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Slug, p.Title, p.Date, ","+strings.Join(normalized, ",")+",", p.Summary, p.Content, published)
	return err
}

// DeletePost removes a post by slug.
func (s *Store) DeletePost(slug string) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE slug = ?`, slug)
	return err
}

// ParseTags splits a comma-delimited tag string (e.g. ",go,web,") into a slice.
func ParseTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	parts := strings.Split(tagString, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// GetOption returns a site option, or ErrNotFound.
func (s *Store) GetOption(name string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM options WHERE name = ?`, name).Scan(&value)
	return value, err
}

// SetOption stores a site option.
func (s *Store) SetOption(name, value string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO options (name, value) VALUES (?, ?)`, name, value)
	return err
}

// ListOptions returns every stored option.
func (s *Store) ListOptions() (map[string]string, error) {
	rows, err := s.db.Query(`SELECT name, value FROM options`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	opts := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		opts[name] = value
	}
	return opts, rows.Err()
}

// GetThemeMod returns a theme modification, or ErrNotFound.
func (s *Store) GetThemeMod(name string) (ThemeValue, error) {
	var raw string
	if err := s.db.QueryRow(`SELECT value FROM theme_mods WHERE name = ?`, name).Scan(&raw); err != nil {
		return ThemeValue{}, err
	}
	return decodeThemeValue(raw)
}

// SetThemeMod stores a theme modification. Compound values keep their record.
func (s *Store) SetThemeMod(name string, v ThemeValue) error {
	var raw []byte
	var err error
	if v.Record != nil {
		raw, err = json.Marshal(v.Record)
	} else {
		raw, err = json.Marshal(v.ID)
	}
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT OR REPLACE INTO theme_mods (name, value) VALUES (?, ?)`, name, string(raw))
	return err
}

func decodeThemeValue(raw string) (ThemeValue, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "{") {
		var rec ThemeRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return ThemeValue{}, fmt.Errorf("decode theme record: %w", err)
		}
		return ThemeValue{Record: &rec}, nil
	}
	raw = strings.Trim(raw, `"`)
	if raw == "" || raw == "false" || raw == "null" {
		return ThemeValue{}, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return ThemeValue{}, fmt.Errorf("decode theme id %q: %w", raw, err)
	}
	return ThemeValue{ID: id}, nil
}

// SaveMenu upserts a menu by slug and replaces its items. It returns the menu ID.
func (s *Store) SaveMenu(m Menu) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO menus (slug, name) VALUES (?, ?) ON CONFLICT(slug) DO UPDATE SET name = excluded.name`,
		m.Slug, m.Name); err != nil {
		return 0, err
	}
	var id int64
	if err := tx.QueryRow(`SELECT id FROM menus WHERE slug = ?`, m.Slug).Scan(&id); err != nil {
		return 0, err
	}
	if _, err := tx.Exec(`DELETE FROM menu_items WHERE menu_id = ?`, id); err != nil {
		return 0, err
	}
	for i, item := range m.Items {
		pos := item.Position
		if pos == 0 {
			pos = i + 1
		}
		if _, err := tx.Exec(`INSERT INTO menu_items (menu_id, position, title, url) VALUES (?, ?, ?, ?)`,
			id, pos, item.Title, item.URL); err != nil {
			return 0, err
		}
	}
	return id, tx.Commit()
}

// GetMenu looks a menu up by numeric ID, slug or name, in that order.
func (s *Store) GetMenu(ref string) (Menu, error) {
	var m Menu
	var err error
	if id, convErr := strconv.ParseInt(ref, 10, 64); convErr == nil {
		err = s.db.QueryRow(`SELECT id, slug, name FROM menus WHERE id = ?`, id).Scan(&m.ID, &m.Slug, &m.Name)
	} else {
		err = sql.ErrNoRows
	}
	if err == sql.ErrNoRows {
		err = s.db.QueryRow(`SELECT id, slug, name FROM menus WHERE slug = ? OR name = ? ORDER BY slug = ? DESC LIMIT 1`,
			ref, ref, ref).Scan(&m.ID, &m.Slug, &m.Name)
	}
	if err != nil {
		return Menu{}, err
	}

	rows, err := s.db.Query(`SELECT title, url, position FROM menu_items WHERE menu_id = ? ORDER BY position`, m.ID)
	if err != nil {
		return Menu{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var item MenuItem
		if err := rows.Scan(&item.Title, &item.URL, &item.Position); err != nil {
			return Menu{}, err
		}
		m.Items = append(m.Items, item)
	}
	return m, rows.Err()
}

// ListMenus returns all menus without their items, ordered by slug.
func (s *Store) ListMenus() ([]Menu, error) {
	rows, err := s.db.Query(`SELECT id, slug, name FROM menus ORDER BY slug`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var menus []Menu
	for rows.Next() {
		var m Menu
		if err := rows.Scan(&m.ID, &m.Slug, &m.Name); err != nil {
			return nil, err
		}
		menus = append(menus, m)
	}
	return menus, rows.Err()
}

// SaveAttachment inserts an attachment and its sizes and returns its ID.
func (s *Store) SaveAttachment(a Attachment) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO attachments (filename, alt, width, height, uploaded_at) VALUES (?, ?, ?, ?, ?)`,
		a.Filename, a.Alt, a.Width, a.Height, a.UploadedAt)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	for name, size := range a.Sizes {
		if _, err := tx.Exec(`INSERT INTO attachment_sizes (attachment_id, size, filename, width, height) VALUES (?, ?, ?, ?, ?)`,
			id, name, size.Filename, size.Width, size.Height); err != nil {
			return 0, err
		}
	}
	return id, tx.Commit()
}

// GetAttachment returns an attachment with its sizes, or ErrNotFound.
func (s *Store) GetAttachment(id int64) (Attachment, error) {
	a := Attachment{ID: id}
	err := s.db.QueryRow(`SELECT filename, alt, width, height, uploaded_at FROM attachments WHERE id = ?`, id).
		Scan(&a.Filename, &a.Alt, &a.Width, &a.Height, &a.UploadedAt)
	if err != nil {
		return Attachment{}, err
	}
	rows, err := s.db.Query(`SELECT size, filename, width, height FROM attachment_sizes WHERE attachment_id = ?`, id)
	if err != nil {
		return Attachment{}, err
	}
	defer rows.Close()
	a.Sizes = make(map[string]ImageSize)
	for rows.Next() {
		var name string
		var size ImageSize
		if err := rows.Scan(&name, &size.Filename, &size.Width, &size.Height); err != nil {
			return Attachment{}, err
		}
		a.Sizes[name] = size
	}
	return a, rows.Err()
}

// ListAttachments returns all attachments, newest first, without sizes.
func (s *Store) ListAttachments() ([]Attachment, error) {
	rows, err := s.db.Query(`SELECT id, filename, alt, width, height, uploaded_at FROM attachments ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Attachment
	for rows.Next() {
		var a Attachment
		if err := rows.Scan(&a.ID, &a.Filename, &a.Alt, &a.Width, &a.Height, &a.UploadedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// DeleteAttachment removes an attachment and its sizes.
func (s *Store) DeleteAttachment(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.Exec(`DELETE FROM attachment_sizes WHERE attachment_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM attachments WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}
