package shortcodes

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Seed is a YAML description of site content, loaded with LoadSeed and
// written with (*Store).ApplySeed.
//
//	options:
//	  blogname: My Site
//	  admin_email: admin@example.com
//	theme_mods:
//	  custom_logo: 42
//	menus:
//	  - slug: primary
//	    name: Primary
//	    items:
//	      - {title: Home, url: /}
//	posts:
//	  - slug: hello
//	    title: Hello
//	    date: "2024-01-05"
//	    content: "(c) [date format=\"Y\"] [site-name]"
type Seed struct {
	Options   map[string]string    `yaml:"options"`
	ThemeMods map[string]yaml.Node `yaml:"theme_mods"`
	Menus     []SeedMenu           `yaml:"menus"`
	Posts     []SeedPost           `yaml:"posts"`
}

// SeedMenu is a menu entry in a seed file.
type SeedMenu struct {
	Slug  string `yaml:"slug"`
	Name  string `yaml:"name"`
	Items []struct {
		Title string `yaml:"title"`
		URL   string `yaml:"url"`
	} `yaml:"items"`
}

// SeedPost is a post entry in a seed file. Posts are published unless
// draft is set.
type SeedPost struct {
	Slug    string   `yaml:"slug"`
	Title   string   `yaml:"title"`
	Date    string   `yaml:"date"`
	Tags    []string `yaml:"tags"`
	Summary string   `yaml:"summary"`
	Content string   `yaml:"content"`
	Draft   bool     `yaml:"draft"`
}

// LoadSeed reads and parses a seed file.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("shortcodes: read seed: %w", err)
	}
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("shortcodes: parse seed %s: %w", path, err)
	}
	return &seed, nil
}

// themeValue decodes a theme mod node: a bare ID, or a mapping with id,
// url, width and height keys.
func themeValue(node yaml.Node) (ThemeValue, error) {
	if node.Kind == yaml.MappingNode {
		var rec ThemeRecord
		if err := node.Decode(&rec); err != nil {
			return ThemeValue{}, err
		}
		return ThemeValue{Record: &rec}, nil
	}
	var id int64
	if err := node.Decode(&id); err != nil {
		return ThemeValue{}, err
	}
	return ThemeValue{ID: id}, nil
}

// ApplySeed writes everything in seed to the store. Options are sanitized
// the same way as on the admin dashboard.
func (s *Store) ApplySeed(seed *Seed) error {
	for name, value := range seed.Options {
		clean, err := sanitizeOption(name, value)
		if err != nil {
			return fmt.Errorf("shortcodes: seed option %s: %w", name, err)
		}
		if err := s.SetOption(name, clean); err != nil {
			return err
		}
	}
	for name, node := range seed.ThemeMods {
		v, err := themeValue(node)
		if err != nil {
			return fmt.Errorf("shortcodes: seed theme mod %s: %w", name, err)
		}
		if err := s.SetThemeMod(name, v); err != nil {
			return err
		}
	}
	for _, m := range seed.Menus {
		menu := Menu{Slug: m.Slug, Name: m.Name}
		if menu.Slug == "" {
			menu.Slug = Slugify(m.Name)
		}
		if menu.Name == "" {
			menu.Name = menu.Slug
		}
		for i, item := range m.Items {
			menu.Items = append(menu.Items, MenuItem{Title: item.Title, URL: item.URL, Position: i + 1})
		}
		if _, err := s.SaveMenu(menu); err != nil {
			return fmt.Errorf("shortcodes: seed menu %s: %w", menu.Slug, err)
		}
	}
	for _, p := range seed.Posts {
		post := Post{
			Slug:      strings.TrimSpace(p.Slug),
			Title:     p.Title,
			Date:      p.Date,
			Tags:      FilterEmpty(p.Tags),
			Summary:   p.Summary,
			Content:   p.Content,
			Published: !p.Draft,
		}
		if post.Slug == "" {
			post.Slug = Slugify(p.Title)
		}
		if post.Date == "" {
			post.Date = time.Now().Format(dateLayout)
		}
		if _, err := time.Parse(dateLayout, post.Date); err != nil {
			return fmt.Errorf("shortcodes: seed post %s: invalid date %q", post.Slug, post.Date)
		}
		if err := s.SavePost(post); err != nil {
			return err
		}
	}
	return nil
}
