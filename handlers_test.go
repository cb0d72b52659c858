package shortcodes

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	dir := t.TempDir()
	a := New(SiteConfig{
		Name:          "Test Site",
		AdminEmail:    "admin@example.com",
		DatabasePath:  filepath.Join(dir, "site.db"),
		AdminPassword: "secret",
		SessionSecret: "0123456789abcdef0123456789abcdef",
	}, WithStaticDir(dir))
	if err := a.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { a.Close() })

	savePosts(t, a.Store,
		Post{
			Slug:      "hello",
			Title:     "Hello",
			Date:      "2024-01-05",
			Tags:      []string{"go"},
			Summary:   "From [site-name]",
			Content:   "# [title]\n\nWritten for [site-name]. [[date]]",
			Published: true,
		},
		Post{Slug: "older", Title: "Older", Date: "2023-06-01", Published: true},
	)
	if _, err := a.Store.SaveMenu(Menu{Slug: "primary", Name: "Primary", Items: []MenuItem{
		{Title: "Home", URL: "/"},
		{Title: "Hello", URL: "/blog/hello/"},
	}}); err != nil {
		t.Fatal(err)
	}
	return a
}

func get(a *App, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func post(a *App, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func TestInitRequiresSecrets(t *testing.T) {
	a := New(SiteConfig{DatabasePath: filepath.Join(t.TempDir(), "site.db")})
	if err := a.Init(); err == nil {
		t.Fatal("expected Init to fail without an admin password")
	}
}

func TestPostPageExpandsShortcodes(t *testing.T) {
	a := newTestApp(t)

	rec := get(a, "/blog/hello/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`<h1 id="hello">Hello</h1>`,
		"Written for Test Site. [date]",
		`<meta name="description" content="From Test Site">`,
		`<nav class="menu-primary-container"><ul id="menu-primary" class="menu">`,
		`<li class="menu-item current-menu-item"><a href="/blog/hello/">Hello</a></li>`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("post page missing %q\n%s", want, body)
		}
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "public, max-age=300" {
		t.Errorf("Cache-Control = %q", cc)
	}
}

func TestTrailingSlashRedirect(t *testing.T) {
	a := newTestApp(t)
	rec := get(a, "/blog/hello")
	if rec.Code != http.StatusMovedPermanently || rec.Header().Get("Location") != "/blog/hello/" {
		t.Errorf("got %d to %q, want 301 to /blog/hello/", rec.Code, rec.Header().Get("Location"))
	}
}

func TestHomeExpandsSummaries(t *testing.T) {
	a := newTestApp(t)
	rec := get(a, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<p>From Test Site</p>") {
		t.Errorf("summary not expanded:\n%s", rec.Body.String())
	}
}

func TestArchivePages(t *testing.T) {
	a := newTestApp(t)

	tests := []struct {
		path    string
		code    int
		heading string
	}{
		{"/2024/", http.StatusOK, "<h1>Year: 2024</h1>"},
		{"/2024/01/", http.StatusOK, "<h1>Month: January 2024</h1>"},
		{"/tag/go/", http.StatusOK, "<h1>Tag: go</h1>"},
		{"/2020/", http.StatusNotFound, "<h1>Not found</h1>"},
		{"/2024/13/", http.StatusNotFound, "<h1>Not found</h1>"},
		{"/blog/missing/", http.StatusNotFound, "<h1>Not found</h1>"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(a, tt.path)
			if rec.Code != tt.code {
				t.Errorf("status = %d, want %d", rec.Code, tt.code)
			}
			if !strings.Contains(rec.Body.String(), tt.heading) {
				t.Errorf("body missing %q", tt.heading)
			}
		})
	}
}

func TestFeedAndSitemap(t *testing.T) {
	a := newTestApp(t)

	feed := get(a, "/feed.xml")
	if feed.Code != http.StatusOK {
		t.Fatalf("feed status = %d", feed.Code)
	}
	if !strings.Contains(feed.Body.String(), "<description>From Test Site</description>") {
		t.Errorf("feed summary not expanded:\n%s", feed.Body.String())
	}

	sitemap := get(a, "/sitemap.xml")
	if sitemap.Code != http.StatusOK {
		t.Fatalf("sitemap status = %d", sitemap.Code)
	}
	for _, want := range []string{"/blog/hello/</loc>", "/2024/01/</loc>"} {
		if !strings.Contains(sitemap.Body.String(), want) {
			t.Errorf("sitemap missing %q", want)
		}
	}
}

var csrfField = regexp.MustCompile(`name="_csrf" value="([^"]+)"`)

func TestAdminUpdatesSiteName(t *testing.T) {
	a := newTestApp(t)

	login := get(a, "/admin/")
	if login.Code != http.StatusOK {
		t.Fatalf("admin status = %d", login.Code)
	}
	m := csrfField.FindStringSubmatch(login.Body.String())
	if m == nil {
		t.Fatal("login form has no csrf token")
	}
	token := m[1]
	cookies := login.Result().Cookies()

	rec := post(a, "/admin/login/", url.Values{"_csrf": {"bogus"}, "password": {"secret"}}, cookies...)
	if rec.Code != http.StatusForbidden {
		t.Errorf("login with a bad token = %d, want 403", rec.Code)
	}

	rec = post(a, "/admin/login/", url.Values{"_csrf": {token}, "password": {"wrong"}}, cookies...)
	if !strings.Contains(rec.Body.String(), "Wrong password.") {
		t.Errorf("wrong password not reported")
	}

	rec = post(a, "/admin/login/", url.Values{"_csrf": {token}, "password": {"secret"}}, cookies...)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("login status = %d, want 303", rec.Code)
	}
	cookies = append(cookies, rec.Result().Cookies()...)

	rec = post(a, "/admin/options/", url.Values{
		"_csrf":    {token},
		"blogname": {"<b>Renamed</b>"},
	}, cookies...)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("options status = %d, want 303", rec.Code)
	}

	rec = post(a, "/admin/options/", url.Values{
		"_csrf":       {token},
		"admin_email": {"not an email"},
	}, cookies...)
	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "invalid+email") {
		t.Errorf("bad email redirect = %q", loc)
	}

	page := get(a, "/blog/hello/")
	if !strings.Contains(page.Body.String(), "Written for Renamed.") {
		t.Errorf("site name not updated:\n%s", page.Body.String())
	}
}

func TestSanitizeOption(t *testing.T) {
	tests := []struct {
		name, value string
		want        string
		wantErr     bool
	}{
		{"blogname", "  <script>x</script>My <b>Site</b> ", "My Site", false},
		{"blogdescription", "Just a blog", "Just a blog", false},
		{"admin_email", "Admin <admin@example.com>", "admin@example.com", false},
		{"admin_email", "", "", false},
		{"admin_email", "nope", "", true},
		{"timezone_string", "Europe/Istanbul", "Europe/Istanbul", false},
		{"timezone_string", "Mars/Olympus", "", true},
		{"custom", " kept ", "kept", false},
	}
	for _, tt := range tests {
		got, err := sanitizeOption(tt.name, tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("sanitizeOption(%q, %q) err = %v, wantErr %v", tt.name, tt.value, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("sanitizeOption(%q, %q) = %q, want %q", tt.name, tt.value, got, tt.want)
		}
	}
}
