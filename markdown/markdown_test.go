package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	tests := []struct {
		input    string
		contains string
	}{
		{"# Title", "<h1 id=\"title\">Title</h1>"},
		{"**bold**", "<strong>bold</strong>"},
		{"*italic*", "<em>italic</em>"},
		{"[link](/a/)", `<a href="/a/">link</a>`},
		{"~~gone~~", "<del>gone</del>"},
		{"| a | b |\n|---|---|\n| 1 | 2 |", "<table>"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if err := Render(&buf, tt.input); err != nil {
			t.Fatalf("Render(%q): %v", tt.input, err)
		}
		if !strings.Contains(buf.String(), tt.contains) {
			t.Errorf("Render(%q) = %q, want it to contain %q", tt.input, buf.String(), tt.contains)
		}
	}
}

func TestRenderKeepsRawHTML(t *testing.T) {
	var buf bytes.Buffer
	input := "Logo: <div class=\"site-logo\">Site</div>"
	if err := Render(&buf, input); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `<div class="site-logo">Site</div>`) {
		t.Errorf("raw HTML dropped: %q", buf.String())
	}
}

func TestMarkdownComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown("hello").Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "<p>hello</p>" {
		t.Errorf("Markdown = %q, want %q", buf.String(), "<p>hello</p>")
	}
}
