// Package markdown renders post content to HTML as a templ component.
//
// Raw HTML in the source is passed through, since shortcode output is
// expanded into the Markdown before it is rendered.
package markdown

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Typographer),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// Markdown returns a templ.Component that renders content as HTML.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return Render(w, content)
	})
}

// Render writes the HTML form of content to w.
func Render(w io.Writer, content string) error {
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}
