package shortcode

import (
	"context"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// reAttr matches one attribute: name="v", name='v', name=v, "v", 'v' or v.
var reAttr = regexp.MustCompile(`([\w-]+)\s*=\s*"([^"]*)"(?:\s|$)|([\w-]+)\s*=\s*'([^']*)'(?:\s|$)|([\w-]+)\s*=\s*([^\s'"]+)(?:\s|$)|"([^"]*)"(?:\s|$)|'([^']*)'(?:\s|$)|(\S+)(?:\s|$)`)

var spaceReplacer = strings.NewReplacer("\u00a0", " ", "\u200b", " ")

// ParseAttrs parses the attribute text of a tag. Names are lower-cased and
// every value is a string. Values without a name are keyed by position:
// "0", "1" and so on.
func ParseAttrs(text string) Attrs {
	attrs := Attrs{}
	text = spaceReplacer.Replace(text)
	pos := 0
	for _, m := range reAttr.FindAllStringSubmatchIndex(text, -1) {
		group := func(g int) (string, bool) {
			if m[2*g] < 0 {
				return "", false
			}
			return text[m[2*g]:m[2*g+1]], true
		}
		var named bool
		for _, g := range []int{1, 3, 5} {
			if name, ok := group(g); ok {
				val, _ := group(g + 1)
				attrs[strings.ToLower(name)] = Str(val)
				named = true
				break
			}
		}
		if named {
			continue
		}
		for _, g := range []int{7, 8, 9} {
			if val, ok := group(g); ok {
				attrs[strconv.Itoa(pos)] = Str(val)
				pos++
				break
			}
		}
	}
	return attrs
}

type occurrence struct {
	name    string
	attrs   string
	content string
	end     int // index just past the occurrence
}

// Expand replaces every registered tag in content with its rendered output.
// Supported forms are [tag], [tag attrs], [tag /] and [tag]inner[/tag].
// Doubling the brackets, as in [[tag]], prints the tag literally. Tags with
// no registered renderer are left as written. out receives any direct
// writes renderers make while they run.
func (r *Registry) Expand(ctx context.Context, out io.Writer, content string) string {
	if len(r.tags) == 0 || !strings.Contains(content, "[") {
		return content
	}
	var b strings.Builder
	b.Grow(len(content))
	i := 0
	for i < len(content) {
		j := strings.IndexByte(content[i:], '[')
		if j < 0 {
			b.WriteString(content[i:])
			break
		}
		j += i
		b.WriteString(content[i:j])

		if j+1 < len(content) && content[j+1] == '[' {
			if occ, ok := r.scan(content, j+1); ok && occ.end < len(content) && content[occ.end] == ']' {
				b.WriteString(content[j+1 : occ.end])
				i = occ.end + 1
				continue
			}
			b.WriteByte('[')
			i = j + 1
			continue
		}

		occ, ok := r.scan(content, j)
		if !ok {
			b.WriteByte('[')
			i = j + 1
			continue
		}
		rendered, _ := r.Render(ctx, out, occ.name, ParseAttrs(occ.attrs), occ.content)
		b.WriteString(rendered)
		i = occ.end
	}
	return b.String()
}

// scan reads a registered tag starting at the '[' at index p.
func (r *Registry) scan(s string, p int) (occurrence, bool) {
	q := p + 1
	n := q
	for n < len(s) && isNameByte(s[n]) {
		n++
	}
	if n == q {
		return occurrence{}, false
	}
	if n < len(s) && !strings.ContainsRune(" \t\r\n/]", rune(s[n])) && !strings.HasPrefix(s[n:], "\u00a0") {
		return occurrence{}, false
	}
	name := s[q:n]
	if _, ok := r.tags[name]; !ok {
		return occurrence{}, false
	}
	closeAt := strings.IndexByte(s[n:], ']')
	if closeAt < 0 {
		return occurrence{}, false
	}
	closeAt += n
	occ := occurrence{name: name, attrs: s[n:closeAt], end: closeAt + 1}
	if strings.HasSuffix(occ.attrs, "/") {
		occ.attrs = strings.TrimSuffix(occ.attrs, "/")
		return occ, true
	}
	closer := "[/" + name + "]"
	if k := strings.Index(s[occ.end:], closer); k >= 0 {
		occ.content = s[occ.end : occ.end+k]
		occ.end += k + len(closer)
	}
	return occ, true
}

func isNameByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_' || c == '-':
		return true
	}
	return false
}
