package shortcode

import (
	"context"
	"strings"
	"testing"
)

func testRegistry() *Registry {
	r := NewRegistry()
	r.Register("date", func(_ context.Context, call *Call) string {
		if f := call.Attrs.String("format"); f != "" {
			return "D(" + f + ")"
		}
		return "D"
	})
	r.Register("site-name", func(context.Context, *Call) string { return "Site" })
	r.Register("wrap", func(_ context.Context, call *Call) string {
		return "<b>" + call.Content + "</b>"
	})
	r.Register("keys", func(_ context.Context, call *Call) string {
		return strings.Join(call.Attrs.Keys(), ",")
	})
	return r
}

func TestExpand(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"no tags here", "no tags here"},
		{"[date]", "D"},
		{"(c) [date format=\"Y\"] [site-name]", "(c) D(Y) Site"},
		{"[date format='Y' /]", "D(Y)"},
		{"[date/]", "D"},
		{"[wrap]inner [date][/wrap]", "<b>inner [date]</b>"},
		{"[wrap]unclosed", "<b></b>unclosed"},
		{"[[date]]", "[date]"},
		{"[[wrap]x[/wrap]]", "[wrap]x[/wrap]"},
		{"[[date]", "[D"},
		{"[unknown] [date]", "[unknown] D"},
		{"[datex]", "[datex]"},
		{"[date.x]", "[date.x]"},
		{"[date", "[date"},
		{"a [ b ] c", "a [ b ] c"},
		{"[keys b=1 A=2 pos]", "0,a,b"},
	}
	r := testRegistry()
	for _, tt := range tests {
		got := r.Expand(context.Background(), nil, tt.input)
		if got != tt.expected {
			t.Errorf("Expand(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestExpandEmptyRegistry(t *testing.T) {
	r := NewRegistry()
	if got := r.Expand(context.Background(), nil, "[date]"); got != "[date]" {
		t.Errorf("Expand = %q, want %q", got, "[date]")
	}
}

func TestExpandIsRepeatable(t *testing.T) {
	r := testRegistry()
	in := "[date format=\"Y\"] and [site-name]"
	first := r.Expand(context.Background(), nil, in)
	second := r.Expand(context.Background(), nil, in)
	if first != second {
		t.Errorf("Expand not repeatable: %q then %q", first, second)
	}
}
