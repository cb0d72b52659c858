package shortcode

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"
)

func echoTag(_ context.Context, call *Call) string {
	return "<" + call.Tag + ">"
}

func TestRegisterAliasesShareRenderer(t *testing.T) {
	r := NewRegistry()
	r.Register("admin_email", echoTag)
	r.Register("admin-email", echoTag)

	a, ok := r.Lookup("admin_email")
	if !ok {
		t.Fatal("admin_email not registered")
	}
	b, ok := r.Lookup("admin-email")
	if !ok {
		t.Fatal("admin-email not registered")
	}
	if reflect.ValueOf(a).Pointer() != reflect.ValueOf(b).Pointer() {
		t.Error("aliases resolve to different renderers")
	}
}

func TestRegisterLastWins(t *testing.T) {
	r := NewRegistry()
	r.Register("date", func(context.Context, *Call) string { return "first" })
	r.Register("date", func(context.Context, *Call) string { return "second" })
	got, ok := r.Render(context.Background(), nil, "date", nil, "")
	if !ok || got != "second" {
		t.Errorf("Render = %q, %v, want %q, true", got, ok, "second")
	}
}

func TestRenderUnknownTag(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Render(context.Background(), nil, "nope", nil, ""); ok {
		t.Error("expected unknown tag to report false")
	}
}

func TestRenderFillsCall(t *testing.T) {
	r := NewRegistry()
	var seen *Call
	r.Register("t", func(_ context.Context, call *Call) string {
		seen = call
		call.Out.Write([]byte("side"))
		return "ok"
	})
	r.Render(context.Background(), nil, "t", nil, "inner")
	if seen == nil || seen.Attrs == nil || seen.Out == nil {
		t.Fatalf("call not filled: %#v", seen)
	}
	if seen.Content != "inner" {
		t.Errorf("Content = %q, want %q", seen.Content, "inner")
	}
}

func TestTagsSorted(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"title", "date", "menu"} {
		r.Register(name, echoTag)
	}
	got := strings.Join(r.Tags(), ",")
	if got != "date,menu,title" {
		t.Errorf("Tags = %q, want %q", got, "date,menu,title")
	}
}

func TestFiltersApplyInOrder(t *testing.T) {
	f := NewFilters[string]()
	f.Add("hook", func(s string) string { return s + "a" })
	f.Add("hook", func(s string) string { return s + "b" })
	f.Add("other", func(s string) string { return "x" })
	if got := f.Apply("hook", "v"); got != "vab" {
		t.Errorf("Apply = %q, want %q", got, "vab")
	}
	if got := f.Apply("missing", "v"); got != "v" {
		t.Errorf("Apply on empty chain = %q, want %q", got, "v")
	}
	if f.Len("hook") != 2 {
		t.Errorf("Len = %d, want 2", f.Len("hook"))
	}
}

func TestIDFilters(t *testing.T) {
	r := NewRegistry()
	r.IDs.Add("logo/id", func(id int64) int64 { return id * 2 })
	if got := r.IDs.Apply("logo/id", 21); got != 42 {
		t.Errorf("Apply = %d, want 42", got)
	}
}

func TestRenderPassesOutput(t *testing.T) {
	r := NewRegistry()
	r.Register("t", func(_ context.Context, call *Call) string {
		call.Out.Write([]byte("written"))
		return "returned"
	})
	var buf bytes.Buffer
	got, _ := r.Render(context.Background(), &buf, "t", Attrs{}, "")
	if got != "returned" || buf.String() != "written" {
		t.Errorf("got %q and wrote %q", got, buf.String())
	}
}
