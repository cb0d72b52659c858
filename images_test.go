package shortcodes

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testPNG(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return &buf
}

func TestProcessImage(t *testing.T) {
	att, files, err := processImage(testPNG(t, 400, 200), "my-logo", "Logo")
	if err != nil {
		t.Fatalf("processImage failed: %v", err)
	}
	if att.Filename != "my-logo.jpg" || att.Width != 400 || att.Height != 200 || att.Alt != "Logo" {
		t.Errorf("attachment = %+v", att)
	}
	// large is wider than the source and is skipped.
	wantSizes := map[string]ImageSize{
		"thumbnail": {Filename: "my-logo-150x75.jpg", Width: 150, Height: 75},
		"medium":    {Filename: "my-logo-300x150.jpg", Width: 300, Height: 150},
	}
	if diff := cmp.Diff(wantSizes, att.Sizes); diff != "" {
		t.Errorf("sizes mismatch (-want +got):\n%s", diff)
	}
	for _, name := range []string{"my-logo.jpg", "my-logo-150x75.jpg", "my-logo-300x150.jpg"} {
		data, ok := files[name]
		if !ok {
			t.Errorf("missing file %s", name)
			continue
		}
		if _, format, err := image.Decode(bytes.NewReader(data)); err != nil || format != "jpeg" {
			t.Errorf("%s decoded as %q, %v", name, format, err)
		}
	}
}

func TestProcessImageRejectsGarbage(t *testing.T) {
	if _, _, err := processImage(strings.NewReader("not an image"), "x", ""); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestProcessImageCapsWidth(t *testing.T) {
	att, _, err := processImage(testPNG(t, maxImageWidth+100, 10), "wide", "")
	if err != nil {
		t.Fatal(err)
	}
	if att.Width != maxImageWidth {
		t.Errorf("width = %d, want %d", att.Width, maxImageWidth)
	}
}

func TestUniqueBase(t *testing.T) {
	dir := t.TempDir()
	if got := uniqueBase(dir, "logo"); got != "logo" {
		t.Errorf("uniqueBase in empty dir = %q", got)
	}
	for _, name := range []string{"logo.jpg", "logo-2.jpg"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if got := uniqueBase(dir, "logo"); got != "logo-3" {
		t.Errorf("uniqueBase = %q, want logo-3", got)
	}
}

func TestUploadBase(t *testing.T) {
	tests := []struct {
		name, want string
	}{
		{"My Logo.png", "my-logo"},
		{"photo.jpeg", "photo"},
		{"日本.png", "image"},
		{".png", "image"},
		{"", "image"},
	}
	for _, tt := range tests {
		if got := uploadBase(tt.name); got != tt.want {
			t.Errorf("uploadBase(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestSaveUploadEmptySlugs(t *testing.T) {
	a := newTestApp(t)
	dir := filepath.Join(a.staticDir, uploadsSubdir)

	first, err := a.saveUpload(testPNG(t, 20, 10), "日本.png", "")
	if err != nil {
		t.Fatalf("first upload: %v", err)
	}
	second, err := a.saveUpload(testPNG(t, 30, 10), ".png", "")
	if err != nil {
		t.Fatalf("second upload: %v", err)
	}
	if first.Filename != "image.jpg" || second.Filename != "image-2.jpg" {
		t.Errorf("filenames = %q, %q, want image.jpg, image-2.jpg", first.Filename, second.Filename)
	}

	for _, att := range []Attachment{first, second} {
		stored, err := a.Store.GetAttachment(att.ID)
		if err != nil {
			t.Fatalf("GetAttachment(%d): %v", att.ID, err)
		}
		f, err := os.Open(filepath.Join(dir, stored.Filename))
		if err != nil {
			t.Fatal(err)
		}
		cfg, _, err := image.DecodeConfig(f)
		f.Close()
		if err != nil || cfg.Width != stored.Width {
			t.Errorf("%s on disk is %dpx wide (%v), want %d", stored.Filename, cfg.Width, err, stored.Width)
		}
	}
}

func TestSaveUploadRemovesFilesOnFailure(t *testing.T) {
	a := newTestApp(t)
	dir := filepath.Join(a.staticDir, uploadsSubdir)

	// A row whose files are gone still holds the name.
	if _, err := a.Store.SaveAttachment(Attachment{Filename: "logo.jpg", Width: 1, Height: 1}); err != nil {
		t.Fatal(err)
	}
	if _, err := a.saveUpload(testPNG(t, 200, 100), "logo.png", ""); err == nil {
		t.Fatal("expected the insert to fail")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		t.Errorf("left behind %s", e.Name())
	}
}

func TestSaveUploadRejectsGarbage(t *testing.T) {
	a := newTestApp(t)
	_, err := a.saveUpload(strings.NewReader("not an image"), "x.png", "")
	if !errors.Is(err, errBadImage) {
		t.Errorf("err = %v, want errBadImage", err)
	}
}
