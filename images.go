package shortcodes

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 2048
	jpegQuality   = 82
	maxUploadSize = 10 << 20 // 10MB
	uploadsSubdir = "uploads"
)

// imageSizes are the renditions generated for every upload, besides "full".
var imageSizes = []struct {
	name  string
	width int
}{
	{"thumbnail", 150},
	{"medium", 300},
	{"large", 1024},
}

// processImage decodes src and encodes a JPEG for the full image and for
// each size narrower than it, all named after base. Files are keyed by
// their output filename.
func processImage(src io.Reader, base, alt string) (Attachment, map[string][]byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return Attachment{}, nil, fmt.Errorf("decode image: %w", err)
	}
	if img.Bounds().Dx() > maxImageWidth {
		img = scaleToWidth(img, maxImageWidth)
	}

	files := make(map[string][]byte)
	att := Attachment{
		Filename:   base + ".jpg",
		Alt:        alt,
		Width:      img.Bounds().Dx(),
		Height:     img.Bounds().Dy(),
		UploadedAt: time.Now().UTC().Format(time.RFC3339),
		Sizes:      make(map[string]ImageSize),
	}
	data, err := encodeJPEG(img)
	if err != nil {
		return Attachment{}, nil, err
	}
	files[att.Filename] = data

	for _, size := range imageSizes {
		if size.width >= att.Width {
			continue
		}
		scaled := scaleToWidth(img, size.width)
		w, h := scaled.Bounds().Dx(), scaled.Bounds().Dy()
		name := base + "-" + strconv.Itoa(w) + "x" + strconv.Itoa(h) + ".jpg"
		data, err := encodeJPEG(scaled)
		if err != nil {
			return Attachment{}, nil, err
		}
		files[name] = data
		att.Sizes[size.name] = ImageSize{Filename: name, Width: w, Height: h}
	}
	return att, files, nil
}

func scaleToWidth(img image.Image, width int) image.Image {
	b := img.Bounds()
	height := b.Dy() * width / b.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// uploadBase converts an uploaded filename to the slug its files are named
// after. Names with no usable characters become "image".
func uploadBase(name string) string {
	if base := Slugify(strings.TrimSuffix(name, filepath.Ext(name))); base != "" {
		return base
	}
	return "image"
}

// uniqueBase returns a base name whose full-size file does not exist in dir yet.
func uniqueBase(dir, base string) string {
	candidate := base
	for n := 2; ; n++ {
		if _, err := os.Stat(filepath.Join(dir, candidate+".jpg")); err != nil {
			return candidate
		}
		candidate = base + "-" + strconv.Itoa(n)
	}
}

func (a *App) handleImageUpload(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	file, err := c.FormFile("image")
	if err != nil {
		return c.String(http.StatusBadRequest, "No image file provided")
	}
	if file.Size > maxUploadSize {
		return c.String(http.StatusBadRequest, "File too large (max 10MB)")
	}
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	if _, err := a.saveUpload(src, file.Filename, strings.TrimSpace(c.FormValue("alt"))); err != nil {
		if errors.Is(err, errBadImage) {
			return c.String(http.StatusBadRequest, "Invalid image: "+err.Error())
		}
		return err
	}
	return a.redirectAdmin(c, "Image uploaded.")
}

var errBadImage = errors.New("bad image")

// saveUpload writes the renditions of an uploaded image under the uploads
// dir and records the attachment. Written files are removed again when
// anything after the first write fails.
func (a *App) saveUpload(src io.Reader, filename, alt string) (Attachment, error) {
	dir := filepath.Join(a.staticDir, uploadsSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Attachment{}, fmt.Errorf("create uploads dir: %w", err)
	}
	att, files, err := processImage(src, uniqueBase(dir, uploadBase(filename)), alt)
	if err != nil {
		return Attachment{}, fmt.Errorf("%w: %w", errBadImage, err)
	}

	var written []string
	cleanup := func() {
		for _, path := range written {
			_ = os.Remove(path)
		}
	}
	for name, data := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			cleanup()
			return Attachment{}, fmt.Errorf("write image: %w", err)
		}
		written = append(written, path)
	}
	id, err := a.Store.SaveAttachment(att)
	if err != nil {
		cleanup()
		return Attachment{}, fmt.Errorf("save attachment: %w", err)
	}
	att.ID = id
	return att, nil
}

func (a *App) handleImageDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid image id")
	}
	att, err := a.Store.GetAttachment(id)
	if err != nil {
		if err == ErrNotFound {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	dir := filepath.Join(a.staticDir, uploadsSubdir)
	_ = os.Remove(filepath.Join(dir, att.Filename))
	for _, size := range att.Sizes {
		_ = os.Remove(filepath.Join(dir, size.Filename))
	}
	if err := a.Store.DeleteAttachment(id); err != nil {
		return err
	}
	if mod, err := a.Store.GetThemeMod("custom_logo"); err == nil && mod.AttachmentID() == id {
		if err := a.Store.SetThemeMod("custom_logo", ThemeValue{}); err != nil {
			return err
		}
	}
	return a.redirectAdmin(c, "Image deleted.")
}

func (a *App) handleSetLogo(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid image id")
	}
	att, err := a.Store.GetAttachment(id)
	if err != nil {
		if err == ErrNotFound {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	if err := a.Store.SetThemeMod("custom_logo", ThemeValue{Record: &ThemeRecord{
		ID:     att.ID,
		URL:    "/public/" + uploadsSubdir + "/" + att.Filename,
		Width:  att.Width,
		Height: att.Height,
	}}); err != nil {
		return err
	}
	return a.redirectAdmin(c, "Logo updated.")
}
