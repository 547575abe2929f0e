package socialmanager

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestProcessImageResizesWideImages(t *testing.T) {
	img, data, err := processImage(bytes.NewReader(pngBytes(t, 2400, 600)), "My Cover.PNG")
	if err != nil {
		t.Fatalf("processImage failed: %v", err)
	}
	if img.Width != maxImageWidth || img.Height != 300 {
		t.Errorf("size = %dx%d, want %dx300", img.Width, img.Height, maxImageWidth)
	}
	if img.Filename != "my-cover.jpg" {
		t.Errorf("Filename = %q, want %q", img.Filename, "my-cover.jpg")
	}
	if img.Size != len(data) || len(data) == 0 {
		t.Errorf("Size = %d, data = %d bytes", img.Size, len(data))
	}
}

func TestProcessImageKeepsSmallImages(t *testing.T) {
	img, _, err := processImage(bytes.NewReader(pngBytes(t, 300, 200)), "!!!.png")
	if err != nil {
		t.Fatalf("processImage failed: %v", err)
	}
	if img.Width != 300 || img.Height != 200 {
		t.Errorf("size = %dx%d, want 300x200", img.Width, img.Height)
	}
	if img.Filename != "image.jpg" {
		t.Errorf("Filename = %q, want %q", img.Filename, "image.jpg")
	}
}

func TestProcessImageRejectsGarbage(t *testing.T) {
	if _, _, err := processImage(bytes.NewReader([]byte("not an image")), "x.png"); err == nil {
		t.Error("processImage should fail on non-image input")
	}
}

func TestUniqueFilename(t *testing.T) {
	dir := t.TempDir()
	if got := uniqueFilename(dir, "cat.jpg"); got != "cat.jpg" {
		t.Errorf("uniqueFilename = %q, want %q", got, "cat.jpg")
	}
	for _, name := range []string{"cat.jpg", "cat-2.jpg"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if got := uniqueFilename(dir, "cat.jpg"); got != "cat-3.jpg" {
		t.Errorf("uniqueFilename = %q, want %q", got, "cat-3.jpg")
	}
}

func TestShortlink(t *testing.T) {
	tests := []struct {
		base string
		id   int64
		want string
	}{
		{"https://site.test", 12, "https://site.test/p/12/"},
		{"https://site.test/", 3, "https://site.test/p/3/"},
		{"/", 5, "/p/5/"},
	}
	for _, tt := range tests {
		if got := Shortlink(tt.base, tt.id); got != tt.want {
			t.Errorf("Shortlink(%q, %d) = %q, want %q", tt.base, tt.id, got, tt.want)
		}
	}
}

func TestCDATASafe(t *testing.T) {
	if got := cdataSafe("a]]>b"); got != "a]]]]><![CDATA[>b" {
		t.Errorf("cdataSafe = %q", got)
	}
}
