package utils

import (
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/setanarut/spritesheet"
	"golang.org/x/image/bmp"
)

func fill(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func writeImage(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	switch FormatOf(name) {
	case "jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	case "bmp":
		err = bmp.Encode(f, img)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		t.Fatal(err)
	}
	return path
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func basenames(files []ImageFile) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = filepath.Base(f.Path)
	}
	return out
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"png", "walk.png", "png"},
		{"jpeg", "walk.jpeg", "jpeg"},
		{"upper case kept", "walk.PNG", "PNG"},
		{"no extension", "walk", ""},
		{"second dot", "walk.01.png", "01"},
		{"hidden", ".png", "png"},
		{"trailing dot", "walk.", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatOf(tt.in); got != tt.want {
				t.Errorf("FormatOf(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFindImages_FiltersExtensions(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.jpeg", "c.bmp", "d.jpg", "e.PNG", "f.gif", "readme", "notes.txt", SheetName} {
		touch(t, dir, name)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := FindImages(dir, DefaultFormats, SheetName)
	if err != nil {
		t.Fatalf("FindImages: %v", err)
	}
	want := []string{"a.jpeg", "b.png", "c.bmp"}
	if got := basenames(files); !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if files[0].Format != "jpeg" || files[2].Format != "bmp" {
		t.Errorf("formats = %q, %q", files[0].Format, files[2].Format)
	}
}

func TestFindImages_ConfiguredFormats(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.png")
	touch(t, dir, "b.bmp")
	files, err := FindImages(dir, []string{"bmp"}, "")
	if err != nil {
		t.Fatalf("FindImages: %v", err)
	}
	if got := basenames(files); !slices.Equal(got, []string{"b.bmp"}) {
		t.Errorf("got %v", got)
	}
}

func TestFindImages_NoImages(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "readme.txt")
	_, err := FindImages(dir, DefaultFormats, "")
	if !errors.Is(err, spritesheet.ErrNoImagesFound) {
		t.Errorf("err = %v, want ErrNoImagesFound", err)
	}
}

func TestFindImages_MissingDir(t *testing.T) {
	_, err := FindImages(filepath.Join(t.TempDir(), "missing"), DefaultFormats, "")
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	if errors.Is(err, spritesheet.ErrNoImagesFound) {
		t.Error("missing directory must not be reported as no images")
	}
}

func TestCollectImages_AllFormats(t *testing.T) {
	dir := t.TempDir()
	red := color.NRGBA{R: 255, A: 255}
	writeImage(t, dir, "a.png", fill(3, 2, red))
	writeImage(t, dir, "b.jpeg", fill(8, 8, red))
	writeImage(t, dir, "c.bmp", fill(5, 4, red))

	files, err := FindImages(dir, DefaultFormats, "")
	if err != nil {
		t.Fatalf("FindImages: %v", err)
	}
	images, err := CollectImages(files)
	if err != nil {
		t.Fatalf("CollectImages: %v", err)
	}
	want := []image.Point{{3, 2}, {8, 8}, {5, 4}}
	for i, img := range images {
		if got := img.Bounds().Size(); got != want[i] {
			t.Errorf("image %d size = %v, want %v", i, got, want[i])
		}
	}
}

func TestCollectImages_CorruptAborts(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, dir, "a.png", fill(2, 2, color.NRGBA{A: 255}))
	touch(t, dir, "b.png")

	files, err := FindImages(dir, DefaultFormats, "")
	if err != nil {
		t.Fatalf("FindImages: %v", err)
	}
	images, err := CollectImages(files)
	if !errors.Is(err, spritesheet.ErrImageSave) {
		t.Errorf("err = %v, want ErrImageSave", err)
	}
	if images != nil {
		t.Error("no partial result expected")
	}
}

func TestSaveSheet_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	sources := []image.Image{
		fill(4, 3, color.NRGBA{R: 200, G: 10, B: 10, A: 255}),
		fill(4, 3, color.NRGBA{R: 10, G: 200, B: 10, A: 255}),
		fill(4, 3, color.NRGBA{R: 10, G: 10, B: 200, A: 255}),
	}
	sheet, err := spritesheet.Compose(2, sources)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	// Stale output must be replaced.
	touch(t, dir, SheetName)

	path, err := SaveSheet(sheet.Image, dir, "")
	if err != nil {
		t.Fatalf("SaveSheet: %v", err)
	}
	if path != filepath.Join(dir, SheetName) {
		t.Errorf("path = %q", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode written sheet: %v", err)
	}
	if got.Bounds() != image.Rect(0, 0, 8, 6) {
		t.Fatalf("bounds = %v, want 8x6", got.Bounds())
	}
	for i, src := range sources {
		r := sheet.CellRect(i)
		for y := 0; y < 3; y++ {
			for x := 0; x < 4; x++ {
				if !sameColor(got.At(r.Min.X+x, r.Min.Y+y), src.At(x, y)) {
					t.Fatalf("cell %d pixel (%d,%d) = %v, want %v", i, x, y, got.At(r.Min.X+x, r.Min.Y+y), src.At(x, y))
				}
			}
		}
	}
	if _, _, _, a := got.At(7, 5).RGBA(); a != 0 {
		t.Errorf("unfilled cell alpha = %d, want 0", a)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected only the sheet in %s, found %d entries", dir, len(entries))
	}
}

func sameColor(a, b color.Color) bool {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

func TestSaveSheet_MissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	_, err := SaveSheet(fill(1, 1, color.NRGBA{A: 255}), dir, "")
	if !errors.Is(err, spritesheet.ErrImageSave) {
		t.Errorf("err = %v, want ErrImageSave", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, SheetName)); !os.IsNotExist(statErr) {
		t.Error("no file should be written")
	}
}
