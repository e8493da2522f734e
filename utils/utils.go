package utils

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/setanarut/spritesheet"
	"golang.org/x/image/bmp"
)

// SheetName is the file written by SaveSheet when no name is given.
const SheetName = "spritesheet.png"

// DefaultFormats are the recognized file extensions, matched case-sensitively.
var DefaultFormats = []string{"png", "jpeg", "bmp"}

var decoders = map[string]func(io.Reader) (image.Image, error){
	"png":  png.Decode,
	"jpeg": jpeg.Decode,
	"bmp":  bmp.Decode,
}

// Supported reports whether format has a decoder.
func Supported(format string) bool {
	_, ok := decoders[format]
	return ok
}

type ImageFile struct {
	Path   string
	Format string
}

// FormatOf returns the name segment between the first and second dot,
// e.g. "walk.png" -> "png", "walk.01.png" -> "01", "walk" -> "".
func FormatOf(name string) string {
	_, rest, ok := strings.Cut(name, ".")
	if !ok {
		return ""
	}
	ext, _, _ := strings.Cut(rest, ".")
	return ext
}

// FindImages lists regular files directly inside dir whose extension is one
// of formats. A file named skip is ignored. Directory and stat failures are
// returned as is; an empty result is spritesheet.ErrNoImagesFound.
func FindImages(dir string, formats []string, skip string) ([]ImageFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	var files []ImageFile
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		if !info.Mode().IsRegular() || e.Name() == skip {
			continue
		}
		format := FormatOf(e.Name())
		if format == "" || !slices.Contains(formats, format) {
			continue
		}
		files = append(files, ImageFile{Path: filepath.Join(dir, e.Name()), Format: format})
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, spritesheet.ErrNoImagesFound)
	}
	return files, nil
}

// ReadImage decodes the file at path with the decoder for format.
func ReadImage(path, format string) (image.Image, error) {
	decode, ok := decoders[format]
	if !ok {
		return nil, fmt.Errorf("%s: unsupported format %q", path, format)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, err := decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// CollectImages decodes every file in order. The first failure aborts.
func CollectImages(files []ImageFile) ([]image.Image, error) {
	images := make([]image.Image, 0, len(files))
	for _, f := range files {
		img, err := ReadImage(f.Path, f.Format)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", spritesheet.ErrImageSave, err)
		}
		images = append(images, img)
	}
	return images, nil
}

// SaveImage PNG-encodes img to filename. The data goes to a temporary file
// next to filename which replaces it only after a complete write.
func SaveImage(img image.Image, filename string) error {
	f, err := os.CreateTemp(filepath.Dir(filename), "."+filepath.Base(filename)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, filename); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// SaveSheet writes img as dir/name (SheetName when name is empty) and
// returns the path written.
func SaveSheet(img image.Image, dir, name string) (string, error) {
	if name == "" {
		name = SheetName
	}
	path := filepath.Join(dir, name)
	if err := SaveImage(img, path); err != nil {
		return "", fmt.Errorf("%w: %s: %w", spritesheet.ErrImageSave, path, err)
	}
	return path, nil
}
