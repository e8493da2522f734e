package spritesheet

import "errors"

var (
	// ErrNoImagesFound indicates no file with a recognized extension was found.
	ErrNoImagesFound = errors.New("no images found")

	// ErrFilterImages indicates resolution grouping produced no dominant group.
	ErrFilterImages = errors.New("filter images")

	// ErrImageSave indicates a decode, encode or write failure at an image I/O boundary.
	ErrImageSave = errors.New("image save")

	// ErrParse indicates a manual row count that is not a positive whole number.
	ErrParse = errors.New("parse row count")

	// ErrComposition indicates a degenerate grid (zero rows, no images, mixed cell sizes).
	ErrComposition = errors.New("composition")
)

// Message returns the fixed user-facing text for err.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoImagesFound):
		return "Error: no images found"
	case errors.Is(err, ErrFilterImages):
		return "Error: filter image error"
	case errors.Is(err, ErrImageSave):
		return "Error: save image error"
	case errors.Is(err, ErrParse):
		return "Error: parse error"
	default:
		return "Error: " + err.Error()
	}
}
