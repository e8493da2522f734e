// Package spritesheet composes equally sized images into a single grid image.
package spritesheet

import (
	"fmt"
	"image"
	"log/slog"
)

type Options struct {
	// Cells per row. Zero selects floor(sqrt(n)) of the filtered image count.
	RowCount int
}

func DefaultOptions() Options {
	return Options{}
}

// OptionsFromCount returns options with the automatic row count for n images.
func OptionsFromCount(n int) Options {
	opt := DefaultOptions()
	opt.RowCount = AutoRowCount(n)
	return opt
}

type SheetBuilder struct {
	Images     []image.Image
	Groups     []ResolutionGroup
	Filtered   []image.Image
	Resolution ResolutionKey
	RowCount   int
	Sheet      *Sheet
	Logger     *slog.Logger
}

func NewSheetBuilder(images []image.Image) *SheetBuilder {
	return &SheetBuilder{
		Images: images,
		Logger: slog.Default(),
	}
}

// Filter reduces Images to the dominant resolution. It is called by Build
// when needed; call it first to learn the filtered count before choosing a
// row count.
func (sb *SheetBuilder) Filter() error {
	if len(sb.Images) == 0 {
		return fmt.Errorf("empty image list: %w", ErrFilterImages)
	}
	groups := GroupByResolution(sb.Images)
	dominant, ok := DominantGroup(groups)
	if !ok {
		return fmt.Errorf("no dominant resolution: %w", ErrFilterImages)
	}
	key := dominant.Key
	filtered := FilterByKey(sb.Images, key)
	sb.Groups = groups
	sb.Filtered = filtered
	sb.Resolution = key
	if dropped := len(sb.Images) - len(filtered); dropped > 0 {
		sb.log().Info("dropped images with a minority resolution",
			"dropped", dropped, "kept", len(filtered), "resolution", key.String())
	}
	return nil
}

func (sb *SheetBuilder) Build(opt Options) error {
	if sb.Filtered == nil {
		if err := sb.Filter(); err != nil {
			return err
		}
	}
	sb.RowCount = opt.RowCount
	if sb.RowCount <= 0 {
		sb.RowCount = AutoRowCount(len(sb.Filtered))
	}
	sheet, err := Compose(sb.RowCount, sb.Filtered)
	if err != nil {
		return err
	}
	sb.Sheet = sheet
	b := sheet.Image.Bounds()
	sb.log().Debug("composed sheet",
		"cells", sheet.Count, "rowCount", sheet.RowCount, "rows", sheet.Rows,
		"width", b.Dx(), "height", b.Dy())
	return nil
}

// Summary describes the last built sheet.
func (sb *SheetBuilder) Summary() Summary {
	return Summarize(sb.Groups, sb.Sheet)
}

func (sb *SheetBuilder) log() *slog.Logger {
	if sb.Logger == nil {
		return slog.Default()
	}
	return sb.Logger
}
