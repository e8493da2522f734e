package spritesheet

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// maxCanvasPixels bounds the RGBA canvas to 1 GiB.
const maxCanvasPixels = 1 << 28

// Sheet is a composed grid of equally sized cells.
type Sheet struct {
	Image *image.RGBA
	// RowCount is the number of cells per row.
	RowCount int
	// Rows is the number of cell rows, ceil(Count / RowCount).
	Rows  int
	Count int
	Cell  image.Point
}

// CellRect returns the canvas rectangle of cell i in row-major order.
func (s *Sheet) CellRect(i int) image.Rectangle {
	origin := image.Pt((i%s.RowCount)*s.Cell.X, (i/s.RowCount)*s.Cell.Y)
	return image.Rectangle{Min: origin, Max: origin.Add(s.Cell)}
}

// Cells returns the total number of grid slots, filled or not.
func (s *Sheet) Cells() int {
	return s.RowCount * s.Rows
}

// Compose lays images out left-to-right, top-to-bottom, rowCount per row.
// All images must share the size of the first one. Unfilled cells of the
// last row stay transparent.
func Compose(rowCount int, images []image.Image) (*Sheet, error) {
	if rowCount <= 0 {
		return nil, fmt.Errorf("row count %d: %w", rowCount, ErrComposition)
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("no images to place: %w", ErrComposition)
	}
	cell := images[0].Bounds().Size()
	if cell.X <= 0 || cell.Y <= 0 {
		return nil, fmt.Errorf("empty cell %v: %w", cell, ErrComposition)
	}
	rows := (len(images) + rowCount - 1) / rowCount
	if rowCount > maxCanvasPixels/cell.X || rows*cell.Y > maxCanvasPixels/(rowCount*cell.X) {
		return nil, fmt.Errorf("%dx%d cells of %v is too large: %w", rowCount, rows, cell, ErrComposition)
	}

	s := &Sheet{
		Image:    image.NewRGBA(image.Rect(0, 0, rowCount*cell.X, rows*cell.Y)),
		RowCount: rowCount,
		Rows:     rows,
		Count:    len(images),
		Cell:     cell,
	}

	idx := 0
placement:
	for y := 0; y < rows; y++ {
		for x := 0; x < rowCount; x++ {
			if idx >= len(images) {
				break placement
			}
			src := images[idx]
			if size := src.Bounds().Size(); size != cell {
				return nil, fmt.Errorf("image %d is %v, want %v: %w", idx, size, cell, ErrComposition)
			}
			dp := image.Pt(x*cell.X, y*cell.Y)
			draw.Draw(s.Image, image.Rectangle{Min: dp, Max: dp.Add(cell)}, src, src.Bounds().Min, draw.Src)
			idx++
		}
	}
	return s, nil
}
