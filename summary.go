package spritesheet

import (
	"image"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/stat"
)

type CellStats struct {
	Index int
	// Alpha-weighted mean and standard deviation of CIE L*, in [0,1].
	Luminance float64
	StdDev    float64
	// Mean alpha in [0,1].
	Opacity float64
}

// Summary describes a composed sheet and the input it was built from.
type Summary struct {
	Groups    []ResolutionGroup
	Dominant  ResolutionKey
	Total     int
	Dropped   int
	FillRatio float64
	Cells     []CellStats
	// Blank lists filled cells whose source image is fully transparent.
	Blank []int
}

// Summarize collects per-cell statistics of sheet. groups is the resolution
// histogram of the unfiltered input and may be nil.
func Summarize(groups []ResolutionGroup, sheet *Sheet) Summary {
	sum := Summary{Groups: groups}
	for _, g := range groups {
		sum.Total += g.Count
	}
	if sheet == nil || sheet.Count == 0 {
		return sum
	}
	if sum.Total == 0 {
		sum.Total = sheet.Count
	}
	sum.Dominant = ResolutionKey{Height: sheet.Cell.Y, Width: sheet.Cell.X}
	sum.Dropped = sum.Total - sheet.Count
	sum.FillRatio = float64(sheet.Count) / float64(sheet.Cells())

	n := sheet.Cell.X * sheet.Cell.Y
	lum := make([]float64, n)
	alpha := make([]float64, n)
	sum.Cells = make([]CellStats, sheet.Count)
	for i := 0; i < sheet.Count; i++ {
		cs := cellStats(sheet.Image, sheet.CellRect(i), lum, alpha)
		cs.Index = i
		sum.Cells[i] = cs
		if cs.Opacity == 0 {
			sum.Blank = append(sum.Blank, i)
		}
	}
	return sum
}

func cellStats(img *image.RGBA, r image.Rectangle, lum, alpha []float64) CellStats {
	k := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := img.RGBAAt(x, y)
			lum[k], alpha[k] = 0, 0
			if col, ok := colorful.MakeColor(c); ok {
				l, _, _ := col.Lab()
				lum[k] = l
				alpha[k] = float64(c.A) / 255.0
			}
			k++
		}
	}
	var cs CellStats
	cs.Opacity = stat.Mean(alpha[:k], nil)
	if cs.Opacity == 0 {
		return cs
	}
	cs.Luminance = stat.Mean(lum[:k], alpha[:k])
	// Weighted sample variance needs a total weight above one.
	if cs.Opacity*float64(k) > 1 {
		cs.StdDev = stat.StdDev(lum[:k], alpha[:k])
	}
	return cs
}
