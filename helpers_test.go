package spritesheet

import (
	"image"
	"image/color"
)

// solid returns a wxh opaque image filled with a color derived from tag.
func solid(w, h, tag int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	c := tagColor(tag)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func tagColor(tag int) color.NRGBA {
	return color.NRGBA{R: uint8(10 + tag*20), G: uint8(200 - tag*15), B: uint8(tag * 7), A: 255}
}

func sizes(images []image.Image) []ResolutionKey {
	out := make([]ResolutionKey, len(images))
	for i, img := range images {
		out[i] = KeyOf(img)
	}
	return out
}
