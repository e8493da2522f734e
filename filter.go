package spritesheet

import (
	"fmt"
	"image"
)

// ResolutionKey groups images by exact pixel dimensions.
type ResolutionKey struct {
	Height, Width int
}

func KeyOf(img image.Image) ResolutionKey {
	size := img.Bounds().Size()
	return ResolutionKey{Height: size.Y, Width: size.X}
}

func (k ResolutionKey) String() string {
	return fmt.Sprintf("%dx%d", k.Width, k.Height)
}

type ResolutionGroup struct {
	Key   ResolutionKey
	Count int
	First int // index of the first image with this key
}

// GroupByResolution counts images per resolution. Groups are returned in
// first-seen order.
func GroupByResolution(images []image.Image) []ResolutionGroup {
	index := make(map[ResolutionKey]int)
	var groups []ResolutionGroup
	for i, img := range images {
		key := KeyOf(img)
		gi, ok := index[key]
		if !ok {
			gi = len(groups)
			index[key] = gi
			groups = append(groups, ResolutionGroup{Key: key, First: i})
		}
		groups[gi].Count++
	}
	return groups
}

// DominantGroup returns the group with the highest count. Ties go to the
// resolution seen first.
func DominantGroup(groups []ResolutionGroup) (ResolutionGroup, bool) {
	best := -1
	for i, g := range groups {
		if g.Count <= 0 {
			continue
		}
		if best < 0 || g.Count > groups[best].Count {
			best = i
		}
	}
	if best < 0 {
		return ResolutionGroup{}, false
	}
	return groups[best], true
}

// FilterDominant keeps only the images sharing the most common resolution,
// in their original order.
func FilterDominant(images []image.Image) ([]image.Image, ResolutionKey, error) {
	if len(images) == 0 {
		return nil, ResolutionKey{}, fmt.Errorf("empty image list: %w", ErrFilterImages)
	}
	dominant, ok := DominantGroup(GroupByResolution(images))
	if !ok {
		return nil, ResolutionKey{}, fmt.Errorf("no dominant resolution: %w", ErrFilterImages)
	}
	return FilterByKey(images, dominant.Key), dominant.Key, nil
}

// FilterByKey returns the images of exactly the given resolution, in order.
func FilterByKey(images []image.Image, key ResolutionKey) []image.Image {
	var out []image.Image
	for _, img := range images {
		if KeyOf(img) == key {
			out = append(out, img)
		}
	}
	return out
}
