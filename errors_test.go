package spritesheet

import (
	"errors"
	"fmt"
	"testing"
)

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"no images", fmt.Errorf("/tmp: %w", ErrNoImagesFound), "Error: no images found"},
		{"filter", ErrFilterImages, "Error: filter image error"},
		{"save", fmt.Errorf("%w: disk full", ErrImageSave), "Error: save image error"},
		{"parse", fmt.Errorf("row count \"x\": %w", ErrParse), "Error: parse error"},
		{"other", errors.New("read dir .: permission denied"), "Error: read dir .: permission denied"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Message(tt.err); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}
