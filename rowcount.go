package spritesheet

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// AutoRowCount returns floor(sqrt(n)) cells per row, never less than 1.
func AutoRowCount(n int) int {
	if n <= 0 {
		return 1
	}
	return max(int(math.Floor(math.Sqrt(float64(n)))), 1)
}

// ParseRowCount parses a manually entered row count. Surrounding whitespace
// (including the trailing newline of a console line) is ignored.
func ParseRowCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.ParseUint(s, 10, 31)
	if err != nil {
		return 0, fmt.Errorf("row count %q: %w", s, ErrParse)
	}
	if n == 0 {
		return 0, fmt.Errorf("row count must be positive: %w", ErrParse)
	}
	return int(n), nil
}
