package utils

import (
	"strings"
	"unicode/utf8"
)

// RuneIndex maps byte offsets in a string to rune offsets.
type RuneIndex struct {
	starts []int // byte offset of each rune
	size   int
}

// NewRuneIndex indexes text.
func NewRuneIndex(text string) RuneIndex {
	starts := make([]int, 0, utf8.RuneCountInString(text))
	for i := range text {
		starts = append(starts, i)
	}
	return RuneIndex{starts: starts, size: len(text)}
}

// ByteToRune converts a byte offset to the index of the rune containing it.
// Offsets past the end map to the rune count.
func (ri RuneIndex) ByteToRune(byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset >= ri.size {
		return len(ri.starts)
	}
	lo, hi := 0, len(ri.starts)
	for lo < hi {
		mid := (lo + hi) / 2
		if ri.starts[mid] <= byteOffset {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo - 1
}

// CaptureNameToStyleName maps tree-sitter capture names to theme style names.
func CaptureNameToStyleName(captureName string) string {
	return strings.TrimPrefix(captureName, "@")
}
