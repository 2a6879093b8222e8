// Package selection describes the caret or range over a block document.
package selection

import (
	"fmt"

	"github.com/bethropolis/blocks/internal/document"
)

// Point is a position inside a block: a rune offset in [0, len(text)].
type Point struct {
	Key    string
	Offset int
}

func (p Point) String() string { return fmt.Sprintf("%s:%d", p.Key, p.Offset) }

// Selection is the anchor/focus pair of the active caret or range. Anchor
// may come after focus in document order.
type Selection struct {
	AnchorKey    string
	AnchorOffset int
	FocusKey     string
	FocusOffset  int
}

// Collapsed returns a caret at key:offset.
func Collapsed(key string, offset int) Selection {
	return Selection{AnchorKey: key, AnchorOffset: offset, FocusKey: key, FocusOffset: offset}
}

// Between returns a selection from anchor to focus.
func Between(anchor, focus Point) Selection {
	return Selection{AnchorKey: anchor.Key, AnchorOffset: anchor.Offset, FocusKey: focus.Key, FocusOffset: focus.Offset}
}

func (s Selection) Anchor() Point { return Point{Key: s.AnchorKey, Offset: s.AnchorOffset} }
func (s Selection) Focus() Point  { return Point{Key: s.FocusKey, Offset: s.FocusOffset} }

// IsCollapsed reports whether anchor equals focus exactly.
func (s Selection) IsCollapsed() bool {
	return s.AnchorKey == s.FocusKey && s.AnchorOffset == s.FocusOffset
}

func (s Selection) String() string {
	if s.IsCollapsed() {
		return "caret(" + s.Anchor().String() + ")"
	}
	return "range(" + s.Anchor().String() + " -> " + s.Focus().String() + ")"
}

// Valid reports whether both ends name blocks in doc.
func (s Selection) Valid(doc *document.Document) bool {
	return doc.Has(s.AnchorKey) && doc.Has(s.FocusKey)
}

// Compare orders two points by document position: -1, 0 or 1. Points in
// missing blocks compare as equal.
func Compare(doc *document.Document, a, b Point) int {
	ia, ib := doc.Index(a.Key), doc.Index(b.Key)
	switch {
	case ia < 0 || ib < 0:
		return 0
	case ia < ib:
		return -1
	case ia > ib:
		return 1
	case a.Offset < b.Offset:
		return -1
	case a.Offset > b.Offset:
		return 1
	}
	return 0
}

// IsBackward reports whether focus precedes anchor.
func (s Selection) IsBackward(doc *document.Document) bool {
	return Compare(doc, s.Anchor(), s.Focus()) > 0
}

// Ordered returns the start and end points in document order. ok is false
// when either end names a missing block.
func (s Selection) Ordered(doc *document.Document) (start, end Point, ok bool) {
	if !s.Valid(doc) {
		return Point{}, Point{}, false
	}
	start, end = s.Anchor(), s.Focus()
	if Compare(doc, start, end) > 0 {
		start, end = end, start
	}
	return start, end, true
}

// Clamp limits both offsets to their block's text. Missing blocks are left as-is.
func (s Selection) Clamp(doc *document.Document) Selection {
	if b, ok := doc.Block(s.AnchorKey); ok {
		s.AnchorOffset = b.ClampOffset(s.AnchorOffset)
	}
	if b, ok := doc.Block(s.FocusKey); ok {
		s.FocusOffset = b.ClampOffset(s.FocusOffset)
	}
	return s
}

// Span is the covered part of one block: runes [Start, End).
type Span struct {
	Block *document.Block
	Start int
	End   int
}

// Spans lists, in document order, the part of every block the selection
// intersects. Blocks fully inside the range span their whole text; a
// collapsed selection yields one zero-width span.
func (s Selection) Spans(doc *document.Document) []Span {
	start, end, ok := s.Clamp(doc).Ordered(doc)
	if !ok {
		return nil
	}
	blocks := doc.Between(start.Key, end.Key)
	spans := make([]Span, 0, len(blocks))
	for i, b := range blocks {
		sp := Span{Block: b, Start: 0, End: b.Len()}
		if i == 0 {
			sp.Start = start.Offset
		}
		if i == len(blocks)-1 {
			sp.End = end.Offset
		}
		spans = append(spans, sp)
	}
	return spans
}
