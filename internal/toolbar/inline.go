package toolbar

import (
	"math"

	"github.com/bethropolis/blocks/internal/snapshot"
)

// DefaultInlineOffset is the gap below the selection, in renderer units.
const DefaultInlineOffset = 5

// InlinePosition places the inline toolbar centred under the selection.
// It is hidden (ok false) for a caret, when no selection rect is available,
// or when the rect has no extent.
func InlinePosition(s *snapshot.Snapshot, geom Geometry, offset float64) (Point, bool) {
	if s == nil || geom == nil || s.IsCollapsed() {
		return Point{}, false
	}
	rect, ok := geom.SelectionRect()
	if !ok || rect.IsZero() || !finite(rect) {
		return Point{}, false
	}
	return Point{
		X: rect.Left + rect.Width/2,
		Y: rect.Bottom() + offset,
	}, true
}

func finite(r Rect) bool {
	for _, v := range []float64{r.Left, r.Top, r.Width, r.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Inline tracks the inline toolbar for hit testing: clicks only land while
// it is visible.
type Inline struct {
	Offset float64
	Size   Rect // Width and Height are used; the toolbar is centred on X

	pos     Point
	visible bool
}

// NewInline returns an inline toolbar of the given size.
func NewInline(offset, width, height float64) *Inline {
	return &Inline{Offset: offset, Size: Rect{Width: width, Height: height}}
}

// Update recomputes the position from the snapshot and geometry.
func (t *Inline) Update(s *snapshot.Snapshot, geom Geometry) {
	t.pos, t.visible = InlinePosition(s, geom, t.Offset)
}

// Position returns the anchor point, ok false while hidden.
func (t *Inline) Position() (Point, bool) { return t.pos, t.visible }

// Bounds is the toolbar's on-screen box with its top centre at the anchor.
func (t *Inline) Bounds() (Rect, bool) {
	if !t.visible {
		return Rect{}, false
	}
	return Rect{
		Left:   t.pos.X - t.Size.Width/2,
		Top:    t.pos.Y,
		Width:  t.Size.Width,
		Height: t.Size.Height,
	}, true
}

// Hit reports whether a click at (x, y) lands on the visible toolbar.
func (t *Inline) Hit(x, y float64) bool {
	b, ok := t.Bounds()
	return ok && b.Contains(x, y)
}
