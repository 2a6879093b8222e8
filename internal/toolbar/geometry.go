// Package toolbar derives where the floating inline and block toolbars sit
// from the current snapshot and the geometry reported by the renderer.
package toolbar

// Rect is an axis-aligned box in screen coordinates.
type Rect struct {
	Left, Top, Width, Height float64
}

func (r Rect) Right() float64  { return r.Left + r.Width }
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// IsZero reports whether the rect has no extent.
func (r Rect) IsZero() bool { return r.Width <= 0 && r.Height <= 0 }

// Contains reports whether (x, y) lies inside the rect.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x < r.Right() && y >= r.Top && y < r.Bottom()
}

// Point is a toolbar anchor position.
type Point struct {
	X, Y float64
}

// Geometry is what the rendering collaborator can report after a layout
// pass. Each lookup returns false when the answer is not available.
type Geometry interface {
	// SelectionRect bounds the visible selected range.
	SelectionRect() (Rect, bool)
	// BlockRect bounds the element rendering the block with key.
	BlockRect(key string) (Rect, bool)
	// EditorRect bounds the editing surface.
	EditorRect() (Rect, bool)
}
