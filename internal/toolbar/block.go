package toolbar

import (
	"github.com/bethropolis/blocks/internal/logger"
	"github.com/bethropolis/blocks/internal/snapshot"
)

// Anchor selects how the block toolbar lines up with its block.
type Anchor int

const (
	// AnchorCenter centres the toolbar on the block's vertical middle.
	AnchorCenter Anchor = iota
	// AnchorTop hangs the toolbar a quarter of its height above the block's top.
	AnchorTop
)

// DefaultBlockGap is the space between the toolbar and the editor's left edge.
const DefaultBlockGap = 10

// ParseAnchor maps "center" or "top" to an Anchor, defaulting to AnchorCenter.
func ParseAnchor(name string) Anchor {
	if name == "top" {
		return AnchorTop
	}
	return AnchorCenter
}

// Block positions the toolbar that sits beside the anchor block. Its
// position can only be read after the renderer has laid out the snapshot,
// so callers Invalidate on every snapshot change and Settle after layout.
// Until a lookup succeeds the previous position is kept.
type Block struct {
	Anchor Anchor
	Gap    float64
	Width  float64
	Height float64

	pending *snapshot.Snapshot
	pos     Point
	haveX   bool
	haveY   bool
}

// NewBlock returns a block toolbar of the given size.
func NewBlock(anchor Anchor, gap, width, height float64) *Block {
	return &Block{Anchor: anchor, Gap: gap, Width: width, Height: height}
}

// Invalidate records the snapshot whose layout the next Settle will read.
func (t *Block) Invalidate(s *snapshot.Snapshot) {
	t.pending = s
}

// Pending reports whether a position read is scheduled.
func (t *Block) Pending() bool { return t.pending != nil }

// Settle reads geometry for the pending snapshot. Call it once the layout
// for that snapshot has been committed. Returns whether the position moved.
func (t *Block) Settle(geom Geometry) bool {
	s := t.pending
	if s == nil || geom == nil {
		return false
	}
	t.pending = nil
	before := t.pos

	if rect, ok := geom.BlockRect(s.Selection().AnchorKey); ok && finite(rect) {
		switch t.Anchor {
		case AnchorTop:
			t.pos.Y = rect.Top - t.Height/4
		default:
			t.pos.Y = rect.Top + rect.Height/2 - t.Height/2
		}
		t.haveY = true
	} else {
		logger.DebugTagf("toolbar", "Block toolbar: no rect for %q, keeping %v", s.Selection().AnchorKey, t.pos)
	}

	if editor, ok := geom.EditorRect(); ok && finite(editor) {
		t.pos.X = editor.Left - t.Width - t.Gap
		t.haveX = true
	}
	return t.pos != before
}

// Position returns the last settled point. ok is false until a block has
// been laid out at least once.
func (t *Block) Position() (Point, bool) {
	return t.pos, t.haveX && t.haveY
}

// Bounds is the toolbar's box with its top-left corner at the position.
func (t *Block) Bounds() (Rect, bool) {
	p, ok := t.Position()
	if !ok {
		return Rect{}, false
	}
	return Rect{Left: p.X, Top: p.Y, Width: t.Width, Height: t.Height}, true
}

// Hit reports whether (x, y) lands on the toolbar.
func (t *Block) Hit(x, y float64) bool {
	b, ok := t.Bounds()
	return ok && b.Contains(x, y)
}
