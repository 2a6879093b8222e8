package toolbar

import (
	"math"
	"testing"

	"github.com/bethropolis/blocks/internal/document"
	"github.com/bethropolis/blocks/internal/selection"
	"github.com/bethropolis/blocks/internal/snapshot"
)

type fakeGeometry struct {
	sel    *Rect
	blocks map[string]Rect
	editor *Rect
}

func (g fakeGeometry) SelectionRect() (Rect, bool) {
	if g.sel == nil {
		return Rect{}, false
	}
	return *g.sel, true
}

func (g fakeGeometry) BlockRect(key string) (Rect, bool) {
	r, ok := g.blocks[key]
	return r, ok
}

func (g fakeGeometry) EditorRect() (Rect, bool) {
	if g.editor == nil {
		return Rect{}, false
	}
	return *g.editor, true
}

func twoBlocks(sel selection.Selection) *snapshot.Snapshot {
	doc := document.New(
		document.NewBlock("a", document.Paragraph, "hello"),
		document.NewBlock("b", document.Paragraph, "world"),
	)
	return snapshot.New(doc, sel)
}

func TestInlinePosition(t *testing.T) {
	ranged := twoBlocks(selection.Between(selection.Point{Key: "a", Offset: 1}, selection.Point{Key: "a", Offset: 4}))
	caret := twoBlocks(selection.Collapsed("a", 2))
	rect := &Rect{Left: 100, Top: 40, Width: 60, Height: 20}

	testCases := []struct {
		name string
		s    *snapshot.Snapshot
		geom Geometry
		want Point
		ok   bool
	}{
		{"range", ranged, fakeGeometry{sel: rect}, Point{X: 130, Y: 65}, true},
		{"caret hidden", caret, fakeGeometry{sel: rect}, Point{}, false},
		{"no rect", ranged, fakeGeometry{}, Point{}, false},
		{"zero extent", ranged, fakeGeometry{sel: &Rect{Left: 5, Top: 5}}, Point{}, false},
		{"nan rect", ranged, fakeGeometry{sel: &Rect{Left: math.NaN(), Width: 3, Height: 1}}, Point{}, false},
	}
	for _, tc := range testCases {
		got, ok := InlinePosition(tc.s, tc.geom, DefaultInlineOffset)
		if ok != tc.ok || got != tc.want {
			t.Errorf("%s: InlinePosition = %v, %v; expected %v, %v", tc.name, got, ok, tc.want, tc.ok)
		}
	}
}

func TestInlineHitOnlyWhenVisible(t *testing.T) {
	tb := NewInline(1, 10, 1)
	ranged := twoBlocks(selection.Between(selection.Point{Key: "a", Offset: 0}, selection.Point{Key: "a", Offset: 5}))
	tb.Update(ranged, fakeGeometry{sel: &Rect{Left: 10, Top: 2, Width: 10, Height: 1}})
	// Anchor (15, 4); box spans x 10..20, y 4..5.
	if !tb.Hit(12, 4) {
		t.Errorf("click on visible toolbar should hit")
	}
	tb.Update(twoBlocks(selection.Collapsed("a", 0)), fakeGeometry{sel: &Rect{Left: 10, Top: 2, Width: 10, Height: 1}})
	if tb.Hit(12, 4) {
		t.Errorf("hidden toolbar must not register clicks")
	}
}

func TestBlockToolbarSettle(t *testing.T) {
	geom := fakeGeometry{
		blocks: map[string]Rect{"a": {Left: 50, Top: 10, Width: 300, Height: 20}, "b": {Left: 50, Top: 30, Width: 300, Height: 40}},
		editor: &Rect{Left: 50, Top: 0, Width: 300, Height: 100},
	}
	tb := NewBlock(AnchorCenter, DefaultBlockGap, 30, 12)

	if _, ok := tb.Position(); ok {
		t.Fatalf("position should be undefined before any layout")
	}

	tb.Invalidate(twoBlocks(selection.Collapsed("a", 0)))
	if _, ok := tb.Position(); ok {
		t.Errorf("position must not be read before Settle")
	}
	tb.Settle(geom)
	if got, ok := tb.Position(); !ok || got != (Point{X: 10, Y: 14}) {
		t.Errorf("centre anchor on a = %v, %v; expected (10, 14)", got, ok)
	}

	tb.Invalidate(twoBlocks(selection.Collapsed("b", 0)))
	if !tb.Settle(geom) {
		t.Errorf("moving to block b should report a change")
	}
	if got, _ := tb.Position(); got != (Point{X: 10, Y: 44}) {
		t.Errorf("centre anchor on b = %v; expected (10, 44)", got)
	}

	// Block b missing from the layout: keep the last position.
	tb.Invalidate(twoBlocks(selection.Collapsed("b", 0)))
	tb.Settle(fakeGeometry{blocks: map[string]Rect{}, editor: geom.editor})
	if got, ok := tb.Position(); !ok || got != (Point{X: 10, Y: 44}) {
		t.Errorf("lost lookup moved toolbar to %v, %v", got, ok)
	}
}

func TestBlockToolbarTopAnchor(t *testing.T) {
	geom := fakeGeometry{
		blocks: map[string]Rect{"a": {Top: 20, Height: 10}},
		editor: &Rect{Left: 40},
	}
	tb := NewBlock(ParseAnchor("top"), 2, 4, 8)
	tb.Invalidate(twoBlocks(selection.Collapsed("a", 0)))
	tb.Settle(geom)
	if got, _ := tb.Position(); got != (Point{X: 34, Y: 18}) {
		t.Errorf("top anchor = %v; expected (34, 18)", got)
	}
	if !tb.Hit(35, 20) || tb.Hit(0, 0) {
		t.Errorf("Hit gave wrong answers around %v", boundsOf(tb))
	}
}

func boundsOf(tb *Block) Rect {
	b, _ := tb.Bounds()
	return b
}
