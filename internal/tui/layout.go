// internal/tui/layout.go
package tui

import (
	"github.com/rivo/uniseg"

	"github.com/bethropolis/blocks/internal/document"
	"github.com/bethropolis/blocks/internal/selection"
	"github.com/bethropolis/blocks/internal/snapshot"
	"github.com/bethropolis/blocks/internal/toolbar"
)

// Area is the screen region blocks are laid out in.
type Area struct {
	Left, Top, Width, Height int
}

const tabWidth = 4

// glyph is one grapheme cluster placed on a row.
type glyph struct {
	x, width int
	runes    []rune
	offset   int // rune offset of the cluster's first rune
}

// row is one visual line of a block. Offsets are runes in [start, end).
type row struct {
	y          int // document row, before scrolling
	start, end int
	glyphs     []glyph
}

type blockBox struct {
	block  *document.Block
	top    int
	indent int
	rows   []row
}

// Layout places every block of a snapshot on terminal cells. It is the
// geometry the toolbar policy reads once a frame has been laid out.
type Layout struct {
	area   Area
	scroll int
	boxes  []blockBox
	index  map[string]int
	snap   *snapshot.Snapshot
}

// blockIndent is the prefix width before a block's text.
func blockIndent(t document.BlockType) int {
	switch t.Kind() {
	case document.KindUnorderedListItem, document.KindCodeBlock, document.KindImage:
		return 2
	}
	return 0
}

// NewLayout wraps every block of s into area. Rows are numbered from 0;
// Scroll shifts them onto the screen.
func NewLayout(s *snapshot.Snapshot, area Area) *Layout {
	doc := s.Document()
	l := &Layout{area: area, index: make(map[string]int, doc.Len()), snap: s}
	y := 0
	for i := 0; i < doc.Len(); i++ {
		b := doc.At(i)
		box := layoutBlock(b, y, area)
		l.index[b.Key()] = len(l.boxes)
		l.boxes = append(l.boxes, box)
		y += len(box.rows)
	}
	return l
}

func layoutBlock(b *document.Block, top int, area Area) blockBox {
	indent := blockIndent(b.Type())
	left := area.Left + indent
	width := area.Width - indent
	if width < 1 {
		width = 1
	}

	box := blockBox{block: b, top: top, indent: indent}
	cur := row{y: top}
	x := 0
	offset := 0

	gr := uniseg.NewGraphemes(b.Text())
	for gr.Next() {
		runes := gr.Runes()
		if runes[0] == '\n' {
			cur.end = offset
			box.rows = append(box.rows, cur)
			offset += len(runes)
			cur = row{y: top + len(box.rows), start: offset}
			x = 0
			continue
		}
		w := gr.Width()
		if runes[0] == '\t' {
			w = tabWidth
		}
		if w < 1 {
			w = 1
		}
		if x+w > width && x > 0 {
			cur.end = offset
			box.rows = append(box.rows, cur)
			cur = row{y: top + len(box.rows), start: offset}
			x = 0
		}
		cur.glyphs = append(cur.glyphs, glyph{x: left + x, width: w, runes: runes, offset: offset})
		x += w
		offset += len(runes)
	}
	cur.end = offset
	box.rows = append(box.rows, cur)
	return box
}

// Rows is the total height of the document.
func (l *Layout) Rows() int {
	if len(l.boxes) == 0 {
		return 0
	}
	last := l.boxes[len(l.boxes)-1]
	return last.top + len(last.rows)
}

// Scroll returns the number of document rows above the screen.
func (l *Layout) Scroll() int { return l.scroll }

// SetScroll shifts the layout so document row n is at the top of the area.
func (l *Layout) SetScroll(n int) {
	if limit := l.Rows() - l.area.Height; n > limit {
		n = limit
	}
	if n < 0 {
		n = 0
	}
	l.scroll = n
}

// KeepVisible adjusts scroll, starting from prev, so that the focus point
// is on screen.
func (l *Layout) KeepVisible(prev int) {
	l.SetScroll(prev)
	sel := l.snap.Selection()
	_, y, ok := l.docCell(sel.FocusKey, sel.FocusOffset)
	if !ok {
		return
	}
	if y < l.scroll {
		l.SetScroll(y)
	} else if y >= l.scroll+l.area.Height {
		l.SetScroll(y - l.area.Height + 1)
	}
}

func (l *Layout) box(key string) (*blockBox, bool) {
	i, ok := l.index[key]
	if !ok {
		return nil, false
	}
	return &l.boxes[i], true
}

// rowFor picks the last row starting at or before offset, so a caret at a
// wrap point sits at the start of the next row.
func (b *blockBox) rowFor(offset int) *row {
	r := &b.rows[0]
	for i := range b.rows {
		if b.rows[i].start <= offset {
			r = &b.rows[i]
		}
	}
	return r
}

func (l *Layout) docCell(key string, offset int) (x, y int, ok bool) {
	b, ok := l.box(key)
	if !ok {
		return 0, 0, false
	}
	offset = b.block.ClampOffset(offset)
	r := b.rowFor(offset)
	x = l.area.Left + b.indent
	for _, g := range r.glyphs {
		if offset < g.offset+len(g.runes) {
			x = g.x
			break
		}
		x = g.x + g.width
	}
	return x, r.y, true
}

// CellFor returns the screen cell of the caret at (key, offset).
func (l *Layout) CellFor(key string, offset int) (x, y int, ok bool) {
	x, y, ok = l.docCell(key, offset)
	return x, y - l.scroll + l.area.Top, ok
}

// Visible reports whether screen row y is inside the text area.
func (l *Layout) Visible(y int) bool {
	return y >= l.area.Top && y < l.area.Top+l.area.Height
}

// PointAt maps a screen cell to the nearest caret position. Cells left of
// a row's text go to its start, cells right of it to its end, and rows
// past the document to the end of the last block.
func (l *Layout) PointAt(x, y int) (selection.Point, bool) {
	if len(l.boxes) == 0 {
		return selection.Point{}, false
	}
	docY := y - l.area.Top + l.scroll
	if docY < 0 {
		docY = 0
	}
	for i := range l.boxes {
		b := &l.boxes[i]
		if docY >= b.top+len(b.rows) {
			continue
		}
		r := b.rows[docY-b.top]
		return selection.Point{Key: b.block.Key(), Offset: r.offsetAt(x)}, true
	}
	last := l.boxes[len(l.boxes)-1].block
	return selection.Point{Key: last.Key(), Offset: last.Len()}, true
}

func (r row) offsetAt(x int) int {
	for _, g := range r.glyphs {
		if x < g.x+g.width {
			if x < g.x {
				return g.offset
			}
			// Right half of a wide cluster moves past it.
			if g.width > 1 && x-g.x >= (g.width+1)/2 {
				return g.offset + len(g.runes)
			}
			return g.offset
		}
	}
	return r.end
}

// SelectionRect bounds the selected glyphs on screen. It is unavailable
// for a caret or when no selected glyph is visible.
func (l *Layout) SelectionRect() (toolbar.Rect, bool) {
	s := l.snap
	if s.IsCollapsed() {
		return toolbar.Rect{}, false
	}
	minX, minY, maxX, maxY := 0, 0, 0, 0
	found := false
	for _, span := range s.Selection().Spans(s.Document()) {
		b, ok := l.box(span.Block.Key())
		if !ok {
			continue
		}
		for _, r := range b.rows {
			y := r.y - l.scroll + l.area.Top
			if !l.Visible(y) {
				continue
			}
			for _, g := range r.glyphs {
				if g.offset+len(g.runes) <= span.Start || g.offset >= span.End {
					continue
				}
				if !found {
					minX, minY, maxX, maxY = g.x, y, g.x+g.width, y+1
					found = true
					continue
				}
				minX = min(minX, g.x)
				maxX = max(maxX, g.x+g.width)
				minY = min(minY, y)
				maxY = max(maxY, y+1)
			}
		}
	}
	if !found {
		return toolbar.Rect{}, false
	}
	return toolbar.Rect{
		Left:   float64(minX),
		Top:    float64(minY),
		Width:  float64(maxX - minX),
		Height: float64(maxY - minY),
	}, true
}

// BlockRect bounds the rows of the block with key, in screen coordinates.
func (l *Layout) BlockRect(key string) (toolbar.Rect, bool) {
	b, ok := l.box(key)
	if !ok {
		return toolbar.Rect{}, false
	}
	return toolbar.Rect{
		Left:   float64(l.area.Left),
		Top:    float64(b.top - l.scroll + l.area.Top),
		Width:  float64(l.area.Width),
		Height: float64(len(b.rows)),
	}, true
}

// EditorRect bounds the text area.
func (l *Layout) EditorRect() (toolbar.Rect, bool) {
	if l.area.Width <= 0 || l.area.Height <= 0 {
		return toolbar.Rect{}, false
	}
	return toolbar.Rect{
		Left:   float64(l.area.Left),
		Top:    float64(l.area.Top),
		Width:  float64(l.area.Width),
		Height: float64(l.area.Height),
	}, true
}

var _ toolbar.Geometry = (*Layout)(nil)
