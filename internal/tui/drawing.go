// internal/tui/drawing.go
package tui

import (
	"context"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/blocks/internal/blockmenu"
	"github.com/bethropolis/blocks/internal/document"
	"github.com/bethropolis/blocks/internal/highlighter"
	"github.com/bethropolis/blocks/internal/logger"
	"github.com/bethropolis/blocks/internal/selection"
	"github.com/bethropolis/blocks/internal/snapshot"
	"github.com/bethropolis/blocks/internal/statusbar"
	"github.com/bethropolis/blocks/internal/theme"
	"github.com/bethropolis/blocks/internal/toolbar"
)

// InlineButton is one entry of the inline toolbar.
type InlineButton struct {
	Label string
	Style document.InlineStyle
}

// InlineButtons are drawn left to right, each inlineButtonWidth cells wide.
var InlineButtons = []InlineButton{
	{Label: "B", Style: document.Bold},
	{Label: "I", Style: document.Italic},
	{Label: "U", Style: document.Underline},
	{Label: "C", Style: document.Code},
}

const inlineButtonWidth = 3

// InlineToolbarSize is the inline toolbar's size in cells.
func InlineToolbarSize() (width, height float64) {
	return float64(len(InlineButtons) * inlineButtonWidth), 1
}

// cell converts a toolbar coordinate to the cell whose centre it covers.
func cell(v float64) int { return int(math.Ceil(v - 0.5)) }

// Hit tests use cell centres so they agree with where cell() draws.
func center(x, y int) (float64, float64) { return float64(x) + 0.5, float64(y) + 0.5 }

// InlineButtonAt returns the style of the button under (x, y).
func InlineButtonAt(tb *toolbar.Inline, x, y int) (document.InlineStyle, bool) {
	fx, fy := center(x, y)
	if !tb.Hit(fx, fy) {
		return "", false
	}
	b, _ := tb.Bounds()
	i := (x - cell(b.Left)) / inlineButtonWidth
	if i < 0 || i >= len(InlineButtons) {
		return "", false
	}
	return InlineButtons[i].Style, true
}

// BlockToolbarHit reports whether (x, y) is on the block toolbar.
func BlockToolbarHit(tb *toolbar.Block, x, y int) bool {
	fx, fy := center(x, y)
	return tb.Hit(fx, fy)
}

// MenuRect is where the open menu is drawn: under the block toolbar.
func MenuRect(tb *toolbar.Block, m *blockmenu.Menu) (toolbar.Rect, bool) {
	b, ok := tb.Bounds()
	if !ok {
		return toolbar.Rect{}, false
	}
	w := 0
	for _, it := range m.Items() {
		w = max(w, uniseg.StringWidth(it.Label))
	}
	return toolbar.Rect{
		Left:   float64(cell(b.Left)),
		Top:    float64(cell(b.Top)) + b.Height,
		Width:  float64(w + 2),
		Height: float64(len(m.Items())),
	}, true
}

// MenuItemAt returns the index of the menu item under (x, y).
func MenuItemAt(tb *toolbar.Block, m *blockmenu.Menu, x, y int) (int, bool) {
	if !m.IsOpen() {
		return 0, false
	}
	r, ok := MenuRect(tb, m)
	fx, fy := center(x, y)
	if !ok || !r.Contains(fx, fy) {
		return 0, false
	}
	return y - int(r.Top), true
}

// Frame is everything one redraw needs.
type Frame struct {
	Snapshot *snapshot.Snapshot
	Layout   *Layout
	Inline   *toolbar.Inline
	Block    *toolbar.Block
	Menu     *blockmenu.Menu
	Active   document.StyleSet // styles lit on the inline toolbar
	Focused  bool
	Status   *statusbar.StatusBar
}

// Renderer draws snapshots onto a TUI.
type Renderer struct {
	tui         *TUI
	theme       *theme.Theme
	highlighter *highlighter.Highlighter

	// CodeLanguage is the grammar for code blocks.
	CodeLanguage string
	// Placeholder is shown while the document is a single empty paragraph.
	Placeholder string
	// LeftMargin is the column where text starts; it leaves room for the
	// block toolbar.
	LeftMargin int

	scroll int
}

// NewRenderer creates a renderer. hl may be nil to disable highlighting.
func NewRenderer(t *TUI, th *theme.Theme, hl *highlighter.Highlighter) *Renderer {
	return &Renderer{tui: t, theme: th, highlighter: hl, LeftMargin: 5}
}

// SetTheme switches the active theme.
func (r *Renderer) SetTheme(th *theme.Theme) {
	r.theme = th
	r.tui.SetStyle(th.GetStyle(theme.StyleDefault))
}

// Layout lays s out for the current screen size, keeping the focus visible.
func (r *Renderer) Layout(s *snapshot.Snapshot) *Layout {
	w, h := r.tui.Size()
	area := Area{Left: r.LeftMargin, Top: 0, Width: w - r.LeftMargin - 1, Height: h - 1}
	if area.Width < 1 {
		area.Width = 1
	}
	l := NewLayout(s, area)
	l.KeepVisible(r.scroll)
	r.scroll = l.Scroll()
	return l
}

func (r *Renderer) blockStyle(t document.BlockType) tcell.Style {
	switch t.Kind() {
	case document.KindHeaderOne:
		return r.theme.GetStyle(theme.StyleHeader)
	case document.KindCodeBlock:
		return r.theme.GetStyle(theme.StyleCodeBlock)
	case document.KindImage:
		return r.theme.GetStyle(theme.StyleImage)
	case document.KindUnknown:
		return r.theme.GetStyle(theme.StyleUnknownBlock)
	}
	return r.theme.GetStyle(theme.StyleDefault)
}

func (r *Renderer) inlineStyle(style tcell.Style, chars document.StyleSet) tcell.Style {
	if chars.Has(document.Bold) {
		style = style.Bold(true)
	}
	if chars.Has(document.Italic) {
		style = style.Italic(true)
	}
	if chars.Has(document.Underline) {
		style = style.Underline(true)
	}
	if chars.Has(document.Code) {
		fg, bg, _ := r.theme.GetStyle(theme.StyleCode).Decompose()
		style = style.Foreground(fg).Background(bg)
	}
	return style
}

func (r *Renderer) syntax(b *document.Block) []highlighter.Span {
	if r.highlighter == nil || b.Type().Kind() != document.KindCodeBlock || r.CodeLanguage == "" {
		return nil
	}
	spans, err := r.highlighter.Highlight(context.Background(), r.CodeLanguage, b.Text())
	if err != nil {
		logger.DebugTagf("highlight", "Renderer: no highlighting for block %s: %v", b.Key(), err)
		return nil
	}
	return spans
}

// Draw renders f and shows it.
func (r *Renderer) Draw(f Frame) {
	screen := r.tui.GetScreen()
	width, height := r.tui.Size()
	defaultStyle := r.theme.GetStyle(theme.StyleDefault)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			screen.SetContent(x, y, ' ', nil, defaultStyle)
		}
	}

	r.drawBlocks(f)
	r.drawPlaceholder(f)
	r.drawBlockToolbar(f)
	r.drawMenu(f)
	r.drawInlineToolbar(f)
	if f.Status != nil {
		f.Status.Draw(screen, width, height)
	}
	r.drawCursor(f)
	screen.Show()
}

func (r *Renderer) drawBlocks(f Frame) {
	screen := r.tui.GetScreen()
	l := f.Layout
	doc := f.Snapshot.Document()

	selected := map[string]selection.Span{}
	if !f.Snapshot.IsCollapsed() {
		for _, sp := range f.Snapshot.Selection().Spans(doc) {
			selected[sp.Block.Key()] = sp
		}
	}
	_, selBg, _ := r.theme.GetStyle(theme.StyleSelection).Decompose()
	bulletStyle := r.theme.GetStyle(theme.StyleListBullet)

	for _, box := range l.boxes {
		first, last := box.top-l.scroll+l.area.Top, box.top+len(box.rows)-l.scroll+l.area.Top
		if last <= l.area.Top || first >= l.area.Top+l.area.Height {
			continue
		}
		b := box.block
		base := r.blockStyle(b.Type())
		chars := b.CharStyles()
		spans := r.syntax(b)
		sel, hasSel := selected[b.Key()]

		for ri, rw := range box.rows {
			y := rw.y - l.scroll + l.area.Top
			if !l.Visible(y) {
				continue
			}
			switch b.Type().Kind() {
			case document.KindCodeBlock:
				for x := l.area.Left; x < l.area.Left+l.area.Width; x++ {
					screen.SetContent(x, y, ' ', nil, base)
				}
			case document.KindUnorderedListItem:
				if ri == 0 {
					screen.SetContent(l.area.Left, y, '•', nil, bulletStyle)
				}
			case document.KindImage:
				if ri == 0 {
					screen.SetContent(l.area.Left, y, '▣', nil, base)
				}
			}

			for _, g := range rw.glyphs {
				style := base
				if name := highlighter.StyleAt(spans, g.offset); name != "" {
					style = r.theme.GetStyle(name)
				}
				if g.offset < len(chars) {
					style = r.inlineStyle(style, chars[g.offset])
				}
				if hasSel && g.offset >= sel.Start && g.offset < sel.End {
					style = style.Background(selBg)
				}
				if g.runes[0] == '\t' {
					for i := 0; i < g.width; i++ {
						screen.SetContent(g.x+i, y, ' ', nil, style)
					}
					continue
				}
				screen.SetContent(g.x, y, g.runes[0], g.runes[1:], style)
			}
		}
	}
}

func (r *Renderer) drawPlaceholder(f Frame) {
	doc := f.Snapshot.Document()
	if r.Placeholder == "" || doc.Len() != 1 || !doc.First().IsEmpty() || doc.First().Type() != document.Paragraph {
		return
	}
	x, y, ok := f.Layout.CellFor(doc.First().Key(), 0)
	if !ok || !f.Layout.Visible(y) {
		return
	}
	drawText(r.tui.GetScreen(), x, y, r.Placeholder, r.theme.GetStyle(theme.StylePlaceholder))
}

func (r *Renderer) drawBlockToolbar(f Frame) {
	if f.Block == nil {
		return
	}
	b, ok := f.Block.Bounds()
	if !ok {
		return
	}
	style := r.theme.GetStyle(theme.StyleBlockToolbar)
	label := "+"
	if f.Menu != nil && f.Menu.IsOpen() {
		label = "×"
	}
	fillRect(r.tui.GetScreen(), b, style)
	x := cell(b.Left) + (int(b.Width)-1)/2
	drawText(r.tui.GetScreen(), x, cell(b.Top), label, style)
}

func (r *Renderer) drawMenu(f Frame) {
	if f.Menu == nil || f.Block == nil || !f.Menu.IsOpen() {
		return
	}
	rect, ok := MenuRect(f.Block, f.Menu)
	if !ok {
		return
	}
	screen := r.tui.GetScreen()
	for i, it := range f.Menu.Items() {
		style := r.theme.GetStyle(theme.StyleMenu)
		if i == f.Menu.Selected() {
			style = r.theme.GetStyle(theme.StyleMenuSelected)
		}
		y := int(rect.Top) + i
		row := toolbar.Rect{Left: rect.Left, Top: float64(y), Width: rect.Width, Height: 1}
		fillRect(screen, row, style)
		drawText(screen, int(rect.Left)+1, y, it.Label, style)
	}
}

func (r *Renderer) drawInlineToolbar(f Frame) {
	if f.Inline == nil {
		return
	}
	b, ok := f.Inline.Bounds()
	if !ok {
		return
	}
	screen := r.tui.GetScreen()
	x, y := cell(b.Left), cell(b.Top)
	for i, btn := range InlineButtons {
		style := r.theme.GetStyle(theme.StyleToolbar)
		if f.Active.Has(btn.Style) {
			style = r.theme.GetStyle(theme.StyleToolbarActive)
		}
		bx := x + i*inlineButtonWidth
		fillRect(screen, toolbar.Rect{Left: float64(bx), Top: float64(y), Width: inlineButtonWidth, Height: 1}, style)
		drawText(screen, bx+1, y, btn.Label, style)
	}
}

func (r *Renderer) drawCursor(f Frame) {
	screen := r.tui.GetScreen()
	sel := f.Snapshot.Selection()
	if !f.Focused || (f.Menu != nil && f.Menu.IsOpen()) {
		screen.HideCursor()
		return
	}
	x, y, ok := f.Layout.CellFor(sel.FocusKey, sel.FocusOffset)
	if !ok || !f.Layout.Visible(y) {
		screen.HideCursor()
		return
	}
	screen.ShowCursor(x, y)
}

func fillRect(screen tcell.Screen, rect toolbar.Rect, style tcell.Style) {
	x0, y0 := cell(rect.Left), cell(rect.Top)
	for y := y0; y < y0+int(rect.Height); y++ {
		for x := x0; x < x0+int(rect.Width); x++ {
			screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

// drawText writes s from (x, y) cluster by cluster; cells off screen are
// dropped by tcell.
func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		runes := gr.Runes()
		screen.SetContent(x, y, runes[0], runes[1:], style)
		x += max(gr.Width(), 1)
	}
	return x
}
