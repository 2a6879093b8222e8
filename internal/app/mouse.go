package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/blocks/internal/blockmenu"
	"github.com/bethropolis/blocks/internal/engine"
	"github.com/bethropolis/blocks/internal/history"
	"github.com/bethropolis/blocks/internal/tui"
)

// handleMouse routes a left press to the topmost thing under it: the open
// menu, the inline toolbar, the block toolbar, then the text. Holding the
// button drags the selection focus.
func (a *App) handleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	if ev.Buttons()&tcell.Button1 == 0 {
		a.pressed, a.dragging = false, false
		return false
	}
	if a.layout == nil {
		return false
	}

	if a.pressed {
		if !a.dragging {
			return false
		}
		p, ok := a.layout.PointAt(x, y)
		if !ok {
			return false
		}
		return a.apply(engine.ExtendTo(a.snap, p.Key, p.Offset), "")
	}
	a.pressed = true

	redraw := a.setFocused(true)

	if i, ok := tui.MenuItemAt(a.block, a.menu, x, y); ok {
		return a.chooseBlockType(a.menu.Items()[i].Type)
	}
	if style, ok := tui.InlineButtonAt(a.inline, x, y); ok {
		return a.apply(engine.ToggleInlineStyle(a.snap, style), history.OriginCommand) || redraw
	}
	if tui.BlockToolbarHit(a.block, x, y) {
		return a.changeMenu(blockmenu.Toggle) || redraw
	}

	p, ok := a.layout.PointAt(x, y)
	if !ok {
		return redraw
	}
	a.dragging = true
	if ev.Modifiers()&tcell.ModShift != 0 {
		return a.apply(engine.ExtendTo(a.snap, p.Key, p.Offset), "") || redraw
	}
	return a.apply(engine.PlaceCaret(a.snap, p.Key, p.Offset), "") || redraw
}
