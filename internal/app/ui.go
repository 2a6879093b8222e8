package app

import (
	"github.com/bethropolis/blocks/internal/document"
	"github.com/bethropolis/blocks/internal/engine"
	"github.com/bethropolis/blocks/internal/tui"
)

// draw lays the snapshot out, then settles the toolbars against that
// layout before painting, so geometry is never read ahead of the layout.
func (a *App) draw() {
	a.layout = a.renderer.Layout(a.snap)
	a.block.Settle(a.layout)
	a.inline.Update(a.snap, a.layout)

	active := engine.ActiveInlineStyles(a.snap)
	a.updateStatusBarContent(active)
	a.renderer.Draw(tui.Frame{
		Snapshot: a.snap,
		Layout:   a.layout,
		Inline:   a.inline,
		Block:    a.block,
		Menu:     a.menu,
		Active:   active,
		Focused:  a.focused,
		Status:   a.statusBar,
	})
}

// updateStatusBarContent pushes current editor state to the status bar.
func (a *App) updateStatusBarContent(active document.StyleSet) {
	a.statusBar.SetFileInfo(a.filePath, a.Modified())
	styles := make([]string, len(active))
	for i, st := range active {
		styles[i] = string(st)
	}
	blockType, _ := engine.CurrentBlockType(a.snap)
	a.statusBar.SetBlockInfo(blockType.String(), styles)
	a.statusBar.SetFocused(a.focused)
}
