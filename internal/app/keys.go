package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/blocks/internal/blockmenu"
	"github.com/bethropolis/blocks/internal/document"
	"github.com/bethropolis/blocks/internal/engine"
	"github.com/bethropolis/blocks/internal/history"
	"github.com/bethropolis/blocks/internal/input"
	"github.com/bethropolis/blocks/internal/logger"
)

var moves = map[input.Action]engine.Direction{
	input.ActionMoveLeft:      engine.MoveLeft,
	input.ActionMoveRight:     engine.MoveRight,
	input.ActionMoveUp:        engine.MoveUp,
	input.ActionMoveDown:      engine.MoveDown,
	input.ActionMoveLineStart: engine.MoveLineStart,
	input.ActionMoveLineEnd:   engine.MoveLineEnd,
	input.ActionMoveDocStart:  engine.MoveDocStart,
	input.ActionMoveDocEnd:    engine.MoveDocEnd,
}

// engineCommands are offered to engine.DispatchKeyCommand before any
// fallback runs.
var engineCommands = map[input.Action]bool{
	input.ActionBold:        true,
	input.ActionItalic:      true,
	input.ActionUnderline:   true,
	input.ActionCode:        true,
	input.ActionBackspace:   true,
	input.ActionDelete:      true,
	input.ActionSplitBlock:  true,
	input.ActionSoftNewline: true,
	input.ActionUndo:        true,
	input.ActionRedo:        true,
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	act := a.input.ProcessEvent(ev)
	logger.DebugTagf("input", "App: key %q -> %s", ev.Name(), act.Action)

	if a.menu.IsOpen() {
		return a.handleMenuKey(act)
	}

	redraw := false
	if act.Action != input.ActionBlur && act.Action != input.ActionUnknown {
		redraw = a.setFocused(true)
	}

	if a.input.IsCustom(act.Action) {
		return a.runCommand(string(act.Action), nil) || redraw
	}
	if engineCommands[act.Action] {
		if res := engine.DispatchKeyCommand(a.snap, engine.Command(act.Action)); res.Handled {
			return a.apply(res.Snapshot, history.OriginCommand) || redraw
		}
	}
	return a.fallback(act) || redraw
}

// fallback is the default handling for keys the engine leaves alone.
func (a *App) fallback(act input.ActionEvent) bool {
	if dir, ok := moves[act.Action]; ok {
		return a.apply(engine.Move(a.snap, dir, act.Extend), "")
	}

	switch act.Action {
	case input.ActionQuit:
		a.Quit()
		return false
	case input.ActionSave:
		return a.save()
	case input.ActionBlur:
		return a.setFocused(false)
	case input.ActionBlockMenu:
		return a.changeMenu(blockmenu.Toggle)
	case input.ActionHeader, input.ActionList, input.ActionCodeBlock:
		return a.chooseBlockType(document.BlockType(act.Action))

	case input.ActionInsertRune:
		return a.apply(engine.InsertText(a.snap, string(act.Rune)), history.OriginTyping)
	case input.ActionIndent:
		return a.apply(engine.IndentWith(a.snap, a.indent), history.OriginTyping)
	case input.ActionSoftNewline:
		return a.apply(engine.InsertSoftNewline(a.snap), history.OriginTyping)
	case input.ActionSplitBlock:
		return a.apply(engine.SplitBlock(a.snap), history.OriginCommand)
	case input.ActionBackspace:
		return a.apply(engine.DeleteBackward(a.snap), history.OriginCommand)
	case input.ActionDelete:
		return a.apply(engine.DeleteForward(a.snap), history.OriginCommand)
	case input.ActionSelectAll:
		return a.apply(engine.SelectAll(a.snap), "")

	case input.ActionUndo:
		if prev, ok := a.history.Undo(a.snap); ok {
			a.snap = prev
			return true
		}
	case input.ActionRedo:
		if next, ok := a.history.Redo(a.snap); ok {
			a.snap = next
			return true
		}

	case input.ActionCopy:
		_, redraw := a.copySelection()
		return redraw
	case input.ActionCut:
		copied, redraw := a.copySelection()
		if !copied {
			return redraw
		}
		return a.apply(engine.RemoveSelection(a.snap), history.OriginCommand) || redraw
	case input.ActionPaste:
		return a.paste()
	}
	return false
}

// handleMenuKey drives the open block menu: arrows move the highlight,
// enter picks, escape or the menu key close it. Other keys are swallowed.
func (a *App) handleMenuKey(act input.ActionEvent) bool {
	switch act.Action {
	case input.ActionMoveUp:
		a.menu.MoveSelection(-1)
		return true
	case input.ActionMoveDown:
		a.menu.MoveSelection(1)
		return true
	case input.ActionSplitBlock:
		items := a.menu.Items()
		return a.chooseBlockType(items[a.menu.Selected()].Type)
	case input.ActionBlur:
		return a.changeMenu(blockmenu.Blur)
	case input.ActionBlockMenu:
		return a.changeMenu(blockmenu.Toggle)
	case input.ActionQuit:
		a.Quit()
	}
	return false
}

// chooseBlockType runs the block action for t and closes the menu.
func (a *App) chooseBlockType(t document.BlockType) bool {
	a.apply(engine.InsertBlockAfterCurrent(a.snap, t), history.OriginBlock)
	a.changeMenu(blockmenu.Select)
	return true
}

// copySelection reports whether anything was copied and whether the status
// bar changed. A system clipboard failure still leaves the text in the
// internal buffer, so it counts as copied.
func (a *App) copySelection() (copied, redraw bool) {
	if a.snap.IsCollapsed() {
		return false, false
	}
	if err := a.clipboard.Copy(engine.SelectedText(a.snap)); err != nil {
		logger.Warnf("App: %v", err)
		a.statusBar.SetTemporaryMessage("Copied to internal clipboard only")
		return true, true
	}
	return true, false
}

func (a *App) paste() bool {
	text, err := a.clipboard.Paste()
	if err != nil {
		logger.Warnf("App: %v", err)
	}
	if text == "" {
		return err != nil
	}
	return a.apply(engine.Paste(a.snap, text), history.OriginPaste)
}
