package app

import (
	"github.com/bethropolis/blocks/internal/blockmenu"
	"github.com/bethropolis/blocks/internal/event"
	"github.com/bethropolis/blocks/internal/history"
	"github.com/bethropolis/blocks/internal/logger"
)

func (a *App) subscribe() {
	a.events.Subscribe(event.TypeSnapshotChanged, a.handleSnapshotChangedForToolbar)
	a.events.Subscribe(event.TypeSnapshotChanged, a.handleSnapshotChangedForMenu)
	a.events.Subscribe(event.TypeFocusChanged, a.handleFocusChanged)
	a.events.Subscribe(event.TypeSnapshotSaved, a.handleSnapshotSaved)
}

// The block toolbar can only be positioned once the new snapshot is laid
// out, so a change just schedules the read for the next draw.
func (a *App) handleSnapshotChangedForToolbar(e event.Event) bool {
	if data, ok := e.Data.(event.SnapshotChangedData); ok {
		a.block.Invalidate(data.Current)
	} else {
		logger.Warnf("App: SnapshotChanged event with unexpected data type: %T", e.Data)
	}
	return false
}

// Choosing a block type closes the menu.
func (a *App) handleSnapshotChangedForMenu(e event.Event) bool {
	if data, ok := e.Data.(event.SnapshotChangedData); ok && data.Origin == string(history.OriginBlock) {
		a.changeMenu(blockmenu.Select)
	}
	return false
}

func (a *App) handleFocusChanged(e event.Event) bool {
	data, ok := e.Data.(event.FocusChangedData)
	if !ok {
		return false
	}
	a.statusBar.SetFocused(data.Focused)
	if !data.Focused {
		a.changeMenu(blockmenu.Blur)
	}
	return false
}

func (a *App) handleSnapshotSaved(e event.Event) bool {
	if data, ok := e.Data.(event.SnapshotSavedData); ok {
		logger.Infof("App: saved %s (%s)", data.FilePath, data.Format)
		a.statusBar.SetTemporaryMessage("Saved %s", data.FilePath)
	}
	return false
}
