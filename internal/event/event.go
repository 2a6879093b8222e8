// internal/event/event.go
package event

import (
	"github.com/bethropolis/blocks/internal/snapshot"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Editor state
	TypeSnapshotChanged  // A new snapshot replaced the current one
	TypeSnapshotSaved    // The snapshot was written to disk
	TypeBlockMenuChanged // The block-type picker opened or closed
	TypeFocusChanged     // The editor gained or lost input focus
	TypeThemeChanged     // The active theme was switched

	// Application lifecycle
	TypeAppReady // Fired once the screen and first layout are up
	TypeAppQuit  // Fired just before the event loop exits
)

func (t Type) String() string {
	switch t {
	case TypeSnapshotChanged:
		return "snapshot-changed"
	case TypeSnapshotSaved:
		return "snapshot-saved"
	case TypeBlockMenuChanged:
		return "blockmenu-changed"
	case TypeFocusChanged:
		return "focus-changed"
	case TypeThemeChanged:
		return "theme-changed"
	case TypeAppReady:
		return "app-ready"
	case TypeAppQuit:
		return "app-quit"
	default:
		return "unknown"
	}
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// SnapshotChangedData carries both sides of a replacement. Origin names what
// produced it, such as a command name, "undo" or "click".
type SnapshotChangedData struct {
	Previous *snapshot.Snapshot
	Current  *snapshot.Snapshot
	Origin   string
}

// SnapshotSavedData names the written file.
type SnapshotSavedData struct {
	FilePath string
	Format   snapshot.Format
}

// BlockMenuChangedData reports the picker's new visibility.
type BlockMenuChangedData struct {
	Open bool
}

// FocusChangedData reports whether the editor now has focus.
type FocusChangedData struct {
	Focused bool
}

// ThemeChangedData names the theme now in use.
type ThemeChangedData struct {
	Name string
}

type AppReadyData struct{}

type AppQuitData struct{}
