// internal/plugin/plugin.go
package plugin

import (
	"github.com/bethropolis/blocks/internal/event"
	"github.com/bethropolis/blocks/internal/snapshot"
	"github.com/bethropolis/blocks/internal/theme"
)

// CommandFunc defines the signature for commands registered by plugins.
// Commands run on the editor goroutine when their key is pressed.
type CommandFunc func(args []string) error

// EditorAPI defines the methods plugins can use to interact with the editor core.
// Unless noted, methods must be called from the editor goroutine, that is
// from an event handler or a command.
type EditorAPI interface {
	// --- Document Access (read-only) ---
	Snapshot() *snapshot.Snapshot
	FilePath() string
	IsModified() bool

	// RequestSave asks the editor to save if the document is modified.
	// Safe to call from any goroutine.
	RequestSave()

	// --- Event Bus Interaction ---
	DispatchEvent(eventType event.Type, data interface{})
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// --- Command Registration ---
	// RegisterCommand exposes cmdFunc under name; [keys] entries can bind it.
	RegisterCommand(name string, cmdFunc CommandFunc) error

	// --- Status Bar ---
	SetStatusMessage(format string, args ...interface{})

	// --- Theme Access ---
	SetTheme(name string) error
	GetTheme() *theme.Theme
	ListThemes() []string

	// --- Configuration ---
	// GetPluginConfigValue reads key from the [plugins.<name>] table.
	GetPluginConfigValue(pluginName, key string) (interface{}, bool)
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded, before the
	// first frame. Used for subscribing to events and registering commands.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the editor is closing.
	Shutdown() error
}
