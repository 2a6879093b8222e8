package app

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/blocks/internal/event"
	"github.com/bethropolis/blocks/internal/input"
	"github.com/bethropolis/blocks/internal/logger"
	"github.com/bethropolis/blocks/internal/plugin"
	"github.com/bethropolis/blocks/internal/snapshot"
	"github.com/bethropolis/blocks/internal/statusbar"
	"github.com/bethropolis/blocks/internal/theme"
	"github.com/bethropolis/blocks/plugins/autosave"
	"github.com/bethropolis/blocks/plugins/wordcount"
)

// saveRequest is posted as an interrupt so saves asked for off the editor
// goroutine still run on it.
type saveRequest struct{}

// registerPlugins registers all known plugins with the manager.
func registerPlugins(pm *plugin.Manager) error {
	if pm == nil {
		return fmt.Errorf("plugin manager is nil")
	}

	pluginConstructors := []func() plugin.Plugin{
		func() plugin.Plugin { return wordcount.New() },
		func() plugin.Plugin { return autosave.New() },
	}

	var finalErr error
	for _, newPlugin := range pluginConstructors {
		p := newPlugin()
		logger.Debugf("Registering plugin: %s", p.Name())
		if err := pm.Register(p); err != nil {
			wrappedErr := fmt.Errorf("failed to register plugin '%s': %w", p.Name(), err)
			logger.Errorf("%v", wrappedErr)
			if finalErr == nil {
				finalErr = wrappedErr
			}
		}
	}
	return finalErr
}

// editorAPI is the plugin.EditorAPI view of an App.
type editorAPI struct {
	app *App
}

var _ plugin.EditorAPI = (*editorAPI)(nil)

func (e *editorAPI) Snapshot() *snapshot.Snapshot { return e.app.snap }
func (e *editorAPI) FilePath() string             { return e.app.filePath }
func (e *editorAPI) IsModified() bool             { return e.app.Modified() }

func (e *editorAPI) RequestSave() {
	if err := e.app.tui.PostEvent(tcell.NewEventInterrupt(saveRequest{})); err != nil {
		logger.Warnf("EditorAPI: save request dropped: %v", err)
	}
}

func (e *editorAPI) DispatchEvent(eventType event.Type, data interface{}) {
	e.app.events.Dispatch(eventType, data)
}

func (e *editorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	e.app.events.Subscribe(eventType, handler)
}

func (e *editorAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	return e.app.registerCommand(name, cmdFunc)
}

func (e *editorAPI) SetStatusMessage(format string, args ...interface{}) {
	e.app.statusBar.SetTemporaryMessage(format, args...)
}

func (e *editorAPI) SetTheme(name string) error { return e.app.setTheme(name) }
func (e *editorAPI) GetTheme() *theme.Theme     { return e.app.themes.Current() }
func (e *editorAPI) ListThemes() []string       { return e.app.themes.ListThemes() }

func (e *editorAPI) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	table, ok := e.app.cfg.Plugins[pluginName]
	if !ok {
		return nil, false
	}
	v, ok := table[key]
	return v, ok
}

// registerCommand adds a named command and makes it bindable from [keys].
func (a *App) registerCommand(name string, fn plugin.CommandFunc) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || fn == nil {
		return fmt.Errorf("command needs a name and a function")
	}
	if _, exists := a.commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	if err := a.input.RegisterAction(input.Action(name)); err != nil {
		return err
	}
	a.commands[name] = fn
	logger.DebugTagf("plugin", "App: registered command '%s'", name)
	return nil
}

// runCommand executes a registered command and reports failures in the
// status bar.
func (a *App) runCommand(name string, args []string) bool {
	fn, ok := a.commands[name]
	if !ok {
		return false
	}
	if err := fn(args); err != nil {
		logger.Warnf("App: command '%s' failed: %v", name, err)
		a.statusBar.SetTemporaryMessage("Error: %v", err)
	}
	return true
}

// setTheme activates a theme everywhere it is drawn.
func (a *App) setTheme(name string) error {
	if err := a.themes.SetTheme(name); err != nil {
		return err
	}
	th := a.themes.Current()
	a.renderer.SetTheme(th)
	a.statusBar.SetConfig(statusbar.ConfigFromTheme(th))
	a.events.Dispatch(event.TypeThemeChanged, event.ThemeChangedData{Name: th.Name})
	return nil
}

// handleInterrupt runs requests posted by RequestSave.
func (a *App) handleInterrupt(ev *tcell.EventInterrupt) bool {
	if _, ok := ev.Data().(saveRequest); !ok {
		return false
	}
	if a.filePath == "" || !a.Modified() {
		return false
	}
	return a.save()
}
