// internal/app/app.go
package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/blocks/internal/blockmenu"
	"github.com/bethropolis/blocks/internal/clipboard"
	"github.com/bethropolis/blocks/internal/config"
	"github.com/bethropolis/blocks/internal/event"
	"github.com/bethropolis/blocks/internal/highlighter"
	"github.com/bethropolis/blocks/internal/history"
	"github.com/bethropolis/blocks/internal/input"
	"github.com/bethropolis/blocks/internal/logger"
	"github.com/bethropolis/blocks/internal/plugin"
	"github.com/bethropolis/blocks/internal/snapshot"
	"github.com/bethropolis/blocks/internal/statusbar"
	"github.com/bethropolis/blocks/internal/theme"
	"github.com/bethropolis/blocks/internal/toolbar"
	"github.com/bethropolis/blocks/internal/tui"
)

// Options configures a new App.
type Options struct {
	Config   *config.Config
	FilePath string
	// Screen replaces the terminal; tests pass a simulation screen.
	Screen tcell.Screen
	// Clipboard replaces the clipboard built from the config.
	Clipboard *clipboard.Manager
}

// App is the snapshot owner. It holds the only live snapshot, runs the
// engine on input and re-renders after every change. All state is touched
// from the goroutine running Run.
type App struct {
	cfg       *config.Config
	tui       *tui.TUI
	renderer  *tui.Renderer
	events    *event.Manager
	history   *history.Manager
	clipboard *clipboard.Manager
	input     *input.InputProcessor
	themes    *theme.Manager
	statusBar *statusbar.StatusBar
	plugins   *plugin.Manager
	commands  map[string]plugin.CommandFunc

	inline *toolbar.Inline
	block  *toolbar.Block
	menu   *blockmenu.Menu

	snap     *snapshot.Snapshot
	saved    *snapshot.Snapshot // last snapshot written to or read from disk
	layout   *tui.Layout
	filePath string
	indent   string
	focused  bool
	pressed  bool // left button is down
	dragging bool // the press started in the text

	quit     chan struct{}
	screenEv chan tcell.Event
}

// New builds the editor: loads the file (a missing file starts an empty
// document), sets up the terminal and wires every collaborator.
func New(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	snap := snapshot.NewEmpty()
	if opts.FilePath != "" {
		loaded, err := LoadSnapshot(opts.FilePath)
		if err != nil {
			return nil, err
		}
		snap = loaded
	}

	themes := theme.NewManager()
	if cfg.ThemeFile != "" {
		if err := themes.LoadFile(cfg.ThemeFile); err != nil {
			logger.Warnf("App: theme file ignored: %v", err)
		}
	}

	var (
		ui  *tui.TUI
		err error
	)
	if opts.Screen != nil {
		ui, err = tui.NewWithScreen(opts.Screen)
	} else {
		ui, err = tui.New()
	}
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.NewManager(cfg.Editor.SystemClipboard)
	}

	events := event.NewManager()
	highlighter.RegisterLanguages()
	renderer := tui.NewRenderer(ui, themes.Current(), highlighter.NewHighlighter())
	renderer.CodeLanguage = cfg.Editor.CodeLanguage
	renderer.Placeholder = cfg.Editor.Placeholder
	renderer.SetTheme(themes.Current())

	inlineW, inlineH := tui.InlineToolbarSize()
	tb := cfg.Toolbar

	a := &App{
		cfg:       cfg,
		tui:       ui,
		renderer:  renderer,
		events:    events,
		history:   history.NewManager(events, cfg.Editor.MaxHistory),
		clipboard: clip,
		input:     input.NewInputProcessor(),
		themes:    themes,
		statusBar: statusbar.New(statusbar.ConfigFromTheme(themes.Current())),
		plugins:   plugin.NewManager(),
		commands:  make(map[string]plugin.CommandFunc),
		inline:    toolbar.NewInline(tb.InlineOffset, inlineW, inlineH),
		block:     toolbar.NewBlock(toolbar.ParseAnchor(tb.BlockAnchor), tb.BlockGap, tb.BlockWidth, tb.BlockHeight),
		menu:      blockmenu.New(),
		snap:      snap,
		saved:     snap,
		filePath:  opts.FilePath,
		indent:    cfg.IndentString(),
		focused:   true,
		quit:      make(chan struct{}),
		screenEv:  make(chan tcell.Event, 16),
	}
	if left := int(tb.BlockWidth + tb.BlockGap + 1); left > renderer.LeftMargin {
		renderer.LeftMargin = left
	}

	a.subscribe()
	a.registerAppCommands()
	if err := registerPlugins(a.plugins); err != nil {
		logger.Warnf("App: %v", err)
	}
	if err := a.plugins.InitializePlugins(&editorAPI{app: a}); err != nil {
		logger.Warnf("App: %v", err)
	}
	// Commands exist now, so [keys] may bind them.
	if err := a.input.ApplyOverrides(cfg.Keys); err != nil {
		logger.Warnf("App: some key bindings were skipped: %v", err)
	}

	a.block.Invalidate(snap)
	return a, nil
}

// Snapshot returns the current snapshot.
func (a *App) Snapshot() *snapshot.Snapshot { return a.snap }

// Events exposes the bus so callers can observe the editor.
func (a *App) Events() *event.Manager { return a.events }

// Run draws the first frame and processes terminal events until quit.
func (a *App) Run() error {
	defer a.tui.Close()
	defer a.plugins.ShutdownPlugins()

	go a.pollEvents()

	a.draw()
	a.events.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("Ctrl+S Save | Ctrl+T Blocks | Ctrl+Q Quit")
	a.draw()

	for {
		select {
		case <-a.quit:
			a.events.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			if a.Modified() {
				logger.Warnf("App: exited with unsaved changes")
			}
			logger.Infof("App: exiting")
			return nil
		case ev, ok := <-a.screenEv:
			if !ok {
				return nil
			}
			if a.HandleEvent(ev) {
				a.draw()
			}
		}
	}
}

// pollEvents forwards terminal events to Run. It is the only other
// goroutine and never touches editor state.
func (a *App) pollEvents() {
	for {
		ev := a.tui.PollEvent()
		if ev == nil {
			close(a.screenEv)
			return
		}
		select {
		case a.screenEv <- ev:
		case <-a.quit:
			return
		}
	}
}

// HandleEvent applies one terminal event and reports whether the screen
// needs redrawing.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.tui.GetScreen().Sync()
		a.block.Invalidate(a.snap)
		return true
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		return a.handleMouse(ev)
	case *tcell.EventFocus:
		return a.setFocused(ev.Focused)
	case *tcell.EventInterrupt:
		return a.handleInterrupt(ev)
	}
	return false
}

// apply replaces the current snapshot, records it for undo and tells the
// subscribers. Returns false when next is the current snapshot.
func (a *App) apply(next *snapshot.Snapshot, origin history.Origin) bool {
	if next == nil || next == a.snap {
		return false
	}
	prev := a.snap
	a.snap = next
	if origin != "" {
		a.history.Record(history.Change{Origin: origin, Before: prev, After: next})
	}
	a.events.Dispatch(event.TypeSnapshotChanged, event.SnapshotChangedData{
		Previous: prev,
		Current:  next,
		Origin:   string(origin),
	})
	return true
}

// Modified reports whether the document differs from the file on disk.
func (a *App) Modified() bool {
	if a.snap == a.saved {
		return false
	}
	return a.snap.Document() != a.saved.Document()
}

func (a *App) setFocused(focused bool) bool {
	if a.focused == focused {
		return false
	}
	a.focused = focused
	if !focused {
		a.pressed, a.dragging = false, false
	}
	a.events.Dispatch(event.TypeFocusChanged, event.FocusChangedData{Focused: focused})
	return true
}

// changeMenu runs e through the block menu and announces a visibility change.
func (a *App) changeMenu(e blockmenu.Event) bool {
	if !a.menu.Apply(e) {
		return false
	}
	a.events.Dispatch(event.TypeBlockMenuChanged, event.BlockMenuChangedData{Open: a.menu.IsOpen()})
	return true
}

// Quit stops Run.
func (a *App) Quit() {
	select {
	case <-a.quit:
	default:
		close(a.quit)
	}
}
