package app

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/bethropolis/blocks/internal/config"
	"github.com/bethropolis/blocks/internal/event"
)

func TestWordCountKey(t *testing.T) {
	a := newTestApp(t, "")
	typeText(a, "two words")
	a.HandleEvent(key(tcell.KeyEnter, tcell.ModNone))
	typeText(a, "three")

	if !a.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModAlt)) {
		t.Errorf("word count should redraw")
	}
	msg, ok := a.statusBar.Text()
	if !ok || msg != "Blocks: 2, Words: 3, Chars: 14" {
		t.Errorf("status = %q, %v", msg, ok)
	}
	if diff := cmp.Diff([]string{"two words", "three"}, texts(a.Snapshot())); diff != "" {
		t.Errorf("alt+w must not type (-want +got):\n%s", diff)
	}
}

func TestThemeCommands(t *testing.T) {
	a := newTestApp(t, "")
	var changed []string
	a.Events().Subscribe(event.TypeThemeChanged, func(e event.Event) bool {
		changed = append(changed, e.Data.(event.ThemeChangedData).Name)
		return false
	})

	a.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 't', tcell.ModAlt))
	a.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 't', tcell.ModAlt))
	if diff := cmp.Diff([]string{"Paper Light", "DevComfort Dark"}, changed); diff != "" {
		t.Errorf("theme cycle mismatch (-want +got):\n%s", diff)
	}

	a.runCommand("theme", []string{"nope"})
	if msg, _ := a.statusBar.Text(); msg != "Error: theme 'nope' not found. Available: DevComfort Dark, Paper Light" {
		t.Errorf("status = %q", msg)
	}
}

func TestRegisterCommand(t *testing.T) {
	a := newTestApp(t, "")
	if err := a.registerCommand("word-count", func([]string) error { return nil }); err == nil {
		t.Errorf("duplicate command accepted")
	}
	if err := a.registerCommand("bold", func([]string) error { return nil }); err == nil {
		t.Errorf("built-in action accepted as a command")
	}
	if err := a.registerCommand("fail", func([]string) error { return errors.New("boom") }); err != nil {
		t.Fatalf("registerCommand: %v", err)
	}
	if !a.runCommand("fail", nil) {
		t.Fatalf("registered command not found")
	}
	if msg, _ := a.statusBar.Text(); msg != "Error: boom" {
		t.Errorf("status = %q", msg)
	}
}

func TestRequestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	a := newTestApp(t, path)
	save := tcell.NewEventInterrupt(saveRequest{})

	if a.HandleEvent(save) {
		t.Errorf("unmodified document should not be saved")
	}
	typeText(a, "x")
	if !a.HandleEvent(save) || a.Modified() {
		t.Errorf("save request did not save the modified document")
	}
	if a.HandleEvent(tcell.NewEventInterrupt("other")) {
		t.Errorf("foreign interrupt handled")
	}
}

func TestPluginConfigValue(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Plugins["autosave"] = map[string]interface{}{"enabled": false, "interval": "5s"}
	a, err := New(Options{Config: cfg, Screen: tcell.NewSimulationScreen("UTF-8")})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(a.tui.Close)

	api := &editorAPI{app: a}
	if v, ok := api.GetPluginConfigValue("autosave", "interval"); !ok || v != "5s" {
		t.Errorf("interval = %v, %v", v, ok)
	}
	if _, ok := api.GetPluginConfigValue("missing", "interval"); ok {
		t.Errorf("missing table reported a value")
	}
	if diff := cmp.Diff([]string{"wordcount", "autosave"}, a.plugins.Names()); diff != "" {
		t.Errorf("plugins mismatch (-want +got):\n%s", diff)
	}
}
