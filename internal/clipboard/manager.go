// Package clipboard copies plain text to the system clipboard, keeping an
// internal register for terminals where no system clipboard is available.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/bethropolis/blocks/internal/logger"
)

// System is the platform clipboard.
type System interface {
	WriteAll(text string) error
	ReadAll() (string, error)
}

type atottoSystem struct{}

func (atottoSystem) WriteAll(text string) error { return clipboard.WriteAll(text) }
func (atottoSystem) ReadAll() (string, error)   { return clipboard.ReadAll() }

// Manager handles clipboard operations.
type Manager struct {
	system   System
	register string
}

// NewManager uses the system clipboard when useSystem is set and the
// platform supports one.
func NewManager(useSystem bool) *Manager {
	m := &Manager{}
	if useSystem {
		if clipboard.Unsupported {
			logger.Warnf("Clipboard: system clipboard unsupported, using internal register")
		} else {
			m.system = atottoSystem{}
		}
	}
	return m
}

// NewManagerWith uses sys as the system clipboard. sys may be nil.
func NewManagerWith(sys System) *Manager {
	return &Manager{system: sys}
}

// UsesSystem reports whether copies reach the system clipboard.
func (m *Manager) UsesSystem() bool { return m.system != nil }

// Copy stores text. The internal register is always updated so a failed
// system write still leaves the text pasteable here.
func (m *Manager) Copy(text string) error {
	if text == "" {
		return nil
	}
	m.register = text
	logger.DebugTagf("clipboard", "Clipboard: copied %d bytes", len(text))
	if m.system == nil {
		return nil
	}
	if err := m.system.WriteAll(text); err != nil {
		return fmt.Errorf("write system clipboard: %w", err)
	}
	return nil
}

// Paste returns the clipboard text. On a system read error the register is
// returned alongside the error.
func (m *Manager) Paste() (string, error) {
	if m.system == nil {
		return m.register, nil
	}
	text, err := m.system.ReadAll()
	if err != nil {
		return m.register, fmt.Errorf("read system clipboard: %w", err)
	}
	return text, nil
}
