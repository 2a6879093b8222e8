// internal/plugin/manager.go
package plugin

import (
	"fmt"
	"sync"

	"github.com/bethropolis/blocks/internal/logger"
)

// Manager handles the registration, initialization, and lifecycle of plugins.
// Plugins are initialised and shut down in registration order.
type Manager struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
	order   []string
}

// NewManager creates a new plugin manager.
func NewManager() *Manager {
	return &Manager{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin instance to the manager.
// This should be called before InitializePlugins.
func (m *Manager) Register(plugin Plugin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := plugin.Name()
	if name == "" {
		return fmt.Errorf("plugin registration failed: plugin name cannot be empty")
	}
	if _, exists := m.plugins[name]; exists {
		return fmt.Errorf("plugin registration failed: plugin named '%s' already registered", name)
	}

	m.plugins[name] = plugin
	m.order = append(m.order, name)
	logger.DebugTagf("plugin", "Plugin Manager: Registered plugin '%s'", name)
	return nil
}

func (m *Manager) snapshot() []Plugin {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := make([]Plugin, 0, len(m.order))
	for _, name := range m.order {
		list = append(list, m.plugins[name])
	}
	return list
}

// InitializePlugins calls Initialize on every registered plugin. A failing
// plugin is logged and the rest still load; the first error is returned.
func (m *Manager) InitializePlugins(api EditorAPI) error {
	plugins := m.snapshot()
	logger.Debugf("Plugin Manager: Initializing %d plugins...", len(plugins))

	var firstErr error
	for _, plugin := range plugins {
		if err := plugin.Initialize(api); err != nil {
			logger.Errorf("Plugin Manager: ERROR initializing plugin '%s': %v", plugin.Name(), err)
			if firstErr == nil {
				firstErr = fmt.Errorf("plugin %s: %w", plugin.Name(), err)
			}
			continue
		}
		logger.DebugTagf("plugin", "Plugin Manager: Successfully initialized plugin '%s'", plugin.Name())
	}
	return firstErr
}

// ShutdownPlugins calls Shutdown on all registered plugins.
func (m *Manager) ShutdownPlugins() {
	plugins := m.snapshot()
	logger.Debugf("Plugin Manager: Shutting down %d plugins...", len(plugins))
	for _, plugin := range plugins {
		if err := plugin.Shutdown(); err != nil {
			logger.Errorf("Plugin Manager: ERROR shutting down plugin '%s': %v", plugin.Name(), err)
		}
	}
}

// GetPlugin returns a registered plugin by name.
func (m *Manager) GetPlugin(name string) (Plugin, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, exists := m.plugins[name]
	return p, exists
}

// Names lists registered plugins in registration order.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.order...)
}
