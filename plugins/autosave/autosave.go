package autosave

import (
	"sync"
	"time"

	"github.com/bethropolis/blocks/internal/event"
	"github.com/bethropolis/blocks/internal/logger"
	"github.com/bethropolis/blocks/internal/plugin"
)

// Ensure AutoSave implements plugin.Plugin
var _ plugin.Plugin = (*AutoSave)(nil)

const (
	// Default configuration values
	defaultEnabled  = false
	defaultInterval = 1 * time.Minute
)

// AutoSave periodically asks the editor to save a modified document.
type AutoSave struct {
	api plugin.EditorAPI

	// Configuration, fixed after Initialize.
	enabled  bool
	interval time.Duration

	mutex sync.Mutex
	dirty bool // set by snapshot changes, cleared by saves

	stopChan chan struct{}
	wg       sync.WaitGroup
}

// New creates a new instance of the AutoSave plugin.
func New() *AutoSave {
	return &AutoSave{
		enabled:  defaultEnabled,
		interval: defaultInterval,
	}
}

// Name returns the unique name of the plugin.
func (p *AutoSave) Name() string {
	return "autosave"
}

// Interval returns the configured save interval.
func (p *AutoSave) Interval() time.Duration { return p.interval }

// Enabled reports whether the saver loop runs.
func (p *AutoSave) Enabled() bool { return p.enabled }

// Initialize reads the [plugins.autosave] table and starts the saver loop
// when enabled.
func (p *AutoSave) Initialize(api plugin.EditorAPI) error {
	p.api = api
	pluginName := p.Name()

	if enabledVal, ok := api.GetPluginConfigValue(pluginName, "enabled"); ok {
		if boolVal, isBool := enabledVal.(bool); isBool {
			p.enabled = boolVal
		} else {
			logger.Warnf("%s: Invalid type for 'enabled' config (%T), using default (%v)", pluginName, enabledVal, p.enabled)
		}
	}

	if intervalVal, ok := api.GetPluginConfigValue(pluginName, "interval"); ok {
		if strVal, isStr := intervalVal.(string); isStr {
			parsedInterval, err := time.ParseDuration(strVal)
			switch {
			case err != nil:
				logger.Warnf("%s: Invalid format for 'interval' config ('%s'): %v. Using default (%v)", pluginName, strVal, err, p.interval)
			case parsedInterval <= 0:
				logger.Warnf("%s: 'interval' config must be positive ('%s'). Using default (%v)", pluginName, strVal, p.interval)
			default:
				p.interval = parsedInterval
			}
		} else {
			logger.Warnf("%s: Invalid type for 'interval' config (%T), using default (%v)", pluginName, intervalVal, p.interval)
		}
	}

	logger.Infof("%s initialized. Enabled: %v, Interval: %v", pluginName, p.enabled, p.interval)
	if !p.enabled {
		return nil
	}

	api.SubscribeEvent(event.TypeSnapshotChanged, p.handleSnapshotChanged)
	api.SubscribeEvent(event.TypeSnapshotSaved, p.handleSnapshotSaved)

	p.stopChan = make(chan struct{})
	p.wg.Add(1)
	go p.saverLoop(p.interval)
	return nil
}

// Shutdown signals the saver goroutine to stop and waits for it.
func (p *AutoSave) Shutdown() error {
	if p.stopChan != nil {
		close(p.stopChan)
		p.wg.Wait()
		p.stopChan = nil
		logger.Debugf("%s: Saver goroutine stopped.", p.Name())
	}
	return nil
}

func (p *AutoSave) handleSnapshotChanged(e event.Event) bool {
	p.mutex.Lock()
	p.dirty = true
	p.mutex.Unlock()
	return false
}

func (p *AutoSave) handleSnapshotSaved(e event.Event) bool {
	p.mutex.Lock()
	p.dirty = false
	p.mutex.Unlock()
	return false
}

func (p *AutoSave) saverLoop(interval time.Duration) {
	defer p.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.saveIfDirty()
		case <-p.stopChan:
			return
		}
	}
}

// saveIfDirty runs on the saver goroutine, so it only asks; the editor
// checks the file path and the modified state itself.
func (p *AutoSave) saveIfDirty() {
	p.mutex.Lock()
	dirty := p.dirty
	p.mutex.Unlock()
	if !dirty {
		logger.DebugTagf("autosave", "%s: Document not modified, skipping auto-save.", p.Name())
		return
	}
	logger.DebugTagf("autosave", "%s: Requesting auto-save", p.Name())
	p.api.RequestSave()
}
