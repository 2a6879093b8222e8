package lang

import (
	"strings"
	"sync"

	"github.com/bethropolis/blocks/internal/logger"
)

var registry struct {
	sync.RWMutex
	languages []*Language
	byName    map[string]*Language
}

func key(name string) string { return strings.ToLower(strings.TrimSpace(name)) }

// Register adds a language under its name and aliases. A later
// registration of the same key wins.
func Register(lang *Language) {
	registry.Lock()
	defer registry.Unlock()

	if registry.byName == nil {
		registry.byName = make(map[string]*Language)
	}
	registry.languages = append(registry.languages, lang)

	for _, k := range append([]string{lang.Name}, lang.Aliases...) {
		k = key(k)
		if existing, ok := registry.byName[k]; ok && existing != lang {
			logger.Warnf("Language key %s already registered to %s, overriding with %s", k, existing.Name, lang.Name)
		}
		registry.byName[k] = lang
	}
	logger.DebugTagf("highlight", "Registered language: %s with aliases: %v", lang.Name, lang.Aliases)
}

// Get returns the language registered under name, or nil.
func Get(name string) *Language {
	registry.RLock()
	defer registry.RUnlock()
	return registry.byName[key(name)]
}

// GetAll returns all registered languages.
func GetAll() []*Language {
	registry.RLock()
	defer registry.RUnlock()

	result := make([]*Language, len(registry.languages))
	copy(result, registry.languages)
	return result
}
