// internal/event/manager.go
package event

import (
	"sync"

	"github.com/bethropolis/blocks/internal/logger"
)

// Handler receives dispatched events. Returning true stops delivery to the
// handlers subscribed after it.
type Handler func(e Event) bool

// Manager handles event subscriptions and dispatching.
type Manager struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
}

// NewManager creates a new event manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe adds a handler function for a specific event type.
func (m *Manager) Subscribe(eventType Type, handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.handlers[eventType] = append(m.handlers[eventType], handler)
	logger.DebugTagf("event", "Event Manager: Handler subscribed to %v", eventType)
}

// HasSubscribers reports whether anything listens for eventType.
func (m *Manager) HasSubscribers(eventType Type) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.handlers[eventType]) > 0
}

// Dispatch sends an event to the handlers registered for its type, in
// subscription order, on the caller's goroutine. It returns whether a
// handler consumed the event.
func (m *Manager) Dispatch(eventType Type, data interface{}) bool {
	event := Event{
		Type: eventType,
		Data: data,
	}

	m.mu.RLock() // Use read lock while iterating handlers
	handlers, exists := m.handlers[eventType]
	m.mu.RUnlock() // Unlock after getting the slice

	if !exists || len(handlers) == 0 {
		return false
	}

	logger.DebugTagf("event", "Event Manager: Dispatching %v to %d handler(s)", eventType, len(handlers))

	// Copy so a handler subscribing during dispatch doesn't alter this pass.
	handlersCopy := make([]Handler, len(handlers))
	copy(handlersCopy, handlers)

	for _, handler := range handlersCopy {
		if handler(event) {
			return true
		}
	}
	return false
}
