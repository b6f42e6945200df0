// Package event is an in-process dispatcher for catalog write notifications
// (product created or updated, catalog reordered).
package event

import (
	"sync"

	"github.com/shashiranjanraj/mayorista/pkg/logger"
)

// Handler receives an event payload.
type Handler func(payload any)

var (
	mu       sync.RWMutex
	handlers = map[string][]Handler{}
	inflight sync.WaitGroup
)

// Listen registers a handler for the given event name.
func Listen(event string, handler Handler) {
	mu.Lock()
	defer mu.Unlock()
	handlers[event] = append(handlers[event], handler)
}

func listeners(event string) []Handler {
	mu.RLock()
	defer mu.RUnlock()
	return append([]Handler(nil), handlers[event]...)
}

// Fire dispatches an event synchronously to all registered listeners.
// A panicking listener is logged and does not stop the others.
func Fire(event string, payload any) {
	for _, h := range listeners(event) {
		call(event, h, payload)
	}
}

// FireAsync dispatches the event to all listeners concurrently and returns
// without waiting. Wait blocks until they finish.
func FireAsync(event string, payload any) {
	for _, h := range listeners(event) {
		inflight.Add(1)
		go func(h Handler) {
			defer inflight.Done()
			call(event, h, payload)
		}(h)
	}
}

// Wait blocks until every FireAsync listener has returned.
func Wait() { inflight.Wait() }

// Flush removes all listeners (useful in tests).
func Flush() {
	mu.Lock()
	defer mu.Unlock()
	handlers = map[string][]Handler{}
}

func call(event string, h Handler, payload any) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("event: listener panicked", "event", event, "panic", rec)
		}
	}()
	h(payload)
}
