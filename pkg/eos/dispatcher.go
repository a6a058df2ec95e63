package eos

import (
	"log"
	"strings"
	"sync"

	"github.com/dyluth/eosc/pkg/osc"
	"github.com/google/uuid"
)

// Handler processes one inbound OSC message.
type Handler func(msg osc.Message)

// registration binds an address pattern to a handler under a unique
// token. The token is the only way to remove a registration, so a
// handler can be registered twice on the same pattern without ambiguity.
type registration struct {
	token   string
	pattern string
	handler Handler
}

// Dispatcher routes inbound messages to registered handlers by address
// pattern. A pattern is either an exact address or a prefix ending in
// '*', which matches any address sharing the literal prefix. Handlers
// sharing a pattern run in insertion order. Messages that match no
// pattern go to the default handler.
//
// The dispatcher is safe for concurrent use, and handlers may register
// or unregister other handlers while a dispatch is in progress.
type Dispatcher struct {
	mu             sync.Mutex
	registrations  []registration
	defaultHandler Handler
}

// NewDispatcher creates a dispatcher whose default handler logs
// unhandled messages at debug level.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		defaultHandler: func(msg osc.Message) {
			log.Printf("[DEBUG] Unhandled message: %s", msg)
		},
	}
}

// Register adds a handler for the given pattern and returns the token
// that removes it. Patterns are never mutated after registration.
func (d *Dispatcher) Register(pattern string, handler Handler) string {
	token := uuid.New().String()
	d.mu.Lock()
	defer d.mu.Unlock()
	d.registrations = append(d.registrations, registration{
		token:   token,
		pattern: pattern,
		handler: handler,
	})
	return token
}

// Unregister removes the registration identified by token. Unknown
// tokens are ignored, so removal is idempotent.
func (d *Dispatcher) Unregister(token string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, reg := range d.registrations {
		if reg.token == token {
			d.registrations = append(d.registrations[:i], d.registrations[i+1:]...)
			return
		}
	}
}

// SetDefaultHandler replaces the handler invoked when no pattern
// matches. A nil handler silences unmatched messages.
func (d *Dispatcher) SetDefaultHandler(handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.defaultHandler = handler
}

// Dispatch invokes every handler whose pattern matches the message
// address, in insertion order, or the default handler if none match.
// Dispatch iterates over a snapshot of the registration table, so
// handlers that register or unregister during dispatch cannot corrupt
// the iteration; their changes take effect from the next dispatch.
func (d *Dispatcher) Dispatch(msg osc.Message) {
	d.mu.Lock()
	snapshot := make([]registration, len(d.registrations))
	copy(snapshot, d.registrations)
	fallback := d.defaultHandler
	d.mu.Unlock()

	matched := false
	for _, reg := range snapshot {
		if matchPattern(reg.pattern, msg.Address) {
			matched = true
			reg.handler(msg)
		}
	}
	if !matched && fallback != nil {
		fallback(msg)
	}
}

// matchPattern reports whether address matches pattern. A trailing '*'
// makes the pattern a prefix match; anything else is an exact match.
func matchPattern(pattern, address string) bool {
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(address, pattern[:len(pattern)-1])
	}
	return pattern == address
}
