package eventbus

import (
	"fmt"
	"sync"

	"github.com/rtpro256/workflow-engine-core/pkg/logging"
)

// Handler receives one ExecutionEvent. A Handler must not block
// indefinitely; it runs synchronously on the emitting goroutine.
type Handler func(event ExecutionEvent)

// Bus delivers events to handlers synchronously and in registration order.
// A handler that panics or is otherwise misbehaved is isolated: the panic
// is recovered, logged, and does not prevent subsequent handlers from
// running or Emit from returning.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
	logger   *logging.Logger
}

// New creates an empty Bus. A nil logger falls back to logging.New with
// default configuration.
func New(logger *logging.Logger) *Bus {
	if logger == nil {
		logger = logging.New(logging.DefaultConfig())
	}
	return &Bus{logger: logger}
}

// Subscribe registers a handler, appended after any already registered.
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Emit invokes every registered handler, in registration order, on the
// calling goroutine. A handler panic is recovered and logged; it does not
// stop later handlers from running.
func (b *Bus) Emit(event ExecutionEvent) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for _, h := range handlers {
		b.invoke(h, event)
	}
}

func (b *Bus) invoke(h Handler, event ExecutionEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.WithField("panic", fmt.Sprintf("%v", r)).
				WithField("event_type", string(event.Type)).
				Error("event handler panicked")
		}
	}()
	h(event)
}
