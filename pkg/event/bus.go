// Package event is a synchronous in-process publish/subscribe hub.
//
// Send delivers a message to every registered listener, in registration
// order, on the calling goroutine, and returns once all of them have
// handled it. Nothing is queued or batched.
package event

import (
	"log/slog"
	"sync"
	"time"
)

// Message is a notification. Kind names the message for logs and metrics.
type Message interface {
	Kind() string
}

// Listener reacts to messages.
type Listener interface {
	Receive(msg Message)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(msg Message)

func (f ListenerFunc) Receive(msg Message) { f(msg) }

// Metrics observes dispatch.
type Metrics interface {
	MessageDispatched(kind string, listeners int, elapsed time.Duration)
}

type nopMetrics struct{}

func (nopMetrics) MessageDispatched(string, int, time.Duration) {}

// NopMetrics discards all observations.
func NopMetrics() Metrics { return nopMetrics{} }

// Option configures a Bus.
type Option func(*Bus)

// WithLogger sets the logger used for dispatch tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bus) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithMetrics sets the dispatch metrics sink.
func WithMetrics(m Metrics) Option {
	return func(b *Bus) {
		if m != nil {
			b.metrics = m
		}
	}
}

// Bus fans messages out to listeners. It is safe for concurrent use, and
// listeners may call Send or Register from inside Receive.
type Bus struct {
	mu        sync.RWMutex
	listeners []Listener
	logger    *slog.Logger
	metrics   Metrics
}

// NewBus creates a bus with no listeners.
func NewBus(opts ...Option) *Bus {
	b := &Bus{
		logger:  slog.Default(),
		metrics: NopMetrics(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Register appends a listener. It receives every message sent after
// Register returns.
func (b *Bus) Register(l Listener) {
	b.mu.Lock()
	b.listeners = append(b.listeners, l)
	b.mu.Unlock()
}

// Len returns the number of registered listeners.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners)
}

// Send delivers msg to every listener in registration order and returns
// after the last one is done. The lock is not held while listeners run.
func (b *Bus) Send(msg Message) {
	b.mu.RLock()
	listeners := make([]Listener, len(b.listeners))
	copy(listeners, b.listeners)
	b.mu.RUnlock()

	start := time.Now()
	for _, l := range listeners {
		l.Receive(msg)
	}
	elapsed := time.Since(start)

	b.metrics.MessageDispatched(msg.Kind(), len(listeners), elapsed)
	b.logger.Debug("message dispatched", "kind", msg.Kind(), "listeners", len(listeners), "elapsed", elapsed)
}
