package event

import (
	"fmt"
	"log/slog"
)

// LogListener returns a listener that records every message at Debug.
func LogListener(logger *slog.Logger) Listener {
	if logger == nil {
		logger = slog.Default()
	}
	return ListenerFunc(func(msg Message) {
		logger.Debug("message received", "kind", msg.Kind(), "type", fmt.Sprintf("%T", msg))
	})
}
