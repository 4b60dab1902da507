package engine

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// Option customises the engine configuration.
type Option func(*Engine)

// WithLogger routes transition logs to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithListener registers a listener. Multiple listeners run in
// registration order.
func WithListener(listener Listener) Option {
	return func(e *Engine) {
		if listener != nil {
			e.listeners = append(e.listeners, listener)
		}
	}
}

// WithInitialFormType selects key instead of the first catalog entry.
func WithInitialFormType(key string) Option {
	return func(e *Engine) {
		e.initialType = key
	}
}

// WithIDGenerator overrides the record ID generator.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		if fn != nil {
			e.newID = fn
		}
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRecordID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
