package web

import (
	"log/slog"
	"time"

	theme "github.com/goliatone/go-theme"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger. Engines receive a child logger tagged
// with their session.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAddr sets the listen address used by ListenAndServe.
func WithAddr(addr string) Option {
	return func(s *Server) {
		if addr != "" {
			s.addr = addr
		}
	}
}

// WithDefaultRenderer names the renderer used when a request does not pick
// one with ?renderer=.
func WithDefaultRenderer(name string) Option {
	return func(s *Server) {
		if name != "" {
			s.defaultRenderer = name
		}
	}
}

// WithTheme passes a resolved theme to every render.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(s *Server) {
		s.theme = cfg
	}
}

// WithInitialFormType selects the form type new sessions start on.
func WithInitialFormType(key string) Option {
	return func(s *Server) {
		s.initialType = key
	}
}

// WithSessionIDGenerator overrides session cookie values.
func WithSessionIDGenerator(fn func() string) Option {
	return func(s *Server) {
		if fn != nil {
			s.newSessionID = fn
		}
	}
}

// WithShutdownGrace bounds how long ListenAndServe waits for in-flight
// requests after its context is cancelled.
func WithShutdownGrace(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.shutdownGrace = d
		}
	}
}

// WithSessionIdleTimeout drops sessions that have not made a request for d.
func WithSessionIdleTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.sessionIdle = d
		}
	}
}

// WithMaxSessions caps the sessions held in memory. When full, the least
// recently seen session is dropped to make room.
func WithMaxSessions(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxSessions = n
		}
	}
}
