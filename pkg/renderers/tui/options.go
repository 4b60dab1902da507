package tui

import (
	"io"
	"log/slog"
)

// Theme captures optional message prefixes.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// RendererOption configures the text renderer.
type RendererOption func(*Renderer)

// WithBarWidth sets the number of cells in the progress bar.
func WithBarWidth(width int) RendererOption {
	return func(r *Renderer) {
		r.barWidth = width
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) RendererOption {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// SessionOption configures an interactive Session.
type SessionOption func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) SessionOption {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithOutput directs the default survey driver's messages to w.
func WithOutput(w io.Writer) SessionOption {
	return func(s *Session) {
		s.out = w
	}
}

// WithRenderer overrides the renderer used to print the form state.
func WithRenderer(renderer *Renderer) SessionOption {
	return func(s *Session) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}
