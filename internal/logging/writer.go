package logging

import (
	"context"
	"log/slog"
	"strings"
)

// Writer is an io.Writer that forwards each written line to slog. It adapts
// APIs that only accept a *log.Logger, such as http.Server.ErrorLog.
type Writer struct {
	logger *slog.Logger
	level  slog.Level
	msg    string
}

// NewWriter constructs a Writer logging at level with msg as the message.
func NewWriter(logger *slog.Logger, level slog.Level, msg string) *Writer {
	return &Writer{logger: logger, level: level, msg: msg}
}

// Write logs p as a single record.
func (w *Writer) Write(p []byte) (int, error) {
	if w.logger != nil {
		line := strings.TrimRight(string(p), "\n")
		if line != "" {
			w.logger.Log(context.Background(), w.level, w.msg, "line", line)
		}
	}
	return len(p), nil
}
