package logging

import "log/slog"

// EnableTrace gates the high-frequency per-frame logs.
// Default is false to reduce noise.
var EnableTrace = false

// Trace logs a message at DEBUG level, but only if EnableTrace is true,
// so per-frame logging stays cheap when disabled.
func Trace(msg string, args ...any) {
	if EnableTrace {
		slog.Debug(msg, args...)
	}
}
