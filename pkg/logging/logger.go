package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Environments in which diagnostic (debug) logging is switched on.
var diagnosticEnvs = map[string]bool{
	"local": true,
	"stage": true,
	"dev":   true,
}

// DiagnosticsEnabled reports whether env is a non-production environment.
func DiagnosticsEnabled(env string) bool {
	return diagnosticEnvs[strings.ToLower(strings.TrimSpace(env))]
}

// NewLogger builds the JSON logger used across the service.
// Debug records are only emitted outside production.
func NewLogger(env string, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if DiagnosticsEnabled(env) {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})).
		With("env", env)
}
