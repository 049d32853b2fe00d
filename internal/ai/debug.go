package ai

import "sync/atomic"

// debugLoggingEnabled controls whether decision tracing is logged.
// Package-level flag so Decide doesn't pay for a level check on every turn.
// Set via EnableDebugLogging() during initialization based on config.Log.Level.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging enables or disables decision tracing.
// Must be called during initialization (e.g., from main.go after parsing config).
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled returns true if decision tracing is enabled.
// Use this to guard expensive debug log calls:
//
//	if ai.IsDebugEnabled() {
//	    slog.Debug("npc decision", "options", len(s.Skills))
//	}
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
