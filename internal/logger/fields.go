package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldMode is the structured log field key for the session input mode.
	FieldMode = "mode"
	// FieldFrom and FieldTo describe a session phase transition.
	FieldFrom = "from"
	FieldTo   = "to"
	// FieldGeneration is the session generation a log entry belongs to.
	FieldGeneration = "generation"
	// FieldAPIURL is the scoring service base address.
	FieldAPIURL = "api_url"
)

// OrNop returns log, or a no-op logger when log is nil.
func OrNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

// SessionFields describes a session transition. Empty mode and phase values
// are dropped.
func SessionFields(mode, from, to string, generation uint64) []zap.Field {
	fields := make([]zap.Field, 0, 4)
	for _, f := range [...][2]string{{FieldMode, mode}, {FieldFrom, from}, {FieldTo, to}} {
		if f[1] != "" {
			fields = append(fields, zap.String(f[0], f[1]))
		}
	}
	return append(fields, zap.Uint64(FieldGeneration, generation))
}

// WithService attaches the scoring service address to the logger.
func WithService(logger *zap.Logger, apiURL string) *zap.Logger {
	logger = OrNop(logger)
	if apiURL = strings.TrimSpace(apiURL); apiURL == "" {
		return logger
	}
	return logger.With(zap.String(FieldAPIURL, apiURL))
}
