// Package mtlog provides the core's structured debug log sink.
//
// The radar core never owns a logging backend outright: it logs through a
// single package-level indirection so a host can redirect or silence
// diagnostics without the core importing host-specific wiring.
package mtlog

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// log is the package-level logger, read through Get. It defaults to a
// zerolog console writer on stderr but may be replaced with Set.
var (
	mu  sync.RWMutex
	log zerolog.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
)

// Set replaces the package logger. Passing a zero Logger mutes diagnostics.
func Set(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	log = l
}

// Get returns the current logger.
func Get() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// Debugf logs at debug level, matching the I/O provider contract's
// debug(level, message) operation (spec §6.1) for brand-level chatter:
// malformed packets, backoff transitions, discovery churn.
func Debugf(format string, v ...interface{}) {
	Get().Debug().Msgf(format, v...)
}

// Warnf logs at warn level for recoverable protocol violations (§7 ProtocolError).
func Warnf(format string, v ...interface{}) {
	Get().Warn().Msgf(format, v...)
}

// Errorf logs at error level for I/O errors that trigger a state transition.
func Errorf(format string, v ...interface{}) {
	Get().Error().Msgf(format, v...)
}
