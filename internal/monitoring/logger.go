// Package monitoring holds shared observability hooks.
package monitoring

import "log"

// Logf is the package-level diagnostic logger, defaulting to log.Printf.
// Tests or embedding programs can redirect or mute it via SetLogger.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. A nil f installs a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
