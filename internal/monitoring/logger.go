// Package monitoring holds the module's diagnostic logging hooks.
package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

var debug bool

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// SetDebug toggles the Debugf channel. Debug output is off by default.
func SetDebug(enabled bool) {
	debug = enabled
}

// Debugf logs through Logf when debug output is enabled. Per-candidate
// decode diagnostics go through here so a noisy capture does not flood
// the log in normal operation.
func Debugf(format string, v ...interface{}) {
	if debug {
		Logf(format, v...)
	}
}
