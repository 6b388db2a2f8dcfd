//go:build !windows

// Package console detects whether the program was started from a terminal.
// Outside Windows there is always one and interrupts arrive as signals.
package console

import "log/slog"

func FromTerminal() bool {
	return true
}

// OnInterrupt is a no-op; os/signal covers Ctrl+C here.
func OnInterrupt(fn func(), logger *slog.Logger) (reregister func()) {
	return func() {}
}
