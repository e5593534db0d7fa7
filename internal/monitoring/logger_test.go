package monitoring

import (
	"fmt"
	"testing"
)

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	var captured string
	SetLogger(func(format string, v ...interface{}) {
		captured = fmt.Sprintf(format, v...)
	})

	Logf("extracted %d segments", 3)
	if captured != "extracted 3 segments" {
		t.Errorf("captured %q", captured)
	}
}

func TestSetLoggerNilInstallsNoop(t *testing.T) {
	SetLogger(nil)
	// Must not panic.
	Logf("dropped %s", "message")
	SetLogger(nil)
}
