//go:build windows

package main

import (
	"context"
	"testing"

	"reply-overlay/internal/overlay"
)

func TestLocate_NoNativeWindow(t *testing.T) {
	// No Wails window is created in tests, so FindWindowW finds nothing
	app := NewApp()
	app.ctx = context.Background()

	if _, err := app.Locate(); err != overlay.ErrTargetMissing {
		t.Errorf("Locate = %v; want %v", err, overlay.ErrTargetMissing)
	}
	if got := app.overlayHWND.Load(); got != 0 {
		t.Errorf("overlayHWND = %#x; want 0 after a failed lookup", got)
	}
}
