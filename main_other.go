//go:build !windows

package main

import "github.com/wailsapp/wails/v2/pkg/runtime"

// overlayAvailable is always true; the Wails runtime addresses the window directly
func (a *App) overlayAvailable() bool {
	return true
}

// focusOverlay shows the window again; there is no separate focus call here
func (a *App) focusOverlay() error {
	runtime.WindowShow(a.ctx)
	return nil
}

// startDragging is a no-op; the frontend marks its drag region with --wails-draggable
func (a *App) startDragging() error {
	return nil
}
