//go:build windows

package main

import (
	"errors"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	_WM_NCLBUTTONDOWN = 0x00A1
	_HTCAPTION        = 2
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procFindWindowW         = user32.NewProc("FindWindowW")
	procSetForegroundWindow = user32.NewProc("SetForegroundWindow")
	procReleaseCapture      = user32.NewProc("ReleaseCapture")
	procPostMessageW        = user32.NewProc("PostMessageW")
)

var errNoOverlayHWND = errors.New("overlay window handle not found")

// resolveOverlayHWND finds and caches the HWND of the overlay window by its title
func (a *App) resolveOverlayHWND() uintptr {
	if hwnd := a.overlayHWND.Load(); hwnd != 0 {
		return hwnd
	}

	title, _ := windows.UTF16PtrFromString(overlayTitle)
	hwnd, _, _ := procFindWindowW.Call(0, uintptr(unsafe.Pointer(title)))
	if hwnd != 0 {
		a.overlayHWND.Store(hwnd)
	}
	return hwnd
}

// overlayAvailable reports whether the native overlay window exists
func (a *App) overlayAvailable() bool {
	return a.resolveOverlayHWND() != 0
}

// focusOverlay brings the overlay to the foreground so it receives keyboard input
func (a *App) focusOverlay() error {
	hwnd := a.resolveOverlayHWND()
	if hwnd == 0 {
		return errNoOverlayHWND
	}
	// Windows may refuse foreground changes; the window is still shown
	procSetForegroundWindow.Call(hwnd)
	return nil
}

// startDragging hands the overlay to the system move loop, as if its
// caption bar had been pressed.
func (a *App) startDragging() error {
	hwnd := a.resolveOverlayHWND()
	if hwnd == 0 {
		return errNoOverlayHWND
	}
	procReleaseCapture.Call()
	ret, _, err := procPostMessageW.Call(hwnd, _WM_NCLBUTTONDOWN, _HTCAPTION, 0)
	if ret == 0 {
		return err
	}
	return nil
}
