//go:build windows

package window

import (
	"errors"
	"fmt"
	"image"
	"os"
	"sync"
	"unsafe"

	"github.com/kbinani/screenshot"
	"golang.org/x/sys/windows"
)

var (
	user32                       = windows.NewLazySystemDLL("user32.dll")
	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
	procGetWindowTextW           = user32.NewProc("GetWindowTextW")
	procGetWindowTextLengthW     = user32.NewProc("GetWindowTextLengthW")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
	procEnumWindows              = user32.NewProc("EnumWindows")
	procIsWindowVisible          = user32.NewProc("IsWindowVisible")
	procIsIconic                 = user32.NewProc("IsIconic")
	procGetWindowRect            = user32.NewProc("GetWindowRect")
)

type rect struct {
	Left, Top, Right, Bottom int32
}

// NativeTracker reads the foreground window through user32.
type NativeTracker struct{}

// NewTracker creates a tracker backed by the Windows API
func NewTracker() *NativeTracker {
	return &NativeTracker{}
}

// Foreground returns the focused window's title and owning process path
func (NativeTracker) Foreground() (ActiveInfo, bool) {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return ActiveInfo{}, false
	}

	info := ActiveInfo{
		Title:       windowText(hwnd),
		ProcessPath: processPath(windowPID(hwnd)),
	}
	if info.Title == "" && info.ProcessPath == "" {
		return ActiveInfo{}, false
	}
	return info, true
}

// NativeRegistry enumerates visible top-level windows through EnumWindows.
type NativeRegistry struct {
	ownPID uint32
}

// NewRegistry creates a registry that skips windows owned by this process
func NewRegistry() *NativeRegistry {
	return &NativeRegistry{ownPID: uint32(os.Getpid())}
}

var (
	enumMu       sync.Mutex
	enumFound    []uintptr
	enumCallback = windows.NewCallback(func(hwnd uintptr, _ uintptr) uintptr {
		if visible, _, _ := procIsWindowVisible.Call(hwnd); visible != 0 {
			enumFound = append(enumFound, hwnd)
		}
		return 1 // continue
	})
)

// Enumerate lists capturable windows in the order EnumWindows reports them
func (r *NativeRegistry) Enumerate() []Capturable {
	enumMu.Lock()
	enumFound = nil
	ret, _, _ := procEnumWindows.Call(enumCallback, 0)
	handles := make([]uintptr, len(enumFound))
	copy(handles, enumFound)
	enumMu.Unlock()

	if ret == 0 {
		return nil
	}

	var out []Capturable
	for _, hwnd := range handles {
		pid := windowPID(hwnd)
		if pid == 0 || pid == r.ownPID {
			continue
		}
		title := windowText(hwnd)
		if title == "" {
			continue
		}
		out = append(out, &nativeWindow{
			hwnd:    hwnd,
			title:   title,
			appName: appNameFromPath(processPath(pid)),
		})
	}
	return out
}

type nativeWindow struct {
	hwnd    uintptr
	title   string
	appName string
}

func (w *nativeWindow) Title() string   { return w.title }
func (w *nativeWindow) AppName() string { return w.appName }

// CaptureImage grabs the screen pixels under the window rectangle.
// The overlay is hidden and the target is foreground, so the rectangle
// holds the window's own content.
func (w *nativeWindow) CaptureImage() (image.Image, error) {
	if iconic, _, _ := procIsIconic.Call(w.hwnd); iconic != 0 {
		return nil, errors.New("window is minimized")
	}

	var r rect
	ret, _, err := procGetWindowRect.Call(w.hwnd, uintptr(unsafe.Pointer(&r)))
	if ret == 0 {
		return nil, fmt.Errorf("GetWindowRect: %w", err)
	}

	bounds := image.Rect(int(r.Left), int(r.Top), int(r.Right), int(r.Bottom))
	if bounds.Empty() {
		return nil, errors.New("window has no area")
	}

	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return nil, fmt.Errorf("capture rect %v: %w", bounds, err)
	}
	return img, nil
}

func windowText(hwnd uintptr) string {
	length, _, _ := procGetWindowTextLengthW.Call(hwnd)
	if length == 0 {
		return ""
	}
	buf := make([]uint16, length+1)
	procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return windows.UTF16ToString(buf)
}

func windowPID(hwnd uintptr) uint32 {
	var pid uint32
	procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
	return pid
}

func processPath(pid uint32) string {
	if pid == 0 {
		return ""
	}
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return ""
	}
	defer windows.CloseHandle(h)

	buf := make([]uint16, windows.MAX_LONG_PATH)
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(h, 0, &buf[0], &size); err != nil {
		return ""
	}
	return windows.UTF16ToString(buf[:size])
}
