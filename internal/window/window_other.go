//go:build !windows

package window

// NativeTracker is a stub on platforms without a foreground-window query.
type NativeTracker struct{}

// NewTracker creates a tracker that never reports a focused window
func NewTracker() *NativeTracker {
	return &NativeTracker{}
}

// Foreground is not supported on this platform
func (NativeTracker) Foreground() (ActiveInfo, bool) {
	return ActiveInfo{}, false
}

// NativeRegistry is a stub on platforms without window enumeration.
type NativeRegistry struct{}

// NewRegistry creates a registry that never reports candidates
func NewRegistry() *NativeRegistry {
	return &NativeRegistry{}
}

// Enumerate is not supported on this platform
func (NativeRegistry) Enumerate() []Capturable {
	return nil
}
