package hotkey

import (
	"fmt"
	"log"
	"strings"
	"sync"

	hook "github.com/robotn/gohook"
)

// Listener fires a callback whenever the configured chord is pressed
type Listener struct {
	chord string
	keys  []string

	mu      sync.Mutex
	running bool
}

// New parses a chord such as "Ctrl+Shift+Z"
func New(chord string) (*Listener, error) {
	keys, err := ParseChord(chord)
	if err != nil {
		return nil, err
	}
	return &Listener{chord: chord, keys: keys}, nil
}

// Keys returns the normalized key names of the chord
func (l *Listener) Keys() []string {
	return append([]string(nil), l.keys...)
}

// Start registers the chord and processes hook events on a background goroutine.
// The callback runs on the hook goroutine and must not block.
func (l *Listener) Start(callback func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return
	}
	l.running = true

	hook.Register(hook.KeyDown, l.keys, func(hook.Event) {
		log.Printf("Hotkey %s pressed", l.chord)
		if callback != nil {
			callback()
		}
	})

	events := hook.Start()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("PANIC in hotkey goroutine: %v", r)
			}
		}()
		<-hook.Process(events)
		log.Printf("Hotkey listener stopped")
	}()

	log.Printf("Hotkey listener configured for: %s", l.chord)
}

// Stop ends the global hook
func (l *Listener) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.running {
		return
	}
	l.running = false
	hook.End()
}

// ParseChord converts "Ctrl+Shift+Z" into gohook key names ["ctrl", "shift", "z"].
// A chord needs exactly one non-modifier key.
func ParseChord(chord string) ([]string, error) {
	if strings.TrimSpace(chord) == "" {
		return nil, fmt.Errorf("empty hotkey")
	}

	var (
		mods []string
		key  string
		seen = map[string]bool{}
	)

	for _, part := range strings.Split(strings.ToLower(chord), "+") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("hotkey %q has an empty key", chord)
		}

		if mod, ok := modifierName(part); ok {
			if !seen[mod] {
				seen[mod] = true
				mods = append(mods, mod)
			}
			continue
		}

		if !isKeyName(part) {
			return nil, fmt.Errorf("hotkey %q: unknown key %q", chord, part)
		}
		if key != "" {
			return nil, fmt.Errorf("hotkey %q has more than one non-modifier key", chord)
		}
		key = part
	}

	if key == "" {
		return nil, fmt.Errorf("hotkey %q has no non-modifier key", chord)
	}
	return append(mods, key), nil
}

func modifierName(part string) (string, bool) {
	switch part {
	case "ctrl", "control":
		return "ctrl", true
	case "alt", "option":
		return "alt", true
	case "shift":
		return "shift", true
	case "win", "cmd", "super", "command":
		return "cmd", true
	}
	return "", false
}

func isKeyName(part string) bool {
	if len(part) == 1 {
		c := part[0]
		return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
	}
	if strings.HasPrefix(part, "f") {
		var n int
		if _, err := fmt.Sscanf(part, "f%d", &n); err == nil && n >= 1 && n <= 24 && part == fmt.Sprintf("f%d", n) {
			return true
		}
	}
	switch part {
	case "space", "enter", "esc", "tab", "backspace", "delete", "insert",
		"home", "end", "pageup", "pagedown", "up", "down", "left", "right":
		return true
	}
	return false
}
