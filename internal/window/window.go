package window

import (
	"image"
	"path/filepath"
	"strings"
)

// ActiveInfo describes the window the OS reports as focused.
// It is produced fresh for every capture attempt and never cached.
type ActiveInfo struct {
	Title       string `json:"title"`
	ProcessPath string `json:"process_path"`
}

// Capturable is a top-level window that can be captured.
type Capturable interface {
	Title() string
	AppName() string
	CaptureImage() (image.Image, error)
}

// Tracker queries the currently focused window.
type Tracker interface {
	// Foreground returns false when nothing is focused, the query fails,
	// or permissions are insufficient. It issues a single query.
	Foreground() (ActiveInfo, bool)
}

// Registry enumerates the currently capturable top-level windows.
type Registry interface {
	// Enumerate returns windows in OS order, which is not stable across
	// calls. Failure is reported as an empty result.
	Enumerate() []Capturable
}

// Select picks the candidate that best matches the active window.
//
// Rules are tried in priority order and the first rule with any hit wins:
//  1. candidate title equals the active window title
//  2. active process path contains the candidate app name (case-insensitive)
//
// Within a rule the earliest candidate in enumeration order is chosen. That
// order is not stable, so two processes sharing an app-name substring can
// resolve differently between runs. Changing the tie-break (most recently
// focused, exact title only) is a product decision and is left as is.
func Select(active ActiveInfo, candidates []Capturable) (Capturable, bool) {
	if active.Title != "" {
		for _, c := range candidates {
			if c.Title() == active.Title {
				return c, true
			}
		}
	}

	path := strings.ToLower(active.ProcessPath)
	if path == "" {
		return nil, false
	}
	for _, c := range candidates {
		// An empty app name is a substring of every path.
		name := strings.ToLower(c.AppName())
		if name == "" {
			continue
		}
		if strings.Contains(path, name) {
			return c, true
		}
	}

	return nil, false
}

// appNameFromPath turns C:\Program Files\App\chat.exe into "chat".
func appNameFromPath(path string) string {
	if path == "" {
		return ""
	}
	base := filepath.Base(strings.ReplaceAll(path, `\`, "/"))
	return strings.TrimSuffix(base, filepath.Ext(base))
}
