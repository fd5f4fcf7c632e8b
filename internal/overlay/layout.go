package overlay

import (
	"fmt"

	"reply-overlay/internal/position"
)

// Mode is the overlay's current footprint
type Mode int

const (
	// ModeWidget is the compact idle footprint
	ModeWidget Mode = iota
	// ModeHidden is only held while an Analyze call is in flight
	ModeHidden
	// ModeDialog is centered and large, used to present results
	ModeDialog
	// ModeExpanded is the enlarged card view; position is left alone
	ModeExpanded
)

func (m Mode) String() string {
	switch m {
	case ModeWidget:
		return "widget"
	case ModeHidden:
		return "hidden"
	case ModeDialog:
		return "dialog"
	case ModeExpanded:
		return "expanded"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Size is a width/height pair in physical pixels
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Presets fixes one size per mode
type Presets struct {
	Widget   Size
	Dialog   Size
	Expanded Size

	// AnchorPadding is added to the widget size to get the bottom-right margin
	AnchorPadding Size
}

// DefaultPresets matches the stock widget/dialog/card footprints
func DefaultPresets() Presets {
	return Presets{
		Widget:        Size{Width: 220, Height: 320},
		Dialog:        Size{Width: 800, Height: 600},
		Expanded:      Size{Width: 400, Height: 600},
		AnchorPadding: Size{Width: 30, Height: 30},
	}
}

// SizeFor returns the preset for a mode. Hidden keeps the widget size.
func (p Presets) SizeFor(m Mode) Size {
	switch m {
	case ModeDialog:
		return p.Dialog
	case ModeExpanded:
		return p.Expanded
	default:
		return p.Widget
	}
}

// Center places size in the middle of monitor. Division truncates.
func Center(monitor, size Size) position.Position {
	return position.Position{
		X: (monitor.Width - size.Width) / 2,
		Y: (monitor.Height - size.Height) / 2,
	}
}

// Anchor places the widget near the bottom-right corner, fully on screen
func (p Presets) Anchor(monitor Size) position.Position {
	return position.Position{
		X: monitor.Width - (p.Widget.Width + p.AnchorPadding.Width),
		Y: monitor.Height - (p.Widget.Height + p.AnchorPadding.Height),
	}
}
