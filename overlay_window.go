package main

import (
	"context"
	"fmt"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"reply-overlay/internal/overlay"
	"reply-overlay/internal/position"
)

// wailsWindow drives the overlay through the Wails runtime. Focus and
// interactive move have no runtime API and go to the native handle.
type wailsWindow struct {
	app *App
}

func (w *wailsWindow) Position() (position.Position, error) {
	x, y := runtime.WindowGetPosition(w.app.ctx)
	return position.Position{X: x, Y: y}, nil
}

func (w *wailsWindow) SetSize(size overlay.Size) error {
	if size.Width <= 0 || size.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", size.Width, size.Height)
	}
	runtime.WindowSetSize(w.app.ctx, size.Width, size.Height)
	return nil
}

func (w *wailsWindow) SetPosition(pos position.Position) error {
	runtime.WindowSetPosition(w.app.ctx, pos.X, pos.Y)
	return nil
}

// Monitor reports the screen holding the overlay, falling back to the primary one
func (w *wailsWindow) Monitor() (overlay.Size, bool, error) {
	screens, err := runtime.ScreenGetAll(w.app.ctx)
	if err != nil {
		return overlay.Size{}, false, err
	}
	return pickScreen(screens)
}

func (w *wailsWindow) Hide() error {
	runtime.WindowHide(w.app.ctx)
	return nil
}

func (w *wailsWindow) Show() error {
	runtime.WindowShow(w.app.ctx)
	return nil
}

func (w *wailsWindow) Focus() error {
	return w.app.focusOverlay()
}

func (w *wailsWindow) StartDragging() error {
	return w.app.startDragging()
}

func pickScreen(screens []runtime.Screen) (overlay.Size, bool, error) {
	var chosen *runtime.Screen
	for i := range screens {
		if screens[i].IsCurrent {
			chosen = &screens[i]
			break
		}
		if screens[i].IsPrimary && chosen == nil {
			chosen = &screens[i]
		}
	}
	if chosen == nil {
		return overlay.Size{}, false, nil
	}

	size := overlay.Size{Width: chosen.Size.Width, Height: chosen.Size.Height}
	if size.Width == 0 || size.Height == 0 {
		size = overlay.Size{Width: chosen.Width, Height: chosen.Height}
	}
	if size.Width == 0 || size.Height == 0 {
		return overlay.Size{}, false, nil
	}
	return size, true, nil
}

// wailsEmitter turns Analyze outcomes into frontend events
type wailsEmitter struct {
	ctx context.Context
}

func (e *wailsEmitter) Emit(outcome overlay.Outcome) {
	if outcome.Succeeded() {
		runtime.EventsEmit(e.ctx, EventAnalyzeChat, map[string]interface{}{
			"run_id": outcome.RunID,
			"image":  outcome.Image.Data,
			"format": outcome.Image.Format,
			"width":  outcome.Image.Width,
			"height": outcome.Image.Height,
		})
		return
	}
	runtime.EventsEmit(e.ctx, EventAnalyzeError, map[string]interface{}{
		"run_id": outcome.RunID,
		"reason": outcome.Reason,
	})
}
