package overlay

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"reply-overlay/internal/capture"
	"reply-overlay/internal/position"
)

var (
	// ErrTargetMissing means the overlay window handle could not be resolved
	ErrTargetMissing = errors.New("overlay window not found")
	// ErrBusy means another Analyze (or geometry command) is still running
	ErrBusy = errors.New("overlay is busy with another command")
)

// DefaultSettleDelay is how long the overlay stays hidden before capturing
const DefaultSettleDelay = 300 * time.Millisecond

// Window is the live overlay surface. Every method maps to one OS call.
type Window interface {
	Position() (position.Position, error)
	SetSize(size Size) error
	SetPosition(pos position.Position) error
	// Monitor reports the size of the monitor holding the overlay, or false if unknown
	Monitor() (Size, bool, error)
	Hide() error
	Show() error
	Focus() error
	StartDragging() error
}

// Locator resolves the overlay window at the start of each command
type Locator interface {
	// Locate returns ErrTargetMissing when the window does not exist
	Locate() (Window, error)
}

// Capturer produces an encoded image of the focused application window
type Capturer interface {
	Run() (*capture.Image, error)
}

// Outcome is the single signal emitted at the end of every completed Analyze
type Outcome struct {
	RunID  string         `json:"run_id"`
	Image  *capture.Image `json:"image,omitempty"`
	Reason string         `json:"reason,omitempty"`
}

// Succeeded reports whether the outcome carries an image
func (o Outcome) Succeeded() bool {
	return o.Image != nil
}

// Emitter delivers outcomes to the UI layer
type Emitter interface {
	Emit(outcome Outcome)
}

// Clock schedules the settle delay; tests swap in a fake
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Options tunes a Service. Zero values fall back to defaults.
type Options struct {
	Presets     Presets
	SettleDelay time.Duration
	Clock       Clock
}

// Service owns the overlay geometry and the capture-and-transition sequence
type Service struct {
	locator  Locator
	capturer Capturer
	emitter  Emitter
	store    *position.Store
	presets  Presets
	settle   time.Duration
	clock    Clock

	// one command at a time; a second Analyze is rejected, not queued
	inflight *semaphore.Weighted

	mu   sync.RWMutex
	mode Mode
}

// New creates an overlay controller. The store is owned by the caller and
// may be shared, but the controller is the only writer during Analyze.
func New(locator Locator, capturer Capturer, emitter Emitter, store *position.Store, opts Options) *Service {
	if opts.Presets == (Presets{}) {
		opts.Presets = DefaultPresets()
	}
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = DefaultSettleDelay
	}
	if opts.Clock == nil {
		opts.Clock = realClock{}
	}
	if store == nil {
		store = position.New()
	}

	return &Service{
		locator:  locator,
		capturer: capturer,
		emitter:  emitter,
		store:    store,
		presets:  opts.Presets,
		settle:   opts.SettleDelay,
		clock:    opts.Clock,
		inflight: semaphore.NewWeighted(1),
		mode:     ModeWidget,
	}
}

// State returns the mode the window was last put in. A failed Analyze
// leaves the mode matching what was applied: unchanged if the hide failed,
// Hidden if the window was never shown again.
func (s *Service) State() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

func (s *Service) setMode(m Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = m
}

// Setup sizes the overlay as a widget centered on its monitor
func (s *Service) Setup() error {
	if !s.inflight.TryAcquire(1) {
		return ErrBusy
	}
	defer s.inflight.Release(1)

	win, err := s.locator.Locate()
	if err != nil {
		return err
	}

	monitor, known, err := win.Monitor()
	if err != nil {
		return fmt.Errorf("query monitor: %w", err)
	}
	if !known {
		log.Printf("Setup: monitor unknown, leaving overlay geometry as is")
		return nil
	}
	if err := win.SetSize(s.presets.Widget); err != nil {
		return fmt.Errorf("set size: %w", err)
	}
	if err := win.SetPosition(Center(monitor, s.presets.Widget)); err != nil {
		return fmt.Errorf("set position: %w", err)
	}

	s.setMode(ModeWidget)
	return nil
}

// Analyze hides the overlay, waits for focus to settle, captures the
// focused window, then shows the overlay as a widget (silent) or a
// centered dialog. Exactly one outcome is emitted once the overlay is
// visible again. Capture failures become a failed outcome; only a missing
// window, a busy controller, geometry errors or ctx cancellation are
// returned as errors.
func (s *Service) Analyze(ctx context.Context, silent bool) error {
	if !s.inflight.TryAcquire(1) {
		return ErrBusy
	}
	defer s.inflight.Release(1)

	win, err := s.locator.Locate()
	if err != nil {
		return err
	}

	runID := uuid.NewString()

	if pos, err := win.Position(); err == nil {
		s.store.Save(pos)
	} else {
		log.Printf("Analyze %s: could not read overlay position: %v", runID, err)
	}

	if err := win.Hide(); err != nil {
		return fmt.Errorf("hide overlay: %w", err)
	}
	s.setMode(ModeHidden)

	select {
	case <-s.clock.After(s.settle):
	case <-ctx.Done():
		return ctx.Err()
	}

	img, captureErr := s.runCapture(ctx)
	if errors.Is(captureErr, context.Canceled) || errors.Is(captureErr, context.DeadlineExceeded) {
		return captureErr
	}

	next := ModeDialog
	if silent {
		next = ModeWidget
		if err := s.restoreWidget(win, false); err != nil {
			return err
		}
	} else {
		if err := s.centerDialog(win); err != nil {
			return err
		}
	}

	if err := win.Show(); err != nil {
		return fmt.Errorf("show overlay: %w", err)
	}
	s.setMode(next)
	if err := win.Focus(); err != nil {
		return fmt.Errorf("focus overlay: %w", err)
	}

	outcome := Outcome{RunID: runID, Image: img}
	if captureErr != nil {
		outcome.Image = nil
		outcome.Reason = captureErr.Error()
		log.Printf("Analyze %s: capture failed: %v", runID, captureErr)
	} else {
		log.Printf("Analyze %s: captured %dx%d %s", runID, img.Width, img.Height, img.Format)
	}
	s.emitter.Emit(outcome)

	return nil
}

// runCapture runs the pipeline on its own goroutine so a shutdown can
// abandon a capture stuck in an OS call.
func (s *Service) runCapture(ctx context.Context) (*capture.Image, error) {
	type result struct {
		img *capture.Image
		err error
	}

	done := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("PANIC in capture pipeline: %v", r)
				done <- result{err: capture.ErrCaptureFailed}
			}
		}()
		img, err := s.capturer.Run()
		if err == nil && img == nil {
			err = capture.ErrCaptureFailed
		}
		done <- result{img: img, err: err}
	}()

	select {
	case r := <-done:
		return r.img, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Reset returns the overlay to the widget footprint at its saved position,
// or anchored bottom-right when nothing was saved.
func (s *Service) Reset() error {
	if !s.inflight.TryAcquire(1) {
		return ErrBusy
	}
	defer s.inflight.Release(1)

	win, err := s.locator.Locate()
	if err != nil {
		return err
	}

	if err := s.restoreWidget(win, true); err != nil {
		return err
	}
	s.setMode(ModeWidget)
	return nil
}

// Expand grows the overlay to the card size. Position is untouched.
func (s *Service) Expand() error {
	if !s.inflight.TryAcquire(1) {
		return ErrBusy
	}
	defer s.inflight.Release(1)

	win, err := s.locator.Locate()
	if err != nil {
		return err
	}

	if err := win.SetSize(s.presets.Expanded); err != nil {
		return fmt.Errorf("set size: %w", err)
	}
	s.setMode(ModeExpanded)
	return nil
}

// Drag hands the overlay to the OS interactive move
func (s *Service) Drag() error {
	win, err := s.locator.Locate()
	if err != nil {
		return err
	}
	if err := win.StartDragging(); err != nil {
		return fmt.Errorf("start dragging: %w", err)
	}
	return nil
}

// restoreWidget applies the widget size and the saved position. With
// anchorFallback set, a missing position falls back to the bottom-right anchor.
func (s *Service) restoreWidget(win Window, anchorFallback bool) error {
	if err := win.SetSize(s.presets.Widget); err != nil {
		return fmt.Errorf("set size: %w", err)
	}

	if pos, ok := s.store.Get(); ok {
		if err := win.SetPosition(pos); err != nil {
			return fmt.Errorf("set position: %w", err)
		}
		return nil
	}
	if !anchorFallback {
		return nil
	}

	monitor, known, err := win.Monitor()
	if err != nil {
		return fmt.Errorf("query monitor: %w", err)
	}
	if !known {
		return nil
	}
	if err := win.SetPosition(s.presets.Anchor(monitor)); err != nil {
		return fmt.Errorf("set position: %w", err)
	}
	return nil
}

func (s *Service) centerDialog(win Window) error {
	monitor, known, err := win.Monitor()
	if err != nil {
		return fmt.Errorf("query monitor: %w", err)
	}
	if err := win.SetSize(s.presets.Dialog); err != nil {
		return fmt.Errorf("set size: %w", err)
	}
	if !known {
		return nil
	}
	if err := win.SetPosition(Center(monitor, s.presets.Dialog)); err != nil {
		return fmt.Errorf("set position: %w", err)
	}
	return nil
}
