package capture

import (
	"errors"
	"log"

	"reply-overlay/internal/window"
)

var (
	// ErrNoActiveWindow means the foreground query failed or returned nothing
	ErrNoActiveWindow = errors.New("no active window")
	// ErrNoMatch means no enumerated window matched the active one
	ErrNoMatch = errors.New("no capturable window matches the active window")
	// ErrCaptureFailed means pixel capture or encoding failed
	ErrCaptureFailed = errors.New("failed to capture window")
)

// Pipeline runs tracker, registry, matcher and codec once per call.
// Nothing is cached between runs; window sets change continuously.
type Pipeline struct {
	tracker  window.Tracker
	registry window.Registry
	codec    *Codec
}

// NewPipeline wires the capture stages together
func NewPipeline(tracker window.Tracker, registry window.Registry, codec *Codec) *Pipeline {
	return &Pipeline{
		tracker:  tracker,
		registry: registry,
		codec:    codec,
	}
}

// Run captures the focused window. The returned error is one of
// ErrNoActiveWindow, ErrNoMatch or ErrCaptureFailed. Nothing is retried.
func (p *Pipeline) Run() (*Image, error) {
	active, ok := p.tracker.Foreground()
	if !ok {
		return nil, ErrNoActiveWindow
	}
	log.Printf("Active window: %s (%s)", active.Title, active.ProcessPath)

	target, ok := window.Select(active, p.registry.Enumerate())
	if !ok {
		return nil, ErrNoMatch
	}
	log.Printf("Capturing window: %s [%s]", target.Title(), target.AppName())

	img, ok := p.codec.Capture(target)
	if !ok {
		return nil, ErrCaptureFailed
	}
	return img, nil
}

// Candidates reports the current active window, every candidate and the
// matcher's pick without capturing anything.
func (p *Pipeline) Candidates() (window.ActiveInfo, []window.Capturable, window.Capturable) {
	active, ok := p.tracker.Foreground()
	all := p.registry.Enumerate()
	if !ok {
		return active, all, nil
	}
	pick, _ := window.Select(active, all)
	return active, all, pick
}
