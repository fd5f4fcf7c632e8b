package main

import (
	"bytes"
	"image"
	"strings"
	"testing"

	"reply-overlay/internal/window"
)

type stubWindow struct {
	title, app string
}

func (s *stubWindow) Title() string                      { return s.title }
func (s *stubWindow) AppName() string                    { return s.app }
func (s *stubWindow) CaptureImage() (image.Image, error) { return nil, nil }

func TestPrintCandidates_MarksPick(t *testing.T) {
	a := &stubWindow{title: "Inbox", app: "mail"}
	b := &stubWindow{title: "Chat", app: "telegram"}

	var buf bytes.Buffer
	printCandidates(&buf, window.ActiveInfo{Title: "Chat"}, []window.Capturable{a, b}, b)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines; want 3:\n%s", len(lines), buf.String())
	}
	if strings.HasPrefix(lines[1], "*") {
		t.Errorf("unpicked line marked: %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "*") {
		t.Errorf("picked line not marked: %q", lines[2])
	}
}

func TestPrintCandidates_NoMatch(t *testing.T) {
	var buf bytes.Buffer
	printCandidates(&buf, window.ActiveInfo{Title: "x"}, nil, nil)

	if !strings.Contains(buf.String(), "No match") {
		t.Errorf("output = %q; want it to report no match", buf.String())
	}
}
