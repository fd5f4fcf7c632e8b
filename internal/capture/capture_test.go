package capture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"reply-overlay/internal/window"
)

type fakeWindow struct {
	title   string
	appName string
	img     image.Image
	err     error
	calls   int
}

func (f *fakeWindow) Title() string   { return f.title }
func (f *fakeWindow) AppName() string { return f.appName }
func (f *fakeWindow) CaptureImage() (image.Image, error) {
	f.calls++
	return f.img, f.err
}

type fakeTracker struct {
	info window.ActiveInfo
	ok   bool
}

func (f fakeTracker) Foreground() (window.ActiveInfo, bool) { return f.info, f.ok }

type fakeRegistry []window.Capturable

func (f fakeRegistry) Enumerate() []window.Capturable { return f }

func solidImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	return img
}

func decodePNG(t *testing.T, img *Image) image.Image {
	t.Helper()
	raw, err := img.Decode()
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("png.Decode failed: %v", err)
	}
	return decoded
}

func TestCodec_CaptureEncodesPNG(t *testing.T) {
	w := &fakeWindow{title: "Chat", img: solidImage(64, 48)}

	got, ok := NewCodec(Options{}).Capture(w)
	if !ok {
		t.Fatal("Capture returned false")
	}
	if got.Format != FormatPNG {
		t.Errorf("Format = %q; want %q", got.Format, FormatPNG)
	}

	b := decodePNG(t, got).Bounds()
	if b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("decoded size = %dx%d; want 64x48", b.Dx(), b.Dy())
	}
	if got.Width != 64 || got.Height != 48 {
		t.Errorf("Image size = %dx%d; want 64x48", got.Width, got.Height)
	}
}

func TestCodec_Downscale(t *testing.T) {
	tests := []struct {
		opts         Options
		wantW, wantH int
	}{
		{Options{MaxWidth: 100}, 100, 50},
		{Options{MaxHeight: 25}, 50, 25},
		{Options{MaxWidth: 100, MaxHeight: 10}, 20, 10},
		{Options{MaxWidth: 400, MaxHeight: 400}, 200, 100},
	}

	for _, tc := range tests {
		w := &fakeWindow{title: "Wide", img: solidImage(200, 100)}
		got, ok := NewCodec(tc.opts).Capture(w)
		if !ok {
			t.Fatalf("Capture(%+v) returned false", tc.opts)
		}
		b := decodePNG(t, got).Bounds()
		if b.Dx() != tc.wantW || b.Dy() != tc.wantH {
			t.Errorf("Capture(%+v) size = %dx%d; want %dx%d", tc.opts, b.Dx(), b.Dy(), tc.wantW, tc.wantH)
		}
	}
}

func TestCodec_FailuresCollapse(t *testing.T) {
	tests := []struct {
		name string
		w    *fakeWindow
	}{
		{"capture error", &fakeWindow{title: "Err", err: errors.New("access denied")}},
		{"nil image", &fakeWindow{title: "Nil"}},
		{"empty image", &fakeWindow{title: "Empty", img: image.NewRGBA(image.Rect(0, 0, 0, 0))}},
	}

	for _, tc := range tests {
		if got, ok := NewCodec(Options{}).Capture(tc.w); ok || got != nil {
			t.Errorf("%s: Capture = %v, %v; want nil, false", tc.name, got, ok)
		}
		if tc.w.calls != 1 {
			t.Errorf("%s: CaptureImage called %d times; want 1", tc.name, tc.w.calls)
		}
	}
}

func TestPipeline_Run(t *testing.T) {
	chat := &fakeWindow{title: "Alice", appName: "WeChat", img: solidImage(10, 10)}
	other := &fakeWindow{title: "Notes", appName: "notepad", img: solidImage(10, 10)}

	p := NewPipeline(
		fakeTracker{info: window.ActiveInfo{Title: "Alice", ProcessPath: `C:\WeChat\WeChat.exe`}, ok: true},
		fakeRegistry{other, chat},
		NewCodec(Options{}),
	)

	img, err := p.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if img == nil || img.Data == "" {
		t.Fatal("Run returned no image data")
	}
	if chat.calls != 1 || other.calls != 0 {
		t.Errorf("capture calls = chat %d, other %d; want 1, 0", chat.calls, other.calls)
	}
}

func TestPipeline_Errors(t *testing.T) {
	broken := &fakeWindow{title: "Alice", err: errors.New("protected window")}

	tests := []struct {
		name     string
		tracker  fakeTracker
		registry fakeRegistry
		want     error
	}{
		{
			name:    "no foreground window",
			tracker: fakeTracker{ok: false},
			want:    ErrNoActiveWindow,
		},
		{
			name:     "nothing enumerated",
			tracker:  fakeTracker{info: window.ActiveInfo{Title: "Alice"}, ok: true},
			registry: nil,
			want:     ErrNoMatch,
		},
		{
			name:     "capture fails",
			tracker:  fakeTracker{info: window.ActiveInfo{Title: "Alice"}, ok: true},
			registry: fakeRegistry{broken},
			want:     ErrCaptureFailed,
		},
	}

	for _, tc := range tests {
		p := NewPipeline(tc.tracker, tc.registry, NewCodec(Options{}))
		img, err := p.Run()
		if !errors.Is(err, tc.want) {
			t.Errorf("%s: Run error = %v; want %v", tc.name, err, tc.want)
		}
		if img != nil {
			t.Errorf("%s: Run returned an image alongside an error", tc.name)
		}
	}
}

func TestPipeline_Candidates(t *testing.T) {
	chat := &fakeWindow{title: "Alice", appName: "WeChat"}
	p := NewPipeline(
		fakeTracker{info: window.ActiveInfo{Title: "Alice"}, ok: true},
		fakeRegistry{chat},
		NewCodec(Options{}),
	)

	active, all, pick := p.Candidates()
	if active.Title != "Alice" {
		t.Errorf("active title = %q; want Alice", active.Title)
	}
	if len(all) != 1 {
		t.Errorf("candidates = %d; want 1", len(all))
	}
	if pick == nil || pick.Title() != "Alice" {
		t.Errorf("pick = %v; want Alice", pick)
	}
	if chat.calls != 0 {
		t.Errorf("Candidates captured %d times; want 0", chat.calls)
	}
}
