// Package capture turns the focused application window into a transportable
// PNG payload.
package capture

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"log"

	"golang.org/x/image/draw"

	"reply-overlay/internal/window"
)

// FormatPNG is the only format the codec produces
const FormatPNG = "png"

// Image is an encoded capture ready to travel over a text event channel.
type Image struct {
	Data   string `json:"data"`   // base64 (standard alphabet)
	Format string `json:"format"` // always FormatPNG
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Options controls optional downscaling before encode
type Options struct {
	MaxWidth  int `json:"max_width"`  // 0 = no limit
	MaxHeight int `json:"max_height"` // 0 = no limit
}

// Codec captures a window and encodes its pixels.
type Codec struct {
	opts Options
}

// NewCodec creates a codec with the given downscale limits
func NewCodec(opts Options) *Codec {
	return &Codec{opts: opts}
}

// Capture grabs the window's pixels and encodes them as base64 PNG.
// Any failure collapses to false; a partial image is never returned.
func (c *Codec) Capture(w window.Capturable) (*Image, bool) {
	img, err := w.CaptureImage()
	if err != nil {
		log.Printf("Capture of %q failed: %v", w.Title(), err)
		return nil, false
	}
	if img == nil || img.Bounds().Empty() {
		log.Printf("Capture of %q returned an empty image", w.Title())
		return nil, false
	}

	img = c.fit(img)

	data, err := encodePNG(img)
	if err != nil {
		log.Printf("Encode of %q failed: %v", w.Title(), err)
		return nil, false
	}

	b := img.Bounds()
	return &Image{
		Data:   data,
		Format: FormatPNG,
		Width:  b.Dx(),
		Height: b.Dy(),
	}, true
}

// fit scales img down to the configured limits, keeping its aspect ratio
func (c *Codec) fit(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	scale := 1.0
	if c.opts.MaxWidth > 0 && w > c.opts.MaxWidth {
		scale = float64(c.opts.MaxWidth) / float64(w)
	}
	if c.opts.MaxHeight > 0 && h > c.opts.MaxHeight {
		if s := float64(c.opts.MaxHeight) / float64(h); s < scale {
			scale = s
		}
	}
	if scale >= 1.0 {
		return img
	}

	nw := max(1, int(float64(w)*scale))
	nh := max(1, int(float64(h)*scale))
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

func encodePNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode image as PNG: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode reverses the transport encoding and returns the raw PNG bytes
func (i *Image) Decode() ([]byte, error) {
	return base64.StdEncoding.DecodeString(i.Data)
}
