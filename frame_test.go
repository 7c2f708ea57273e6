package mandel

import (
	"bytes"
	"errors"
	"image"
	"testing"
)

func TestEncodeFrame(t *testing.T) {
	e := NewEngine(32, 24)
	e.Recompute()
	img := e.Image()

	for _, format := range []string{FormatPNG, FormatBMP} {
		var buf bytes.Buffer
		if err := EncodeFrame(&buf, img, format); err != nil {
			t.Fatalf("%s: %v", format, err)
		}

		decoded, got, err := image.Decode(&buf)
		if err != nil {
			t.Fatalf("%s: decode: %v", format, err)
		}
		if got != format {
			t.Errorf("decoded as %s, expected %s", got, format)
		}
		if decoded.Bounds() != img.Bounds() {
			t.Errorf("%s: bounds %v, expected %v", format, decoded.Bounds(), img.Bounds())
		}
		r, g, b, _ := decoded.At(0, 0).RGBA()
		want := img.RGBAAt(0, 0)
		if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
			t.Errorf("%s: corner pixel differs from %v", format, want)
		}
	}
}

func TestEncodeFrameUnknownFormat(t *testing.T) {
	err := EncodeFrame(&bytes.Buffer{}, image.NewRGBA(image.Rect(0, 0, 1, 1)), "gif")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("got %v, expected %v", err, ErrUnknownFormat)
	}
}
