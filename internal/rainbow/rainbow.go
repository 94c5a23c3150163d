// Package rainbow builds the diagonal hue-gradient texture and the fixed
// 256-entry palette used for 8-bit output.
package rainbow

import (
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// KeyBackground is the fixed background/transparency key: a dark gray
// no S=V=1 hue sample can collide with. Players treat it as "not
// foreground" when compositing frames.
var KeyBackground = color.NRGBA{R: 32, G: 32, B: 32, A: 255}

// KeyMagenta is the conventional chroma key some downstream tools treat
// as transparent. Foreground output must never contain it exactly.
var KeyMagenta = color.NRGBA{R: 255, G: 0, B: 255, A: 255}

// Field renders a w×h opaque gradient: hue runs along the x+y diagonal,
// offset by phase (in [0,1)), with full saturation and value. When
// avoidKey is set, any pixel landing exactly on magenta is nudged to
// (255,0,254) so it cannot collide with chroma-key logic downstream.
func Field(w, h int, phase float64, avoidKey bool) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	den := float64((w - 1) + (h - 1))
	if den < 1 {
		den = 1
	}

	for y := 0; y < h; y++ {
		off := y * img.Stride
		for x := 0; x < w; x++ {
			u := float64(x+y) / den
			hue := math.Mod(u+phase, 1)
			r, g, b := hsvByte(hue)
			if avoidKey && r == 255 && g == 0 && b == 255 {
				b = 254
			}
			i := off + x*4
			img.Pix[i] = r
			img.Pix[i+1] = g
			img.Pix[i+2] = b
			img.Pix[i+3] = 255
		}
	}
	return img
}

// Palette returns the fixed 256-entry palette: index 0 is the background
// key, indices 1..255 sweep the full hue circle at S=V=1. The sweep can
// never produce the background gray (every sample has a 255 channel),
// and exact magenta is nudged the same way Field does.
func Palette(bg color.NRGBA) color.Palette {
	pal := make(color.Palette, 256)
	pal[0] = bg
	for i := 1; i < 256; i++ {
		r, g, b := hsvByte(float64(i) / 255)
		if r == 255 && g == 0 && b == 255 {
			b = 254
		}
		pal[i] = color.NRGBA{R: r, G: g, B: b, A: 255}
	}
	return pal
}

// hsvByte converts a hue in [0,1) at full saturation/value to 8-bit RGB.
func hsvByte(hue float64) (r, g, b uint8) {
	return colorful.Hsv(math.Mod(hue, 1)*360, 1, 1).RGB255()
}
