// Package glyph rasterizes text into a tightly-cropped alpha mask, the
// texture source for the animated plate.
package glyph

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

const (
	minFontSize = 8
	maxFontSize = 512
	// fallbackSize is used when no size fits the target bounds at all.
	// A degenerate glyph still animates; failing outright would not.
	fallbackSize = 12
)

// DefaultFont returns the embedded Go Bold TTF, used when no font file
// is supplied.
func DefaultFont() []byte {
	return gobold.TTF
}

// LoadFont reads a TTF/OTF file.
func LoadFont(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("glyph: read font %s: %w", path, err)
	}
	return data, nil
}

// Render rasterizes text into an alpha mask no larger than maxW×maxH
// (including pad pixels of margin on each side), using the largest font
// size that fits. The mask is trimmed to its non-zero alpha bounding
// box. If even the smallest size does not fit, a fallback size is used
// rather than returning an error.
func Render(text string, ttf []byte, maxW, maxH, pad int) (*image.Alpha, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("glyph: parse font: %w", err)
	}

	// Largest size whose rendered bounds plus padding fit the target.
	lo, hi := minFontSize, maxFontSize
	best := 0
	for lo <= hi {
		mid := (lo + hi) / 2
		b, err := measure(f, text, mid)
		if err != nil {
			return nil, err
		}
		w := (b.Max.X - b.Min.X).Ceil()
		h := (b.Max.Y - b.Min.Y).Ceil()
		if w+2*pad <= maxW && h+2*pad <= maxH {
			best = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	if best == 0 {
		best = fallbackSize
	}

	b, err := measure(f, text, best)
	if err != nil {
		return nil, err
	}
	w := (b.Max.X - b.Min.X).Ceil()
	h := (b.Max.Y - b.Min.Y).Ceil()
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	face, err := newFace(f, best)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	mask := image.NewAlpha(image.Rect(0, 0, w+2*pad, h+2*pad))
	d := font.Drawer{
		Dst:  mask,
		Src:  image.NewUniform(color.Alpha{A: 255}),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(pad) - b.Min.X,
			Y: fixed.I(pad) - b.Min.Y,
		},
	}
	d.DrawString(text)

	return trim(mask), nil
}

func newFace(f *sfnt.Font, size int) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("glyph: face at size %d: %w", size, err)
	}
	return face, nil
}

func measure(f *sfnt.Font, text string, size int) (fixed.Rectangle26_6, error) {
	face, err := newFace(f, size)
	if err != nil {
		return fixed.Rectangle26_6{}, err
	}
	defer face.Close()
	b, _ := font.BoundString(face, text)
	return b, nil
}

// trim crops the mask to the bounding box of non-zero alpha. A mask
// with no coverage at all is returned unchanged.
func trim(mask *image.Alpha) *image.Alpha {
	b := mask.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := y * mask.Stride
		for x := b.Min.X; x < b.Max.X; x++ {
			if mask.Pix[off+x] == 0 {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if maxX < minX {
		return mask
	}

	w := maxX - minX + 1
	h := maxY - minY + 1
	out := image.NewAlpha(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		srcOff := (minY+y)*mask.Stride + minX
		copy(out.Pix[y*out.Stride:y*out.Stride+w], mask.Pix[srcOff:srcOff+w])
	}
	return out
}
