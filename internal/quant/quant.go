// Package quant converts the packed RGB sheet to 8-bit indexed form
// under the background-index contract: index 0 is assigned to exactly
// the pixels whose original color equals the background key.
package quant

import (
	"image"
	"image/color"
)

// fallbackIndex receives non-background pixels that nearest-color
// matching happened to place at index 0.
const fallbackIndex = 1

// ToIndexed quantizes sheet to the fixed palette with no dithering,
// then repairs index assignments so that for every pixel
//
//	index == 0  ⟺  original RGB == bg
//
// The repair reads the original sheet, not the quantized result:
// background membership is exact color equality, never nearest-match.
func ToIndexed(sheet *image.NRGBA, pal color.Palette, bg color.NRGBA) *image.Paletted {
	b := sheet.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewPaletted(image.Rect(0, 0, w, h), pal)

	for y := 0; y < h; y++ {
		srcOff := y * sheet.Stride
		dstOff := y * out.Stride
		for x := 0; x < w; x++ {
			i := srcOff + x*4
			r := sheet.Pix[i]
			g := sheet.Pix[i+1]
			bl := sheet.Pix[i+2]

			if r == bg.R && g == bg.G && bl == bg.B {
				out.Pix[dstOff+x] = 0
				continue
			}

			idx := nearest(pal, r, g, bl)
			if idx == 0 {
				// Nearest-match collision with the reserved index.
				idx = fallbackIndex
			}
			out.Pix[dstOff+x] = idx
		}
	}
	return out
}

// nearest returns the palette index with minimum squared RGB distance.
// Ties resolve to the lowest index, which keeps the result
// deterministic.
func nearest(pal color.Palette, r, g, b uint8) uint8 {
	best := 0
	bestDist := 1 << 30
	for i, entry := range pal {
		c := entry.(color.NRGBA)
		dr := int(c.R) - int(r)
		dg := int(c.G) - int(g)
		db := int(c.B) - int(b)
		d := dr*dr + dg*dg + db*db
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return uint8(best)
}
