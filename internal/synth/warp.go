package synth

import "image"

// sampleBilinear filters the texture at (sx, sy) in source pixel space.
// Coordinates outside the texture are fully transparent; the sampling
// window clamps at the edges. Accesses tex.Pix directly for performance.
func sampleBilinear(tex *image.NRGBA, sx, sy float64) (r, g, b, a uint8) {
	w := tex.Rect.Dx()
	h := tex.Rect.Dy()
	if sx < 0 || sy < 0 || sx >= float64(w) || sy >= float64(h) {
		return 0, 0, 0, 0
	}

	x0 := int(sx)
	y0 := int(sy)
	x1 := x0 + 1
	if x1 >= w {
		x1 = w - 1
	}
	y1 := y0 + 1
	if y1 >= h {
		y1 = h - 1
	}
	dx := sx - float64(x0)
	dy := sy - float64(y0)

	stride := tex.Stride
	pix := tex.Pix

	i00 := y0*stride + x0*4
	i10 := y0*stride + x1*4
	i01 := y1*stride + x0*4
	i11 := y1*stride + x1*4

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	fr := float64(pix[i00])*w00 + float64(pix[i10])*w10 + float64(pix[i01])*w01 + float64(pix[i11])*w11
	fg := float64(pix[i00+1])*w00 + float64(pix[i10+1])*w10 + float64(pix[i01+1])*w01 + float64(pix[i11+1])*w11
	fb := float64(pix[i00+2])*w00 + float64(pix[i10+2])*w10 + float64(pix[i01+2])*w01 + float64(pix[i11+2])*w11
	fa := float64(pix[i00+3])*w00 + float64(pix[i10+3])*w10 + float64(pix[i01+3])*w01 + float64(pix[i11+3])*w11

	return uint8(fr + 0.5), uint8(fg + 0.5), uint8(fb + 0.5), uint8(fa + 0.5)
}
