package synth

import (
	"image"

	"rainbow-sheet/internal/geom"
	"rainbow-sheet/internal/rainbow"
)

// RenderFrame produces frame i of the animation as a pure function of
// the mask and parameters. Every output pixel is either exactly the
// background color or a fully opaque warped rainbow color; the alpha
// threshold turns the warped soft edge into a hard mask so no partial
// blending survives.
func RenderFrame(mask *image.Alpha, p Params, i int) *image.NRGBA {
	frame := newBackgroundFrame(p)

	srcW := mask.Bounds().Dx()
	srcH := mask.Bounds().Dy()
	if srcW < 1 || srcH < 1 {
		return frame
	}

	// Rainbow texture in source space, visible only where the glyph is.
	tex := rainbow.Field(srcW, srcH, p.Phase(i), p.AvoidTransparent)
	applyMask(tex, mask)

	ax, ay := p.Pose(i)
	dst := geom.ProjectQuad(
		geom.PlateCorners(float64(srcW), float64(srcH)),
		geom.PlateRotation(ax, ay),
		float64(p.Width)/2, float64(p.Height)/2, p.Focal,
	)
	src := geom.Quad{
		{X: 0, Y: 0},
		{X: float64(srcW), Y: 0},
		{X: float64(srcW), Y: float64(srcH)},
		{X: 0, Y: float64(srcH)},
	}

	m, err := geom.SolveHomography(dst, src)
	if err != nil {
		// Degenerate pose (plate edge-on to a point). Background only.
		return frame
	}

	for y := 0; y < p.Height; y++ {
		off := y * frame.Stride
		for x := 0; x < p.Width; x++ {
			sx, sy := m.Apply(float64(x), float64(y))
			r, g, b, a := sampleBilinear(tex, sx, sy)
			if int(a) < p.AlphaThreshold {
				continue
			}
			o := off + x*4
			frame.Pix[o] = r
			frame.Pix[o+1] = g
			frame.Pix[o+2] = b
			frame.Pix[o+3] = 255
		}
	}
	return frame
}

func newBackgroundFrame(p Params) *image.NRGBA {
	frame := image.NewNRGBA(image.Rect(0, 0, p.Width, p.Height))
	for i := 0; i < len(frame.Pix); i += 4 {
		frame.Pix[i] = p.Background.R
		frame.Pix[i+1] = p.Background.G
		frame.Pix[i+2] = p.Background.B
		frame.Pix[i+3] = 255
	}
	return frame
}

// applyMask copies the glyph alpha into the texture's alpha channel.
func applyMask(tex *image.NRGBA, mask *image.Alpha) {
	w := tex.Rect.Dx()
	h := tex.Rect.Dy()
	for y := 0; y < h; y++ {
		texOff := y * tex.Stride
		maskOff := y * mask.Stride
		for x := 0; x < w; x++ {
			tex.Pix[texOff+x*4+3] = mask.Pix[maskOff+x]
		}
	}
}
