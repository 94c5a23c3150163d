// Package synth renders the animation frames: it rotates and projects
// the glyph plate, warps the rainbow texture through the resulting
// homography, and composites hard-masked frames over the background key.
package synth

import (
	"image/color"
	"math"

	"rainbow-sheet/internal/geom"
)

// Params holds everything a frame render needs besides the glyph mask.
// All fields are read-only during rendering, so one Params value can be
// shared across frame workers.
type Params struct {
	Width, Height int // frame size in pixels

	Frames int // N ≥ 1

	AxDeg, AyDeg float64 // rotation amplitudes in degrees
	Focal        float64 // > 0

	// AlphaThreshold is in 0..256. A warped pixel is foreground iff its
	// alpha ≥ threshold; 256 therefore means nothing is foreground.
	AlphaThreshold int

	// ScrollCycles is how many full hue cycles the rainbow scrolls per
	// animation loop. 0 keeps the gradient static.
	ScrollCycles float64

	Background       color.NRGBA
	AvoidTransparent bool
}

// Pose returns the plate rotation angles for frame i of p.Frames.
// ax follows sin and ay follows cos of the same progress variable, so
// the plate tumbles through a closed loop: the pose at t=1 equals the
// pose at t=0 exactly.
func (p Params) Pose(i int) (ax, ay float64) {
	t := float64(i) / float64(p.Frames)
	ax = geom.Deg2Rad(p.AxDeg) * math.Sin(2*math.Pi*t)
	ay = geom.Deg2Rad(p.AyDeg) * math.Cos(2*math.Pi*t)
	return ax, ay
}

// Phase returns the rainbow scroll phase in [0,1) for frame i.
func (p Params) Phase(i int) float64 {
	if p.ScrollCycles == 0 {
		return 0
	}
	t := float64(i) / float64(p.Frames)
	return math.Mod(t*p.ScrollCycles, 1)
}
