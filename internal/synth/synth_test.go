package synth

import (
	"bytes"
	"image"
	"math"
	"testing"

	"rainbow-sheet/internal/rainbow"
)

func opaqueMask(w, h int) *image.Alpha {
	m := image.NewAlpha(image.Rect(0, 0, w, h))
	for i := range m.Pix {
		m.Pix[i] = 255
	}
	return m
}

func baseParams() Params {
	return Params{
		Width:            160,
		Height:           160,
		Frames:           8,
		AxDeg:            15,
		AyDeg:            40,
		Focal:            320,
		AlphaThreshold:   32,
		ScrollCycles:     0,
		Background:       rainbow.KeyBackground,
		AvoidTransparent: true,
	}
}

func TestRenderFrame_StaticPose(t *testing.T) {
	// One frame, zero amplitude, zero scroll: the glyph rectangle maps
	// one-to-one onto an undistorted centered quad at phase 0.
	p := baseParams()
	p.Frames = 1
	p.AxDeg, p.AyDeg = 0, 0

	mask := opaqueMask(40, 20)
	frame := RenderFrame(mask, p, 0)

	field := rainbow.Field(40, 20, 0, true)
	x0 := p.Width/2 - 20
	y0 := p.Height/2 - 10

	// Interior of the pasted rect matches the source field exactly.
	for v := 1; v < 19; v++ {
		for u := 1; u < 39; u++ {
			got := frame.NRGBAAt(x0+u, y0+v)
			want := field.NRGBAAt(u, v)
			if got != want {
				t.Fatalf("pixel (%d,%d): got %+v, want %+v", u, v, got, want)
			}
		}
	}

	// Outside the quad: background.
	if got := frame.NRGBAAt(0, 0); got != p.Background {
		t.Errorf("corner pixel = %+v, want background", got)
	}
	if got := frame.NRGBAAt(p.Width-1, p.Height-1); got != p.Background {
		t.Errorf("far corner pixel = %+v, want background", got)
	}
}

func TestRenderFrame_ThresholdAboveMax(t *testing.T) {
	// Threshold 256: no alpha value can pass, every pixel is background.
	p := baseParams()
	p.AlphaThreshold = 256

	frame := RenderFrame(opaqueMask(30, 30), p, 0)
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			if got := frame.NRGBAAt(x, y); got != p.Background {
				t.Fatalf("pixel (%d,%d) = %+v, want background", x, y, got)
			}
		}
	}
}

func TestRenderFrame_NoPartialBlending(t *testing.T) {
	p := baseParams()
	mask := opaqueMask(50, 24)
	frame := RenderFrame(mask, p, 3)

	for i := 3; i < len(frame.Pix); i += 4 {
		if frame.Pix[i] != 255 {
			t.Fatalf("pixel %d has alpha %d, frames must be fully opaque", i/4, frame.Pix[i])
		}
	}
}

func TestRenderFrame_Deterministic(t *testing.T) {
	p := baseParams()
	p.ScrollCycles = 2
	mask := opaqueMask(33, 17)

	a := RenderFrame(mask, p, 5)
	b := RenderFrame(mask, p, 5)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatal("same frame rendered twice differs")
	}
}

func TestPose_LoopClosure(t *testing.T) {
	p := baseParams()
	ax0, ay0 := p.Pose(0)
	axN, ayN := p.Pose(p.Frames)
	if math.Abs(axN-ax0) > 1e-12 || math.Abs(ayN-ay0) > 1e-12 {
		t.Fatalf("pose at t=1 (%v, %v) differs from t=0 (%v, %v)", axN, ayN, ax0, ay0)
	}

	// Consecutive frames differ by a bounded step, never a jump.
	maxStep := 2 * math.Pi / float64(p.Frames) * (geomAmp(p) + 1)
	prevAx, prevAy := p.Pose(0)
	for i := 1; i <= p.Frames; i++ {
		ax, ay := p.Pose(i)
		if math.Abs(ax-prevAx) > maxStep || math.Abs(ay-prevAy) > maxStep {
			t.Fatalf("discontinuous pose step at frame %d", i)
		}
		prevAx, prevAy = ax, ay
	}
}

func geomAmp(p Params) float64 {
	a := p.AxDeg
	if p.AyDeg > a {
		a = p.AyDeg
	}
	return a * math.Pi / 180
}

func TestPhase_ScrollClosure(t *testing.T) {
	p := baseParams()
	p.Frames = 4
	p.ScrollCycles = 1

	if got := p.Phase(0); got != 0 {
		t.Fatalf("phase at frame 0 = %v, want 0", got)
	}
	if got := p.Phase(4); got != p.Phase(0) {
		t.Fatalf("phase wraps to %v, want %v", got, p.Phase(0))
	}
}

func TestPhase_StaticWhenZeroCycles(t *testing.T) {
	p := baseParams()
	p.ScrollCycles = 0
	for i := 0; i < p.Frames; i++ {
		if got := p.Phase(i); got != 0 {
			t.Fatalf("phase at frame %d = %v, want 0", i, got)
		}
	}
}

func TestRenderFrames_MatchesSequential(t *testing.T) {
	p := baseParams()
	p.Frames = 6
	p.ScrollCycles = 1
	mask := opaqueMask(25, 25)

	parallel := RenderFrames(mask, p, 4)
	if len(parallel) != p.Frames {
		t.Fatalf("got %d frames, want %d", len(parallel), p.Frames)
	}
	for i := 0; i < p.Frames; i++ {
		want := RenderFrame(mask, p, i)
		if !bytes.Equal(parallel[i].Pix, want.Pix) {
			t.Fatalf("frame %d from pool differs from sequential render", i)
		}
	}
}

func TestPackSheet_Placement(t *testing.T) {
	bg := rainbow.KeyBackground

	// Three distinguishable frames in a 2x2 grid.
	frames := make([]*image.NRGBA, 3)
	for i := range frames {
		f := image.NewNRGBA(image.Rect(0, 0, 10, 10))
		for j := 0; j < len(f.Pix); j += 4 {
			f.Pix[j] = uint8(100 + i)
			f.Pix[j+3] = 255
		}
		frames[i] = f
	}

	sheet, err := PackSheet(frames, 2, 2, bg)
	if err != nil {
		t.Fatal(err)
	}
	if sheet.Bounds().Dx() != 20 || sheet.Bounds().Dy() != 20 {
		t.Fatalf("sheet bounds %v, want 20x20", sheet.Bounds())
	}

	if got := sheet.NRGBAAt(5, 5).R; got != 100 {
		t.Errorf("cell 0 = %d, want 100", got)
	}
	if got := sheet.NRGBAAt(15, 5).R; got != 101 {
		t.Errorf("cell 1 = %d, want 101", got)
	}
	if got := sheet.NRGBAAt(5, 15).R; got != 102 {
		t.Errorf("cell 2 = %d, want 102", got)
	}
	// Unused cell keeps the background.
	if got := sheet.NRGBAAt(15, 15); got != bg {
		t.Errorf("unused cell = %+v, want background", got)
	}
}

func TestPackSheet_CapacityError(t *testing.T) {
	frames := []*image.NRGBA{
		image.NewNRGBA(image.Rect(0, 0, 4, 4)),
		image.NewNRGBA(image.Rect(0, 0, 4, 4)),
	}
	if _, err := PackSheet(frames, 1, 1, rainbow.KeyBackground); err == nil {
		t.Fatal("expected capacity error")
	}
}
