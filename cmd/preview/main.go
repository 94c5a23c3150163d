// Command preview plays back a rendered sprite sheet in a window. It
// only crops the grid, keys out the background and cycles frames; no
// synthesis happens here.
//
// Keys: space = pause/resume, left/right = step, q/esc = quit.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/disintegration/imaging"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	_ "image/png"

	_ "github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/bmp"

	"rainbow-sheet/internal/rainbow"
)

func main() {
	sheetPath := flag.String("sheet", "", "path to the sprite sheet (bmp/png/tga)")
	cols := flag.Int("cols", 8, "grid columns")
	rows := flag.Int("rows", 4, "grid rows")
	frames := flag.Int("frames", 0, "frame count (default: cols*rows)")
	fps := flag.Float64("fps", 24, "playback speed")
	scale := flag.Int("scale", 2, "integer upscaling factor")
	bg := flag.String("bg", "checker", `backdrop: checker | magenta | hex like "#202020"`)
	flag.Parse()

	if *sheetPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -sheet is required")
		os.Exit(1)
	}

	f, err := os.Open(*sheetPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	sheet, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: decode %s: %v\n", *sheetPath, err)
		os.Exit(1)
	}

	n := *frames
	if n <= 0 || n > *cols**rows {
		n = *cols * *rows
	}
	if *scale < 1 {
		*scale = 1
	}
	if *fps <= 0 {
		*fps = 1
	}

	prepared, fw, fh, err := prepareFrames(sheet, *cols, *rows, n, *scale, *bg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	g := &game{frames: prepared, ticksPerFrame: ticksPerFrame(*fps)}
	ebiten.SetWindowTitle(fmt.Sprintf("Preview — %s", *sheetPath))
	ebiten.SetWindowSize(fw**scale, fh**scale)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(g); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func ticksPerFrame(fps float64) int {
	t := int(60/fps + 0.5)
	if t < 1 {
		t = 1
	}
	return t
}

// prepareFrames crops the grid, composites each frame over the chosen
// backdrop with both keys (gray and magenta) transparent, and upscales.
// Everything is precomputed so playback is a plain image swap.
func prepareFrames(sheet image.Image, cols, rows, n, scale int, bgSpec string) ([]*ebiten.Image, int, int, error) {
	b := sheet.Bounds()
	fw := b.Dx() / cols
	fh := b.Dy() / rows
	if fw < 1 || fh < 1 {
		return nil, 0, 0, fmt.Errorf("sheet %dx%d too small for a %dx%d grid", b.Dx(), b.Dy(), cols, rows)
	}

	backdrop, err := makeBackdrop(fw, fh, bgSpec)
	if err != nil {
		return nil, 0, 0, err
	}

	var prepared []*ebiten.Image
	for i := 0; i < n; i++ {
		r := i / cols
		c := i % cols
		crop := imaging.Crop(sheet, image.Rect(c*fw, r*fh, (c+1)*fw, (r+1)*fh))

		comp := imaging.Clone(backdrop)
		for y := 0; y < fh; y++ {
			for x := 0; x < fw; x++ {
				px := crop.NRGBAAt(x, y)
				if isKey(px) {
					continue
				}
				comp.SetNRGBA(x, y, px)
			}
		}
		if scale != 1 {
			comp = imaging.Resize(comp, fw*scale, fh*scale, imaging.NearestNeighbor)
		}
		prepared = append(prepared, ebiten.NewImageFromImage(comp))
	}
	return prepared, fw, fh, nil
}

func isKey(c color.NRGBA) bool {
	bg := rainbow.KeyBackground
	if c.R == bg.R && c.G == bg.G && c.B == bg.B {
		return true
	}
	m := rainbow.KeyMagenta
	return c.R == m.R && c.G == m.G && c.B == m.B
}

func makeBackdrop(w, h int, spec string) (*image.NRGBA, error) {
	switch {
	case spec == "checker":
		return makeChecker(w, h), nil
	case spec == "magenta":
		return imaging.New(w, h, rainbow.KeyMagenta), nil
	case len(spec) == 7 && spec[0] == '#':
		var r, g, b uint8
		if _, err := fmt.Sscanf(spec, "#%02x%02x%02x", &r, &g, &b); err != nil {
			return nil, fmt.Errorf("bad color %q", spec)
		}
		return imaging.New(w, h, color.NRGBA{R: r, G: g, B: b, A: 255}), nil
	default:
		return nil, fmt.Errorf("bad backdrop %q, want checker, magenta or #rrggbb", spec)
	}
}

func makeChecker(w, h int) *image.NRGBA {
	cell := w / 16
	if cell < 6 {
		cell = 6
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(200)
			if ((x/cell)+(y/cell))%2 == 0 {
				v = 240
			}
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

type game struct {
	frames        []*ebiten.Image
	ticksPerFrame int

	idx    int
	ticks  int
	paused bool
}

func (g *game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.paused = !g.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		g.idx = (g.idx + 1) % len(g.frames)
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		g.idx = (g.idx - 1 + len(g.frames)) % len(g.frames)
	}

	if !g.paused {
		g.ticks++
		if g.ticks >= g.ticksPerFrame {
			g.ticks = 0
			g.idx = (g.idx + 1) % len(g.frames)
		}
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.frames[g.idx], nil)
}

func (g *game) Layout(_, _ int) (int, int) {
	f := g.frames[0].Bounds()
	return f.Dx(), f.Dy()
}
