package synth

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// PackSheet lays frames into a cols×rows grid, row-major from the top
// left. Unused cells stay background-colored.
func PackSheet(frames []*image.NRGBA, cols, rows int, bg color.NRGBA) (*image.NRGBA, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("synth: no frames to pack")
	}
	if len(frames) > cols*rows {
		return nil, fmt.Errorf("synth: %d frames exceed %d×%d grid", len(frames), cols, rows)
	}

	fw := frames[0].Bounds().Dx()
	fh := frames[0].Bounds().Dy()

	sheet := imaging.New(cols*fw, rows*fh, bg)
	for i, frame := range frames {
		r := i / cols
		c := i % cols
		sheet = imaging.Paste(sheet, frame, image.Pt(c*fw, r*fh))
	}
	return sheet, nil
}
