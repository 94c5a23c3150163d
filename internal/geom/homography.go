package geom

import (
	"fmt"
	"math"
)

// Homography holds the 8 coefficients (a,b,c,d,e,f,g,h) of the planar
// projective map
//
//	(x,y) ↦ ((a·x + b·y + c)/(g·x + h·y + 1), (d·x + e·y + f)/(g·x + h·y + 1))
//
// mapping destination pixels back to source pixels.
type Homography [8]float64

// Apply evaluates the map at (x, y).
func (m Homography) Apply(x, y float64) (sx, sy float64) {
	d := m[6]*x + m[7]*y + 1
	return (m[0]*x + m[1]*y + m[2]) / d, (m[3]*x + m[4]*y + m[5]) / d
}

// SolveHomography solves for the transform sending each dst corner to
// its paired src corner. The four correspondences give an 8×8 linear
// system, solved by Gaussian elimination with partial pivoting.
// Near-degenerate destination quads (collinear or coincident corners)
// are not detected; the result may be ill-conditioned. An error is
// returned only when a pivot is exactly zero.
func SolveHomography(dst, src Quad) (Homography, error) {
	var a [8][9]float64 // augmented matrix
	for i := 0; i < 4; i++ {
		xd, yd := dst[i].X, dst[i].Y
		xs, ys := src[i].X, src[i].Y
		a[2*i] = [9]float64{xd, yd, 1, 0, 0, 0, -xs * xd, -xs * yd, xs}
		a[2*i+1] = [9]float64{0, 0, 0, xd, yd, 1, -ys * xd, -ys * yd, ys}
	}

	for col := 0; col < 8; col++ {
		// Partial pivot
		pivot := col
		for r := col + 1; r < 8; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if a[pivot][col] == 0 {
			return Homography{}, fmt.Errorf("geom: singular homography system at column %d", col)
		}
		a[col], a[pivot] = a[pivot], a[col]

		inv := 1 / a[col][col]
		for c := col; c < 9; c++ {
			a[col][c] *= inv
		}
		for r := 0; r < 8; r++ {
			if r == col || a[r][col] == 0 {
				continue
			}
			f := a[r][col]
			for c := col; c < 9; c++ {
				a[r][c] -= f * a[col][c]
			}
		}
	}

	var m Homography
	for i := 0; i < 8; i++ {
		m[i] = a[i][8]
	}
	return m, nil
}
