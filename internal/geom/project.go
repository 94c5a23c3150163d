package geom

// Point is a 2D screen-space coordinate.
type Point struct {
	X, Y float64
}

// Quad is four corners in a fixed winding:
// top-left, top-right, bottom-right, bottom-left.
type Quad [4]Point

// depthFloor is the minimum effective denominator for the perspective
// divide. Corners approaching or crossing the camera plane are clamped
// rather than clipped; extreme rotations compress instead of blowing up.
const depthFloor = 1e-3

// PlateCorners returns the corners of a w×h rectangle centered at the
// origin on the z=0 plane, in Quad winding order.
func PlateCorners(w, h float64) [4]Vec3 {
	return [4]Vec3{
		{-w / 2, -h / 2, 0},
		{w / 2, -h / 2, 0},
		{w / 2, h / 2, 0},
		{-w / 2, h / 2, 0},
	}
}

// PlateRotation composes the plate pose: rotate around X by ax, then
// around Y by ay. The order is fixed; swapping it changes every frame.
func PlateRotation(ax, ay float64) Mat3 {
	return Mat3Mul(RotY(ay), RotX(ax))
}

// ProjectQuad rotates the plate corners and projects them to screen
// space with focal length f, centered at (cx, cy).
func ProjectQuad(corners [4]Vec3, rot Mat3, cx, cy, f float64) Quad {
	var q Quad
	for i, c := range corners {
		v := rot.MulVec3(c)
		d := f + v[2]
		if d < depthFloor {
			d = depthFloor
		}
		s := f / d
		q[i] = Point{X: cx + v[0]*s, Y: cy + v[1]*s}
	}
	return q
}
