package geom

// Vec3 is a 3-component vector (value type, stack-allocated).
type Vec3 [3]float64
