package belief

// clampedCubic evaluates the cubic through (x0, y0) and (x1, y1) with zero
// slope at both ends. This is the two-knot clamped spline: an S-shaped
// transition y0 + (y1-y0)*(3t^2 - 2t^3) with t = (x-x0)/(x1-x0).
func clampedCubic(x0, y0, x1, y1, x float64) float64 {
	if x1 == x0 {
		return y0
	}
	t := (x - x0) / (x1 - x0)
	h := min(max(t*t*(3-2*t), 0), 1)
	return y0 + (y1-y0)*h
}
