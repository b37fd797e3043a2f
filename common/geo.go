package common

import "github.com/paulmach/orb"

// SegmentsIntersect returns true if the two line segments cross,
// and the crossing point. The crossing is considered exclusive of
// segment endpoints; segments that merely touch end-to-end do not cross.
// https://stackoverflow.com/a/1968345
func SegmentsIntersect(a0, a1, b0, b1 orb.Point) (orb.Point, bool) {
	s1x, s1y := a1[0]-a0[0], a1[1]-a0[1]
	s2x, s2y := b1[0]-b0[0], b1[1]-b0[1]

	den := -s2x*s1y + s1x*s2y
	if den == 0 {
		// Parallel or collinear.
		return orb.Point{}, false
	}

	s := (-s1y*(a0[0]-b0[0]) + s1x*(a0[1]-b0[1])) / den
	t := (s2x*(a0[1]-b0[1]) - s2y*(a0[0]-b0[0])) / den
	if s <= 0 || s >= 1 || t <= 0 || t >= 1 {
		return orb.Point{}, false
	}
	return orb.Point{a0[0] + t*s1x, a0[1] + t*s1y}, true
}
