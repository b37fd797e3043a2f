package engine

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/clip"
	"github.com/paulmach/orb/planar"
	"github.com/rotblauer/polysplit/common"
)

// Planar is the pure-Go engine.
// Centroid and rectangle intersection come from orb; validity and
// simplicity are structural checks plus a ring self-intersection scan.
// BufferZero drops duplicate points and degenerate rings, and renodes
// a self-crossing exterior into simple sub-rings at each crossing.
// Collinear-overlap bridges have no proper crossing point and pass
// through unmended.
type Planar struct{}

func (e *Planar) IsValid(p orb.Polygon) bool {
	if len(p) == 0 {
		return false
	}
	for _, ring := range p {
		if len(ring) < 4 || !ring.Closed() {
			return false
		}
	}
	return true
}

func (e *Planar) IsSimple(p orb.Polygon) bool {
	for _, ring := range p {
		if ringSelfIntersects(ring) {
			return false
		}
	}
	return true
}

// ringSelfIntersects scans segment pairs for a proper crossing.
// Quadratic, with a bound prefilter; ring sizes here are bounded by
// whatever the splitter is chewing on, which keeps this honest.
func ringSelfIntersects(ring orb.Ring) bool {
	n := len(ring) - 1
	for i := 0; i < n; i++ {
		if ring[i].Equal(ring[i+1]) {
			// Zero-length segment.
			return true
		}
		for j := i + 1; j < n; j++ {
			if !segmentBoundsOverlap(ring[i], ring[i+1], ring[j], ring[j+1]) {
				continue
			}
			if _, cross := common.SegmentsIntersect(ring[i], ring[i+1], ring[j], ring[j+1]); cross {
				return true
			}
		}
	}
	return false
}

func segmentBoundsOverlap(a0, a1, b0, b1 orb.Point) bool {
	return min(a0[0], a1[0]) <= max(b0[0], b1[0]) &&
		min(b0[0], b1[0]) <= max(a0[0], a1[0]) &&
		min(a0[1], a1[1]) <= max(b0[1], b1[1]) &&
		min(b0[1], b1[1]) <= max(a0[1], a1[1])
}

// BufferZero mends what a zero-distance buffer would: consecutive
// duplicate points and degenerate rings go, and a self-crossing
// exterior is pinched apart at each crossing into simple sub-rings.
// A single surviving exterior keeps its (cleaned, simple) holes; an
// exterior that splits apart comes back as a MultiPolygon and the
// now-unassignable holes are dropped.
func (e *Planar) BufferZero(p orb.Polygon) (orb.Geometry, error) {
	if len(p) == 0 {
		return orb.Polygon{}, nil
	}
	exterior := cleanRing(p[0])
	if len(exterior) < 4 {
		// Exterior collapsed; whatever holes remain
		// have nothing to puncture.
		return orb.Polygon{}, nil
	}
	rings := renode(exterior)
	switch len(rings) {
	case 0:
		return orb.Polygon{}, nil
	case 1:
		out := orb.Polygon{rings[0]}
		for _, ring := range p[1:] {
			cleaned := cleanRing(ring)
			if len(cleaned) < 4 || ringSelfIntersects(cleaned) {
				// Degenerate or tangled hole, gone.
				continue
			}
			out = append(out, cleaned)
		}
		return out, nil
	}
	out := make(orb.MultiPolygon, 0, len(rings))
	for _, ring := range rings {
		out = append(out, orb.Polygon{ring})
	}
	return out, nil
}

// renode splits a closed ring at each proper self-crossing, yielding
// crossing-free closed sub-rings. Zero-area residue is dropped. Each
// pinch produces two strictly smaller rings, so this terminates.
func renode(ring orb.Ring) []orb.Ring {
	n := len(ring) - 1
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if !segmentBoundsOverlap(ring[i], ring[i+1], ring[j], ring[j+1]) {
				continue
			}
			pt, cross := common.SegmentsIntersect(ring[i], ring[i+1], ring[j], ring[j+1])
			if !cross {
				continue
			}
			// The loop between segments i and j, and the remainder,
			// each re-closed through the crossing point.
			a := make(orb.Ring, 0, j-i+2)
			a = append(a, pt)
			a = append(a, ring[i+1:j+1]...)
			a = append(a, pt)
			b := make(orb.Ring, 0, n-(j-i)+2)
			b = append(b, pt)
			b = append(b, ring[j+1:n]...)
			b = append(b, ring[:i+1]...)
			b = append(b, pt)
			return append(renode(cleanRing(a)), renode(cleanRing(b))...)
		}
	}
	if len(ring) < 4 || math.Abs(planar.Area(ring)) == 0 {
		return nil
	}
	return []orb.Ring{ring}
}

// cleanRing drops consecutive duplicate points and re-closes the ring.
func cleanRing(ring orb.Ring) orb.Ring {
	if len(ring) == 0 {
		return ring
	}
	out := make(orb.Ring, 0, len(ring))
	out = append(out, ring[0])
	for _, pt := range ring[1:] {
		if pt.Equal(out[len(out)-1]) {
			continue
		}
		out = append(out, pt)
	}
	// The closing point was deduped away, or never there.
	if len(out) > 1 && out[len(out)-1].Equal(out[0]) {
		out = out[:len(out)-1]
	}
	out = append(out, out[0])
	return out
}

func (e *Planar) Centroid(p orb.Polygon) orb.Point {
	center, _ := planar.CentroidArea(p)
	return center
}

func (e *Planar) Clip(b orb.Bound, g orb.Geometry) orb.Geometry {
	if g == nil {
		return nil
	}
	// clip may use its input as scratch space, and the splitter clips
	// the same polygon against four quadrant masks in turn.
	return clip.Geometry(b, orb.Clone(g))
}
