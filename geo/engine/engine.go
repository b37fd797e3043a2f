// Package engine abstracts the planar geometry operations the splitter
// delegates: validity and simplicity testing, buffer-zero repair, centroid
// computation, and rectangle intersection.
//
// Two engines are provided. Planar is pure Go on paulmach/orb and is the
// default. GEOS binds libgeos through twpayne/go-geos and matches the
// numerics of the classic OGR/GEOS toolchain, at the cost of cgo; it is
// compiled in only under the geos build tag.
package engine

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Engine is the geometry capability set consumed by the splitter.
// Operations never return errors for geometric anomalies; a failed
// operation yields a nil/zero result and the caller treats the branch
// as empty.
type Engine interface {
	// IsValid reports whether the polygon is structurally well formed.
	IsValid(p orb.Polygon) bool

	// IsSimple reports whether no ring of the polygon self-intersects.
	IsSimple(p orb.Polygon) bool

	// BufferZero applies a zero-distance buffer to collapse
	// self-intersections and degeneracies. The result may differ
	// topologically from the input (slivers and near-duplicate points
	// may be gone) and may be a MultiPolygon.
	BufferZero(p orb.Polygon) (orb.Geometry, error)

	// Centroid returns the area-weighted center of the polygon.
	Centroid(p orb.Polygon) orb.Point

	// Clip intersects g with the axis-aligned rectangle b.
	// The result may be nil (empty), a Polygon, or a MultiPolygon.
	Clip(b orb.Bound, g orb.Geometry) orb.Geometry
}

// New returns the named engine: "planar" or "geos".
func New(name string) (Engine, error) {
	switch name {
	case "", "planar":
		return &Planar{}, nil
	case "geos":
		return newGEOS()
	}
	return nil, fmt.Errorf("unknown geometry engine %q", name)
}
