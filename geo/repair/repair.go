// Package repair normalizes invalid or non-simple polygons into a
// best-effort valid replacement via the engine's buffer-zero operation.
// The result is an accepted approximation, never an error: slivers and
// near-duplicate points may be gone, and the replacement may be a
// MultiPolygon when self-intersections pinch the shape apart.
package repair

import (
	"log/slog"

	"github.com/paulmach/orb"
	"github.com/rotblauer/polysplit/geo/engine"
)

// Polygon returns p unchanged when it already tests valid and simple,
// otherwise the engine's buffer-zero replacement. Engine failures fall
// back to the original polygon with a warning; they are never fatal.
func Polygon(e engine.Engine, p orb.Polygon) orb.Geometry {
	if e.IsValid(p) && e.IsSimple(p) {
		return p
	}
	out, err := e.BufferZero(p)
	if err != nil || out == nil {
		slog.Warn("Polygon repair failed, using original", "error", err)
		return p
	}
	return out
}
