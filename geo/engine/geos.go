//go:build geos

package engine

import (
	"log/slog"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/twpayne/go-geos"
)

// GEOS delegates every capability to libgeos through twpayne/go-geos,
// round-tripping geometries as GeoJSON. Buffer-zero repair here is the
// real thing, and intersection is exact boolean intersection with the
// rectangle mask rather than a clip.
//
// go-geos panics on libgeos exceptions; operations recover and report
// the anomaly as an empty result, which the splitter absorbs.
type GEOS struct{}

func newGEOS() (Engine, error) {
	return &GEOS{}, nil
}

func (e *GEOS) IsValid(p orb.Polygon) bool {
	ok := false
	e.with(p, func(g *geos.Geom) {
		ok = g.IsValid()
	})
	return ok
}

func (e *GEOS) IsSimple(p orb.Polygon) bool {
	ok := false
	e.with(p, func(g *geos.Geom) {
		ok = g.IsSimple()
	})
	return ok
}

func (e *GEOS) BufferZero(p orb.Polygon) (out orb.Geometry, err error) {
	e.with(p, func(g *geos.Geom) {
		buffered := g.Buffer(0, 8)
		defer buffered.Destroy()
		out = fromGeos(buffered)
	})
	return out, nil
}

func (e *GEOS) Centroid(p orb.Polygon) (center orb.Point) {
	e.with(p, func(g *geos.Geom) {
		c := g.Centroid()
		defer c.Destroy()
		center = orb.Point{c.X(), c.Y()}
	})
	return center
}

func (e *GEOS) Clip(b orb.Bound, g orb.Geometry) (piece orb.Geometry) {
	if g == nil {
		return nil
	}
	mask := maskPolygon(b)
	e.with(mask, func(gm *geos.Geom) {
		subject := toGeos(g)
		if subject == nil {
			return
		}
		defer subject.Destroy()
		clipped := gm.Intersection(subject)
		if clipped == nil || clipped.IsEmpty() {
			return
		}
		defer clipped.Destroy()
		piece = fromGeos(clipped)
	})
	return piece
}

// maskPolygon builds the rectangular quadrant mask, ring wound
// counter-clockwise and closed.
func maskPolygon(b orb.Bound) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{b.Min[0], b.Min[1]},
		{b.Max[0], b.Min[1]},
		{b.Max[0], b.Max[1]},
		{b.Min[0], b.Max[1]},
		{b.Min[0], b.Min[1]},
	}}
}

// with runs fn over the GEOS form of p, recovering thrown libgeos
// exceptions so a bad geometry costs a warning, not the process.
func (e *GEOS) with(p orb.Polygon, fn func(g *geos.Geom)) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("GEOS operation failed", "error", r)
		}
	}()
	g := toGeos(p)
	if g == nil {
		return
	}
	defer g.Destroy()
	fn(g)
}

func toGeos(g orb.Geometry) *geos.Geom {
	data, err := geojson.NewGeometry(g).MarshalJSON()
	if err != nil {
		return nil
	}
	gg, err := geos.NewGeomFromGeoJSON(string(data))
	if err != nil {
		slog.Warn("GEOS rejected geometry", "error", err)
		return nil
	}
	return gg
}

func fromGeos(g *geos.Geom) orb.Geometry {
	gj, err := geojson.UnmarshalGeometry([]byte(g.ToGeoJSON(-1)))
	if err != nil {
		slog.Warn("Unreadable GEOS geometry", "error", err)
		return nil
	}
	return gj.Geometry()
}
