// Package split subdivides (multi)polygons whose exterior rings are too
// complex into smaller simple polygons whose union reconstructs the input.
//
// Each over-budget polygon is split by dividing its envelope into four
// quadrants at the polygon's centroid, then recursing on the intersection
// of each quadrant with the polygon until every piece fits the budget.
// The centroid, not the envelope midpoint, is the split origin: it biases
// subdivision toward the geometry's mass, which on skewed shapes yields
// more evenly sized pieces than bounding-box bisection.
package split

import (
	"errors"
	"log/slog"

	"github.com/paulmach/orb"
	"github.com/rotblauer/polysplit/geo/engine"
	"github.com/rotblauer/polysplit/geo/repair"
	"github.com/rotblauer/polysplit/params"
)

var ErrBudgetTooSmall = errors.New("max vertices must be at least 4 (a closed triangle)")

type Splitter struct {
	Engine engine.Engine
	Config params.SplitConfig

	logger *slog.Logger
}

func New(e engine.Engine, cfg params.SplitConfig) (*Splitter, error) {
	if cfg.MaxVertices < 4 {
		return nil, ErrBudgetTooSmall
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = params.DefaultSplitConfig.MaxDepth
	}
	return &Splitter{
		Engine: e,
		Config: cfg,
		logger: slog.Default(),
	}, nil
}

// Split recursively splits the (multi)polygon into smaller polygons until
// each piece's exterior ring has at most Config.MaxVertices points.
//
// Multipolygons are divided into their constituent polygons, in order.
// Nil geometry draws a warning; empty polygons and other geometry kinds
// are silently ignored. Invalid polygons get repaired to the best of the
// engine's ability first. Engine failures (an empty intersection result)
// end that branch with zero pieces; nothing here is fatal.
//
// Only the exterior ring gates recursion. A polygon with a modest
// exterior and a monstrous hole passes through unsplit; clipping carries
// holes into pieces, so the choice keeps piece counts stable for
// hole-bearing inputs that fit the budget.
func (s *Splitter) Split(g orb.Geometry) []orb.Polygon {
	return s.split(make([]orb.Polygon, 0, 4), g, 0)
}

func (s *Splitter) split(acc []orb.Polygon, g orb.Geometry, depth int) []orb.Polygon {
	if g == nil {
		s.logger.Warn("Nil geometry passed to split")
		return acc
	}
	switch t := g.(type) {
	case orb.MultiPolygon:
		for _, p := range t {
			acc = s.split(acc, p, depth)
		}
		return acc
	case orb.Polygon:
		return s.splitPolygon(acc, t, depth)
	}
	// Points, lines, collections: not ours to split.
	return acc
}

func (s *Splitter) splitPolygon(acc []orb.Polygon, p orb.Polygon, depth int) []orb.Polygon {
	if len(p) == 0 || len(p[0]) < 4 {
		// Empty, or clip residue too thin to enclose area.
		return acc
	}
	if len(p[0]) <= s.Config.MaxVertices {
		return append(acc, p.Clone())
	}
	if depth >= s.Config.MaxDepth {
		s.logger.Warn("Split depth limit reached, emitting oversized piece",
			"depth", depth, "vertices", len(p[0]), "budget", s.Config.MaxVertices)
		return append(acc, p.Clone())
	}

	repaired := repair.Polygon(s.Engine, p)
	poly, ok := repaired.(orb.Polygon)
	if !ok {
		// Repair pinched the shape into a multipolygon (or worse);
		// feed it back through at the same depth.
		return s.split(acc, repaired, depth)
	}
	if len(poly) == 0 || len(poly[0]) < 4 {
		return acc
	}

	bound := poly.Bound()
	quads := quadrants(bound, s.Engine.Centroid(poly))
	for _, quadrant := range quads {
		if quadrant == bound {
			// A clamped split origin left one quadrant covering the whole
			// envelope; clipping to it changes nothing and recursion
			// would spin in place.
			s.logger.Warn("Split made no progress, emitting oversized piece",
				"depth", depth, "vertices", len(poly[0]), "budget", s.Config.MaxVertices)
			return append(acc, poly.Clone())
		}
	}
	for _, quadrant := range quads {
		piece := s.Engine.Clip(quadrant, poly)
		if piece == nil {
			continue
		}
		acc = s.split(acc, piece, depth+1)
	}
	return acc
}

// quadrants carves the envelope into four boxes cornered at the split
// origin, in no particular order. A split origin outside the envelope
// (degenerate centroids, NaN from zero-area shapes) would invert the
// boxes; it gets clamped. A corner clamped on both axes makes one box
// the whole envelope, which the caller treats as no progress.
func quadrants(b orb.Bound, corner orb.Point) [4]orb.Bound {
	cx, cy := corner[0], corner[1]
	if !(cx > b.Min[0]) {
		cx = b.Min[0]
	} else if cx > b.Max[0] {
		cx = b.Max[0]
	}
	if !(cy > b.Min[1]) {
		cy = b.Min[1]
	} else if cy > b.Max[1] {
		cy = b.Max[1]
	}
	return [4]orb.Bound{
		{Min: b.Min, Max: orb.Point{cx, cy}},
		{Min: orb.Point{cx, b.Min[1]}, Max: orb.Point{b.Max[0], cy}},
		{Min: orb.Point{b.Min[0], cy}, Max: orb.Point{cx, b.Max[1]}},
		{Min: orb.Point{cx, cy}, Max: b.Max},
	}
}
