// Package index answers point-in-polygon queries over split pieces.
// Small, budget-compliant pieces are the whole point of splitting: the
// R-tree narrows a query to a handful of candidates, and the exact
// containment test over a bounded ring is cheap.
package index

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// rtreego requires non-zero rect dimensions; degenerate (flat) pieces
// get padded by epsilon.
const epsilon = 1e-9

type piece struct {
	polygon orb.Polygon
	id      int
}

// Bounds implements the rtreego.Spatial interface.
func (p *piece) Bounds() rtreego.Rect {
	b := p.polygon.Bound()
	lengths := []float64{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1]}
	for i := range lengths {
		if lengths[i] < epsilon {
			lengths[i] = epsilon
		}
	}
	rect, _ := rtreego.NewRect(rtreego.Point{b.Min[0], b.Min[1]}, lengths)
	return rect
}

// PieceIndex is an in-memory spatial index of output pieces keyed by
// their source feature id. Inserts and queries must not be interleaved
// concurrently; build first, then query.
type PieceIndex struct {
	tree *rtreego.Rtree
}

func NewPieceIndex() *PieceIndex {
	return &PieceIndex{
		tree: rtreego.NewTree(2, 25, 50),
	}
}

func (x *PieceIndex) Insert(p orb.Polygon, id int) {
	x.tree.Insert(&piece{polygon: p, id: id})
}

func (x *PieceIndex) Size() int {
	return x.tree.Size()
}

// Locate returns the ids of all pieces containing pt. A point on a
// shared piece border can report the same id more than once upstream of
// dedupe here; ids are deduped, order unspecified.
func (x *PieceIndex) Locate(pt orb.Point) []int {
	rect, _ := rtreego.NewRect(rtreego.Point{pt[0], pt[1]}, []float64{epsilon, epsilon})
	candidates := x.tree.SearchIntersect(rect)

	ids := make([]int, 0, len(candidates))
	seen := make(map[int]bool, len(candidates))
	for _, c := range candidates {
		hit := c.(*piece)
		if seen[hit.id] {
			continue
		}
		if planar.PolygonContains(hit.polygon, pt) {
			seen[hit.id] = true
			ids = append(ids, hit.id)
		}
	}
	return ids
}
