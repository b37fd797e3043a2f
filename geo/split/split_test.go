package split

import (
	"log/slog"
	"math"
	"reflect"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/rotblauer/polysplit/common"
	"github.com/rotblauer/polysplit/geo/engine"
	"github.com/rotblauer/polysplit/params"
)

func newSplitter(t *testing.T, maxVertices, maxDepth int) *Splitter {
	t.Helper()
	s, err := New(&engine.Planar{}, params.SplitConfig{
		MaxVertices: maxVertices,
		MaxDepth:    maxDepth,
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// nearCircle builds a closed ring of n vertices approximating a circle.
func nearCircle(n int, r float64) orb.Polygon {
	ring := make(orb.Ring, 0, n+1)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		ring = append(ring, orb.Point{r * math.Cos(theta), r * math.Sin(theta)})
	}
	ring = append(ring, ring[0])
	return orb.Polygon{ring}
}

var square = orb.Polygon{
	{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}},
}

func TestSplitIdempotentOnSmallInput(t *testing.T) {
	s := newSplitter(t, 50, 0)
	pieces := s.Split(square)
	if len(pieces) != 1 {
		t.Fatalf("Expected 1 piece, got %d", len(pieces))
	}
	if !reflect.DeepEqual(pieces[0], square) {
		t.Errorf("Expected piece equal to input, got %v", pieces[0])
	}

	// Holes ride along untouched on the terminal path.
	holed := orb.Polygon{
		square[0],
		{{0.5, 0.5}, {0.5, 1}, {1, 1}, {1, 0.5}, {0.5, 0.5}},
	}
	pieces = s.Split(holed)
	if len(pieces) != 1 || len(pieces[0]) != 2 {
		t.Fatalf("Expected 1 piece with hole, got %v", pieces)
	}
}

func TestSplitBudgetComplianceAndUnion(t *testing.T) {
	const budget = 50
	circle := nearCircle(1000, 10)
	want := planar.Area(circle)

	s := newSplitter(t, budget, 0)
	pieces := s.Split(circle)
	if len(pieces) < 2 {
		t.Fatalf("Expected the circle split into several pieces, got %d", len(pieces))
	}

	got := 0.0
	for i, p := range pieces {
		if len(p[0]) > budget {
			t.Errorf("Piece %d exterior has %d points, budget %d", i, len(p[0]), budget)
		}
		if !p[0].Closed() {
			t.Errorf("Piece %d exterior not closed", i)
		}
		got += planar.Area(p)
	}
	if math.Abs(got-want)/want > 1e-6 {
		t.Errorf("Union area drifted: want %v, got %v", want, got)
	}
}

func TestSplitHoleBearingUnion(t *testing.T) {
	// The hole overlaps all four central quadrants; clipping carries the
	// relevant hole fragment into each piece, and the piece areas must
	// still sum to the punctured area.
	const budget = 50
	holed := nearCircle(200, 10)
	holed = append(holed, orb.Ring{{-2, -2}, {2, -2}, {2, 2}, {-2, 2}, {-2, -2}})
	want := planar.Area(holed)

	s := newSplitter(t, budget, 0)
	pieces := s.Split(holed)
	if len(pieces) < 2 {
		t.Fatalf("Expected several pieces, got %d", len(pieces))
	}

	got := 0.0
	for i, p := range pieces {
		if len(p[0]) > budget {
			t.Errorf("Piece %d exterior has %d points, budget %d", i, len(p[0]), budget)
		}
		got += planar.Area(p)
	}
	if math.Abs(got-want)/want > 1e-6 {
		t.Errorf("Union area drifted: want %v, got %v", want, got)
	}
}

func TestSplitMultiPolygonDecomposition(t *testing.T) {
	a := square
	b := orb.Polygon{{{10, 10}, {12, 10}, {12, 12}, {10, 12}, {10, 10}}}

	s := newSplitter(t, 50, 0)
	multi := s.Split(orb.MultiPolygon{a, b})
	singles := append(s.Split(a), s.Split(b)...)
	if !reflect.DeepEqual(multi, singles) {
		t.Errorf("Expected multipolygon split to equal member-wise splits:\n%v\n%v", multi, singles)
	}
}

func TestSplitNilEmptyAndOtherKinds(t *testing.T) {
	defer common.SlogResetLevel(slog.LevelWarn + 1)()

	s := newSplitter(t, 50, 0)
	if pieces := s.Split(nil); len(pieces) != 0 {
		t.Errorf("Expected no pieces for nil geometry, got %d", len(pieces))
	}
	if pieces := s.Split(orb.Polygon{}); len(pieces) != 0 {
		t.Errorf("Expected no pieces for empty polygon, got %d", len(pieces))
	}
	if pieces := s.Split(orb.MultiPolygon{}); len(pieces) != 0 {
		t.Errorf("Expected no pieces for empty multipolygon, got %d", len(pieces))
	}
	if pieces := s.Split(orb.LineString{{0, 0}, {1, 1}}); len(pieces) != 0 {
		t.Errorf("Expected no pieces for linestring, got %d", len(pieces))
	}
	if pieces := s.Split(orb.Point{1, 1}); len(pieces) != 0 {
		t.Errorf("Expected no pieces for point, got %d", len(pieces))
	}
}

func TestSplitDegenerateBudgetTerminates(t *testing.T) {
	defer common.SlogResetLevel(slog.LevelWarn + 1)()

	// A closed triangle fits the smallest legal budget exactly.
	triangle := orb.Polygon{{{0, 0}, {1, 0}, {0, 1}, {0, 0}}}
	s := newSplitter(t, 4, 0)
	pieces := s.Split(triangle)
	if len(pieces) != 1 {
		t.Fatalf("Expected 1 piece, got %d", len(pieces))
	}

	// A rectangle can never clip below 5 exterior points, so budget 4
	// makes no progress; the depth limit must stop the recursion.
	s = newSplitter(t, 4, 3)
	pieces = s.Split(square)
	if len(pieces) == 0 {
		t.Fatal("Expected depth-capped pieces, got none")
	}
	for i, p := range pieces {
		if !p[0].Closed() {
			t.Errorf("Piece %d exterior not closed", i)
		}
	}
}

func TestSplitSelfIntersectingBowtie(t *testing.T) {
	defer common.SlogResetLevel(slog.LevelWarn + 1)()

	// Bowtie crossing at (1,1): repair pinches it into two triangle
	// lobes, each of which fits the smallest legal budget.
	bowtie := orb.Polygon{{{0, 0}, {2, 2}, {2, 0}, {0, 2}, {0, 0}}}
	s := newSplitter(t, 4, 4)
	pieces := s.Split(bowtie)
	if len(pieces) != 2 {
		t.Fatalf("Expected 2 lobes, got %d", len(pieces))
	}
	e := s.Engine
	got := 0.0
	for i, p := range pieces {
		if !p[0].Closed() {
			t.Errorf("Piece %d exterior not closed", i)
		}
		if !e.IsValid(p) {
			t.Errorf("Piece %d not valid: %v", i, p)
		}
		if !e.IsSimple(p) {
			t.Errorf("Piece %d not simple: %v", i, p)
		}
		got += planar.Area(p)
	}
	// Each lobe has area 1.
	if math.Abs(got-2) > 1e-9 {
		t.Errorf("Expected lobe areas summing to 2, got %v", got)
	}
}

func TestSplitSelfIntersectingOverBudget(t *testing.T) {
	defer common.SlogResetLevel(slog.LevelWarn + 1)()

	// Eight distinct vertices with one proper crossing at (1,2). Left
	// unrepaired, every quadrant clip regenerates an over-budget tangle
	// and the recursion multiplies work all the way to the depth limit;
	// repaired, it pinches into a 5-point lobe and a 7-point lobe and
	// terminates immediately.
	tangled := orb.Polygon{{
		{0, 0}, {4, 0}, {4, 3}, {1, 3}, {1, 1}, {3, 1}, {3, 2}, {0, 2}, {0, 0},
	}}
	s := newSplitter(t, 7, 0)
	pieces := s.Split(tangled)
	if len(pieces) != 2 {
		t.Fatalf("Expected 2 lobes, got %d", len(pieces))
	}
	e := s.Engine
	got := 0.0
	for i, p := range pieces {
		if len(p[0]) > 7 {
			t.Errorf("Piece %d exterior has %d points, budget 7", i, len(p[0]))
		}
		if !e.IsValid(p) {
			t.Errorf("Piece %d not valid: %v", i, p)
		}
		if !e.IsSimple(p) {
			t.Errorf("Piece %d not simple: %v", i, p)
		}
		got += planar.Area(p)
	}
	// The pinched lobes have areas 2 and 11.
	if math.Abs(got-13) > 1e-9 {
		t.Errorf("Expected lobe areas summing to 13, got %v", got)
	}
}

// nanCentroidEngine forces the degenerate-centroid path: the split
// origin clamps to the envelope corner and one quadrant covers the
// whole envelope.
type nanCentroidEngine struct{ engine.Planar }

func (e *nanCentroidEngine) Centroid(p orb.Polygon) orb.Point {
	return orb.Point{math.NaN(), math.NaN()}
}

func TestSplitNoProgressEmitsOversized(t *testing.T) {
	defer common.SlogResetLevel(slog.LevelWarn + 1)()

	// Simple and valid, but over budget; with no usable split origin the
	// piece must come back as-is instead of recursing in place.
	p := orb.Polygon{{
		{0, 0}, {1, 0}, {2, 0}, {2, 1}, {2, 2}, {1, 2}, {0, 2}, {0, 1}, {0, 0},
	}}
	s, err := New(&nanCentroidEngine{}, params.SplitConfig{MaxVertices: 6})
	if err != nil {
		t.Fatal(err)
	}
	pieces := s.Split(p)
	if len(pieces) != 1 {
		t.Fatalf("Expected 1 oversized piece, got %d", len(pieces))
	}
	if !reflect.DeepEqual(pieces[0], p) {
		t.Errorf("Expected piece equal to input, got %v", pieces[0])
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	if _, err := New(&engine.Planar{}, params.SplitConfig{MaxVertices: 3}); err == nil {
		t.Error("Expected error for budget below 4")
	}
	s, err := New(&engine.Planar{}, params.SplitConfig{MaxVertices: 100})
	if err != nil {
		t.Fatal(err)
	}
	if s.Config.MaxDepth != params.DefaultSplitConfig.MaxDepth {
		t.Errorf("Expected default max depth, got %d", s.Config.MaxDepth)
	}
}
