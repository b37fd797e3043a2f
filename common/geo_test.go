package common

import (
	"testing"

	"github.com/paulmach/orb"
)

func TestSegmentsIntersect(t *testing.T) {
	cases := []struct {
		name           string
		a0, a1, b0, b1 orb.Point
		want           bool
		at             orb.Point
	}{
		{
			name: "crossing diagonals",
			a0:   orb.Point{0, 0}, a1: orb.Point{2, 2},
			b0: orb.Point{0, 2}, b1: orb.Point{2, 0},
			want: true, at: orb.Point{1, 1},
		},
		{
			name: "parallel",
			a0:   orb.Point{0, 0}, a1: orb.Point{1, 0},
			b0: orb.Point{0, 1}, b1: orb.Point{1, 1},
			want: false,
		},
		{
			name: "shared endpoint does not cross",
			a0:   orb.Point{0, 0}, a1: orb.Point{1, 1},
			b0: orb.Point{1, 1}, b1: orb.Point{2, 0},
			want: false,
		},
		{
			name: "disjoint",
			a0:   orb.Point{0, 0}, a1: orb.Point{1, 0},
			b0: orb.Point{3, 3}, b1: orb.Point{4, 4},
			want: false,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			at, got := SegmentsIntersect(c.a0, c.a1, c.b0, c.b1)
			if got != c.want {
				t.Fatalf("Expected %v, got %v", c.want, got)
			}
			if got && !at.Equal(c.at) {
				t.Errorf("Expected crossing at %v, got %v", c.at, at)
			}
		})
	}
}
