package physics

import (
	"math"
	"slices"
	"testing"
)

const eps = 1e-9

func TestCheckBound(t *testing.T) {
	cases := []struct {
		name  string
		rect  Rect
		wantH bool
		wantV bool
	}{
		{"inside", Rect{Left: 10, Top: 10, Width: 50, Height: 50}, true, true},
		{"touching edges", Rect{Left: 0, Top: 0, Width: 1100, Height: 650}, true, true},
		{"left out", Rect{Left: -1, Top: 10, Width: 50, Height: 50}, false, true},
		{"right out", Rect{Left: 1060, Top: 10, Width: 50, Height: 50}, false, true},
		{"top out", Rect{Left: 10, Top: -0.5, Width: 50, Height: 50}, true, false},
		{"bottom out", Rect{Left: 10, Top: 620, Width: 50, Height: 50}, true, false},
		{"both out", Rect{Left: -5, Top: 640, Width: 50, Height: 50}, false, false},
	}
	for _, tc := range cases {
		h, v := CheckBound(tc.rect, 1100, 650)
		if h != tc.wantH || v != tc.wantV {
			t.Errorf("%s: CheckBound = (%v, %v), want (%v, %v)", tc.name, h, v, tc.wantH, tc.wantV)
		}
		if InBounds(tc.rect, 1100, 650) != (tc.wantH && tc.wantV) {
			t.Errorf("%s: InBounds disagrees with CheckBound", tc.name)
		}
	}
}

func TestRectOverlaps(t *testing.T) {
	a := Rect{Left: 0, Top: 0, Width: 10, Height: 10}

	if !a.Overlaps(Rect{Left: 5, Top: 5, Width: 10, Height: 10}) {
		t.Error("partially overlapping rects should overlap")
	}
	if a.Overlaps(Rect{Left: 10, Top: 0, Width: 10, Height: 10}) {
		t.Error("rects sharing only an edge should not overlap")
	}
	if a.Overlaps(Rect{Left: 20, Top: 20, Width: 5, Height: 5}) {
		t.Error("disjoint rects should not overlap")
	}
	if !a.Overlaps(Rect{Left: 2, Top: 2, Width: 2, Height: 2}) {
		t.Error("contained rect should overlap")
	}
}

func TestRectFromCenter(t *testing.T) {
	r := RectFromCenter(100, 50, 20, 10)
	if r.Left != 90 || r.Top != 45 || r.Right() != 110 || r.Bottom() != 55 {
		t.Errorf("unexpected rect %+v", r)
	}
	cx, cy := r.Center()
	if cx != 100 || cy != 50 {
		t.Errorf("Center = (%v, %v), want (100, 50)", cx, cy)
	}
}

func TestOrientation(t *testing.T) {
	dx, dy, ok := Orientation(300, 50, 900, 400)
	if !ok {
		t.Fatal("expected a direction")
	}
	norm := math.Hypot(600, 350)
	if math.Abs(dx-600/norm) > eps || math.Abs(dy-350/norm) > eps {
		t.Errorf("Orientation = (%v, %v), want (%v, %v)", dx, dy, 600/norm, 350/norm)
	}
	if math.Abs(math.Hypot(dx, dy)-1) > eps {
		t.Errorf("direction not unit length: %v", math.Hypot(dx, dy))
	}

	if _, _, ok := Orientation(5, 5, 5, 5); ok {
		t.Error("coincident points should have no direction")
	}
}

func TestRotatedBounds(t *testing.T) {
	w, h := RotatedBounds(40, 10, 0)
	if math.Abs(w-40) > eps || math.Abs(h-10) > eps {
		t.Errorf("unrotated bounds = (%v, %v)", w, h)
	}
	w, h = RotatedBounds(40, 10, math.Pi/2)
	if math.Abs(w-10) > eps || math.Abs(h-40) > eps {
		t.Errorf("quarter-turn bounds = (%v, %v)", w, h)
	}
}

func TestSpatialGridQueryRect(t *testing.T) {
	g := NewSpatialGrid(1100, 650, 100)

	rects := []Rect{
		{Left: 10, Top: 10, Width: 20, Height: 20},    // cell (0,0)
		{Left: 90, Top: 90, Width: 30, Height: 30},    // spans four cells
		{Left: 900, Top: 500, Width: 10, Height: 10},  // far away
		{Left: -30, Top: -30, Width: 20, Height: 20},  // outside, clamped to (0,0)
		{Left: 1090, Top: 640, Width: 40, Height: 40}, // outside bottom-right
	}
	for i, r := range rects {
		g.Insert(r, i)
	}

	var got []int
	g.QueryRect(Rect{Left: 0, Top: 0, Width: 150, Height: 150}, func(i int) bool {
		got = append(got, i)
		return false
	})
	slices.Sort(got)
	if !slices.Equal(got, []int{0, 1, 3}) {
		t.Errorf("query near origin = %v, want [0 1 3]", got)
	}

	got = got[:0]
	g.QueryRect(Rect{Left: 1050, Top: 600, Width: 10, Height: 10}, func(i int) bool {
		got = append(got, i)
		return false
	})
	if !slices.Equal(got, []int{4}) {
		t.Errorf("query bottom-right = %v, want [4]", got)
	}

	g.Clear()
	calls := 0
	g.QueryRect(Rect{Left: 0, Top: 0, Width: 1100, Height: 650}, func(int) bool {
		calls++
		return false
	})
	if calls != 0 {
		t.Errorf("cleared grid returned %d items", calls)
	}
}

func TestSpatialGridEarlyStop(t *testing.T) {
	g := NewSpatialGrid(200, 200, 50)
	for i := 0; i < 10; i++ {
		g.Insert(Rect{Left: 10, Top: 10, Width: 5, Height: 5}, i)
	}

	calls := 0
	g.QueryRect(Rect{Left: 0, Top: 0, Width: 40, Height: 40}, func(int) bool {
		calls++
		return true
	})
	if calls != 1 {
		t.Errorf("early stop visited %d items, want 1", calls)
	}
}
