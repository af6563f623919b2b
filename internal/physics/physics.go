// Package physics provides bounds checking, collision detection and
// direction utilities for the playfield.
package physics

import "math"

// Rect is an axis-aligned bounding box. Left/Top is the top-left corner
// with y growing downward.
type Rect struct {
	Left, Top     float64
	Width, Height float64
}

// RectFromCenter builds a rect of size w x h centered on (cx, cy).
func RectFromCenter(cx, cy, w, h float64) Rect {
	return Rect{Left: cx - w/2, Top: cy - h/2, Width: w, Height: h}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Center returns the center point of the rect.
func (r Rect) Center() (float64, float64) {
	return r.Left + r.Width/2, r.Top + r.Height/2
}

// Overlaps reports whether two rects share interior area.
// Rects that only touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.Left < o.Right() && o.Left < r.Right() &&
		r.Top < o.Bottom() && o.Top < r.Bottom()
}

// CheckBound reports independently whether the rect's horizontal and
// vertical extents lie within the field [0,width]x[0,height].
func CheckBound(r Rect, width, height float64) (horizontal, vertical bool) {
	horizontal = r.Left >= 0 && r.Right() <= width
	vertical = r.Top >= 0 && r.Bottom() <= height
	return horizontal, vertical
}

// InBounds reports whether the rect lies entirely within the field.
func InBounds(r Rect, width, height float64) bool {
	h, v := CheckBound(r, width, height)
	return h && v
}

// Orientation returns the unit vector pointing from (x1,y1) to (x2,y2).
// ok is false when the points coincide and no direction exists.
func Orientation(x1, y1, x2, y2 float64) (dx, dy float64, ok bool) {
	vx := x2 - x1
	vy := y2 - y1
	norm := math.Hypot(vx, vy)
	if norm == 0 {
		return 0, 0, false
	}
	return vx / norm, vy / norm, true
}

// RotatedBounds returns the size of the axis-aligned box enclosing a
// w x h rectangle rotated by angle radians.
func RotatedBounds(w, h, angle float64) (float64, float64) {
	c := math.Abs(math.Cos(angle))
	s := math.Abs(math.Sin(angle))
	return w*c + h*s, w*s + h*c
}
