package physics

import "math"

// SpatialGrid is a uniform grid for broad-phase collision detection on a
// bounded field. Items are inserted by bounding box and index, then every
// item whose cells intersect a query rect can be visited without scanning
// the whole set.
//
// An item spanning several cells is stored in each of them; queries visit
// every item at most once.
type SpatialGrid struct {
	cellSize    float64
	invCellSize float64 // 1 / cellSize (precomputed to avoid division)
	cols        int
	rows        int
	cells       []gridCell

	// Per-item visit stamps for deduplicating multi-cell items in queries
	stamps []uint32
	stamp  uint32
}

// gridCell stores the indices of objects that fall within a grid cell.
// The slice is reused between frames (reset to [:0]) to avoid allocations.
type gridCell struct {
	items []int
}

// NewSpatialGrid creates a spatial grid covering the given field dimensions.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	cols := int(math.Ceil(width / cellSize))
	rows := int(math.Ceil(height / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	cells := make([]gridCell, cols*rows)
	return &SpatialGrid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       cells,
	}
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert adds an item (identified by index) to every cell its rect covers.
// Rects reaching outside the field are clamped to the border cells.
func (g *SpatialGrid) Insert(r Rect, index int) {
	if index >= len(g.stamps) {
		grown := make([]uint32, index+1, 2*(index+1))
		copy(grown, g.stamps)
		g.stamps = grown
	}

	c0, r0 := g.posToCell(r.Left, r.Top)
	c1, r1 := g.posToCell(r.Right(), r.Bottom())
	for row := r0; row <= r1; row++ {
		rowOffset := row * g.cols
		for col := c0; col <= c1; col++ {
			cell := &g.cells[rowOffset+col]
			cell.items = append(cell.items, index)
		}
	}
}

// QueryRect calls fn once for each item stored in the cells overlapped by r.
// Candidates are not filtered by exact overlap; fn does the narrow phase.
// If fn returns true, iteration stops early (useful for "find first" queries).
func (g *SpatialGrid) QueryRect(r Rect, fn func(index int) bool) {
	g.stamp++
	if g.stamp == 0 {
		// Counter wrapped, old stamps could collide with new ones
		clear(g.stamps)
		g.stamp = 1
	}

	c0, r0 := g.posToCell(r.Left, r.Top)
	c1, r1 := g.posToCell(r.Right(), r.Bottom())
	for row := r0; row <= r1; row++ {
		rowOffset := row * g.cols
		for col := c0; col <= c1; col++ {
			for _, itemIdx := range g.cells[rowOffset+col].items {
				if g.stamps[itemIdx] == g.stamp {
					continue
				}
				g.stamps[itemIdx] = g.stamp
				if fn(itemIdx) {
					return
				}
			}
		}
	}
}

// posToCell converts field coordinates to grid cell coordinates.
// Clamps to valid range to handle points outside the field.
func (g *SpatialGrid) posToCell(x, y float64) (col, row int) {
	col = int(math.Floor(x * g.invCellSize))
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}

	row = int(math.Floor(y * g.invCellSize))
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}
