package object

import (
	"math"
	"sync"

	"github.com/tomz197/kokaton/internal/draw"
)

// explosionPool is a sync.Pool for reusing Explosion objects to reduce allocations.
var explosionPool = sync.Pool{
	New: func() any {
		return &Explosion{}
	},
}

// explosionSpikes is the number of points on the explosion star.
const explosionSpikes = 8

// Explosion is a timed blast left where a bomb or enemy was destroyed.
type Explosion struct {
	X, Y   float64 // Position (center)
	Radius float64
	Life   int // Frames remaining
}

// NewExplosion creates an explosion from the pool centred at (x, y)
// lasting life frames.
func NewExplosion(x, y, radius float64, life int) *Explosion {
	e := explosionPool.Get().(*Explosion)
	e.X = x
	e.Y = y
	e.Radius = radius
	e.Life = life
	return e
}

// Release returns the explosion to the pool for reuse.
// Should be called when the explosion is removed from the game.
func (e *Explosion) Release() {
	explosionPool.Put(e)
}

// Frame returns which of the two alternating images to show.
func (e *Explosion) Frame() int {
	if e.Life < 0 {
		return 0
	}
	return (e.Life / 10) % 2
}

// Update counts down the lifetime. The explosion is removed once it
// drops below zero.
func (e *Explosion) Update(_ UpdateContext) (bool, error) {
	e.Life--
	return e.Life < 0, nil
}

// Draw renders an eight-point star, flipped on alternate frames.
func (e *Explosion) Draw(ctx DrawContext) error {
	inner := e.Radius * 0.45
	flip := 0.0
	color := draw.ColorYellow
	if e.Frame() == 1 {
		flip = math.Pi / explosionSpikes
		color = draw.ColorRed
	}

	points := ctx.Canvas.BorrowPoints(2 * explosionSpikes)
	for i := range points {
		r := e.Radius
		if i%2 == 1 {
			r = inner
		}
		a := flip + float64(i)*math.Pi/explosionSpikes
		points[i] = draw.Point{X: e.X + math.Cos(a)*r, Y: e.Y + math.Sin(a)*r}
	}

	ctx.Canvas.SetColor(color)
	ctx.Canvas.DrawPolygon(points, true)
	return nil
}
