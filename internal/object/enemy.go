package object

import (
	"math/rand"

	"github.com/tomz197/kokaton/internal/draw"
	"github.com/tomz197/kokaton/internal/physics"
)

// EnemyState is the enemy's position in its descend-then-halt lifecycle.
type EnemyState int

const (
	EnemyDescending EnemyState = iota
	EnemyHalted
)

func (s EnemyState) String() string {
	if s == EnemyHalted {
		return "halted"
	}
	return "descending"
}

// Enemy bounding box.
const (
	EnemyWidth  = 64.0
	EnemyHeight = 48.0
)

// enemyVariants is the number of distinct alien outlines.
const enemyVariants = 3

// Enemy is an alien that descends to its halt line and then drops bombs.
type Enemy struct {
	X, Y          float64 // Position (center)
	Width, Height float64
	VY            float64 // Vertical velocity per frame

	HaltLine float64 // Center y past which the enemy stops
	Interval int     // Frames between bomb drops once halted
	Disabled bool    // Set by EMP; no more bombs
	Variant  int

	state     EnemyState
	destroyed bool
}

// NewEnemy creates a descending enemy centred at (x, y).
func NewEnemy(x, y, speed, haltLine float64, interval int) *Enemy {
	return &Enemy{
		X:        x,
		Y:        y,
		Width:    EnemyWidth,
		Height:   EnemyHeight,
		VY:       speed,
		HaltLine: haltLine,
		Interval: interval,
	}
}

// SpawnEnemy creates an enemy at the top edge with randomized x, halt
// line, bomb interval and outline.
func SpawnEnemy(rng *rand.Rand, field Field, speed float64, haltMin, intervalMin, intervalMax int) *Enemy {
	minX := EnemyWidth / 2
	maxX := field.Width - EnemyWidth/2
	x := minX + rng.Float64()*(maxX-minX)

	haltMax := int(field.Height) / 2
	halt := randRange(rng, haltMin, haltMax)
	interval := randRange(rng, intervalMin, intervalMax)

	e := NewEnemy(x, 0, speed, float64(halt), interval)
	e.Variant = rng.Intn(enemyVariants)
	return e
}

// State returns the current lifecycle state.
func (e *Enemy) State() EnemyState {
	return e.state
}

// Disable stops the enemy from dropping further bombs.
func (e *Enemy) Disable() {
	e.Disabled = true
}

// CanDropBomb reports whether the enemy drops a bomb on frame tick.
func (e *Enemy) CanDropBomb(tick int) bool {
	return e.state == EnemyHalted && !e.Disabled && e.Interval > 0 && tick%e.Interval == 0
}

// Bounds returns the enemy's bounding box.
func (e *Enemy) Bounds() physics.Rect {
	return physics.RectFromCenter(e.X, e.Y, e.Width, e.Height)
}

// MarkDestroyed marks the enemy for removal (implements Destructible).
func (e *Enemy) MarkDestroyed() {
	e.destroyed = true
}

// IsDestroyed returns true if the enemy is marked for destruction (implements Destructible).
func (e *Enemy) IsDestroyed() bool {
	return e.destroyed
}

// Update drops a bomb when due, then descends. The enemy halts the first
// time its centre passes the halt line and never moves again.
func (e *Enemy) Update(ctx UpdateContext) (bool, error) {
	if e.destroyed {
		return true, nil
	}

	if e.CanDropBomb(ctx.Tick) && ctx.Spawner != nil && ctx.Player != nil && ctx.Tuning != nil {
		ctx.Spawner.Spawn(NewBomb(e, ctx.Player, ctx.Rand, ctx.Tuning.BombSpeed, ctx.Tuning.BombRadiusMin, ctx.Tuning.BombRadiusMax))
	}

	e.Y += e.VY
	if e.state == EnemyDescending && e.Y > e.HaltLine {
		e.VY = 0
		e.state = EnemyHalted
	}

	return false, nil
}

// Draw renders the alien outline for the enemy's variant.
func (e *Enemy) Draw(ctx DrawContext) error {
	outline := alienOutlines[e.Variant%enemyVariants]
	points := ctx.Canvas.BorrowPoints(len(outline))
	for i, pt := range outline {
		points[i] = draw.Point{X: e.X + pt.X, Y: e.Y + pt.Y}
	}

	color := draw.ColorGreen
	if e.Disabled {
		color = draw.ColorGray
	}
	ctx.Canvas.SetColor(color)
	ctx.Canvas.DrawPolygon(points, true)

	// Eyes
	ctx.Canvas.SetColor(draw.ColorRed)
	ctx.Canvas.DrawRect(e.X-14, e.Y-6, 6, 6, true)
	ctx.Canvas.DrawRect(e.X+8, e.Y-6, 6, 6, true)
	return nil
}

// Alien outlines, centred on the origin and fitting the enemy box.
var alienOutlines = [enemyVariants][]draw.Point{
	// Saucer
	{
		{X: -12, Y: -24}, {X: 12, Y: -24}, {X: 20, Y: -8}, {X: 32, Y: 0},
		{X: 32, Y: 8}, {X: 16, Y: 16}, {X: -16, Y: 16}, {X: -32, Y: 8},
		{X: -32, Y: 0}, {X: -20, Y: -8},
	},
	// Squid
	{
		{X: 0, Y: -24}, {X: 20, Y: -10}, {X: 24, Y: 8}, {X: 28, Y: 24},
		{X: 12, Y: 12}, {X: 0, Y: 24}, {X: -12, Y: 12}, {X: -28, Y: 24},
		{X: -24, Y: 8}, {X: -20, Y: -10},
	},
	// Crab
	{
		{X: -20, Y: -24}, {X: -12, Y: -14}, {X: 12, Y: -14}, {X: 20, Y: -24},
		{X: 30, Y: -4}, {X: 32, Y: 16}, {X: 20, Y: 8}, {X: 14, Y: 24},
		{X: -14, Y: 24}, {X: -20, Y: 8}, {X: -32, Y: 16}, {X: -30, Y: -4},
	},
}

// randRange returns a uniform integer in [lo, hi]. hi < lo yields lo.
func randRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
