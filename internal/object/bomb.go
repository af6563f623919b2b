package object

import (
	"math/rand"

	"github.com/tomz197/kokaton/internal/draw"
	"github.com/tomz197/kokaton/internal/physics"
)

// bombColors are the colours a bomb may be painted in.
var bombColors = [...]draw.Color{
	draw.ColorRed,
	draw.ColorGreen,
	draw.ColorBlue,
	draw.ColorYellow,
	draw.ColorMagenta,
	draw.ColorCyan,
}

// Bomb is a projectile dropped by an enemy toward the player's position
// at the moment of release.
type Bomb struct {
	X, Y   float64 // Position (center)
	DX, DY float64 // Unit direction, fixed at spawn
	Speed  float64
	Radius float64
	Color  draw.Color

	// Active bombs end the game on contact. EMP deactivates them.
	Active bool

	destroyed bool
}

// NewBomb releases a bomb from the bottom edge of e aimed at p.
func NewBomb(e *Enemy, p *Player, rng *rand.Rand, speed float64, radiusMin, radiusMax int) *Bomb {
	dx, dy, ok := physics.Orientation(e.X, e.Y, p.X, p.Y)
	if !ok {
		dx, dy = 0, 1
	}

	b := &Bomb{
		X:      e.X,
		Y:      e.Y + e.Height/2,
		DX:     dx,
		DY:     dy,
		Speed:  speed,
		Radius: float64(radiusMin),
		Color:  bombColors[0],
		Active: true,
	}
	if rng != nil {
		b.Radius = float64(randRange(rng, radiusMin, radiusMax))
		b.Color = bombColors[rng.Intn(len(bombColors))]
	}
	return b
}

// Deactivate makes the bomb harmless and halves its speed. Repeated calls
// have no further effect.
func (b *Bomb) Deactivate() {
	if !b.Active {
		return
	}
	b.Active = false
	b.Speed /= 2
}

// Bounds returns the bomb's bounding box.
func (b *Bomb) Bounds() physics.Rect {
	return physics.RectFromCenter(b.X, b.Y, 2*b.Radius, 2*b.Radius)
}

// MarkDestroyed marks the bomb for removal.
func (b *Bomb) MarkDestroyed() {
	b.destroyed = true
}

// IsDestroyed returns true if the bomb is marked for destruction.
func (b *Bomb) IsDestroyed() bool {
	return b.destroyed
}

// Update moves the bomb along its direction and removes it once it
// leaves the field.
func (b *Bomb) Update(ctx UpdateContext) (bool, error) {
	if b.destroyed {
		return true, nil
	}

	b.X += b.DX * b.Speed
	b.Y += b.DY * b.Speed

	if !ctx.Field.Contains(b.Bounds()) {
		b.destroyed = true
		return true, nil
	}
	return false, nil
}

// Draw renders the bomb as a filled circle; inactive bombs are hollow.
func (b *Bomb) Draw(ctx DrawContext) error {
	if b.Active {
		ctx.Canvas.SetColor(b.Color)
		ctx.Canvas.DrawCircle(b.X, b.Y, b.Radius, true)
		return nil
	}
	ctx.Canvas.SetColor(draw.ColorGray)
	ctx.Canvas.DrawCircle(b.X, b.Y, b.Radius, false)
	return nil
}
