package object

import (
	"math"

	"github.com/tomz197/kokaton/internal/draw"
	"github.com/tomz197/kokaton/internal/physics"
)

// Projectile is a beam fired by the player.
type Projectile struct {
	X, Y      float64 // Position (center)
	VX, VY    float64 // Velocity per frame
	Angle     float64 // Firing angle in degrees, counter-clockwise from east
	destroyed bool    // Marked for destruction
}

// Beam dimensions before rotation.
const (
	ProjectileLength = 24.0
	ProjectileWidth  = 6.0
)

// NewProjectile creates a beam fired from p at angle degrees. The beam
// starts one player-size away from the player's centre in the firing
// direction.
func NewProjectile(p *Player, angle, speed float64) *Projectile {
	rad := angle * math.Pi / 180
	dirX := math.Cos(rad)
	dirY := -math.Sin(rad) // screen y grows down

	return &Projectile{
		X:     p.X + p.Width*dirX,
		Y:     p.Y + p.Height*dirY,
		VX:    dirX * speed,
		VY:    dirY * speed,
		Angle: angle,
	}
}

// SpreadAngles returns n angles fanned over arc degrees around base.
// The step is truncated to whole degrees.
func SpreadAngles(base float64, n, arc int) []float64 {
	if n <= 1 {
		return []float64{base}
	}
	step := arc / (n - 1)
	angles := make([]float64, n)
	for i := range angles {
		angles[i] = base - float64(arc)/2 + float64(step*i)
	}
	return angles
}

// MarkDestroyed marks the projectile for removal.
func (p *Projectile) MarkDestroyed() {
	p.destroyed = true
}

// IsDestroyed returns true if the projectile is marked for destruction.
func (p *Projectile) IsDestroyed() bool {
	return p.destroyed
}

// Bounds returns the beam's axis-aligned bounding box.
func (p *Projectile) Bounds() physics.Rect {
	w, h := physics.RotatedBounds(ProjectileLength, ProjectileWidth, p.Angle*math.Pi/180)
	return physics.RectFromCenter(p.X, p.Y, w, h)
}

// Update moves the projectile and removes it once it leaves the field.
func (p *Projectile) Update(ctx UpdateContext) (bool, error) {
	if p.destroyed {
		return true, nil
	}

	p.X += p.VX
	p.Y += p.VY

	if !ctx.Field.Contains(p.Bounds()) {
		p.destroyed = true
		return true, nil
	}
	return false, nil
}

// Draw renders the projectile as a short line along its heading.
func (p *Projectile) Draw(ctx DrawContext) error {
	rad := p.Angle * math.Pi / 180
	hx := math.Cos(rad) * ProjectileLength / 2
	hy := -math.Sin(rad) * ProjectileLength / 2

	ctx.Canvas.SetColor(draw.ColorBrightCyan)
	ctx.Canvas.DrawLine(
		draw.Point{X: p.X - hx, Y: p.Y - hy},
		draw.Point{X: p.X + hx, Y: p.Y + hy},
	)
	return nil
}
