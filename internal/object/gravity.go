package object

import (
	"github.com/tomz197/kokaton/internal/draw"
	"github.com/tomz197/kokaton/internal/physics"
)

// GravityField darkens the whole field and crushes every bomb and enemy
// inside it while it lasts.
type GravityField struct {
	Area physics.Rect
	Life int // Frames remaining
}

// NewGravityField creates a field covering f.
func NewGravityField(f Field, life int) *GravityField {
	return &GravityField{
		Area: physics.Rect{Width: f.Width, Height: f.Height},
		Life: life,
	}
}

// Bounds returns the area the field affects.
func (g *GravityField) Bounds() physics.Rect {
	return g.Area
}

// Active reports whether the field still has lifetime left.
func (g *GravityField) Active() bool {
	return g.Life > 0
}

// Update counts down the lifetime.
func (g *GravityField) Update(_ UpdateContext) (bool, error) {
	g.Life--
	return g.Life <= 0, nil
}

// Draw dims the field with a stippled overlay.
func (g *GravityField) Draw(ctx DrawContext) error {
	ctx.Canvas.SetColor(draw.ColorGray)
	ctx.Canvas.Stipple(4)
	return nil
}
