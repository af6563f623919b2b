package object

import "github.com/tomz197/kokaton/internal/draw"

// EMP is the screen flash shown when an EMP goes off. The effect on
// enemies and bombs is applied once at activation.
type EMP struct {
	Life int // Frames remaining
}

// NewEMP creates a flash lasting life frames.
func NewEMP(life int) *EMP {
	return &EMP{Life: life}
}

// Update counts down the flash.
func (e *EMP) Update(_ UpdateContext) (bool, error) {
	e.Life--
	return e.Life <= 0, nil
}

// Draw flickers a yellow haze over the field on alternate frames.
func (e *EMP) Draw(ctx DrawContext) error {
	if e.Life%2 == 0 {
		return nil
	}
	ctx.Canvas.SetColor(draw.ColorBrightYellow)
	ctx.Canvas.Stipple(3)
	return nil
}
