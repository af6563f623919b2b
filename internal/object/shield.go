package object

import (
	"math"

	"github.com/tomz197/kokaton/internal/draw"
	"github.com/tomz197/kokaton/internal/physics"
)

// Shield wall dimensions before rotation.
const (
	ShieldThickness = 20.0
	ShieldSpan      = 2 * PlayerHeight
)

// Shield is a barrier held in front of the player that absorbs bombs.
type Shield struct {
	X, Y   float64 // Position (center)
	Angle  float64 // Degrees; the wall faces this way
	Life   int     // Frames remaining
	offX   float64 // Offset from the player's centre, fixed at creation
	offY   float64
	width  float64 // Rotated bounding box
	height float64
}

// NewShield places a shield in front of p, oriented along its facing
// direction.
func NewShield(p *Player, life int) *Shield {
	angle := p.Facing.Angle()
	rad := angle * math.Pi / 180
	w, h := physics.RotatedBounds(ShieldThickness, ShieldSpan, rad)

	s := &Shield{
		Angle:  angle,
		Life:   life,
		offX:   p.Width * math.Cos(rad),
		offY:   -p.Height * math.Sin(rad),
		width:  w,
		height: h,
	}
	s.Follow(p)
	return s
}

// Follow moves the shield to its fixed offset from p.
func (s *Shield) Follow(p *Player) {
	s.X = p.X + s.offX
	s.Y = p.Y + s.offY
}

// Bounds returns the shield's bounding box.
func (s *Shield) Bounds() physics.Rect {
	return physics.RectFromCenter(s.X, s.Y, s.width, s.height)
}

// Update keeps the shield in front of the player and counts down its life.
func (s *Shield) Update(ctx UpdateContext) (bool, error) {
	if ctx.Player != nil {
		s.Follow(ctx.Player)
	}
	s.Life--
	return s.Life <= 0, nil
}

// Draw renders the wall as a rotated rectangle. It blinks shortly
// before expiring.
func (s *Shield) Draw(ctx DrawContext) error {
	if !ShouldRenderBlink(s.Life, 50, 5) {
		return nil
	}

	rad := s.Angle * math.Pi / 180
	// Half extents along the facing direction and across it
	ax, ay := math.Cos(rad)*ShieldThickness/2, -math.Sin(rad)*ShieldThickness/2
	bx, by := math.Sin(rad)*ShieldSpan/2, math.Cos(rad)*ShieldSpan/2

	points := ctx.Canvas.BorrowPoints(4)
	points[0] = draw.Point{X: s.X + ax + bx, Y: s.Y + ay + by}
	points[1] = draw.Point{X: s.X + ax - bx, Y: s.Y + ay - by}
	points[2] = draw.Point{X: s.X - ax - bx, Y: s.Y - ay - by}
	points[3] = draw.Point{X: s.X - ax + bx, Y: s.Y - ay + by}

	ctx.Canvas.SetColor(draw.ColorBlue)
	ctx.Canvas.DrawPolygon(points, true)
	return nil
}
