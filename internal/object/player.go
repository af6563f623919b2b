package object

import (
	"github.com/tomz197/kokaton/internal/draw"
	"github.com/tomz197/kokaton/internal/physics"
)

// Pose selects how the player bird is drawn.
type Pose int

const (
	PoseNormal  Pose = iota
	PoseVictory      // Brief flash after destroying an enemy
	PoseDefeat       // Hit by a bomb; permanent
)

// Player bounding box.
const (
	PlayerWidth  = 60.0
	PlayerHeight = 50.0
)

// Player is the bird controlled by the user.
type Player struct {
	X, Y          float64 // Position (center)
	Width, Height float64
	Facing        Direction

	Speed       float64 // Pixels per frame
	BoostFactor float64 // Speed multiplier while boost is held

	pose       Pose
	poseFrames int // Frames until the victory flash ends
}

// NewPlayer creates a bird at (x, y) facing east.
func NewPlayer(x, y, speed, boost float64) *Player {
	return &Player{
		X:           x,
		Y:           y,
		Width:       PlayerWidth,
		Height:      PlayerHeight,
		Facing:      East,
		Speed:       speed,
		BoostFactor: boost,
	}
}

// Bounds returns the bird's bounding box.
func (p *Player) Bounds() physics.Rect {
	return physics.RectFromCenter(p.X, p.Y, p.Width, p.Height)
}

// Pose returns the current pose.
func (p *Player) Pose() Pose {
	return p.pose
}

// Celebrate switches to the victory pose for frames updates.
// It has no effect once the player is defeated.
func (p *Player) Celebrate(frames int) {
	if p.pose == PoseDefeat {
		return
	}
	p.pose = PoseVictory
	p.poseFrames = frames
}

// Defeat switches to the defeat pose permanently.
func (p *Player) Defeat() {
	p.pose = PoseDefeat
	p.poseFrames = 0
}

// Move attempts a step along (dx, dy) unit steps and reverts it when the
// bird would leave the field. A nonzero vector becomes the facing direction.
// Returns whether the bird moved.
func (p *Player) Move(dx, dy int, boost bool, field Field) bool {
	speed := p.Speed
	if boost {
		speed *= p.BoostFactor
	}
	stepX := speed * float64(dx)
	stepY := speed * float64(dy)

	p.X += stepX
	p.Y += stepY
	moved := true
	if !field.Contains(p.Bounds()) {
		p.X -= stepX
		p.Y -= stepY
		moved = false
	}

	if d, ok := DirectionFromVector(dx, dy); ok {
		p.Facing = d
	}
	return moved && (dx != 0 || dy != 0)
}

// Fire spawns a single beam along the facing direction.
func (p *Player) Fire(spawner Spawner, speed float64) {
	spawner.Spawn(NewProjectile(p, p.Facing.Angle(), speed))
}

// FireSpread spawns n beams fanned over arc degrees around the facing direction.
func (p *Player) FireSpread(spawner Spawner, speed float64, n, arc int) {
	for _, angle := range SpreadAngles(p.Facing.Angle(), n, arc) {
		spawner.Spawn(NewProjectile(p, angle, speed))
	}
}

// Update handles movement and shooting for the frame's input.
func (p *Player) Update(ctx UpdateContext) (bool, error) {
	if p.pose == PoseDefeat {
		return false, nil
	}

	if p.pose == PoseVictory {
		p.poseFrames--
		if p.poseFrames <= 0 {
			p.pose = PoseNormal
		}
	}

	in := ctx.Input
	dx, dy := 0, 0
	if in.Up {
		dy--
	}
	if in.Down {
		dy++
	}
	if in.Left {
		dx--
	}
	if in.Right {
		dx++
	}
	p.Move(dx, dy, in.Boost, ctx.Field)

	if ctx.Spawner == nil || ctx.Tuning == nil {
		return false, nil
	}

	t := ctx.Tuning
	spreads := in.Spread
	singles := in.Fire
	// Space with the boost modifier held fires the spread instead
	if in.Boost {
		spreads += singles
		singles = 0
	}
	for i := 0; i < singles; i++ {
		p.Fire(ctx.Spawner, t.ProjectileSpeed)
	}
	for i := 0; i < spreads; i++ {
		p.FireSpread(ctx.Spawner, t.ProjectileSpeed, t.SpreadCount, t.SpreadArc)
	}

	return false, nil
}

// Draw renders the bird sprite for the current facing direction.
func (p *Player) Draw(ctx DrawContext) error {
	sprite := p.Facing.Sprite()
	points := ctx.Canvas.BorrowPoints(len(sprite.Body))
	for i, pt := range sprite.Body {
		points[i] = draw.Point{X: p.X + pt.X, Y: p.Y + pt.Y}
	}

	switch p.pose {
	case PoseVictory:
		ctx.Canvas.SetColor(draw.ColorBrightYellow)
		ctx.Canvas.DrawPolygon(points, true)
		ctx.Canvas.SetColor(draw.ColorWhite)
		ctx.Canvas.DrawCircle(p.X, p.Y, p.Width*0.7, false)
	case PoseDefeat:
		ctx.Canvas.SetColor(draw.ColorGray)
		ctx.Canvas.DrawPolygon(points, true)
		ctx.Canvas.SetColor(draw.ColorRed)
		ex, ey := p.X+sprite.Eye.X, p.Y+sprite.Eye.Y
		ctx.Canvas.DrawLine(draw.Point{X: ex - 4, Y: ey - 4}, draw.Point{X: ex + 4, Y: ey + 4})
		ctx.Canvas.DrawLine(draw.Point{X: ex - 4, Y: ey + 4}, draw.Point{X: ex + 4, Y: ey - 4})
		return nil
	default:
		ctx.Canvas.SetColor(draw.ColorYellow)
		ctx.Canvas.DrawPolygon(points, true)
	}

	ctx.Canvas.SetColor(draw.ColorBlue)
	ctx.Canvas.DrawCircle(p.X+sprite.Eye.X, p.Y+sprite.Eye.Y, 3, true)
	return nil
}
