package object

import (
	"math"

	"github.com/tomz197/kokaton/internal/draw"
)

// Direction is one of the eight compass directions the player can face.
type Direction int

const (
	East Direction = iota
	NorthEast
	North
	NorthWest
	West
	SouthWest
	South
	SouthEast

	directionCount
)

var directionVectors = [directionCount][2]int{
	East:      {+1, 0},
	NorthEast: {+1, -1},
	North:     {0, -1},
	NorthWest: {-1, -1},
	West:      {-1, 0},
	SouthWest: {-1, +1},
	South:     {0, +1},
	SouthEast: {+1, +1},
}

// DirectionFromVector maps a movement vector to a direction.
// Only the signs of dx and dy matter. ok is false for the zero vector.
func DirectionFromVector(dx, dy int) (d Direction, ok bool) {
	sx, sy := sign(dx), sign(dy)
	for i, v := range directionVectors {
		if v[0] == sx && v[1] == sy {
			return Direction(i), true
		}
	}
	return East, false
}

// Vector returns the unit-step screen vector (y grows down).
func (d Direction) Vector() (dx, dy int) {
	v := directionVectors[d]
	return v[0], v[1]
}

// Angle returns the direction in degrees, counter-clockwise from east.
func (d Direction) Angle() float64 {
	dx, dy := d.Vector()
	return math.Atan2(float64(-dy), float64(dx)) * 180 / math.Pi
}

// Sprite returns the pre-computed bird outline for d, centred on the origin.
func (d Direction) Sprite() Sprite {
	return birdSprites[d]
}

func (d Direction) String() string {
	switch d {
	case East:
		return "E"
	case NorthEast:
		return "NE"
	case North:
		return "N"
	case NorthWest:
		return "NW"
	case West:
		return "W"
	case SouthWest:
		return "SW"
	case South:
		return "S"
	case SouthEast:
		return "SE"
	}
	return "?"
}

// Sprite is a vector outline relative to an object's centre.
type Sprite struct {
	Body []draw.Point
	Eye  draw.Point
}

// birdOutline faces east; other directions are rotations of it.
var birdOutline = []draw.Point{
	{X: 30, Y: -6},   // beak tip
	{X: 18, Y: -20},  // crown
	{X: -6, Y: -16},  // back
	{X: -30, Y: -22}, // tail top
	{X: -24, Y: 0},   // tail bottom
	{X: -8, Y: 20},   // belly
	{X: 14, Y: 14},   // chest
	{X: 22, Y: 0},    // beak base
}

var birdEye = draw.Point{X: 12, Y: -10}

var birdSprites = buildBirdSprites()

// buildBirdSprites rotates the outline into each direction. West-facing
// sprites are mirrored first so the bird never flies upside down.
func buildBirdSprites() [directionCount]Sprite {
	var table [directionCount]Sprite
	for d := Direction(0); d < directionCount; d++ {
		angle := d.Angle()
		dx, _ := d.Vector()
		mirror := dx < 0
		if mirror {
			angle -= 180
		}
		rad := angle * math.Pi / 180

		body := make([]draw.Point, len(birdOutline))
		for i, p := range birdOutline {
			body[i] = rotatePoint(p, rad, mirror)
		}
		table[d] = Sprite{Body: body, Eye: rotatePoint(birdEye, rad, mirror)}
	}
	return table
}

// rotatePoint turns p counter-clockwise (as seen on screen) by rad.
func rotatePoint(p draw.Point, rad float64, mirror bool) draw.Point {
	x, y := p.X, p.Y
	if mirror {
		x = -x
	}
	sin, cos := math.Sincos(rad)
	return draw.Point{
		X: x*cos + y*sin,
		Y: -x*sin + y*cos,
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
