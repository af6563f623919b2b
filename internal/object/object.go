package object

import (
	"math/rand"

	"github.com/tomz197/kokaton/internal/draw"
	"github.com/tomz197/kokaton/internal/input"
	"github.com/tomz197/kokaton/internal/loop/config"
	"github.com/tomz197/kokaton/internal/physics"
)

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// Input is an alias for the input package's Input type.
type Input = input.Input

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Tick    int // Frame counter, starting at 0
	Input   Input
	Field   Field
	Spawner Spawner
	Player  *Player // Bomb target and shield anchor
	Rand    *rand.Rand
	Tuning  *config.Tuning
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas      // High-resolution canvas (2x vertical)
	Writer *draw.ChunkWriter // Text overlays, positioned relative to the render area
	Tick   int
}

// Field is the logical playfield. Origin is the top-left corner, y grows down.
type Field struct {
	Width  float64
	Height float64
}

// DefaultField returns the standard playfield.
func DefaultField() Field {
	return Field{Width: config.FieldWidth, Height: config.FieldHeight}
}

// Contains reports whether r lies entirely inside the field.
func (f Field) Contains(r physics.Rect) bool {
	return physics.InBounds(r, f.Width, f.Height)
}

// Object is a drawable and updatable game entity.
type Object interface {
	// Update updates the object state. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// Draw draws the object. Use ctx.Canvas for shapes, ctx.Writer for text.
	Draw(ctx DrawContext) error
}

// Collider is implemented by objects that take part in collision checks.
type Collider interface {
	Bounds() physics.Rect
}

// Destructible is implemented by objects that can be destroyed/marked for removal.
type Destructible interface {
	// MarkDestroyed marks the object for removal on next update cycle.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for destruction.
	IsDestroyed() bool
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}

// ShouldRenderBlink returns true if an object with remaining lifetime
// should be rendered this frame. Objects blink every period frames once
// fewer than warn frames remain.
func ShouldRenderBlink(remaining, warn, period int) bool {
	if remaining > warn || period <= 0 {
		return true
	}
	return (remaining/period)%2 == 0
}
