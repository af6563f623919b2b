// Package world holds the state of a single game session and advances it
// one frame at a time.
package world

import (
	"math/rand"

	"github.com/tomz197/kokaton/internal/loop/config"
	"github.com/tomz197/kokaton/internal/object"
	"github.com/tomz197/kokaton/internal/physics"
)

// Player start position.
const (
	PlayerStartX = 900
	PlayerStartY = 400
)

// Event is something noteworthy that happened during a frame. Clients
// use events for sound effects and logging.
type Event int

const (
	EventShot Event = iota
	EventEnemyDestroyed
	EventBombDestroyed
	EventShieldBlocked
	EventShieldUp
	EventGravity
	EventEMP
	EventGameOver
)

func (e Event) String() string {
	switch e {
	case EventShot:
		return "shot"
	case EventEnemyDestroyed:
		return "enemy destroyed"
	case EventBombDestroyed:
		return "bomb destroyed"
	case EventShieldBlocked:
		return "shield blocked"
	case EventShieldUp:
		return "shield up"
	case EventGravity:
		return "gravity"
	case EventEMP:
		return "emp"
	case EventGameOver:
		return "game over"
	}
	return "unknown"
}

// World holds the game state of one session: the player, every other
// object on the field, the score and the frame counter.
type World struct {
	Objects []object.Object // Everything except the player
	toSpawn []object.Object // Objects to add after current update cycle
	Player  *object.Player
	Field   object.Field
	Tuning  config.Tuning

	Score int
	Tick  int
	Over  bool // Player hit by an active bomb

	rng    *rand.Rand
	shield *object.Shield // Active shield, nil when none
	events []Event

	// Reusable caches for collision detection (avoids allocations)
	projectileCache []*object.Projectile
	enemyCache      []*object.Enemy
	bombCache       []*object.Bomb
	gravityCache    []*object.GravityField

	// Spatial grid for broad-phase projectile lookups (reused each frame)
	projectileGrid *physics.SpatialGrid
}

// collisionGridCellSize is the cell size for the projectile grid.
const collisionGridCellSize = 100.0

// New creates a world with the player at its start position and an
// enemy spawner. seed drives every random choice in the session.
func New(tuning config.Tuning, seed int64) *World {
	field := object.DefaultField()
	w := &World{
		Player: object.NewPlayer(PlayerStartX, PlayerStartY, tuning.PlayerSpeed, tuning.BoostFactor),
		Field:  field,
		Tuning: tuning,
		rng:    rand.New(rand.NewSource(seed)),

		projectileGrid: physics.NewSpatialGrid(field.Width, field.Height, collisionGridCellSize),
	}
	w.AddObject(object.NewEnemySpawner(tuning.EnemySpawnInterval))
	return w
}

// AddObject adds an object to the world immediately.
func (w *World) AddObject(obj object.Object) {
	w.Objects = append(w.Objects, obj)
}

// Spawn queues an object to be added after the current update cycle.
// Implements object.Spawner interface.
func (w *World) Spawn(obj object.Object) {
	if _, ok := obj.(*object.Projectile); ok {
		w.emit(EventShot)
	}
	w.toSpawn = append(w.toSpawn, obj)
}

// FlushSpawned adds all queued objects to the game and clears the queue.
// Projectiles and bombs that start outside the field never join.
func (w *World) FlushSpawned() {
	for _, obj := range w.toSpawn {
		switch obj.(type) {
		case *object.Projectile, *object.Bomb:
			if !w.Field.Contains(obj.(object.Collider).Bounds()) {
				continue
			}
		}
		w.Objects = append(w.Objects, obj)
	}
	clear(w.toSpawn)
	w.toSpawn = w.toSpawn[:0]
}

// Events returns what happened during the last Step. The slice is reused
// by the next Step.
func (w *World) Events() []Event {
	return w.events
}

func (w *World) emit(e Event) {
	w.events = append(w.events, e)
}

// ShieldActive reports whether a shield is currently up.
func (w *World) ShieldActive() bool {
	return w.shield != nil && w.shield.Life > 0
}

func (w *World) updateContext(in object.Input) object.UpdateContext {
	return object.UpdateContext{
		Tick:    w.Tick,
		Input:   in,
		Field:   w.Field,
		Spawner: w,
		Player:  w.Player,
		Rand:    w.rng,
		Tuning:  &w.Tuning,
	}
}

// Step advances the world by one frame: abilities requested by in are
// activated, every object moves, new objects join, collisions resolve
// and the frame counter increments. A finished world does not change.
func (w *World) Step(in object.Input) {
	w.events = w.events[:0]
	if w.Over {
		return
	}

	w.activateRequested(in)

	ctx := w.updateContext(in)
	w.Player.Update(ctx)
	if w.shield != nil {
		w.shield.Follow(w.Player)
	}

	kept := w.Objects[:0]
	for _, obj := range w.Objects {
		remove, _ := obj.Update(ctx)
		if !remove {
			kept = append(kept, obj)
			continue
		}
		if obj == w.shield {
			w.shield = nil
		}
		object.ReleaseObject(obj)
	}
	clear(w.Objects[len(kept):])
	w.Objects = kept
	w.FlushSpawned()

	w.checkCollisions()
	w.sweepDestroyed()

	w.Tick++
}

// activateRequested activates each ability pressed this frame. Presses
// that cannot be paid for are ignored.
func (w *World) activateRequested(in object.Input) {
	for i := 0; i < in.Shield; i++ {
		_ = w.Activate(AbilityShield)
	}
	for i := 0; i < in.Gravity; i++ {
		_ = w.Activate(AbilityGravity)
	}
	for i := 0; i < in.EMP; i++ {
		_ = w.Activate(AbilityEMP)
	}
}

// sweepDestroyed removes objects consumed by collisions this frame.
func (w *World) sweepDestroyed() {
	kept := w.Objects[:0]
	for _, obj := range w.Objects {
		if d, ok := obj.(object.Destructible); ok && d.IsDestroyed() {
			object.ReleaseObject(obj)
			continue
		}
		kept = append(kept, obj)
	}
	clear(w.Objects[len(kept):])
	w.Objects = kept
}

// Counts returns the number of live enemies, bombs and projectiles.
func (w *World) Counts() (enemies, bombs, projectiles int) {
	for _, obj := range w.Objects {
		switch obj.(type) {
		case *object.Enemy:
			enemies++
		case *object.Bomb:
			bombs++
		case *object.Projectile:
			projectiles++
		}
	}
	return enemies, bombs, projectiles
}

// Draw renders every object, with field-wide overlays first and the
// player on top.
func (w *World) Draw(ctx object.DrawContext) error {
	for _, obj := range w.Objects {
		if _, ok := obj.(*object.GravityField); ok {
			if err := obj.Draw(ctx); err != nil {
				return err
			}
		}
	}
	for _, obj := range w.Objects {
		if _, ok := obj.(*object.GravityField); ok {
			continue
		}
		if err := obj.Draw(ctx); err != nil {
			return err
		}
	}
	return w.Player.Draw(ctx)
}
