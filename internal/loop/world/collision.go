package world

import (
	"github.com/tomz197/kokaton/internal/object"
	"github.com/tomz197/kokaton/internal/physics"
)

// Explosion sizes for destroyed enemies and bombs.
const (
	enemyExplosionRadius   = 50.0
	minBombExplosionRadius = 25.0
)

// collectCollidables extracts the collision participants from the object
// list. Uses pre-allocated slices to avoid allocations.
func (w *World) collectCollidables() {
	w.projectileCache = w.projectileCache[:0]
	w.enemyCache = w.enemyCache[:0]
	w.bombCache = w.bombCache[:0]
	w.gravityCache = w.gravityCache[:0]

	for _, obj := range w.Objects {
		switch o := obj.(type) {
		case *object.Projectile:
			w.projectileCache = append(w.projectileCache, o)
		case *object.Enemy:
			w.enemyCache = append(w.enemyCache, o)
		case *object.Bomb:
			w.bombCache = append(w.bombCache, o)
		case *object.GravityField:
			w.gravityCache = append(w.gravityCache, o)
		}
	}
}

// populateGrid clears and re-inserts all projectiles into the spatial grid.
func (w *World) populateGrid() {
	w.projectileGrid.Clear()
	for i, p := range w.projectileCache {
		w.projectileGrid.Insert(p.Bounds(), i)
	}
}

// consumeProjectiles destroys every live projectile overlapping r and
// reports whether there was any.
func (w *World) consumeProjectiles(r physics.Rect) bool {
	hit := false
	w.projectileGrid.QueryRect(r, func(i int) bool {
		p := w.projectileCache[i]
		if p.IsDestroyed() || !p.Bounds().Overlaps(r) {
			return false
		}
		p.MarkDestroyed()
		hit = true
		return false
	})
	return hit
}

func (w *World) explodeEnemy(e *object.Enemy, life int) {
	e.MarkDestroyed()
	w.Spawn(object.NewExplosion(e.X, e.Y, enemyExplosionRadius, life))
	w.emit(EventEnemyDestroyed)
}

func (w *World) explodeBomb(b *object.Bomb) {
	b.MarkDestroyed()
	radius := max(b.Radius*1.5, minBombExplosionRadius)
	w.Spawn(object.NewExplosion(b.X, b.Y, radius, w.Tuning.ExplosionShort))
}

// checkCollisions resolves all collisions for the frame in a fixed order:
// beams against enemies, beams against bombs, the shield against bombs,
// gravity fields against bombs and enemies, and finally bombs against
// the player.
func (w *World) checkCollisions() {
	w.collectCollidables()
	w.populateGrid()

	// Projectile-enemy collisions
	for _, e := range w.enemyCache {
		if e.IsDestroyed() {
			continue
		}
		if w.consumeProjectiles(e.Bounds()) {
			w.explodeEnemy(e, w.Tuning.ExplosionLong)
			w.addScore(w.Tuning.ScoreEnemy)
			w.Player.Celebrate(w.Tuning.VictoryFrames)
		}
	}

	// Projectile-bomb collisions
	for _, b := range w.bombCache {
		if b.IsDestroyed() {
			continue
		}
		if w.consumeProjectiles(b.Bounds()) {
			w.explodeBomb(b)
			w.addScore(w.Tuning.ScoreBomb)
			w.emit(EventBombDestroyed)
		}
	}

	// Shield-bomb collisions
	if w.ShieldActive() {
		shield := w.shield.Bounds()
		for _, b := range w.bombCache {
			if b.IsDestroyed() || !b.Bounds().Overlaps(shield) {
				continue
			}
			w.explodeBomb(b)
			w.emit(EventShieldBlocked)
		}
	}

	// Gravity field collisions
	for _, g := range w.gravityCache {
		if !g.Active() {
			continue
		}
		area := g.Bounds()
		for _, b := range w.bombCache {
			if b.IsDestroyed() || !b.Bounds().Overlaps(area) {
				continue
			}
			w.explodeBomb(b)
			w.emit(EventBombDestroyed)
		}
		for _, e := range w.enemyCache {
			if e.IsDestroyed() || !e.Bounds().Overlaps(area) {
				continue
			}
			w.explodeEnemy(e, w.Tuning.ExplosionShort)
		}
	}

	// Player-bomb collisions
	player := w.Player.Bounds()
	hitActive := false
	for _, b := range w.bombCache {
		if b.IsDestroyed() || !b.Bounds().Overlaps(player) {
			continue
		}
		b.MarkDestroyed()
		if b.Active {
			hitActive = true
		}
	}
	if hitActive {
		w.Over = true
		w.Player.Defeat()
		w.emit(EventGameOver)
	}

	// Explosions spawned above join the world for drawing
	w.FlushSpawned()
}

func (w *World) addScore(n int) {
	w.Score += n
	if w.Score < 0 {
		w.Score = 0
	}
}
