package world

import (
	"errors"
	"math/rand"
	"slices"
	"testing"

	"github.com/tomz197/kokaton/internal/loop/config"
	"github.com/tomz197/kokaton/internal/object"
)

// newTestWorld returns a world without the enemy spawner so tests
// control every object on the field.
func newTestWorld() *World {
	w := New(config.DefaultTuning(), 1)
	w.Objects = nil
	return w
}

// beam returns a projectile flying straight up.
func beam(x, y float64) *object.Projectile {
	return &object.Projectile{X: x, Y: y, VY: -10, Angle: 90}
}

// parkedEnemy returns an enemy that halts at once and never drops bombs.
func parkedEnemy(x, y float64) *object.Enemy {
	return object.NewEnemy(x, y, 0, 0, 1<<30)
}

// still returns a motionless bomb.
func still(x, y, radius float64, active bool) *object.Bomb {
	return &object.Bomb{X: x, Y: y, DY: 1, Radius: radius, Active: active}
}

func countExplosions(w *World) int {
	n := 0
	for _, obj := range w.Objects {
		if _, ok := obj.(*object.Explosion); ok {
			n++
		}
	}
	return n
}

func TestFirstFrameSpawnsEnemy(t *testing.T) {
	w := New(config.DefaultTuning(), 1)
	w.Step(object.Input{})

	enemies, bombs, _ := w.Counts()
	if enemies != 1 || bombs != 0 {
		t.Fatalf("after frame 0: %d enemies, %d bombs", enemies, bombs)
	}
	for _, obj := range w.Objects {
		if e, ok := obj.(*object.Enemy); ok {
			if e.Y != 0 || e.State() != object.EnemyDescending {
				t.Errorf("new enemy at y=%v state=%v", e.Y, e.State())
			}
		}
	}
	if w.Tick != 1 {
		t.Errorf("Tick = %d, want 1", w.Tick)
	}
}

func TestBeamDestroysEnemy(t *testing.T) {
	w := newTestWorld()
	e := parkedEnemy(500, 200)
	w.AddObject(e)
	w.AddObject(beam(500, 230))

	w.Step(object.Input{})

	if w.Score != 10 {
		t.Errorf("Score = %d, want 10", w.Score)
	}
	enemies, _, projectiles := w.Counts()
	if enemies != 0 || projectiles != 0 {
		t.Errorf("left %d enemies, %d projectiles", enemies, projectiles)
	}
	if countExplosions(w) != 1 {
		t.Errorf("explosions = %d, want 1", countExplosions(w))
	}
	if w.Player.Pose() != object.PoseVictory {
		t.Error("player should celebrate the kill")
	}
	if !slices.Contains(w.Events(), EventEnemyDestroyed) {
		t.Errorf("events = %v", w.Events())
	}

	for _, obj := range w.Objects {
		if x, ok := obj.(*object.Explosion); ok && x.Life != w.Tuning.ExplosionLong {
			t.Errorf("enemy explosion life = %d, want %d", x.Life, w.Tuning.ExplosionLong)
		}
	}
}

func TestEnemyConsumesAllOverlappingBeams(t *testing.T) {
	w := newTestWorld()
	w.AddObject(parkedEnemy(500, 200))
	w.AddObject(beam(490, 230))
	w.AddObject(beam(510, 230))
	w.AddObject(beam(800, 300))

	w.Step(object.Input{})

	if _, _, projectiles := w.Counts(); projectiles != 1 {
		t.Errorf("projectiles left = %d, want 1", projectiles)
	}
	if w.Score != 10 {
		t.Errorf("two beams on one enemy scored %d, want 10", w.Score)
	}
}

func TestEnemiesResolveBeforeBombs(t *testing.T) {
	w := newTestWorld()
	w.AddObject(parkedEnemy(500, 200))
	w.AddObject(still(500, 240, 10, true))
	// After moving, the beam spans y 215..239: both the enemy and the bomb
	w.AddObject(beam(500, 237))

	w.Step(object.Input{})

	enemies, bombs, _ := w.Counts()
	if enemies != 0 || bombs != 1 {
		t.Errorf("enemies=%d bombs=%d; the enemy should absorb the beam", enemies, bombs)
	}
	if w.Score != 10 {
		t.Errorf("Score = %d, want 10", w.Score)
	}
}

func TestBeamDestroysBomb(t *testing.T) {
	w := newTestWorld()
	w.AddObject(still(300, 300, 10, true))
	w.AddObject(beam(300, 315))

	w.Step(object.Input{})

	if w.Score != 1 {
		t.Errorf("Score = %d, want 1", w.Score)
	}
	if _, bombs, projectiles := w.Counts(); bombs != 0 || projectiles != 0 {
		t.Errorf("bombs=%d projectiles=%d", bombs, projectiles)
	}
	for _, obj := range w.Objects {
		if x, ok := obj.(*object.Explosion); ok && x.Life != w.Tuning.ExplosionShort {
			t.Errorf("bomb explosion life = %d, want %d", x.Life, w.Tuning.ExplosionShort)
		}
	}
}

func TestActiveBombEndsGame(t *testing.T) {
	w := newTestWorld()
	w.AddObject(still(PlayerStartX, PlayerStartY, 10, true))

	w.Step(object.Input{})

	if !w.Over {
		t.Fatal("active bomb on the player should end the game")
	}
	if w.Player.Pose() != object.PoseDefeat {
		t.Error("player should show defeat")
	}
	if !slices.Contains(w.Events(), EventGameOver) {
		t.Errorf("events = %v", w.Events())
	}

	tick := w.Tick
	w.Step(object.Input{Right: true, Fire: 1})
	if w.Tick != tick || len(w.Events()) != 0 {
		t.Error("finished world should not advance")
	}
}

func TestInactiveBombIsHarmless(t *testing.T) {
	w := newTestWorld()
	w.AddObject(still(PlayerStartX, PlayerStartY, 10, false))

	w.Step(object.Input{})

	if w.Over {
		t.Fatal("inactive bomb ended the game")
	}
	if _, bombs, _ := w.Counts(); bombs != 0 {
		t.Error("inactive bomb should be consumed on contact")
	}
}

func TestShieldAbility(t *testing.T) {
	w := newTestWorld()
	w.Score = 49

	err := w.Activate(AbilityShield)
	if !errors.Is(err, ErrInsufficientScore) {
		t.Fatalf("Activate with 49 points: %v", err)
	}
	if w.Score != 49 || len(w.toSpawn) != 0 {
		t.Error("rejected activation changed the world")
	}

	w.Score = 100
	if err := w.Activate(AbilityShield); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if w.Score != 50 || !w.ShieldActive() {
		t.Errorf("Score = %d, active = %v", w.Score, w.ShieldActive())
	}
	if err := w.Activate(AbilityShield); !errors.Is(err, ErrShieldActive) {
		t.Errorf("second shield: %v", err)
	}
	if w.Score != 50 {
		t.Errorf("second shield charged: Score = %d", w.Score)
	}
}

func TestShieldBlocksBomb(t *testing.T) {
	w := newTestWorld()
	w.Score = 50
	if err := w.Activate(AbilityShield); err != nil {
		t.Fatal(err)
	}
	// Facing east the shield stands one bird-width to the right
	w.AddObject(still(PlayerStartX+object.PlayerWidth, PlayerStartY, 5, true))

	w.Step(object.Input{})

	if w.Over {
		t.Fatal("bomb went through the shield")
	}
	if _, bombs, _ := w.Counts(); bombs != 0 {
		t.Error("shield should destroy the bomb")
	}
	if w.Score != 0 {
		t.Errorf("shield blocks do not score: Score = %d", w.Score)
	}
	if !slices.Contains(w.Events(), EventShieldBlocked) {
		t.Errorf("events = %v", w.Events())
	}
}

func TestShieldExpires(t *testing.T) {
	w := newTestWorld()
	w.Tuning.ShieldLife = 3
	w.Score = 50
	if err := w.Activate(AbilityShield); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		w.Step(object.Input{})
	}
	if w.ShieldActive() {
		t.Error("shield outlived its lifetime")
	}
	w.Score = 50
	if err := w.Activate(AbilityShield); err != nil {
		t.Errorf("new shield after expiry: %v", err)
	}
}

func TestGravityFieldCrushesEverything(t *testing.T) {
	w := newTestWorld()
	w.AddObject(still(100, 500, 10, true))
	w.AddObject(still(600, 100, 30, false))
	w.AddObject(parkedEnemy(300, 200))
	w.Score = 200

	if err := w.Activate(AbilityGravity); err != nil {
		t.Fatal(err)
	}
	w.Step(object.Input{})

	enemies, bombs, _ := w.Counts()
	if enemies != 0 || bombs != 0 {
		t.Errorf("enemies=%d bombs=%d after gravity", enemies, bombs)
	}
	if w.Score != 0 {
		t.Errorf("gravity kills do not score: Score = %d", w.Score)
	}
	if countExplosions(w) != 3 {
		t.Errorf("explosions = %d, want 3", countExplosions(w))
	}
}

func TestEMPDisablesEnemiesAndBombs(t *testing.T) {
	w := newTestWorld()
	e := parkedEnemy(300, 200)
	b := &object.Bomb{X: 100, Y: 500, DY: 1, Speed: 6, Radius: 10, Active: true}
	w.AddObject(e)
	w.AddObject(b)
	w.Score = 20

	w.Step(object.Input{EMP: 1})

	if w.Score != 0 {
		t.Errorf("Score = %d, want 0", w.Score)
	}
	if !e.Disabled {
		t.Error("enemy should be disabled")
	}
	if b.Active || b.Speed != 3 {
		t.Errorf("bomb active=%v speed=%v", b.Active, b.Speed)
	}
	if b.Y != 503 {
		t.Errorf("inactive bomb moved to y=%v, want 503", b.Y)
	}
	if !slices.Contains(w.Events(), EventEMP) {
		t.Errorf("events = %v", w.Events())
	}

	// A second press with no score left is ignored
	w.Step(object.Input{EMP: 1})
	if w.Score != 0 {
		t.Errorf("Score went to %d", w.Score)
	}
}

func TestFireEmitsShots(t *testing.T) {
	w := newTestWorld()
	w.Step(object.Input{Fire: 1})

	if _, _, projectiles := w.Counts(); projectiles != 1 {
		t.Errorf("projectiles = %d, want 1", projectiles)
	}
	if !slices.Contains(w.Events(), EventShot) {
		t.Errorf("events = %v", w.Events())
	}
}

// randomInput produces a reproducible input for a frame.
func randomInput(rng *rand.Rand) object.Input {
	in := object.Input{
		Up:    rng.Intn(3) == 0,
		Down:  rng.Intn(3) == 0,
		Left:  rng.Intn(3) == 0,
		Right: rng.Intn(3) == 0,
		Boost: rng.Intn(5) == 0,
	}
	if rng.Intn(4) == 0 {
		in.Fire = 1
	}
	if rng.Intn(20) == 0 {
		in.Spread = 1
	}
	switch rng.Intn(60) {
	case 0:
		in.Shield = 1
	case 1:
		in.Gravity = 1
	case 2:
		in.EMP = 1
	}
	return in
}

type frameSummary struct {
	tick, score           int
	enemies, bombs, shots int
	playerX, playerY      float64
	over                  bool
}

func runReplay(t *testing.T, seed int64, frames int) []frameSummary {
	t.Helper()
	w := New(config.DefaultTuning(), seed)
	inputs := rand.New(rand.NewSource(seed + 1))
	halted := map[*object.Enemy]bool{}

	var summaries []frameSummary
	for i := 0; i < frames; i++ {
		w.Step(randomInput(inputs))

		if w.Score < 0 {
			t.Fatalf("frame %d: negative score %d", i, w.Score)
		}
		if !w.Field.Contains(w.Player.Bounds()) {
			t.Fatalf("frame %d: player outside the field", i)
		}
		for _, obj := range w.Objects {
			switch o := obj.(type) {
			case *object.Bomb:
				if !w.Field.Contains(o.Bounds()) {
					t.Fatalf("frame %d: bomb outside the field at (%v, %v)", i, o.X, o.Y)
				}
			case *object.Projectile:
				if !w.Field.Contains(o.Bounds()) {
					t.Fatalf("frame %d: projectile outside the field at (%v, %v)", i, o.X, o.Y)
				}
			case *object.Enemy:
				if halted[o] && o.State() != object.EnemyHalted {
					t.Fatalf("frame %d: enemy resumed descending", i)
				}
				if o.State() == object.EnemyHalted {
					halted[o] = true
				}
			}
		}

		enemies, bombs, shots := w.Counts()
		summaries = append(summaries, frameSummary{
			tick: w.Tick, score: w.Score,
			enemies: enemies, bombs: bombs, shots: shots,
			playerX: w.Player.X, playerY: w.Player.Y,
			over: w.Over,
		})
	}
	return summaries
}

func TestReplayIsDeterministic(t *testing.T) {
	for _, seed := range []int64{1, 2, 99} {
		a := runReplay(t, seed, 3000)
		b := runReplay(t, seed, 3000)
		if !slices.Equal(a, b) {
			t.Errorf("seed %d: replays diverged", seed)
		}
	}
}

func TestBeamFiredOffFieldNeverJoins(t *testing.T) {
	w := newTestWorld()
	w.Player.X = 1070

	w.Step(object.Input{Fire: 1})

	if _, _, projectiles := w.Counts(); projectiles != 0 {
		t.Errorf("projectiles = %d, want 0 for a beam spawned past the edge", projectiles)
	}
}

func TestBombDroppedOffFieldNeverJoins(t *testing.T) {
	w := newTestWorld()
	w.Tuning.BombRadiusMin = 50
	w.Tuning.BombRadiusMax = 50
	// Flush with the right edge, halts on its first update, drops every frame
	w.AddObject(object.NewEnemy(w.Field.Width-object.EnemyWidth/2, 200, 0, 0, 1))

	for i := 0; i < 3; i++ {
		w.Step(object.Input{})
		for _, obj := range w.Objects {
			if b, ok := obj.(*object.Bomb); ok && !w.Field.Contains(b.Bounds()) {
				t.Fatalf("frame %d: bomb at (%v, %v) r=%v outside the field", i, b.X, b.Y, b.Radius)
			}
		}
	}
}

func TestShieldFollowsPlayerOnActivationFrame(t *testing.T) {
	w := newTestWorld()
	w.Score = 50

	w.Step(object.Input{Shield: 1, Right: true})

	if w.Player.X != PlayerStartX+w.Tuning.PlayerSpeed {
		t.Fatalf("player x = %v", w.Player.X)
	}
	if off := w.shield.X - w.Player.X; off != object.PlayerWidth {
		t.Errorf("shield offset = %v on the activation frame, want %v", off, float64(object.PlayerWidth))
	}

	w.Step(object.Input{Right: true})
	if off := w.shield.X - w.Player.X; off != object.PlayerWidth {
		t.Errorf("shield offset = %v on the next frame, want %v", off, float64(object.PlayerWidth))
	}
}

func TestGravityFieldLasts(t *testing.T) {
	w := newTestWorld()
	w.Score = w.Tuning.GravityCost

	// The activation frame is the first of the field's lifetime
	w.Step(object.Input{Gravity: 1})
	for i := 1; i < w.Tuning.GravityLife-1; i++ {
		w.Step(object.Input{})
	}

	w.AddObject(still(100, 500, 10, true))
	w.Step(object.Input{})
	if _, bombs, _ := w.Counts(); bombs != 0 {
		t.Fatalf("field should still crush on frame %d", w.Tuning.GravityLife)
	}

	w.AddObject(still(100, 500, 10, true))
	w.Step(object.Input{})
	if _, bombs, _ := w.Counts(); bombs != 1 {
		t.Errorf("bombs = %d after the field expired, want 1", bombs)
	}
	for _, obj := range w.Objects {
		if _, ok := obj.(*object.GravityField); ok {
			t.Error("expired gravity field still in the world")
		}
	}
}

func countEMPs(w *World) int {
	n := 0
	for _, obj := range w.Objects {
		if _, ok := obj.(*object.EMP); ok {
			n++
		}
	}
	return n
}

func TestEMPFlashExpires(t *testing.T) {
	w := newTestWorld()
	w.Score = w.Tuning.EMPCost

	w.Step(object.Input{EMP: 1})
	for i := 1; i < w.Tuning.EMPLife; i++ {
		w.Step(object.Input{})
	}
	if countEMPs(w) != 1 {
		t.Fatalf("flash gone before %d frames", w.Tuning.EMPLife)
	}

	w.Step(object.Input{})
	if countEMPs(w) != 0 {
		t.Error("flash outlived its lifetime")
	}
}

func TestEnemySpawnedAfterEMPDropsBombs(t *testing.T) {
	w := New(config.DefaultTuning(), 1)
	old := parkedEnemy(300, 200)
	w.AddObject(old)
	w.Score = w.Tuning.EMPCost

	// The spawner's frame-0 enemy appears after the burst
	w.Step(object.Input{EMP: 1})

	if !old.Disabled {
		t.Error("enemy alive at activation should be disabled")
	}
	var fresh *object.Enemy
	for _, obj := range w.Objects {
		if e, ok := obj.(*object.Enemy); ok && e != old {
			fresh = e
		}
	}
	if fresh == nil {
		t.Fatal("spawner produced no enemy")
	}
	if fresh.Disabled {
		t.Error("enemy spawned after the EMP should not be disabled")
	}

	fresh.Interval = 1
	for i := 0; i < 100 && fresh.State() != object.EnemyHalted; i++ {
		w.Step(object.Input{})
	}
	if !fresh.CanDropBomb(w.Tick) {
		t.Error("halted post-EMP enemy should be able to drop bombs")
	}
}
