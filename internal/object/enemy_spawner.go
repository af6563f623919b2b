package object

// EnemySpawner releases a new enemy at the top edge every interval frames,
// starting with frame 0.
type EnemySpawner struct {
	interval int
}

// NewEnemySpawner creates a spawner firing every interval frames.
// A non-positive interval disables spawning.
func NewEnemySpawner(interval int) *EnemySpawner {
	if interval < 0 {
		interval = 0
	}
	return &EnemySpawner{
		interval: interval,
	}
}

// Due reports whether an enemy spawns on frame tick.
func (s *EnemySpawner) Due(tick int) bool {
	return s.interval > 0 && tick%s.interval == 0
}

// Update spawns an enemy when one is due.
func (s *EnemySpawner) Update(ctx UpdateContext) (bool, error) {
	if !s.Due(ctx.Tick) || ctx.Spawner == nil || ctx.Tuning == nil || ctx.Rand == nil {
		return false, nil
	}

	t := ctx.Tuning
	enemy := SpawnEnemy(ctx.Rand, ctx.Field, t.EnemySpeed, t.HaltLineMin, t.BombIntervalMin, t.BombIntervalMax)
	ctx.Spawner.Spawn(enemy)
	return false, nil
}

// Draw is a no-op; spawner is not visible.
func (s *EnemySpawner) Draw(_ DrawContext) error {
	return nil
}
