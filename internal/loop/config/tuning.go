package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds the gameplay parameters. Speeds are pixels per frame,
// intervals and lifetimes are frames.
type Tuning struct {
	PlayerSpeed     float64 `yaml:"player_speed"`
	BoostFactor     float64 `yaml:"boost_factor"`
	ProjectileSpeed float64 `yaml:"projectile_speed"`
	SpreadCount     int     `yaml:"spread_count"`
	SpreadArc       int     `yaml:"spread_arc"` // Degrees

	EnemySpeed         float64 `yaml:"enemy_speed"`
	EnemySpawnInterval int     `yaml:"enemy_spawn_interval"`
	HaltLineMin        int     `yaml:"halt_line_min"` // Upper bound is half the field height
	BombIntervalMin    int     `yaml:"bomb_interval_min"`
	BombIntervalMax    int     `yaml:"bomb_interval_max"`

	BombSpeed     float64 `yaml:"bomb_speed"`
	BombRadiusMin int     `yaml:"bomb_radius_min"`
	BombRadiusMax int     `yaml:"bomb_radius_max"`

	ScoreEnemy int `yaml:"score_enemy"`
	ScoreBomb  int `yaml:"score_bomb"`

	ShieldCost  int `yaml:"shield_cost"`
	ShieldLife  int `yaml:"shield_life"`
	GravityCost int `yaml:"gravity_cost"`
	GravityLife int `yaml:"gravity_life"`
	EMPCost     int `yaml:"emp_cost"`
	EMPLife     int `yaml:"emp_life"`

	ExplosionLong  int `yaml:"explosion_long"`
	ExplosionShort int `yaml:"explosion_short"`
	VictoryFrames  int `yaml:"victory_frames"`
	GameOverFrames int `yaml:"game_over_frames"`
}

// DefaultTuning returns the stock gameplay parameters.
func DefaultTuning() Tuning {
	return Tuning{
		PlayerSpeed:     10,
		BoostFactor:     2,
		ProjectileSpeed: 10,
		SpreadCount:     5,
		SpreadArc:       100,

		EnemySpeed:         6,
		EnemySpawnInterval: 200,
		HaltLineMin:        50,
		BombIntervalMin:    50,
		BombIntervalMax:    300,

		BombSpeed:     6,
		BombRadiusMin: 10,
		BombRadiusMax: 50,

		ScoreEnemy: 10,
		ScoreBomb:  1,

		ShieldCost:  50,
		ShieldLife:  400,
		GravityCost: 200,
		GravityLife: 400,
		EMPCost:     20,
		EMPLife:     10,

		ExplosionLong:  100,
		ExplosionShort: 50,
		VictoryFrames:  10,
		GameOverFrames: 2 * TargetFPS,
	}
}

// LoadTuning reads a YAML file and overlays it on the defaults.
// An empty path returns the defaults. Unknown keys are rejected.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("read tuning: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return Tuning{}, fmt.Errorf("parse tuning %s: %w", path, err)
	}

	if err := t.Validate(); err != nil {
		return Tuning{}, fmt.Errorf("invalid tuning %s: %w", path, err)
	}
	return t, nil
}

// Validate reports every parameter that would break the simulation.
func (t Tuning) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	nonNegative := func(name string, v int) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %d", name, v))
		}
	}

	positive("player_speed", t.PlayerSpeed)
	positive("boost_factor", t.BoostFactor)
	positive("projectile_speed", t.ProjectileSpeed)
	positive("enemy_speed", t.EnemySpeed)
	positive("bomb_speed", t.BombSpeed)
	positive("enemy_spawn_interval", float64(t.EnemySpawnInterval))
	positive("bomb_interval_min", float64(t.BombIntervalMin))
	positive("bomb_radius_min", float64(t.BombRadiusMin))

	if t.SpreadCount < 1 {
		errs = append(errs, fmt.Errorf("spread_count must be at least 1, got %d", t.SpreadCount))
	}
	if t.BombIntervalMax < t.BombIntervalMin {
		errs = append(errs, fmt.Errorf("bomb_interval_max %d below bomb_interval_min %d", t.BombIntervalMax, t.BombIntervalMin))
	}
	if t.BombRadiusMax < t.BombRadiusMin {
		errs = append(errs, fmt.Errorf("bomb_radius_max %d below bomb_radius_min %d", t.BombRadiusMax, t.BombRadiusMin))
	}
	if t.HaltLineMin < 0 || t.HaltLineMin > FieldHeight/2 {
		errs = append(errs, fmt.Errorf("halt_line_min must be within [0, %d], got %d", FieldHeight/2, t.HaltLineMin))
	}

	nonNegative("spread_arc", t.SpreadArc)
	nonNegative("score_enemy", t.ScoreEnemy)
	nonNegative("score_bomb", t.ScoreBomb)
	nonNegative("shield_cost", t.ShieldCost)
	nonNegative("shield_life", t.ShieldLife)
	nonNegative("gravity_cost", t.GravityCost)
	nonNegative("gravity_life", t.GravityLife)
	nonNegative("emp_cost", t.EMPCost)
	nonNegative("emp_life", t.EMPLife)
	nonNegative("explosion_long", t.ExplosionLong)
	nonNegative("explosion_short", t.ExplosionShort)
	nonNegative("victory_frames", t.VictoryFrames)
	nonNegative("game_over_frames", t.GameOverFrames)

	return errors.Join(errs...)
}
