package world

import (
	"errors"
	"fmt"

	"github.com/tomz197/kokaton/internal/object"
)

// Ability is a special power bought with score.
type Ability int

const (
	AbilityShield Ability = iota
	AbilityGravity
	AbilityEMP
)

// Abilities lists every ability in HUD order.
var Abilities = []Ability{AbilityShield, AbilityGravity, AbilityEMP}

func (a Ability) String() string {
	switch a {
	case AbilityShield:
		return "shield"
	case AbilityGravity:
		return "gravity"
	case AbilityEMP:
		return "emp"
	}
	return "unknown"
}

var (
	ErrInsufficientScore = errors.New("insufficient score")
	ErrShieldActive      = errors.New("shield already active")
	ErrGameOver          = errors.New("game over")
)

// Cost returns the score an ability costs.
func (w *World) Cost(a Ability) int {
	switch a {
	case AbilityShield:
		return w.Tuning.ShieldCost
	case AbilityGravity:
		return w.Tuning.GravityCost
	case AbilityEMP:
		return w.Tuning.EMPCost
	}
	return 0
}

// CanActivate reports why a cannot be activated now, or nil if it can.
func (w *World) CanActivate(a Ability) error {
	if w.Over {
		return ErrGameOver
	}
	if cost := w.Cost(a); cost > w.Score {
		return fmt.Errorf("%s costs %d, score is %d: %w", a, cost, w.Score, ErrInsufficientScore)
	}
	if a == AbilityShield && w.ShieldActive() {
		return ErrShieldActive
	}
	return nil
}

// Activate pays for a and applies it. On error the world is unchanged.
func (w *World) Activate(a Ability) error {
	if err := w.CanActivate(a); err != nil {
		return err
	}
	w.Score -= w.Cost(a)

	switch a {
	case AbilityShield:
		w.shield = object.NewShield(w.Player, w.Tuning.ShieldLife)
		w.Spawn(w.shield)
		w.emit(EventShieldUp)
	case AbilityGravity:
		w.Spawn(object.NewGravityField(w.Field, w.Tuning.GravityLife))
		w.emit(EventGravity)
	case AbilityEMP:
		w.empBurst()
		w.Spawn(object.NewEMP(w.Tuning.EMPLife))
		w.emit(EventEMP)
	}
	return nil
}

// empBurst disables every enemy and bomb alive right now, including
// ones still waiting to join the world.
func (w *World) empBurst() {
	for _, list := range [][]object.Object{w.Objects, w.toSpawn} {
		for _, obj := range list {
			switch o := obj.(type) {
			case *object.Enemy:
				o.Disable()
			case *object.Bomb:
				o.Deactivate()
			}
		}
	}
}
