// pkg/entity/ship.go
package entity

import (
	"github.com/opd-ai/go-starship/pkg/physics"
)

// MaxFuel is the tank capacity. Fuel is clamped to [0, MaxFuel] after
// every burn.
const MaxFuel = 1000.0

// ShipStats contains the tuning constants for a ship
type ShipStats struct {
	RotationSpeed float64 // radians per second while a turn input is held
	ThrustPower   float64 // acceleration per second, also the fuel burn rate
	InitialFuel   float64
}

// DefaultStats returns the stock demo tuning
func DefaultStats() ShipStats {
	return ShipStats{
		RotationSpeed: 1.0,
		ThrustPower:   100,
		InitialFuel:   100,
	}
}

// Ship represents the player's spaceship. It is a plain state record;
// the update methods below are the only things that mutate it, and each
// is a pure function of the current state, the elapsed time, and the
// tick's input.
type Ship struct {
	Position physics.Vector2D
	Velocity physics.Vector2D
	Heading  float64 // radians, 0 faces up, counterclockwise positive
	Fuel     float64
	Stats    ShipStats
}

// NewShip creates a ship at the origin, at rest, facing up
func NewShip(stats ShipStats) *Ship {
	return &Ship{
		Fuel:  clampFuel(stats.InitialFuel),
		Stats: stats,
	}
}

// UpdateOrientation turns the ship for one tick. Left and right inputs
// contribute independently, so holding both cancels out. The heading is
// never normalized into a range; it accumulates across full turns.
func (s *Ship) UpdateOrientation(deltaTime float64, turnLeft, turnRight bool) {
	if turnLeft {
		s.Heading += s.Stats.RotationSpeed * deltaTime
	}
	if turnRight {
		s.Heading -= s.Stats.RotationSpeed * deltaTime
	}
}

// UpdatePropulsion accelerates the ship along its heading for one tick
// and burns fuel for it. Thrust without fuel is a no-op: an empty tank
// inhibits acceleration but nothing else. There is no drag and no speed
// cap, so velocity gained here persists until countered by thrust in
// another direction.
func (s *Ship) UpdatePropulsion(deltaTime float64, thrust bool) {
	if !thrust || s.Fuel <= 0 {
		return
	}

	impulse := s.Stats.ThrustPower * deltaTime
	s.Velocity = s.Velocity.Add(physics.Forward(s.Heading).Scale(impulse))
	s.Fuel = clampFuel(s.Fuel - impulse)
}

// UpdatePosition integrates velocity for one tick and wraps the result
// at the screen edges. Invalid bounds are a host precondition violation;
// the position is left untouched so a bad frame cannot corrupt state.
func (s *Ship) UpdatePosition(deltaTime float64, bounds physics.Rect) {
	if !bounds.Valid() {
		return
	}

	s.Position = s.Position.Add(s.Velocity.Scale(deltaTime))
	s.Position = bounds.Wrap(s.Position)
}

func clampFuel(fuel float64) float64 {
	if fuel < 0 {
		return 0
	}
	if fuel > MaxFuel {
		return MaxFuel
	}
	return fuel
}
