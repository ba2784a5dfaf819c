// pkg/render/engo/ship.go
package engo

import (
	"context"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-starship/pkg/physics"
	"github.com/opd-ai/go-starship/pkg/sim"
)

// ShipRenderSystem drives the simulation from the frame clock and keeps
// the ship's render entity in sync with the latest snapshot.
type ShipRenderSystem struct {
	sim    *sim.Simulation
	assets *AssetManager

	shipEntity ecs.BasicEntity
	render     common.RenderComponent
	space      common.SpaceComponent
}

// NewShipRenderSystem creates the render system for the ship
func NewShipRenderSystem(simulation *sim.Simulation, assets *AssetManager) *ShipRenderSystem {
	return &ShipRenderSystem{
		sim:    simulation,
		assets: assets,
	}
}

// New satisfies ecs.Initializer. It creates the ship's render entity
// and registers it with the world's render system.
func (s *ShipRenderSystem) New(w *ecs.World) {
	sprite := s.assets.ShipSprite()

	s.shipEntity = ecs.NewBasic()
	s.render = common.RenderComponent{
		Drawable: sprite,
		Scale:    engo.Point{X: 1, Y: 1},
	}
	s.space = common.SpaceComponent{
		Width:  sprite.Width(),
		Height: sprite.Height(),
	}

	for _, system := range w.Systems() {
		switch sys := system.(type) {
		case *common.RenderSystem:
			sys.Add(&s.shipEntity, &s.render, &s.space)
		}
	}
}

// Remove satisfies the ecs.System interface
func (s *ShipRenderSystem) Remove(basic ecs.BasicEntity) {
	// The ship entity lives for the whole scene
}

// Update advances the simulation by the frame delta and moves the
// render entity to the resulting snapshot. The live window size feeds
// back into the simulation so wrapping follows resizes.
func (s *ShipRenderSystem) Update(dt float32) {
	s.sim.SetBounds(context.Background(), physics.NewScreenRect(
		float64(engo.GameWidth()),
		float64(engo.GameHeight()),
	))
	s.sim.Advance(float64(dt))

	state := s.sim.Snapshot()

	// Engo's screen Y grows downward and rotation is clockwise degrees,
	// so both flip sign coming out of the simulation.
	s.space.Rotation = float32(-state.Heading * 180 / math.Pi)
	s.space.SetCenter(engo.Point{
		X: float32(state.Position.X) + engo.GameWidth()/2,
		Y: engo.GameHeight()/2 - float32(state.Position.Y),
	})
}
