// pkg/render/engo/hud.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-starship/pkg/entity"
	"github.com/opd-ai/go-starship/pkg/event"
	"github.com/opd-ai/go-starship/pkg/sim"
)

const (
	fuelBarWidth  = 200
	fuelBarHeight = 18
	fuelBarMargin = 10

	// depletedFlashFrames is how many frames the gauge flashes after
	// the tank runs dry
	depletedFlashFrames = 90
)

// HUDSystem draws the fuel gauge in the top-left corner. The gauge
// drains and recolors with the remaining fuel and flashes when the tank
// runs dry.
type HUDSystem struct {
	sim         *sim.Simulation
	initialFuel float64

	bus   *event.Bus
	subID event.SubscriptionID

	background hudBar
	fill       hudBar

	flashFrames int
}

// hudBar bundles one gauge rectangle with its render components
type hudBar struct {
	entity ecs.BasicEntity
	render common.RenderComponent
	space  common.SpaceComponent
}

// NewHUDSystem creates the HUD and subscribes it to fuel depletion
// events so the gauge flashes on the depletion edge. The gauge drains
// relative to the ship's starting fuel.
func NewHUDSystem(simulation *sim.Simulation, bus *event.Bus, initialFuel float64) *HUDSystem {
	if initialFuel <= 0 {
		initialFuel = entity.MaxFuel
	}

	hud := &HUDSystem{
		sim:         simulation,
		initialFuel: initialFuel,
		bus:         bus,
	}

	hud.subID = bus.Subscribe(event.FuelDepleted, func(event.Event) {
		hud.flashFrames = depletedFlashFrames
	})

	return hud
}

// Detach removes the HUD's event subscription. The scene calls this on
// exit so a torn-down HUD no longer reacts to simulation events.
func (hud *HUDSystem) Detach() {
	hud.bus.Unsubscribe(event.FuelDepleted, hud.subID)
}

// New satisfies ecs.Initializer. It creates the gauge entities and
// registers them with the world's render system.
func (hud *HUDSystem) New(w *ecs.World) {
	hud.background = newHudBar(fuelBarWidth, fuelBarHeight, color.RGBA{40, 40, 40, 255}, 2)
	hud.fill = newHudBar(fuelBarWidth, fuelBarHeight, color.RGBA{0, 255, 0, 255}, 3)

	for _, system := range w.Systems() {
		switch sys := system.(type) {
		case *common.RenderSystem:
			sys.Add(&hud.background.entity, &hud.background.render, &hud.background.space)
			sys.Add(&hud.fill.entity, &hud.fill.render, &hud.fill.space)
		}
	}
}

func newHudBar(width, height float32, barColor color.Color, z float32) hudBar {
	bar := hudBar{
		entity: ecs.NewBasic(),
		render: common.RenderComponent{
			Drawable: common.Rectangle{},
			Color:    barColor,
		},
		space: common.SpaceComponent{
			Position: engo.Point{X: fuelBarMargin, Y: fuelBarMargin},
			Width:    width,
			Height:   height,
		},
	}
	bar.render.SetShader(common.HUDShader)
	bar.render.SetZIndex(z)
	return bar
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {
	// HUD entities live for the whole scene
}

// Update resizes and recolors the gauge from the latest snapshot
func (hud *HUDSystem) Update(dt float32) {
	state := hud.sim.Snapshot()

	fraction := state.Fuel / hud.initialFuel
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	hud.fill.space.Width = float32(fraction) * fuelBarWidth
	hud.fill.render.Color = fuelColor(fraction)

	if hud.flashFrames > 0 {
		hud.flashFrames--
		if (hud.flashFrames/10)%2 == 0 {
			hud.background.render.Color = color.RGBA{255, 0, 0, 255}
		} else {
			hud.background.render.Color = color.RGBA{40, 40, 40, 255}
		}
		return
	}

	if state.Fuel <= 0 {
		hud.background.render.Color = color.RGBA{120, 0, 0, 255}
	} else {
		hud.background.render.Color = color.RGBA{40, 40, 40, 255}
	}
}

// fuelColor maps the remaining fuel fraction to the gauge color
func fuelColor(fraction float64) color.Color {
	switch {
	case fraction > 0.5:
		return color.RGBA{0, 255, 0, 255}
	case fraction > 0.2:
		return color.RGBA{255, 255, 0, 255}
	default:
		return color.RGBA{255, 0, 0, 255}
	}
}
