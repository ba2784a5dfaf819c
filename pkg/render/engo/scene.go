// pkg/render/engo/scene.go
package engo

import (
	"context"
	"fmt"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-starship/pkg/config"
	"github.com/opd-ai/go-starship/pkg/event"
	"github.com/opd-ai/go-starship/pkg/logging"
	"github.com/opd-ai/go-starship/pkg/sim"
)

// GameScene is the single Engo scene: a black viewport with the ship,
// the fuel gauge, and keyboard control wired into the simulation.
type GameScene struct {
	cfg      *config.SimConfig
	sim      *sim.Simulation
	eventBus *event.Bus
	logger   *logging.Logger

	world  *ecs.World
	assets *AssetManager
	input  *InputSystem
	ship   *ShipRenderSystem
	hud    *HUDSystem
}

// NewGameScene creates a new game scene driving the given simulation
func NewGameScene(cfg *config.SimConfig, simulation *sim.Simulation, bus *event.Bus, logger *logging.Logger) *GameScene {
	return &GameScene{
		cfg:      cfg,
		sim:      simulation,
		eventBus: bus,
		logger:   logger,
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "GameScene"
}

// Preload queues the sprite sheet if one is configured (required by Engo)
func (scene *GameScene) Preload() {
	if scene.cfg.Window.SpriteSheet == "" {
		return
	}

	if err := engo.Files.Load(scene.cfg.Window.SpriteSheet); err != nil {
		scene.logger.Warn(context.Background(), "sprite sheet failed to load, using built-in sprite",
			"path", scene.cfg.Window.SpriteSheet,
			"error", err.Error(),
		)
	}
}

// Setup wires the systems into the world (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	ctx := context.Background()

	common.SetBackground(color.Black)

	world, ok := u.(*ecs.World)
	if !ok {
		scene.logger.Error(ctx, "scene setup failed", fmt.Errorf("unexpected updater type %T", u))
		return
	}
	scene.world = world

	scene.world.AddSystem(&common.RenderSystem{})

	SetupInputBindings()

	scene.assets = NewAssetManager()
	if err := scene.assets.LoadAssets(scene.cfg.Window.SpriteSheet); err != nil {
		scene.logger.Error(ctx, "failed to load assets", err)
	}

	scene.input = NewInputSystem()
	scene.sim.SetInputSource(scene.input)
	scene.world.AddSystem(scene.input)

	scene.ship = NewShipRenderSystem(scene.sim, scene.assets)
	scene.world.AddSystem(scene.ship)

	scene.hud = NewHUDSystem(scene.sim, scene.eventBus, scene.cfg.Ship.InitialFuel)
	scene.world.AddSystem(scene.hud)

	scene.sim.Start(ctx)
}

// Exit stops the simulation and detaches the HUD when the window
// closes (required by Engo)
func (scene *GameScene) Exit() {
	if scene.hud != nil {
		scene.hud.Detach()
	}
	scene.sim.Stop(context.Background())
}

// Run opens the game window and blocks until it closes
func Run(cfg *config.SimConfig, simulation *sim.Simulation, bus *event.Bus, logger *logging.Logger) {
	opts := engo.RunOptions{
		Title:      cfg.Window.Title,
		Width:      int(cfg.ScreenWidth),
		Height:     int(cfg.ScreenHeight),
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	}

	engo.Run(opts, NewGameScene(cfg, simulation, bus, logger))
}
