// cmd/starship/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opd-ai/go-starship/pkg/config"
	"github.com/opd-ai/go-starship/pkg/debug"
	"github.com/opd-ai/go-starship/pkg/entity"
	"github.com/opd-ai/go-starship/pkg/event"
	"github.com/opd-ai/go-starship/pkg/logging"
	"github.com/opd-ai/go-starship/pkg/render"
	engorender "github.com/opd-ai/go-starship/pkg/render/engo"
	"github.com/opd-ai/go-starship/pkg/sim"
)

const (
	terminalWidth  = 80
	terminalHeight = 24
)

func main() {
	logger := logging.NewLogger()
	ctx := logging.WithRunID(context.Background(), "")

	configPath := flag.String("config", "config.json", "Path to configuration file")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	rendererName := flag.String("renderer", "engo", "Renderer type: 'engo', 'terminal', or 'none'")
	duration := flag.Duration("duration", 0, "Stop after this long (headless renderers only, 0 runs until interrupted)")
	debugMode := flag.Bool("debug", false, "Periodically log ship state and run invariant checks")
	flag.Parse()

	// Create default configuration file if requested
	if *createDefault {
		defaultConfig := config.DefaultConfig()
		if err := config.SaveConfig(defaultConfig, *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	simConfig := loadConfig(ctx, logger, *configPath)

	eventBus := event.NewEventBus()
	simulation := sim.NewSimulation(simConfig, eventBus, logger)

	if *debugMode {
		stopMonitor := startDebugMonitor(ctx, logger, simulation)
		defer stopMonitor()
	}

	switch *rendererName {
	case "terminal":
		runHeadless(ctx, logger, simulation, newTerminalRenderer(simConfig), *duration)
	case "none":
		runHeadless(ctx, logger, simulation, render.NullRendererInstance, *duration)
	case "engo":
		runWindowed(ctx, logger, simConfig, simulation, eventBus, *duration)
	default:
		logger.Warn(ctx, "Unknown renderer, using the game window",
			"renderer", *rendererName,
		)
		runWindowed(ctx, logger, simConfig, simulation, eventBus, *duration)
	}

	stats := simulation.Stats()
	logger.Info(ctx, "Simulation finished",
		"ticks", stats.Ticks,
		"slow_ticks", stats.SlowTicks,
		"max_steps_per_frame", stats.MaxStepsPerFrame,
		"avg_step_duration", stats.AvgStepDuration.String(),
	)
}

// loadConfig resolves the effective configuration from the config file,
// the environment, and the defaults, exiting on anything invalid.
func loadConfig(ctx context.Context, logger *logging.Logger, path string) *config.SimConfig {
	var simConfig *config.SimConfig

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", path,
		)
		simConfig = config.DefaultConfig()
	} else {
		simConfig, err = config.LoadConfig(path)
		if err != nil {
			logger.Error(ctx, "Failed to load configuration", err,
				"config_path", path,
			)
			os.Exit(1)
		}
	}

	// Apply environment variable overrides
	if err := config.ApplyEnvironmentOverrides(simConfig); err != nil {
		logger.Error(ctx, "Failed to apply environment configuration", err)
		os.Exit(1)
	}

	if err := simConfig.Validate(); err != nil {
		logger.Error(ctx, "Invalid configuration", err)
		os.Exit(1)
	}

	return simConfig
}

// runWindowed opens the Engo window and blocks until it closes
func runWindowed(ctx context.Context, logger *logging.Logger, simConfig *config.SimConfig, simulation *sim.Simulation, eventBus *event.Bus, duration time.Duration) {
	if duration > 0 {
		logger.Warn(ctx, "Duration flag only applies to headless renderers")
	}

	logger.Info(ctx, "Opening game window",
		"title", simConfig.Window.Title,
		"width", simConfig.ScreenWidth,
		"height", simConfig.ScreenHeight,
	)

	engorender.Run(simConfig, simulation, eventBus, logger)
}

// runHeadless drives the simulation from a real-time loop until the
// duration elapses or a shutdown signal arrives.
func runHeadless(ctx context.Context, logger *logging.Logger, simulation *sim.Simulation, r entity.Renderer, duration time.Duration) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if duration > 0 {
		var timeoutCancel context.CancelFunc
		runCtx, timeoutCancel = context.WithTimeout(runCtx, duration)
		defer timeoutCancel()
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info(runCtx, "Received signal, shutting down",
				"signal", sig.String(),
			)
			cancel()
		case <-runCtx.Done():
		}
	}()

	err := simulation.Run(runCtx, r)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		logger.Error(ctx, "Simulation loop failed", err)
	}
}

// newTerminalRenderer sizes the ASCII view so the whole wrap area fits
// the frame.
func newTerminalRenderer(simConfig *config.SimConfig) entity.Renderer {
	scale := math.Max(simConfig.ScreenWidth/terminalWidth, simConfig.ScreenHeight/terminalHeight)
	if scale <= 0 {
		scale = 1
	}
	return render.NewTerminalRenderer(terminalWidth, terminalHeight, scale)
}

// startDebugMonitor logs ship state and check results once per second
// until the returned stop function is called.
func startDebugMonitor(ctx context.Context, logger *logging.Logger, simulation *sim.Simulation) func() {
	inspector := debug.DefaultInspector()
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				logger.Info(ctx, "Ship state", "state", debug.Dump(simulation.Snapshot()))

				if report := inspector.InspectSimulation(simulation); !report.Healthy() {
					logger.Warn(ctx, "State check failed", "report", report.String())
				}
			}
		}
	}()

	return func() { close(done) }
}
