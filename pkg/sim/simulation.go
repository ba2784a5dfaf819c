// pkg/sim/simulation.go
package sim

import (
	"context"
	"sync"
	"time"

	"github.com/opd-ai/go-starship/pkg/config"
	"github.com/opd-ai/go-starship/pkg/entity"
	"github.com/opd-ai/go-starship/pkg/event"
	"github.com/opd-ai/go-starship/pkg/logging"
	"github.com/opd-ai/go-starship/pkg/physics"
)

// maxFrameTime caps the elapsed time fed into one Advance call. A long
// stall (debugger, suspended laptop) otherwise turns into a burst of
// catch-up ticks that freezes the frame loop. The effective cap is
// never less than one step, so tick rates slower than 10 Hz still run
// at real time.
const maxFrameTime = 0.1

// Simulation owns the ship and advances it on a fixed timestep. Each
// tick polls the input source once and runs the three update routines
// in a fixed order: orientation, then propulsion, then position. Thrust
// is therefore applied along the tick's new heading and the position
// integrates the tick's new velocity.
type Simulation struct {
	Config   *config.SimConfig
	EventBus *event.Bus

	ship   *entity.Ship
	bounds physics.Rect
	input  InputSource
	logger *logging.Logger

	stateLock   sync.RWMutex
	currentTick uint64
	running     bool

	// accumulator state, owned by the goroutine driving Advance
	step        float64
	accumulator float64
	lastUpdate  time.Time

	metrics metrics
}

// ShipState is a point-in-time snapshot of the ship, safe to hand to
// renderers and debug tooling on other goroutines.
type ShipState struct {
	Tick     uint64
	Position physics.Vector2D
	Velocity physics.Vector2D
	Heading  float64
	Fuel     float64
}

// NewSimulation creates a simulation from the configuration. A nil bus
// or logger gets a fresh default, so callers that don't care about
// events or logging can pass nil for both.
func NewSimulation(cfg *config.SimConfig, bus *event.Bus, logger *logging.Logger) *Simulation {
	if bus == nil {
		bus = event.NewEventBus()
	}
	if logger == nil {
		logger = logging.NewLogger()
	}

	return &Simulation{
		Config:   cfg,
		EventBus: bus,
		ship:     entity.NewShip(cfg.Ship.Stats()),
		bounds:   cfg.ScreenRect(),
		logger:   logger,
		step:     1.0 / float64(cfg.TickRate),
	}
}

// SetInputSource installs the source polled each tick. Passing nil
// detaches input entirely.
func (s *Simulation) SetInputSource(src InputSource) {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()
	s.input = src
}

// SetBounds replaces the screen rect positions wrap against. The Engo
// frontend pushes the live window size here every frame. An invalid
// rect suspends position updates until a valid one arrives.
func (s *Simulation) SetBounds(ctx context.Context, bounds physics.Rect) {
	s.stateLock.Lock()
	changed := bounds != s.bounds
	s.bounds = bounds
	s.stateLock.Unlock()

	if changed && !bounds.Valid() {
		s.logger.Warn(ctx, "invalid screen bounds, position updates suspended",
			"width", bounds.Width,
			"height", bounds.Height,
		)
	}
}

// Bounds returns the current screen rect
func (s *Simulation) Bounds() physics.Rect {
	s.stateLock.RLock()
	defer s.stateLock.RUnlock()
	return s.bounds
}

// Start marks the simulation running and publishes the start event
func (s *Simulation) Start(ctx context.Context) {
	s.stateLock.Lock()
	if s.running {
		s.stateLock.Unlock()
		return
	}
	s.running = true
	s.lastUpdate = time.Now()
	tick := s.currentTick
	s.stateLock.Unlock()

	s.EventBus.Publish(event.NewSimEvent(event.SimulationStarted, s, tick))
	s.logger.Info(ctx, "simulation started",
		"tick_rate", s.Config.TickRate,
		"screen_width", s.Config.ScreenWidth,
		"screen_height", s.Config.ScreenHeight,
	)
}

// Stop marks the simulation stopped and publishes the stop event
func (s *Simulation) Stop(ctx context.Context) {
	s.stateLock.Lock()
	if !s.running {
		s.stateLock.Unlock()
		return
	}
	s.running = false
	tick := s.currentTick
	s.stateLock.Unlock()

	s.EventBus.Publish(event.NewSimEvent(event.SimulationStopped, s, tick))

	stats := s.Stats()
	s.logger.Info(ctx, "simulation stopped",
		"ticks", stats.Ticks,
		"slow_ticks", stats.SlowTicks,
	)
}

// Running reports whether Start has been called without a matching Stop
func (s *Simulation) Running() bool {
	s.stateLock.RLock()
	defer s.stateLock.RUnlock()
	return s.running
}

// CurrentTick returns the number of completed ticks
func (s *Simulation) CurrentTick() uint64 {
	s.stateLock.RLock()
	defer s.stateLock.RUnlock()
	return s.currentTick
}

// Snapshot returns a copy of the ship state as of the latest tick
func (s *Simulation) Snapshot() ShipState {
	s.stateLock.RLock()
	defer s.stateLock.RUnlock()
	return s.snapshotLocked()
}

func (s *Simulation) snapshotLocked() ShipState {
	return ShipState{
		Tick:     s.currentTick,
		Position: s.ship.Position,
		Velocity: s.ship.Velocity,
		Heading:  s.ship.Heading,
		Fuel:     s.ship.Fuel,
	}
}

// Step advances the simulation by exactly one tick of the given length.
// Events raised by the tick are published after the state lock is
// released, so handlers may call Snapshot or any other accessor.
func (s *Simulation) Step(deltaTime float64) {
	for _, e := range s.advanceTick(deltaTime) {
		s.EventBus.Publish(e)
	}
}

// advanceTick runs the three update routines under the state lock and
// returns the events the tick produced.
func (s *Simulation) advanceTick(deltaTime float64) []event.Event {
	started := time.Now()

	s.stateLock.Lock()
	defer s.stateLock.Unlock()

	in := InputState{}
	if s.input != nil {
		in = s.input.Poll()
	}

	fuelBefore := s.ship.Fuel

	s.ship.UpdateOrientation(deltaTime, in.TurnLeft, in.TurnRight)
	s.ship.UpdatePropulsion(deltaTime, in.Thrust)

	// UpdatePosition repeats this exact integration before wrapping, so
	// comparing against it detects whether a wrap occurred this tick.
	unwrapped := s.ship.Position.Add(s.ship.Velocity.Scale(deltaTime))
	s.ship.UpdatePosition(deltaTime, s.bounds)

	s.currentTick++
	tick := s.currentTick

	var events []event.Event
	if fuelBefore > 0 && s.ship.Fuel <= 0 {
		events = append(events, event.NewSimEvent(event.FuelDepleted, s, tick))
	}
	if s.bounds.Valid() && unwrapped != s.ship.Position {
		events = append(events, event.NewWrapEvent(s, tick,
			unwrapped, s.ship.Position,
			unwrapped.X != s.ship.Position.X,
			unwrapped.Y != s.ship.Position.Y,
		))
	}

	s.metrics.recordStep(time.Since(started), s.stepBudget())
	return events
}

// Advance feeds elapsed wall-clock seconds into the fixed-step
// accumulator and runs as many whole ticks as fit, returning the count.
// The accumulator keeps the remainder, so tick length never varies with
// frame rate. Advance is driven from a single loop and is not safe for
// concurrent callers.
func (s *Simulation) Advance(elapsed float64) int {
	if elapsed < 0 {
		return 0
	}
	frameCap := maxFrameTime
	if s.step > frameCap {
		frameCap = s.step
	}
	if elapsed > frameCap {
		elapsed = frameCap
	}

	s.accumulator += elapsed
	steps := 0
	for s.accumulator >= s.step {
		s.Step(s.step)
		s.accumulator -= s.step
		steps++
	}

	s.metrics.recordFrame(steps)
	return steps
}

// Update advances by the wall-clock time since the previous Update
// call. This is the entry point for loops that tick on real time; the
// Engo frontend calls Advance directly with its frame delta instead.
func (s *Simulation) Update() int {
	now := time.Now()
	elapsed := now.Sub(s.lastUpdate).Seconds()
	s.lastUpdate = now
	return s.Advance(elapsed)
}

// RenderTo draws the latest snapshot through the given renderer
func (s *Simulation) RenderTo(r entity.Renderer) {
	state := s.Snapshot()
	ship := entity.Ship{
		Position: state.Position,
		Velocity: state.Velocity,
		Heading:  state.Heading,
		Fuel:     state.Fuel,
		Stats:    s.Config.Ship.Stats(),
	}

	r.Clear()
	r.RenderShip(&ship)
	r.Present()
}

// Run drives the simulation from a real-time ticker until the context
// is cancelled. When a renderer is supplied each tick's result is drawn
// after the update. Returns the context's error on exit.
func (s *Simulation) Run(ctx context.Context, r entity.Renderer) error {
	s.Start(ctx)
	defer s.Stop(ctx)

	ticker := time.NewTicker(s.stepBudget())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Update()
			if r != nil {
				s.RenderTo(r)
			}
		}
	}
}

// Stats returns a snapshot of the loop health counters
func (s *Simulation) Stats() Stats {
	return s.metrics.snapshot()
}

func (s *Simulation) stepBudget() time.Duration {
	return time.Duration(s.step * float64(time.Second))
}
