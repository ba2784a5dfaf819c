// Package debug provides inspection tooling for a running simulation.
// It renders ship state snapshots as log-friendly strings and runs
// invariant checks that flag state corruption before it shows up as
// visual glitches.
package debug

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/opd-ai/go-starship/pkg/entity"
	"github.com/opd-ai/go-starship/pkg/physics"
	"github.com/opd-ai/go-starship/pkg/sim"
)

// Check defines the interface for individual state checks. Each
// invariant gets its own implementation so failures name the exact
// property that broke.
type Check interface {
	// Name returns the unique name of this check
	Name() string
	// Check inspects the snapshot and returns an error if the invariant
	// does not hold
	Check(state sim.ShipState, bounds physics.Rect) error
}

// CheckResult holds the outcome of one check.
type CheckResult struct {
	OK      bool
	Message string
}

// Report aggregates the results of an inspection run.
type Report struct {
	Tick    uint64
	Results map[string]CheckResult
}

// Healthy reports whether every check passed.
func (r Report) Healthy() bool {
	for _, result := range r.Results {
		if !result.OK {
			return false
		}
	}
	return true
}

// String formats the report on a single line, listing failing checks by
// name in sorted order.
func (r Report) String() string {
	if r.Healthy() {
		return fmt.Sprintf("tick %d: all checks passed", r.Tick)
	}

	names := make([]string, 0, len(r.Results))
	for name, result := range r.Results {
		if !result.OK {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+r.Results[name].Message)
	}
	return fmt.Sprintf("tick %d: %s", r.Tick, strings.Join(parts, "; "))
}

// Inspector manages and executes state checks.
type Inspector struct {
	checks map[string]Check
	mu     sync.RWMutex
}

// NewInspector creates an inspector with no checks registered.
func NewInspector() *Inspector {
	return &Inspector{
		checks: make(map[string]Check),
	}
}

// DefaultInspector creates an inspector preloaded with the built-in
// checks.
func DefaultInspector() *Inspector {
	inspector := NewInspector()
	inspector.AddCheck(NewFuelRangeCheck())
	inspector.AddCheck(NewFiniteMotionCheck())
	inspector.AddCheck(NewInBoundsCheck())
	return inspector
}

// AddCheck registers a check. A check with the same name replaces the
// existing one.
func (i *Inspector) AddCheck(check Check) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.checks[check.Name()] = check
}

// RemoveCheck removes a check by name.
func (i *Inspector) RemoveCheck(name string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.checks, name)
}

// Inspect runs all registered checks against the snapshot and returns
// the aggregated report.
func (i *Inspector) Inspect(state sim.ShipState, bounds physics.Rect) Report {
	i.mu.RLock()
	defer i.mu.RUnlock()

	report := Report{
		Tick:    state.Tick,
		Results: make(map[string]CheckResult),
	}

	for name, check := range i.checks {
		if err := check.Check(state, bounds); err != nil {
			report.Results[name] = CheckResult{
				OK:      false,
				Message: err.Error(),
			}
		} else {
			report.Results[name] = CheckResult{OK: true}
		}
	}

	return report
}

// InspectSimulation inspects the simulation's latest snapshot against
// its current bounds.
func (i *Inspector) InspectSimulation(s *sim.Simulation) Report {
	return i.Inspect(s.Snapshot(), s.Bounds())
}

// Dump formats a snapshot on a single line for logging and terminal
// output.
func Dump(state sim.ShipState) string {
	return fmt.Sprintf("tick=%d pos=(%.2f,%.2f) vel=(%.2f,%.2f) speed=%.2f heading=%.3f fuel=%.1f",
		state.Tick,
		state.Position.X, state.Position.Y,
		state.Velocity.X, state.Velocity.Y,
		state.Velocity.Length(),
		state.Heading,
		state.Fuel,
	)
}

// FuelRangeCheck verifies the fuel gauge stays within tank capacity.
type FuelRangeCheck struct{}

// NewFuelRangeCheck creates a fuel range check.
func NewFuelRangeCheck() *FuelRangeCheck {
	return &FuelRangeCheck{}
}

// Name returns the name of this check.
func (c *FuelRangeCheck) Name() string {
	return "fuel_range"
}

// Check verifies that fuel is within [0, capacity].
func (c *FuelRangeCheck) Check(state sim.ShipState, bounds physics.Rect) error {
	if state.Fuel < 0 {
		return fmt.Errorf("fuel %.2f is below zero", state.Fuel)
	}
	if state.Fuel > entity.MaxFuel {
		return fmt.Errorf("fuel %.2f exceeds capacity %.0f", state.Fuel, entity.MaxFuel)
	}
	return nil
}

// FiniteMotionCheck verifies that position, velocity, and heading hold
// finite values. NaN or infinity here means a bad delta or config value
// got through.
type FiniteMotionCheck struct{}

// NewFiniteMotionCheck creates a finite motion check.
func NewFiniteMotionCheck() *FiniteMotionCheck {
	return &FiniteMotionCheck{}
}

// Name returns the name of this check.
func (c *FiniteMotionCheck) Name() string {
	return "finite_motion"
}

// Check verifies that all motion values are finite.
func (c *FiniteMotionCheck) Check(state sim.ShipState, bounds physics.Rect) error {
	if !state.Position.IsFinite() {
		return fmt.Errorf("position is not finite: (%v, %v)", state.Position.X, state.Position.Y)
	}
	if !state.Velocity.IsFinite() {
		return fmt.Errorf("velocity is not finite: (%v, %v)", state.Velocity.X, state.Velocity.Y)
	}
	if !isFinite(state.Heading) {
		return fmt.Errorf("heading is not finite: %v", state.Heading)
	}
	return nil
}

// InBoundsCheck verifies the wrapped position landed inside the screen
// rect. With invalid bounds position updates are suspended, so the
// check passes vacuously.
type InBoundsCheck struct{}

// NewInBoundsCheck creates an in-bounds check.
func NewInBoundsCheck() *InBoundsCheck {
	return &InBoundsCheck{}
}

// Name returns the name of this check.
func (c *InBoundsCheck) Name() string {
	return "in_bounds"
}

// Check verifies the position lies within the screen rect.
func (c *InBoundsCheck) Check(state sim.ShipState, bounds physics.Rect) error {
	if !bounds.Valid() {
		return nil
	}
	if !bounds.Contains(state.Position) {
		return fmt.Errorf("position (%.2f, %.2f) is outside the %gx%g screen rect",
			state.Position.X, state.Position.Y, bounds.Width, bounds.Height)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
