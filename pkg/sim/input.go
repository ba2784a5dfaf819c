// pkg/sim/input.go
package sim

// InputState is one tick's worth of control input. The simulation
// samples it exactly once per tick, so holding a key maps to the same
// flag being set across consecutive ticks.
type InputState struct {
	TurnLeft  bool
	TurnRight bool
	Thrust    bool
}

// InputSource supplies the input for each tick. Implementations range
// from live keyboard polling to scripted flight plans; a nil source on
// the simulation reads as no input at all. Poll runs inside the tick
// under the simulation's state lock, so it must not call back into the
// Simulation.
type InputSource interface {
	Poll() InputState
}

// StaticInput is an InputSource that always returns the same state
type StaticInput InputState

// Poll returns the fixed state
func (s StaticInput) Poll() InputState {
	return InputState(s)
}

// InputFunc adapts a plain function to the InputSource interface
type InputFunc func() InputState

// Poll calls the wrapped function
func (f InputFunc) Poll() InputState {
	return f()
}
