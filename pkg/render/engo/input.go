// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-starship/pkg/sim"
)

// InputSystem samples the keyboard once per frame and exposes the
// result as the simulation's input source. Poll hands back the sampled
// state without touching engo, so the simulation can read it from
// inside its tick.
type InputSystem struct {
	thrustPressed    bool
	turnLeftPressed  bool
	turnRightPressed bool
}

// NewInputSystem creates a new input system
func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {
	// Not used for input system
}

// Update samples the control buttons for this frame
func (is *InputSystem) Update(dt float32) {
	is.thrustPressed = engo.Input.Button("thrust").Down()
	is.turnLeftPressed = engo.Input.Button("turnLeft").Down()
	is.turnRightPressed = engo.Input.Button("turnRight").Down()

	if engo.Input.Button("quit").JustPressed() {
		engo.Exit()
	}
}

// Poll implements sim.InputSource with the most recently sampled state
func (is *InputSystem) Poll() sim.InputState {
	return sim.InputState{
		TurnLeft:  is.turnLeftPressed,
		TurnRight: is.turnRightPressed,
		Thrust:    is.thrustPressed,
	}
}

// SetupInputBindings sets up the key bindings for the game
func SetupInputBindings() {
	engo.Input.RegisterButton("thrust", engo.KeyW, engo.KeyArrowUp)
	engo.Input.RegisterButton("turnLeft", engo.KeyA, engo.KeyArrowLeft)
	engo.Input.RegisterButton("turnRight", engo.KeyD, engo.KeyArrowRight)
	engo.Input.RegisterButton("quit", engo.KeyEscape)
}
