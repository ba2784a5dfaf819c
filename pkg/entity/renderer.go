package entity

// Renderer handles drawing the simulation for one frontend. Clear wipes
// the previous frame, RenderShip draws the ship, Present flushes the
// frame to the output device.
type Renderer interface {
	RenderShip(ship *Ship)
	Clear()
	Present()
}
