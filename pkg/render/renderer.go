// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-starship/pkg/entity"
	"github.com/opd-ai/go-starship/pkg/logging"
)

// NullRenderer is an entity.Renderer that draws nothing. It logs each
// call at debug level, which makes headless runs traceable without a
// display.
type NullRenderer struct {
	logger *logging.Logger
}

// NewNullRenderer creates a new NullRenderer with structured logging.
func NewNullRenderer() *NullRenderer {
	return &NullRenderer{
		logger: logging.NewLogger(),
	}
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear() {
	ctx := context.Background()
	d.logger.Debug(ctx, "Clear called")
}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() {
	ctx := context.Background()
	d.logger.Debug(ctx, "Present called")
}

// RenderShip implements entity.Renderer.
func (d *NullRenderer) RenderShip(ship *entity.Ship) {
	ctx := context.Background()
	if ship == nil {
		d.logger.Debug(ctx, "RenderShip called with nil ship")
		return
	}
	d.logger.Debug(ctx, "RenderShip called",
		"position_x", ship.Position.X,
		"position_y", ship.Position.Y,
		"heading", ship.Heading,
		"fuel", ship.Fuel,
	)
}

// NullRendererInstance is a global instance of NullRenderer for convenience.
var NullRendererInstance entity.Renderer = NewNullRenderer()
