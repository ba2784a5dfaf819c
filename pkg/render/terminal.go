package render

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/opd-ai/go-starship/pkg/entity"
	"github.com/opd-ai/go-starship/pkg/physics"
)

// TerminalRenderer provides a simple ASCII-based rendering for terminals
type TerminalRenderer struct {
	width     int
	height    int
	buffer    [][]rune
	scale     float64
	centerPos physics.Vector2D
	status    string
	out       io.Writer
}

// NewTerminalRenderer creates a new terminal renderer with the specified
// dimensions. scale is the number of world units per character cell.
func NewTerminalRenderer(width, height int, scale float64) *TerminalRenderer {
	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = make([]rune, width)
	}

	return &TerminalRenderer{
		width:  width,
		height: height,
		buffer: buffer,
		scale:  scale,
		centerPos: physics.Vector2D{
			X: 0,
			Y: 0,
		},
		out: os.Stdout,
	}
}

// SetCenter sets the center position of the view
func (r *TerminalRenderer) SetCenter(pos physics.Vector2D) {
	r.centerPos = pos
}

// SetOutput redirects frame output away from stdout
func (r *TerminalRenderer) SetOutput(w io.Writer) {
	r.out = w
}

// worldToScreen converts world coordinates to screen coordinates.
// World +Y points up, so the row index flips around the vertical center.
func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (int, int) {
	screenX := int((pos.X-r.centerPos.X)/r.scale + float64(r.width)/2)
	screenY := int(float64(r.height)/2 - (pos.Y-r.centerPos.Y)/r.scale)
	return screenX, screenY
}

// Clear implements entity.Renderer
func (r *TerminalRenderer) Clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = ' '
		}
	}
}

// Present implements entity.Renderer. The frame is built as one string
// and written in a single call so a slow terminal doesn't tear
// mid-frame.
func (r *TerminalRenderer) Present() {
	var b strings.Builder

	// Cursor home, clear terminal
	b.WriteString("\033[H\033[2J")

	border := "+" + strings.Repeat("-", r.width) + "+\n"
	b.WriteString(border)
	for y := range r.buffer {
		b.WriteString("|")
		b.WriteString(string(r.buffer[y]))
		b.WriteString("|\n")
	}
	b.WriteString(border)

	if r.status != "" {
		b.WriteString(r.status)
		b.WriteString("\n")
	}

	fmt.Fprint(r.out, b.String())
}

// RenderShip implements entity.Renderer. The ship draws as a glyph
// pointing along its heading, and the frame's status line picks up the
// ship's fuel and motion readouts.
func (r *TerminalRenderer) RenderShip(ship *entity.Ship) {
	x, y := r.worldToScreen(ship.Position)

	if x >= 0 && x < r.width && y >= 0 && y < r.height {
		r.buffer[y][x] = headingGlyph(ship.Heading)
	}

	r.status = statusLine(ship)
}

// headingGlyph maps a heading in radians to the nearest of eight
// direction glyphs. Heading 0 points up and positive headings turn
// counterclockwise.
func headingGlyph(heading float64) rune {
	glyphs := [8]rune{'^', '\\', '<', '/', 'v', '\\', '>', '/'}

	sector := math.Mod(heading, 2*math.Pi) / (math.Pi / 4)
	if sector < 0 {
		sector += 8
	}
	return glyphs[int(math.Round(sector))%8]
}

func statusLine(ship *entity.Ship) string {
	line := fmt.Sprintf("fuel %6.1f  speed %7.2f  heading %5.2f  pos (%8.1f, %8.1f)",
		ship.Fuel,
		ship.Velocity.Length(),
		ship.Heading,
		ship.Position.X,
		ship.Position.Y,
	)
	if ship.Fuel <= 0 {
		line += "  OUT OF FUEL"
	}
	return line
}
