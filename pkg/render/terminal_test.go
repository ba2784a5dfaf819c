package render

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/opd-ai/go-starship/pkg/entity"
	"github.com/opd-ai/go-starship/pkg/physics"
)

// TestNewTerminalRenderer tests the creation of a new terminal renderer
func TestNewTerminalRenderer_CreatesValidRenderer_WithCorrectDimensions(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		scale  float64
	}{
		{
			name:   "small renderer",
			width:  10,
			height: 5,
			scale:  1.0,
		},
		{
			name:   "medium renderer",
			width:  80,
			height: 24,
			scale:  10.0,
		},
		{
			name:   "large renderer",
			width:  120,
			height: 40,
			scale:  5.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer := NewTerminalRenderer(tt.width, tt.height, tt.scale)

			if renderer == nil {
				t.Fatal("NewTerminalRenderer returned nil")
			}

			if renderer.width != tt.width {
				t.Errorf("expected width %d, got %d", tt.width, renderer.width)
			}

			if renderer.height != tt.height {
				t.Errorf("expected height %d, got %d", tt.height, renderer.height)
			}

			if renderer.scale != tt.scale {
				t.Errorf("expected scale %f, got %f", tt.scale, renderer.scale)
			}

			if len(renderer.buffer) != tt.height {
				t.Errorf("expected buffer height %d, got %d", tt.height, len(renderer.buffer))
			}

			for i, row := range renderer.buffer {
				if len(row) != tt.width {
					t.Errorf("row %d: expected width %d, got %d", i, tt.width, len(row))
				}
			}

			expectedCenter := physics.Vector2D{X: 0, Y: 0}
			if renderer.centerPos != expectedCenter {
				t.Errorf("expected center %v, got %v", expectedCenter, renderer.centerPos)
			}
		})
	}
}

// TestSetCenter tests setting the center position
func TestSetCenter_UpdatesCenterPosition_Correctly(t *testing.T) {
	renderer := NewTerminalRenderer(80, 24, 1.0)

	tests := []struct {
		name     string
		position physics.Vector2D
	}{
		{
			name:     "origin",
			position: physics.Vector2D{X: 0, Y: 0},
		},
		{
			name:     "positive coordinates",
			position: physics.Vector2D{X: 100.5, Y: 200.75},
		},
		{
			name:     "negative coordinates",
			position: physics.Vector2D{X: -50.25, Y: -75.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer.SetCenter(tt.position)

			if renderer.centerPos != tt.position {
				t.Errorf("expected center %v, got %v", tt.position, renderer.centerPos)
			}
		})
	}
}

// TestWorldToScreen tests coordinate conversion from world to screen
// space. World +Y is up, so larger Y values land on smaller row indices.
func TestWorldToScreen_ConvertsCoordinates_Correctly(t *testing.T) {
	renderer := NewTerminalRenderer(80, 24, 10.0) // 80x24 screen, scale 10

	tests := []struct {
		name      string
		centerPos physics.Vector2D
		worldPos  physics.Vector2D
		expectedX int
		expectedY int
	}{
		{
			name:      "center at origin, world at origin",
			centerPos: physics.Vector2D{X: 0, Y: 0},
			worldPos:  physics.Vector2D{X: 0, Y: 0},
			expectedX: 40, // width/2
			expectedY: 12, // height/2
		},
		{
			name:      "center at origin, world offset",
			centerPos: physics.Vector2D{X: 0, Y: 0},
			worldPos:  physics.Vector2D{X: 100, Y: 50},
			expectedX: 50, // 40 + 100/10
			expectedY: 7,  // 12 - 50/10
		},
		{
			name:      "center offset, world at origin",
			centerPos: physics.Vector2D{X: 50, Y: 30},
			worldPos:  physics.Vector2D{X: 0, Y: 0},
			expectedX: 35, // 40 + (0-50)/10
			expectedY: 15, // 12 - (0-30)/10
		},
		{
			name:      "both center and world offset",
			centerPos: physics.Vector2D{X: 100, Y: 50},
			worldPos:  physics.Vector2D{X: 200, Y: 150},
			expectedX: 50, // 40 + (200-100)/10
			expectedY: 2,  // 12 - (150-50)/10
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer.SetCenter(tt.centerPos)
			x, y := renderer.worldToScreen(tt.worldPos)

			if x != tt.expectedX {
				t.Errorf("expected screen X %d, got %d", tt.expectedX, x)
			}

			if y != tt.expectedY {
				t.Errorf("expected screen Y %d, got %d", tt.expectedY, y)
			}
		})
	}
}

// TestClear tests clearing the buffer
func TestClear_ClearsBuffer_WithSpaces(t *testing.T) {
	renderer := NewTerminalRenderer(10, 5, 1.0)

	for y := 0; y < renderer.height; y++ {
		for x := 0; x < renderer.width; x++ {
			renderer.buffer[y][x] = 'X'
		}
	}

	renderer.Clear()

	for y := 0; y < renderer.height; y++ {
		for x := 0; x < renderer.width; x++ {
			if renderer.buffer[y][x] != ' ' {
				t.Errorf("position (%d, %d) expected space, got %c", x, y, renderer.buffer[y][x])
			}
		}
	}
}

// TestRenderShip tests ship rendering
func TestRenderShip_RendersShip_AtCorrectPosition(t *testing.T) {
	tests := []struct {
		name         string
		ship         *entity.Ship
		expectedChar rune
		expectRender bool
	}{
		{
			name: "ship at center facing up",
			ship: &entity.Ship{
				Position: physics.Vector2D{X: 0, Y: 0},
			},
			expectedChar: '^',
			expectRender: true,
		},
		{
			name: "ship facing left",
			ship: &entity.Ship{
				Position: physics.Vector2D{X: 3, Y: 2},
				Heading:  math.Pi / 2,
			},
			expectedChar: '<',
			expectRender: true,
		},
		{
			name: "ship out of bounds",
			ship: &entity.Ship{
				Position: physics.Vector2D{X: 1000, Y: 1000},
			},
			expectRender: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer := NewTerminalRenderer(20, 10, 1.0)
			renderer.Clear()
			renderer.RenderShip(tt.ship)

			if tt.expectRender {
				x, y := renderer.worldToScreen(tt.ship.Position)
				if x < 0 || x >= renderer.width || y < 0 || y >= renderer.height {
					t.Fatalf("expected on-screen position, got (%d, %d)", x, y)
				}
				if renderer.buffer[y][x] != tt.expectedChar {
					t.Errorf("expected character %c at (%d, %d), got %c", tt.expectedChar, x, y, renderer.buffer[y][x])
				}
			} else {
				for y := 0; y < renderer.height; y++ {
					for x := 0; x < renderer.width; x++ {
						if renderer.buffer[y][x] != ' ' {
							t.Errorf("expected no rendering, but found %c at (%d, %d)", renderer.buffer[y][x], x, y)
						}
					}
				}
			}
		})
	}
}

// TestHeadingGlyph tests the mapping from heading to direction glyph
func TestHeadingGlyph_SelectsNearestDirection(t *testing.T) {
	tests := []struct {
		name     string
		heading  float64
		expected rune
	}{
		{"up", 0, '^'},
		{"up left", math.Pi / 4, '\\'},
		{"left", math.Pi / 2, '<'},
		{"down left", 3 * math.Pi / 4, '/'},
		{"down", math.Pi, 'v'},
		{"down right", 5 * math.Pi / 4, '\\'},
		{"right", 3 * math.Pi / 2, '>'},
		{"up right", 7 * math.Pi / 4, '/'},
		{"full turn", 2 * math.Pi, '^'},
		{"negative quarter turn", -math.Pi / 2, '>'},
		{"slightly off axis", 0.1, '^'},
		{"multiple turns", 4*math.Pi + math.Pi/2, '<'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := headingGlyph(tt.heading); got != tt.expected {
				t.Errorf("headingGlyph(%v) = %c, expected %c", tt.heading, got, tt.expected)
			}
		})
	}
}

// TestPresent tests frame output through a captured writer
func TestPresent_WritesFrame_WithBordersAndStatus(t *testing.T) {
	renderer := NewTerminalRenderer(10, 4, 1.0)
	var out bytes.Buffer
	renderer.SetOutput(&out)

	renderer.Clear()
	renderer.RenderShip(&entity.Ship{
		Velocity: physics.Vector2D{X: 3, Y: 4},
		Fuel:     42.5,
	})
	renderer.Present()

	frame := out.String()

	border := "+" + strings.Repeat("-", 10) + "+"
	if strings.Count(frame, border) != 2 {
		t.Errorf("expected 2 border lines, got %d in %q", strings.Count(frame, border), frame)
	}

	lines := strings.Split(strings.TrimSuffix(frame, "\n"), "\n")
	rowCount := 0
	for _, line := range lines {
		if strings.HasPrefix(line, "|") && strings.HasSuffix(line, "|") {
			rowCount++
		}
	}
	if rowCount != 4 {
		t.Errorf("expected 4 buffer rows, got %d", rowCount)
	}

	if !strings.Contains(frame, "fuel   42.5") {
		t.Errorf("expected status line with fuel readout, got %q", frame)
	}
	if !strings.Contains(frame, "speed    5.00") {
		t.Errorf("expected status line with speed readout, got %q", frame)
	}
	if strings.Contains(frame, "OUT OF FUEL") {
		t.Errorf("did not expect empty-tank banner with fuel remaining, got %q", frame)
	}
}

func TestPresent_ShowsEmptyTankBanner_WhenFuelDepleted(t *testing.T) {
	renderer := NewTerminalRenderer(10, 4, 1.0)
	var out bytes.Buffer
	renderer.SetOutput(&out)

	renderer.Clear()
	renderer.RenderShip(&entity.Ship{Fuel: 0})
	renderer.Present()

	if !strings.Contains(out.String(), "OUT OF FUEL") {
		t.Errorf("expected empty-tank banner, got %q", out.String())
	}
}
