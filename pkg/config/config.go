// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/opd-ai/go-starship/pkg/entity"
	"github.com/opd-ai/go-starship/pkg/physics"
)

// SimConfig contains the full configuration for a demo run
type SimConfig struct {
	ScreenWidth  float64      `json:"screenWidth"`
	ScreenHeight float64      `json:"screenHeight"`
	TickRate     int          `json:"tickRate"`
	Ship         ShipConfig   `json:"ship"`
	Window       WindowConfig `json:"window"`
}

// ShipConfig contains the ship tuning scalars
type ShipConfig struct {
	RotationSpeed float64 `json:"rotationSpeed"`
	ThrustPower   float64 `json:"thrustPower"`
	InitialFuel   float64 `json:"initialFuel"`
}

// WindowConfig contains window options for the Engo frontend
type WindowConfig struct {
	Title       string `json:"title"`
	Fullscreen  bool   `json:"fullscreen"`
	VSync       bool   `json:"vsync"`
	SpriteSheet string `json:"spriteSheet,omitempty"`
}

// Stats converts the ship configuration to entity tuning
func (c ShipConfig) Stats() entity.ShipStats {
	return entity.ShipStats{
		RotationSpeed: c.RotationSpeed,
		ThrustPower:   c.ThrustPower,
		InitialFuel:   c.InitialFuel,
	}
}

// ScreenRect returns the origin-centered screen rect the simulation
// wraps positions against
func (c *SimConfig) ScreenRect() physics.Rect {
	return physics.NewScreenRect(c.ScreenWidth, c.ScreenHeight)
}

// DefaultConfig returns the stock demo configuration
func DefaultConfig() *SimConfig {
	return &SimConfig{
		ScreenWidth:  1024,
		ScreenHeight: 768,
		TickRate:     60,
		Ship: ShipConfig{
			RotationSpeed: 1.0,
			ThrustPower:   100,
			InitialFuel:   100,
		},
		Window: WindowConfig{
			Title:      "Go Starship",
			Fullscreen: false,
			VSync:      true,
		},
	}
}

// LoadConfig loads a configuration from a file
func LoadConfig(path string) (*SimConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config SimConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *SimConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the configuration against the simulation's
// preconditions. The demo refuses to start on the first violation
// found.
func (c *SimConfig) Validate() error {
	if !c.ScreenRect().Valid() {
		return fmt.Errorf("screen dimensions must be positive and finite, got %gx%g",
			c.ScreenWidth, c.ScreenHeight)
	}
	if c.TickRate < 1 || c.TickRate > 1000 {
		return fmt.Errorf("tick rate must be between 1 and 1000, got %d", c.TickRate)
	}
	if !isFiniteNonNegative(c.Ship.RotationSpeed) {
		return fmt.Errorf("rotation speed must be finite and non-negative, got %g",
			c.Ship.RotationSpeed)
	}
	if !isFiniteNonNegative(c.Ship.ThrustPower) {
		return fmt.Errorf("thrust power must be finite and non-negative, got %g",
			c.Ship.ThrustPower)
	}
	if !isFiniteNonNegative(c.Ship.InitialFuel) || c.Ship.InitialFuel > entity.MaxFuel {
		return fmt.Errorf("initial fuel must be within [0, %g], got %g",
			entity.MaxFuel, c.Ship.InitialFuel)
	}
	if c.Window.Title == "" {
		return fmt.Errorf("window title must not be empty")
	}
	return nil
}

func isFiniteNonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
