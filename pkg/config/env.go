// pkg/config/env.go
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variable names recognized by ApplyEnvironmentOverrides.
const (
	EnvScreenWidth   = "STARSHIP_SCREEN_WIDTH"
	EnvScreenHeight  = "STARSHIP_SCREEN_HEIGHT"
	EnvTickRate      = "STARSHIP_TICK_RATE"
	EnvRotationSpeed = "STARSHIP_ROTATION_SPEED"
	EnvThrustPower   = "STARSHIP_THRUST_POWER"
	EnvInitialFuel   = "STARSHIP_INITIAL_FUEL"
	EnvWindowTitle   = "STARSHIP_WINDOW_TITLE"
	EnvFullscreen    = "STARSHIP_FULLSCREEN"
	EnvVSync         = "STARSHIP_VSYNC"
	EnvSpriteSheet   = "STARSHIP_SPRITE_SHEET"
)

// ApplyEnvironmentOverrides mutates the configuration from STARSHIP_*
// environment variables. Unset variables leave the existing values in
// place; a set variable that fails to parse aborts with a descriptive
// error rather than silently keeping the old value.
func ApplyEnvironmentOverrides(cfg *SimConfig) error {
	if err := getEnvFloat(EnvScreenWidth, &cfg.ScreenWidth); err != nil {
		return err
	}
	if err := getEnvFloat(EnvScreenHeight, &cfg.ScreenHeight); err != nil {
		return err
	}
	if err := getEnvInt(EnvTickRate, &cfg.TickRate); err != nil {
		return err
	}
	if err := getEnvFloat(EnvRotationSpeed, &cfg.Ship.RotationSpeed); err != nil {
		return err
	}
	if err := getEnvFloat(EnvThrustPower, &cfg.Ship.ThrustPower); err != nil {
		return err
	}
	if err := getEnvFloat(EnvInitialFuel, &cfg.Ship.InitialFuel); err != nil {
		return err
	}
	getEnvString(EnvWindowTitle, &cfg.Window.Title)
	if err := getEnvBool(EnvFullscreen, &cfg.Window.Fullscreen); err != nil {
		return err
	}
	if err := getEnvBool(EnvVSync, &cfg.Window.VSync); err != nil {
		return err
	}
	getEnvString(EnvSpriteSheet, &cfg.Window.SpriteSheet)
	return nil
}

// LoadConfigFromEnv returns the default configuration with environment
// overrides applied and validated. This is the no-config-file path.
func LoadConfigFromEnv() (*SimConfig, error) {
	cfg := DefaultConfig()
	if err := ApplyEnvironmentOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("environment configuration invalid: %w", err)
	}
	return cfg, nil
}

func getEnvFloat(name string, dst *float64) error {
	raw := os.Getenv(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid value %q for %s: %w", raw, name, err)
	}
	*dst = value
	return nil
}

func getEnvInt(name string, dst *int) error {
	raw := os.Getenv(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid value %q for %s: %w", raw, name, err)
	}
	*dst = value
	return nil
}

func getEnvBool(name string, dst *bool) error {
	raw := os.Getenv(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("invalid value %q for %s: %w", raw, name, err)
	}
	*dst = value
	return nil
}

func getEnvString(name string, dst *string) {
	if raw := os.Getenv(name); raw != "" {
		*dst = raw
	}
}
