// pkg/config/env_test.go
package config

import (
	"os"
	"strings"
	"testing"
)

var allEnvVars = []string{
	EnvScreenWidth,
	EnvScreenHeight,
	EnvTickRate,
	EnvRotationSpeed,
	EnvThrustPower,
	EnvInitialFuel,
	EnvWindowTitle,
	EnvFullscreen,
	EnvVSync,
	EnvSpriteSheet,
}

// clearEnv unsets every STARSHIP_* variable and restores the original
// environment when the test finishes.
func clearEnv(t *testing.T) {
	t.Helper()

	original := make(map[string]string)
	for _, key := range allEnvVars {
		original[key] = os.Getenv(key)
		os.Unsetenv(key)
	}

	t.Cleanup(func() {
		for key, value := range original {
			if value != "" {
				os.Setenv(key, value)
			} else {
				os.Unsetenv(key)
			}
		}
	})
}

func TestApplyEnvironmentOverrides(t *testing.T) {
	clearEnv(t)

	t.Run("NoVariablesKeepsDefaults", func(t *testing.T) {
		cfg := DefaultConfig()
		expected := *DefaultConfig()

		if err := ApplyEnvironmentOverrides(cfg); err != nil {
			t.Fatalf("ApplyEnvironmentOverrides() failed: %v", err)
		}
		if *cfg != expected {
			t.Errorf("Expected untouched config, got %+v", cfg)
		}
	})

	t.Run("OverridesEveryField", func(t *testing.T) {
		os.Setenv(EnvScreenWidth, "1920")
		os.Setenv(EnvScreenHeight, "1080")
		os.Setenv(EnvTickRate, "120")
		os.Setenv(EnvRotationSpeed, "2.5")
		os.Setenv(EnvThrustPower, "150")
		os.Setenv(EnvInitialFuel, "500")
		os.Setenv(EnvWindowTitle, "Override Title")
		os.Setenv(EnvFullscreen, "true")
		os.Setenv(EnvVSync, "false")
		os.Setenv(EnvSpriteSheet, "ship.png")

		cfg := DefaultConfig()
		if err := ApplyEnvironmentOverrides(cfg); err != nil {
			t.Fatalf("ApplyEnvironmentOverrides() failed: %v", err)
		}

		if cfg.ScreenWidth != 1920 {
			t.Errorf("Expected ScreenWidth 1920, got %f", cfg.ScreenWidth)
		}
		if cfg.ScreenHeight != 1080 {
			t.Errorf("Expected ScreenHeight 1080, got %f", cfg.ScreenHeight)
		}
		if cfg.TickRate != 120 {
			t.Errorf("Expected TickRate 120, got %d", cfg.TickRate)
		}
		if cfg.Ship.RotationSpeed != 2.5 {
			t.Errorf("Expected RotationSpeed 2.5, got %f", cfg.Ship.RotationSpeed)
		}
		if cfg.Ship.ThrustPower != 150 {
			t.Errorf("Expected ThrustPower 150, got %f", cfg.Ship.ThrustPower)
		}
		if cfg.Ship.InitialFuel != 500 {
			t.Errorf("Expected InitialFuel 500, got %f", cfg.Ship.InitialFuel)
		}
		if cfg.Window.Title != "Override Title" {
			t.Errorf("Expected title 'Override Title', got '%s'", cfg.Window.Title)
		}
		if !cfg.Window.Fullscreen {
			t.Error("Expected Fullscreen true")
		}
		if cfg.Window.VSync {
			t.Error("Expected VSync false")
		}
		if cfg.Window.SpriteSheet != "ship.png" {
			t.Errorf("Expected SpriteSheet 'ship.png', got '%s'", cfg.Window.SpriteSheet)
		}
	})

	t.Run("InvalidFloatFails", func(t *testing.T) {
		clearEnv(t)
		os.Setenv(EnvScreenWidth, "not-a-number")

		err := ApplyEnvironmentOverrides(DefaultConfig())

		if err == nil {
			t.Fatal("Expected error for invalid float, got nil")
		}
		if !strings.Contains(err.Error(), EnvScreenWidth) {
			t.Errorf("Expected error to name %s, got: %v", EnvScreenWidth, err)
		}
	})

	t.Run("InvalidIntFails", func(t *testing.T) {
		clearEnv(t)
		os.Setenv(EnvTickRate, "sixty")

		if err := ApplyEnvironmentOverrides(DefaultConfig()); err == nil {
			t.Fatal("Expected error for invalid int, got nil")
		}
	})

	t.Run("InvalidBoolFails", func(t *testing.T) {
		clearEnv(t)
		os.Setenv(EnvFullscreen, "maybe")

		if err := ApplyEnvironmentOverrides(DefaultConfig()); err == nil {
			t.Fatal("Expected error for invalid bool, got nil")
		}
	})
}

func TestLoadConfigFromEnv(t *testing.T) {
	clearEnv(t)

	t.Run("DefaultValues", func(t *testing.T) {
		cfg, err := LoadConfigFromEnv()
		if err != nil {
			t.Fatalf("LoadConfigFromEnv() failed: %v", err)
		}

		if *cfg != *DefaultConfig() {
			t.Errorf("Expected defaults, got %+v", cfg)
		}
	})

	t.Run("RejectsInvalidResult", func(t *testing.T) {
		clearEnv(t)
		os.Setenv(EnvScreenWidth, "-1")

		_, err := LoadConfigFromEnv()

		if err == nil {
			t.Fatal("Expected validation error, got nil")
		}
		if !strings.Contains(err.Error(), "environment configuration invalid") {
			t.Errorf("Unexpected error: %v", err)
		}
	})
}
