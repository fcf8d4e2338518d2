// Package config provides YAML-based game configuration loading and
// difficulty presets for Trap Streets.
package config

import (
	"errors"
	"fmt"
	"time"
)

// DodgeConfig contains all gameplay constants for a Trap Streets session.
// Values are read once before a session starts and never change while it runs.
type DodgeConfig struct {
	Canvas    CanvasConfig   `yaml:"canvas"`
	Player    PlayerConfig   `yaml:"player"`
	Obstacles ObstacleConfig `yaml:"obstacles"`
	Rules     RulesConfig    `yaml:"rules"`
	Input     InputConfig    `yaml:"input"`
}

// CanvasConfig is the logical play field size in canvas units.
// Hosts scale it onto whatever drawing surface they own.
type CanvasConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerConfig defines the player block.
type PlayerConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Speed        float64 `yaml:"speed"`         // Canvas units per frame
	BottomMargin float64 `yaml:"bottom_margin"` // Gap between player and canvas bottom
}

// ObstacleConfig defines falling obstacles.
type ObstacleConfig struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	BaseSpeed       float64 `yaml:"base_speed"`        // Canvas units per frame
	SpeedJitter     float64 `yaml:"speed_jitter"`      // Random extra speed in [0, jitter)
	SpawnIntervalMS int     `yaml:"spawn_interval_ms"` // Wall-clock gap between spawns
}

// RulesConfig defines win/lose rules.
type RulesConfig struct {
	WinSeconds int `yaml:"win_seconds"`
}

// InputConfig tunes how hosts without key-up events emulate held keys.
type InputConfig struct {
	HoldMS        int `yaml:"hold_ms"`         // Gap between auto-repeats that still counts as held
	RepeatDelayMS int `yaml:"repeat_delay_ms"` // How long a first press counts as held before repeats start
}

// SpawnInterval returns the spawn interval as a duration.
func (c DodgeConfig) SpawnInterval() time.Duration {
	return time.Duration(c.Obstacles.SpawnIntervalMS) * time.Millisecond
}

// HoldWindow returns how long a repeating key stays held after its last
// repeat.
func (c DodgeConfig) HoldWindow() time.Duration {
	return time.Duration(c.Input.HoldMS) * time.Millisecond
}

// RepeatDelay returns how long a first press stays held without a repeat.
func (c DodgeConfig) RepeatDelay() time.Duration {
	return time.Duration(c.Input.RepeatDelayMS) * time.Millisecond
}

// Validate reports every invalid field in the config.
func (c DodgeConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("canvas.width", c.Canvas.Width)
	positive("canvas.height", c.Canvas.Height)
	positive("player.width", c.Player.Width)
	positive("player.height", c.Player.Height)
	positive("player.speed", c.Player.Speed)
	positive("obstacles.width", c.Obstacles.Width)
	positive("obstacles.height", c.Obstacles.Height)
	positive("obstacles.base_speed", c.Obstacles.BaseSpeed)
	positive("obstacles.spawn_interval_ms", float64(c.Obstacles.SpawnIntervalMS))
	positive("rules.win_seconds", float64(c.Rules.WinSeconds))

	if c.Obstacles.SpeedJitter < 0 {
		errs = append(errs, fmt.Errorf("obstacles.speed_jitter must not be negative, got %v", c.Obstacles.SpeedJitter))
	}
	if c.Player.BottomMargin < 0 {
		errs = append(errs, fmt.Errorf("player.bottom_margin must not be negative, got %v", c.Player.BottomMargin))
	}
	if c.Input.HoldMS < 0 {
		errs = append(errs, fmt.Errorf("input.hold_ms must not be negative, got %v", c.Input.HoldMS))
	}
	if c.Input.RepeatDelayMS < 0 {
		errs = append(errs, fmt.Errorf("input.repeat_delay_ms must not be negative, got %v", c.Input.RepeatDelayMS))
	}
	if c.Player.Width > c.Canvas.Width {
		errs = append(errs, fmt.Errorf("player.width %v exceeds canvas.width %v", c.Player.Width, c.Canvas.Width))
	}
	if c.Obstacles.Width > c.Canvas.Width {
		errs = append(errs, fmt.Errorf("obstacles.width %v exceeds canvas.width %v", c.Obstacles.Width, c.Canvas.Width))
	}
	if c.Player.Height+c.Player.BottomMargin > c.Canvas.Height {
		errs = append(errs, fmt.Errorf("player does not fit in canvas.height %v", c.Canvas.Height))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid trapstreets config: %w", errors.Join(errs...))
	}
	return nil
}
