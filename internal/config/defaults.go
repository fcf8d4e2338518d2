package config

import (
	_ "embed"
)

//go:embed defaults/trapstreets.yaml
var defaultDodgeYAML []byte

// DefaultDodgeConfig returns the default Trap Streets configuration.
func DefaultDodgeConfig() DodgeConfig {
	return DodgeConfig{
		Canvas: CanvasConfig{
			Width:  600,
			Height: 400,
		},
		Player: PlayerConfig{
			Width:        30,
			Height:       30,
			Speed:        5,
			BottomMargin: 10,
		},
		Obstacles: ObstacleConfig{
			Width:           40,
			Height:          20,
			BaseSpeed:       3,
			SpeedJitter:     2,
			SpawnIntervalMS: 1000,
		},
		Rules: RulesConfig{
			WinSeconds: 30,
		},
		Input: InputConfig{
			HoldMS:        180,
			RepeatDelayMS: 550,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultDodgeYAML
}
