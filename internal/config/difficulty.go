package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty converts a CLI value to a preset.
// An empty string means "use the config as loaded".
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "":
		return "", nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyPreset modifies the obstacle settings for a difficulty preset.
// Normal leaves the loaded config untouched.
func ApplyPreset(cfg *DodgeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Obstacles.BaseSpeed = 2
		cfg.Obstacles.SpeedJitter = 1.5
		cfg.Obstacles.SpawnIntervalMS = 1400
	case DifficultyHard:
		cfg.Obstacles.BaseSpeed = 4
		cfg.Obstacles.SpeedJitter = 3
		cfg.Obstacles.SpawnIntervalMS = 700
	}
}
