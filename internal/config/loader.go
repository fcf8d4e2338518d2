package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "trapstreets.yaml"

// searchPaths lists where LoadDodge looks when no path is given, most
// specific first.
func searchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".arcade", "configs", configFile))
	}
	return append(paths, filepath.Join("configs", configFile))
}

// LoadDodge reads the gameplay config. An explicit path must exist and
// parse. Otherwise the first readable file from searchPaths wins, and the
// embedded defaults are used when there is none. Broken files on the search
// path are skipped.
//
// Files only set what they change. Missing fields keep their defaults.
func LoadDodge(customPath string) (DodgeConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DodgeConfig{}, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return DodgeConfig{}, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, p := range searchPaths() {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := parse(defaultDodgeYAML); err == nil {
		return cfg, nil
	}
	return DefaultDodgeConfig(), nil
}

// Load reads the config, applies preset on top and validates the result.
func Load(customPath string, preset DifficultyPreset) (DodgeConfig, error) {
	cfg, err := LoadDodge(customPath)
	if err != nil {
		return DodgeConfig{}, err
	}
	ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return DodgeConfig{}, err
	}
	return cfg, nil
}

// parse decodes YAML over the hardcoded defaults.
func parse(data []byte) (DodgeConfig, error) {
	cfg := DefaultDodgeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DodgeConfig{}, err
	}
	return cfg, nil
}
