package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable holding a config path.
const EnvPath = "JAZZ_CONFIG"

// Load loads the configuration.
// Search order: customPath -> ~/.jazz/config.yaml -> ./jazz.yaml -> embedded default
//
// Files are layered over the defaults, so they only need the keys they
// change. A bad custom path is an error, the other locations are skipped
// when missing or unreadable.
func Load(customPath string) (Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, errors.Wrapf(err, "failed to read config %s", customPath)
		}
		cfg, err := parse(data)
		if err != nil {
			return Config{}, errors.Wrapf(err, "failed to parse config %s", customPath)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try working directory
	if data, err := os.ReadFile("jazz.yaml"); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(nil)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes data over the embedded defaults and validates the result
func parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "embedded default config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".jazz", filename)
}
