package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppName names the per-user config directory.
const AppName = "deckwatch"

// ConfigDir returns the directory holding config.toml and keys.yaml.
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return filepath.Join(configDir, AppName), nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}
	return filepath.Join(homeDir, ".config", AppName), nil
}

// ResolvePath joins name onto the config dir unless override is set.
func ResolvePath(override, name string) (string, error) {
	if override != "" {
		return override, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
