package storage

import (
	"errors"
	"fmt"
	"os"

	"deckwatch/internal/core/model"
	"github.com/BurntSushi/toml"
)

// ConfigFileName is the app config file name.
const ConfigFileName = "config.toml"

type tomlConfig struct {
	Deck  tomlDeck  `toml:"deck"`
	Store tomlStore `toml:"store"`
}

type tomlDeck struct {
	Columns *int `toml:"columns"`
	Rows    *int `toml:"rows"`
	Pages   *int `toml:"pages"`
	KeySize *int `toml:"key_size"`
}

type tomlStore struct {
	Path *string `toml:"path"`
}

// LoadAppConfig reads the TOML app config at path.
// If the file does not exist, default settings are returned.
func LoadAppConfig(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()

	var fileData tomlConfig
	if _, err := toml.DecodeFile(path, &fileData); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return config, fmt.Errorf("decode config: %w", err)
	}

	applyTomlConfig(&config, fileData)
	return config.Clamp(), nil
}

func applyTomlConfig(config *model.AppConfig, fileData tomlConfig) {
	if fileData.Deck.Columns != nil {
		config.Deck.Columns = *fileData.Deck.Columns
	}
	if fileData.Deck.Rows != nil {
		config.Deck.Rows = *fileData.Deck.Rows
	}
	if fileData.Deck.Pages != nil {
		config.Deck.Pages = *fileData.Deck.Pages
	}
	if fileData.Deck.KeySize != nil {
		config.Deck.KeySize = *fileData.Deck.KeySize
	}
	if fileData.Store.Path != nil {
		config.StorePath = *fileData.Store.Path
	}
}

// DefaultConfigTemplate is written by the config command.
func DefaultConfigTemplate() string {
	defaults := model.DefaultAppConfig()
	return fmt.Sprintf(`[deck]
# columns = %d
# rows = %d
# pages = %d
# key_size = %d

[store]
# path = "/path/to/keys.yaml"
`, defaults.Deck.Columns, defaults.Deck.Rows, defaults.Deck.Pages, defaults.Deck.KeySize)
}
