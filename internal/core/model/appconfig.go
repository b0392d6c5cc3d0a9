package model

import "fmt"

// DeckConfig describes the virtual control surface hosting the keys.
type DeckConfig struct {
	Columns int
	Rows    int
	Pages   int
	KeySize int
}

// AppConfig contains runtime settings for the deck hosts.
type AppConfig struct {
	Deck      DeckConfig
	StorePath string
}

// DefaultAppConfig returns the configuration used when no file exists.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Deck: DeckConfig{
			Columns: 5,
			Rows:    3,
			Pages:   2,
			KeySize: 144,
		},
	}
}

// Clamp bounds every deck dimension to what the hosts can lay out.
func (config AppConfig) Clamp() AppConfig {
	config.Deck.Columns = clamp(config.Deck.Columns, 1, 8)
	config.Deck.Rows = clamp(config.Deck.Rows, 1, 4)
	config.Deck.Pages = clamp(config.Deck.Pages, 1, 10)
	config.Deck.KeySize = clamp(config.Deck.KeySize, 72, 288)
	return config
}

// KeysPerPage returns how many key instances a single page shows.
func (deck DeckConfig) KeysPerPage() int {
	return deck.Columns * deck.Rows
}

// InstanceID names the key instance at a page slot. Both deck hosts use the
// same ids, so they share persisted key state.
func InstanceID(page, slot int) string {
	return fmt.Sprintf("p%d-k%d", page+1, slot+1)
}
