package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"deckwatch/internal/core/model"
	"gopkg.in/yaml.v3"
)

// KeysFileName is the file holding persisted key settings.
const KeysFileName = "keys.yaml"

type yamlKeys struct {
	Keys map[string]*model.RawSettings `yaml:"keys"`
}

// KeyStore persists the settings of every key instance in one YAML file.
type KeyStore struct {
	mu   sync.Mutex
	path string
	keys map[string]*model.RawSettings
}

// OpenKeyStore reads the key file at path.
// If the file does not exist, an empty store is returned.
func OpenKeyStore(path string) (*KeyStore, error) {
	store := &KeyStore{
		path: path,
		keys: make(map[string]*model.RawSettings),
	}

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return store, nil
		}
		return nil, fmt.Errorf("read keys file: %w", err)
	}

	var fileData yamlKeys
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return nil, fmt.Errorf("parse keys yaml: %w", err)
	}
	for instance, settings := range fileData.Keys {
		if settings != nil {
			store.keys[instance] = settings
		}
	}
	return store, nil
}

// Path returns the backing file.
func (store *KeyStore) Path() string {
	return store.path
}

// Load returns a copy of the stored settings, nil if the instance is unknown.
func (store *KeyStore) Load(instance string) *model.RawSettings {
	store.mu.Lock()
	defer store.mu.Unlock()
	settings, ok := store.keys[instance]
	if !ok {
		return nil
	}
	return copySettings(settings)
}

// Save stores settings for an instance and writes the file.
func (store *KeyStore) Save(instance string, settings *model.RawSettings) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if settings == nil {
		delete(store.keys, instance)
	} else {
		store.keys[instance] = copySettings(settings)
	}
	return store.writeLocked()
}

// Delete forgets an instance. Unknown instances are not an error.
func (store *KeyStore) Delete(instance string) error {
	return store.Save(instance, nil)
}

// Instances lists stored instance ids in order.
func (store *KeyStore) Instances() []string {
	store.mu.Lock()
	defer store.mu.Unlock()
	instances := make([]string, 0, len(store.keys))
	for instance := range store.keys {
		instances = append(instances, instance)
	}
	sort.Strings(instances)
	return instances
}

func (store *KeyStore) writeLocked() error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	serialized, err := yaml.Marshal(yamlKeys{Keys: store.keys})
	if err != nil {
		return fmt.Errorf("marshal keys yaml: %w", err)
	}

	tmpPath := store.path + ".tmp"
	if err := os.WriteFile(tmpPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write keys file: %w", err)
	}
	if err := os.Rename(tmpPath, store.path); err != nil {
		return fmt.Errorf("replace keys file: %w", err)
	}
	return nil
}

func copySettings(settings *model.RawSettings) *model.RawSettings {
	if settings == nil {
		return nil
	}
	copied := &model.RawSettings{}
	if settings.Running != nil {
		value := *settings.Running
		copied.Running = &value
	}
	if settings.StartedAt != nil {
		value := *settings.StartedAt
		copied.StartedAt = &value
	}
	if settings.ElapsedMs != nil {
		value := *settings.ElapsedMs
		copied.ElapsedMs = &value
	}
	if settings.Format != nil {
		value := *settings.Format
		copied.Format = &value
	}
	if settings.TickMs != nil {
		value := *settings.TickMs
		copied.TickMs = &value
	}
	if settings.LongPressMs != nil {
		value := *settings.LongPressMs
		copied.LongPressMs = &value
	}
	return copied
}
