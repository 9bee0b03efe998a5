package settings

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	storeObject   = "settings"
	storeProperty = "cheer"
)

// Store persists the settings page between launches. A nil manager keeps
// everything in memory.
type Store struct {
	manager  *gdata.Manager
	settings Settings
}

// OpenStore opens the platform data directory for appName. Opening failures
// degrade to a memory-only store.
func OpenStore(appName string) *Store {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[settings] Warning: persistent storage unavailable: %v", err)
		m = nil
	}
	return NewStore(m)
}

// NewStore wraps an existing manager and loads any saved settings.
func NewStore(manager *gdata.Manager) *Store {
	st := &Store{manager: manager, settings: Default()}
	if err := st.Load(); err != nil {
		log.Printf("[settings] Warning: failed to load saved settings: %v (using defaults)", err)
	}
	return st
}

// Load replaces the in-memory settings with the saved copy, if any.
func (st *Store) Load() error {
	if st.manager == nil || !st.manager.ObjectPropExists(storeObject, storeProperty) {
		st.settings = Default()
		return nil
	}
	data, err := st.manager.LoadObjectProp(storeObject, storeProperty)
	if err != nil {
		st.settings = Default()
		return fmt.Errorf("failed to load settings: %w", err)
	}
	loaded := Default()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		st.settings = Default()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	st.settings = loaded
	return nil
}

// Save writes the current settings.
func (st *Store) Save() error {
	if st.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(st.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := st.manager.SaveObjectProp(storeObject, storeProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Settings returns the current settings.
func (st *Store) Settings() Settings {
	return st.settings
}

// Set replaces the current settings after clamping them. Call Save to persist.
func (st *Store) Set(s Settings) {
	s.Normalize()
	st.settings = s
}

// Layered returns the saved settings with the yaml file at path and then the
// CHEER_* variables applied on top. A nil environ reads the process
// environment. The layers apply to this launch only and are never saved.
func (st *Store) Layered(path string, environ map[string]string) Settings {
	s, err := LoadOver(st.settings, path)
	if err != nil {
		log.Printf("[settings] Warning: %v (using saved settings)", err)
	}
	next := s
	if environ == nil {
		err = next.ApplyEnv()
	} else {
		err = next.ApplyEnvFrom(environ)
	}
	if err != nil {
		log.Printf("[settings] Warning: %v (ignoring environment)", err)
	} else {
		s = next
	}
	s.Normalize()
	return s
}
