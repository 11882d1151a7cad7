package stage

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigKey is the settings key an Overlay's Config is stored under.
const ConfigKey = "stage.config"

const (
	defaultDragThrottle = 16 * time.Millisecond
	defaultDragDeadZone = 4.0 // pixels
)

// Config holds overlay behaviour settings. It round-trips through YAML.
type Config struct {
	// Viewport is the initial container rectangle pinned objects anchor to.
	Viewport Rect `yaml:"viewport"`
	// SelectTools lists the tools under which ordering commands and pointer
	// selection are active.
	SelectTools []Tool `yaml:"selectTools"`
	// DragThrottle is the minimum time between drag-driven repositions.
	DragThrottle time.Duration `yaml:"dragThrottle"`
	// DragDeadZone is the pointer travel in pixels before a press becomes a drag.
	DragDeadZone float64 `yaml:"dragDeadZone"`
	// Debug enables stderr diagnostics and destroyed-object checks.
	Debug bool `yaml:"debug"`
}

// DefaultConfig returns the settings used when none are stored.
func DefaultConfig() Config {
	return Config{
		SelectTools:  []Tool{"select"},
		DragThrottle: defaultDragThrottle,
		DragDeadZone: defaultDragDeadZone,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.Viewport.Width < 0 || c.Viewport.Height < 0 {
		return fmt.Errorf("viewport size %vx%v is negative", c.Viewport.Width, c.Viewport.Height)
	}
	if c.DragThrottle < 0 {
		return fmt.Errorf("dragThrottle %v is negative", c.DragThrottle)
	}
	if c.DragDeadZone < 0 {
		return fmt.Errorf("dragDeadZone %v is negative", c.DragDeadZone)
	}
	return nil
}

// IsSelectTool reports whether t is one of SelectTools.
func (c Config) IsSelectTool(t Tool) bool {
	for _, st := range c.SelectTools {
		if st == t {
			return true
		}
	}
	return false
}

// ParseConfig decodes YAML over DefaultConfig, so omitted fields keep their
// defaults, and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// MarshalConfig encodes cfg as YAML.
func MarshalConfig(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

// --- Host settings ---

// ErrNoSettings is returned when a world has nothing stored under a key.
var ErrNoSettings = errors.New("no settings stored")

// SettingsStore is the host's key/value settings store, scoped per world.
// Values are opaque blobs.
type SettingsStore interface {
	Get(world, key string) ([]byte, bool)
	Set(world, key string, value []byte) error
}

// MemorySettings is an in-memory SettingsStore.
type MemorySettings struct {
	worlds map[string]map[string][]byte
}

// NewMemorySettings creates an empty store.
func NewMemorySettings() *MemorySettings {
	return &MemorySettings{worlds: make(map[string]map[string][]byte)}
}

// Get returns a copy of the value stored for world and key.
func (m *MemorySettings) Get(world, key string) ([]byte, bool) {
	v, ok := m.worlds[world][key]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), v...), true
}

// Set stores a copy of value for world and key.
func (m *MemorySettings) Set(world, key string, value []byte) error {
	w, ok := m.worlds[world]
	if !ok {
		w = make(map[string][]byte)
		m.worlds[world] = w
	}
	w[key] = append([]byte(nil), value...)
	return nil
}

// LoadConfig reads the Config stored for world. When nothing is stored it
// returns DefaultConfig and an error wrapping ErrNoSettings.
func LoadConfig(store SettingsStore, world string) (Config, error) {
	data, ok := store.Get(world, ConfigKey)
	if !ok {
		return DefaultConfig(), fmt.Errorf("world %q: %w", world, ErrNoSettings)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("world %q: %w", world, err)
	}
	return cfg, nil
}

// SaveConfig validates cfg and stores it for world.
func SaveConfig(store SettingsStore, world string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	data, err := MarshalConfig(cfg)
	if err != nil {
		return err
	}
	if err := store.Set(world, ConfigKey, data); err != nil {
		return fmt.Errorf("world %q: set %s: %w", world, ConfigKey, err)
	}
	return nil
}
