// Package config loads and watches the viewer settings file.
package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Color is an RGBA color with components in [0,1]
type Color struct {
	R float64 `mapstructure:"r"`
	G float64 `mapstructure:"g"`
	B float64 `mapstructure:"b"`
	A float64 `mapstructure:"a"`
}

// Settings is the full user configuration. Zero values are never
// used directly; Load applies the defaults first.
type Settings struct {
	Detection DetectionSettings `mapstructure:"detection"`
	Markers   MarkerSettings    `mapstructure:"markers"`
	Animation AnimationSettings `mapstructure:"animation"`
}

// DetectionSettings controls element picking
type DetectionSettings struct {
	// Mode is one of "all", "vertex", "edge", "face"
	Mode string `mapstructure:"mode"`
	// Threshold is the pick radius in screen pixels, clamped to [5,50]
	Threshold float64 `mapstructure:"threshold"`
}

// MarkerSettings holds the drawing style of each marker
type MarkerSettings struct {
	Primary   MarkerStyle `mapstructure:"primary"`
	Secondary MarkerStyle `mapstructure:"secondary"`
}

// MarkerStyle controls how one marker is drawn. Size is the circle
// diameter in screen pixels, clamped to [5,100].
type MarkerStyle struct {
	Visible bool    `mapstructure:"visible"`
	Size    float64 `mapstructure:"size"`
	Color   Color   `mapstructure:"color"`
}

// AnimationSettings controls the feedback animations
type AnimationSettings struct {
	Enabled bool  `mapstructure:"enabled"`
	Color   Color `mapstructure:"color"`
}

const (
	minThreshold = 5.0
	maxThreshold = 50.0

	minMarkerSize = 5.0
	maxMarkerSize = 100.0
)

// Store holds the live settings and reloads them when the config
// file changes on disk
type Store struct {
	mu       sync.RWMutex
	settings Settings
	v        *viper.Viper
	log      zerolog.Logger
	onChange []func(Settings)
}

func defaults(v *viper.Viper) {
	v.SetDefault("detection.mode", "all")
	v.SetDefault("detection.threshold", 15.0)

	v.SetDefault("markers.primary.visible", true)
	v.SetDefault("markers.primary.size", 20.0)
	v.SetDefault("markers.primary.color", map[string]any{"r": 1.0, "g": 0.2, "b": 0.2, "a": 1.0})
	v.SetDefault("markers.secondary.visible", true)
	v.SetDefault("markers.secondary.size", 20.0)
	v.SetDefault("markers.secondary.color", map[string]any{"r": 0.2, "g": 0.5, "b": 1.0, "a": 1.0})

	v.SetDefault("animation.enabled", true)
	v.SetDefault("animation.color", map[string]any{"r": 0.75, "g": 0.75, "b": 0.75, "a": 0.9})
}

// Load reads the settings from path. An empty path or a missing file
// yields the defaults; a malformed file is an error.
func Load(path string, log zerolog.Logger) (*Store, error) {
	v := viper.New()
	defaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound && !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
			log.Warn().Str("path", path).Msg("config file not found, using defaults")
		}
	}

	s := &Store{v: v, log: log}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) reload() error {
	var settings Settings
	if err := s.v.Unmarshal(&settings); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	settings.clamp()

	s.mu.Lock()
	s.settings = settings
	callbacks := append([]func(Settings){}, s.onChange...)
	s.mu.Unlock()

	for _, cb := range callbacks {
		cb(settings)
	}
	return nil
}

func (s *Settings) clamp() {
	if s.Detection.Threshold < minThreshold {
		s.Detection.Threshold = minThreshold
	}
	if s.Detection.Threshold > maxThreshold {
		s.Detection.Threshold = maxThreshold
	}
	s.Markers.Primary.clamp()
	s.Markers.Secondary.clamp()
}

func (m *MarkerStyle) clamp() {
	if m.Size < minMarkerSize {
		m.Size = minMarkerSize
	}
	if m.Size > maxMarkerSize {
		m.Size = maxMarkerSize
	}
}

// Current returns a copy of the live settings
func (s *Store) Current() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// OnChange registers a callback invoked after every successful reload
func (s *Store) OnChange(cb func(Settings)) {
	s.mu.Lock()
	s.onChange = append(s.onChange, cb)
	s.mu.Unlock()
}

// Watch reloads the settings whenever the config file changes. No-op
// when no config file is in use.
func (s *Store) Watch() {
	if s.v.ConfigFileUsed() == "" {
		return
	}
	s.v.OnConfigChange(func(e fsnotify.Event) {
		s.log.Info().Str("file", e.Name).Msg("config changed, reloading")
		if err := s.reload(); err != nil {
			s.log.Error().Err(err).Msg("config reload failed, keeping previous settings")
		}
	})
	s.v.WatchConfig()
}
