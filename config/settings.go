package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

var (
	ErrSettingsNotFound = errors.New("settings file not found")
	ErrInvalidSettings  = errors.New("invalid settings")
)

// KeyActions are the names accepted as keys of Settings.Keys
var KeyActions = []string{"up", "down", "left", "right", "undo", "restart", "next", "quit"}

// Settings holds the values a settings file may provide. Command line flags
// and environment variables take precedence over them.
type Settings struct {
	LevelsDir  string `yaml:"levels_dir"`
	StartLevel int    `yaml:"start_level"`
	LogFile    string `yaml:"log_file"`
	LogLevel   string `yaml:"log_level"`
	Watch      bool   `yaml:"watch"`

	// Keys maps an action name to the key names bound to it, for example
	// undo: ["u", "Backspace"]. Listed actions replace the default bindings.
	Keys map[string][]string `yaml:"keys"`
}

// Default returns the built-in settings
func Default() *Settings {
	return &Settings{
		LevelsDir:  "levels",
		StartLevel: 1,
		LogFile:    "sokoban.log",
		LogLevel:   "info",
	}
}

// Load reads a YAML settings file on top of Default. An empty path returns
// Default.
func Load(path string) (*Settings, error) {
	settings := Default()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSettingsNotFound, path)
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalidSettings, path, err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Validate checks the settings for values the game cannot use
func (s *Settings) Validate() error {
	if s.LevelsDir == "" {
		return fmt.Errorf("%w: levels_dir is empty", ErrInvalidSettings)
	}
	if s.StartLevel < 1 {
		return fmt.Errorf("%w: start_level must be at least 1, got %d", ErrInvalidSettings, s.StartLevel)
	}

	known := make(map[string]bool, len(KeyActions))
	for _, name := range KeyActions {
		known[name] = true
	}

	actions := make([]string, 0, len(s.Keys))
	for action := range s.Keys {
		actions = append(actions, action)
	}
	sort.Strings(actions)
	for _, action := range actions {
		if !known[action] {
			return fmt.Errorf("%w: unknown key action %q", ErrInvalidSettings, action)
		}
		if len(s.Keys[action]) == 0 {
			return fmt.Errorf("%w: no keys bound to %q", ErrInvalidSettings, action)
		}
	}
	return nil
}
