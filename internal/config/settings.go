// Package config loads and saves user settings and reads runtime options
// from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/ini.v1"
)

const (
	appDir           = "CursorCloak"
	settingsFileName = "settings.ini"

	DefaultTimeoutSeconds = 5
)

// Settings is everything that survives a restart.
type Settings struct {
	HidingEnabled          bool
	AutoHideEnabled        bool
	AutoHideTimeoutSeconds int
	StartWithWindows       bool
}

func DefaultSettings() Settings {
	return Settings{AutoHideTimeoutSeconds: DefaultTimeoutSeconds}
}

// Normalize clamps the timeout to at least one second.
func (s Settings) Normalize() Settings {
	if s.AutoHideTimeoutSeconds < 1 {
		s.AutoHideTimeoutSeconds = 1
	}
	return s
}

// Store persists Settings to an ini file.
type Store struct {
	path string
}

// NewStore uses path, or the default location when path is empty.
func NewStore(path string) (*Store, error) {
	if path == "" {
		p, err := DefaultSettingsPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &Store{path: path}, nil
}

func (s *Store) Path() string { return s.path }

// DefaultSettingsPath is <user config dir>/CursorCloak/settings.ini.
func DefaultSettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config dir: %w", err)
	}
	return filepath.Join(dir, appDir, settingsFileName), nil
}

// Load returns defaults when the file does not exist yet.
func (s *Store) Load() (Settings, error) {
	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultSettings(), nil
		}
		return DefaultSettings(), fmt.Errorf("stat settings: %w", err)
	}

	f, err := ini.Load(s.path)
	if err != nil {
		return DefaultSettings(), fmt.Errorf("parse settings: %w", err)
	}

	settings := Settings{
		HidingEnabled:          f.Section("cursor").Key("hiding_enabled").MustBool(false),
		AutoHideEnabled:        f.Section("auto_hide").Key("enabled").MustBool(false),
		AutoHideTimeoutSeconds: f.Section("auto_hide").Key("timeout_seconds").MustInt(DefaultTimeoutSeconds),
		StartWithWindows:       f.Section("startup").Key("start_with_windows").MustBool(false),
	}
	return settings.Normalize(), nil
}

// Save writes settings, creating the directory if needed.
func (s *Store) Save(settings Settings) error {
	settings = settings.Normalize()

	f := ini.Empty()
	f.Section("cursor").Key("hiding_enabled").SetValue(strconv.FormatBool(settings.HidingEnabled))
	f.Section("auto_hide").Key("enabled").SetValue(strconv.FormatBool(settings.AutoHideEnabled))
	f.Section("auto_hide").Key("timeout_seconds").SetValue(strconv.Itoa(settings.AutoHideTimeoutSeconds))
	f.Section("startup").Key("start_with_windows").SetValue(strconv.FormatBool(settings.StartWithWindows))

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	if err := f.SaveTo(s.path); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
