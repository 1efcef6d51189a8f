package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "CURSORCLOAK"

// Options are per-run knobs that are never written back to disk.
type Options struct {
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile    string `envconfig:"LOG_FILE"`
	ConfigPath string `envconfig:"CONFIG"`
	NoTray     bool   `envconfig:"NO_TRAY" default:"false"`
}

// LoadOptions reads CURSORCLOAK_* variables.
func LoadOptions() (Options, error) {
	var opts Options
	if err := envconfig.Process(envPrefix, &opts); err != nil {
		return Options{}, fmt.Errorf("read environment: %w", err)
	}
	return opts, nil
}
