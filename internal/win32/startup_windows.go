//go:build windows

package win32

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/sys/windows/registry"
)

const runKeyPath = `Software\Microsoft\Windows\CurrentVersion\Run`

// Startup manages the per-user Run entry that launches the app at logon.
type Startup struct {
	name string
}

func NewStartup(name string) *Startup { return &Startup{name: name} }

// Enabled reports whether the Run entry points at this executable.
func (s *Startup) Enabled() (bool, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.QUERY_VALUE)
	if err != nil {
		return false, fmt.Errorf("open run key: %w", err)
	}
	defer k.Close()

	v, _, err := k.GetStringValue(s.name)
	if errors.Is(err, registry.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read run value: %w", err)
	}

	exe, err := os.Executable()
	if err != nil {
		return false, fmt.Errorf("resolve executable: %w", err)
	}
	return samePath(v, exe), nil
}

func (s *Startup) SetEnabled(enabled bool) error {
	k, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("open run key: %w", err)
	}
	defer k.Close()

	if !enabled {
		if err := k.DeleteValue(s.name); err != nil && !errors.Is(err, registry.ErrNotExist) {
			return fmt.Errorf("delete run value: %w", err)
		}
		log.Info().Msg("startup entry removed")
		return nil
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}
	if err := k.SetStringValue(s.name, `"`+exe+`"`); err != nil {
		return fmt.Errorf("write run value: %w", err)
	}
	log.Info().Str("path", exe).Msg("startup entry set")
	return nil
}
