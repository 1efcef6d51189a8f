package trigger

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"
)

// Modifier flags as accepted by RegisterHotKey.
const (
	ModAlt     uint32 = 0x0001
	ModControl uint32 = 0x0002
	ModShift   uint32 = 0x0004
	ModWin     uint32 = 0x0008
)

// Binding is one process-wide hotkey.
type Binding struct {
	ID        int
	Command   Command
	Modifiers uint32
	Key       uint32
	Label     string
}

const (
	HideHotkeyID = 9000
	ShowHotkeyID = 9001
)

// DefaultBindings are fixed: Alt+H hides, Alt+S shows.
var DefaultBindings = []Binding{
	{ID: HideHotkeyID, Command: CommandHide, Modifiers: ModAlt, Key: 'H', Label: "Alt+H"},
	{ID: ShowHotkeyID, Command: CommandShow, Modifiers: ModAlt, Key: 'S', Label: "Alt+S"},
}

// Lookup returns the binding with the given id.
func Lookup(bindings []Binding, id int) (Binding, bool) {
	for _, b := range bindings {
		if b.ID == id {
			return b, true
		}
	}
	return Binding{}, false
}

// ErrRegistration means a hotkey is already claimed elsewhere.
var ErrRegistration = errors.New("hotkey registration failed")

type RegistrationError struct {
	Binding Binding
	Err     error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("%s: %s (%s): %v", ErrRegistration, e.Binding.Command, e.Binding.Label, e.Err)
}

func (e *RegistrationError) Unwrap() error { return e.Err }

func (e *RegistrationError) Is(target error) bool { return target == ErrRegistration }

// Registrar binds hotkeys with the OS.
type Registrar interface {
	Register(b Binding) error
	Unregister(b Binding) error
}

// RegisterAll registers every binding or none of them. On the first failure
// the bindings registered so far are unregistered again.
func RegisterAll(r Registrar, bindings []Binding) error {
	for i, b := range bindings {
		if err := r.Register(b); err != nil {
			for j := i - 1; j >= 0; j-- {
				if uerr := r.Unregister(bindings[j]); uerr != nil {
					log.Warn().Err(uerr).Str("hotkey", bindings[j].Label).Msg("rollback unregister")
				}
			}
			return &RegistrationError{Binding: b, Err: err}
		}
		log.Debug().Str("hotkey", b.Label).Stringer("command", b.Command).Msg("hotkey registered")
	}
	return nil
}

// UnregisterAll releases every binding, even after a failure.
func UnregisterAll(r Registrar, bindings []Binding) error {
	var errs *multierror.Error
	for _, b := range bindings {
		if err := r.Unregister(b); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("unregister %s: %w", b.Label, err))
		}
	}
	return errs.ErrorOrNil()
}
