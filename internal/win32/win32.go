// Package win32 implements the native surfaces on Windows: the system
// pointer table, the global mouse hook, process-wide hotkeys and a few
// process-level checks. Other platforms get stubs returning ErrUnsupported.
package win32

import (
	"errors"

	"github.com/cursorcloak/cursorcloak/internal/trigger"
)

var (
	ErrUnsupported = errors.New("not supported on this platform")

	// ErrListenerInstall means the global mouse hook could not be
	// installed, usually for lack of privilege. Hiding still works through
	// hotkeys and the tray.
	ErrListenerInstall = errors.New("global input listener install failed")

	ErrAlreadyRunning = errors.New("another instance is already running")
)

// ListenerConfig wires the listener to the coordinator. Both callbacks run
// on the listener's OS thread and must return immediately.
type ListenerConfig struct {
	Bindings []trigger.Binding
	OnMove   func()
	OnHotkey func(trigger.Command)
}

// StartResult reports each part of the listener separately; either may
// fail while the other works.
type StartResult struct {
	Hook    error
	Hotkeys error
}

func (r StartResult) OK() bool { return r.Hook == nil && r.Hotkeys == nil }
