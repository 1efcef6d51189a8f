// Package trigger defines the events that change pointer visibility and the
// sources that produce them.
package trigger

import "fmt"

// Kind tags a Trigger.
type Kind int

const (
	KindManualToggle Kind = iota
	KindHotkey
	KindInactivityTimeout
	KindActivityDetected
)

func (k Kind) String() string {
	switch k {
	case KindManualToggle:
		return "manual_toggle"
	case KindHotkey:
		return "hotkey"
	case KindInactivityTimeout:
		return "inactivity_timeout"
	case KindActivityDetected:
		return "activity_detected"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Command is what a hotkey asks for.
type Command int

const (
	CommandHide Command = iota + 1
	CommandShow
)

func (c Command) String() string {
	switch c {
	case CommandHide:
		return "hide"
	case CommandShow:
		return "show"
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// Trigger is consumed once by the coordinator and then dropped.
type Trigger struct {
	Kind Kind
	// Hide is set for KindManualToggle and KindHotkey.
	Hide bool
}

func ManualToggle(hide bool) Trigger {
	return Trigger{Kind: KindManualToggle, Hide: hide}
}

func Hotkey(c Command) Trigger {
	return Trigger{Kind: KindHotkey, Hide: c == CommandHide}
}

func InactivityTimeout() Trigger {
	return Trigger{Kind: KindInactivityTimeout, Hide: true}
}

func ActivityDetected() Trigger {
	return Trigger{Kind: KindActivityDetected}
}

func (t Trigger) String() string {
	switch t.Kind {
	case KindManualToggle, KindHotkey:
		if t.Hide {
			return t.Kind.String() + "(hide)"
		}
		return t.Kind.String() + "(show)"
	}
	return t.Kind.String()
}
