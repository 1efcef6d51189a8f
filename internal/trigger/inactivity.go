package trigger

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// TickInterval is how often the inactivity clock is checked.
const TickInterval = time.Second

// Inactivity tracks the time since the last pointer activity.
// It is not safe for concurrent use; the coordinator loop owns it.
type Inactivity struct {
	clock   clockwork.Clock
	ticker  clockwork.Ticker
	timeout time.Duration
	last    time.Time
}

func NewInactivity(clock clockwork.Clock, timeout time.Duration) *Inactivity {
	i := &Inactivity{clock: clock}
	i.SetTimeout(timeout)
	return i
}

// SetTimeout changes the quiet period. Anything below a second becomes a
// second.
func (i *Inactivity) SetTimeout(d time.Duration) {
	if d < time.Second {
		d = time.Second
	}
	i.timeout = d
}

func (i *Inactivity) Timeout() time.Duration { return i.timeout }

// Start begins ticking and restarts the quiet period. Starting a running
// clock only restarts the quiet period.
func (i *Inactivity) Start() {
	i.last = i.clock.Now()
	if i.ticker == nil {
		i.ticker = i.clock.NewTicker(TickInterval)
	}
}

func (i *Inactivity) Stop() {
	if i.ticker != nil {
		i.ticker.Stop()
		i.ticker = nil
	}
}

func (i *Inactivity) Running() bool { return i.ticker != nil }

// C delivers ticks while running. It is nil when stopped, so a select on it
// blocks.
func (i *Inactivity) C() <-chan time.Time {
	if i.ticker == nil {
		return nil
	}
	return i.ticker.Chan()
}

// Touch records activity now.
func (i *Inactivity) Touch() {
	i.last = i.clock.Now()
}

// Expired reports whether the quiet period has fully elapsed.
func (i *Inactivity) Expired() bool {
	return i.Running() && i.clock.Since(i.last) >= i.timeout
}
