// Package coordinator owns the pointer visibility state and applies every
// trigger to the engine from a single goroutine.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/tevino/abool"

	"github.com/cursorcloak/cursorcloak/internal/cursor"
	"github.com/cursorcloak/cursorcloak/internal/trigger"
)

// State is the process-wide pointer visibility.
type State int32

const (
	Visible State = iota
	Hidden
)

func (s State) String() string {
	if s == Hidden {
		return "hidden"
	}
	return "visible"
}

// Engine is the part of cursor.Engine the coordinator drives.
type Engine interface {
	Hide() error
	Show() error
	Cleanup() error
}

// AutoHideConfig controls hiding after a quiet period.
type AutoHideConfig struct {
	Enabled        bool
	TimeoutSeconds int
}

// Normalize clamps the timeout to at least one second.
func (c AutoHideConfig) Normalize() AutoHideConfig {
	if c.TimeoutSeconds < 1 {
		c.TimeoutSeconds = 1
	}
	return c
}

func (c AutoHideConfig) Timeout() time.Duration {
	return time.Duration(c.Normalize().TimeoutSeconds) * time.Second
}

var (
	ErrStopped        = errors.New("coordinator stopped")
	ErrAlreadyRunning = errors.New("coordinator already running")
)

const defaultQueueSize = 16

type Options struct {
	Engine   Engine
	Clock    clockwork.Clock
	AutoHide  AutoHideConfig
	QueueSize int
	// OnChange and OnError are delivered in order on a separate goroutine.
	// They may block or call back into the coordinator.
	OnChange func(State)
	OnError  func(error)
}

type request struct {
	trigger  trigger.Trigger
	autoHide *AutoHideConfig
	reply    chan error
}

type Coordinator struct {
	engine Engine
	clock  clockwork.Clock
	notify *notifier

	requests chan request
	activity *trigger.Activity
	hidden   *abool.AtomicBool
	running  *abool.AtomicBool

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}

	// owned by the Run goroutine
	state State
	cfg   AutoHideConfig
	idle  *trigger.Inactivity
}

func New(opts Options) *Coordinator {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueueSize
	}
	cfg := opts.AutoHide.Normalize()
	c := &Coordinator{
		engine:   opts.Engine,
		clock:    opts.Clock,
		notify:   newNotifier(opts.OnChange, opts.OnError),
		requests: make(chan request, opts.QueueSize),
		activity: trigger.NewActivity(),
		hidden:   abool.New(),
		running:  abool.New(),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		state:    Visible,
		cfg:      cfg,
		idle:     trigger.NewInactivity(opts.Clock, cfg.Timeout()),
	}
	return c
}

// State may be read from any goroutine.
func (c *Coordinator) State() State {
	if c.hidden.IsSet() {
		return Hidden
	}
	return Visible
}

// NotifyActivity never blocks; it is called from the global mouse hook.
func (c *Coordinator) NotifyActivity() {
	c.activity.Notify()
}

// Submit queues t without waiting. It reports false when the trigger was
// dropped because the queue is full or the coordinator has stopped.
func (c *Coordinator) Submit(t trigger.Trigger) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.requests <- request{trigger: t}:
		return true
	default:
		log.Warn().Stringer("trigger", t).Msg("trigger queue full, dropped")
		return false
	}
}

// Apply queues t and waits until it has been applied.
func (c *Coordinator) Apply(ctx context.Context, t trigger.Trigger) error {
	return c.roundTrip(ctx, request{trigger: t})
}

// ManualToggle is the tray/window entry point.
func (c *Coordinator) ManualToggle(ctx context.Context, hide bool) error {
	return c.Apply(ctx, trigger.ManualToggle(hide))
}

// SetAutoHide replaces the auto-hide configuration. Turning auto-hide off
// stops the inactivity clock and shows the pointer.
func (c *Coordinator) SetAutoHide(ctx context.Context, cfg AutoHideConfig) error {
	cfg = cfg.Normalize()
	return c.roundTrip(ctx, request{autoHide: &cfg})
}

func (c *Coordinator) roundTrip(ctx context.Context, req request) error {
	req.reply = make(chan error, 1)
	select {
	case c.requests <- req:
	case <-c.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-req.reply:
		return err
	case <-c.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RequestShutdown asks Run to revert the pointer table, release the cached
// pointer and return. Safe to call more than once.
func (c *Coordinator) RequestShutdown() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// Done is closed once Run has finished shutting down.
func (c *Coordinator) Done() <-chan struct{} { return c.done }

// Run is the serialized execution context. It returns after shutdown.
func (c *Coordinator) Run(ctx context.Context) error {
	if !c.running.SetToIf(false, true) {
		return ErrAlreadyRunning
	}
	defer close(c.done)
	go c.notify.run(c.done)

	if c.cfg.Enabled {
		c.idle.Start()
	}
	log.Info().
		Stringer("state", c.state).
		Bool("auto_hide", c.cfg.Enabled).
		Int("timeout_seconds", c.cfg.TimeoutSeconds).
		Msg("visibility coordinator started")

	for {
		select {
		case <-ctx.Done():
			return c.shutdown()
		case <-c.stop:
			return c.shutdown()
		case req := <-c.requests:
			var err error
			if req.autoHide != nil {
				err = c.setAutoHide(*req.autoHide)
			} else {
				err = c.apply(req.trigger)
			}
			if req.reply != nil {
				req.reply <- err
			}
		case <-c.activity.C():
			_ = c.apply(trigger.ActivityDetected())
		case <-c.idle.C():
			if c.idle.Expired() {
				_ = c.apply(trigger.InactivityTimeout())
			}
		}
	}
}

func (c *Coordinator) apply(t trigger.Trigger) error {
	switch t.Kind {
	case trigger.KindActivityDetected:
		if !c.cfg.Enabled {
			return nil
		}
		c.idle.Touch()
		if c.state != Hidden {
			return nil
		}
		return c.transition(Visible, t)
	case trigger.KindInactivityTimeout:
		if !c.cfg.Enabled || c.state == Hidden {
			return nil
		}
		return c.transition(Hidden, t)
	case trigger.KindManualToggle, trigger.KindHotkey:
		if t.Hide {
			return c.transition(Hidden, t)
		}
		return c.transition(Visible, t)
	}
	return fmt.Errorf("unknown trigger %s", t)
}

// transition always makes the full engine call, even when the state does
// not change, so the OS table matches the last trigger applied.
func (c *Coordinator) transition(to State, t trigger.Trigger) error {
	log.Debug().Stringer("trigger", t).Stringer("to", to).Msg("applying trigger")

	var err error
	if to == Hidden {
		err = c.engine.Hide()
	} else {
		err = c.engine.Show()
	}

	if err != nil {
		log.Error().Err(err).Stringer("trigger", t).Msg("pointer visibility change failed")
		c.notify.failed(err)
		// nothing reached the OS
		if errors.Is(err, cursor.ErrResourceConstruction) {
			return err
		}
	}

	if c.state != to {
		c.state = to
		c.hidden.SetTo(to == Hidden)
		log.Info().Stringer("state", to).Stringer("trigger", t).Msg("pointer visibility changed")
		c.notify.changed(to)
	}
	return err
}

func (c *Coordinator) setAutoHide(cfg AutoHideConfig) error {
	prev := c.cfg
	c.cfg = cfg
	c.idle.SetTimeout(cfg.Timeout())

	log.Info().Bool("enabled", cfg.Enabled).Int("timeout_seconds", cfg.TimeoutSeconds).Msg("auto-hide updated")

	switch {
	case cfg.Enabled && !prev.Enabled:
		c.idle.Start()
	case !cfg.Enabled && prev.Enabled:
		c.idle.Stop()
		return c.transition(Visible, trigger.ManualToggle(false))
	}
	return nil
}

func (c *Coordinator) shutdown() error {
	c.idle.Stop()

	var errs *multierror.Error
	if err := c.engine.Show(); err != nil {
		errs = multierror.Append(errs, err)
	}
	c.state = Visible
	c.hidden.UnSet()
	if err := c.engine.Cleanup(); err != nil {
		errs = multierror.Append(errs, err)
	}
	log.Info().Msg("visibility coordinator stopped")
	return errs.ErrorOrNil()
}
