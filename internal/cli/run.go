package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cursorcloak/cursorcloak/internal/config"
	"github.com/cursorcloak/cursorcloak/internal/coordinator"
	"github.com/cursorcloak/cursorcloak/internal/cursor"
	"github.com/cursorcloak/cursorcloak/internal/tray"
	"github.com/cursorcloak/cursorcloak/internal/trigger"
	"github.com/cursorcloak/cursorcloak/internal/win32"
)

// frontend receives the coordinator's callbacks, in order, off the
// coordinator goroutine.
type frontend interface {
	OnVisibilityChanged(coordinator.State)
	OnError(error)
	Settings() config.Settings
}

// headless replaces the tray when running with --no-tray.
type headless struct {
	store    tray.SettingsSaver
	settings chan config.Settings
}

func newHeadless(store tray.SettingsSaver, s config.Settings) *headless {
	h := &headless{store: store, settings: make(chan config.Settings, 1)}
	h.settings <- s
	return h
}

// OnVisibilityChanged saves right away so a killed run keeps the state.
func (h *headless) OnVisibilityChanged(state coordinator.State) {
	s := <-h.settings
	defer func() { h.settings <- s }()
	s.HidingEnabled = state == coordinator.Hidden
	log.Info().Stringer("state", state).Msg("pointer visibility changed")
	if h.store == nil {
		return
	}
	if err := h.store.Save(s); err != nil {
		log.Warn().Err(err).Msg("save settings")
	}
}

func (h *headless) OnError(err error) {
	log.Error().Err(err).Msg("pointer change failed")
}

func (h *headless) Settings() config.Settings {
	s := <-h.settings
	h.settings <- s
	return s
}

func runApp(cmd *cobra.Command, args []string) (err error) {
	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}
	closer, logErr := setupLogging(opts.LogLevel, opts.LogFile)
	if logErr != nil {
		log.Warn().Err(logErr).Msg("logging to console only")
	}
	defer closer.Close()

	release, err := win32.AcquireSingleInstance(appName)
	if errors.Is(err, win32.ErrAlreadyRunning) {
		win32.ShowMessage(appName, "CursorCloak is already running.", true)
		return err
	}
	if err != nil {
		log.Warn().Err(err).Msg("single instance check failed")
	} else {
		defer release()
	}

	if elevated, err := win32.IsElevated(); err == nil && !elevated {
		log.Warn().Msg("not running elevated, some applications may keep their pointer")
		win32.ShowMessage(appName, "CursorCloak is not running as administrator. The pointer may stay visible over elevated windows.", true)
	}

	store, err := config.NewStore(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	settings, err := store.Load()
	if err != nil {
		log.Warn().Err(err).Str("path", store.Path()).Msg("load settings, using defaults")
		settings = config.DefaultSettings()
	}
	log.Debug().Str("path", store.Path()).Interface("settings", settings).Msg("settings loaded")

	startup := win32.NewStartup(appName)
	if on, err := startup.Enabled(); err == nil {
		settings.StartWithWindows = on
	}

	engine := cursor.NewEngine(win32.NewCursors())
	engine.Initialize()

	a := &app{
		opts:     opts,
		store:    store,
		startup:  startup,
		engine:   engine,
		settings: settings,
	}
	defer func() {
		if r := recover(); r != nil {
			var coord stopper
			if a.coord != nil {
				coord = a.coord
			}
			restorePointer(coord, engine, restoreWait)
			panic(r)
		}
	}()
	return a.run()
}

type app struct {
	opts     config.Options
	store    *config.Store
	startup  *win32.Startup
	engine   *cursor.Engine
	settings config.Settings

	coord *coordinator.Coordinator
	front frontend
	tray  *tray.Tray
}

func (a *app) run() error {
	a.coord = coordinator.New(coordinator.Options{
		Engine: a.engine,
		AutoHide: coordinator.AutoHideConfig{
			Enabled:        a.settings.AutoHideEnabled,
			TimeoutSeconds: a.settings.AutoHideTimeoutSeconds,
		},
		OnChange: func(s coordinator.State) { a.front.OnVisibilityChanged(s) },
		OnError:  func(err error) { a.front.OnError(err) },
	})
	coord := a.coord

	if a.opts.NoTray {
		a.front = newHeadless(a.store, a.settings)
	} else {
		a.tray = tray.New(tray.Options{
			Controller: coord,
			Startup:    a.startup,
			Store:      a.store,
			Settings:   a.settings,
			Bindings:   trigger.DefaultBindings,
			Notify:     win32.ShowMessage,
		})
		a.front = a.tray
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runErr := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				// Run is no longer serving, so go to the engine directly
				restorePointer(nil, a.engine, 0)
				panic(r)
			}
		}()
		runErr <- coord.Run(ctx)
	}()

	listener := win32.NewListener(win32.ListenerConfig{
		Bindings: trigger.DefaultBindings,
		OnMove:   coord.NotifyActivity,
		OnHotkey: func(c trigger.Command) {
			if !coord.Submit(trigger.Hotkey(c)) {
				log.Debug().Stringer("command", c).Msg("dropped hotkey, queue full")
			}
		},
	})
	reportStart(listener.Start())

	if a.settings.HidingEnabled {
		coord.Submit(trigger.ManualToggle(true))
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		select {
		case sig := <-signals:
			log.Info().Stringer("signal", sig).Msg("received signal")
			if a.tray != nil {
				a.tray.Quit()
			} else {
				cancel()
			}
		case <-ctx.Done():
		}
	}()

	if a.tray != nil {
		a.tray.Run()
	} else {
		log.Info().Msg("running without tray, press Ctrl+C to exit")
		select {
		case <-ctx.Done():
		case <-coord.Done():
		}
	}

	return a.shutdown(listener, coord, runErr)
}

// shutdown stops the input sources first so no trigger races the final
// reveal.
func (a *app) shutdown(listener *win32.Listener, coord *coordinator.Coordinator, runErr <-chan error) error {
	log.Info().Msg("shutting down")
	listener.Stop()
	coord.RequestShutdown()
	<-coord.Done()

	var result *multierror.Error
	if err := <-runErr; err != nil && !errors.Is(err, context.Canceled) {
		result = multierror.Append(result, err)
	}
	if err := a.store.Save(a.front.Settings()); err != nil {
		result = multierror.Append(result, fmt.Errorf("save settings: %w", err))
	}
	return result.ErrorOrNil()
}

func reportStart(res win32.StartResult) {
	if res.OK() {
		log.Info().Msg("input listener started")
		return
	}
	if res.Hook != nil {
		log.Error().Err(res.Hook).Msg("mouse hook unavailable")
		win32.ShowMessage(appName, "Could not watch mouse movement. Auto-hide will not react to the mouse.\n\n"+res.Hook.Error(), true)
	}
	if res.Hotkeys != nil {
		log.Error().Err(res.Hotkeys).Msg("hotkeys unavailable")
		win32.ShowMessage(appName, "Could not register the hotkeys. Another program may be using them.\n\n"+res.Hotkeys.Error(), true)
	}
}

const restoreWait = 2 * time.Second

type stopper interface {
	RequestShutdown()
	Done() <-chan struct{}
}

type pointerEngine interface {
	Show() error
	Cleanup() error
}

// restorePointer is the last resort when something panics while the pointer
// may be hidden. A live coordinator gets wait to revert through its own
// loop; the engine is only called directly when it does not finish.
func restorePointer(coord stopper, e pointerEngine, wait time.Duration) {
	if coord != nil {
		coord.RequestShutdown()
		select {
		case <-coord.Done():
			return
		case <-time.After(wait):
			log.Warn().Dur("wait", wait).Msg("coordinator did not stop, restoring pointer directly")
		}
	}
	if err := e.Show(); err != nil {
		log.Error().Err(err).Msg("restore pointer")
	}
	if err := e.Cleanup(); err != nil {
		log.Error().Err(err).Msg("release pointer resource")
	}
}
