// Package tray is the system tray presence: it shows the current pointer
// visibility and forwards menu clicks to the coordinator.
package tray

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"fyne.io/systray"
	"fyne.io/systray/example/icon"
	"github.com/rs/zerolog/log"

	"github.com/cursorcloak/cursorcloak/internal/config"
	"github.com/cursorcloak/cursorcloak/internal/coordinator"
	"github.com/cursorcloak/cursorcloak/internal/trigger"
)

const appName = "CursorCloak"

// TimeoutChoices are the idle timeouts offered in the menu, in seconds.
var TimeoutChoices = []int{2, 3, 5, 10, 30, 60}

// Controller is the part of the coordinator the menu drives.
type Controller interface {
	ManualToggle(ctx context.Context, hide bool) error
	SetAutoHide(ctx context.Context, cfg coordinator.AutoHideConfig) error
	State() coordinator.State
}

type StartupRegistrar interface {
	Enabled() (bool, error)
	SetEnabled(enabled bool) error
}

type SettingsSaver interface {
	Save(config.Settings) error
}

type Options struct {
	Controller Controller
	Startup    StartupRegistrar
	Store      SettingsSaver
	Settings   config.Settings
	Bindings   []trigger.Binding
	// Notify shows a message to the user.
	Notify func(title, text string, warning bool)
	// OnQuit runs when Quit is chosen from the menu.
	OnQuit func()
}

type Tray struct {
	opts Options

	mu       sync.Mutex
	settings config.Settings

	dirty  chan struct{}
	ctx    context.Context
	cancel context.CancelFunc

	mHide     *systray.MenuItem
	mAuto     *systray.MenuItem
	mTimeout  *systray.MenuItem
	mTimeouts map[int]*systray.MenuItem
	mStartup  *systray.MenuItem
	mQuit     *systray.MenuItem
}

func New(opts Options) *Tray {
	if opts.Notify == nil {
		opts.Notify = func(title, text string, warning bool) {
			log.Warn().Str("title", title).Msg(text)
		}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Tray{
		opts:     opts,
		settings: opts.Settings.Normalize(),
		dirty:    make(chan struct{}, 1),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Run blocks on the tray event loop. It must be called from the main
// goroutine, which main has locked to its OS thread.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

func (t *Tray) Quit() {
	systray.Quit()
}

// Settings returns the latest settings as shown in the menu.
func (t *Tray) Settings() config.Settings {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.settings
}

// OnVisibilityChanged is the coordinator's change callback. It only flags
// the menu for a refresh so the coordinator never waits on the UI.
func (t *Tray) OnVisibilityChanged(s coordinator.State) {
	t.mu.Lock()
	t.settings.HidingEnabled = s == coordinator.Hidden
	t.mu.Unlock()
	t.markDirty()
}

// OnError is the coordinator's error callback.
func (t *Tray) OnError(err error) {
	go t.opts.Notify(appName, fmt.Sprintf("Could not change the cursor: %v", err), true)
}

func (t *Tray) markDirty() {
	select {
	case t.dirty <- struct{}{}:
	default:
	}
}

func (t *Tray) onReady() {
	s := t.Settings()

	systray.SetIcon(icon.Data)
	systray.SetTitle(appName)
	systray.SetTooltip(tooltip(t.opts.Controller.State(), s))

	t.mHide = systray.AddMenuItemCheckbox(hideTitle(t.opts.Bindings), "Hide the mouse pointer everywhere", t.opts.Controller.State() == coordinator.Hidden)
	systray.AddSeparator()
	t.mAuto = systray.AddMenuItemCheckbox("Auto-hide when idle", "Hide the pointer after it has not moved for a while", s.AutoHideEnabled)
	t.mTimeout = systray.AddMenuItem(timeoutTitle(s.AutoHideTimeoutSeconds), "Idle time before the pointer hides")
	t.mTimeouts = map[int]*systray.MenuItem{}
	for _, secs := range timeoutChoices(s.AutoHideTimeoutSeconds) {
		t.mTimeouts[secs] = t.mTimeout.AddSubMenuItemCheckbox(fmt.Sprintf("%d seconds", secs), "", secs == s.AutoHideTimeoutSeconds)
	}
	systray.AddSeparator()
	t.mStartup = systray.AddMenuItemCheckbox("Start with Windows", "Launch at logon", s.StartWithWindows)
	systray.AddSeparator()
	t.mQuit = systray.AddMenuItem("Quit", "Restore the pointer and exit")

	timeoutClicks := make(chan int)
	for secs, item := range t.mTimeouts {
		go func(secs int, item *systray.MenuItem) {
			for {
				select {
				case <-item.ClickedCh:
					select {
					case timeoutClicks <- secs:
					case <-t.ctx.Done():
						return
					}
				case <-t.ctx.Done():
					return
				}
			}
		}(secs, item)
	}

	go t.loop(timeoutClicks)
}

func (t *Tray) loop(timeoutClicks <-chan int) {
	for {
		select {
		case <-t.mHide.ClickedCh:
			t.toggleHide()
		case <-t.mAuto.ClickedCh:
			t.updateAutoHide(func(s *config.Settings) { s.AutoHideEnabled = !s.AutoHideEnabled })
		case secs := <-timeoutClicks:
			t.updateAutoHide(func(s *config.Settings) { s.AutoHideTimeoutSeconds = secs })
		case <-t.mStartup.ClickedCh:
			t.toggleStartup()
		case <-t.dirty:
			t.refresh()
			t.save()
		case <-t.mQuit.ClickedCh:
			if t.opts.OnQuit != nil {
				t.opts.OnQuit()
			}
			systray.Quit()
			return
		case <-t.ctx.Done():
			return
		}
	}
}

func (t *Tray) onExit() {
	t.cancel()
}

func (t *Tray) toggleHide() {
	ctx, cancel := context.WithTimeout(t.ctx, 5*time.Second)
	defer cancel()

	hide := t.opts.Controller.State() != coordinator.Hidden
	if err := t.opts.Controller.ManualToggle(ctx, hide); err != nil {
		log.Warn().Err(err).Bool("hide", hide).Msg("manual toggle")
	}
	t.refresh()
}

func (t *Tray) updateAutoHide(change func(*config.Settings)) {
	t.mu.Lock()
	change(&t.settings)
	t.settings = t.settings.Normalize()
	s := t.settings
	t.mu.Unlock()

	ctx, cancel := context.WithTimeout(t.ctx, 5*time.Second)
	defer cancel()
	cfg := coordinator.AutoHideConfig{Enabled: s.AutoHideEnabled, TimeoutSeconds: s.AutoHideTimeoutSeconds}
	if err := t.opts.Controller.SetAutoHide(ctx, cfg); err != nil {
		log.Warn().Err(err).Msg("update auto-hide")
	}
	t.refresh()
	t.save()
}

func (t *Tray) toggleStartup() {
	if t.opts.Startup == nil {
		return
	}
	want := !t.mStartup.Checked()
	if err := t.opts.Startup.SetEnabled(want); err != nil {
		log.Warn().Err(err).Bool("enabled", want).Msg("change startup entry")
	}

	got, err := t.opts.Startup.Enabled()
	if err != nil {
		log.Warn().Err(err).Msg("read startup entry")
	}
	if got != want {
		t.opts.Notify(appName, "Unable to change the startup setting.", true)
	}

	t.mu.Lock()
	t.settings.StartWithWindows = got
	t.mu.Unlock()
	t.refresh()
	t.save()
}

// refresh brings every menu item in line with the coordinator and settings.
func (t *Tray) refresh() {
	s := t.Settings()
	state := t.opts.Controller.State()

	setChecked(t.mHide, state == coordinator.Hidden)
	setChecked(t.mAuto, s.AutoHideEnabled)
	setChecked(t.mStartup, s.StartWithWindows)
	t.mTimeout.SetTitle(timeoutTitle(s.AutoHideTimeoutSeconds))
	for secs, item := range t.mTimeouts {
		setChecked(item, secs == s.AutoHideTimeoutSeconds)
	}
	systray.SetTooltip(tooltip(state, s))
}

func (t *Tray) save() {
	if t.opts.Store == nil {
		return
	}
	s := t.Settings()
	s.HidingEnabled = t.opts.Controller.State() == coordinator.Hidden
	if err := t.opts.Store.Save(s); err != nil {
		log.Warn().Err(err).Msg("save settings")
	}
}

func setChecked(item *systray.MenuItem, checked bool) {
	if item.Checked() == checked {
		return
	}
	if checked {
		item.Check()
	} else {
		item.Uncheck()
	}
}

func hideTitle(bindings []trigger.Binding) string {
	var hide, show string
	for _, b := range bindings {
		switch b.Command {
		case trigger.CommandHide:
			hide = b.Label
		case trigger.CommandShow:
			show = b.Label
		}
	}
	if hide == "" || show == "" {
		return "Hide cursor"
	}
	return fmt.Sprintf("Hide cursor (%s / %s)", hide, show)
}

func timeoutTitle(secs int) string {
	return fmt.Sprintf("Idle timeout: %ds", secs)
}

// timeoutChoices includes current when it is not one of the presets.
func timeoutChoices(current int) []int {
	out := append([]int(nil), TimeoutChoices...)
	for _, c := range out {
		if c == current {
			return out
		}
	}
	out = append(out, current)
	sort.Ints(out)
	return out
}

func tooltip(state coordinator.State, s config.Settings) string {
	tip := fmt.Sprintf("%s - cursor %s", appName, state)
	if s.AutoHideEnabled {
		tip += fmt.Sprintf(", auto-hide after %ds", s.AutoHideTimeoutSeconds)
	}
	return tip
}
