//go:build windows

package win32

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/AllenDang/w32"
	"github.com/rs/zerolog/log"
	"github.com/tevino/abool"
	"golang.org/x/sys/windows"

	"github.com/cursorcloak/cursorcloak/internal/trigger"
)

// Listener owns an OS thread with a message queue. The low-level mouse
// hook and the hotkeys are bound to that thread, and both are torn down on
// it as well.
type Listener struct {
	cfg ListenerConfig

	threadID uint32
	hook     w32.HHOOK
	hotkeys  bool
	running  *abool.AtomicBool
	done     chan struct{}
}

func NewListener(cfg ListenerConfig) *Listener {
	return &Listener{
		cfg:     cfg,
		running: abool.New(),
		done:    make(chan struct{}),
	}
}

// Start spins up the listener thread and returns once the hook and the
// hotkeys have been attempted.
func (l *Listener) Start() StartResult {
	ready := make(chan StartResult, 1)
	go l.loop(ready)
	return <-ready
}

// Stop uninstalls everything and waits for the thread to exit. Safe to call
// more than once.
func (l *Listener) Stop() {
	if !l.running.SetToIf(true, false) {
		return
	}
	if r, _, err := postThreadMessage.Call(uintptr(l.threadID), WMQuit, 0, 0); r == 0 {
		log.Error().Err(lastErr(err)).Msg("PostThreadMessage(WM_QUIT) failed")
		return
	}
	<-l.done
}

func (l *Listener) loop(ready chan<- StartResult) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(l.done)

	l.threadID = windows.GetCurrentThreadId()

	// make sure the thread has a queue before anyone posts to it
	var msg MSG
	peekMessage.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0, PMNoRemove)

	var res StartResult
	l.hook = w32.SetWindowsHookEx(w32.WH_MOUSE_LL, l.mouseHookCallback, w32.GetModuleHandle(""), 0)
	if l.hook == 0 {
		res.Hook = fmt.Errorf("%w: SetWindowsHookEx(WH_MOUSE_LL): error %d", ErrListenerInstall, w32.GetLastError())
	} else {
		log.Debug().Msg("mouse hook installed")
	}

	if err := trigger.RegisterAll(threadHotkeys{}, l.cfg.Bindings); err != nil {
		res.Hotkeys = err
	} else {
		l.hotkeys = true
	}

	l.running.Set()
	ready <- res

	for {
		r, _, err := getMessage.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0)
		if int32(r) == -1 {
			log.Error().Err(lastErr(err)).Msg("GetMessage failed")
			break
		}
		if r == 0 {
			break
		}
		if msg.Message == WMHotkey {
			l.dispatchHotkey(int(msg.WParam))
		}
	}

	l.teardown()
}

func (l *Listener) teardown() {
	if l.hotkeys {
		if err := trigger.UnregisterAll(threadHotkeys{}, l.cfg.Bindings); err != nil {
			log.Warn().Err(err).Msg("unregister hotkeys")
		}
		l.hotkeys = false
	}
	if l.hook != 0 {
		if !w32.UnhookWindowsHookEx(l.hook) {
			log.Warn().Uint32("error", w32.GetLastError()).Msg("UnhookWindowsHookEx failed")
		}
		l.hook = 0
	}
	log.Debug().Msg("input listener stopped")
}

func (l *Listener) dispatchHotkey(id int) {
	b, ok := trigger.Lookup(l.cfg.Bindings, id)
	if !ok || l.cfg.OnHotkey == nil {
		return
	}
	l.cfg.OnHotkey(b.Command)
}

// mouseHookCallback runs inline in the system input pipeline.
func (l *Listener) mouseHookCallback(nCode int, wParam w32.WPARAM, lParam w32.LPARAM) w32.LRESULT {
	if nCode >= 0 && wParam == w32.WM_MOUSEMOVE && l.cfg.OnMove != nil {
		l.cfg.OnMove()
	}
	return w32.CallNextHookEx(l.hook, nCode, wParam, lParam)
}

// threadHotkeys registers hotkeys against the calling thread's queue
// (hWnd = NULL). It must only be used from the listener thread.
type threadHotkeys struct{}

func (threadHotkeys) Register(b trigger.Binding) error {
	r, _, err := registerHotKey.Call(0, uintptr(b.ID), uintptr(b.Modifiers), uintptr(b.Key))
	if r == 0 {
		return lastErr(err)
	}
	return nil
}

func (threadHotkeys) Unregister(b trigger.Binding) error {
	r, _, err := unregisterHotKey.Call(0, uintptr(b.ID))
	if r == 0 {
		return lastErr(err)
	}
	return nil
}
