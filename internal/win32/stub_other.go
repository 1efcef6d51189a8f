//go:build !windows

package win32

import (
	"github.com/rs/zerolog/log"

	"github.com/cursorcloak/cursorcloak/internal/cursor"
)

// Cursors fails every call outside Windows.
type Cursors struct{}

func NewCursors() *Cursors { return &Cursors{} }

var _ cursor.Platform = (*Cursors)(nil)

func (*Cursors) CreateBitmap(int, int, uint32, uint32, []byte) (cursor.Handle, error) {
	return 0, ErrUnsupported
}

func (*Cursors) DeleteBitmap(cursor.Handle) error { return ErrUnsupported }

func (*Cursors) CreateCursor(cursor.IconInfo) (cursor.Handle, error) { return 0, ErrUnsupported }

func (*Cursors) CopyCursor(cursor.Handle) (cursor.Handle, error) { return 0, ErrUnsupported }

func (*Cursors) DestroyCursor(cursor.Handle) error { return ErrUnsupported }

func (*Cursors) SetSystemCursor(cursor.Handle, cursor.Role) error { return ErrUnsupported }

func (*Cursors) ReloadSystemCursors() error { return ErrUnsupported }

type Listener struct{}

func NewListener(ListenerConfig) *Listener { return &Listener{} }

func (*Listener) Start() StartResult {
	return StartResult{Hook: ErrUnsupported, Hotkeys: ErrUnsupported}
}

func (*Listener) Stop() {}

func IsElevated() (bool, error) { return false, ErrUnsupported }

func AcquireSingleInstance(string) (func(), error) { return func() {}, nil }

func ShowMessage(title, text string, warning bool) {
	log.Warn().Str("title", title).Msg(text)
}

type Startup struct{}

func NewStartup(string) *Startup { return &Startup{} }

func (*Startup) Enabled() (bool, error) { return false, ErrUnsupported }

func (*Startup) SetEnabled(bool) error { return ErrUnsupported }
