//go:build windows

package win32

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sys/windows"
)

// IsElevated reports whether the process token is elevated.
func IsElevated() (bool, error) {
	return windows.GetCurrentProcessToken().IsElevated(), nil
}

// AcquireSingleInstance takes a named mutex. The returned func releases it.
func AcquireSingleInstance(name string) (func(), error) {
	p, err := windows.UTF16PtrFromString(`Local\` + name)
	if err != nil {
		return nil, err
	}
	h, err := windows.CreateMutex(nil, false, p)
	if err == windows.ERROR_ALREADY_EXISTS {
		windows.CloseHandle(h)
		return nil, ErrAlreadyRunning
	}
	if err != nil {
		return nil, fmt.Errorf("CreateMutex: %w", err)
	}
	return func() {
		if err := windows.CloseHandle(h); err != nil {
			log.Warn().Err(err).Msg("close instance mutex")
		}
	}, nil
}

// ShowMessage blocks until the user dismisses the box.
func ShowMessage(title, text string, warning bool) {
	t, err := windows.UTF16PtrFromString(text)
	if err != nil {
		return
	}
	c, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return
	}
	style := uint32(MBOK | MBSetForeground | MBTopMost)
	if warning {
		style |= MBIconWarning
	} else {
		style |= MBIconError
	}
	if _, err := windows.MessageBox(0, t, c, style); err != nil {
		log.Warn().Err(err).Str("title", title).Msg("MessageBox failed")
	}
}
