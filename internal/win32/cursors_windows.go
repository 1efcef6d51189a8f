//go:build windows

package win32

import (
	"fmt"
	"unsafe"

	"github.com/cursorcloak/cursorcloak/internal/cursor"
)

// Cursors is the user32/gdi32 implementation of cursor.Platform.
type Cursors struct{}

func NewCursors() *Cursors { return &Cursors{} }

var _ cursor.Platform = (*Cursors)(nil)

// CreateBitmap reads a full word-aligned plane, so short buffers are
// zero-extended before the call.
func (*Cursors) CreateBitmap(width, height int, planes, bitsPerPixel uint32, bits []byte) (cursor.Handle, error) {
	stride := ((width*int(bitsPerPixel) + 15) / 16) * 2
	need := stride * height * int(planes)
	buf := bits
	if len(buf) < need {
		buf = make([]byte, need)
		copy(buf, bits)
	}

	r, _, err := createBitmap.Call(
		uintptr(width),
		uintptr(height),
		uintptr(planes),
		uintptr(bitsPerPixel),
		uintptr(unsafe.Pointer(&buf[0])),
	)
	if r == 0 {
		return 0, fmt.Errorf("CreateBitmap %dx%d@%dbpp: %w", width, height, bitsPerPixel, lastErr(err))
	}
	return cursor.Handle(r), nil
}

func (*Cursors) DeleteBitmap(h cursor.Handle) error {
	if r, _, err := deleteObject.Call(uintptr(h)); r == 0 {
		return fmt.Errorf("DeleteObject: %w", lastErr(err))
	}
	return nil
}

func (*Cursors) CreateCursor(info cursor.IconInfo) (cursor.Handle, error) {
	ii := ICONINFO{
		XHotspot: info.HotspotX,
		YHotspot: info.HotspotY,
		HbmMask:  HBITMAP(info.Mask),
		HbmColor: HBITMAP(info.Color),
	}
	if info.Icon {
		ii.FIcon = 1
	}
	r, _, err := createIconIndirect.Call(uintptr(unsafe.Pointer(&ii)))
	if r == 0 {
		return 0, fmt.Errorf("CreateIconIndirect: %w", lastErr(err))
	}
	return cursor.Handle(r), nil
}

func (*Cursors) CopyCursor(h cursor.Handle) (cursor.Handle, error) {
	r, _, err := copyIcon.Call(uintptr(h))
	if r == 0 {
		return 0, fmt.Errorf("CopyIcon: %w", lastErr(err))
	}
	return cursor.Handle(r), nil
}

func (*Cursors) DestroyCursor(h cursor.Handle) error {
	if r, _, err := destroyIcon.Call(uintptr(h)); r == 0 {
		return fmt.Errorf("DestroyIcon: %w", lastErr(err))
	}
	return nil
}

// SetSystemCursor hands h to the system, which destroys it later.
func (*Cursors) SetSystemCursor(h cursor.Handle, role cursor.Role) error {
	id, err := systemCursorID(role)
	if err != nil {
		return err
	}
	if r, _, err := setSystemCursor.Call(uintptr(h), uintptr(id)); r == 0 {
		return fmt.Errorf("SetSystemCursor %s: %w", role, lastErr(err))
	}
	return nil
}

// ReloadSystemCursors restores the cursor scheme configured in the control
// panel for every system cursor.
func (*Cursors) ReloadSystemCursors() error {
	r, _, err := systemParametersInfo.Call(uintptr(SPISetCursors), 0, 0, uintptr(SPIFSendWinIniChange))
	if r == 0 {
		return fmt.Errorf("SystemParametersInfo(SPI_SETCURSORS): %w", lastErr(err))
	}
	return nil
}

func systemCursorID(role cursor.Role) (SystemCursorID, error) {
	switch role {
	case cursor.RoleArrow:
		return OCRNormal, nil
	case cursor.RoleIBeam:
		return OCRIBeam, nil
	case cursor.RoleHand:
		return OCRHand, nil
	}
	return 0, fmt.Errorf("no system cursor for %s", role)
}
