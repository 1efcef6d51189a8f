// Package cursor swaps the system pointer set for a synthesized transparent
// pointer and back.
package cursor

import "fmt"

// Handle is an opaque native handle (bitmap or cursor).
type Handle uintptr

// Role identifies a system pointer slot. Values match the OCR_* ids.
type Role uint32

const (
	RoleArrow Role = 32512
	RoleIBeam Role = 32513
	RoleHand  Role = 32649
)

// ManagedRoles is the fixed set the engine hides and shows together.
var ManagedRoles = [...]Role{RoleArrow, RoleIBeam, RoleHand}

func (r Role) String() string {
	switch r {
	case RoleArrow:
		return "arrow"
	case RoleIBeam:
		return "ibeam"
	case RoleHand:
		return "hand"
	}
	return fmt.Sprintf("role(%d)", uint32(r))
}

// IconInfo mirrors the fields of a native ICONINFO.
type IconInfo struct {
	Icon     bool
	HotspotX uint32
	HotspotY uint32
	Mask     Handle
	Color    Handle
}

// Platform is the native surface the cache and engine need.
//
// SetSystemCursor takes ownership of the handle it is given when it
// succeeds; callers must never pass a handle they still intend to use.
type Platform interface {
	CreateBitmap(width, height int, planes, bitsPerPixel uint32, bits []byte) (Handle, error)
	DeleteBitmap(h Handle) error
	CreateCursor(info IconInfo) (Handle, error)
	CopyCursor(h Handle) (Handle, error)
	DestroyCursor(h Handle) error
	SetSystemCursor(h Handle, role Role) error
	ReloadSystemCursors() error
}
