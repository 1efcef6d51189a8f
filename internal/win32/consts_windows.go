//go:build windows

package win32

type HBITMAP uintptr

type SystemCursorID uint32

const (
	OCRNormal SystemCursorID = 32512
	OCRIBeam                 = 32513
	OCRHand                  = 32649
)

type SystemParametersAction uint32

const (
	SPISetCursors SystemParametersAction = 0x0057
)

type SystemParametersFlags uint32

const (
	SPIFUpdateIniFile    SystemParametersFlags = 0x01
	SPIFSendWinIniChange                       = 0x02
)

const (
	WMQuit   = 0x0012
	WMHotkey = 0x0312
)

const (
	PMNoRemove = 0x0000
)

type MessageBoxStyle uint32

const (
	MBOK            MessageBoxStyle = 0x00000000
	MBIconError                     = 0x00000010
	MBIconWarning                   = 0x00000030
	MBSetForeground                 = 0x00010000
	MBTopMost                       = 0x00040000
)
