//go:build windows

package win32

import "golang.org/x/sys/windows"

var (
	user32DLL = windows.NewLazySystemDLL("user32.dll")
	gdi32DLL  = windows.NewLazySystemDLL("gdi32.dll")

	createIconIndirect   = user32DLL.NewProc("CreateIconIndirect")
	copyIcon             = user32DLL.NewProc("CopyIcon")
	destroyIcon          = user32DLL.NewProc("DestroyIcon")
	setSystemCursor      = user32DLL.NewProc("SetSystemCursor")
	systemParametersInfo = user32DLL.NewProc("SystemParametersInfoW")
	registerHotKey       = user32DLL.NewProc("RegisterHotKey")
	unregisterHotKey     = user32DLL.NewProc("UnregisterHotKey")
	getMessage           = user32DLL.NewProc("GetMessageW")
	peekMessage          = user32DLL.NewProc("PeekMessageW")
	postThreadMessage    = user32DLL.NewProc("PostThreadMessageW")

	createBitmap = gdi32DLL.NewProc("CreateBitmap")
	deleteObject = gdi32DLL.NewProc("DeleteObject")
)

// lastErr turns the errno returned by LazyProc.Call into a useful error.
// Call always returns a non-nil err, even on success.
func lastErr(err error) error {
	if errno, ok := err.(windows.Errno); ok && errno == 0 {
		return windows.ERROR_INVALID_FUNCTION
	}
	if err == nil {
		return windows.ERROR_INVALID_FUNCTION
	}
	return err
}
