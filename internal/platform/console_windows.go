//go:build windows

package platform

import (
	"sync"
	"syscall"
)

// Console control event types
const (
	CTRL_C_EVENT        = 0
	CTRL_BREAK_EVENT    = 1
	CTRL_CLOSE_EVENT    = 2
	CTRL_LOGOFF_EVENT   = 5
	CTRL_SHUTDOWN_EVENT = 6
)

var (
	handlerMu     sync.Mutex
	globalHandler func(event string)
	callback      = syscall.NewCallback(consoleCtrlHandlerCallback)
)

// OnConsoleClose calls fn when the console window is closed or the session
// ends. Ctrl+C and Ctrl+Break are left to os/signal.
func OnConsoleClose(fn func(event string)) error {
	handlerMu.Lock()
	globalHandler = fn
	handlerMu.Unlock()

	ret, _, err := procSetConsoleCtrlHandler.Call(callback, 1)
	if ret == 0 {
		return err
	}

	return nil
}

// consoleCtrlHandlerCallback is the actual callback that Windows calls
func consoleCtrlHandlerCallback(ctrlType uint32) uintptr {
	switch ctrlType {
	case CTRL_C_EVENT, CTRL_BREAK_EVENT:
		return 0 // FALSE - let default handler process it
	}

	handlerMu.Lock()
	fn := globalHandler
	handlerMu.Unlock()

	if fn == nil {
		return 0
	}

	fn(CtrlTypeName(ctrlType))
	return 1
}

// CtrlTypeName returns a human-readable name for a control event type
func CtrlTypeName(ctrlType uint32) string {
	switch ctrlType {
	case CTRL_C_EVENT:
		return "CTRL_C"
	case CTRL_BREAK_EVENT:
		return "CTRL_BREAK"
	case CTRL_CLOSE_EVENT:
		return "CTRL_CLOSE"
	case CTRL_LOGOFF_EVENT:
		return "CTRL_LOGOFF"
	case CTRL_SHUTDOWN_EVENT:
		return "CTRL_SHUTDOWN"
	default:
		return "UNKNOWN"
	}
}
