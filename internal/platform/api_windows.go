//go:build windows

package platform

import "syscall"

var (
	kernel32                  = syscall.NewLazyDLL("kernel32.dll")
	procGetCurrentProcess     = kernel32.NewProc("GetCurrentProcess")
	procCloseHandle           = kernel32.NewProc("CloseHandle")
	procSetConsoleCtrlHandler = kernel32.NewProc("SetConsoleCtrlHandler")
	advapi32                  = syscall.NewLazyDLL("advapi32.dll")
	procOpenProcessToken      = advapi32.NewProc("OpenProcessToken")
	procGetTokenInformation   = advapi32.NewProc("GetTokenInformation")
	user32                    = syscall.NewLazyDLL("user32.dll")
	procSendInput             = user32.NewProc("SendInput")
)

const (
	INPUT_KEYBOARD    = 1
	KEYEVENTF_KEYUP   = 0x0002
	KEYEVENTF_UNICODE = 0x0004

	VK_BACK   = 0x08
	VK_TAB    = 0x09
	VK_RETURN = 0x0D

	TOKEN_QUERY    = 0x0008
	TokenElevation = 20
)
