//go:build windows

package platform

import (
	"log/slog"
	"unsafe"

	"github.com/Norgate-AV/typesim/internal/logger"
)

// IsElevated reports whether the process token is elevated.
func IsElevated() bool {
	var token uintptr

	currentProcess, _, _ := procGetCurrentProcess.Call()
	ret, _, _ := procOpenProcessToken.Call(
		currentProcess,
		uintptr(TOKEN_QUERY),
		uintptr(unsafe.Pointer(&token)),
	)

	if ret == 0 {
		return false
	}

	defer func() {
		_, _, _ = procCloseHandle.Call(token)
	}()

	var elevation TOKEN_ELEVATION
	var returnLength uint32

	ret, _, _ = procGetTokenInformation.Call(
		token,
		uintptr(TokenElevation),
		uintptr(unsafe.Pointer(&elevation)),
		uintptr(unsafe.Sizeof(elevation)),
		uintptr(unsafe.Pointer(&returnLength)),
	)

	if ret == 0 {
		return false
	}

	return elevation.TokenIsElevated != 0
}

// ElevationGate grants injection unconditionally unless elevation is
// required. Elevated targets ignore input from non-elevated processes.
type ElevationGate struct {
	require    bool
	isElevated func() bool
	log        logger.LoggerInterface
}

// NewGate returns the Windows permission gate.
func NewGate(opts GateOptions) *ElevationGate {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &ElevationGate{require: opts.RequireElevation, isElevated: IsElevated, log: log}
}

func (g *ElevationGate) IsGranted() bool {
	if !g.require {
		return true
	}

	elevated := g.isElevated()
	g.log.Debug("Checked elevation status", slog.Bool("elevated", elevated))
	return elevated
}
