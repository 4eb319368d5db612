//go:build !windows

package platform

import (
	"log/slog"
	"os"
	"runtime"

	"github.com/Norgate-AV/typesim/internal/logger"
)

// DisplayGate grants injection when a graphical session is reachable. On
// Linux and the BSDs that means DISPLAY or WAYLAND_DISPLAY must be set.
type DisplayGate struct {
	goos   string
	getenv func(string) string
	log    logger.LoggerInterface
}

// NewGate returns the display-session permission gate.
func NewGate(opts GateOptions) *DisplayGate {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	if opts.RequireElevation {
		log.Debug("Elevation is only checked on Windows, ignoring")
	}

	return &DisplayGate{goos: runtime.GOOS, getenv: os.Getenv, log: log}
}

func (g *DisplayGate) IsGranted() bool {
	if g.goos == "darwin" {
		return true
	}

	display, wayland := g.getenv("DISPLAY"), g.getenv("WAYLAND_DISPLAY")
	granted := display != "" || wayland != ""

	g.log.Debug("Checked display session",
		slog.String("display", display),
		slog.String("wayland", wayland),
		slog.Bool("granted", granted),
	)

	return granted
}
