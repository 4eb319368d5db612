// Package platform provides the OS-specific keystroke injection, permission
// gate and console hooks.
package platform

import "github.com/Norgate-AV/typesim/internal/logger"

// Key is a named non-printing key.
type Key string

const (
	KeyEnter     Key = "enter"
	KeyTab       Key = "tab"
	KeyBackspace Key = "backspace"
)

// SpecialKey reports the key to press for runes that are not typed as text.
// Carriage returns are dropped so CRLF text produces a single Enter.
func SpecialKey(r rune) (key Key, special bool) {
	switch r {
	case '\n':
		return KeyEnter, true
	case '\t':
		return KeyTab, true
	case '\r':
		return "", true
	default:
		return "", false
	}
}

// GateOptions configures the permission gate.
type GateOptions struct {
	// RequireElevation refuses injection unless the process is elevated.
	// Only meaningful on Windows.
	RequireElevation bool
	Logger           logger.LoggerInterface
}
