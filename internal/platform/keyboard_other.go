//go:build !windows

package platform

import (
	"fmt"

	"github.com/go-vgo/robotgo"

	"github.com/Norgate-AV/typesim/internal/logger"
)

// RobotgoEmitter injects keystrokes through robotgo (X11/Wayland via XTest,
// Quartz events on macOS).
type RobotgoEmitter struct {
	log     logger.LoggerInterface
	typeStr func(s string)
	keyTap  func(key string) error
}

// NewEmitter returns the robotgo key emitter.
func NewEmitter(log logger.LoggerInterface) *RobotgoEmitter {
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &RobotgoEmitter{
		log:     log,
		typeStr: func(s string) { robotgo.TypeStr(s) },
		keyTap:  func(key string) error { return robotgo.KeyTap(key) },
	}
}

func (e *RobotgoEmitter) Emit(r rune) error {
	if key, special := SpecialKey(r); special {
		if key == "" {
			return nil
		}
		return e.tap(key)
	}

	e.typeStr(string(r))
	return nil
}

func (e *RobotgoEmitter) Backspace() error {
	return e.tap(KeyBackspace)
}

func (e *RobotgoEmitter) tap(key Key) error {
	if err := e.keyTap(string(key)); err != nil {
		return fmt.Errorf("key tap %s: %w", key, err)
	}

	e.log.Trace("Key tapped", "key", string(key))
	return nil
}
