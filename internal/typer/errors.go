package typer

import (
	"errors"
	"fmt"
)

var (
	// ErrPermissionDenied is returned by Start when the permission gate refuses
	// keystroke injection.
	ErrPermissionDenied = errors.New("keystroke injection not permitted")

	// ErrEmissionFailed matches any *EmissionError.
	ErrEmissionFailed = errors.New("keystroke emission failed")
)

// EmissionError reports a key emitter failure that aborted a run.
type EmissionError struct {
	Index     int  // cursor position being typed
	Char      rune // rune that was being emitted
	Backspace bool // failure happened while correcting a typo
	Err       error
}

func (e *EmissionError) Error() string {
	action := fmt.Sprintf("emitting %q", e.Char)
	if e.Backspace {
		action = "sending backspace"
	}

	return fmt.Sprintf("%s at character %d: %v", action, e.Index, e.Err)
}

func (e *EmissionError) Unwrap() error {
	return e.Err
}

func (e *EmissionError) Is(target error) bool {
	return target == ErrEmissionFailed
}
