//go:build windows

package platform

import (
	"fmt"
	"log/slog"
	"unicode/utf16"
	"unsafe"

	"github.com/Norgate-AV/typesim/internal/logger"
)

// SendInputEmitter injects keystrokes with SendInput. Printable runes are sent
// as KEYEVENTF_UNICODE packets so the active keyboard layout does not matter.
type SendInputEmitter struct {
	log logger.LoggerInterface
}

// NewEmitter returns the SendInput key emitter.
func NewEmitter(log logger.LoggerInterface) *SendInputEmitter {
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &SendInputEmitter{log: log}
}

func (k *SendInputEmitter) Emit(r rune) error {
	if key, special := SpecialKey(r); special {
		if key == "" {
			return nil
		}
		return k.send(virtualKeyInputs(virtualKey(key)))
	}

	return k.send(unicodeInputs(r))
}

func (k *SendInputEmitter) Backspace() error {
	return k.send(virtualKeyInputs(VK_BACK))
}

func (k *SendInputEmitter) send(inputs []INPUT) error {
	ret, _, err := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		uintptr(unsafe.Sizeof(INPUT{})),
	)

	if ret != uintptr(len(inputs)) {
		k.log.Warn("SendInput failed", slog.Uint64("expected", uint64(len(inputs))), slog.Uint64("sent", uint64(ret)))
		return fmt.Errorf("SendInput sent %d of %d events: %w", ret, len(inputs), err)
	}

	return nil
}

func virtualKey(key Key) uint16 {
	switch key {
	case KeyEnter:
		return VK_RETURN
	case KeyTab:
		return VK_TAB
	default:
		return VK_BACK
	}
}

// virtualKeyInputs builds a key down/up pair for a virtual key code.
func virtualKeyInputs(vk uint16) []INPUT {
	inputs := make([]INPUT, 2)

	inputs[0].Type = INPUT_KEYBOARD
	down := (*KEYBDINPUT)(unsafe.Pointer(&inputs[0].Data[0]))
	down.WVk = vk

	inputs[1].Type = INPUT_KEYBOARD
	up := (*KEYBDINPUT)(unsafe.Pointer(&inputs[1].Data[0]))
	up.WVk = vk
	up.DwFlags = KEYEVENTF_KEYUP

	return inputs
}

// unicodeInputs builds down/up pairs for every UTF-16 unit of r, so runes
// outside the BMP are sent as a surrogate pair.
func unicodeInputs(r rune) []INPUT {
	units := utf16.Encode([]rune{r})
	inputs := make([]INPUT, 0, len(units)*2)

	for _, unit := range units {
		for _, flags := range []uint32{KEYEVENTF_UNICODE, KEYEVENTF_UNICODE | KEYEVENTF_KEYUP} {
			var in INPUT
			in.Type = INPUT_KEYBOARD
			kb := (*KEYBDINPUT)(unsafe.Pointer(&in.Data[0]))
			kb.WScan = unit
			kb.DwFlags = flags
			inputs = append(inputs, in)
		}
	}

	return inputs
}
