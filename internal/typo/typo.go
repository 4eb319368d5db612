// Package typo picks plausible wrong keys for simulated typing mistakes.
package typo

import (
	"unicode"

	"github.com/Norgate-AV/typesim/internal/random"
)

// adjacentKeys maps each lowercase letter to its physical neighbours on a
// QWERTY keyboard.
var adjacentKeys = map[rune][]rune{
	'a': {'s', 'q', 'z', 'w'},
	'b': {'v', 'g', 'h', 'n'},
	'c': {'x', 'd', 'f', 'v'},
	'd': {'s', 'e', 'r', 'f', 'c', 'x'},
	'e': {'w', 'r', 'd', 's', '3', '4'},
	'f': {'d', 'r', 't', 'g', 'v', 'c'},
	'g': {'f', 't', 'y', 'h', 'b', 'v'},
	'h': {'g', 'y', 'u', 'j', 'n', 'b'},
	'i': {'u', 'o', 'k', 'j', '8', '9'},
	'j': {'h', 'u', 'i', 'k', 'm', 'n'},
	'k': {'j', 'i', 'o', 'l', 'm', ','},
	'l': {'k', 'o', 'p', ';', '.'},
	'm': {'n', 'j', 'k', ','},
	'n': {'b', 'h', 'j', 'm'},
	'o': {'i', 'p', 'l', 'k', '9', '0'},
	'p': {'o', 'l', '[', '0', '-'},
	'q': {'w', 'a', '1', '2'},
	'r': {'e', 't', 'f', 'd', '4', '5'},
	's': {'a', 'w', 'e', 'd', 'x', 'z'},
	't': {'r', 'y', 'g', 'f', '5', '6'},
	'u': {'y', 'i', 'j', 'h', '7', '8'},
	'v': {'c', 'f', 'g', 'b'},
	'w': {'q', 'e', 's', 'a', '2', '3'},
	'x': {'z', 's', 'd', 'c'},
	'y': {'t', 'u', 'h', 'g', '6', '7'},
	'z': {'a', 's', 'x'},
}

// AdjacentKeys returns a copy of the neighbours of r (case-insensitive), or
// nil when r has none.
func AdjacentKeys(r rune) []rune {
	keys := adjacentKeys[unicode.ToLower(r)]
	if len(keys) == 0 {
		return nil
	}

	out := make([]rune, len(keys))
	copy(out, keys)
	return out
}

// Eligible reports whether r may be mistyped. Only letters are.
func Eligible(r rune) bool {
	return unicode.IsLetter(r)
}

// Model draws typo characters from an injected random source.
type Model struct {
	rng random.Source
}

// NewModel creates a Model using rng for every draw.
func NewModel(rng random.Source) *Model {
	return &Model{rng: rng}
}

// CharacterFor returns a neighbouring key for r with r's case, or r itself
// when no neighbour is known.
func (m *Model) CharacterFor(r rune) rune {
	keys := adjacentKeys[unicode.ToLower(r)]
	if len(keys) == 0 {
		return r
	}

	pick := keys[m.rng.IntN(len(keys))]
	if unicode.IsUpper(r) {
		return unicode.ToUpper(pick)
	}

	return pick
}
