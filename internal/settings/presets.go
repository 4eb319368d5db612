package settings

import (
	"sort"
	"strings"
)

// Preset keys accepted on the command line.
const (
	PresetCasual   = "casual"
	PresetFast     = "fast"
	PresetCareful  = "careful"
	PresetBeginner = "beginner"
	PresetRobot    = "robot"
)

// Casual is an everyday typist with frequent small hesitations.
func Casual() Config {
	c := Default()
	c.Name = "Casual Typist"
	c.BaseSpeedCPM = 180
	c.SpeedVariation = 35
	c.ThinkingPauseChance = 8
	c.MakeTypos = true
	c.TypoChance = 4
	c.BurstEnabled = true
	c.BurstChance = 15
	return c
}

// Fast is an experienced typist with short pauses and long bursts.
func Fast() Config {
	c := Default()
	c.Name = "Fast Typist"
	c.BaseSpeedCPM = 350
	c.SpeedVariation = 20
	c.ThinkingPauseChance = 2
	c.ThinkingPauseMinMs = 200
	c.ThinkingPauseMaxMs = 800
	c.PauseAfterPeriod = 150
	c.PauseAfterComma = 80
	c.MakeTypos = true
	c.TypoChance = 2
	c.BurstEnabled = true
	c.BurstChance = 20
	c.BurstSpeedMultiplier = 1.8
	return c
}

// Careful is slow and deliberate and never makes typos.
func Careful() Config {
	c := Default()
	c.Name = "Careful Typist"
	c.BaseSpeedCPM = 120
	c.SpeedVariation = 15
	c.ThinkingPauseChance = 12
	c.ThinkingPauseMinMs = 800
	c.ThinkingPauseMaxMs = 3000
	c.PauseAfterPeriod = 500
	c.PauseAfterComma = 250
	c.MakeTypos = false
	c.BurstEnabled = false
	return c
}

// Beginner hunts for keys, pauses a lot and makes many mistakes.
func Beginner() Config {
	c := Default()
	c.Name = "Beginner Typist"
	c.BaseSpeedCPM = 80
	c.SpeedVariation = 50
	c.ThinkingPauseChance = 15
	c.ThinkingPauseMinMs = 1000
	c.ThinkingPauseMaxMs = 4000
	c.PauseAfterPeriod = 600
	c.PauseAfterComma = 400
	c.PauseAfterNewline = 1000
	c.MakeTypos = true
	c.TypoChance = 8
	c.TypoNoticeDelayMinMs = 300
	c.TypoNoticeDelayMaxMs = 1000
	c.BurstEnabled = false
	c.PauseBetweenWords = 200
	return c
}

// Robot types at a near-constant pace.
func Robot() Config {
	c := Default()
	c.Name = "Robot (Consistent)"
	c.BaseSpeedCPM = 300
	c.SpeedVariation = 5
	c.ThinkingPauseChance = 0
	c.PauseAfterPeriod = 100
	c.PauseAfterComma = 50
	c.PauseAfterNewline = 100
	c.MakeTypos = false
	c.BurstEnabled = false
	c.PauseBetweenWords = 50
	c.WordSpeedVariation = 5
	return c
}

var presets = map[string]func() Config{
	PresetCasual:   Casual,
	PresetFast:     Fast,
	PresetCareful:  Careful,
	PresetBeginner: Beginner,
	PresetRobot:    Robot,
}

// presetOrder is the display order used by listings and pickers.
var presetOrder = []string{PresetCasual, PresetFast, PresetCareful, PresetBeginner, PresetRobot}

// Preset returns a fresh copy of the named preset. Lookup is case-insensitive.
func Preset(name string) (Config, bool) {
	build, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Config{}, false
	}
	return build(), true
}

// PresetNames returns the preset keys in display order.
func PresetNames() []string {
	names := make([]string, len(presetOrder))
	copy(names, presetOrder)
	return names
}

// Presets returns copies of every built-in preset in display order.
func Presets() []Config {
	out := make([]Config, 0, len(presetOrder))
	for _, name := range presetOrder {
		out = append(out, presets[name]())
	}
	return out
}

// closestPresets lists known keys sharing a prefix with name, for error hints.
func closestPresets(name string) []string {
	name = strings.ToLower(name)
	var out []string
	for key := range presets {
		if name != "" && (strings.HasPrefix(key, name) || strings.HasPrefix(name, key)) {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}
