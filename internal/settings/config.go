// Package settings defines the typing behaviour parameters and the built-in presets.
package settings

import "time"

// Config holds every timing and probability parameter for a typing run.
// Percentages are in [0,100], durations are milliseconds.
type Config struct {
	Name string `mapstructure:"name" yaml:"name" json:"name"`

	BaseSpeedCPM   float64 `mapstructure:"base_speed_cpm" yaml:"base_speed_cpm" json:"base_speed_cpm"`
	SpeedVariation float64 `mapstructure:"speed_variation" yaml:"speed_variation" json:"speed_variation"`

	ThinkingPauseChance float64 `mapstructure:"thinking_pause_chance" yaml:"thinking_pause_chance" json:"thinking_pause_chance"`
	ThinkingPauseMinMs  float64 `mapstructure:"thinking_pause_min_ms" yaml:"thinking_pause_min_ms" json:"thinking_pause_min_ms"`
	ThinkingPauseMaxMs  float64 `mapstructure:"thinking_pause_max_ms" yaml:"thinking_pause_max_ms" json:"thinking_pause_max_ms"`

	PauseAfterPeriod    float64 `mapstructure:"pause_after_period" yaml:"pause_after_period" json:"pause_after_period"`
	PauseAfterComma     float64 `mapstructure:"pause_after_comma" yaml:"pause_after_comma" json:"pause_after_comma"`
	PauseAfterNewline   float64 `mapstructure:"pause_after_newline" yaml:"pause_after_newline" json:"pause_after_newline"`
	PauseAfterParagraph float64 `mapstructure:"pause_after_paragraph" yaml:"pause_after_paragraph" json:"pause_after_paragraph"`

	MakeTypos            bool    `mapstructure:"make_typos" yaml:"make_typos" json:"make_typos"`
	TypoChance           float64 `mapstructure:"typo_chance" yaml:"typo_chance" json:"typo_chance"`
	TypoNoticeDelayMinMs float64 `mapstructure:"typo_notice_delay_min_ms" yaml:"typo_notice_delay_min_ms" json:"typo_notice_delay_min_ms"`
	TypoNoticeDelayMaxMs float64 `mapstructure:"typo_notice_delay_max_ms" yaml:"typo_notice_delay_max_ms" json:"typo_notice_delay_max_ms"`

	BurstEnabled         bool    `mapstructure:"burst_enabled" yaml:"burst_enabled" json:"burst_enabled"`
	BurstChance          float64 `mapstructure:"burst_chance" yaml:"burst_chance" json:"burst_chance"`
	BurstLengthMin       int     `mapstructure:"burst_length_min" yaml:"burst_length_min" json:"burst_length_min"`
	BurstLengthMax       int     `mapstructure:"burst_length_max" yaml:"burst_length_max" json:"burst_length_max"`
	BurstSpeedMultiplier float64 `mapstructure:"burst_speed_multiplier" yaml:"burst_speed_multiplier" json:"burst_speed_multiplier"`

	PauseBetweenWords  float64 `mapstructure:"pause_between_words" yaml:"pause_between_words" json:"pause_between_words"`
	WordSpeedVariation float64 `mapstructure:"word_speed_variation" yaml:"word_speed_variation" json:"word_speed_variation"`
}

// Default returns the baseline parameters every preset starts from.
func Default() Config {
	return Config{
		Name: "Custom",

		BaseSpeedCPM:   200,
		SpeedVariation: 30,

		ThinkingPauseChance: 5,
		ThinkingPauseMinMs:  500,
		ThinkingPauseMaxMs:  2000,

		PauseAfterPeriod:    300,
		PauseAfterComma:     150,
		PauseAfterNewline:   500,
		PauseAfterParagraph: 1000,

		MakeTypos:            true,
		TypoChance:           3,
		TypoNoticeDelayMinMs: 100,
		TypoNoticeDelayMaxMs: 500,

		BurstEnabled:         true,
		BurstChance:          10,
		BurstLengthMin:       3,
		BurstLengthMax:       8,
		BurstSpeedMultiplier: 1.5,

		PauseBetweenWords:  80,
		WordSpeedVariation: 20,
	}
}

// BaseDelay is the nominal gap between two keystrokes at BaseSpeedCPM.
func (c Config) BaseDelay() time.Duration {
	if c.BaseSpeedCPM <= 0 {
		return 0
	}
	return time.Duration(60000.0 / c.BaseSpeedCPM * float64(time.Millisecond))
}

// Ms converts a millisecond parameter to a time.Duration.
func Ms(v float64) time.Duration {
	return time.Duration(v * float64(time.Millisecond))
}
