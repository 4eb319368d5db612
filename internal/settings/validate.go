package settings

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is matched by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// ValidationError names the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config: %s %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// Validate checks the invariants a run depends on and reports the first
// violation found.
func Validate(c Config) error {
	for _, f := range c.floatFields() {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return invalid(f.field, "must be a finite number")
		}
	}

	if c.BaseSpeedCPM <= 0 {
		return invalid("base_speed_cpm", "must be greater than 0")
	}

	nonNegative := []struct {
		field string
		value float64
	}{
		{"speed_variation", c.SpeedVariation},
		{"thinking_pause_min_ms", c.ThinkingPauseMinMs},
		{"pause_after_period", c.PauseAfterPeriod},
		{"pause_after_comma", c.PauseAfterComma},
		{"pause_after_newline", c.PauseAfterNewline},
		{"pause_after_paragraph", c.PauseAfterParagraph},
		{"typo_notice_delay_min_ms", c.TypoNoticeDelayMinMs},
		{"pause_between_words", c.PauseBetweenWords},
		{"word_speed_variation", c.WordSpeedVariation},
	}
	for _, f := range nonNegative {
		if f.value < 0 {
			return invalid(f.field, "must not be negative")
		}
	}

	percents := []struct {
		field string
		value float64
	}{
		{"thinking_pause_chance", c.ThinkingPauseChance},
		{"typo_chance", c.TypoChance},
		{"burst_chance", c.BurstChance},
	}
	for _, p := range percents {
		if p.value < 0 || p.value > 100 {
			return invalid(p.field, "must be between 0 and 100")
		}
	}

	if c.ThinkingPauseMinMs > c.ThinkingPauseMaxMs {
		return invalid("thinking_pause_max_ms", "must not be less than thinking_pause_min_ms")
	}

	if c.TypoNoticeDelayMinMs > c.TypoNoticeDelayMaxMs {
		return invalid("typo_notice_delay_max_ms", "must not be less than typo_notice_delay_min_ms")
	}

	if c.BurstLengthMin < 1 {
		return invalid("burst_length_min", "must be at least 1")
	}

	if c.BurstLengthMin > c.BurstLengthMax {
		return invalid("burst_length_max", "must not be less than burst_length_min")
	}

	if c.BurstSpeedMultiplier <= 0 {
		return invalid("burst_speed_multiplier", "must be greater than 0")
	}

	return nil
}

type floatField struct {
	field string
	value float64
}

func (c Config) floatFields() []floatField {
	return []floatField{
		{"base_speed_cpm", c.BaseSpeedCPM},
		{"speed_variation", c.SpeedVariation},
		{"thinking_pause_chance", c.ThinkingPauseChance},
		{"thinking_pause_min_ms", c.ThinkingPauseMinMs},
		{"thinking_pause_max_ms", c.ThinkingPauseMaxMs},
		{"pause_after_period", c.PauseAfterPeriod},
		{"pause_after_comma", c.PauseAfterComma},
		{"pause_after_newline", c.PauseAfterNewline},
		{"pause_after_paragraph", c.PauseAfterParagraph},
		{"typo_chance", c.TypoChance},
		{"typo_notice_delay_min_ms", c.TypoNoticeDelayMinMs},
		{"typo_notice_delay_max_ms", c.TypoNoticeDelayMaxMs},
		{"burst_chance", c.BurstChance},
		{"burst_speed_multiplier", c.BurstSpeedMultiplier},
		{"pause_between_words", c.PauseBetweenWords},
		{"word_speed_variation", c.WordSpeedVariation},
	}
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
