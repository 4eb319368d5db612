// Package testutil provides test utilities and mock implementations.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Norgate-AV/typesim/internal/settings"
)

// CreateTempDir creates a temporary directory for testing
func CreateTempDir(t *testing.T) string {
	t.Helper()

	dir, err := os.MkdirTemp("", "typesim-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	t.Cleanup(func() {
		if err := os.RemoveAll(dir); err != nil {
			// Ignore cleanup errors in tests
		}
	})
	return dir
}

// CreateTextFile writes content to dir/name and returns its path
func CreateTextFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	return path
}

// PlainConfig returns a config with every random behaviour switched off, so
// a run emits exactly the input text.
func PlainConfig() settings.Config {
	cfg := settings.Robot()
	cfg.Name = "Plain"
	cfg.SpeedVariation = 0
	cfg.ThinkingPauseChance = 0
	cfg.MakeTypos = false
	cfg.TypoChance = 0
	cfg.BurstEnabled = false
	cfg.WordSpeedVariation = 0
	return cfg
}

// FixedSource is a random source that always returns the same draw.
type FixedSource struct {
	Value float64 // in [0, 1)
}

func (s FixedSource) Float64() float64 {
	return s.Value
}

func (s FixedSource) IntN(n int) int {
	return min(int(s.Value*float64(n)), n-1)
}
