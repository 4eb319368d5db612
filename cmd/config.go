// Package cmd implements the command-line interface for typesim.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/typesim/internal/settings"
)

// Config holds all application configuration
type Config struct {
	Verbose  bool
	ShowLogs bool

	// Typing settings
	Preset       string
	SettingsFile string
	CPM          float64
	NoTypos      bool
	Seed         uint64
	SeedSet      bool

	// Text source
	Clipboard bool

	// type
	Activation       string
	RequireElevation bool

	// preview
	Format    string
	MaxEvents int

	// presets
	Export string
}

// NewConfigFromFlags creates a Config from parsed command flags. Flags a
// command does not define are left at their zero value.
func NewConfigFromFlags(cmd *cobra.Command) *Config {
	return &Config{
		Verbose:          getBoolFlag(cmd, "verbose"),
		ShowLogs:         getBoolFlag(cmd, "logs"),
		Preset:           getStringFlag(cmd, "preset"),
		SettingsFile:     getStringFlag(cmd, "config"),
		CPM:              getFloatFlag(cmd, "cpm"),
		NoTypos:          getBoolFlag(cmd, "no-typos"),
		Seed:             getUint64Flag(cmd, "seed"),
		SeedSet:          cmd.Flags().Changed("seed"),
		Clipboard:        getBoolFlag(cmd, "clipboard"),
		Activation:       getStringFlag(cmd, "activation"),
		RequireElevation: getBoolFlag(cmd, "require-elevation"),
		Format:           getStringFlag(cmd, "format"),
		MaxEvents:        getIntFlag(cmd, "max-events"),
		Export:           getStringFlag(cmd, "export"),
	}
}

// TypingSettings resolves the preset, settings file and environment layers,
// then applies the flag overrides on top.
func (c *Config) TypingSettings() (settings.Config, error) {
	cfg, err := settings.Load(settings.LoadOptions{
		Preset: c.Preset,
		File:   c.SettingsFile,
	})
	if err != nil {
		return settings.Config{}, err
	}

	if c.CPM != 0 {
		cfg.BaseSpeedCPM = c.CPM
	}

	if c.NoTypos {
		cfg.MakeTypos = false
	}

	if err := settings.Validate(cfg); err != nil {
		return settings.Config{}, fmt.Errorf("invalid typing settings: %w", err)
	}

	return cfg, nil
}

// addSettingsFlags registers the flags that select typing behaviour
func addSettingsFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("preset", "p", settings.PresetCasual, "typing preset (casual, fast, careful, beginner, robot)")
	cmd.Flags().StringP("config", "c", "", "YAML, JSON or TOML file overriding preset values")
	cmd.Flags().Float64("cpm", 0, "override the base speed in characters per minute")
	cmd.Flags().Bool("no-typos", false, "never make typos")
	cmd.Flags().Uint64("seed", 0, "seed the random source for a reproducible run")
}

// getBoolFlag retrieves a boolean flag, checking both local and persistent flags
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		// Try persistent flags if not found in local flags
		val, _ = cmd.PersistentFlags().GetBool(name)
	}

	return val
}

func getStringFlag(cmd *cobra.Command, name string) string {
	val, _ := cmd.Flags().GetString(name)
	return val
}

func getFloatFlag(cmd *cobra.Command, name string) float64 {
	val, _ := cmd.Flags().GetFloat64(name)
	return val
}

func getIntFlag(cmd *cobra.Command, name string) int {
	val, _ := cmd.Flags().GetInt(name)
	return val
}

func getUint64Flag(cmd *cobra.Command, name string) uint64 {
	val, _ := cmd.Flags().GetUint64(name)
	return val
}
