package settings

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultEnvPrefix scopes environment overrides, e.g. TYPESIM_BASE_SPEED_CPM=240.
const DefaultEnvPrefix = "TYPESIM"

// LoadOptions selects the layers merged by Load.
type LoadOptions struct {
	Preset    string // Preset key; empty means casual
	File      string // Optional YAML/JSON/TOML file overriding preset values
	EnvPrefix string // Environment prefix; empty means DefaultEnvPrefix
	NoEnv     bool   // Skip environment overrides
}

// Load resolves a Config by layering preset, file and environment values,
// then validates the result.
func Load(opts LoadOptions) (Config, error) {
	presetName := opts.Preset
	if presetName == "" {
		presetName = PresetCasual
	}

	base, ok := Preset(presetName)
	if !ok {
		hint := closestPresets(presetName)
		if len(hint) > 0 {
			return Config{}, fmt.Errorf("unknown preset %q (did you mean %s?)", presetName, strings.Join(hint, ", "))
		}

		return Config{}, fmt.Errorf("unknown preset %q (available: %s)", presetName, strings.Join(PresetNames(), ", "))
	}

	raw, err := yaml.Marshal(base)
	if err != nil {
		return Config{}, fmt.Errorf("failed to encode preset %q: %w", presetName, err)
	}

	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewReader(raw)); err != nil {
		return Config{}, fmt.Errorf("failed to seed preset %q: %w", presetName, err)
	}

	if opts.File != "" {
		// Files without an extension are read as YAML.
		if ext := strings.TrimPrefix(filepath.Ext(opts.File), "."); ext != "" {
			v.SetConfigType(strings.ToLower(ext))
		}

		v.SetConfigFile(opts.File)

		if err := v.MergeInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read settings file %s: %w", opts.File, err)
		}
	}

	if !opts.NoEnv {
		prefix := opts.EnvPrefix
		if prefix == "" {
			prefix = DefaultEnvPrefix
		}

		v.SetEnvPrefix(prefix)
		v.AutomaticEnv()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode settings: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Save writes c as YAML.
func Save(w io.Writer, c Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	return enc.Close()
}

// SaveFile writes c to path as YAML, creating parent directories.
func SaveFile(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("could not create settings directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create settings file %s: %w", path, err)
	}

	if err := Save(file, c); err != nil {
		_ = file.Close()
		return err
	}

	return file.Close()
}
