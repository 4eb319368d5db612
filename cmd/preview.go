package cmd

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/typesim/internal/preview"
)

var previewCmd = &cobra.Command{
	Use:   "preview [file | -]",
	Short: "Dry-run a typing session and print its keystroke schedule",
	Long: `Simulate typing the text without sending any keystrokes. The report lists
every key event with its simulated timestamp, the total duration and the
effective speed. Pass --seed to reproduce a schedule exactly.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

func init() {
	addSettingsFlags(previewCmd)
	addClipboardFlag(previewCmd)
	previewCmd.Flags().StringP("format", "f", string(preview.FormatTable), "output format (table, yaml, json)")
	previewCmd.Flags().Int("max-events", 50, "limit table rows; 0 prints every event")

	RootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg := NewConfigFromFlags(cmd)

	// The report owns stdout; log lines go to stderr so yaml/json stay parseable.
	log, err := initializeLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}

	defer log.Close()
	defer recoverPanic(log)

	format, err := preview.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	text, err := readText(TextSourceParams{Args: args, Clipboard: cfg.Clipboard, Stdin: cmd.InOrStdin(), Logger: log})
	if err != nil {
		return err
	}

	typing, err := cfg.TypingSettings()
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if !cfg.SeedSet {
		seed = uint64(time.Now().UnixNano())
	}

	log.Debug("Simulating run",
		slog.String("preset", typing.Name),
		slog.Uint64("seed", seed),
		slog.Int("chars", len([]rune(text))),
	)

	report, err := preview.Simulate(cmd.Context(), text, typing, seed)
	if err != nil {
		return err
	}

	log.Trace("Simulation complete",
		slog.Int("keystrokes", report.Keystrokes),
		slog.Int("typos", report.Typos),
		slog.Duration("duration", report.Duration()),
	)

	return preview.Render(cmd.OutOrStdout(), report, format, preview.RenderOptions{MaxEvents: cfg.MaxEvents})
}
