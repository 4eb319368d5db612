package cmd

import (
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/typesim/internal/random"
	"github.com/Norgate-AV/typesim/internal/tui"
)

// sampleText is rehearsed when no text source is given
const sampleText = `The quick brown fox jumps over the lazy dog. Pack my box with five dozen liquor jugs!

Sphinx of black quartz, judge my vow.`

var tuiCmd = &cobra.Command{
	Use:   "tui [file | -]",
	Short: "Rehearse a typing run in the terminal",
	Long: `Watch a run type into an on-screen buffer instead of another application.
Press enter to arm, space three times to activate, p to pause, r to resume,
s to stop and q to quit. Without --preset a picker asks which preset to use.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	addSettingsFlags(tuiCmd)
	addClipboardFlag(tuiCmd)

	RootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg := NewConfigFromFlags(cmd)

	// The screen belongs to Bubble Tea; keep console logging out of it.
	log, err := initializeLogger(cfg, io.Discard)
	if err != nil {
		return err
	}

	defer log.Close()
	defer recoverPanic(log)

	text := sampleText
	if len(args) > 0 || cfg.Clipboard {
		if text, err = readText(TextSourceParams{Args: args, Clipboard: cfg.Clipboard, Stdin: cmd.InOrStdin(), Logger: log}); err != nil {
			return err
		}
	}

	if !cmd.Flags().Changed("preset") {
		picked, err := tui.PickPreset(cfg.Preset)
		if errors.Is(err, tui.ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}

		cfg.Preset = picked
	}

	typing, err := cfg.TypingSettings()
	if err != nil {
		return err
	}

	log.Debug("Starting rehearsal", slog.String("preset", typing.Name), slog.Int("chars", len([]rune(text))))

	opts := tui.Options{Text: text, Config: typing, Logger: log}
	if cfg.SeedSet {
		opts.Rand = random.New(cfg.Seed)
	}

	return tui.Run(cmd.Context(), opts)
}
