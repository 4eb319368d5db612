package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Norgate-AV/typesim/internal/settings"
)

var presetsCmd = &cobra.Command{
	Use:   "presets [name]",
	Short: "List the built-in typing presets or show one as YAML",
	Long: `Without arguments, list every preset. With a name, print its settings as
YAML; use --export to write them to a file that can be edited and passed back
with --config.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPresets,
}

func init() {
	presetsCmd.Flags().StringP("export", "o", "", "write the preset as YAML to this path")

	RootCmd.AddCommand(presetsCmd)
}

var (
	presetHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7aa2f7"))
	presetKeyStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#9ece6a"))
	presetDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89"))
)

func runPresets(cmd *cobra.Command, args []string) error {
	cfg := NewConfigFromFlags(cmd)
	out := cmd.OutOrStdout()

	if len(args) == 0 && cfg.Export == "" {
		listPresets(out)
		return nil
	}

	name := settings.PresetCasual
	if len(args) > 0 {
		name = args[0]
	}

	preset, ok := settings.Preset(name)
	if !ok {
		return fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(settings.PresetNames(), ", "))
	}

	if cfg.Export != "" {
		if err := settings.SaveFile(cfg.Export, preset); err != nil {
			return err
		}

		fmt.Fprintf(out, "Wrote %s preset to %s\n", preset.Name, cfg.Export)
		return nil
	}

	return settings.Save(out, preset)
}

func listPresets(w io.Writer) {
	columns := func(name, cpm, typos, bursts string) string {
		return fmt.Sprintf("%-16s %5s  %-6s %s", name, cpm, typos, bursts)
	}

	fmt.Fprintln(w, presetHeaderStyle.Render(fmt.Sprintf("%-10s ", "PRESET")+columns("NAME", "CPM", "TYPOS", "BURSTS")))

	for _, key := range settings.PresetNames() {
		p, _ := settings.Preset(key)

		// Pad before styling; escape codes would break the alignment.
		fmt.Fprintf(w, "%s %s\n",
			presetKeyStyle.Render(fmt.Sprintf("%-10s", key)),
			columns(p.Name, fmt.Sprintf("%.0f", p.BaseSpeedCPM), onOff(p.MakeTypos, p.TypoChance), onOff(p.BurstEnabled, p.BurstChance)),
		)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, presetDimStyle.Render("Show one with: typesim presets <name>"))
}

func onOff(enabled bool, chance float64) string {
	if !enabled {
		return "off"
	}

	return fmt.Sprintf("%.0f%%", chance)
}
