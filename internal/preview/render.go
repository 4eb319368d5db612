package preview

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// Format selects how a Report is rendered.
type Format string

const (
	FormatTable Format = "table"
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
)

// Formats lists the accepted output formats.
var Formats = []Format{FormatTable, FormatYAML, FormatJSON}

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}

	return "", fmt.Errorf("unknown format %q (want table, yaml or json)", s)
}

// RenderOptions tunes table output.
type RenderOptions struct {
	// MaxEvents caps the rows of the event table; 0 prints every event.
	MaxEvents int
}

// Render writes r to w in the given format.
func Render(w io.Writer, r *Report, format Format, opts RenderOptions) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode report as yaml: %w", err)
		}
		return enc.Close()

	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode report as json: %w", err)
		}
		return nil

	case FormatTable, "":
		return renderTable(w, r, opts)

	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func renderTable(w io.Writer, r *Report, opts RenderOptions) error {
	heading := color.New(color.Bold)
	typoColor := color.New(color.FgYellow)
	backColor := color.New(color.FgRed)

	heading.Fprintf(w, "Preset:        %s\n", r.Preset)
	fmt.Fprintf(w, "Seed:          %d\n", r.Seed)
	fmt.Fprintf(w, "Characters:    %d\n", r.Characters)
	fmt.Fprintf(w, "Keystrokes:    %d (+%d typos, %d backspaces)\n", r.Keystrokes, r.Typos, r.Backspaces)
	fmt.Fprintf(w, "Duration:      %s\n", r.Duration().Round(time.Millisecond))
	fmt.Fprintf(w, "Effective CPM: %.0f\n\n", r.EffectiveCPM)

	events := r.Events
	truncated := 0
	if opts.MaxEvents > 0 && len(events) > opts.MaxEvents {
		truncated = len(events) - opts.MaxEvents
		events = events[:opts.MaxEvents]
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "AT (ms)\tINDEX\tKIND\tCHAR")

	for _, ev := range events {
		char := displayChar(ev)

		// Only the last cell is colored; escape codes would skew column widths.
		switch ev.Kind {
		case KindTypo:
			char = typoColor.Sprint(char)
		case KindBackspace:
			char = backColor.Sprint(char)
		}

		fmt.Fprintf(tw, "%.0f\t%d\t%s\t%s\n", ev.AtMs, ev.Index, ev.Kind, char)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if truncated > 0 {
		fmt.Fprintf(w, "... %d more events\n", truncated)
	}

	return nil
}

func displayChar(ev Event) string {
	switch {
	case ev.Kind == KindBackspace:
		return "⌫"
	case ev.Char == " ":
		return "␣"
	default:
		return strings.Trim(fmt.Sprintf("%q", ev.Char), `"`)
	}
}
