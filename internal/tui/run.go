package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/Norgate-AV/typesim/internal/settings"
	"github.com/Norgate-AV/typesim/internal/timeouts"
)

// ErrAborted is returned when the user leaves the preset picker.
var ErrAborted = errors.New("aborted")

// Run shows the rehearsal screen until the user quits.
func Run(ctx context.Context, opts Options) error {
	model := NewModel(opts)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	_, err := program.Run()

	// The program may end on ctx or a kill; make sure no run outlives it.
	ctrl := model.Controller()
	ctrl.Stop()

	waitCtx, cancel := context.WithTimeout(context.Background(), timeouts.ShutdownTimeout)
	defer cancel()

	if werr := ctrl.Wait(waitCtx); werr != nil {
		model.log.Debug("Rehearsal ended with error", slog.Any("error", werr))
	}

	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("rehearsal failed: %w", err)
	}

	return nil
}

// PickPreset asks for a preset interactively and returns its key.
func PickPreset(initial string) (string, error) {
	choice := initial
	if _, ok := settings.Preset(choice); !ok {
		choice = settings.PresetCasual
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Typing preset").
				Description("How should the rehearsal type?").
				Options(presetOptions()...).
				Value(&choice),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrAborted
		}
		return "", fmt.Errorf("preset picker failed: %w", err)
	}

	return choice, nil
}

func presetOptions() []huh.Option[string] {
	names := settings.PresetNames()
	opts := make([]huh.Option[string], 0, len(names))

	for _, name := range names {
		cfg, _ := settings.Preset(name)
		label := fmt.Sprintf("%-15s %3.0f cpm", cfg.Name, cfg.BaseSpeedCPM)
		opts = append(opts, huh.NewOption(label, name))
	}

	return opts
}
