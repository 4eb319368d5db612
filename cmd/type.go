package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Norgate-AV/typesim/internal/activation"
	"github.com/Norgate-AV/typesim/internal/interfaces"
	"github.com/Norgate-AV/typesim/internal/logger"
	"github.com/Norgate-AV/typesim/internal/observer"
	"github.com/Norgate-AV/typesim/internal/platform"
	"github.com/Norgate-AV/typesim/internal/random"
	"github.com/Norgate-AV/typesim/internal/settings"
	"github.com/Norgate-AV/typesim/internal/timeouts"
	"github.com/Norgate-AV/typesim/internal/typer"
)

const (
	activationCountdown = "countdown"
	activationEnter     = "enter"
)

// ErrInterrupted is returned when a run is stopped by a signal or console close
var ErrInterrupted = errors.New("interrupted")

var typeCmd = &cobra.Command{
	Use:   "type [file | -]",
	Short: "Type text into the focused application",
	Long: `Type the contents of a file, stdin ("-") or the clipboard into whatever
window has keyboard focus.

The run arms first: by default a 3 second countdown gives you time to focus the
target window; with --activation enter, press Enter three times instead.
Press Ctrl+C to stop.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runType,
}

func init() {
	addSettingsFlags(typeCmd)
	addClipboardFlag(typeCmd)
	typeCmd.Flags().String("activation", activationCountdown, "how the run is armed (countdown, enter)")
	typeCmd.Flags().Bool("require-elevation", false, "refuse to type unless running elevated (Windows)")

	RootCmd.AddCommand(typeCmd)
}

// ExecutionContext holds state needed throughout a run and for cleanup in
// signal handlers.
type ExecutionContext struct {
	ctrl     *typer.Controller
	log      logger.LoggerInterface
	exitFunc func(int) // Injectable for testing; defaults to os.Exit
}

// RunParams holds parameters for a typing run
type RunParams struct {
	Text     string
	Settings settings.Config
	Config   *Config
	Emitter  interfaces.KeyEmitter
	Gate     interfaces.PermissionGate
	Source   interfaces.ActivationSource
	Out      io.Writer
	Logger   logger.LoggerInterface
	Sleeper  interfaces.Sleeper
}

func runType(cmd *cobra.Command, args []string) error {
	cfg := NewConfigFromFlags(cmd)

	log, err := initializeLogger(cfg, os.Stdout)
	if err != nil {
		return err
	}

	defer log.Close()
	defer recoverPanic(log)

	log.Debug("Starting typesim", slog.String("version", RootCmd.Version), slog.Any("args", args))
	log.Debug("Flags set",
		slog.String("preset", cfg.Preset),
		slog.String("activation", cfg.Activation),
		slog.Bool("clipboard", cfg.Clipboard),
		slog.Bool("requireElevation", cfg.RequireElevation),
	)

	text, err := readText(TextSourceParams{Args: args, Clipboard: cfg.Clipboard, Stdin: os.Stdin, Logger: log})
	if err != nil {
		return err
	}

	typing, err := cfg.TypingSettings()
	if err != nil {
		return err
	}

	source, err := activationSource(cfg.Activation, args, os.Stdin, os.Stdout)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = runTyping(ctx, RunParams{
		Text:     text,
		Settings: typing,
		Config:   cfg,
		Emitter:  platform.NewEmitter(log),
		Gate:     platform.NewGate(platform.GateOptions{RequireElevation: cfg.RequireElevation, Logger: log}),
		Source:   source,
		Out:      os.Stdout,
		Logger:   log,
	}, os.Exit)

	if errors.Is(err, typer.ErrPermissionDenied) {
		return fmt.Errorf("%w: %s", err, permissionHint(cfg))
	}

	return err
}

// runTyping arms a controller over params.Text and supervises it until it
// finishes, fails, or ctx is cancelled.
func runTyping(ctx context.Context, params RunParams, exitFunc func(int)) error {
	log := params.Logger

	deps := typer.ControllerDeps{
		Gate:       params.Gate,
		Emitter:    params.Emitter,
		Observer:   observer.NewConsole(log, params.Out),
		Sleeper:    params.Sleeper,
		Logger:     log,
		Activation: params.Source,
	}

	if params.Config != nil && params.Config.SeedSet {
		deps.Rand = random.New(params.Config.Seed)
	}

	ectx := &ExecutionContext{
		ctrl:     typer.NewController(deps),
		log:      log,
		exitFunc: exitFunc,
	}

	closed := make(chan string, 1)
	if err := platform.OnConsoleClose(func(event string) {
		log.Debug("Received console control event", slog.String("type", event))
		ectx.ctrl.Stop()
		select {
		case closed <- event:
		default:
		}
	}); err != nil {
		log.Warn("Could not install console close handler", slog.Any("error", err))
	}

	if err := ectx.ctrl.Start(params.Text, params.Settings); err != nil {
		return err
	}

	interrupted, err := ectx.supervise(ctx, closed)
	if interrupted {
		ectx.exitFunc(130)
		return ErrInterrupted
	}

	if err != nil {
		return fmt.Errorf("typing failed: %w", err)
	}

	return nil
}

// supervise waits for the run to end. A signal or console close stops the
// controller and reports interrupted.
func (e *ExecutionContext) supervise(ctx context.Context, closed <-chan string) (interrupted bool, err error) {
	done := make(chan struct{})
	g := new(errgroup.Group)

	g.Go(func() error {
		defer close(done)
		return e.ctrl.Wait(context.Background())
	})

	g.Go(func() error {
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			e.log.Info("Interrupt signal received, stopping")
		case event := <-closed:
			e.log.Info("Console closing, stopping", slog.String("event", event))
		}

		interrupted = true
		e.ctrl.Stop()

		select {
		case <-done:
		case <-time.After(timeouts.ShutdownTimeout):
			e.log.Warn("Run did not stop in time", slog.Duration("timeout", timeouts.ShutdownTimeout))
		}

		return nil
	})

	err = g.Wait()
	return interrupted, err
}

// activationSource builds the arming source named by kind
func activationSource(kind string, args []string, stdin io.Reader, out io.Writer) (interfaces.ActivationSource, error) {
	switch kind {
	case activationCountdown, "":
		return activation.NewCountdown(out), nil

	case activationEnter:
		if len(args) > 0 && args[0] == "-" {
			return nil, fmt.Errorf("--activation enter needs stdin, which is already used for the text")
		}
		return activation.NewLines(stdin, out), nil

	default:
		return nil, fmt.Errorf("unknown activation %q (want %s or %s)", kind, activationCountdown, activationEnter)
	}
}

func permissionHint(cfg *Config) string {
	if cfg.RequireElevation {
		return "run typesim from an elevated (administrator) console"
	}

	return "no desktop session found to type into"
}
