package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/atotto/clipboard"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Norgate-AV/typesim/internal/logger"
	"github.com/Norgate-AV/typesim/internal/typer"
	"github.com/Norgate-AV/typesim/internal/version"
)

// envFile is loaded, when present, before typing settings are resolved so
// TYPESIM_* overrides can live next to the text being typed.
const envFile = ".env"

// readClipboard is swapped out in tests
var readClipboard = clipboard.ReadAll

// RootCmd is the root command for the typesim CLI application.
var RootCmd = &cobra.Command{
	Use:   "typesim",
	Short: "typesim - Type text into any application like a human would",
	Long: `typesim replays text as keystrokes with human timing: variable speed,
thinking pauses, bursts, punctuation pauses and corrected typos.

Arm a run with "typesim type", dry-run it with "typesim preview" or rehearse
it safely in the terminal with "typesim tui".`,
	Version:           version.GetVersion(),
	Args:              cobra.NoArgs,
	PersistentPreRunE: loadEnv,
	RunE:              Execute,
	SilenceUsage:      true, // Don't show usage on runtime errors
}

func init() {
	// Set custom version template to show full version info
	RootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} %s\n", version.GetFullVersion()))

	RootCmd.PersistentFlags().BoolP("verbose", "V", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolP("logs", "l", false, "print the current log file to stdout and exit")
}

// loadEnv reads .env from the working directory if there is one
func loadEnv(_ *cobra.Command, _ []string) error {
	if _, err := os.Stat(envFile); err != nil {
		return nil
	}

	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	return nil
}

// Execute runs the root command: it only serves --logs and help.
func Execute(cmd *cobra.Command, args []string) error {
	cfg := NewConfigFromFlags(cmd)

	if cfg.ShowLogs {
		return handleLogsFlag(cfg, os.Exit)
	}

	return cmd.Help()
}

// handleLogsFlag processes the --logs flag and exits if needed
func handleLogsFlag(cfg *Config, exitFunc func(int)) error {
	if !cfg.ShowLogs {
		return nil
	}

	if err := logger.PrintLogFile(nil, logger.LoggerOptions{}); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logPath := logger.GetLogPath(logger.LoggerOptions{})
			fmt.Fprintf(os.Stderr, "Log file does not exist: %s\n", logPath)
			exitFunc(1)
			return nil
		}

		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		exitFunc(1)
		return nil
	}

	exitFunc(0)
	return nil // Won't actually reach here due to exitFunc
}

// initializeLogger creates a logger writing user-facing lines to console
func initializeLogger(cfg *Config, console io.Writer) (logger.LoggerInterface, error) {
	log, err := logger.NewLogger(logger.LoggerOptions{
		Verbose:  cfg.Verbose,
		Console:  console,
		Compress: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return log, nil
}

// recoverPanic logs a panic with its stack; use with defer
func recoverPanic(log logger.LoggerInterface) {
	if r := recover(); r != nil {
		log.Error("PANIC RECOVERED",
			slog.Any("panic", r),
			slog.String("stack", string(debug.Stack())),
		)

		fmt.Fprintf(os.Stderr, "\n*** PANIC: %v ***\n", r)
		fmt.Fprintf(os.Stderr, "Check log file for details: %s\n", log.GetLogPath())
	}
}

// validateAndResolvePath validates the file exists and returns its absolute path
func validateAndResolvePath(filePath string, log logger.LoggerInterface) (string, error) {
	log.Debug("Processing file", slog.String("path", filePath))

	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("file does not exist: %s", filePath)
	}

	if err != nil {
		return "", fmt.Errorf("error reading file info: %w", err)
	}

	if info.IsDir() {
		return "", fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("error resolving file path: %w", err)
	}

	return absPath, nil
}

// TextSourceParams selects where the text to type comes from
type TextSourceParams struct {
	Args      []string
	Clipboard bool
	Stdin     io.Reader
	Logger    logger.LoggerInterface
}

// readText loads the text from a file, stdin ("-") or the clipboard
func readText(params TextSourceParams) (string, error) {
	log := params.Logger

	switch {
	case params.Clipboard && len(params.Args) > 0:
		return "", fmt.Errorf("use either a file argument or --clipboard, not both")

	case params.Clipboard:
		log.Debug("Reading text from clipboard")
		text, err := readClipboard()
		if err != nil {
			return "", fmt.Errorf("failed to read clipboard: %w", err)
		}
		return requireText(text, "clipboard")

	case len(params.Args) == 0:
		return "", fmt.Errorf("no text to type: pass a file, '-' for stdin, or --clipboard")

	case params.Args[0] == "-":
		log.Debug("Reading text from stdin")
		data, err := io.ReadAll(params.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return requireText(string(data), "stdin")
	}

	absPath, err := validateAndResolvePath(params.Args[0], log)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("error reading %s: %w", absPath, err)
	}

	return requireText(string(data), absPath)
}

func requireText(text, source string) (string, error) {
	text = typer.NormalizeText(text)
	if text == "" {
		return "", fmt.Errorf("no text to type: %s is empty", source)
	}

	return text, nil
}

func addClipboardFlag(cmd *cobra.Command) {
	cmd.Flags().Bool("clipboard", false, "read the text from the clipboard instead of a file")
}
