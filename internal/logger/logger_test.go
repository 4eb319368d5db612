package logger_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/typesim/internal/logger"
)

func TestNewLogger_DefaultOptions(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("LOCALAPPDATA", tmpDir)

	log, err := logger.NewLogger(logger.LoggerOptions{Console: &bytes.Buffer{}})
	require.NoError(t, err)
	defer log.Close()

	logPath := log.GetLogPath()
	assert.Equal(t, filepath.Join(tmpDir, "typesim", "typesim.log"), logPath)
	assert.True(t, filepath.IsAbs(logPath), "Log path should be absolute")
	assert.DirExists(t, filepath.Join(tmpDir, "typesim"))
}

func TestNewLogger_CustomLogDir(t *testing.T) {
	tmpDir := t.TempDir()

	log, err := logger.NewLogger(logger.LoggerOptions{LogDir: tmpDir, Console: &bytes.Buffer{}})
	require.NoError(t, err)
	defer log.Close()

	assert.Equal(t, filepath.Join(tmpDir, "typesim.log"), log.GetLogPath())
}

func TestGetLogPath_FallsBackToCacheDir(t *testing.T) {
	t.Setenv("LOCALAPPDATA", "")

	cacheDir, err := os.UserCacheDir()
	if err != nil {
		t.Skip("no user cache dir on this system")
	}

	got := logger.GetLogPath(logger.LoggerOptions{})
	assert.Equal(t, filepath.Join(cacheDir, "typesim", "typesim.log"), got)
}

func TestLogger_WritesFileAndConsole(t *testing.T) {
	tmpDir := t.TempDir()
	var console bytes.Buffer

	log, err := logger.NewLogger(logger.LoggerOptions{LogDir: tmpDir, Console: &console})
	require.NoError(t, err)

	log.Trace("trace message", slog.Int("cursor", 4))
	log.Debug("debug message")
	log.Info("Typing...", slog.String("run", "abc"))
	log.Warn("warn message", slog.Bool("flag", true))
	log.Error("error message", slog.Any("error", assert.AnError))
	log.Close()

	data, err := os.ReadFile(log.GetLogPath())
	require.NoError(t, err)

	file := string(data)
	assert.Contains(t, file, "level=TRACE")
	assert.Contains(t, file, "cursor=4")
	assert.Contains(t, file, "debug message")
	assert.Contains(t, file, "run=abc")

	out := console.String()
	assert.NotContains(t, out, "trace message", "Trace never reaches the console")
	assert.NotContains(t, out, "debug message", "Debug needs verbose")
	assert.Contains(t, out, "Typing...\n")
	assert.NotContains(t, out, "run=abc", "Info lines are printed without attributes")
	assert.Contains(t, out, "WARNING: warn message flag=true")
	assert.Contains(t, out, "ERROR: error message")
}

func TestLogger_VerboseShowsDebug(t *testing.T) {
	var console bytes.Buffer

	log, err := logger.NewLogger(logger.LoggerOptions{LogDir: t.TempDir(), Verbose: true, Console: &console})
	require.NoError(t, err)
	defer log.Close()

	log.Debug("Run armed", slog.Int("chars", 12))
	assert.Contains(t, console.String(), "VERBOSE: Run armed chars=12")
}

func TestConsoleHandler_WithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := slog.New(logger.NewConsoleHandler(&buf, true)).With(slog.String("run", "r1"))

	l.Warn("slow", slog.Int("ms", 5))
	assert.Contains(t, buf.String(), "WARNING: slow run=r1 ms=5")
}

func TestPrintLogFile(t *testing.T) {
	tmpDir := t.TempDir()
	opts := logger.LoggerOptions{LogDir: tmpDir, Console: &bytes.Buffer{}}

	log, err := logger.NewLogger(opts)
	require.NoError(t, err)
	log.Info("hello from the log")
	log.Close()

	var buf bytes.Buffer
	require.NoError(t, logger.PrintLogFile(&buf, opts))
	assert.Contains(t, buf.String(), "hello from the log")
}

func TestPrintLogFile_Missing(t *testing.T) {
	err := logger.PrintLogFile(&bytes.Buffer{}, logger.LoggerOptions{LogDir: t.TempDir()})

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNoOpLogger(t *testing.T) {
	log := logger.NewNoOpLogger()

	assert.NotPanics(t, func() {
		log.Trace("test")
		log.Debug("test")
		log.Info("test")
		log.Warn("test")
		log.Error("test")
		log.Close()
	})
	assert.Empty(t, log.GetLogPath())
}
