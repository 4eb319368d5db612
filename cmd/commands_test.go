package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/typesim/internal/preview"
	"github.com/Norgate-AV/typesim/internal/settings"
	"github.com/Norgate-AV/typesim/internal/testutil"
)

func TestPresetsCmd_List(t *testing.T) {
	output, err := executeCommand(t, "presets")

	require.NoError(t, err)
	for _, key := range settings.PresetNames() {
		assert.Contains(t, output, key)
	}
	assert.Contains(t, output, "Casual Typist")
	assert.Contains(t, output, "PRESET")
}

func TestPresetsCmd_ShowYAML(t *testing.T) {
	output, err := executeCommand(t, "presets", "fast")

	require.NoError(t, err)
	assert.Contains(t, output, "name: Fast Typist")
	assert.Contains(t, output, "base_speed_cpm: 350")
}

func TestPresetsCmd_Unknown(t *testing.T) {
	_, err := executeCommand(t, "presets", "speedy")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown preset")
}

func TestPresetsCmd_Export(t *testing.T) {
	t.Setenv("TYPESIM_BASE_SPEED_CPM", "")
	path := filepath.Join(t.TempDir(), "nested", "careful.yaml")

	output, err := executeCommand(t, "presets", "careful", "--export", path)

	require.NoError(t, err)
	assert.Contains(t, output, "Wrote Careful Typist preset")
	assert.FileExists(t, path)

	// The exported file round-trips through --config.
	loaded, err := settings.Load(settings.LoadOptions{Preset: "robot", File: path})
	require.NoError(t, err)
	assert.Equal(t, settings.Careful(), loaded)
}

func TestPreviewCmd_JSON(t *testing.T) {
	t.Setenv("LOCALAPPDATA", t.TempDir())

	dir := testutil.CreateTempDir(t)
	file := testutil.CreateTextFile(t, dir, "note.txt", "Hi there.")

	output, err := executeCommand(t, "preview", file, "--preset", "robot", "--seed", "11", "--format", "json")
	require.NoError(t, err)

	var report preview.Report
	require.NoError(t, json.Unmarshal([]byte(output), &report))

	assert.Equal(t, "Robot (Consistent)", report.Preset)
	assert.Equal(t, uint64(11), report.Seed)
	assert.Equal(t, 9, report.Characters)
	assert.Len(t, report.Events, 9)
}

func TestPreviewCmd_SeedIsReproducible(t *testing.T) {
	t.Setenv("LOCALAPPDATA", t.TempDir())

	file := testutil.CreateTextFile(t, testutil.CreateTempDir(t), "note.txt", "Reproducible, please.")
	args := []string{"preview", file, "--seed", "5", "--format", "yaml"}

	first, err := executeCommand(t, args...)
	require.NoError(t, err)
	second, err := executeCommand(t, args...)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPreviewCmd_BadFormat(t *testing.T) {
	t.Setenv("LOCALAPPDATA", t.TempDir())

	file := testutil.CreateTextFile(t, testutil.CreateTempDir(t), "note.txt", "x")
	_, err := executeCommand(t, "preview", file, "--format", "xml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestPreviewCmd_MissingFile(t *testing.T) {
	t.Setenv("LOCALAPPDATA", t.TempDir())

	_, err := executeCommand(t, "preview", filepath.Join(os.TempDir(), "typesim-no-such-file.txt"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "file does not exist")
}
