package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/segmentio/encoding/json"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitterWritesBothFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	log, _ := logrustest.NewNullLogger()

	table := NewColorTable()
	table.Set("se", []string{"#006aa7", "#fecc00"})
	table.Set("ar", []string{"#74acdf", "#ffffff"})

	e := NewEmitter(&EmitterOptions{OutputDir: dir, Logger: log})
	require.NoError(t, e.Emit(table))

	hexData, err := os.ReadFile(filepath.Join(dir, HexOutputFile))
	require.NoError(t, err)
	assert.Equal(t, `{"se":["#006aa7","#fecc00"],"ar":["#74acdf","#ffffff"]}`, string(hexData))

	rgbData, err := os.ReadFile(filepath.Join(dir, RGBOutputFile))
	require.NoError(t, err)
	assert.Equal(t, `{"se":[[0,106,167],[254,204,0]],"ar":[[116,172,223],[255,255,255]]}`, string(rgbData))

	var hexes map[string][]string
	var triples map[string][][3]int
	require.NoError(t, json.Unmarshal(hexData, &hexes))
	require.NoError(t, json.Unmarshal(rgbData, &triples))
	require.Len(t, triples, len(hexes))

	for code, colors := range hexes {
		for i, hex := range colors {
			rgb, err := HexToRGB(hex)
			require.NoError(t, err)
			assert.Equal(t, [3]int(rgb), triples[code][i])
		}
	}
}

func TestEmitterOverwrites(t *testing.T) {
	dir := t.TempDir()
	log, _ := logrustest.NewNullLogger()
	e := NewEmitter(&EmitterOptions{OutputDir: dir, Logger: log})

	writeFile(t, dir, HexOutputFile, `{"stale": ["#000000"], "padding": "to make the old file longer"}`)

	table := NewColorTable()
	table.Set("jp", []string{"#bc002d"})
	require.NoError(t, e.Emit(table))

	data, err := os.ReadFile(e.HexPath())
	require.NoError(t, err)
	assert.Equal(t, `{"jp":["#bc002d"]}`, string(data))
}

func TestEmitterInvalidTableLeavesFilesAlone(t *testing.T) {
	dir := t.TempDir()
	log, _ := logrustest.NewNullLogger()
	e := NewEmitter(&EmitterOptions{OutputDir: dir, Logger: log})

	previous := NewColorTable()
	previous.Set("jp", []string{"#bc002d"})
	require.NoError(t, e.Emit(previous))

	broken := NewColorTable()
	broken.Set("fr", []string{"#0055a4"})
	broken.Set("xx", []string{"not-a-color"})
	assert.ErrorIs(t, e.Emit(broken), ErrInvalidColor)

	hexData, err := os.ReadFile(e.HexPath())
	require.NoError(t, err)
	assert.Equal(t, `{"jp":["#bc002d"]}`, string(hexData))

	rgbData, err := os.ReadFile(e.RGBPath())
	require.NoError(t, err)
	assert.Equal(t, `{"jp":[[188,0,45]]}`, string(rgbData))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestEmitterFailedWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	log, _ := logrustest.NewNullLogger()
	e := NewEmitter(&EmitterOptions{OutputDir: dir, Logger: log})

	// A non-empty directory where the RGB file belongs makes its rename fail.
	require.NoError(t, os.MkdirAll(filepath.Join(e.RGBPath(), "blocker"), 0o755))

	table := NewColorTable()
	table.Set("jp", []string{"#bc002d"})
	assert.Error(t, e.Emit(table))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.False(t, strings.HasPrefix(entry.Name(), "."), "leftover temp file %s", entry.Name())
	}
}
