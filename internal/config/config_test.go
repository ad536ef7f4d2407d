package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/dockgui"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dockctl.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, dockgui.DefaultConfig(), cfg.Runtime)
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
store = "sqlite"
database = "/tmp/layouts.db"

[display]
X = 800
Y = 600

[runtime]
splitter_thickness = 4
docking_with_shift = true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, "/tmp/layouts.db", cfg.Database)
	assert.Equal(t, dockgui.Vec2{X: 800, Y: 600}, cfg.Display)
	assert.Equal(t, float32(4), cfg.Runtime.SplitterThickness)
	assert.True(t, cfg.Runtime.DockingWithShift)
	assert.Equal(t, dockgui.DefaultConfig().DockingSplitRatio, cfg.Runtime.DockingSplitRatio, "keys absent from the file keep defaults")
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("DOCKCTL_RUNTIME_SPLITTER_THICKNESS", "6")
	t.Setenv("DOCKCTL_VERBOSE", "true")
	cfg, err := Load(writeFile(t, "[runtime]\nsplitter_thickness = 4\n"))
	require.NoError(t, err)
	assert.Equal(t, float32(6), cfg.Runtime.SplitterThickness)
	assert.True(t, cfg.Verbose)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, `store = "s3"`))
	assert.ErrorContains(t, err, "unknown store")

	_, err = Load(writeFile(t, "[runtime]\ndocking_split_ratio = 2\n"))
	assert.ErrorContains(t, err, "docking_split_ratio")

	_, err = Load(writeFile(t, "store = [\n"))
	assert.Error(t, err)
}

func TestSchema(t *testing.T) {
	data, err := Schema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "store")
	assert.Contains(t, props, "layout_dir")
	runtime, ok := props["runtime"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, runtime["properties"], "splitter_thickness")
}
