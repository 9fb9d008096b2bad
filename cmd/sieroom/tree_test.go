package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/smasonuk/sieroom/internal/assets/assetstest"
	"github.com/smasonuk/sieroom/internal/room"
)

func writeAssets(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, f := range assetstest.Room(t) {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, f.Data, 0o644))
	}
	return dir
}

func runTree(t *testing.T, args ...string) (room.Description, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(append([]string{"tree"}, args...))
	if err := cmd.Execute(); err != nil {
		return room.Description{}, err
	}

	var d struct {
		Counts map[string]int `yaml:"counts"`
	}
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &d))
	return room.Description{Counts: d.Counts}, nil
}

func TestTreeCommand(t *testing.T) {
	dir := writeAssets(t)

	d, err := runTree(t, "--assets", dir)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"floor": 1, "wall": 3, "logo": 1, "actor": 3}, d.Counts)
}

func TestTreeCommandBrokenModel(t *testing.T) {
	dir := writeAssets(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "models", "surgical_chair.glb"), []byte("junk"), 0o644))

	d, err := runTree(t, "--assets", dir)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Counts["actor"])
	assert.Equal(t, 1, d.Counts["fallback"])
}

func TestTreeCommandConfigFile(t *testing.T) {
	dir := writeAssets(t)
	cfgPath := filepath.Join(t.TempDir(), "room.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
scene:
  actors:
    - name: chair
      path: /models/surgical_chair.glb
      position: [0, 0.9, 0]
      scale: 0.8
      enabled: true
`), 0o644))

	d, err := runTree(t, "--assets", dir, "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Counts["actor"])
}

func TestTreeCommandMissingRoot(t *testing.T) {
	_, err := runTree(t, "--assets", filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
