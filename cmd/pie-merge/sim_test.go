package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSimRunsHeadless(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := runCLI(t, "sim", "--ticks", "900", "--drop-every", "20", "--seed", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "round 1")
	assert.Contains(t, out, "session.score")
}

func TestSimPlaysToGameOver(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg := filepath.Join(t.TempDir(), "tight.toml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
[stress]
max_touches = 1
segments = 1
stable_touch = "50ms"

[merge]
zone_enabled = false
`), 0644))

	out, err := runCLI(t, "--config", cfg, "sim", "--ticks", "36000", "--drop-every", "10", "--seed", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "round 1 over")
}

func TestSimRejectsBadFlags(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := runCLI(t, "sim", "--drop-every", "0")
	assert.Error(t, err)

	_, err = runCLI(t, "--config", "missing.toml", "sim")
	assert.Error(t, err)
}
