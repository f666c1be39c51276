package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCommand_Help(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)

	assert.Contains(t, out, "validate")
	for _, flag := range []string{"--frontend", "--seed", "--max-ticks", "--output-dir", "--metrics-addr", "--sound"} {
		assert.Contains(t, out, flag)
	}
}

func TestRootCommand_UnknownFrontend(t *testing.T) {
	_, err := execute(t, "--frontend", "vr")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown frontend")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{name: "defaults"},
		{name: "smaller roster", yaml: "roster:\n  names: [Rex, Blue]\n"},
		{name: "single identity", yaml: "roster:\n  names: [Rex]\n", wantErr: true},
		{name: "spacing too wide", yaml: "placement:\n  min_spacing: 4000\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := []string{"validate"}
			if tt.yaml != "" {
				path := filepath.Join(t.TempDir(), "config.yaml")
				require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0644))
				args = append(args, "--config", path)
			}

			_, err := execute(t, args...)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHeadlessRunWritesOutput(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t,
		"--frontend", "headless",
		"--seed", "3",
		"--max-ticks", "1300",
		"--steps-per-update", "10",
		"--output-dir", dir,
	)
	require.NoError(t, err)

	for _, name := range []string{"config.yaml", "telemetry.csv", "combat.csv", "perf.csv"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	// Header plus two ten-second windows
	assert.GreaterOrEqual(t, len(lines), 3)
	assert.True(t, strings.HasPrefix(lines[0], "window_end,sim_time,alive"))
}
