package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootRequiresTwoArgs(t *testing.T) {
	_, err := execute(t, "only-audio.3gp")
	require.Error(t, err)
}

func TestConfigCommand(t *testing.T) {
	chdir(t, t.TempDir())
	out, err := execute(t, "config", "--log-level", "warn")
	require.NoError(t, err)
	assert.Contains(t, out, "dpi: 96")
	assert.Contains(t, out, "level: warn")
}

func TestRootRejectsBadLogLevel(t *testing.T) {
	chdir(t, t.TempDir())
	_, err := execute(t, "config", "--log-level", "chatty")
	require.Error(t, err)
}

func TestRunSaveHeadless(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	audioPath := filepath.Join(dir, "1600000000_tap_audio.wav")
	f, err := os.Create(audioPath)
	require.NoError(t, err)
	enc := wav.NewEncoder(f, 8000, 16, 1, 1)
	require.NoError(t, enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 8000},
		Data:           []int{0, 100, -100, 50},
		SourceBitDepth: 16,
	}))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	accelPath := filepath.Join(dir, "1600000000_tap_samples.csv")
	require.NoError(t, os.WriteFile(accelPath, []byte("0 0 0 9.8 false\n10 0.2 0.1 9.7 true\n"), 0o644))

	out := filepath.Join(dir, "exports")
	_, err = execute(t, audioPath, accelPath, "--save", "--view=false", "--out", out, "--log-level", "error")
	require.NoError(t, err)

	sessions, err := os.ReadDir(out)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	_, err = os.Stat(filepath.Join(out, sessions[0].Name(), "figure.png"))
	assert.NoError(t, err)
}

func TestRunMissingAccel(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	_, err := execute(t, filepath.Join(dir, "a.wav"), filepath.Join(dir, "b.csv"), "--view=false", "--log-level", "error")
	require.Error(t, err)
}
