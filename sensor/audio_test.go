package sensor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWAV(t *testing.T, path string, rate, channels int, samples []int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	enc := wav.NewEncoder(f, rate, 16, channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: rate},
		Data:           samples,
		SourceBitDepth: 16,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
}

type copyTranscoder struct {
	fixture string
	calls   int
	err     error
}

func (c *copyTranscoder) ToWAV(_ context.Context, _, dst string) error {
	c.calls++
	if c.err != nil {
		return c.err
	}
	b, err := os.ReadFile(c.fixture)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, b, 0o644)
}

func TestLoadAudioWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.wav")
	samples := []int{0, 1000, -1000, 32767, -32768, 7}
	writeWAV(t, path, 22050, 1, samples)

	a, err := LoadAudio(context.Background(), path, nil)
	require.NoError(t, err)
	assert.Equal(t, samples, a.Samples)
	assert.Equal(t, 22050, a.FrameRate)
	assert.Equal(t, 1, a.Channels)
	assert.Equal(t, 16, a.BitDepth)
}

func TestLoadAudioKeepsInterleavedChannels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stereo.WAV")
	samples := []int{1, -1, 2, -2}
	writeWAV(t, path, 8000, 2, samples)

	a, err := LoadAudio(context.Background(), path, nil)
	require.NoError(t, err)
	assert.Equal(t, samples, a.Samples)
	assert.Equal(t, 2, a.Channels)
}

func TestLoadAudioTranscodes(t *testing.T) {
	dir := t.TempDir()
	fixture := filepath.Join(dir, "fixture.wav")
	writeWAV(t, fixture, 8000, 1, []int{5, 6, 7})
	src := filepath.Join(dir, "1600000000_knock_audio.3gp")
	require.NoError(t, os.WriteFile(src, []byte("not really 3gp"), 0o644))

	tc := &copyTranscoder{fixture: fixture}
	a, err := LoadAudio(context.Background(), src, tc)
	require.NoError(t, err)
	assert.Equal(t, 1, tc.calls)
	assert.Equal(t, []int{5, 6, 7}, a.Samples)
	assert.Equal(t, 8000, a.FrameRate)
}

func TestLoadAudioTranscodeFailure(t *testing.T) {
	src := filepath.Join(t.TempDir(), "a.3gp")
	require.NoError(t, os.WriteFile(src, []byte{0}, 0o644))
	boom := errors.New("boom")

	_, err := LoadAudio(context.Background(), src, &copyTranscoder{err: boom})
	require.ErrorIs(t, err, boom)
}

func TestLoadAudioNeedsTranscoder(t *testing.T) {
	_, err := LoadAudio(context.Background(), "x.3gp", nil)
	require.ErrorIs(t, err, ErrNoTranscoder)
}

func TestLoadAudioMissingFile(t *testing.T) {
	tc := &copyTranscoder{}
	_, err := LoadAudio(context.Background(), filepath.Join(t.TempDir(), "gone.3gp"), tc)
	require.Error(t, err)
	assert.Zero(t, tc.calls)
}

func TestDecodeWAVRejectsGarbage(t *testing.T) {
	_, err := DecodeWAV(bytes.NewReader([]byte("definitely not a riff header")))
	require.ErrorIs(t, err, ErrInvalidAudio)
}
