package sensor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
)

// Transcoder converts an arbitrary audio container into a PCM WAV file.
type Transcoder interface {
	ToWAV(ctx context.Context, src, dst string) error
}

// LoadAudio decodes path. WAV files are read directly; other containers
// (the 3GP/AMR-NB files the recording app writes, MP3, M4A, ...) are first
// converted to WAV in a temporary directory.
func LoadAudio(ctx context.Context, path string, tc Transcoder) (*Audio, error) {
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		return decodeFile(path)
	}
	if tc == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrNoTranscoder)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	tmp, err := os.MkdirTemp("", "sensexp-audio-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmp)

	dst := filepath.Join(tmp, "audio.wav")
	if err := tc.ToWAV(ctx, path, dst); err != nil {
		return nil, fmt.Errorf("transcode %s: %w", path, err)
	}
	return decodeFile(dst)
}

func decodeFile(path string) (*Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	a, err := DecodeWAV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// DecodeWAV reads a whole PCM WAV stream into memory.
func DecodeWAV(r io.ReadSeeker) (*Audio, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return nil, ErrInvalidAudio
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAudio, err)
	}
	if buf.Format == nil || buf.Format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: zero frame rate", ErrInvalidAudio)
	}
	return &Audio{
		Samples:   buf.Data,
		FrameRate: buf.Format.SampleRate,
		Channels:  buf.Format.NumChannels,
		BitDepth:  buf.SourceBitDepth,
	}, nil
}
