package clients

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/sirupsen/logrus"
)

var ErrNoFFmpeg = errors.New("ffmpeg not found")

// FFmpeg converts audio containers to 16-bit PCM WAV, keeping the source
// frame rate and channel layout.
type FFmpeg struct {
	*Exec
	Path string
}

func (e *Exec) FFmpeg(path string) *FFmpeg {
	if path == "" {
		path = "ffmpeg"
	}
	return &FFmpeg{Exec: e, Path: path}
}

// ToWAV implements sensor.Transcoder.
func (f *FFmpeg) ToWAV(ctx context.Context, src, dst string) error {
	bin, err := exec.LookPath(f.Path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoFFmpeg, err)
	}
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	args := []string{"-nostdin", "-hide_banner", "-loglevel", "error", "-y",
		"-i", src, "-vn", "-acodec", "pcm_s16le", "-f", "wav", dst}

	logrus.WithFields(logrus.Fields{"src": src, "ffmpeg": bin}).Debug("transcoding audio")
	if _, err := f.run(ctx, bin, args...); err != nil {
		return fmt.Errorf("ffmpeg transcode: %w", err)
	}
	return nil
}
