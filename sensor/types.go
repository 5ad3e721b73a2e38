package sensor

import (
	"path/filepath"
	"strings"
)

// Audio is a decoded recording. Samples stay interleaved when the source has
// more than one channel.
type Audio struct {
	Samples   []int
	FrameRate int // samples/sec
	Channels  int
	BitDepth  int
}

// AccelRecord is one accelerometer tick as logged by the recording app.
type AccelRecord struct {
	TimestampMs int64 // since capture start
	X, Y, Z     float64
	Prompt      bool // "fire now" prompt visible
	HasPrompt   bool
}

type AccelLog struct {
	Records []AccelRecord
	// HasPrompt is set when at least one row carried the prompt column.
	HasPrompt bool
}

// Monotonic reports whether timestamps never decrease, and the 1-based row
// index of the first decrease otherwise.
func (l *AccelLog) Monotonic() (bool, int) {
	for i := 1; i < len(l.Records); i++ {
		if l.Records[i].TimestampMs < l.Records[i-1].TimestampMs {
			return false, i + 1
		}
	}
	return true, 0
}

// PromptCount is the number of rows where the prompt fired.
func (l *AccelLog) PromptCount() int {
	n := 0
	for _, r := range l.Records {
		if r.Prompt {
			n++
		}
	}
	return n
}

// ExperimentName extracts the experiment label from a recording file name.
// The app writes "<unix_ts>_<name>_audio.3gp"; anything not following that
// pattern falls back to the base name without extension.
func ExperimentName(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	parts := strings.Split(stem, "_")
	if len(parts) >= 2 && parts[1] != "" {
		return parts[1]
	}
	return stem
}
