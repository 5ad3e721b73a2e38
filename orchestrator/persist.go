package orchestrator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/jonpas/SensExp/figure"
)

type Summary struct {
	RunID       string       `json:"run_id"`
	Experiment  string       `json:"experiment"`
	AudioPath   string       `json:"audio_path"`
	AccelPath   string       `json:"accel_path"`
	GeneratedAt time.Time    `json:"generated_at"`
	Audio       AudioSummary `json:"audio"`
	Accel       AccelSummary `json:"accel"`
}

func mkSessionDir(outputsRoot string, now time.Time) (string, error) {
	dir := filepath.Join(outputsRoot, "session_"+now.Format("20060102-150405"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writePNG(path string, r *figure.Rendered) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := r.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// persist writes figure.png and summary.json into a fresh session directory
// and returns that directory.
func persist(outputsRoot string, now time.Time, sum Summary, r *figure.Rendered) (string, error) {
	dir, err := mkSessionDir(outputsRoot, now)
	if err != nil {
		return "", err
	}
	if err := writePNG(filepath.Join(dir, "figure.png"), r); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(dir, "summary.json"), sum); err != nil {
		return "", err
	}
	return dir, nil
}
