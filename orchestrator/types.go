package orchestrator

import "github.com/jonpas/SensExp/figure"

// Series is a normalized time series; T is in seconds.
type Series struct {
	Name string
	T    []float64
	V    []float64
}

func (s Series) line() figure.Line { return figure.Line{Label: s.Name, T: s.T, V: s.V} }

type AccelSeries struct {
	X, Y, Z Series
	// Prompt is nil when the log has no prompt column or the overlay is off.
	Prompt *Series
}

func (a AccelSeries) lines() []figure.Line {
	out := []figure.Line{a.X.line(), a.Y.line(), a.Z.line()}
	if a.Prompt != nil {
		out = append(out, a.Prompt.line())
	}
	return out
}

type AudioSummary struct {
	Samples     int     `json:"samples"`
	FrameRate   int     `json:"frame_rate"`
	Channels    int     `json:"channels"`
	DurationSec float64 `json:"duration_sec"`
	Peak        float64 `json:"peak"`
	RMS         float64 `json:"rms"`
}

type AccelSummary struct {
	Rows        int     `json:"rows"`
	DurationSec float64 `json:"duration_sec"`
	Max         float64 `json:"max"`
	HasPrompt   bool    `json:"has_prompt"`
	PromptRows  int     `json:"prompt_rows"`
	Monotonic   bool    `json:"monotonic"`
}
