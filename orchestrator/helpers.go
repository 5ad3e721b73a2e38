package orchestrator

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/jonpas/SensExp/sensor"
)

// AudioTimeAxis returns n points evenly spaced from 0 to n/frameRate, both
// ends included.
func AudioTimeAxis(n, frameRate int) []float64 {
	if n <= 0 || frameRate <= 0 {
		return []float64{}
	}
	out := make([]float64, n)
	if n == 1 {
		return out
	}
	end := float64(n) / float64(frameRate)
	step := end / float64(n-1)
	for i := range out {
		out[i] = float64(i) * step
	}
	out[n-1] = end
	return out
}

func NormalizeAudio(a *sensor.Audio) Series {
	v := make([]float64, len(a.Samples))
	for i, s := range a.Samples {
		v[i] = float64(s)
	}
	return Series{Name: "audio", T: AudioTimeAxis(len(a.Samples), a.FrameRate), V: v}
}

// NormalizeAccel converts timestamps to seconds and splits the axes. The
// prompt overlay is added only when asked for and present in the log.
func NormalizeAccel(l *sensor.AccelLog, withPrompt bool) AccelSeries {
	n := len(l.Records)
	t := make([]float64, n)
	x := make([]float64, n)
	y := make([]float64, n)
	z := make([]float64, n)
	for i, r := range l.Records {
		t[i] = float64(r.TimestampMs) / 1000
		x[i], y[i], z[i] = r.X, r.Y, r.Z
	}
	out := AccelSeries{
		X: Series{Name: "x", T: t, V: x},
		Y: Series{Name: "y", T: t, V: y},
		Z: Series{Name: "z", T: t, V: z},
	}
	if withPrompt && l.HasPrompt {
		out.Prompt = &Series{Name: "prompt", T: t, V: rescale(l, axesMax(x, y, z))}
	}
	return out
}

// RescalePrompt maps each prompt flag to 0 or to the largest x, y or z value
// of the whole log, so the flag shows at the scale of the axes.
func RescalePrompt(l *sensor.AccelLog) []float64 {
	n := len(l.Records)
	x := make([]float64, n)
	y := make([]float64, n)
	z := make([]float64, n)
	for i, r := range l.Records {
		x[i], y[i], z[i] = r.X, r.Y, r.Z
	}
	return rescale(l, axesMax(x, y, z))
}

func rescale(l *sensor.AccelLog, peak float64) []float64 {
	out := make([]float64, len(l.Records))
	for i, r := range l.Records {
		if r.Prompt {
			out[i] = peak
		}
	}
	return out
}

func axesMax(axes ...[]float64) float64 {
	m := math.Inf(-1)
	for _, a := range axes {
		if len(a) > 0 {
			m = math.Max(m, floats.Max(a))
		}
	}
	if math.IsInf(m, -1) {
		return 0
	}
	return m
}

func summarizeAudio(a *sensor.Audio, s Series) AudioSummary {
	out := AudioSummary{Samples: len(a.Samples), FrameRate: a.FrameRate, Channels: a.Channels}
	if len(s.T) > 0 {
		out.DurationSec = s.T[len(s.T)-1]
	}
	if len(s.V) > 0 {
		out.Peak = math.Max(math.Abs(floats.Max(s.V)), math.Abs(floats.Min(s.V)))
		out.RMS = math.Sqrt(floats.Dot(s.V, s.V) / float64(len(s.V)))
	}
	return out
}

func summarizeAccel(l *sensor.AccelLog, s AccelSeries) AccelSummary {
	mono, _ := l.Monotonic()
	out := AccelSummary{
		Rows:       len(l.Records),
		Max:        axesMax(s.X.V, s.Y.V, s.Z.V),
		HasPrompt:  l.HasPrompt,
		PromptRows: l.PromptCount(),
		Monotonic:  mono,
	}
	if n := len(s.X.T); n > 0 {
		out.DurationSec = s.X.T[n-1] - s.X.T[0]
	}
	return out
}
