package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jonpas/SensExp/clients"
	cfg "github.com/jonpas/SensExp/config"
	"github.com/jonpas/SensExp/figure"
	"github.com/jonpas/SensExp/sensor"
	"github.com/jonpas/SensExp/viewer"
)

// ShowFunc displays a rendered figure and returns once the viewer is closed.
type ShowFunc func(ctx context.Context, png []byte, title string) error

type Pipeline struct {
	cfg        *cfg.Root
	transcoder sensor.Transcoder
	show       ShowFunc
	now        func() time.Time
}

type Option func(*Pipeline)

func WithTranscoder(t sensor.Transcoder) Option { return func(p *Pipeline) { p.transcoder = t } }
func WithViewer(fn ShowFunc) Option             { return func(p *Pipeline) { p.show = fn } }

func NewPipeline(c *cfg.Root, opts ...Option) *Pipeline {
	ex := clients.NewExec(cfg.DurSeconds(c.Audio.TranscodeTimeout))
	p := &Pipeline{
		cfg:        c,
		transcoder: ex.FFmpeg(c.Audio.FFmpeg),
		now:        time.Now,
	}
	p.show = func(ctx context.Context, png []byte, title string) error {
		o := viewer.Options{Addr: c.Viewer.Addr, Title: title, Grace: cfg.DurMillis(c.Viewer.GraceMs)}
		if c.Viewer.OpenBrowser {
			o.Open = ex.Browser().Open
		}
		return viewer.Serve(ctx, png, o)
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Run loads one experiment, renders it, optionally exports it and shows it.
func (p *Pipeline) Run(ctx context.Context, audioPath, accelPath string) error {
	name := sensor.ExperimentName(audioPath)
	runID := uuid.NewString()
	log := logrus.WithFields(logrus.Fields{"run_id": runID, "experiment": name})

	audio, err := sensor.LoadAudio(ctx, audioPath, p.transcoder)
	if err != nil {
		return fmt.Errorf("load audio: %w", err)
	}
	accel, err := sensor.LoadAccel(accelPath)
	if err != nil {
		return fmt.Errorf("load accel: %w", err)
	}
	if ok, row := accel.Monotonic(); !ok {
		log.WithField("row", row).Warn("accelerometer timestamps decrease, plotting in file order")
	}

	audioSeries := NormalizeAudio(audio)
	accelSeries := NormalizeAccel(accel, p.cfg.Plot.Prompt)

	sum := Summary{
		RunID:       runID,
		Experiment:  name,
		AudioPath:   audioPath,
		AccelPath:   accelPath,
		GeneratedAt: p.now(),
		Audio:       summarizeAudio(audio, audioSeries),
		Accel:       summarizeAccel(accel, accelSeries),
	}
	log.WithFields(logrus.Fields{
		"samples":    sum.Audio.Samples,
		"frame_rate": sum.Audio.FrameRate,
		"audio_sec":  sum.Audio.DurationSec,
		"peak":       sum.Audio.Peak,
		"rms":        sum.Audio.RMS,
		"accel_rows": sum.Accel.Rows,
		"accel_sec":  sum.Accel.DurationSec,
		"prompts":    sum.Accel.PromptRows,
	}).Info("experiment loaded")

	title := fmt.Sprintf("SensExp Analysis (%s)", name)
	rendered, err := figure.Render(figure.Figure{
		Title: title,
		Audio: audioSeries.line(),
		Accel: accelSeries.lines(),
	}, figure.Options{Width: p.cfg.Plot.Width, Height: p.cfg.Plot.Height, DPI: p.cfg.Plot.DPI})
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if p.cfg.Save {
		dir, err := persist(p.cfg.Paths.Outputs, p.now(), sum, rendered)
		if err != nil {
			return fmt.Errorf("save: %w", err)
		}
		log.WithField("dir", dir).Info("figure and summary saved")
	}

	if !p.cfg.Viewer.Enabled {
		return nil
	}
	return p.show(ctx, rendered.PNG, title)
}
