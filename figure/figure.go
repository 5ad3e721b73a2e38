// Package figure draws the two-panel experiment plot: audio amplitude on
// top, accelerometer axes below.
package figure

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Line is one time series; T is in seconds.
type Line struct {
	Label string
	T, V  []float64
}

type Figure struct {
	Title string
	Audio Line
	Accel []Line
}

type Options struct {
	Width, Height float64 // inches
	DPI           int
}

type Rendered struct {
	PNG []byte
}

func (r *Rendered) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.PNG)
	return int64(n), err
}

// matplotlib's default cycle, so plots look like the ones the lab is used to.
var palette = []color.Color{
	color.RGBA{R: 31, G: 119, B: 180, A: 255},
	color.RGBA{R: 255, G: 127, B: 14, A: 255},
	color.RGBA{R: 44, G: 160, B: 44, A: 255},
	color.RGBA{R: 214, G: 39, B: 40, A: 255},
	color.RGBA{R: 148, G: 103, B: 189, A: 255},
}

var zeroColor = color.Gray{Y: 128}

func Render(f Figure, o Options) (*Rendered, error) {
	if o.Width <= 0 || o.Height <= 0 || o.DPI <= 0 {
		return nil, errors.New("figure: width, height and dpi must be positive")
	}
	top, err := audioPanel(f)
	if err != nil {
		return nil, fmt.Errorf("audio panel: %w", err)
	}
	bottom, err := accelPanel(f)
	if err != nil {
		return nil, fmt.Errorf("accel panel: %w", err)
	}

	img := vgimg.NewWith(
		vgimg.UseWH(vg.Length(o.Width)*vg.Inch, vg.Length(o.Height)*vg.Inch),
		vgimg.UseDPI(o.DPI),
	)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      2,
		Cols:      1,
		PadTop:    vg.Points(6),
		PadBottom: vg.Points(6),
		PadLeft:   vg.Points(6),
		PadRight:  vg.Points(12),
	}
	canvases := plot.Align([][]*plot.Plot{{top}, {bottom}}, tiles, dc)
	top.Draw(canvases[0][0])
	bottom.Draw(canvases[1][0])

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return &Rendered{PNG: buf.Bytes()}, nil
}

func audioPanel(f Figure) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = f.Title
	p.Y.Label.Text = "Amplitude"
	if err := addLine(p, f.Audio, palette[0], false); err != nil {
		return nil, err
	}
	p.Add(zeroLine())
	return p, nil
}

func accelPanel(f Figure) (*plot.Plot, error) {
	p := plot.New()
	p.Y.Label.Text = "Change"
	p.X.Label.Text = "Time (s)"
	p.Legend.Top = true
	for i, l := range f.Accel {
		if err := addLine(p, l, palette[i%len(palette)], true); err != nil {
			return nil, err
		}
	}
	p.Add(zeroLine())
	return p, nil
}

func addLine(p *plot.Plot, l Line, c color.Color, legend bool) error {
	if len(l.T) != len(l.V) {
		return fmt.Errorf("%s: %d times for %d values", l.Label, len(l.T), len(l.V))
	}
	// Empty series would give the axes an infinite range.
	if len(l.T) == 0 {
		return nil
	}
	xys := make(plotter.XYs, len(l.T))
	for i := range xys {
		xys[i].X = l.T[i]
		xys[i].Y = l.V[i]
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	line.Color = c
	line.Width = vg.Points(1)
	p.Add(line)
	if legend {
		p.Legend.Add(l.Label, line)
	}
	return nil
}

func zeroLine() *plotter.Function {
	fn := plotter.NewFunction(func(float64) float64 { return 0 })
	fn.Color = zeroColor
	fn.Width = vg.Points(1)
	return fn
}
