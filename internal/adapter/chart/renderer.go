package chart

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/couchcryptid/incident-viz/internal/domain"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

// barWidth is the width of one bar in the category chart.
const barWidth = 12 // points

// Renderer implements domain.ChartRenderer with gonum/plot. The image format
// follows the target file extension (png, svg, pdf, jpg, eps, tif).
type Renderer struct {
	logger *slog.Logger
}

// NewRenderer creates a gonum/plot chart renderer.
func NewRenderer(logger *slog.Logger) *Renderer {
	return &Renderer{logger: logger}
}

// RenderLine draws a single line series over nominal x ticks.
func (r *Renderer) RenderLine(c domain.LineChart) error {
	p := newPlot(c.Title, c.XLabel, c.YLabel)

	pts := make(plotter.XYs, len(c.Values))
	for i, v := range c.Values {
		pts[i].X = float64(i)
		pts[i].Y = float64(v)
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("build line series: %w", err)
	}
	p.Add(line)
	nominalX(p, c.Ticks)

	return r.save(p, c.Width, c.Height, c.Path)
}

// RenderBar draws one bar per label.
func (r *Renderer) RenderBar(c domain.BarChart) error {
	p, err := barPlot(c)
	if err != nil {
		return err
	}
	return r.save(p, c.Width, c.Height, c.Path)
}

// barPlot builds the bar chart. BottomMargin widens the gap between the
// rotated tick labels and the axis title.
func barPlot(c domain.BarChart) (*plot.Plot, error) {
	p := newPlot(c.Title, c.XLabel, c.YLabel)

	if len(c.Values) > 0 {
		vals := make(plotter.Values, len(c.Values))
		for i, v := range c.Values {
			vals[i] = float64(v)
		}
		bars, err := plotter.NewBarChart(vals, vg.Points(barWidth))
		if err != nil {
			return nil, fmt.Errorf("build bar series: %w", err)
		}
		p.Add(bars)
	}
	nominalX(p, c.Labels)

	if c.LabelRotation != 0 {
		p.X.Tick.Label.Rotation = c.LabelRotation * math.Pi / 180
		p.X.Tick.Label.XAlign = text.XRight
		p.X.Tick.Label.YAlign = text.YCenter
	}
	if c.BottomMargin > 0 {
		p.X.Label.Padding += vg.Length(c.BottomMargin) * vg.Inch
	}
	return p, nil
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Y.Min = 0
	return p
}

// nominalX labels integer x positions with names. plot.NominalX indexes the
// first name, so an empty list leaves the default axis in place.
func nominalX(p *plot.Plot, names []string) {
	if len(names) == 0 {
		return
	}
	p.NominalX(names...)
}

func (r *Renderer) save(p *plot.Plot, width, height float64, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create chart directory: %w", err)
	}
	if err := p.Save(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch, path); err != nil {
		return fmt.Errorf("save chart %s: %w", path, err)
	}
	r.logger.Debug("chart saved", "path", path)
	return nil
}
