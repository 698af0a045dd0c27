package render

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/cwbudde/algo-interference/sweep"
)

// Default plot size.
const (
	CurveWidth  = 8 * vg.Inch
	CurveHeight = 4 * vg.Inch
)

// ErrNoPoints is returned when a curve has no finite point to draw.
var ErrNoPoints = errors.New("render: curve has no finite points")

// CurvePlot builds the distance/deviation line plot of c. NaN estimates
// are left out of the line.
func CurvePlot(c *sweep.Curve) (*plot.Plot, error) {
	pts := make(plotter.XYs, 0, len(c.D))
	for i, d := range c.D {
		v := c.Deviation[i]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: d, Y: v})
	}
	if len(pts) == 0 {
		return nil, ErrNoPoints
	}

	p := plot.New()
	p.Title.Text = CurveTitle(c.Spec)
	p.X.Label.Text = "d, m"
	p.Y.Label.Text = "mean ΔA"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("render: curve line: %w", err)
	}
	line.Color = plotutil.Color(0)
	p.Add(line)

	return p, nil
}

// WriteCurve encodes the plot of c to w in the given format ("png", "svg",
// "pdf", …).
func WriteCurve(w io.Writer, c *sweep.Curve, format string) error {
	p, err := CurvePlot(c)
	if err != nil {
		return err
	}

	wt, err := p.WriterTo(CurveWidth, CurveHeight, format)
	if err != nil {
		return fmt.Errorf("render: %s writer: %w", format, err)
	}
	_, err = wt.WriteTo(w)
	return err
}
