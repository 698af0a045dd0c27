package sweep

import (
	"context"
	"math"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/cwbudde/algo-interference/field"
	"github.com/cwbudde/algo-interference/integrate/mc"
)

// MapSpec describes a deviation map of the window X × Y sampled at
// PixelsPerMeter, for sources D apart.
type MapSpec struct {
	D              float64
	Band           field.Band
	X, Y           mc.Interval
	PixelsPerMeter float64
}

// Size returns the map width and height in pixels.
func (s MapSpec) Size() (width, height int) {
	width = int(math.Round(math.Abs(s.X.Width()) * s.PixelsPerMeter))
	height = int(math.Round(math.Abs(s.Y.Width()) * s.PixelsPerMeter))
	return width, height
}

// PixelPoint returns the plane point sampled by pixel (row, col).
func (s MapSpec) PixelPoint(row, col int) field.Point {
	return field.Point{
		X: float64(col+1)/s.PixelsPerMeter + s.X.Lo,
		Y: float64(row+1)/s.PixelsPerMeter + s.Y.Lo,
	}
}

// Pixel is a (row, column) image coordinate.
type Pixel struct {
	Row, Col int
}

// SourcePixels returns the pixels of row 0 in the columns of the two
// sources, skipping those that fall outside the map.
func (s MapSpec) SourcePixels() []Pixel {
	width, _ := s.Size()
	cols := []int{
		int(math.Round(-s.X.Lo*s.PixelsPerMeter - 1)),
		int(math.Round((-s.X.Lo+s.D)*s.PixelsPerMeter - 1)),
	}

	out := make([]Pixel, 0, len(cols))
	for _, c := range cols {
		if c >= 0 && c < width {
			out = append(out, Pixel{Row: 0, Col: c})
		}
	}
	return out
}

// Map holds one deviation estimate per pixel, row-major.
type Map struct {
	Spec          MapSpec
	Width, Height int
	Values        []float64
}

// At returns the estimate of pixel (row, col).
func (m *Map) At(row, col int) float64 {
	return m.Values[row*m.Width+col]
}

// Row returns the estimates of one pixel row.
func (m *Map) Row(row int) []float64 {
	return m.Values[row*m.Width : (row+1)*m.Width]
}

// NaNCount returns the number of pixels whose estimate is NaN.
func (m *Map) NaNCount() int {
	n := 0
	for _, v := range m.Values {
		if math.IsNaN(v) {
			n++
		}
	}
	return n
}

// Intensity maps a deviation estimate to [0, 1] by halving and clamping.
// Deviations are bounded by 2 on average over a band. NaN stays NaN.
func Intensity(v float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	return math.Max(0, math.Min(v/2, 1))
}

// PlaneMap evaluates AveragePointDeviation for every pixel of spec. Rows
// are distributed over the configured number of workers.
func (e *Estimator) PlaneMap(spec MapSpec) (*Map, error) {
	return e.PlaneMapContext(context.Background(), spec)
}

// PlaneMapContext is PlaneMap with cancellation checked before every pixel.
// A canceled map returns ctx.Err().
func (e *Estimator) PlaneMapContext(ctx context.Context, spec MapSpec) (*Map, error) {
	if !(spec.PixelsPerMeter > 0) {
		return nil, ErrInvalidScale
	}
	if err := checkInputs(spec.D, spec.Band); err != nil {
		return nil, err
	}

	start := time.Now()
	width, height := spec.Size()
	m := &Map{Spec: spec, Width: width, Height: height, Values: make([]float64, width*height)}

	p := pool.New().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(e.cfg.Workers)
	for row := range height {
		p.Go(func(ctx context.Context) error {
			out := m.Row(row)
			for col := range out {
				if err := ctx.Err(); err != nil {
					return err
				}
				v, err := e.AveragePointDeviation(spec.D, spec.Band, spec.PixelPoint(row, col))
				if err != nil {
					return err
				}
				out[col] = v
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.log.Info().
		Float64("d", spec.D).
		Floats64("band", []float64{spec.Band.Lo, spec.Band.Hi}).
		Int("width", width).
		Int("height", height).
		Dur("elapsed", time.Since(start)).
		Msg("deviation map done")

	return m, nil
}
