// Package deviation builds the integrand |A0 − Ā|: the absolute gap between
// the instantaneous two-source field and its band average.
//
// Plane integrates over space and frequency with sample axes ordered
// (y, x, f); Point integrates over frequency alone at a fixed plane point.
// Both satisfy mc.Integrand. Values lie in [0, 4].
package deviation

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-interference/field"
	"github.com/cwbudde/algo-interference/integrate/mc"
	"github.com/cwbudde/algo-interference/internal/scratch"
)

// PlaneValue returns |A0(f, x, y, d) − Ā(x, y, d, band)|.
func PlaneValue(y, x, f, d float64, band field.Band) float64 {
	return math.Abs(field.Instantaneous(f, x, y, d) - field.BandAverage(x, y, d, band))
}

// PointValue returns PlaneValue with (x, y) fixed to at.
func PointValue(f, d float64, at field.Point, band field.Band) float64 {
	return PlaneValue(at.Y, at.X, f, d, band)
}

// Plane is the 3-D integrand over (y, x, f) for sources d apart.
type Plane struct {
	D    float64
	Band field.Band
}

// Dim returns 3.
func (Plane) Dim() int { return 3 }

// Evaluate fills dst with the deviation at each (y, x, f) sample.
func (p Plane) Evaluate(dst []float64, s mc.Batch) {
	y, x, f := s[0], s[1], s[2]
	n := len(dst)

	a, b, avg := scratch.Default.Get(n), scratch.Default.Get(n), scratch.Default.Get(n)
	defer scratch.Default.Put(a)
	defer scratch.Default.Put(b)
	defer scratch.Default.Put(avg)

	field.Distances(a.Data, b.Data, x, y, p.D)
	field.BandAverageFromDistances(avg.Data, a.Data, b.Data, p.Band)
	field.InstantaneousFromDistances(dst, f, a.Data, b.Data)

	floats.Sub(dst, avg.Data)
	for i, v := range dst {
		dst[i] = math.Abs(v)
	}
}

// Point is the 1-D integrand over f at a fixed plane point.
type Point struct {
	D    float64
	At   field.Point
	Band field.Band
}

// Dim returns 1.
func (Point) Dim() int { return 1 }

// Evaluate fills dst with the deviation at each frequency sample. The band
// average is computed once since the point does not move.
func (p Point) Evaluate(dst []float64, s mc.Batch) {
	f := s[0]
	if len(f) != len(dst) {
		panic("deviation: slice length mismatch")
	}

	a, b := field.SourceDistances(p.At.X, p.At.Y, p.D)
	avg := field.BandAverage(p.At.X, p.At.Y, p.D, p.Band)

	for i := range dst {
		kf := field.K * f[i]
		dst[i] = math.Abs(math.Cos(kf*a) + math.Cos(kf*b) - avg)
	}
}

var (
	_ mc.Integrand = Plane{}
	_ mc.Integrand = Point{}
)
