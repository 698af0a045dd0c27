package field

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-interference/internal/scratch"
)

// Distances fills a and b with the source distances of the points (x[i], y[i]).
func Distances(a, b, x, y []float64, d float64) {
	n := len(x)
	if len(y) != n || len(a) != n || len(b) != n {
		panic("field: slice length mismatch")
	}
	if n == 0 {
		return
	}

	vecmath.Magnitude(a, x, y)

	shifted := scratch.Default.Get(n)
	defer scratch.Default.Put(shifted)

	copy(shifted.Data, x)
	floats.AddConst(-d, shifted.Data)
	vecmath.Magnitude(b, shifted.Data, y)
}

// InstantaneousFromDistances sets dst[i] = cos(K·f[i]·a[i]) + cos(K·f[i]·b[i]).
func InstantaneousFromDistances(dst, f, a, b []float64) {
	n := len(dst)
	if len(f) != n || len(a) != n || len(b) != n {
		panic("field: slice length mismatch")
	}
	for i := range dst {
		kf := K * f[i]
		dst[i] = math.Cos(kf*a[i]) + math.Cos(kf*b[i])
	}
}

// BandAverageFromDistances sets dst[i] to the band average for a point at
// distances a[i], b[i].
func BandAverageFromDistances(dst, a, b []float64, band Band) {
	n := len(dst)
	if len(a) != n || len(b) != n {
		panic("field: slice length mismatch")
	}
	fc, half := band.Center(), 0.5*band.Width()
	for i := range dst {
		dst[i] = averageTerm(a[i], fc, half) + averageTerm(b[i], fc, half)
	}
}

// InstantaneousBatch is the batch form of Instantaneous.
func InstantaneousBatch(dst, f, x, y []float64, d float64) {
	n := len(dst)
	if len(f) != n {
		panic("field: slice length mismatch")
	}
	a, b := scratch.Default.Get(n), scratch.Default.Get(n)
	defer scratch.Default.Put(a)
	defer scratch.Default.Put(b)

	Distances(a.Data, b.Data, x, y, d)
	InstantaneousFromDistances(dst, f, a.Data, b.Data)
}

// AntiderivativeBatch is the batch form of Antiderivative.
func AntiderivativeBatch(dst, f, x, y []float64, d float64) {
	n := len(dst)
	if len(f) != n {
		panic("field: slice length mismatch")
	}
	a, b := scratch.Default.Get(n), scratch.Default.Get(n)
	defer scratch.Default.Put(a)
	defer scratch.Default.Put(b)

	Distances(a.Data, b.Data, x, y, d)
	for i := range dst {
		dst[i] = sinTerm(a.Data[i], f[i]) + sinTerm(b.Data[i], f[i])
	}
}

// BandAverageBatch is the batch form of BandAverage.
func BandAverageBatch(dst, x, y []float64, d float64, band Band) {
	n := len(dst)
	a, b := scratch.Default.Get(n), scratch.Default.Get(n)
	defer scratch.Default.Put(a)
	defer scratch.Default.Put(b)

	Distances(a.Data, b.Data, x, y, d)
	BandAverageFromDistances(dst, a.Data, b.Data, band)
}
