package field

import (
	"errors"
	"math"
)

const (
	// SpeedOfSound is the propagation speed in m/s.
	SpeedOfSound = 343.0

	// K is the wavenumber per hertz, 2π / SpeedOfSound.
	K = 2 * math.Pi / SpeedOfSound
)

// ErrInvalidBand is returned for bands that do not satisfy Hi > Lo > 0.
var ErrInvalidBand = errors.New("field: band must satisfy hi > lo > 0")

// Point is a position in the measurement plane, in meters.
type Point struct {
	X, Y float64
}

// Band is a frequency interval in Hz.
type Band struct {
	Lo, Hi float64
}

// Validate checks Hi > Lo > 0.
func (b Band) Validate() error {
	if !(b.Lo > 0) || !(b.Hi > b.Lo) {
		return ErrInvalidBand
	}
	return nil
}

// Width returns Hi − Lo.
func (b Band) Width() float64 { return b.Hi - b.Lo }

// Center returns the band's midpoint.
func (b Band) Center() float64 { return 0.5 * (b.Lo + b.Hi) }

// SourceDistances returns the distances from (x, y) to the source at the
// origin and to the source at (d, 0).
func SourceDistances(x, y, d float64) (a, b float64) {
	dx := x - d
	return math.Sqrt(x*x + y*y), math.Sqrt(dx*dx + y*y)
}

// Instantaneous returns cos(K·f·a) + cos(K·f·b), bounded by [-2, 2].
func Instantaneous(f, x, y, d float64) float64 {
	a, b := SourceDistances(x, y, d)
	return math.Cos(K*f*a) + math.Cos(K*f*b)
}

// Antiderivative returns the antiderivative in f of Instantaneous:
//
//	(b·sin(a·f·K) + a·sin(b·f·K)) / (a·b·K)
//
// At a source location (a == 0 or b == 0) the corresponding term is
// replaced by its limit f.
func Antiderivative(f, x, y, d float64) float64 {
	a, b := SourceDistances(x, y, d)
	return sinTerm(a, f) + sinTerm(b, f)
}

// BandAverage returns the mean of Instantaneous over f in band.
// For a degenerate band (Lo == Hi) it equals Instantaneous at Lo.
func BandAverage(x, y, d float64, band Band) float64 {
	a, b := SourceDistances(x, y, d)
	fc, half := band.Center(), 0.5*band.Width()
	return averageTerm(a, fc, half) + averageTerm(b, fc, half)
}

// sinTerm is sin(r·f·K)/(r·K) with its r → 0 limit.
func sinTerm(r, f float64) float64 {
	if r == 0 {
		return f
	}
	return math.Sin(r*f*K) / (r * K)
}

// averageTerm is the band mean of cos(K·f·r) over [fc−half, fc+half]:
//
//	(sin(K·r·(fc+half)) − sin(K·r·(fc−half))) / (2·K·r·half)
//	  = cos(K·r·fc) · sinc(K·r·half)
func averageTerm(r, fc, half float64) float64 {
	return math.Cos(K*r*fc) * sinc(K*r*half)
}

// sinc returns sin(z)/z, 1 at z == 0.
func sinc(z float64) float64 {
	if math.Abs(z) < 1e-8 {
		// sin(z)/z = 1 − z²/6 + O(z⁴)
		return 1 - z*z/6
	}
	return math.Sin(z) / z
}
