// Package sweep turns Monte Carlo integrals of the band-average deviation
// into the quantities the sweeps report.
//
// The two entry points are
//
//   - AveragePlaneDeviation: mean of |A0 − Ā| over a spatial window and a
//     frequency band, one point of a distance/deviation curve;
//   - AveragePointDeviation: mean of |A0 − Ā| over a band at one plane
//     point, one pixel of a deviation map.
//
// DistanceCurve and PlaneMap enumerate them over separation distances and
// pixel grids. PlaneMap evaluates every pixel independently into a slot it
// owns, spread over a bounded worker pool.
//
// # Randomness
//
// An unseeded Estimator draws a fresh source for every estimate. With
// WithSeed, the source of each estimate is derived from the seed and the
// estimate's parameters, so a pixel or curve point has the same value no
// matter which worker computes it or in which order. WithCorrelatedNoise
// makes every estimate reuse the bare seed instead, which gives deviation
// maps a shared noise pattern across pixels.
//
// # Usage
//
//	est := sweep.NewEstimator(mc.New(nil), sweep.WithSeed(1))
//	v, err := est.AveragePointDeviation(1.0, field.Band{Lo: 60, Hi: 250}, field.Point{X: 5, Y: 5})
//	pixel := sweep.Intensity(v)
package sweep
