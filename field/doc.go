// Package field evaluates the pressure field of two coherent point sources
// and its analytic average over a frequency band.
//
// Source 1 sits at the origin and source 2 at (d, 0). A point (x, y) of the
// measurement plane sees the sources at distances
//
//	a = √(x² + y²)
//	b = √((x−d)² + y²)
//
// and, for a pure tone at frequency f, the instantaneous amplitude
//
//	A0(f) = cos(k·f·a) + cos(k·f·b),   k = 2π / c.
//
// The band average over [f_lo, f_hi] follows from the antiderivative
//
//	F(f) = sin(a·f·k)/(a·k) + sin(b·f·k)/(b·k)
//
// as (F(f_hi) − F(f_lo)) / (f_hi − f_lo). BandAverage evaluates the same
// quantity in the product form cos(k·r·f_c)·sinc(k·r·Δf/2) per source, which
// stays accurate for narrow bands and is finite at the source locations.
//
// # Batches
//
// Every function has a batch form that fills dst element-wise. Distances
// are computed with the algo-vecmath Magnitude kernel, which dispatches to
// SIMD code on supported CPUs. All batch slices must have equal length;
// the functions panic otherwise.
package field
