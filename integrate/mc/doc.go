// Package mc estimates definite integrals over axis-aligned boxes by plain
// Monte Carlo sampling.
//
// An estimate is the box measure times the mean of the integrand over
// uniformly drawn points. Integrands are evaluated in batch form: they
// receive a column-major block of samples and fill a slice of values, which
// is what makes sample counts of 10⁶–10⁷ per estimate practical.
//
// # Execution
//
// Blocks of one integration are scheduled by an explicit execution context:
//
//	exec, err := mc.NewExec("parallel", 0)
//	integ := mc.New(exec)
//	est, err := integ.Integrate(rng, f, mc.Domain{{0, 1}, {0, 2}}, 1_000_000)
//
// Each block draws its samples from its own PCG stream seeded from rng, and
// block means are combined in block order, so an estimate depends on the
// seed and block size but not on the backend or worker count.
//
// Estimates carry no error bound. A NaN returned by the integrand for any
// sample makes the estimate NaN.
package mc
