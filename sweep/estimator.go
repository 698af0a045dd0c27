package sweep

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-interference/deviation"
	"github.com/cwbudde/algo-interference/field"
	"github.com/cwbudde/algo-interference/integrate/mc"
)

// Errors returned by Estimator.
var (
	ErrNegativeDistance = errors.New("sweep: source separation must be non-negative")
	ErrInvalidStep      = errors.New("sweep: distance step and maximum must be positive")
	ErrInvalidScale     = errors.New("sweep: pixels per meter must be positive")
)

// Estimator computes mean deviations with a Monte Carlo integrator.
// It is safe for concurrent use.
type Estimator struct {
	integ *mc.Integrator
	cfg   Config
	log   zerolog.Logger
}

// NewEstimator returns an Estimator integrating with integ. A nil integ
// uses mc.New(nil).
func NewEstimator(integ *mc.Integrator, opts ...Option) *Estimator {
	if integ == nil {
		integ = mc.New(nil)
	}
	cfg := applyOptions(opts...)
	return &Estimator{integ: integ, cfg: cfg, log: cfg.Logger}
}

// Config returns the estimator settings.
func (e *Estimator) Config() Config { return e.cfg }

// AveragePlaneDeviation returns the mean of |A0 − Ā| over
// yr × xr × band for sources d apart.
func (e *Estimator) AveragePlaneDeviation(d float64, band field.Band, xr, yr mc.Interval) (float64, error) {
	if err := checkInputs(d, band); err != nil {
		return 0, err
	}

	dom := mc.Domain{yr, xr, {Lo: band.Lo, Hi: band.Hi}}
	rng := e.source(d, band.Lo, band.Hi, xr.Lo, xr.Hi, yr.Lo, yr.Hi)

	integral, err := e.integ.Integrate(rng, deviation.Plane{D: d, Band: band}, dom, e.cfg.PlaneSamples)
	if err != nil {
		return 0, fmt.Errorf("sweep: plane deviation at d=%g: %w", d, err)
	}

	mean := integral / (yr.Width() * xr.Width() * band.Width())
	e.log.Debug().
		Float64("d", d).
		Floats64("band", []float64{band.Lo, band.Hi}).
		Float64("deviation", mean).
		Msg("plane deviation")

	return mean, nil
}

// AveragePointDeviation returns the mean of |A0 − Ā| over band at p for
// sources d apart.
func (e *Estimator) AveragePointDeviation(d float64, band field.Band, p field.Point) (float64, error) {
	if err := checkInputs(d, band); err != nil {
		return 0, err
	}

	dom := mc.Domain{{Lo: band.Lo, Hi: band.Hi}}
	rng := e.source(d, band.Lo, band.Hi, p.X, p.Y)

	integral, err := e.integ.Integrate(rng, deviation.Point{D: d, At: p, Band: band}, dom, e.cfg.PointSamples)
	if err != nil {
		return 0, fmt.Errorf("sweep: point deviation at (%g, %g): %w", p.X, p.Y, err)
	}

	return integral / band.Width(), nil
}

func checkInputs(d float64, band field.Band) error {
	if !(d >= 0) {
		return ErrNegativeDistance
	}
	return band.Validate()
}

// source returns the sample source for one estimate with the given
// parameters.
func (e *Estimator) source(params ...float64) *rand.Rand {
	if !e.cfg.Seeded {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if e.cfg.Correlated {
		return rand.New(rand.NewPCG(e.cfg.Seed, mix(e.cfg.Seed)))
	}

	h := e.cfg.Seed
	for _, p := range params {
		h = mix(h ^ math.Float64bits(p))
	}
	return rand.New(rand.NewPCG(h, mix(h)))
}

// mix is the splitmix64 finalizer.
func mix(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
