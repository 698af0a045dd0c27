package sweep

import (
	"context"
	"math"
	"time"

	"github.com/cwbudde/algo-interference/field"
	"github.com/cwbudde/algo-interference/integrate/mc"
)

// CurveSpec describes a distance/deviation curve: separations Step, 2·Step,
// … below MaxD over one band and spatial window.
type CurveSpec struct {
	MaxD float64
	Step float64
	Band field.Band
	X, Y mc.Interval
}

// Distances returns i·Step for i = 1 … round(MaxD/Step) − 1.
func (s CurveSpec) Distances() []float64 {
	if !(s.Step > 0) || !(s.MaxD > 0) {
		return nil
	}
	steps := int(math.Round(s.MaxD / s.Step))
	if steps < 2 {
		return nil
	}
	out := make([]float64, 0, steps-1)
	for i := 1; i < steps; i++ {
		out = append(out, float64(i)*s.Step)
	}
	return out
}

// Curve is the result of DistanceCurve. Deviation[i] belongs to D[i].
type Curve struct {
	Spec      CurveSpec
	D         []float64
	Deviation []float64
}

// NaNCount returns the number of points whose estimate is NaN.
func (c *Curve) NaNCount() int {
	n := 0
	for _, v := range c.Deviation {
		if math.IsNaN(v) {
			n++
		}
	}
	return n
}

// DistanceCurve evaluates AveragePlaneDeviation at every distance of spec.
// The first failing point aborts the curve.
func (e *Estimator) DistanceCurve(spec CurveSpec) (*Curve, error) {
	return e.DistanceCurveContext(context.Background(), spec)
}

// DistanceCurveContext is DistanceCurve with cancellation checked before
// every distance. A canceled curve returns ctx.Err().
func (e *Estimator) DistanceCurveContext(ctx context.Context, spec CurveSpec) (*Curve, error) {
	if !(spec.Step > 0) || !(spec.MaxD > 0) {
		return nil, ErrInvalidStep
	}
	if err := spec.Band.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	ds := spec.Distances()
	curve := &Curve{Spec: spec, D: ds, Deviation: make([]float64, len(ds))}

	for i, d := range ds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v, err := e.AveragePlaneDeviation(d, spec.Band, spec.X, spec.Y)
		if err != nil {
			return nil, err
		}
		curve.Deviation[i] = v
	}

	e.log.Info().
		Floats64("band", []float64{spec.Band.Lo, spec.Band.Hi}).
		Floats64("x", []float64{spec.X.Lo, spec.X.Hi}).
		Floats64("y", []float64{spec.Y.Lo, spec.Y.Hi}).
		Int("points", len(ds)).
		Dur("elapsed", time.Since(start)).
		Msg("distance curve done")

	return curve, nil
}
