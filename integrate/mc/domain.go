package mc

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by Integrate.
var (
	ErrDomain            = errors.New("mc: invalid integration domain")
	ErrEmptyDomain       = fmt.Errorf("%w: no axes", ErrDomain)
	ErrDimensionMismatch = fmt.Errorf("%w: dimension mismatch", ErrDomain)
	ErrSampleCount       = errors.New("mc: sample count must be positive")
	ErrNilIntegrand      = errors.New("mc: nil integrand")
	ErrUnknownBackend    = errors.New("mc: unknown backend")
)

// Interval is one axis of a domain.
type Interval struct {
	Lo, Hi float64
}

// Width returns Hi − Lo.
func (iv Interval) Width() float64 { return iv.Hi - iv.Lo }

// Domain is an ordered list of axis ranges. Axis i of a Batch is sampled
// from Domain[i].
type Domain []Interval

// DomainError reports an axis with zero, negative or non-finite width.
type DomainError struct {
	Axis     int
	Interval Interval
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("mc: axis %d range [%g, %g] has no positive finite width",
		e.Axis, e.Interval.Lo, e.Interval.Hi)
}

func (e *DomainError) Unwrap() error { return ErrDomain }

// Validate checks that the domain has at least one axis and that every
// axis satisfies Hi > Lo with finite bounds.
func (d Domain) Validate() error {
	if len(d) == 0 {
		return ErrEmptyDomain
	}
	for i, iv := range d {
		if math.IsInf(iv.Lo, 0) || math.IsInf(iv.Hi, 0) || !(iv.Hi > iv.Lo) {
			return &DomainError{Axis: i, Interval: iv}
		}
	}
	return nil
}

// Measure returns the product of the axis widths, multiplied left to right.
func (d Domain) Measure() float64 {
	m := 1.0
	for _, iv := range d {
		m *= iv.Width()
	}
	return m
}
