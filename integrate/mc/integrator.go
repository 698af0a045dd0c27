package mc

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-interference/internal/scratch"
)

// Integrator draws uniform samples and averages a batch integrand over
// them. It holds no mutable state and is safe for concurrent use.
type Integrator struct {
	exec      *Exec
	blockSize int
}

// New returns an integrator using exec. A nil exec selects DefaultExec.
func New(exec *Exec, opts ...Option) *Integrator {
	if exec == nil {
		exec = DefaultExec()
	}
	cfg := applyOptions(opts...)

	lanes := exec.lanes()
	block := cfg.BlockSize
	if block <= math.MaxInt-lanes {
		block = (block + lanes - 1) / lanes * lanes
	} else {
		block = block / lanes * lanes
	}

	return &Integrator{exec: exec, blockSize: block}
}

// Exec returns the integrator's execution context.
func (in *Integrator) Exec() *Exec { return in.exec }

// BlockSize returns the samples per integrand call.
func (in *Integrator) BlockSize() int { return in.blockSize }

// Integrate estimates the integral of f over dom from n uniform samples.
//
// rng seeds the per-block sample streams; a nil rng uses a fresh unseeded
// source. The estimate is dom.Measure() times the sample mean of f.
func (in *Integrator) Integrate(rng *rand.Rand, f Integrand, dom Domain, n int) (float64, error) {
	if err := dom.Validate(); err != nil {
		return 0, err
	}
	if f == nil {
		return 0, ErrNilIntegrand
	}
	if f.Dim() != len(dom) {
		return 0, fmt.Errorf("%w: integrand has %d axes, domain has %d",
			ErrDimensionMismatch, f.Dim(), len(dom))
	}
	if n <= 0 {
		return 0, ErrSampleCount
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	block := min(in.blockSize, n)
	blocks := n / block
	if n%block != 0 {
		blocks++
	}

	seeds := make([]uint64, 2*blocks)
	for i := range seeds {
		seeds[i] = rng.Uint64()
	}

	means := make([]float64, blocks)
	in.exec.runner.Run(blocks, func(b int) {
		lo := b * block
		size := min(block, n-lo)
		src := rand.New(rand.NewPCG(seeds[2*b], seeds[2*b+1]))
		means[b] = blockMean(src, f, dom, size)
	})

	return combineMeans(means, block, n) * dom.Measure(), nil
}

// Integrate estimates the integral of f over dom with the default
// execution context and an unseeded source.
func Integrate(f Integrand, dom Domain, n int) (float64, error) {
	return New(nil).Integrate(nil, f, dom, n)
}

// blockMean draws size samples from dom, evaluates f on them and returns
// their mean.
func blockMean(src *rand.Rand, f Integrand, dom Domain, size int) float64 {
	cols := make([]*scratch.Slice, len(dom))
	x := make(Batch, len(dom))
	for axis, iv := range dom {
		cols[axis] = scratch.Default.Get(size)
		col := cols[axis].Data
		w := iv.Width()
		for i := range col {
			col[i] = iv.Lo + w*src.Float64()
		}
		x[axis] = col
	}

	vals := scratch.Default.Get(size)
	f.Evaluate(vals.Data, x)
	mean := shiftedMean(vals.Data)

	scratch.Default.Put(vals)
	for _, c := range cols {
		scratch.Default.Put(c)
	}
	return mean
}

// shiftedMean returns the mean of v, summing offsets from v[0]. A constant
// slice yields exactly its value. An infinite v[0] is not used as the
// shift. v is overwritten.
func shiftedMean(v []float64) float64 {
	ref := v[0]
	if math.IsInf(ref, 0) || math.IsNaN(ref) {
		ref = 0
	}
	floats.AddConst(-ref, v)
	return ref + floats.Sum(v)/float64(len(v))
}

// combineMeans merges per-block means into the mean of all n samples,
// again relative to the first block's mean.
func combineMeans(means []float64, block, n int) float64 {
	ref := means[0]
	if math.IsInf(ref, 0) || math.IsNaN(ref) {
		ref = 0
	}
	acc := 0.0
	for b, m := range means {
		size := min(block, n-b*block)
		acc += float64(size) * (m - ref)
	}
	return ref + acc/float64(n)
}
