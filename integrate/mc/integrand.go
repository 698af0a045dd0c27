package mc

// Batch holds a block of samples column-wise: Batch[axis][i] is coordinate
// axis of sample i. All columns have the same length.
type Batch [][]float64

// Dim returns the number of axes.
func (b Batch) Dim() int { return len(b) }

// Len returns the number of samples.
func (b Batch) Len() int {
	if len(b) == 0 {
		return 0
	}
	return len(b[0])
}

// Integrand is a function evaluated in batch form.
//
// Evaluate sets dst[i] to the integrand value at sample i of x, where
// len(dst) == x.Len() and x.Dim() == Dim(). It is called concurrently on
// distinct batches by parallel backends and must not retain x or dst.
type Integrand interface {
	Dim() int
	Evaluate(dst []float64, x Batch)
}

type funcIntegrand struct {
	dim int
	fn  func(dst []float64, x Batch)
}

func (f funcIntegrand) Dim() int { return f.dim }

func (f funcIntegrand) Evaluate(dst []float64, x Batch) { f.fn(dst, x) }

// NewFunc adapts a batch function of dim axes to an Integrand.
func NewFunc(dim int, fn func(dst []float64, x Batch)) Integrand {
	return funcIntegrand{dim: dim, fn: fn}
}
