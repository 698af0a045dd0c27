// Package scratch pools the float64 work slices used by batch kernels, so
// that evaluating millions of samples block by block does not churn the
// garbage collector.
package scratch

import "sync"

// Slice is a pooled float64 buffer.
type Slice struct {
	Data []float64
}

// Resize sets the length to n, growing the backing array when needed.
// Contents are not cleared.
func (s *Slice) Resize(n int) {
	if cap(s.Data) < n {
		s.Data = make([]float64, n)
		return
	}
	s.Data = s.Data[:n]
}

// Pool provides sync.Pool-based reuse of Slices.
type Pool struct {
	pool sync.Pool
}

// NewPool returns a Pool ready for use.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return &Slice{}
			},
		},
	}
}

// Get returns a slice of length n with unspecified contents.
// Callers must return it via Put when done.
func (p *Pool) Get(n int) *Slice {
	s := p.pool.Get().(*Slice)
	s.Resize(n)
	return s
}

// Put returns s to the pool. The caller must not use s afterwards.
func (p *Pool) Put(s *Slice) {
	if s == nil {
		return
	}
	p.pool.Put(s)
}

// Default is shared by the field, deviation and integrate packages.
var Default = NewPool()
