package backend

import (
	"runtime"
	"sync/atomic"

	"github.com/sourcegraph/conc"

	"github.com/cwbudde/algo-interference/internal/cpu"
)

func init() {
	Global.Register(Entry{
		Name:      "parallel",
		SIMDLevel: cpu.SIMDNone,
		MinCPUs:   2,
		Priority:  10,
		New: func(workers int) Runner {
			return NewParallel(workers)
		},
	})
}

// Parallel spreads blocks over a fixed number of worker goroutines. Workers
// claim block indices from a shared counter, so uneven block costs balance
// out.
type Parallel struct {
	workers int
}

// NewParallel returns a parallel runner. workers <= 0 uses GOMAXPROCS.
func NewParallel(workers int) *Parallel {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Parallel{workers: workers}
}

func (p *Parallel) Name() string { return "parallel" }

func (p *Parallel) Workers() int { return p.workers }

// Run blocks until every block has been evaluated. A panic in fn is
// re-raised on the calling goroutine.
func (p *Parallel) Run(blocks int, fn func(block int)) {
	if blocks <= 0 {
		return
	}

	workers := min(p.workers, blocks)
	if workers == 1 {
		serial{}.Run(blocks, fn)
		return
	}

	var next atomic.Int64
	var wg conc.WaitGroup
	for range workers {
		wg.Go(func() {
			for {
				b := int(next.Add(1) - 1)
				if b >= blocks {
					return
				}
				fn(b)
			}
		})
	}
	wg.Wait()
}
