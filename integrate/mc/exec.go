package mc

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-interference/internal/backend"
	"github.com/cwbudde/algo-interference/internal/cpu"
)

// Exec is an execution context: the backend that schedules sample blocks
// plus the detected SIMD level, which only sets the multiple block sizes are
// rounded to. Kernel dispatch happens inside algo-vecmath. Exec is immutable
// and safe to share between integrators.
type Exec struct {
	runner backend.Runner
	simd   cpu.SIMDLevel
}

// NewExec returns the execution context for the named backend. An empty
// name or "auto" selects the best backend for the detected CPU.
// workers <= 0 selects the backend default.
func NewExec(name string, workers int) (*Exec, error) {
	features := cpu.DetectFeatures()

	var entry *backend.Entry
	if name == "" || name == "auto" {
		entry = backend.Global.Lookup(features)
	} else {
		entry = backend.Global.ByName(name)
	}
	if entry == nil {
		return nil, fmt.Errorf("%w: %q (available: %s)",
			ErrUnknownBackend, name, strings.Join(backend.Global.Names(), ", "))
	}

	return &Exec{
		runner: entry.New(workers),
		simd:   features.SIMD(),
	}, nil
}

// DefaultExec returns the automatically selected execution context.
func DefaultExec() *Exec {
	exec, err := NewExec("", 0)
	if err != nil {
		// serial is always registered
		panic(err)
	}
	return exec
}

// Backend returns the backend name.
func (e *Exec) Backend() string { return e.runner.Name() }

// Workers returns the number of goroutines blocks are spread over.
func (e *Exec) Workers() int { return e.runner.Workers() }

// SIMD returns the detected SIMD level used for block alignment.
func (e *Exec) SIMD() string { return e.simd.String() }

func (e *Exec) lanes() int { return e.simd.Lanes() }
