// Package backend holds the registry of batch-evaluation backends.
//
// A backend decides how the blocks of one Monte Carlo integration are
// scheduled: all on the calling goroutine, or spread over worker
// goroutines. Backends register themselves from init functions; callers
// pick one explicitly by name or let Lookup choose the best one for the
// detected CPU. Nothing here is switched on process-wide: every integrator
// owns the Runner it was built with.
package backend

import (
	"sync"

	"github.com/cwbudde/algo-interference/internal/cpu"
)

// Runner evaluates fn once for every block index in [0, blocks).
// Implementations must call fn exactly once per index and return only
// after all calls have finished.
type Runner interface {
	Name() string
	Workers() int
	Run(blocks int, fn func(block int))
}

// Entry is a registered backend.
type Entry struct {
	// Name identifies the backend in configuration ("serial", "parallel").
	Name string

	// SIMDLevel is the vector level the backend's kernels require.
	SIMDLevel cpu.SIMDLevel

	// MinCPUs is the number of logical CPUs below which the backend is not
	// worth selecting automatically.
	MinCPUs int

	// Priority orders compatible entries; higher wins.
	Priority int

	// New builds a runner. workers <= 0 selects the backend default.
	New func(workers int) Runner
}

// Registry manages backend entries.
type Registry struct {
	mu      sync.RWMutex
	entries []Entry
	sorted  bool
}

// Global is the registry the built-in backends register with.
var Global = &Registry{}

// Register adds an entry. Entries registered under an existing name
// replace the earlier one.
func (r *Registry) Register(entry Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.entries {
		if r.entries[i].Name == entry.Name {
			r.entries[i] = entry
			r.sorted = false
			return
		}
	}
	r.entries = append(r.entries, entry)
	r.sorted = false
}

// Lookup returns the highest-priority entry compatible with features, or
// nil if none is.
func (r *Registry) Lookup(features cpu.Features) *Entry {
	r.mu.Lock()
	if !r.sorted {
		r.sortByPriority()
		r.sorted = true
	}
	r.mu.Unlock()

	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		entry := r.entries[i]
		if cpu.Supports(features, entry.SIMDLevel, entry.MinCPUs) {
			return &entry
		}
	}
	return nil
}

// ByName returns the entry registered under name, or nil.
func (r *Registry) ByName(name string) *Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		if r.entries[i].Name == name {
			entry := r.entries[i]
			return &entry
		}
	}
	return nil
}

// sortByPriority sorts entries by descending priority. r.mu must be held.
func (r *Registry) sortByPriority() {
	// insertion sort, the registry holds a handful of entries
	for i := 1; i < len(r.entries); i++ {
		key := r.entries[i]
		j := i - 1
		for j >= 0 && r.entries[j].Priority < key.Priority {
			r.entries[j+1] = r.entries[j]
			j--
		}
		r.entries[j+1] = key
	}
}

// ListEntries returns a copy of the registered entries.
func (r *Registry) ListEntries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]Entry, len(r.entries))
	copy(entries, r.entries)
	return entries
}

// Names returns the registered backend names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.entries))
	for i := range r.entries {
		names[i] = r.entries[i].Name
	}
	return names
}

// Reset clears all entries. Intended for tests.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = nil
	r.sorted = false
}
