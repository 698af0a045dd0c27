// Package cpu reports the processor features that decide how Monte Carlo
// sample blocks are evaluated.
//
// Detection runs once, on the first call to DetectFeatures, and is cached.
// Tests may override the result with SetForcedFeatures.
package cpu

import (
	"sync"
)

// SIMDLevel is the widest vector instruction set available to the float64
// kernels used for batch field evaluation.
type SIMDLevel int

const (
	// SIMDNone means pure Go kernels only.
	SIMDNone SIMDLevel = iota
	SIMDSSE2
	SIMDAVX
	SIMDAVX2
	SIMDAVX512
	SIMDNEON
)

// String returns a human-readable name for the SIMD level.
func (s SIMDLevel) String() string {
	switch s {
	case SIMDNone:
		return "None"
	case SIMDSSE2:
		return "SSE2"
	case SIMDAVX:
		return "AVX"
	case SIMDAVX2:
		return "AVX2"
	case SIMDAVX512:
		return "AVX-512"
	case SIMDNEON:
		return "NEON"
	default:
		return "Unknown"
	}
}

// Lanes returns how many float64 values one vector register of this level
// holds. Block sizes are rounded to a multiple of it.
func (s SIMDLevel) Lanes() int {
	switch s {
	case SIMDSSE2, SIMDNEON:
		return 2
	case SIMDAVX, SIMDAVX2:
		return 4
	case SIMDAVX512:
		return 8
	default:
		return 1
	}
}

// Features describes the host as seen by backend selection.
type Features struct {
	HasSSE2   bool
	HasAVX    bool
	HasAVX2   bool
	HasAVX512 bool
	HasNEON   bool

	// NumCPU is the number of logical CPUs usable by the process.
	NumCPU int

	// ForceGeneric disables SIMD kernels and parallel backends.
	ForceGeneric bool

	Architecture string // runtime.GOARCH
}

// SIMD returns the widest SIMD level the features support.
func (f Features) SIMD() SIMDLevel {
	if f.ForceGeneric {
		return SIMDNone
	}
	switch {
	case f.HasAVX512:
		return SIMDAVX512
	case f.HasAVX2:
		return SIMDAVX2
	case f.HasAVX:
		return SIMDAVX
	case f.HasNEON:
		return SIMDNEON
	case f.HasSSE2:
		return SIMDSSE2
	default:
		return SIMDNone
	}
}

var (
	detectedFeatures Features
	detectOnce       sync.Once
	detectMutex      sync.Mutex

	forcedFeatures *Features
	forcedMutex    sync.RWMutex
)

// DetectFeatures returns the features of the current host. It is safe for
// concurrent use.
func DetectFeatures() Features {
	forcedMutex.RLock()
	forced := forcedFeatures
	forcedMutex.RUnlock()

	if forced != nil {
		return *forced
	}

	detectMutex.Lock()
	detectOnce.Do(func() {
		detectedFeatures = detectFeaturesImpl()
	})
	features := detectedFeatures
	detectMutex.Unlock()

	return features
}

// SetForcedFeatures overrides detection. Intended for tests.
func SetForcedFeatures(f Features) {
	forcedMutex.Lock()
	defer forcedMutex.Unlock()
	forced := f
	forcedFeatures = &forced
}

// ResetDetection clears forced features and the detection cache.
func ResetDetection() {
	forcedMutex.Lock()
	forcedFeatures = nil
	forcedMutex.Unlock()

	detectMutex.Lock()
	detectOnce = sync.Once{}
	detectedFeatures = Features{}
	detectMutex.Unlock()
}

// Supports reports whether features satisfy a backend that needs the given
// SIMD level and at least minCPUs logical CPUs.
func Supports(features Features, level SIMDLevel, minCPUs int) bool {
	if features.ForceGeneric {
		return level == SIMDNone && minCPUs <= 1
	}
	if minCPUs > 1 && features.NumCPU < minCPUs {
		return false
	}

	switch level {
	case SIMDNone:
		return true
	case SIMDSSE2:
		return features.HasSSE2
	case SIMDAVX:
		return features.HasAVX
	case SIMDAVX2:
		return features.HasAVX2
	case SIMDAVX512:
		return features.HasAVX512
	case SIMDNEON:
		return features.HasNEON
	default:
		return false
	}
}
