//go:build arm64

package cpu

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// NEON (ASIMD) is mandatory on ARMv8.
func detectFeaturesImpl() Features {
	return Features{
		HasNEON:      cpu.ARM64.HasASIMD,
		NumCPU:       runtime.GOMAXPROCS(0),
		Architecture: runtime.GOARCH,
	}
}
