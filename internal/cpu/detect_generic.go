//go:build !amd64 && !arm64

package cpu

import "runtime"

func detectFeaturesImpl() Features {
	return Features{
		NumCPU:       runtime.GOMAXPROCS(0),
		Architecture: runtime.GOARCH,
	}
}
