package backend

import "github.com/cwbudde/algo-interference/internal/cpu"

func init() {
	Global.Register(Entry{
		Name:      "serial",
		SIMDLevel: cpu.SIMDNone,
		Priority:  0,
		New: func(int) Runner {
			return serial{}
		},
	})
}

// serial runs every block on the calling goroutine, in index order.
type serial struct{}

func (serial) Name() string { return "serial" }

func (serial) Workers() int { return 1 }

func (serial) Run(blocks int, fn func(block int)) {
	for b := 0; b < blocks; b++ {
		fn(b)
	}
}
