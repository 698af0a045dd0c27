package mc

import (
	"math"
	"math/rand/v2"
	"testing"
)

func benchIntegrate(b *testing.B, backend string, n int) {
	exec, err := NewExec(backend, 0)
	if err != nil {
		b.Fatal(err)
	}
	integ := New(exec)
	f := NewFunc(3, func(dst []float64, x Batch) {
		for i := range dst {
			dst[i] = math.Abs(math.Cos(x[0][i]*x[2][i]) - math.Cos(x[1][i]*x[2][i]))
		}
	})
	dom := Domain{{0, 10}, {-10, 10}, {16, 60}}
	rng := rand.New(rand.NewPCG(1, 2))

	b.ResetTimer()

	for b.Loop() {
		if _, err := integ.Integrate(rng, f, dom, n); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkIntegrateSerial1M(b *testing.B)   { benchIntegrate(b, "serial", 1_000_000) }
func BenchmarkIntegrateParallel1M(b *testing.B) { benchIntegrate(b, "parallel", 1_000_000) }
