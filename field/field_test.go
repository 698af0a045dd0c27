package field

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/cwbudde/algo-interference/internal/testutil"
)

func TestBandValidate(t *testing.T) {
	tests := []struct {
		name    string
		band    Band
		wantErr error
	}{
		{"valid", Band{16, 60}, nil},
		{"zero lo", Band{0, 60}, ErrInvalidBand},
		{"negative lo", Band{-5, 60}, ErrInvalidBand},
		{"inverted", Band{250, 60}, ErrInvalidBand},
		{"empty", Band{60, 60}, ErrInvalidBand},
		{"nan", Band{math.NaN(), 60}, ErrInvalidBand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.band.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestInstantaneousBounded(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for range 10000 {
		x := rng.Float64()*40 - 20
		y := rng.Float64() * 20
		d := rng.Float64() * 10
		f := rng.Float64() * 4000
		v := Instantaneous(f, x, y, d)
		if v < -2 || v > 2 {
			t.Fatalf("Instantaneous(%v, %v, %v, %v) = %v outside [-2, 2]", f, x, y, d, v)
		}
	}
}

func TestInstantaneousKnownValues(t *testing.T) {
	// One full wavelength away from both sources.
	testutil.RequireNearlyEqual(t, Instantaneous(SpeedOfSound, 1, 0, 0), 2, 1e-12)
	// Half a wavelength: both terms are cos(π).
	testutil.RequireNearlyEqual(t, Instantaneous(SpeedOfSound/2, 0, 1, 0), -2, 1e-12)
	// At the sources themselves every frequency gives cos(0) for that term.
	testutil.RequireNearlyEqual(t, Instantaneous(1234, 0, 0, 0), 2, 0)
}

func TestAntiderivativeDifferentiates(t *testing.T) {
	points := []struct{ x, y, d float64 }{
		{5, 5, 1},
		{-3, 0.5, 0.3},
		{0.1, 9, 4},
		{10, 10, 10},
	}
	const h = 1e-4

	for _, p := range points {
		for _, f := range []float64{16, 100, 440, 2000, 3900} {
			num := (Antiderivative(f+h, p.x, p.y, p.d) - Antiderivative(f-h, p.x, p.y, p.d)) / (2 * h)
			want := Instantaneous(f, p.x, p.y, p.d)
			if math.Abs(num-want) > 1e-5 {
				t.Errorf("dF/df at f=%v %+v = %v, want %v", f, p, num, want)
			}
		}
	}
}

func TestBandAverageMatchesAntiderivative(t *testing.T) {
	bands := []Band{{16, 60}, {60, 250}, {250, 500}, {500, 2000}, {2000, 4000}}
	points := []struct{ x, y, d float64 }{
		{5, 5, 1},
		{-10, 0.2, 0.3},
		{0.5, 3, 2},
		{7, 1, 9},
	}

	for _, band := range bands {
		for _, p := range points {
			want := (Antiderivative(band.Hi, p.x, p.y, p.d) - Antiderivative(band.Lo, p.x, p.y, p.d)) / band.Width()
			got := BandAverage(p.x, p.y, p.d, band)
			if math.Abs(got-want) > 1e-9 {
				t.Errorf("BandAverage(%+v, %+v) = %v, want %v", p, band, got, want)
			}
		}
	}
}

func TestBandAverageVanishingBand(t *testing.T) {
	const f0 = 440.0
	points := []struct{ x, y, d float64 }{
		{5, 5, 1},
		{-2, 1, 0.3},
		{0, 0, 0.5},
	}

	for _, p := range points {
		want := Instantaneous(f0, p.x, p.y, p.d)
		for _, eps := range []float64{1e-1, 1e-3, 1e-6, 1e-9} {
			got := BandAverage(p.x, p.y, p.d, Band{f0 - eps, f0 + eps})
			// The band mean of a cosine differs from its centre value by O(eps²).
			tol := 1e-9 + 10*eps*eps*K*K*200
			if math.Abs(got-want) > tol {
				t.Errorf("eps=%g %+v: got %v, want %v", eps, p, got, want)
			}
		}

		if got := BandAverage(p.x, p.y, p.d, Band{f0, f0}); math.Abs(got-want) > 1e-12 {
			t.Errorf("degenerate band %+v: got %v, want %v", p, got, want)
		}
	}
}

func TestBandAverageBounded(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	band := Band{60, 250}
	for range 5000 {
		x := rng.Float64()*20 - 10
		y := rng.Float64() * 10
		v := BandAverage(x, y, 1, band)
		if v < -2 || v > 2 {
			t.Fatalf("BandAverage(%v, %v) = %v outside [-2, 2]", x, y, v)
		}
	}
}

func TestSourceLocationGuard(t *testing.T) {
	const d = 0.5
	band := Band{16, 60}

	// Antiderivative at the first source: the a-term degenerates to f.
	got := Antiderivative(30, 0, 0, d)
	want := 30 + math.Sin(d*30*K)/(d*K)
	testutil.RequireNearlyEqual(t, got, want, 1e-12)

	// Band average is continuous at both sources.
	for _, src := range []Point{{0, 0}, {d, 0}} {
		at := BandAverage(src.X, src.Y, d, band)
		near := BandAverage(src.X+1e-9, src.Y, d, band)
		if math.IsNaN(at) || math.IsInf(at, 0) {
			t.Fatalf("BandAverage at source %+v = %v", src, at)
		}
		testutil.RequireNearlyEqual(t, at, near, 1e-6)
	}

	// With coincident sources at the origin every term is its limit.
	testutil.RequireNearlyEqual(t, BandAverage(0, 0, 0, band), 2, 0)
	testutil.RequireNearlyEqual(t, Antiderivative(42, 0, 0, 0), 84, 0)
}

func TestBatchMatchesScalar(t *testing.T) {
	const n = 1037
	rng := rand.New(rand.NewPCG(5, 6))
	f := make([]float64, n)
	x := make([]float64, n)
	y := make([]float64, n)
	for i := range n {
		f[i] = 16 + rng.Float64()*3984
		x[i] = rng.Float64()*20 - 10
		y[i] = rng.Float64() * 10
	}
	x[0], y[0] = 0, 0
	x[1], y[1] = 0.3, 0

	const d = 0.3
	band := Band{250, 500}

	inst := make([]float64, n)
	anti := make([]float64, n)
	avg := make([]float64, n)
	InstantaneousBatch(inst, f, x, y, d)
	AntiderivativeBatch(anti, f, x, y, d)
	BandAverageBatch(avg, x, y, d, band)

	wantInst := make([]float64, n)
	wantAnti := make([]float64, n)
	wantAvg := make([]float64, n)
	for i := range n {
		wantInst[i] = Instantaneous(f[i], x[i], y[i], d)
		wantAnti[i] = Antiderivative(f[i], x[i], y[i], d)
		wantAvg[i] = BandAverage(x[i], y[i], d, band)
	}

	testutil.RequireSliceNearlyEqual(t, inst, wantInst, 1e-12)
	testutil.RequireSliceNearlyEqual(t, anti, wantAnti, 1e-9)
	testutil.RequireSliceNearlyEqual(t, avg, wantAvg, 1e-12)
	testutil.RequireFinite(t, anti)
}

func TestBatchEmpty(t *testing.T) {
	InstantaneousBatch(nil, nil, nil, nil, 1)
	BandAverageBatch(nil, nil, nil, 1, Band{1, 2})
}

func TestBatchLengthMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on length mismatch")
		}
	}()
	Distances(make([]float64, 3), make([]float64, 3), make([]float64, 3), make([]float64, 2), 1)
}
