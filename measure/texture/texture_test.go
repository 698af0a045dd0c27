package texture

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-interference/internal/testutil"
)

func TestHighBandRatioSmoothVersusNoise(t *testing.T) {
	const width, height = 64, 16

	ramp := make([]float64, 0, width*height)
	for range height {
		ramp = append(ramp, testutil.Linspace(0, 1, width)...)
	}

	smooth, err := HighBandRatio(ramp, width, height)
	if err != nil {
		t.Fatal(err)
	}
	if smooth > 0.05 {
		t.Fatalf("ramp ratio=%f, want < 0.05", smooth)
	}

	noisy, err := HighBandRatio(testutil.DeterministicNoise(42, 1, width*height), width, height)
	if err != nil {
		t.Fatal(err)
	}
	if noisy < 0.3 || noisy > 0.7 {
		t.Fatalf("noise ratio=%f, want about 0.5", noisy)
	}
}

func TestHighBandRatioAlternating(t *testing.T) {
	const width = 32

	row := make([]float64, width)
	for i := range row {
		row[i] = float64(1 - 2*(i%2))
	}

	got, err := HighBandRatio(row, width, 1)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireInRange(t, []float64{got}, 0.95, 1)
}

func TestHighBandRatioFlatAndDegenerate(t *testing.T) {
	tests := []struct {
		name          string
		values        []float64
		width, height int
	}{
		{"constant", testutil.DC(1.5, 40), 8, 5},
		{"narrow", []float64{1, 2, 3}, 3, 1},
		{"empty", nil, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HighBandRatio(tt.values, tt.width, tt.height)
			if err != nil {
				t.Fatal(err)
			}
			if got != 0 {
				t.Fatalf("ratio=%f, want 0", got)
			}
		})
	}
}

func TestHighBandRatioNaNPixels(t *testing.T) {
	values := testutil.DeterministicNoise(7, 1, 48)
	values[5] = math.NaN()

	got, err := HighBandRatio(values, 12, 4)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireFinite(t, []float64{got})
	testutil.RequireInRange(t, []float64{got}, 0, 1)
}

func TestHighBandRatioShape(t *testing.T) {
	_, err := HighBandRatio(make([]float64, 10), 4, 3)
	if !errors.Is(err, ErrShape) {
		t.Fatalf("err=%v, want ErrShape", err)
	}
}

func TestNextPow2(t *testing.T) {
	for in, want := range map[int]int{1: 1, 2: 2, 3: 4, 12: 16, 64: 64, 65: 128} {
		if got := nextPow2(in); got != want {
			t.Fatalf("nextPow2(%d)=%d want=%d", in, got, want)
		}
	}
}
