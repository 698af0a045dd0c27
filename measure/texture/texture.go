package texture

import (
	"errors"
	"math"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// ErrShape is returned when values does not hold width × height samples.
var ErrShape = errors.New("texture: values do not match width × height")

// HighBandRatio returns the fraction of spectral power above half Nyquist,
// summed over the Hann-windowed, mean-removed rows of a row-major
// width × height map. Rows are zero-padded to the next power of two. NaN
// pixels are treated as the row mean. A map without any AC power, or with
// rows shorter than 4 pixels, yields 0.
func HighBandRatio(values []float64, width, height int) (float64, error) {
	if width < 0 || height < 0 || len(values) != width*height {
		return 0, ErrShape
	}
	if width < 4 || height == 0 {
		return 0, nil
	}

	n := nextPow2(width)
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return 0, err
	}

	win := hann(width)
	row := make([]float64, width)
	in := make([]complex128, n)
	out := make([]complex128, n)

	half := n / 2
	re := make([]float64, half)
	im := make([]float64, half)
	pow := make([]float64, half)

	var high, total float64
	for r := range height {
		copy(row, values[r*width:(r+1)*width])
		removeMean(row)
		vecmath.MulBlockInPlace(row, win)

		for i := range in {
			in[i] = 0
		}
		for i, v := range row {
			in[i] = complex(v, 0)
		}
		if err := plan.Forward(out, in); err != nil {
			return 0, err
		}

		// bins 1 … n/2; DC is zero after mean removal
		for k := range half {
			re[k] = real(out[k+1])
			im[k] = imag(out[k+1])
		}
		vecmath.Power(pow, re, im)

		for k, p := range pow {
			total += p
			if k+1 > n/4 {
				high += p
			}
		}
	}

	if total == 0 {
		return 0, nil
	}
	return high / total, nil
}

// removeMean subtracts the mean of the finite entries and zeroes the rest.
func removeMean(x []float64) {
	var sum float64
	count := 0
	for _, v := range x {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			sum += v
			count++
		}
	}
	mean := 0.0
	if count > 0 {
		mean = sum / float64(count)
	}
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			x[i] = 0
			continue
		}
		x[i] = v - mean
	}
}

// hann returns periodic Hann coefficients.
func hann(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}
	return w
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
