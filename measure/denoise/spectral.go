package denoise

import (
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// LogSpectralDistance returns the mean log-spectral distance in dB between
// reference and estimate. Signals shorter than one frame are zero-padded to
// a single frame.
func LogSpectralDistance(reference, estimate []float64, cfg Config) (float64, error) {
	if len(reference) != len(estimate) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(reference), len(estimate))
	}
	if len(reference) == 0 {
		return 0, ErrEmpty
	}

	cfg = normalizeConfig(cfg)
	size := cfg.FrameSize

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return 0, fmt.Errorf("denoise: fft plan for frame size %d: %w", size, err)
	}

	a := newFrameAnalyzer(plan, size)
	b := newFrameAnalyzer(plan, size)

	var total float64
	frames := 0
	for start := 0; start == 0 || start+size <= len(reference); start += cfg.Hop {
		pr, err := a.power(reference, start)
		if err != nil {
			return 0, err
		}
		pe, err := b.power(estimate, start)
		if err != nil {
			return 0, err
		}

		var sum float64
		for k := range pr {
			d := 10 * math.Log10((pr[k]+cfg.PowerFloor)/(pe[k]+cfg.PowerFloor))
			sum += d * d
		}
		total += math.Sqrt(sum / float64(len(pr)))
		frames++
	}

	return total / float64(frames), nil
}

type frameAnalyzer struct {
	plan   *algofft.Plan[complex128]
	window []float64
	in     []complex128
	out    []complex128
	re, im []float64
	pow    []float64
}

func newFrameAnalyzer(plan *algofft.Plan[complex128], size int) *frameAnalyzer {
	bins := size/2 + 1
	return &frameAnalyzer{
		plan:   plan,
		window: hann(size),
		in:     make([]complex128, size),
		out:    make([]complex128, size),
		re:     make([]float64, bins),
		im:     make([]float64, bins),
		pow:    make([]float64, bins),
	}
}

// power returns the one-sided power spectrum of the windowed frame starting
// at start. The result is reused by the next call.
func (f *frameAnalyzer) power(x []float64, start int) ([]float64, error) {
	for i := range f.in {
		var v float64
		if j := start + i; j < len(x) {
			v = x[j] * f.window[i]
		}
		f.in[i] = complex(v, 0)
	}

	if err := f.plan.Forward(f.out, f.in); err != nil {
		return nil, fmt.Errorf("denoise: forward fft: %w", err)
	}

	for k := range f.re {
		f.re[k] = real(f.out[k])
		f.im[k] = imag(f.out[k])
	}
	vecmath.Power(f.pow, f.re, f.im)
	return f.pow, nil
}

// hann returns a periodic Hann window of length n.
func hann(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}
	return w
}
