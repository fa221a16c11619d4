package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DelayedFIR filters x through h with one sample of extra delay:
//
//	d[n] = sum_k h[k] * x[n-1-k]
//
// This is exactly the model an adaptive filter of order len(h) can
// identify, because its window at n holds x[n-1], x[n-2], ...
func DelayedFIR(h, x []float64) []float64 {
	d := make([]float64, len(x))
	for n := range x {
		for k, hk := range h {
			if i := n - 1 - k; i >= 0 {
				d[n] += hk * x[i]
			}
		}
	}
	return d
}

// Add returns a[i] + b[i] over the shorter of the two slices.
func Add(a, b []float64) []float64 {
	out := make([]float64, min(len(a), len(b)))
	for i := range out {
		out[i] = a[i] + b[i]
	}
	return out
}
