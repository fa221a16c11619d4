package signal

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-adaptive/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Fit repeats or truncates x to exactly n samples.
func Fit(x []float64, n int) ([]float64, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("fit input must not be empty")
	}
	if n < 0 {
		return nil, fmt.Errorf("fit length must be >= 0: %d", n)
	}
	out := make([]float64, n)
	for i := 0; i < n; i += len(x) {
		copy(out[i:], x)
	}
	return out, nil
}

// ScaleToSNR returns noise rescaled so that rms(clean)/rms(noise) equals
// snrDB. Silent noise yields a zero slice.
func ScaleToSNR(clean, noise []float64, snrDB float64) ([]float64, error) {
	if math.IsNaN(snrDB) || math.IsInf(snrDB, 0) {
		return nil, fmt.Errorf("snr must be finite: %g", snrDB)
	}

	out := make([]float64, len(noise))
	rmsNoise := core.RMS(noise)
	if rmsNoise == 0 {
		return out, nil
	}

	want := core.RMS(clean) / core.DBToLinear(snrDB)
	vecmath.ScaleBlock(out, noise, want/rmsNoise)
	return out, nil
}

// MixAtSNR fits noise to the length of clean, scales it to snrDB and returns
// clean + noise.
func MixAtSNR(clean, noise []float64, snrDB float64) ([]float64, error) {
	if len(clean) == 0 {
		return nil, fmt.Errorf("mix clean signal must not be empty")
	}

	fitted, err := Fit(noise, len(clean))
	if err != nil {
		return nil, err
	}
	scaled, err := ScaleToSNR(clean, fitted, snrDB)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(clean))
	vecmath.AddBlock(out, clean, scaled)
	return out, nil
}
