package denoise

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-adaptive/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

const (
	defaultFrameSize        = 512
	defaultSilenceThreshold = 1e-6
	defaultPowerFloor       = 1e-10
)

var (
	// ErrLengthMismatch is returned when reference and estimate differ in length.
	ErrLengthMismatch = errors.New("denoise: reference and estimate lengths differ")

	// ErrEmpty is returned for empty input.
	ErrEmpty = errors.New("denoise: empty input")
)

// Config holds measurement parameters. Zero fields take defaults.
type Config struct {
	// FrameSize is the FFT length of LogSpectralDistance (default 512).
	FrameSize int
	// Hop is the frame advance in samples (default FrameSize/2).
	Hop int
	// SilenceThreshold is the peak below which an estimate counts as
	// silent (default 1e-6).
	SilenceThreshold float64
	// PowerFloor is added to every energy term before taking logarithms
	// (default 1e-10).
	PowerFloor float64
}

func normalizeConfig(cfg Config) Config {
	if cfg.FrameSize <= 0 {
		cfg.FrameSize = defaultFrameSize
	}
	if cfg.Hop <= 0 || cfg.Hop > cfg.FrameSize {
		cfg.Hop = max(cfg.FrameSize/2, 1)
	}
	if cfg.SilenceThreshold <= 0 {
		cfg.SilenceThreshold = defaultSilenceThreshold
	}
	if cfg.PowerFloor <= 0 {
		cfg.PowerFloor = defaultPowerFloor
	}
	return cfg
}

// Report collects every metric for one estimate.
type Report struct {
	SNR     float64
	SISDR   float64
	LSD     float64
	Peak    float64
	Silent  bool
	Invalid bool
}

// Evaluate computes a Report for estimate against reference. Metrics of an
// invalid (NaN/Inf) estimate are left at NaN.
func Evaluate(reference, estimate []float64, cfg Config) (Report, error) {
	if len(reference) != len(estimate) {
		return Report{}, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(reference), len(estimate))
	}
	if len(reference) == 0 {
		return Report{}, ErrEmpty
	}

	cfg = normalizeConfig(cfg)

	if HasInvalid(estimate) {
		nan := math.NaN()
		return Report{SNR: nan, SISDR: nan, LSD: nan, Peak: nan, Invalid: true}, nil
	}

	lsd, err := LogSpectralDistance(reference, estimate, cfg)
	if err != nil {
		return Report{}, err
	}

	peak := vecmath.MaxAbs(estimate)
	return Report{
		SNR:    snr(reference, estimate, cfg.PowerFloor),
		SISDR:  sisdr(reference, estimate, cfg.PowerFloor),
		LSD:    lsd,
		Peak:   peak,
		Silent: peak < cfg.SilenceThreshold,
	}, nil
}

// SNR returns the signal-to-noise ratio of estimate in dB, treating
// reference - estimate as noise. Only the common prefix is compared.
func SNR(reference, estimate []float64) float64 {
	return snr(reference, estimate, defaultPowerFloor)
}

func snr(reference, estimate []float64, floor float64) float64 {
	n := min(len(reference), len(estimate))
	var noise float64
	for i := range n {
		e := reference[i] - estimate[i]
		noise += e * e
	}
	signal := core.Energy(reference[:n])
	return core.LinearPowerToDB((signal + floor) / (noise + floor))
}

// SISDR returns the scale-invariant signal-to-distortion ratio in dB. Only
// the common prefix is compared.
func SISDR(reference, estimate []float64) float64 {
	return sisdr(reference, estimate, defaultPowerFloor)
}

func sisdr(reference, estimate []float64, floor float64) float64 {
	n := min(len(reference), len(estimate))
	r, s := reference[:n], estimate[:n]

	alpha := vecmath.DotProduct(s, r) / (core.Energy(r) + floor)
	var target, distortion float64
	for i := range n {
		t := alpha * r[i]
		target += t * t
		d := s[i] - t
		distortion += d * d
	}
	return core.LinearPowerToDB((target + floor) / (distortion + floor))
}

// IsSilent reports whether the peak magnitude of y is below threshold.
// Empty input is silent.
func IsSilent(y []float64, threshold float64) bool {
	if len(y) == 0 {
		return true
	}
	return vecmath.MaxAbs(y) < threshold
}

// HasInvalid reports whether y contains NaN or Inf.
func HasInvalid(y []float64) bool {
	return !core.AllFinite(y)
}
