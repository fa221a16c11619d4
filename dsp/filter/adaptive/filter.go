package adaptive

import (
	"errors"
	"fmt"
	"math"
)

// DefaultEpsilon guards the normalized filters against division by zero on
// silent windows.
const DefaultEpsilon = 1e-8

var (
	// ErrInvalidParams is returned by constructors for out-of-range
	// hyperparameters.
	ErrInvalidParams = errors.New("adaptive: invalid parameters")

	// ErrLengthMismatch is returned when input and desired sequences differ
	// in length.
	ErrLengthMismatch = errors.New("adaptive: input and desired lengths differ")
)

// Filter is an online adaptive filter.
type Filter interface {
	// ProcessSample returns the prediction y[n] for the current index, then
	// adapts using the desired sample d and finally consumes the input
	// sample x. During warm-up it returns 0 without adapting.
	ProcessSample(x, d float64) float64

	// Reset discards all adapted state.
	Reset()

	// Order returns the feature window length, which is also the warm-up
	// length.
	Order() int
}

// Run resets f and filters x against the desired signal d, returning the
// prediction sequence. Inputs no longer than f.Order() produce an all-zero
// output.
func Run(f Filter, x, d []float64) ([]float64, error) {
	y, _, err := run(f, x, d, false)
	return y, err
}

// RunWithError is like Run but also returns the a priori error sequence
// e[n] = d[n] - y[n]. Warm-up entries of e are 0.
func RunWithError(f Filter, x, d []float64) (y, e []float64, err error) {
	return run(f, x, d, true)
}

func run(f Filter, x, d []float64, withError bool) (y, e []float64, err error) {
	if len(x) != len(d) {
		return nil, nil, fmt.Errorf("%w: len(x)=%d len(d)=%d", ErrLengthMismatch, len(x), len(d))
	}

	f.Reset()
	y = make([]float64, len(x))
	for n := range x {
		y[n] = f.ProcessSample(x[n], d[n])
	}

	if withError {
		e = make([]float64, len(x))
		for n := f.Order(); n < len(x); n++ {
			e[n] = d[n] - y[n]
		}
	}

	return y, e, nil
}

func validateStep(mu float64) error {
	if !(mu > 0) || math.IsInf(mu, 0) {
		return fmt.Errorf("%w: step size must be finite and > 0: %g", ErrInvalidParams, mu)
	}
	return nil
}

func validateOrder(name string, n int) error {
	if n < 1 {
		return fmt.Errorf("%w: %s must be >= 1: %d", ErrInvalidParams, name, n)
	}
	return nil
}

var errNilKernel = fmt.Errorf("%w: kernel must not be nil", ErrInvalidParams)
