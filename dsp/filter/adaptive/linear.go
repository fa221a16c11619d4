package adaptive

import (
	"github.com/cwbudde/algo-adaptive/dsp/delay"
	"github.com/cwbudde/algo-vecmath"
)

// stepRule returns the scale s of the weight update w <- w + s*x_n.
type stepRule func(mu, e float64, window []float64) float64

// linear is the transversal-filter recurrence shared by LMS and NLMS.
type linear struct {
	mu      float64
	weights []float64
	window  []float64
	scratch []float64
	line    *delay.Line
	rule    stepRule
}

func newLinear(mu float64, order int, rule stepRule) (linear, error) {
	if err := validateStep(mu); err != nil {
		return linear{}, err
	}
	if err := validateOrder("filter order", order); err != nil {
		return linear{}, err
	}

	line, err := delay.New(order)
	if err != nil {
		return linear{}, err
	}

	return linear{
		mu:      mu,
		weights: make([]float64, order),
		window:  make([]float64, order),
		scratch: make([]float64, order),
		line:    line,
		rule:    rule,
	}, nil
}

// ProcessSample implements Filter.
//
//	y = w . x_n
//	e = d - y
//	w <- w + rule(mu, e, x_n) * x_n
func (f *linear) ProcessSample(x, d float64) float64 {
	if !f.line.Full() {
		f.line.Write(x)
		return 0
	}

	f.line.Taps(f.window)
	y := vecmath.DotProduct(f.weights, f.window)
	e := d - y

	// A zero step leaves w unchanged.
	if s := f.rule(f.mu, e, f.window); s != 0 {
		vecmath.ScaleBlock(f.scratch, f.window, s)
		vecmath.AddBlockInPlace(f.weights, f.scratch)
	}

	f.line.Write(x)
	return y
}

// Reset zeroes the weights and the delay line.
func (f *linear) Reset() {
	for i := range f.weights {
		f.weights[i] = 0
	}
	f.line.Reset()
}

// Order returns the number of taps.
func (f *linear) Order() int {
	return len(f.weights)
}

// StepSize returns mu.
func (f *linear) StepSize() float64 {
	return f.mu
}

// Weights returns a copy of the current weight vector.
func (f *linear) Weights() []float64 {
	w := make([]float64, len(f.weights))
	copy(w, f.weights)
	return w
}

// LMS is the least-mean-squares adaptive transversal filter.
type LMS struct {
	linear
}

// NewLMS returns an LMS filter with step size mu > 0 and order taps.
//
// LMS diverges when mu is large relative to the input power; choosing a
// stable mu is the caller's responsibility.
func NewLMS(mu float64, order int) (*LMS, error) {
	l, err := newLinear(mu, order, lmsStep)
	if err != nil {
		return nil, err
	}
	return &LMS{linear: l}, nil
}

func lmsStep(mu, e float64, _ []float64) float64 {
	return mu * e
}

// NLMS is the normalized LMS filter. The step is divided by the energy of
// the feature window plus epsilon, which bounds the effective step size for
// input of varying amplitude.
type NLMS struct {
	linear
	epsilon float64
}

// NewNLMS returns an NLMS filter with step size mu > 0 and order taps.
// Epsilon defaults to DefaultEpsilon; see WithEpsilon.
func NewNLMS(mu float64, order int, opts ...Option) (*NLMS, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	l, err := newLinear(mu, order, nlmsStep(cfg.epsilon))
	if err != nil {
		return nil, err
	}
	return &NLMS{linear: l, epsilon: cfg.epsilon}, nil
}

// Epsilon returns the regularization constant.
func (f *NLMS) Epsilon() float64 {
	return f.epsilon
}

func nlmsStep(eps float64) stepRule {
	return func(mu, e float64, window []float64) float64 {
		norm := vecmath.DotProduct(window, window) + eps
		return 2 * (mu / norm) * e
	}
}
