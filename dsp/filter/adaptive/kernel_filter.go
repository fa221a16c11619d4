package adaptive

import (
	"github.com/cwbudde/algo-adaptive/dsp/delay"
	"github.com/cwbudde/algo-adaptive/dsp/filter/adaptive/kernel"
)

// coefficientRule returns the coefficient stored with window x_n for error e.
type coefficientRule func(mu, e float64, window []float64, k kernel.Kernel) float64

// kernelFilter is the recurrence shared by KLMS and NKLMS:
//
//	y = dict.Predict(x_n)
//	e = d - y
//	dict.Insert(rule(mu, e, x_n), x_n)
//	dict.EnforceCapacity(maxDictSize)
type kernelFilter struct {
	mu      float64
	kernel  kernel.Kernel
	maxSize int
	dict    *Dictionary
	window  []float64
	line    *delay.Line
	rule    coefficientRule
}

func newKernelFilter(mu float64, k kernel.Kernel, maxDictSize int, cfg config, rule coefficientRule) (kernelFilter, error) {
	if err := validateStep(mu); err != nil {
		return kernelFilter{}, err
	}
	if k == nil {
		return kernelFilter{}, errNilKernel
	}
	if err := validateOrder("max dictionary size", maxDictSize); err != nil {
		return kernelFilter{}, err
	}

	order := maxDictSize
	if cfg.windowLength > 0 {
		order = cfg.windowLength
	}

	dict, err := NewDictionary(maxDictSize, order)
	if err != nil {
		return kernelFilter{}, err
	}
	line, err := delay.New(order)
	if err != nil {
		return kernelFilter{}, err
	}

	return kernelFilter{
		mu:      mu,
		kernel:  k,
		maxSize: maxDictSize,
		dict:    dict,
		window:  make([]float64, order),
		line:    line,
		rule:    rule,
	}, nil
}

// ProcessSample implements Filter.
func (f *kernelFilter) ProcessSample(x, d float64) float64 {
	if !f.line.Full() {
		f.line.Write(x)
		return 0
	}

	f.line.Taps(f.window)
	y := f.dict.Predict(f.window, f.kernel)
	e := d - y

	f.dict.Insert(f.rule(f.mu, e, f.window, f.kernel), f.window)
	f.dict.EnforceCapacity(f.maxSize)

	f.line.Write(x)
	return y
}

// Reset empties the dictionary and the delay line.
func (f *kernelFilter) Reset() {
	f.dict.Reset()
	f.line.Reset()
}

// Order returns the feature window length.
func (f *kernelFilter) Order() int {
	return len(f.window)
}

// StepSize returns mu.
func (f *kernelFilter) StepSize() float64 {
	return f.mu
}

// Kernel returns the kernel function.
func (f *kernelFilter) Kernel() kernel.Kernel {
	return f.kernel
}

// DictionarySize returns the current number of dictionary entries.
func (f *kernelFilter) DictionarySize() int {
	return f.dict.Len()
}

// MaxDictionarySize returns the dictionary capacity.
func (f *kernelFilter) MaxDictionarySize() int {
	return f.maxSize
}

// KLMS is the kernel least-mean-squares filter with a bounded FIFO
// dictionary.
type KLMS struct {
	kernelFilter
}

// NewKLMS returns a KLMS filter. The feature window length equals
// maxDictSize unless WithWindowLength is given.
func NewKLMS(mu float64, k kernel.Kernel, maxDictSize int, opts ...Option) (*KLMS, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	kf, err := newKernelFilter(mu, k, maxDictSize, cfg, plainCoefficient)
	if err != nil {
		return nil, err
	}
	return &KLMS{kernelFilter: kf}, nil
}

func plainCoefficient(mu, e float64, _ []float64, _ kernel.Kernel) float64 {
	return mu * e
}

// NKLMS is KLMS with each new coefficient normalized by the kernel
// self-similarity of its window.
type NKLMS struct {
	kernelFilter
	epsilon float64
}

// NewNKLMS returns an NKLMS filter. Epsilon defaults to DefaultEpsilon.
func NewNKLMS(mu float64, k kernel.Kernel, maxDictSize int, opts ...Option) (*NKLMS, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	kf, err := newKernelFilter(mu, k, maxDictSize, cfg, normalizedCoefficient(cfg.epsilon))
	if err != nil {
		return nil, err
	}
	return &NKLMS{kernelFilter: kf, epsilon: cfg.epsilon}, nil
}

// Epsilon returns the regularization constant.
func (f *NKLMS) Epsilon() float64 {
	return f.epsilon
}

func normalizedCoefficient(eps float64) coefficientRule {
	return func(mu, e float64, window []float64, k kernel.Kernel) float64 {
		return mu * e / (eps + k.Evaluate(window, window))
	}
}
