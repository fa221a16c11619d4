package adaptive

import (
	"fmt"

	"github.com/cwbudde/algo-adaptive/dsp/filter/adaptive/kernel"
)

// Dictionary is a fixed-capacity FIFO of (coefficient, window) pairs backed
// by a ring buffer. Windows are stored in one flat arena, so Insert and
// eviction are O(1) and never allocate after construction.
//
// Index 0 always refers to the oldest entry.
type Dictionary struct {
	coeffs  []float64
	windows []float64
	dim     int
	head    int
	size    int
}

// NewDictionary returns an empty dictionary holding up to capacity windows
// of length dim.
func NewDictionary(capacity, dim int) (*Dictionary, error) {
	if err := validateOrder("dictionary capacity", capacity); err != nil {
		return nil, err
	}
	if err := validateOrder("window length", dim); err != nil {
		return nil, err
	}

	return &Dictionary{
		coeffs:  make([]float64, capacity),
		windows: make([]float64, capacity*dim),
		dim:     dim,
	}, nil
}

// Len returns the number of entries.
func (d *Dictionary) Len() int { return d.size }

// Capacity returns the maximum number of entries.
func (d *Dictionary) Capacity() int { return len(d.coeffs) }

// Dim returns the window length.
func (d *Dictionary) Dim() int { return d.dim }

func (d *Dictionary) slot(i int) int {
	return (d.head + i) % len(d.coeffs)
}

func (d *Dictionary) window(s int) []float64 {
	return d.windows[s*d.dim : (s+1)*d.dim : (s+1)*d.dim]
}

// At returns entry i, where 0 is the oldest. The returned window aliases
// internal storage and must not be modified.
func (d *Dictionary) At(i int) (coeff float64, window []float64) {
	if i < 0 || i >= d.size {
		panic(fmt.Sprintf("adaptive: dictionary index %d out of range [0,%d)", i, d.size))
	}
	s := d.slot(i)
	return d.coeffs[s], d.window(s)
}

// Predict returns sum(coeff_i * k(x, window_i)) over all entries, oldest
// first, or 0 when the dictionary is empty.
func (d *Dictionary) Predict(x []float64, k kernel.Kernel) float64 {
	var y float64
	for i := range d.size {
		s := d.slot(i)
		y += d.coeffs[s] * k.Evaluate(x, d.window(s))
	}
	return y
}

// Insert appends (coeff, window) at the tail. The window is copied. When the
// dictionary is already at capacity the oldest entry is evicted to make
// room. Panics if len(window) != Dim().
func (d *Dictionary) Insert(coeff float64, window []float64) {
	if len(window) != d.dim {
		panic(fmt.Sprintf("adaptive: window length %d, dictionary expects %d", len(window), d.dim))
	}

	if d.size == len(d.coeffs) {
		d.evictHead()
	}

	s := d.slot(d.size)
	d.coeffs[s] = coeff
	copy(d.window(s), window)
	d.size++
}

// EnforceCapacity evicts the oldest entries until Len() <= maxSize.
func (d *Dictionary) EnforceCapacity(maxSize int) {
	for d.size > max(maxSize, 0) {
		d.evictHead()
	}
}

func (d *Dictionary) evictHead() {
	d.coeffs[d.head] = 0
	d.head = d.slot(1)
	d.size--
}

// Reset removes all entries.
func (d *Dictionary) Reset() {
	for i := range d.coeffs {
		d.coeffs[i] = 0
	}
	d.head = 0
	d.size = 0
}
