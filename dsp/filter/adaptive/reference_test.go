package adaptive

import "github.com/cwbudde/algo-adaptive/dsp/filter/adaptive/kernel"

// The reference filters below apply the recurrences literally, with
// per-step window slices and an unbounded slice dictionary trimmed from the
// front, so the ring-buffer implementation can be checked against them.

func refWindow(x []float64, n, p int) []float64 {
	w := make([]float64, p)
	for k := range p {
		w[k] = x[n-1-k]
	}
	return w
}

func refDot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func refLMS(x, d []float64, mu float64, p int) []float64 {
	y := make([]float64, len(x))
	w := make([]float64, p)
	for n := p; n < len(x); n++ {
		xn := refWindow(x, n, p)
		y[n] = refDot(w, xn)
		e := d[n] - y[n]
		for k := range w {
			w[k] += mu * e * xn[k]
		}
	}
	return y
}

func refNLMS(x, d []float64, mu float64, p int, eps float64) []float64 {
	y := make([]float64, len(x))
	w := make([]float64, p)
	for n := p; n < len(x); n++ {
		xn := refWindow(x, n, p)
		norm := refDot(xn, xn) + eps
		y[n] = refDot(w, xn)
		e := d[n] - y[n]
		for k := range w {
			w[k] += 2 * (mu / norm) * e * xn[k]
		}
	}
	return y
}

func refKernel(x, d []float64, mu float64, k kernel.Kernel, maxDict int, normalized bool, eps float64) []float64 {
	p := maxDict
	y := make([]float64, len(x))
	var alpha []float64
	var dict [][]float64
	for n := p; n < len(x); n++ {
		xn := refWindow(x, n, p)
		for i := range dict {
			y[n] += alpha[i] * k.Evaluate(xn, dict[i])
		}
		e := d[n] - y[n]
		a := mu * e
		if normalized {
			a = mu * e / (eps + k.Evaluate(xn, xn))
		}
		alpha = append(alpha, a)
		dict = append(dict, xn)
		if len(dict) > maxDict {
			alpha = alpha[1:]
			dict = dict[1:]
		}
	}
	return y
}
