// Package adaptive provides online adaptive filters that estimate a desired
// signal d from an observed signal x, one sample at a time.
//
// Four filters are available:
//
//	LMS    w <- w + mu*e*x_n
//	NLMS   w <- w + 2*(mu/(x_n.x_n + eps))*e*x_n
//	KLMS   dictionary <- append(mu*e, x_n)
//	NKLMS  dictionary <- append(mu*e/(eps + k(x_n, x_n)), x_n)
//
// x_n is the feature window x[n-1], x[n-2], ..., x[n-p] (most recent first)
// and e = d[n] - y[n] is the a priori error. Every filter predicts y[n]
// before it sees d[n], so the recurrence is strictly causal. For the first p
// samples (the warm-up) no window exists yet and the output is exactly 0.
//
// The kernel filters keep a bounded FIFO [Dictionary] of past windows, so
// memory stays O(maxDictSize) regardless of the input length.
//
// Filters are stateful and not safe for concurrent use. Independent
// instances share nothing and may run in parallel.
package adaptive
