// Package kernel provides positive-definite similarity functions over
// equal-length feature windows, used by the kernel adaptive filters in
// package adaptive.
//
// Three kernels are available:
//
//	Gaussian:   k(a, b) = exp(-||a-b||^2 / (2*sigma^2))
//	Laplacian:  k(a, b) = exp(-||a-b|| / sigma)
//	Polynomial: k(a, b) = (a.b + c)^d
//
// All kernels are symmetric in their arguments. Building with the fastmath
// tag replaces exp and sqrt with the algo-approx approximations.
package kernel
