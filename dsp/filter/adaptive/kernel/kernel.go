package kernel

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// ErrInvalidParams is returned when kernel parameters are out of range.
var ErrInvalidParams = errors.New("kernel: invalid parameters")

// Default parameters.
const (
	DefaultSigma  = 1.4
	DefaultDegree = 2
	DefaultBias   = 10.0
)

// Kernel evaluates the similarity of two equal-length windows.
type Kernel interface {
	Evaluate(a, b []float64) float64
}

// Type selects a kernel family.
type Type int

const (
	TypeGaussian Type = iota
	TypeLaplacian
	TypePolynomial
)

var typeNames = [...]string{
	TypeGaussian:   "gaussian",
	TypeLaplacian:  "laplacian",
	TypePolynomial: "polynomial",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// ParseType maps a case-insensitive name to a Type.
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range typeNames {
		if n == name {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown kernel %q", ErrInvalidParams, name)
}

// Params bundles the parameters of every kernel family. Only the fields
// relevant to the selected Type are read.
type Params struct {
	Sigma  float64
	Degree int
	Bias   float64
}

// DefaultParams returns sigma 1.4, degree 2 and bias 10.
func DefaultParams() Params {
	return Params{
		Sigma:  DefaultSigma,
		Degree: DefaultDegree,
		Bias:   DefaultBias,
	}
}

// New constructs the kernel of type t from p.
func New(t Type, p Params) (Kernel, error) {
	switch t {
	case TypeGaussian:
		return NewGaussian(p.Sigma)
	case TypeLaplacian:
		return NewLaplacian(p.Sigma)
	case TypePolynomial:
		return NewPolynomial(p.Degree, p.Bias)
	default:
		return nil, fmt.Errorf("%w: unknown kernel type %d", ErrInvalidParams, int(t))
	}
}

// Gaussian is the radial basis kernel exp(-||a-b||^2 / (2*sigma^2)).
type Gaussian struct {
	sigma      float64
	twoSigmaSq float64
}

// NewGaussian returns a Gaussian kernel with bandwidth sigma > 0.
func NewGaussian(sigma float64) (Gaussian, error) {
	if !(sigma > 0) || math.IsInf(sigma, 0) {
		return Gaussian{}, fmt.Errorf("%w: gaussian sigma must be > 0: %g", ErrInvalidParams, sigma)
	}
	return Gaussian{sigma: sigma, twoSigmaSq: 2 * sigma * sigma}, nil
}

// Sigma returns the kernel bandwidth.
func (g Gaussian) Sigma() float64 { return g.sigma }

// Evaluate implements Kernel.
func (g Gaussian) Evaluate(a, b []float64) float64 {
	return mathExp(-squaredDistance(a, b) / g.twoSigmaSq)
}

// Laplacian is the kernel exp(-||a-b|| / sigma).
type Laplacian struct {
	sigma float64
}

// NewLaplacian returns a Laplacian kernel with bandwidth sigma > 0.
func NewLaplacian(sigma float64) (Laplacian, error) {
	if !(sigma > 0) || math.IsInf(sigma, 0) {
		return Laplacian{}, fmt.Errorf("%w: laplacian sigma must be > 0: %g", ErrInvalidParams, sigma)
	}
	return Laplacian{sigma: sigma}, nil
}

// Sigma returns the kernel bandwidth.
func (l Laplacian) Sigma() float64 { return l.sigma }

// Evaluate implements Kernel.
func (l Laplacian) Evaluate(a, b []float64) float64 {
	return mathExp(-mathSqrt(squaredDistance(a, b)) / l.sigma)
}

// Polynomial is the kernel (a.b + bias)^degree.
type Polynomial struct {
	degree int
	bias   float64
}

// NewPolynomial returns a polynomial kernel with integer degree >= 1.
func NewPolynomial(degree int, bias float64) (Polynomial, error) {
	if degree < 1 {
		return Polynomial{}, fmt.Errorf("%w: polynomial degree must be >= 1: %d", ErrInvalidParams, degree)
	}
	if math.IsNaN(bias) || math.IsInf(bias, 0) {
		return Polynomial{}, fmt.Errorf("%w: polynomial bias must be finite: %g", ErrInvalidParams, bias)
	}
	return Polynomial{degree: degree, bias: bias}, nil
}

// Degree returns the polynomial degree.
func (p Polynomial) Degree() int { return p.degree }

// Bias returns the additive constant.
func (p Polynomial) Bias() float64 { return p.bias }

// Evaluate implements Kernel.
func (p Polynomial) Evaluate(a, b []float64) float64 {
	return powInt(vecmath.DotProduct(a, b)+p.bias, p.degree)
}

// squaredDistance returns ||a-b||^2 over the shorter of the two slices.
func squaredDistance(a, b []float64) float64 {
	n := min(len(a), len(b))
	var sum float64
	for i := range n {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// powInt computes x^n for n >= 1 by repeated squaring.
func powInt(x float64, n int) float64 {
	result := 1.0
	for n > 0 {
		if n&1 == 1 {
			result *= x
		}
		x *= x
		n >>= 1
	}
	return result
}
