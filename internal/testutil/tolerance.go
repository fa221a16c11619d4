package testutil

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// RequireSequence fails t if got and want differ in length or if any
// element pair differs by more than eps (absolute tolerance).
func RequireSequence(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, eps)); diff != "" {
		t.Fatalf("sequence mismatch (-want +got):\n%s", diff)
	}
}

// RequirePrefixIdentical fails t unless a[:n] and b[:n] are bit-for-bit
// equal.
func RequirePrefixIdentical(t *testing.T, a, b []float64, n int) {
	t.Helper()
	if len(a) < n || len(b) < n {
		t.Fatalf("prefix %d longer than inputs (%d, %d)", n, len(a), len(b))
	}
	if diff := cmp.Diff(a[:n], b[:n]); diff != "" {
		t.Fatalf("prefix of length %d differs (-a +b):\n%s", n, diff)
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// MeanSquare returns the mean of x[i]^2 over x[from:].
func MeanSquare(x []float64, from int) float64 {
	if from >= len(x) {
		return 0
	}
	var sum float64
	for _, v := range x[from:] {
		sum += v * v
	}
	return sum / float64(len(x)-from)
}
