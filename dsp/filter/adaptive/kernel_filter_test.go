package adaptive

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/cwbudde/algo-adaptive/dsp/filter/adaptive/kernel"
	"github.com/cwbudde/algo-adaptive/internal/testutil"
)

func mustKernel(t testing.TB, typ kernel.Type, p kernel.Params) kernel.Kernel {
	t.Helper()
	k, err := kernel.New(typ, p)
	if err != nil {
		t.Fatal(err)
	}
	return k
}

func TestKLMSTrace(t *testing.T) {
	g := mustKernel(t, kernel.TypeGaussian, kernel.Params{Sigma: 1})

	f, err := NewKLMS(0.5, g, 1)
	if err != nil {
		t.Fatal(err)
	}
	y, err := Run(f, []float64{1, 2, 3}, []float64{0, 1, 0})
	if err != nil {
		t.Fatal(err)
	}

	// n=1: window [1], e=1, insert 0.5. n=2: window [2], y = 0.5*exp(-1/2).
	testutil.RequireSequence(t, y, []float64{0, 0, 0.5 * math.Exp(-0.5)}, eps)
}

func TestNKLMSTrace(t *testing.T) {
	p := mustKernel(t, kernel.TypePolynomial, kernel.Params{Degree: 2, Bias: 1})

	f, err := NewNKLMS(0.5, p, 1)
	if err != nil {
		t.Fatal(err)
	}
	y, err := Run(f, []float64{1, 2, 3}, []float64{0, 1, 0})
	if err != nil {
		t.Fatal(err)
	}

	// n=1: k([1],[1]) = 4, coefficient 0.5/(eps+4). n=2: y = coefficient * (2+1)^2.
	want := 0.5 / (DefaultEpsilon + 4) * 9
	testutil.RequireSequence(t, y, []float64{0, 0, want}, eps)
}

func TestKernelFiltersMatchReference(t *testing.T) {
	clean := testutil.DeterministicSine(300, 16000, 0.4, 400)
	x := testutil.Add(clean, testutil.DeterministicNoise(21, 0.1, 400))

	kernels := map[string]kernel.Kernel{
		"gaussian":   mustKernel(t, kernel.TypeGaussian, kernel.Params{Sigma: 1.4}),
		"laplacian":  mustKernel(t, kernel.TypeLaplacian, kernel.Params{Sigma: 5}),
		"polynomial": mustKernel(t, kernel.TypePolynomial, kernel.Params{Degree: 2, Bias: 1}),
	}

	for name, k := range kernels {
		for _, size := range []int{1, 3, 8} {
			t.Run(fmt.Sprintf("%s/dict=%d", name, size), func(t *testing.T) {
				klms, err := NewKLMS(0.01, k, size)
				if err != nil {
					t.Fatal(err)
				}
				got, err := Run(klms, x, clean)
				if err != nil {
					t.Fatal(err)
				}
				testutil.RequireSequence(t, got, refKernel(x, clean, 0.01, k, size, false, 0), 1e-9)

				nklms, err := NewNKLMS(0.1, k, size)
				if err != nil {
					t.Fatal(err)
				}
				got, err = Run(nklms, x, clean)
				if err != nil {
					t.Fatal(err)
				}
				testutil.RequireSequence(t, got, refKernel(x, clean, 0.1, k, size, true, DefaultEpsilon), 1e-9)
			})
		}
	}
}

func TestKernelFilterBoundedMemory(t *testing.T) {
	g := mustKernel(t, kernel.TypeGaussian, kernel.DefaultParams())
	x := []float64{0.1, -0.2, 0.3, 0.5, -0.4}
	d := []float64{0, 0.1, 0.2, 0.3, 0.4}

	klms, err := NewKLMS(0.6, g, 2)
	if err != nil {
		t.Fatal(err)
	}
	nklms, err := NewNKLMS(0.6, g, 2)
	if err != nil {
		t.Fatal(err)
	}

	for name, f := range map[string]interface {
		Filter
		DictionarySize() int
	}{"klms": klms, "nklms": nklms} {
		t.Run(name, func(t *testing.T) {
			f.Reset()
			want := []int{0, 0, 1, 2, 2}
			for n := range x {
				f.ProcessSample(x[n], d[n])
				if got := f.DictionarySize(); got != want[n] {
					t.Fatalf("after sample %d: DictionarySize = %d, want %d", n, got, want[n])
				}
				if f.DictionarySize() > 2 {
					t.Fatalf("after sample %d: DictionarySize = %d exceeds 2", n, f.DictionarySize())
				}
			}
		})
	}
}

func TestKernelFilterCapacityLongRun(t *testing.T) {
	l := mustKernel(t, kernel.TypeLaplacian, kernel.DefaultParams())
	x := testutil.DeterministicNoise(4, 0.5, 2000)

	f, err := NewKLMS(0.2, l, 8)
	if err != nil {
		t.Fatal(err)
	}
	for n := range x {
		f.ProcessSample(x[n], x[n])
		if f.DictionarySize() > f.MaxDictionarySize() {
			t.Fatalf("step %d: DictionarySize %d > %d", n, f.DictionarySize(), f.MaxDictionarySize())
		}
	}
	if f.DictionarySize() != 8 {
		t.Fatalf("final DictionarySize = %d, want 8", f.DictionarySize())
	}
}

func TestKernelFilterZeroErrorFixedPoint(t *testing.T) {
	g := mustKernel(t, kernel.TypeGaussian, kernel.Params{Sigma: 2})
	x := []float64{0.3, -0.1, 0.7, 0.2}

	klms, err := NewKLMS(0.5, g, 2)
	if err != nil {
		t.Fatal(err)
	}
	nklms, err := NewNKLMS(0.5, g, 2)
	if err != nil {
		t.Fatal(err)
	}

	for name, f := range map[string]interface {
		Filter
		DictionarySize() int
	}{"klms": klms, "nklms": nklms} {
		t.Run(name, func(t *testing.T) {
			// d == y == 0 at every step: every inserted coefficient is 0,
			// so the expansion stays identically zero.
			f.Reset()
			for n := range x {
				if y := f.ProcessSample(x[n], 0); y != 0 {
					t.Fatalf("step %d: y = %v, want 0", n, y)
				}
			}
			if f.DictionarySize() != 2 {
				t.Fatalf("DictionarySize = %d, want 2", f.DictionarySize())
			}
		})
	}
}

func TestKLMSWindowLength(t *testing.T) {
	g := mustKernel(t, kernel.TypeGaussian, kernel.DefaultParams())

	f, err := NewKLMS(0.5, g, 4, WithWindowLength(2))
	if err != nil {
		t.Fatal(err)
	}
	if f.Order() != 2 || f.MaxDictionarySize() != 4 {
		t.Fatalf("Order = %d, MaxDictionarySize = %d", f.Order(), f.MaxDictionarySize())
	}

	x := testutil.DeterministicNoise(8, 1, 20)
	y, err := Run(f, x, x)
	if err != nil {
		t.Fatal(err)
	}
	if y[0] != 0 || y[1] != 0 {
		t.Fatalf("warm-up outputs %v, want zeros", y[:2])
	}
	if y[3] == 0 {
		t.Fatal("no prediction after warm-up")
	}
	if f.DictionarySize() != 4 {
		t.Fatalf("DictionarySize = %d, want 4", f.DictionarySize())
	}
}

func TestNKLMSSilentInput(t *testing.T) {
	// Polynomial with zero bias has k(0, 0) = 0; epsilon keeps the update finite.
	p := mustKernel(t, kernel.TypePolynomial, kernel.Params{Degree: 2, Bias: 0})

	f, err := NewNKLMS(0.5, p, 4)
	if err != nil {
		t.Fatal(err)
	}
	y, err := Run(f, make([]float64, 32), testutil.DeterministicNoise(2, 1e-9, 32))
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireFinite(t, y)
}

func TestKernelFilterValidation(t *testing.T) {
	g := mustKernel(t, kernel.TypeGaussian, kernel.DefaultParams())

	tests := []struct {
		name string
		fn   func() error
	}{
		{"klms zero mu", func() error { _, err := NewKLMS(0, g, 4); return err }},
		{"klms nil kernel", func() error { _, err := NewKLMS(0.1, nil, 4); return err }},
		{"klms zero dict", func() error { _, err := NewKLMS(0.1, g, 0); return err }},
		{"klms negative window", func() error { _, err := NewKLMS(0.1, g, 4, WithWindowLength(-2)); return err }},
		{"nklms zero epsilon", func() error { _, err := NewNKLMS(0.1, g, 4, WithEpsilon(0)); return err }},
		{"nklms inf mu", func() error { _, err := NewNKLMS(math.Inf(1), g, 4); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.Is(err, ErrInvalidParams) {
				t.Fatalf("err = %v, want ErrInvalidParams", err)
			}
		})
	}
}

func TestKernelFilterAccessors(t *testing.T) {
	g := mustKernel(t, kernel.TypeGaussian, kernel.DefaultParams())
	f, err := NewNKLMS(0.7, g, 6, WithEpsilon(1e-3))
	if err != nil {
		t.Fatal(err)
	}
	if f.Order() != 6 || f.MaxDictionarySize() != 6 {
		t.Fatalf("Order = %d, MaxDictionarySize = %d", f.Order(), f.MaxDictionarySize())
	}
	if f.StepSize() != 0.7 || f.Epsilon() != 1e-3 {
		t.Fatalf("StepSize = %v, Epsilon = %v", f.StepSize(), f.Epsilon())
	}
	if f.Kernel() != g {
		t.Fatalf("Kernel = %v, want %v", f.Kernel(), g)
	}
}

func BenchmarkKLMS(b *testing.B) {
	g := mustKernel(b, kernel.TypeGaussian, kernel.DefaultParams())
	for _, size := range []int{8, 32} {
		f, err := NewKLMS(0.5, g, size)
		if err != nil {
			b.Fatal(err)
		}
		x := testutil.DeterministicNoise(1, 1, 4096)
		b.Run(fmt.Sprintf("dict=%d", size), func(b *testing.B) {
			i := 0
			for b.Loop() {
				f.ProcessSample(x[i&4095], x[(i+1)&4095])
				i++
			}
		})
	}
}
