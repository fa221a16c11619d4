package signal_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-adaptive/dsp/core"
	"github.com/cwbudde/algo-adaptive/dsp/signal"
)

func ExampleGenerator_Sine() {
	g := signal.NewGenerator([]core.ProcessorOption{core.WithSampleRate(1000)})
	x, err := g.Sine(250, 1, 5)
	if err != nil {
		panic(err)
	}
	if math.Abs(x[4]) < 1e-12 {
		x[4] = 0
	}

	fmt.Printf("%.0f %.0f %.0f %.0f %.0f\n", x[0], x[1], x[2], x[3], x[4])

	// Output:
	// 0 1 0 -1 0
}

func ExampleMixAtSNR() {
	clean := []float64{1, -1, 1, -1}
	noise := []float64{1, 1}

	mixed, err := signal.MixAtSNR(clean, noise, 20)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.2f\n", mixed)

	// Output:
	// [1.10 -0.90 1.10 -0.90]
}
