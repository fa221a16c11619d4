package denoise_test

import (
	"fmt"

	"github.com/cwbudde/algo-adaptive/measure/denoise"
)

func ExampleSNR() {
	ref := []float64{1, -1, 1, -1}
	est := []float64{0.9, -0.9, 0.9, -0.9}
	fmt.Printf("%.1f dB\n", denoise.SNR(ref, est))

	// Output:
	// 20.0 dB
}
