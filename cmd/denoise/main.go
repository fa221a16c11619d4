// Command denoise compares adaptive filters on a synthetic noisy tone.
//
// Usage:
//
//	denoise [flags]
//
// A clean sine is corrupted with white noise at the requested SNR. Each
// selected filter receives the noisy signal as input and the clean one as
// desired response; the table reports how close its output gets to the
// clean signal.
//
// Examples:
//
//	denoise
//	denoise -filters lms,nlms -mu 0.05 -order 64
//	denoise -filters klms,nklms -kernel laplacian -sigma 5 -dict 8
//	denoise -list
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/cwbudde/algo-adaptive/dsp/core"
	"github.com/cwbudde/algo-adaptive/dsp/filter/adaptive"
	"github.com/cwbudde/algo-adaptive/dsp/filter/adaptive/kernel"
	"github.com/cwbudde/algo-adaptive/dsp/signal"
	"github.com/cwbudde/algo-adaptive/measure/denoise"
)

type settings struct {
	mu      float64
	order   int
	dict    int
	kernel  kernel.Type
	params  kernel.Params
	eps     float64
	snr     float64
	samples int
	rate    float64
	freq    float64
	seed    int64
}

type filterEntry struct {
	name  string
	usage string
	build func(s settings) (adaptive.Filter, error)
	label func(s settings) string
}

var registry = []filterEntry{
	{
		name:  "lms",
		usage: "least mean squares, -mu -order",
		build: func(s settings) (adaptive.Filter, error) {
			return adaptive.NewLMS(s.mu, s.order)
		},
		label: linearLabel,
	},
	{
		name:  "nlms",
		usage: "normalized LMS, -mu -order -eps",
		build: func(s settings) (adaptive.Filter, error) {
			return adaptive.NewNLMS(s.mu, s.order, adaptive.WithEpsilon(s.eps))
		},
		label: linearLabel,
	},
	{
		name:  "klms",
		usage: "kernel LMS, -mu -dict -kernel -sigma -degree -bias",
		build: func(s settings) (adaptive.Filter, error) {
			k, err := kernel.New(s.kernel, s.params)
			if err != nil {
				return nil, err
			}
			return adaptive.NewKLMS(s.mu, k, s.dict)
		},
		label: kernelLabel,
	},
	{
		name:  "nklms",
		usage: "normalized kernel LMS, -mu -dict -kernel -sigma -degree -bias -eps",
		build: func(s settings) (adaptive.Filter, error) {
			k, err := kernel.New(s.kernel, s.params)
			if err != nil {
				return nil, err
			}
			return adaptive.NewNKLMS(s.mu, k, s.dict, adaptive.WithEpsilon(s.eps))
		},
		label: kernelLabel,
	},
}

func linearLabel(s settings) string {
	return fmt.Sprintf("mu=%g order=%d", s.mu, s.order)
}

func kernelLabel(s settings) string {
	switch s.kernel {
	case kernel.TypePolynomial:
		return fmt.Sprintf("mu=%g dict=%d %s(d=%d,c=%g)", s.mu, s.dict, s.kernel, s.params.Degree, s.params.Bias)
	default:
		return fmt.Sprintf("mu=%g dict=%d %s(s=%g)", s.mu, s.dict, s.kernel, s.params.Sigma)
	}
}

func main() {
	filters := flag.String("filters", "lms,nlms,klms,nklms", "comma separated filters to run")
	mu := flag.Float64("mu", 0.05, "step size")
	order := flag.Int("order", 32, "tap count of lms and nlms")
	dict := flag.Int("dict", 16, "dictionary size of klms and nklms")
	kernelName := flag.String("kernel", "gaussian", "kernel of klms and nklms (gaussian, laplacian, polynomial)")
	sigma := flag.Float64("sigma", kernel.DefaultSigma, "gaussian/laplacian bandwidth")
	degree := flag.Int("degree", kernel.DefaultDegree, "polynomial degree")
	bias := flag.Float64("bias", kernel.DefaultBias, "polynomial bias")
	eps := flag.Float64("eps", adaptive.DefaultEpsilon, "regularization of nlms and nklms")
	snr := flag.Float64("snr", 5, "input signal-to-noise ratio in dB")
	samples := flag.Int("samples", 16000, "signal length in samples")
	rate := flag.Float64("rate", 16000, "sample rate in Hz")
	freq := flag.Float64("freq", 440, "tone frequency in Hz")
	seed := flag.Int64("seed", 1, "noise seed")
	list := flag.Bool("list", false, "list available filters")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: denoise [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Runs adaptive filters on a noisy sine and prints quality metrics.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  denoise -filters lms,nlms -mu 0.05 -order 64\n")
		fmt.Fprintf(os.Stderr, "  denoise -filters klms -kernel laplacian -sigma 5\n")
		fmt.Fprintf(os.Stderr, "  denoise -list\n")
	}
	flag.Parse()

	if *list {
		printList(os.Stdout)
		return
	}

	kt, err := kernel.ParseType(*kernelName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	entries := resolveEntries(strings.Split(*filters, ","))
	if len(entries) == 0 {
		fmt.Fprintf(os.Stderr, "error: no matching filters\n")
		os.Exit(1)
	}

	s := settings{
		mu:      *mu,
		order:   *order,
		dict:    *dict,
		kernel:  kt,
		params:  kernel.Params{Sigma: *sigma, Degree: *degree, Bias: *bias},
		eps:     *eps,
		snr:     *snr,
		samples: *samples,
		rate:    *rate,
		freq:    *freq,
		seed:    *seed,
	}

	clean, noisy, err := synthesize(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	results := runAll(entries, s, clean, noisy)
	if err := printResults(os.Stdout, denoise.SNR(clean, noisy), results); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printList(w io.Writer) {
	for _, e := range registry {
		fmt.Fprintf(w, "%-6s %s\n", e.name, e.usage)
	}
}

func resolveEntries(names []string) []filterEntry {
	byName := make(map[string]filterEntry, len(registry))
	for _, e := range registry {
		byName[e.name] = e
	}

	seen := make(map[string]bool, len(names))
	var result []filterEntry
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || seen[name] {
			continue
		}
		e, ok := byName[name]
		if !ok {
			fmt.Fprintf(os.Stderr, "warning: unknown filter %q (use -list to see available)\n", name)
			continue
		}
		seen[name] = true
		result = append(result, e)
	}
	return result
}

// synthesize returns a clean tone and the same tone with white noise mixed
// in at s.snr.
func synthesize(s settings) (clean, noisy []float64, err error) {
	g := signal.NewGenerator(
		[]core.ProcessorOption{core.WithSampleRate(s.rate)},
		signal.WithSeed(s.seed),
	)
	clean, err = g.Sine(s.freq, 0.5, s.samples)
	if err != nil {
		return nil, nil, err
	}
	noise, err := g.WhiteNoise(1, s.samples)
	if err != nil {
		return nil, nil, err
	}
	noisy, err = signal.MixAtSNR(clean, noise, s.snr)
	if err != nil {
		return nil, nil, err
	}
	return clean, noisy, nil
}

type result struct {
	entry   filterEntry
	params  string
	report  denoise.Report
	elapsed time.Duration
	err     error
}

// runAll runs every entry on its own goroutine. Each goroutine owns its
// filter; only the shared read-only inputs cross goroutines.
func runAll(entries []filterEntry, s settings, clean, noisy []float64) []result {
	results := make([]result, len(entries))

	var wg sync.WaitGroup
	for i, e := range entries {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = runOne(e, s, clean, noisy)
		}()
	}
	wg.Wait()

	return results
}

func runOne(e filterEntry, s settings, clean, noisy []float64) result {
	r := result{entry: e, params: e.label(s)}

	f, err := e.build(s)
	if err != nil {
		r.err = err
		return r
	}

	start := time.Now()
	y, err := adaptive.Run(f, noisy, clean)
	r.elapsed = time.Since(start)
	if err != nil {
		r.err = err
		return r
	}

	r.report, r.err = denoise.Evaluate(clean, y, denoise.Config{})
	return r
}

func printResults(w io.Writer, inputSNR float64, results []result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Filter\tParams\tInput SNR [dB]\tSNR [dB]\tSI-SDR [dB]\tLSD [dB]\tTime\tFlags\n"); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "------\t------\t--------------\t--------\t-----------\t--------\t----\t-----\n"); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}

	var failed int
	for _, r := range results {
		if r.err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", r.entry.name, r.err)
			continue
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%.2f\t%s\t%s\t%s\t%s\t%s\n",
			r.entry.name,
			r.params,
			inputSNR,
			formatDB(r.report.SNR),
			formatDB(r.report.SISDR),
			formatDB(r.report.LSD),
			r.elapsed.Round(time.Microsecond),
			flags(r.report),
		); err != nil {
			return fmt.Errorf("failed to write output row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	if failed == len(results) && failed > 0 {
		return fmt.Errorf("all %d filters failed", failed)
	}
	return nil
}

func formatDB(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}

func flags(r denoise.Report) string {
	switch {
	case r.Invalid:
		return "invalid"
	case r.Silent:
		return "silent"
	default:
		return ""
	}
}
