package adaptive

import (
	"fmt"
	"math"
)

type config struct {
	epsilon      float64
	windowLength int
}

// Option configures a filter at construction time.
type Option func(*config)

// WithEpsilon sets the regularization constant of the normalized filters.
// It must be > 0. Unnormalized filters ignore it.
func WithEpsilon(eps float64) Option {
	return func(c *config) {
		c.epsilon = eps
	}
}

// WithWindowLength sets the feature window length of the kernel filters.
// By default it equals the dictionary capacity. Linear filters ignore it.
func WithWindowLength(n int) Option {
	return func(c *config) {
		c.windowLength = n
	}
}

func applyOptions(opts []Option) (config, error) {
	cfg := config{epsilon: DefaultEpsilon}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if !(cfg.epsilon > 0) || math.IsInf(cfg.epsilon, 0) {
		return cfg, fmt.Errorf("%w: epsilon must be finite and > 0: %g", ErrInvalidParams, cfg.epsilon)
	}
	if cfg.windowLength < 0 {
		return cfg, fmt.Errorf("%w: window length must be >= 1: %d", ErrInvalidParams, cfg.windowLength)
	}

	return cfg, nil
}
