package sweep

import (
	"runtime"

	"github.com/rs/zerolog"
)

const (
	// DefaultPlaneSamples is the sample count of one plane estimate.
	DefaultPlaneSamples = 10_000_000

	// DefaultPointSamples is the sample count of one point estimate.
	DefaultPointSamples = 1_000_000
)

// Config holds Estimator settings.
type Config struct {
	PlaneSamples int
	PointSamples int

	Seed       uint64
	Seeded     bool
	Correlated bool

	// Workers bounds the goroutines PlaneMap spreads pixel rows over.
	Workers int

	Logger zerolog.Logger
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the default estimator settings.
func DefaultConfig() Config {
	return Config{
		PlaneSamples: DefaultPlaneSamples,
		PointSamples: DefaultPointSamples,
		Workers:      runtime.GOMAXPROCS(0),
		Logger:       zerolog.Nop(),
	}
}

// WithPlaneSamples sets the sample count of plane estimates.
func WithPlaneSamples(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.PlaneSamples = n
		}
	}
}

// WithPointSamples sets the sample count of point estimates.
func WithPointSamples(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.PointSamples = n
		}
	}
}

// WithSeed makes estimates reproducible.
func WithSeed(seed uint64) Option {
	return func(cfg *Config) {
		cfg.Seed = seed
		cfg.Seeded = true
	}
}

// WithCorrelatedNoise makes every seeded estimate use the same sample
// stream. It has no effect without WithSeed.
func WithCorrelatedNoise(on bool) Option {
	return func(cfg *Config) {
		cfg.Correlated = on
	}
}

// WithWorkers sets the number of pixel workers used by PlaneMap.
func WithWorkers(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.Workers = n
		}
	}
}

// WithLogger sets the logger for sweep progress.
func WithLogger(l zerolog.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = l
	}
}

func applyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
