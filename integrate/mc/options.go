package mc

// DefaultBlockSize is the number of samples evaluated per integrand call.
const DefaultBlockSize = 1 << 16

// Config holds integrator settings.
type Config struct {
	BlockSize int
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the default integrator settings.
func DefaultConfig() Config {
	return Config{BlockSize: DefaultBlockSize}
}

// WithBlockSize sets the samples per integrand call. A block size at least
// as large as the sample count evaluates the whole batch in one call.
func WithBlockSize(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.BlockSize = n
		}
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
