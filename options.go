package negsamp

import (
	"log/slog"
	"time"

	"github.com/hupe1980/negsamp/pool"
)

type options struct {
	distribution pool.Distribution
	seed         int64
	logger       *Logger
	metrics      MetricsCollector
}

// Option configures sampler construction.
type Option func(*options)

// WithDistribution selects the candidate distribution of the pool.
// Defaults to pool.Uniform.
func WithDistribution(d pool.Distribution) Option {
	return func(o *options) {
		o.distribution = d
	}
}

// WithSeed fixes the RNG seed so the candidate shuffle (and therefore the
// whole draw sequence) is reproducible. Without it the seed is taken from
// the wall clock.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		distribution: pool.Uniform,
		seed:         time.Now().UnixNano(),
		logger:       NoopLogger(),
		metrics:      NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
