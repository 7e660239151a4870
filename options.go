package taskgraph

import (
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// defaultWorkerCount is the pool size used when WithWorkerCount is not
// provided.
const defaultWorkerCount = 4

// Option configures a Scheduler constructed via NewScheduler.
type Option interface {
	applyScheduler(*schedulerConfig)
}

type schedulerConfig struct {
	workerCount int
	logger      *logiface.Logger[*stumpy.Event]
}

type optionFunc func(*schedulerConfig)

func (f optionFunc) applyScheduler(c *schedulerConfig) { f(c) }

// WithWorkerCount sets the fixed worker pool size. Panics if n is not
// positive.
func WithWorkerCount(n int) Option {
	if n <= 0 {
		panic("taskgraph: WithWorkerCount requires a positive worker count")
	}
	return optionFunc(func(c *schedulerConfig) {
		c.workerCount = n
	})
}

// WithLogger configures the structured logger used for scheduler
// diagnostics (registration, dispatch, completion, failure, idle). A nil
// logger, or omitting this option, disables logging; logiface's Logger is
// safe to use at its zero value.
func WithLogger(logger *logiface.Logger[*stumpy.Event]) Option {
	return optionFunc(func(c *schedulerConfig) {
		c.logger = logger
	})
}

func resolveOptions(opts []Option) *schedulerConfig {
	c := &schedulerConfig{
		workerCount: defaultWorkerCount,
	}
	for _, o := range opts {
		if o != nil {
			o.applyScheduler(c)
		}
	}
	return c
}
