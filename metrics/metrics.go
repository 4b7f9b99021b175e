// Package metrics implements prometheus metrics for generators and
// randomness tests.
package metrics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/oasisprotocol/prng-suite/common/logging"
	"github.com/oasisprotocol/prng-suite/generator/api"
	testAPI "github.com/oasisprotocol/prng-suite/randtest/api"
)

var (
	generatedValues = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prng_generated_values",
			Help: "Number of values produced by a generator.",
		},
		[]string{"generator"},
	)
	generatorErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prng_generator_errors",
			Help: "Number of failed generation steps.",
		},
		[]string{"generator"},
	)
	testRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prng_test_runs",
			Help: "Number of randomness test runs by outcome.",
		},
		[]string{"test", "outcome"},
	)
	testStatistics = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "prng_test_statistic",
			Help: "Statistic computed by the most recent randomness test run.",
		},
		[]string{"test", "statistic"},
	)
	prngCollectors = []prometheus.Collector{
		generatedValues,
		generatorErrors,
		testRuns,
		testStatistics,
	}

	metricsOnce sync.Once
)

// Init registers the collectors with the default registry.
func Init() {
	metricsOnce.Do(func() {
		prometheus.MustRegister(prngCollectors...)
	})
}

var _ api.Generator = (*meteredGenerator)(nil)

type meteredGenerator struct {
	api.Generator

	values prometheus.Counter
	errors prometheus.Counter
}

func (g *meteredGenerator) Generate() (float64, error) {
	v, err := g.Generator.Generate()
	if err != nil {
		g.errors.Inc()
		return v, err
	}
	g.values.Inc()
	return v, nil
}

func (g *meteredGenerator) GenerateSequence(count int) ([]float64, error) {
	return api.Sequence(count, g.Generate)
}

// WrapGenerator returns a generator that counts the values and errors
// produced by gen, labeled with its name.
func WrapGenerator(gen api.Generator) api.Generator {
	labels := prometheus.Labels{"generator": gen.Name()}
	return &meteredGenerator{
		Generator: gen,
		values:    generatedValues.With(labels),
		errors:    generatorErrors.With(labels),
	}
}

// ObserveResult records the outcome and statistics of a test run.
func ObserveResult(res *testAPI.Result) {
	if res == nil {
		return
	}
	testRuns.With(prometheus.Labels{
		"test":    res.Name,
		"outcome": res.Outcome(),
	}).Inc()
	for _, s := range res.Statistics {
		testStatistics.With(prometheus.Labels{
			"test":      res.Name,
			"statistic": s.Name,
		}).Set(s.Value)
	}
}

// KindGrouping returns the push grouping labels of a run over the given
// generator kind. Grouping labels must not collide with metric labels.
func KindGrouping(kind string) map[string]string {
	return map[string]string{"kind": kind}
}

const (
	pushRetries       = 3
	pushRetryInterval = time.Second
)

// Pusher pushes the default registry to a prometheus push gateway.
type Pusher struct {
	pusher        *push.Pusher
	logger        *logging.Logger
	retryInterval time.Duration
}

// Push pushes the current metric values, retrying a failed push a few
// times before giving up.
func (p *Pusher) Push(ctx context.Context) error {
	retry := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(p.retryInterval), pushRetries), ctx)
	err := backoff.Retry(func() error {
		pushErr := p.pusher.Push()
		if pushErr != nil {
			p.logger.Debug("failed to push metrics, retrying",
				"err", pushErr,
			)
		}
		return pushErr
	}, retry)
	if err != nil {
		return fmt.Errorf("metrics: failed to push: %w", err)
	}
	p.logger.Debug("pushed metrics")
	return nil
}

// NewPusher creates a pusher for the given gateway address and job name,
// with optional grouping labels.
func NewPusher(address, job string, grouping map[string]string) *Pusher {
	p := push.New(address, job)
	for k, v := range grouping {
		p = p.Grouping(k, v)
	}
	p = p.Gatherer(prometheus.DefaultGatherer)

	return &Pusher{
		pusher:        p,
		logger:        logging.GetLogger("metrics").With("address", address, "job", job),
		retryInterval: pushRetryInterval,
	}
}
