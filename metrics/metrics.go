//go:build !solution

// Package metrics exports library transitions as prometheus metrics.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"gitlab.com/slon/readerwriter/library"
)

const namespace = "library"

// Collector is a library.Observer updating prometheus metrics.
type Collector struct {
	events  *prometheus.CounterVec
	inside  prometheus.Gauge
	waiting prometheus.Gauge
	readers prometheus.Gauge
	writers prometheus.Gauge

	// mu упорядочивает обновления gauges по Seq
	mu      sync.Mutex
	lastSeq uint64
}

// New creates a Collector and registers its metrics with reg.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Number of actor transitions by kind.",
		}, []string{"kind"}),
		inside: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "inside",
			Help:      "Actors currently admitted.",
		}),
		waiting: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "waiting",
			Help:      "Actors waiting for admission.",
		}),
		readers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "readers_inside",
			Help:      "Readers currently admitted.",
		}),
		writers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "writers_inside",
			Help:      "Writers currently admitted.",
		}),
	}

	for _, m := range []prometheus.Collector{c.events, c.inside, c.waiting, c.readers, c.writers} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Collector) Observe(e library.Event) {
	c.events.WithLabelValues(string(e.Kind)).Inc()

	// Наблюдатели вызываются конкурентно, устаревшие события не трогают gauges
	c.mu.Lock()
	defer c.mu.Unlock()
	if e.Seq <= c.lastSeq {
		return
	}
	c.lastSeq = e.Seq
	c.inside.Set(float64(e.Inside))
	c.waiting.Set(float64(e.Waiting))
	c.readers.Set(float64(e.Readers))
	c.writers.Set(float64(e.Writers))
}
