package adapters

import (
	ports "github.com/ZanzyTHEbar/fibmemo/fibmemo/sequence/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusObserver exports evaluator events as Prometheus metrics.
type PrometheusObserver struct {
	Hits         prometheus.Counter
	Misses       prometheus.Counter
	Stores       prometheus.Counter
	Rejects      *prometheus.CounterVec
	HighestIndex prometheus.Gauge

	highest int
}

// NewPrometheusObserver registers the evaluator metrics on reg under namespace.
func NewPrometheusObserver(reg prometheus.Registerer, namespace string) *PrometheusObserver {
	factory := promauto.With(reg)

	return &PrometheusObserver{
		Hits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Total number of cache lookups that found a stored term",
		}),
		Misses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Total number of cache lookups that required computation",
		}),
		Stores: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_stores_total",
			Help:      "Total number of terms written to the cache",
		}),
		Rejects: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_queries_total",
			Help:      "Total rejected queries by reason",
		}, []string{"reason"}),
		HighestIndex: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_highest_index",
			Help:      "Highest sequence index stored in the cache",
		}),
	}
}

func (o *PrometheusObserver) Hit(int)  { o.Hits.Inc() }
func (o *PrometheusObserver) Miss(int) { o.Misses.Inc() }

func (o *PrometheusObserver) Store(n int) {
	o.Stores.Inc()
	if n > o.highest {
		o.highest = n
		o.HighestIndex.Set(float64(n))
	}
}

func (o *PrometheusObserver) Reject(_ int, err error) {
	o.Rejects.WithLabelValues(ports.Reason(err)).Inc()
}

// Ensure PrometheusObserver implements the Observer interface.
var _ ports.Observer = (*PrometheusObserver)(nil)
