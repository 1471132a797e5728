package proxy

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// proxyMetrics holds Prometheus metrics for the proxy caches and the remote
// calls issued through an AddressSpace.
type proxyMetrics struct {
	attributeHits   prometheus.Counter
	attributeMisses prometheus.Counter
	childHits       prometheus.Counter
	childMisses     prometheus.Counter

	// Remote calls by operation and outcome (good, service, transport, unexpected).
	remoteCalls   *prometheus.CounterVec
	remoteLatency *prometheus.HistogramVec
}

// newProxyMetrics creates the metrics and registers them with reg. A nil
// reg leaves them unregistered.
func newProxyMetrics(reg prometheus.Registerer, labels prometheus.Labels) (*proxyMetrics, error) {
	m := &proxyMetrics{
		attributeHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "nodeproxy",
			Subsystem:   "attribute_cache",
			Name:        "hits_total",
			ConstLabels: labels,
			Help:        "Total number of cached attribute gets that found a value",
		}),
		attributeMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "nodeproxy",
			Subsystem:   "attribute_cache",
			Name:        "misses_total",
			ConstLabels: labels,
			Help:        "Total number of cached attribute gets without a value",
		}),
		childHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "nodeproxy",
			Subsystem:   "child_cache",
			Name:        "hits_total",
			ConstLabels: labels,
			Help:        "Total number of child lookups answered from the cache",
		}),
		childMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "nodeproxy",
			Subsystem:   "child_cache",
			Name:        "misses_total",
			ConstLabels: labels,
			Help:        "Total number of child lookups that required a browse",
		}),
		remoteCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "nodeproxy",
			Subsystem:   "remote",
			Name:        "calls_total",
			ConstLabels: labels,
			Help:        "Total number of remote service calls by operation and outcome",
		}, []string{"op", "outcome"}),
		remoteLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   "nodeproxy",
			Subsystem:   "remote",
			Name:        "call_duration_seconds",
			ConstLabels: labels,
			Help:        "Duration of remote service calls",
			Buckets:     prometheus.DefBuckets,
		}, []string{"op"}),
	}

	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{
		m.attributeHits, m.attributeMisses,
		m.childHits, m.childMisses,
		m.remoteCalls, m.remoteLatency,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *proxyMetrics) attributeHit()  { m.attributeHits.Inc() }
func (m *proxyMetrics) attributeMiss() { m.attributeMisses.Inc() }
func (m *proxyMetrics) childHit()      { m.childHits.Inc() }
func (m *proxyMetrics) childMiss()     { m.childMisses.Inc() }

// observeRemote records the outcome and duration of one remote call.
func (m *proxyMetrics) observeRemote(op string, start time.Time, err error) {
	m.remoteLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	m.remoteCalls.WithLabelValues(op, outcome(err)).Inc()
}

func outcome(err error) string {
	if err == nil {
		return "good"
	}
	var se *ServiceError
	if errors.As(err, &se) {
		return "service"
	}
	var te *TransportError
	if errors.As(err, &te) {
		return "transport"
	}
	return "unexpected"
}
