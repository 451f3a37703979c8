// Package prommetrics exports the metrics of a lazycache.Cache to Prometheus.
package prommetrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/creativecreature/lazycache"
)

// Recorder implements lazycache.MetricsRecorder with Prometheus collectors.
type Recorder struct {
	reg       prometheus.Registerer
	namespace string

	hits           prometheus.Counter
	misses         prometheus.Counter
	vacuums        prometheus.Counter
	expiredEntries prometheus.Counter
	evictedEntries prometheus.Counter
	coalesced      prometheus.Counter
}

// New creates the collectors and registers them with reg. The size gauge is
// registered once the recorder is handed to a cache.
func New(reg prometheus.Registerer, namespace string) (*Recorder, error) {
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "lazycache",
			Name:      name,
			Help:      help,
		})
	}

	r := &Recorder{
		reg:            reg,
		namespace:      namespace,
		hits:           counter("hits_total", "Number of lookups that found a live entry."),
		misses:         counter("misses_total", "Number of lookups that found no live entry."),
		vacuums:        counter("vacuums_total", "Number of vacuums the cache has run."),
		expiredEntries: counter("expired_entries_total", "Number of entries removed by vacuums because their TTL elapsed."),
		evictedEntries: counter("evicted_entries_total", "Number of entries evicted to keep the cache within its capacity."),
		coalesced:      counter("provider_coalesced_total", "Number of provide calls that joined an in-flight fetch."),
	}

	for _, c := range []prometheus.Collector{r.hits, r.misses, r.vacuums, r.expiredEntries, r.evictedEntries, r.coalesced} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustNew is like New but panics if the collectors can't be registered.
func MustNew(reg prometheus.Registerer, namespace string) *Recorder {
	r, err := New(reg, namespace)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Recorder) CacheHit() { r.hits.Inc() }
func (r *Recorder) CacheMiss() { r.misses.Inc() }
func (r *Recorder) Vacuum() { r.vacuums.Inc() }
func (r *Recorder) EntriesExpired(n int) { r.expiredEntries.Add(float64(n)) }
func (r *Recorder) EntriesEvicted(n int) { r.evictedEntries.Add(float64(n)) }
func (r *Recorder) ProviderCoalesced() { r.coalesced.Inc() }

// ExpiredEntries exposes the expired entries counter.
func (r *Recorder) ExpiredEntries() prometheus.Counter { return r.expiredEntries }

// EvictedEntries exposes the evicted entries counter.
func (r *Recorder) EvictedEntries() prometheus.Counter { return r.evictedEntries }

// ObserveCacheSize registers a gauge that calls callback on every scrape.
// A second cache reporting to the same recorder is ignored.
func (r *Recorder) ObserveCacheSize(callback func() int) {
	gauge := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Subsystem: "lazycache",
		Name:      "entries",
		Help:      "Number of entries in the cache.",
	}, func() float64 {
		return float64(callback())
	})
	if err := r.reg.Register(gauge); err != nil {
		var alreadyRegistered prometheus.AlreadyRegisteredError
		if errors.As(err, &alreadyRegistered) {
			return
		}
		panic(err)
	}
}

var _ lazycache.MetricsRecorder = (*Recorder)(nil)
