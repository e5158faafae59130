package metrics

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/x-xyz/nftcheckout/base/log"
)

var promNameReplacer = strings.NewReplacer(".", "_", "-", "_", "/", "_")

// promRegistry lazily creates one vector per metric name and label set.
type promRegistry struct {
	reg prometheus.Registerer

	mutex      sync.Mutex
	counters   map[string]*prometheus.CounterVec
	histograms map[string]*prometheus.HistogramVec
}

func newPromRegistry(reg prometheus.Registerer) *promRegistry {
	return &promRegistry{
		reg:        reg,
		counters:   make(map[string]*prometheus.CounterVec),
		histograms: make(map[string]*prometheus.HistogramVec),
	}
}

func promName(pkgName, key string) string {
	return promNameReplacer.Replace(pkgName + "_" + key)
}

func (r *promRegistry) counter(name string, labels []string) (*prometheus.CounterVec, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	id := name + "|" + strings.Join(labels, ",")
	if c, ok := r.counters[id]; ok {
		return c, nil
	}
	c := prometheus.NewCounterVec(prometheus.CounterOpts{Name: name, Help: name}, labels)
	if err := r.reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, err
		}
		c = existing
	}
	r.counters[id] = c
	return c, nil
}

func (r *promRegistry) histogram(name string, labels []string) (*prometheus.HistogramVec, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	id := name + "|" + strings.Join(labels, ",")
	if h, ok := r.histograms[id]; ok {
		return h, nil
	}
	h := prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: name, Help: name, Buckets: prometheus.DefBuckets}, labels)
	if err := r.reg.Register(h); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		existing, ok := are.ExistingCollector.(*prometheus.HistogramVec)
		if !ok {
			return nil, err
		}
		h = existing
	}
	r.histograms[id] = h
	return h, nil
}

type promMetrics struct {
	pkgName string
	reg     *promRegistry
}

func (pm *promMetrics) BumpSum(key string, val float64, tags ...string) {
	labels, vals := tagPairs(tags)
	name := promName(pm.pkgName, key)
	c, err := pm.reg.counter(name, labels)
	if err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": name}).Error("prometheus counter failed")
		return
	}
	c.WithLabelValues(vals...).Add(val)
}

func (pm *promMetrics) BumpHistogram(key string, val float64, tags ...string) {
	labels, vals := tagPairs(tags)
	name := promName(pm.pkgName, key)
	h, err := pm.reg.histogram(name, labels)
	if err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": name}).Error("prometheus histogram failed")
		return
	}
	h.WithLabelValues(vals...).Observe(val)
}

func (pm *promMetrics) BumpTime(key string, tags ...string) Ender {
	return &promTimer{m: pm, key: key, tags: tags, start: time.Now()}
}

type promTimer struct {
	m     *promMetrics
	key   string
	tags  []string
	start time.Time
}

// End records seconds, the prometheus base unit
func (t *promTimer) End() {
	t.m.BumpHistogram(t.key, time.Since(t.start).Seconds(), t.tags...)
}
