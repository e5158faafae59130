/*Package metrics records counters and timings for the service.
Naming convention of metric keys:
- Internal process time: *.time
- External latency: *.latency
- Error: *.err
Tags are passed as key/value pairs: BumpSum("fetch.err", 1, "stage", "listings").
*/
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	BackendLog        = "log"
	BackendDatadog    = "datadog"
	BackendPrometheus = "prometheus"
)

// Ender stops a timer started by BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)

	BumpTime(key string, tags ...string) Ender
}

type Config struct {
	Backend     string
	DatadogHost string
	DatadogPort int
	EnvName     string
	AppName     string
	PodName     string
	// Registerer defaults to prometheus.DefaultRegisterer
	Registerer prometheus.Registerer
}

var (
	mu      sync.RWMutex
	conf    = Config{Backend: BackendLog}
	promReg *promRegistry
)

// Setup selects the backend used by every Service created afterwards.
func Setup(c Config) {
	mu.Lock()
	defer mu.Unlock()
	conf = c
	if c.Backend == BackendPrometheus {
		reg := c.Registerer
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		promReg = newPromRegistry(reg)
	}
}

// New creates a metric client with package name as prefix
func New(pkgName string) Service {
	mu.RLock()
	defer mu.RUnlock()
	switch conf.Backend {
	case BackendDatadog:
		return &ddMetrics{
			pkgName: pkgName,
			ddTags: []string{
				// using host removes all tags associated with host
				"host:",
				"pod:" + conf.PodName,
				"env:" + conf.EnvName,
				"app:" + conf.AppName,
			},
			addr: ddAddr(conf.DatadogHost, conf.DatadogPort),
		}
	case BackendPrometheus:
		return &promMetrics{pkgName: pkgName, reg: promReg}
	default:
		return &logMetrics{pkgName: pkgName}
	}
}

// tagPairs splits k/v tags, a dangling key is dropped
func tagPairs(tags []string) ([]string, []string) {
	n := len(tags) / 2
	keys := make([]string, 0, n)
	vals := make([]string, 0, n)
	for i := 0; i+1 < len(tags); i += 2 {
		keys = append(keys, tags[i])
		vals = append(vals, tags[i+1])
	}
	return keys, vals
}
