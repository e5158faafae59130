package metrics

import (
	"time"

	"github.com/x-xyz/nftcheckout/base/log"
)

type logMetrics struct {
	pkgName string
}

func (l *logMetrics) BumpSum(key string, val float64, tags ...string) {
	log.Log().WithFields(log.Fields{"key": l.pkgName + "." + key, "val": val, "tags": tags}).Debug("metric sum")
}

func (l *logMetrics) BumpHistogram(key string, val float64, tags ...string) {
	log.Log().WithFields(log.Fields{"key": l.pkgName + "." + key, "val": val, "tags": tags}).Debug("metric histogram")
}

func (l *logMetrics) BumpTime(key string, tags ...string) Ender {
	return &logTimer{m: l, key: key, tags: tags, start: time.Now()}
}

type logTimer struct {
	m     *logMetrics
	key   string
	tags  []string
	start time.Time
}

func (t *logTimer) End() {
	log.Log().WithFields(log.Fields{
		"key":     t.m.pkgName + "." + t.key,
		"time_ms": float64(time.Since(t.start)) / float64(time.Millisecond),
		"tags":    t.tags,
	}).Debug("metric time")
}
