package metrics

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DataDog/datadog-go/statsd"

	"github.com/x-xyz/nftcheckout/base/log"
)

const (
	ddClientsSize    = 16 // needs to be 2^n
	ddClientsIdxMask = ddClientsSize - 1

	// buffer 10 counters before sending to statsd
	bufferMetrics = 10
	ddRate        = 1
)

var (
	ddInitOnce = sync.Once{}

	// ddClientsIdx is used for accessing ddClients by round robin scheduling
	ddClientsIdx = int32(0)
	ddClients    []statsCli
)

type statsCli interface {
	Count(name string, value int64, tags []string, rate float64) error
	Histogram(name string, value float64, tags []string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags []string, rate float64) error
}

func ddAddr(host string, port int) string {
	if port == 0 {
		port = 8125
	}
	return fmt.Sprintf("%s:%d", host, port)
}

func initDDClient(addr string) {
	ddClients = make([]statsCli, ddClientsSize)
	for i := 0; i < ddClientsSize; i++ {
		// one buffered connection per slot so the buffer is counted together
		c, err := statsd.NewBuffered(addr, bufferMetrics)
		if err != nil {
			log.Log().WithFields(log.Fields{"addr": addr, "err": err}).Panic("can't talk to datadog agent")
		}
		ddClients[i] = c
	}
	log.Log().WithField("addr", addr).Info("datadog clients ready")
}

func nextDDClient() statsCli {
	i := atomic.AddInt32(&ddClientsIdx, 1) & ddClientsIdxMask
	return ddClients[i]
}

type ddMetrics struct {
	pkgName string
	ddTags  []string
	addr    string
}

func (dm *ddMetrics) init() {
	ddInitOnce.Do(func() { initDDClient(dm.addr) })
}

func (dm *ddMetrics) tags(tags []string) []string {
	keys, vals := tagPairs(tags)
	res := make([]string, 0, len(dm.ddTags)+len(keys))
	res = append(res, dm.ddTags...)
	for i := range keys {
		res = append(res, keys[i]+":"+vals[i])
	}
	return res
}

func (dm *ddMetrics) BumpSum(key string, val float64, tags ...string) {
	dm.init()
	name := dm.pkgName + "." + key
	if err := nextDDClient().Count(name, int64(val), dm.tags(tags), ddRate); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": name, "val": val, "func": "BumpSum"}).Error("Bump fail")
	}
}

func (dm *ddMetrics) BumpHistogram(key string, val float64, tags ...string) {
	dm.init()
	name := dm.pkgName + "." + key
	if err := nextDDClient().Histogram(name, val, dm.tags(tags), ddRate); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": name, "val": val, "func": "BumpHistogram"}).Error("Bump fail")
	}
}

// BumpTime starts a timer, typically used as
//
//	defer m.BumpTime("my.function").End()
func (dm *ddMetrics) BumpTime(key string, tags ...string) Ender {
	dm.init()
	return &ddTimeTracker{
		start: time.Now(),
		key:   dm.pkgName + "." + key,
		tags:  dm.tags(tags),
	}
}

type ddTimeTracker struct {
	start time.Time
	key   string
	tags  []string
}

func (dt *ddTimeTracker) End() {
	d := time.Since(dt.start)
	dur := float64(d) / float64(time.Millisecond)
	if err := nextDDClient().TimeInMilliseconds(dt.key, dur, dt.tags, ddRate); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": dt.key, "val": dur, "func": "BumpTime"}).Error("Bump fail")
	}
}
