package redisclient

import (
	"runtime"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/nftcheckout/base/backoff"
	"github.com/x-xyz/nftcheckout/base/ctx"
	"github.com/x-xyz/nftcheckout/base/log"
)

const (
	dialTimeout  = 2 * time.Second
	readTimeout  = 1500 * time.Millisecond
	writeTimeout = 1500 * time.Millisecond

	defaultRetries = 3
)

// Config of the redis backing the nft snapshot cache
type Config struct {
	URI      string
	Password string
	DB       int
	// PoolMultiplier scales pool size by cpu count, zero keeps the redigo defaults
	PoolMultiplier float64
	// Retries is how many extra dials are made when the first one fails
	Retries int
}

func newPool(cfg Config) *redis.Pool {
	opts := []redis.DialOption{
		redis.DialConnectTimeout(dialTimeout),
		redis.DialReadTimeout(readTimeout),
		redis.DialWriteTimeout(writeTimeout),
		redis.DialDatabase(cfg.DB),
	}
	if cfg.Password != "" {
		opts = append(opts, redis.DialPassword(cfg.Password))
	}

	p := &redis.Pool{
		MaxIdle:     8,
		Wait:        true,
		IdleTimeout: 240 * time.Second,
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", cfg.URI, opts...)
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			if time.Since(t) < time.Second {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
	if cfg.PoolMultiplier > 0 {
		cpu := float64(runtime.NumCPU())
		// allowing 25% idle connection
		p.MaxIdle = int(cpu*cfg.PoolMultiplier/4) + 1
		p.MaxActive = int(cpu*cfg.PoolMultiplier) + 1
	}
	return p
}

// Connect builds a pool and makes sure one connection can PING before
// returning it
func Connect(c ctx.Ctx, cfg Config) (*redis.Pool, error) {
	p := newPool(cfg)
	retries := cfg.Retries
	if retries <= 0 {
		retries = defaultRetries
	}

	err := backoff.Retry(c, backoff.NewJitter(time.Second, 8*time.Second), retries+1, func(attempt int) error {
		conn, err := p.GetContext(c)
		if err != nil {
			c.WithFields(log.Fields{
				"redisURI": cfg.URI,
				"err":      err,
				"attempt":  attempt,
			}).Error("fail to dial redis")
			return err
		}
		defer conn.Close()
		if _, err := conn.Do("PING"); err != nil {
			c.WithFields(log.Fields{
				"redisURI": cfg.URI,
				"err":      err,
				"attempt":  attempt,
			}).Error("fail to ping redis")
			return err
		}
		return nil
	})
	if err != nil {
		p.Close()
		return nil, err
	}

	c.WithField("redisURI", cfg.URI).Info("redis connected")
	return p, nil
}

// MustConnect panics when Connect fails
func MustConnect(c ctx.Ctx, cfg Config) *redis.Pool {
	p, err := Connect(c, cfg)
	if err != nil {
		c.WithFields(log.Fields{"redisURI": cfg.URI, "err": err}).Panic("fail to connect redis")
	}
	return p
}
