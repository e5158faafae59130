package redis

import (
	"errors"
	"time"

	"github.com/x-xyz/nftcheckout/base/ctx"
)

var (
	ErrNotFound = errors.New("redis key not found")
	ErrNoTTL    = errors.New("redis key has no ttl")
	ErrNoPool   = errors.New("redis pool not configured")
)

// Forever is passed as expire to keep a key without ttl
const Forever = time.Duration(0)

// Service is the subset of redis commands the cache layer needs
type Service interface {
	Get(c ctx.Ctx, key string) ([]byte, error)
	Set(c ctx.Ctx, key string, val []byte, expire time.Duration) error
	Del(c ctx.Ctx, keys ...string) (int, error)
	Exists(c ctx.Ctx, key string) (bool, error)
	// TTL returns remaining seconds of key
	TTL(c ctx.Ctx, key string) (int, error)
	Ping(c ctx.Ctx) error
}
