package cache

import (
	"errors"
	"time"

	"github.com/x-xyz/nftcheckout/base/ctx"
	"github.com/x-xyz/nftcheckout/service/cache/provider"
)

var (
	ErrNotFound = errors.New("Cache not found")
	// ErrCorrupted wraps deserialize failures of a stored value
	ErrCorrupted = errors.New("Cache corrupted")
)

type Serializer func(interface{}) ([]byte, error)

type Deserializer func([]byte, interface{}) error

// high order cache service
type Service interface {
	Get(c ctx.Ctx, key string, container interface{}) error
	Set(c ctx.Ctx, key string, value interface{}) error
	Del(c ctx.Ctx, key string) error
}

type ServiceConfig struct {
	// Ttl handed to the provider, zero keeps values until deleted
	Ttl         time.Duration
	Pfx         string
	Cache       provider.Provider
	Serialize   Serializer
	Deserialize Deserializer
}
