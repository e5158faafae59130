package compound

import (
	"strconv"
	"time"

	"github.com/x-xyz/nftcheckout/base/ctx"
	"github.com/x-xyz/nftcheckout/base/log"
	"github.com/x-xyz/nftcheckout/base/metrics"
	"github.com/x-xyz/nftcheckout/domain/keys"
	"github.com/x-xyz/nftcheckout/service/cache/provider"
)

type impl struct {
	layers []provider.Provider
	met    metrics.Service
}

// NewCompound reads layers in order and returns the first hit, backfilling
// the layers above it. Put the fastest layer first.
func NewCompound(layers []provider.Provider) provider.Provider {
	return &impl{
		layers: layers,
		met:    metrics.New("compound"),
	}
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	for idx, lyr := range im.layers {
		val, ttl, err := lyr.Get(c, key)
		if err == provider.ErrNotFound {
			continue
		} else if err != nil {
			return nil, 0, err
		}

		im.met.BumpSum("hit", 1, "layer", strconv.Itoa(idx), "pfx", keys.GetPrefix(key))
		im.backfill(c, key, val, ttl, idx)
		return val, ttl, nil
	}
	im.met.BumpSum("miss", 1, "pfx", keys.GetPrefix(key))
	return nil, 0, provider.ErrNotFound
}

// backfill copies a hit into the layers above hitIdx. A failed copy only
// costs a later miss so it is logged, not returned.
func (im *impl) backfill(c ctx.Ctx, key string, val []byte, ttl time.Duration, hitIdx int) {
	for idx := 0; idx < hitIdx; idx++ {
		if err := im.layers[idx].Set(c, key, val, ttl); err != nil {
			c.WithFields(log.Fields{
				"err":   err,
				"key":   key,
				"layer": idx,
			}).Warn("backfill failed")
		}
	}
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	for _, lyr := range im.layers {
		if err := lyr.Set(c, key, value, ttl); err != nil {
			return err
		}
	}
	return nil
}

// Del removes key from every layer even when one of them fails, so a stale
// record cannot survive in a lower layer
func (im *impl) Del(c ctx.Ctx, key string) error {
	var first error
	for _, lyr := range im.layers {
		if err := lyr.Del(c, key); err != nil && first == nil {
			first = err
		}
	}
	return first
}
