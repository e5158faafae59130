package repository

import (
	"time"

	"github.com/x-xyz/nftcheckout/base/ctx"
	hcdomain "github.com/x-xyz/nftcheckout/domain/healthcheck"
	"github.com/x-xyz/nftcheckout/service/cache"
	"github.com/x-xyz/nftcheckout/service/redis"
)

var timeNow = time.Now

type impl struct {
	cache      cache.Service
	redisCache redis.Service
}

// New creates new healthCheckRepo. redisCache is nil when the cache is not
// backed by redis.
func New(
	cache cache.Service,
	redisCache redis.Service,
) hcdomain.HealthCheckRepo {
	return &impl{
		cache:      cache,
		redisCache: redisCache,
	}
}

func (im *impl) PingCache(context ctx.Ctx) error {
	ctx, cancel := ctx.WithTimeout(context, 2*time.Second)
	defer cancel()
	if im.redisCache != nil {
		if err := im.redisCache.Ping(ctx); err != nil {
			context.WithField("err", err).Error("ping redis error")
			return err
		}
	}

	if err := im.cache.Set(ctx, "testset", timeNow().Unix()); err != nil {
		context.WithField("err", err).Error("test cache set failed")
		return err
	}
	return nil
}
