package cache

import (
	"encoding/json"

	"github.com/x-xyz/nftcheckout/base/ctx"
	"github.com/x-xyz/nftcheckout/domain/keys"
	"github.com/x-xyz/nftcheckout/service/cache/provider"
	"golang.org/x/xerrors"
)

type impl struct {
	config ServiceConfig
}

func New(config ServiceConfig) Service {
	if config.Serialize == nil {
		config.Serialize = json.Marshal
	}
	if config.Deserialize == nil {
		config.Deserialize = json.Unmarshal
	}
	return &impl{config: config}
}

func (im *impl) key(key string) string {
	return keys.RedisKey(im.config.Pfx, key)
}

func (im *impl) Get(c ctx.Ctx, key string, container interface{}) error {
	key = im.key(key)

	if val, _, err := im.config.Cache.Get(c, key); err == provider.ErrNotFound {
		return ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("key", key).Error("cache.Get failed")
		return err
	} else if err := im.config.Deserialize(val, container); err != nil {
		c.WithField("err", err).WithField("key", key).Warn("deserialize failed")
		return xerrors.Errorf("deserialize %v: %w", err, ErrCorrupted)
	}

	return nil
}

func (im *impl) Set(c ctx.Ctx, key string, value interface{}) error {
	key = im.key(key)

	if val, err := im.config.Serialize(value); err != nil {
		c.WithField("err", err).WithField("key", key).Error("serialize failed")
		return err
	} else if err := im.config.Cache.Set(c, key, val, im.config.Ttl); err != nil {
		c.WithField("err", err).WithField("key", key).Error("cache.Set failed")
		return err
	}

	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	key = im.key(key)

	if err := im.config.Cache.Del(c, key); err != nil {
		c.WithField("err", err).WithField("key", key).Error("cache.Del failed")
		return err
	}

	return nil
}
