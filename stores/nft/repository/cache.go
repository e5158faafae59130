package repository

import (
	"errors"
	"time"

	"github.com/x-xyz/nftcheckout/base/ctx"
	"github.com/x-xyz/nftcheckout/base/log"
	"github.com/x-xyz/nftcheckout/domain/keys"
	"github.com/x-xyz/nftcheckout/domain/nft"
	"github.com/x-xyz/nftcheckout/service/cache"
)

const (
	DefaultExpiry = 5 * time.Minute
)

var (
	timeNow = time.Now

	errMissingTimestamp = errors.New("snapshot has no timestamp")
)

// record is the persisted shape of a snapshot
type record struct {
	Timestamp int64     `json:"timestamp"`
	Nfts      []nft.NFT `json:"nfts"`
}

type cacheStore struct {
	cache  cache.Service
	expiry time.Duration
}

// NewCacheStore keeps the snapshot in c under a fixed key, expiry <= 0 uses DefaultExpiry
func NewCacheStore(c cache.Service, expiry time.Duration) nft.CacheStore {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &cacheStore{cache: c, expiry: expiry}
}

func (s *cacheStore) Get(c ctx.Ctx) ([]nft.NFT, bool) {
	rec := record{}
	if err := s.cache.Get(c, keys.NftSnapshot, &rec); err == cache.ErrNotFound {
		return nil, false
	} else if errors.Is(err, cache.ErrCorrupted) {
		c.WithField("err", err).Warn("drop unreadable nft snapshot")
		s.del(c)
		return nil, false
	} else if err != nil {
		c.WithField("err", err).Error("cache.Get failed")
		return nil, false
	}

	if rec.Timestamp <= 0 {
		c.WithField("err", errMissingTimestamp).Warn("drop unreadable nft snapshot")
		s.del(c)
		return nil, false
	}

	age := timeNow().Sub(time.UnixMilli(rec.Timestamp))
	if age >= s.expiry {
		c.WithFields(log.Fields{
			"age":    age.String(),
			"expiry": s.expiry.String(),
		}).Debug("nft snapshot expired")
		s.del(c)
		return nil, false
	}

	if rec.Nfts == nil {
		rec.Nfts = []nft.NFT{}
	}
	return rec.Nfts, true
}

func (s *cacheStore) Put(c ctx.Ctx, nfts []nft.NFT) error {
	if nfts == nil {
		nfts = []nft.NFT{}
	}
	rec := record{
		Timestamp: timeNow().UnixMilli(),
		Nfts:      nfts,
	}
	if err := s.cache.Set(c, keys.NftSnapshot, rec); err != nil {
		c.WithField("err", err).Error("cache.Set failed")
		return err
	}
	return nil
}

func (s *cacheStore) del(c ctx.Ctx) {
	if err := s.cache.Del(c, keys.NftSnapshot); err != nil {
		c.WithField("err", err).Warn("cache.Del failed")
	}
}
