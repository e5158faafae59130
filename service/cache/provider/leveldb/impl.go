package leveldb

import (
	"encoding/binary"
	"errors"
	"time"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/x-xyz/nftcheckout/base/ctx"
	"github.com/x-xyz/nftcheckout/service/cache/provider"
)

// every value is stored behind an 8 byte big endian expiry in unix ms, 0 for none
const headerSize = 8

var (
	errShortValue = errors.New("leveldb value shorter than header")

	timeNow = time.Now
)

type impl struct {
	db *leveldb.DB
}

// Open opens (or creates) the on disk store at path
func Open(path string) (*leveldb.DB, error) {
	if path == "" {
		path = "./data/cache"
	}
	return leveldb.OpenFile(path, &opt.Options{})
}

// OpenMem opens a store that lives only in memory
func OpenMem() (*leveldb.DB, error) {
	return leveldb.Open(storage.NewMemStorage(), nil)
}

// NewLevelDB wraps db as a cache provider, closing db is up to the caller
func NewLevelDB(db *leveldb.DB) provider.Provider {
	return &impl{db}
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	raw, err := im.db.Get([]byte(key), nil)
	if err == leveldb.ErrNotFound {
		return nil, time.Duration(0), provider.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("key", key).Error("db.Get failed")
		return nil, time.Duration(0), err
	}

	if len(raw) < headerSize {
		c.WithField("key", key).Warn("drop malformed leveldb value")
		_ = im.Del(c, key)
		return nil, time.Duration(0), errShortValue
	}

	ttl := time.Duration(0)
	if exp := int64(binary.BigEndian.Uint64(raw[:headerSize])); exp > 0 {
		ttl = time.UnixMilli(exp).Sub(timeNow())
		if ttl <= 0 {
			_ = im.Del(c, key)
			return nil, time.Duration(0), provider.ErrNotFound
		}
	}
	return append([]byte{}, raw[headerSize:]...), ttl, nil
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	raw := make([]byte, headerSize+len(value))
	if ttl > 0 {
		binary.BigEndian.PutUint64(raw[:headerSize], uint64(timeNow().Add(ttl).UnixMilli()))
	}
	copy(raw[headerSize:], value)

	if err := im.db.Put([]byte(key), raw, nil); err != nil {
		c.WithField("err", err).WithField("key", key).Error("db.Put failed")
		return err
	}
	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	if err := im.db.Delete([]byte(key), nil); err != nil {
		c.WithField("err", err).WithField("key", key).Error("db.Delete failed")
		return err
	}
	return nil
}
