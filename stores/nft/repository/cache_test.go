package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/nftcheckout/base/ctx"
	"github.com/x-xyz/nftcheckout/domain/keys"
	"github.com/x-xyz/nftcheckout/domain/nft"
	"github.com/x-xyz/nftcheckout/service/cache"
	"github.com/x-xyz/nftcheckout/service/cache/provider"
	"github.com/x-xyz/nftcheckout/service/cache/provider/primitive"
)

var (
	mockCtx = ctx.Background()
)

type testsuite struct {
	suite.Suite
	provider provider.Provider
	im       *cacheStore
	now      time.Time
}

func (ts *testsuite) SetupTest() {
	ts.provider = primitive.NewPrimitive("test", 1)
	ts.im = NewCacheStore(cache.New(cache.ServiceConfig{
		Pfx:   keys.PfxNftCache,
		Cache: ts.provider,
	}), 0).(*cacheStore)
	ts.now = time.UnixMilli(1717200000000)
	timeNow = func() time.Time { return ts.now }
}

func (ts *testsuite) TearDownTest() {
	timeNow = time.Now
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) rawRecord() []byte {
	v, _, err := ts.provider.Get(mockCtx, "nftCache:listings")
	if err != nil {
		return nil
	}
	return v
}

func (ts *testsuite) TestMiss() {
	nfts, ok := ts.im.Get(mockCtx)
	ts.False(ok)
	ts.Nil(nfts)
}

func (ts *testsuite) TestPutGet() {
	in := []nft.NFT{{Identifier: "1", Name: "one"}, {Identifier: "2", Name: "two"}}
	ts.NoError(ts.im.Put(mockCtx, in))
	ts.JSONEq(`{"timestamp":1717200000000,"nfts":[`+
		`{"identifier":"1","collection":"","contract":"","token_standard":"","name":"one","description":"","updated_at":"","is_disabled":false,"is_nsfw":false,"is_suspicious":false,"creator":"","traits":null},`+
		`{"identifier":"2","collection":"","contract":"","token_standard":"","name":"two","description":"","updated_at":"","is_disabled":false,"is_nsfw":false,"is_suspicious":false,"creator":"","traits":null}]}`,
		string(ts.rawRecord()))

	ts.now = ts.now.Add(time.Minute)
	out, ok := ts.im.Get(mockCtx)
	ts.True(ok)
	ts.Equal(in, out)
}

func (ts *testsuite) TestExpiresAtFiveMinutes() {
	ts.NoError(ts.im.Put(mockCtx, []nft.NFT{{Identifier: "1"}}))

	ts.now = ts.now.Add(5*time.Minute - time.Millisecond)
	_, ok := ts.im.Get(mockCtx)
	ts.True(ok, "just before expiry")

	ts.now = ts.now.Add(time.Millisecond)
	nfts, ok := ts.im.Get(mockCtx)
	ts.False(ok, "exactly five minutes")
	ts.Nil(nfts)
	ts.Nil(ts.rawRecord(), "expired record is purged")
}

func (ts *testsuite) TestEmptySetIsAHit() {
	ts.NoError(ts.im.Put(mockCtx, nil))
	nfts, ok := ts.im.Get(mockCtx)
	ts.True(ok)
	ts.Equal([]nft.NFT{}, nfts)
}

func (ts *testsuite) TestCorruptRecord() {
	cases := []struct {
		Desc string
		Raw  string
	}{
		{Desc: "not json", Raw: "{{{"},
		{Desc: "wrong shape", Raw: `{"timestamp":"yesterday","nfts":5}`},
		{Desc: "no timestamp", Raw: `{"nfts":[]}`},
	}
	for _, c := range cases {
		ts.NoError(ts.provider.Set(mockCtx, "nftCache:listings", []byte(c.Raw), 0), c.Desc)
		nfts, ok := ts.im.Get(mockCtx)
		ts.False(ok, c.Desc)
		ts.Nil(nfts, c.Desc)
		ts.Nil(ts.rawRecord(), c.Desc)
	}
}

func (ts *testsuite) TestPutOverwrites() {
	ts.NoError(ts.im.Put(mockCtx, []nft.NFT{{Identifier: "1"}}))
	ts.now = ts.now.Add(4 * time.Minute)
	ts.NoError(ts.im.Put(mockCtx, []nft.NFT{{Identifier: "2"}}))

	ts.now = ts.now.Add(4 * time.Minute)
	out, ok := ts.im.Get(mockCtx)
	ts.True(ok)
	ts.Equal([]nft.NFT{{Identifier: "2"}}, out)
}
