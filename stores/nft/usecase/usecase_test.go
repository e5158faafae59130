package usecase

import (
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/nftcheckout/base/ctx"
	"github.com/x-xyz/nftcheckout/domain"
	"github.com/x-xyz/nftcheckout/domain/nft"
	"github.com/x-xyz/nftcheckout/service/opensea"
	mockOpensea "github.com/x-xyz/nftcheckout/service/opensea/mocks"
)

var (
	mockCtx = ctx.Background()
	slug    = domain.DefaultCollectionSlug
)

// fakeCache is a map backed snapshot store without expiry
type fakeCache struct {
	mu   sync.Mutex
	data map[string][]nft.NFT
	puts int
}

func (f *fakeCache) Get(c ctx.Ctx) ([]nft.NFT, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data["snapshot"]
	return v, ok
}

func (f *fakeCache) Put(c ctx.Ctx, nfts []nft.NFT) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data["snapshot"] = nfts
	f.puts++
	return nil
}

func listing(hash string, id string) nft.Listing {
	return nft.Listing{
		OrderHash: domain.OrderHash(hash),
		Chain:     "base",
		ProtocolData: nft.ProtocolData{
			Parameters: nft.OrderParameters{
				Offer: []nft.OfferItem{{
					ItemType:             nft.ItemTypeErc721,
					Token:                domain.DefaultCollectionContract,
					IdentifierOrCriteria: id,
					StartAmount:          "1",
					EndAmount:            "1",
				}},
			},
		},
	}
}

func nftResp(id string) *opensea.NftResp {
	return &opensea.NftResp{Nft: nft.NFT{Identifier: domain.TokenId(id), Name: "RBTZ #" + id}}
}

type testsuite struct {
	suite.Suite
	opensea *mockOpensea.Client
	cache   *fakeCache
	im      *impl
}

func (ts *testsuite) SetupTest() {
	ts.opensea = &mockOpensea.Client{}
	ts.cache = &fakeCache{data: map[string][]nft.NFT{}}
	ts.im = New(&Config{
		Opensea: ts.opensea,
		Cache:   ts.cache,
		Chain:   "base",
	}).(*impl)
}

func (ts *testsuite) TearDownTest() {
	ts.opensea.AssertExpectations(ts.T())
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestDefaults() {
	ts.Equal(domain.DefaultListingLimit, ts.im.limit)
	ts.Equal(domain.DefaultListingLimit, ts.im.workers)
	ts.Equal(domain.DefaultCollectionContract, ts.im.contract)
}

func (ts *testsuite) TestCacheHitSkipsNetwork() {
	cached := []nft.NFT{{Identifier: "7"}}
	ts.cache.data["snapshot"] = cached

	nfts, err := ts.im.Fetch(mockCtx, slug)
	ts.NoError(err)
	ts.Equal(cached, nfts)
	ts.opensea.AssertNotCalled(ts.T(), "GetBestListings", mock.Anything, mock.Anything, mock.Anything)
}

func (ts *testsuite) TestDedupFirstCompletedWins() {
	// both listings sell identifier 1, the one on the mirror contract answers late
	mirror := domain.Address("0x00000000000000000000000000000000000000c1")
	slow := listing("0xslow", "1")
	slow.ProtocolData.Parameters.Offer[0].Token = mirror
	ts.opensea.On("GetBestListings", mock.Anything, slug, mock.Anything).Return(&opensea.ListingsResp{
		Listings: []nft.Listing{slow, listing("0xfast", "1"), listing("0xb", "2")},
	}, nil).Once()

	ts.opensea.On("GetNft", mock.Anything, "base", mirror, domain.TokenId("1")).
		Run(func(args mock.Arguments) {
			time.Sleep(100 * time.Millisecond)
		}).Return(nftResp("1"), nil).Once()
	ts.opensea.On("GetNft", mock.Anything, "base", domain.DefaultCollectionContract, domain.TokenId("1")).
		Return(nftResp("1"), nil).Once()
	ts.opensea.On("GetNft", mock.Anything, "base", domain.DefaultCollectionContract, domain.TokenId("2")).
		Return(nftResp("2"), nil).Once()

	nfts, err := ts.im.Fetch(mockCtx, slug)
	ts.NoError(err)
	ts.Len(nfts, 2)

	byId := map[domain.TokenId]nft.NFT{}
	for _, n := range nfts {
		byId[n.Identifier] = n
		ts.NotNil(n.Listing)
	}
	ts.Require().Contains(byId, domain.TokenId("1"))
	ts.Require().Contains(byId, domain.TokenId("2"))
	ts.Equal(domain.OrderHash("0xfast"), byId["1"].Listing.OrderHash)
	ts.Equal(domain.OrderHash("0xb"), byId["2"].Listing.OrderHash)

	ts.Equal(1, ts.cache.puts)
	ts.Equal(nfts, ts.cache.data["snapshot"])
}

func (ts *testsuite) TestDedupIgnoresCompletionOrder() {
	for round := 0; round < 5; round++ {
		ts.SetupTest()
		ts.opensea.On("GetBestListings", mock.Anything, slug, mock.Anything).Return(&opensea.ListingsResp{
			Listings: []nft.Listing{listing("0xa1", "1"), listing("0xa2", "1"), listing("0xb", "2")},
		}, nil).Once()
		ts.opensea.On("GetNft", mock.Anything, "base", domain.DefaultCollectionContract, mock.Anything).
			Return(func(_ ctx.Ctx, _ string, _ domain.Address, id domain.TokenId) *opensea.NftResp {
				return nftResp(id.String())
			}, nil).Times(3)

		nfts, err := ts.im.Fetch(mockCtx, slug)
		ts.NoError(err)
		ids := []string{}
		for _, n := range nfts {
			ids = append(ids, n.Identifier.String())
		}
		sort.Strings(ids)
		ts.Equal([]string{"1", "2"}, ids)
	}
}

func (ts *testsuite) TestMetadataFailureOmitsOne() {
	ts.opensea.On("GetBestListings", mock.Anything, slug, mock.Anything).Return(&opensea.ListingsResp{
		Listings: []nft.Listing{listing("0xa", "1"), listing("0xb", "2")},
	}, nil).Once()
	ts.opensea.On("GetNft", mock.Anything, "base", domain.DefaultCollectionContract, domain.TokenId("1")).
		Return(nil, opensea.ErrStatusCodeNotOk).Once()
	ts.opensea.On("GetNft", mock.Anything, "base", domain.DefaultCollectionContract, domain.TokenId("2")).
		Return(nftResp("2"), nil).Once()

	nfts, err := ts.im.Fetch(mockCtx, slug)
	ts.NoError(err)
	ts.Len(nfts, 1)
	ts.Equal(domain.TokenId("2"), nfts[0].Identifier)
}

func (ts *testsuite) TestListingWithoutOfferIsSkipped() {
	broken := listing("0xbroken", "9")
	broken.ProtocolData.Parameters.Offer = nil
	noToken := listing("0xnotoken", "3")
	noToken.Chain = ""
	noToken.ProtocolData.Parameters.Offer[0].Token = ""

	ts.opensea.On("GetBestListings", mock.Anything, slug, mock.Anything).Return(&opensea.ListingsResp{
		Listings: []nft.Listing{broken, noToken},
	}, nil).Once()
	ts.opensea.On("GetNft", mock.Anything, "base", domain.DefaultCollectionContract, domain.TokenId("3")).
		Return(nftResp("3"), nil).Once()

	nfts, err := ts.im.Fetch(mockCtx, slug)
	ts.NoError(err)
	ts.Len(nfts, 1)
}

func (ts *testsuite) TestEmptyListingsCached() {
	ts.opensea.On("GetBestListings", mock.Anything, slug, mock.Anything).Return(&opensea.ListingsResp{}, nil).Once()

	nfts, err := ts.im.Fetch(mockCtx, slug)
	ts.NoError(err)
	ts.Equal([]nft.NFT{}, nfts)
	ts.Equal(1, ts.cache.puts)

	// second read is served by the snapshot
	nfts, err = ts.im.Fetch(mockCtx, slug)
	ts.NoError(err)
	ts.Equal([]nft.NFT{}, nfts)
	ts.opensea.AssertNumberOfCalls(ts.T(), "GetBestListings", 1)
	ts.opensea.AssertNotCalled(ts.T(), "GetNft", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (ts *testsuite) TestListingsFailureAborts() {
	listErr := errors.New("connection reset")
	ts.opensea.On("GetBestListings", mock.Anything, slug, mock.Anything).Return(nil, listErr).Once()

	nfts, err := ts.im.Fetch(mockCtx, slug)
	ts.Equal(listErr, err)
	ts.Nil(nfts)
	ts.Equal(0, ts.cache.puts)
}
