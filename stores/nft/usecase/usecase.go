package usecase

import (
	"github.com/viney-shih/goroutines"
	"github.com/x-xyz/nftcheckout/base/ctx"
	"github.com/x-xyz/nftcheckout/base/log"
	"github.com/x-xyz/nftcheckout/base/metrics"
	"github.com/x-xyz/nftcheckout/domain"
	"github.com/x-xyz/nftcheckout/domain/nft"
	"github.com/x-xyz/nftcheckout/service/opensea"
)

type Config struct {
	Opensea opensea.Client
	Cache   nft.CacheStore
	// Chain is the opensea chain name used when a listing carries none
	Chain string
	// Contract is used when a listing offer has no token
	Contract domain.Address
	Limit    int
	// Workers caps concurrent metadata requests, defaults to Limit
	Workers int
}

type impl struct {
	opensea  opensea.Client
	cache    nft.CacheStore
	chain    string
	contract domain.Address
	limit    int
	workers  int
	met      metrics.Service
}

func New(cfg *Config) nft.Usecase {
	im := &impl{
		opensea:  cfg.Opensea,
		cache:    cfg.Cache,
		chain:    cfg.Chain,
		contract: cfg.Contract,
		limit:    cfg.Limit,
		workers:  cfg.Workers,
		met:      metrics.New("nft"),
	}
	if im.limit <= 0 {
		im.limit = domain.DefaultListingLimit
	}
	if im.workers <= 0 {
		im.workers = im.limit
	}
	if im.contract.IsEmpty() {
		im.contract = domain.DefaultCollectionContract
	}
	if im.chain == "" {
		im.chain = domain.SupportedChainIds[domain.ChainIdEthereum]
	}
	return im
}

// fetched pairs an nft with the listing that requested it
type fetched struct {
	nft     nft.NFT
	listing nft.Listing
}

func (im *impl) Fetch(c ctx.Ctx, collectionSlug string) ([]nft.NFT, error) {
	if nfts, ok := im.cache.Get(c); ok {
		im.met.BumpSum("cache.hit", 1)
		return nfts, nil
	}
	im.met.BumpSum("cache.miss", 1)
	defer im.met.BumpTime("fetch.time").End()

	resp, err := im.opensea.GetBestListings(c, collectionSlug, opensea.WithLimit(im.limit))
	if err != nil {
		c.WithFields(log.Fields{
			"err":        err,
			"collection": collectionSlug,
		}).Error("opensea.GetBestListings failed")
		return nil, err
	}

	nfts := im.fetchMetadata(c, resp.Listings)

	if err := im.cache.Put(c, nfts); err != nil {
		c.WithField("err", err).Warn("cache.Put failed")
	}
	return nfts, nil
}

// job is one metadata request derived from a listing
type job struct {
	chain    string
	contract domain.Address
	id       domain.TokenId
	listing  nft.Listing
}

func (im *impl) jobs(c ctx.Ctx, listings []nft.Listing) []job {
	jobs := make([]job, 0, len(listings))
	for _, listing := range listings {
		id, contract, err := listing.TokenIdentifier()
		if err != nil {
			c.WithFields(log.Fields{
				"err":       err,
				"orderHash": listing.OrderHash,
			}).Warn("skip listing")
			continue
		}
		if contract.IsEmpty() {
			contract = im.contract
		}
		chain := listing.Chain
		if chain == "" {
			chain = im.chain
		}
		jobs = append(jobs, job{chain: chain, contract: contract, id: id, listing: listing})
	}
	return jobs
}

// fetchMetadata requests every listed nft concurrently and keeps the first
// response to complete for each identifier
func (im *impl) fetchMetadata(c ctx.Ctx, listings []nft.Listing) []nft.NFT {
	nfts := []nft.NFT{}
	jobs := im.jobs(c, listings)
	if len(jobs) == 0 {
		return nfts
	}

	workers := im.workers
	if workers > len(jobs) {
		workers = len(jobs)
	}
	b := goroutines.NewBatch(workers, goroutines.WithBatchSize(len(jobs)))
	defer b.Close()

	for i := range jobs {
		j := jobs[i]
		b.Queue(func() (interface{}, error) {
			resp, err := im.opensea.GetNft(c, j.chain, j.contract, j.id)
			if err != nil {
				return nil, err
			}
			return &fetched{nft: resp.Nft, listing: j.listing}, nil
		})
	}
	b.QueueComplete()

	seen := make(map[domain.TokenId]struct{})
	for ret := range b.Results() {
		if ret.Error() != nil {
			im.met.BumpSum("metadata.err", 1)
			c.WithField("err", ret.Error()).Warn("opensea.GetNft failed")
			continue
		}
		f := ret.Value().(*fetched)
		if _, ok := seen[f.nft.Identifier]; ok {
			continue
		}
		seen[f.nft.Identifier] = struct{}{}
		n := f.nft
		n.Listing = &f.listing
		nfts = append(nfts, n)
	}
	return nfts
}
