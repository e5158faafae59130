package opensea

import (
	"errors"
	"net/http"
	"time"

	bCtx "github.com/x-xyz/nftcheckout/base/ctx"
	"github.com/x-xyz/nftcheckout/domain"
	"github.com/x-xyz/nftcheckout/domain/nft"
)

var (
	ErrStatusCodeNotOk = errors.New("http.status != 200")
)

type ListingOptions struct {
	Limit  int
	Cursor *string
}

type ListingOptionsFunc func(*ListingOptions) error

func ParseListingOptions(opts ...ListingOptionsFunc) (ListingOptions, error) {
	opt := ListingOptions{Limit: domain.DefaultListingLimit}
	for _, f := range opts {
		err := f(&opt)
		if err != nil {
			return opt, err
		}
	}
	return opt, nil
}

func WithLimit(limit int) ListingOptionsFunc {
	return func(opt *ListingOptions) error {
		if limit <= 0 {
			return domain.ErrBadParamInput
		}
		opt.Limit = limit
		return nil
	}
}

func WithCursor(c string) ListingOptionsFunc {
	return func(opt *ListingOptions) error {
		opt.Cursor = &c
		return nil
	}
}

type Client interface {
	// GetBestListings returns the cheapest active listing per nft of a collection
	GetBestListings(ctx bCtx.Ctx, collectionSlug string, opts ...ListingOptionsFunc) (*ListingsResp, error)
	GetNft(ctx bCtx.Ctx, chain string, contract domain.Address, identifier domain.TokenId) (*NftResp, error)
}

type ClientCfg struct {
	HttpClient http.Client
	Timeout    time.Duration
	Apikey     string
	// BaseUrl defaults to the public v2 api
	BaseUrl string
}

type ListingsResp struct {
	Listings []nft.Listing `json:"listings"`
	Next     string        `json:"next"`
}

type NftResp struct {
	Nft nft.NFT `json:"nft"`
}
