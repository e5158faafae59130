package opensea

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	bCtx "github.com/x-xyz/nftcheckout/base/ctx"
	"github.com/x-xyz/nftcheckout/base/log"
	"github.com/x-xyz/nftcheckout/base/metrics"
	"github.com/x-xyz/nftcheckout/domain"
)

const (
	bearerKey = "X-API-KEY"
	v2Api     = "https://api.opensea.io/api/v2"

	defaultTimeout = 10 * time.Second
)

func NewClient(cfg *ClientCfg) Client {
	base := cfg.BaseUrl
	if base == "" {
		base = v2Api
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &client{
		client:  cfg.HttpClient,
		timeout: timeout,
		apikey:  cfg.Apikey,
		base:    base,
		met:     metrics.New("opensea"),
	}
}

type client struct {
	client  http.Client
	timeout time.Duration
	apikey  string
	base    string
	met     metrics.Service
}

func (c *client) GetBestListings(ctx bCtx.Ctx, slug string, opts ...ListingOptionsFunc) (*ListingsResp, error) {
	opt, err := ParseListingOptions(opts...)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Add("limit", strconv.Itoa(opt.Limit))
	if opt.Cursor != nil && *opt.Cursor != "" {
		params.Add("next", *opt.Cursor)
	}

	u := fmt.Sprintf("%s/listings/collection/%s/best?%s", c.base, url.PathEscape(slug), params.Encode())
	data, err := c.get(ctx, "best_listings", u)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": u,
			"err": err,
		}).Error("c.get failed")
		return nil, err
	}
	resp := &ListingsResp{}
	if err := json.Unmarshal(data, resp); err != nil {
		ctx.WithField("err", err).Error("json.Unmarshal failed")
		return nil, err
	}
	return resp, nil
}

func (c *client) GetNft(ctx bCtx.Ctx, chain string, contract domain.Address, identifier domain.TokenId) (*NftResp, error) {
	u := fmt.Sprintf("%s/chain/%s/contract/%s/nfts/%s", c.base, chain, contract.ToLowerStr(), url.PathEscape(identifier.String()))
	data, err := c.get(ctx, "nft", u)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": u,
			"err": err,
		}).Error("c.get failed")
		return nil, err
	}
	resp := &NftResp{}
	if err := json.Unmarshal(data, resp); err != nil {
		ctx.WithField("err", err).Error("json.Unmarshal failed")
		return nil, err
	}
	return resp, nil
}

func (c *client) get(ctx bCtx.Ctx, endpoint, url string) ([]byte, error) {
	defer c.met.BumpTime("get.latency", "endpoint", endpoint).End()
	ctx, cancel := bCtx.WithTimeout(ctx, c.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("NewRequestWithContext failed")
		return nil, err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set(bearerKey, c.apikey)
	resp, err := c.client.Do(req)
	if err != nil {
		c.met.BumpSum("get.err", 1, "endpoint", endpoint, "reason", "do")
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("client.Do failed")
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		c.met.BumpSum("get.err", 1, "endpoint", endpoint, "reason", strconv.Itoa(resp.StatusCode))
		ctx.WithFields(log.Fields{
			"url":        url,
			"statusCode": resp.StatusCode,
		}).Error("resp.StatusCode != 200")
		return nil, ErrStatusCodeNotOk
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("failed to read body")
		return nil, err
	}
	return body, nil
}
