package pricefomatter

import (
	"math/big"

	"github.com/shopspring/decimal"
	bCtx "github.com/x-xyz/nftcheckout/base/ctx"
	"github.com/x-xyz/nftcheckout/base/log"
	"github.com/x-xyz/nftcheckout/domain"
	"github.com/x-xyz/nftcheckout/domain/nft"
	"golang.org/x/xerrors"
)

const brettPlaces = 2

type PriceFormatterCfg struct {
	// EthToBrettRate is how many BRETT one ETH buys
	EthToBrettRate decimal.Decimal
	// DisplayPrice is shown for nfts without a listing
	DisplayPrice decimal.Decimal
}

type impl struct {
	rate         decimal.Decimal
	displayPrice decimal.Decimal
}

func NewPriceFormatter(cfg *PriceFormatterCfg) PriceFormatter {
	rate := cfg.EthToBrettRate
	if rate.IsZero() {
		rate = decimal.NewFromInt(domain.DefaultEthToBrettRate)
	}
	displayPrice := cfg.DisplayPrice
	if displayPrice.IsZero() {
		displayPrice = decimal.RequireFromString(domain.DefaultDisplayPrice)
	}
	return &impl{
		rate:         rate,
		displayPrice: displayPrice,
	}
}

// ToDisplayPrice is value / 10^decimals, both must be non negative
func ToDisplayPrice(value string, decimals int32) (decimal.Decimal, error) {
	n, ok := new(big.Int).SetString(value, 10)
	if !ok || n.Sign() < 0 {
		return decimal.Zero, xerrors.Errorf("parse %q: %w", value, ErrInvalidPrice)
	}
	if decimals < 0 {
		return decimal.Zero, xerrors.Errorf("decimals %d: %w", decimals, ErrInvalidPrice)
	}
	return decimal.NewFromBigInt(n, -decimals), nil
}

func (f *impl) ToDisplayPrice(value string, decimals int32) (decimal.Decimal, error) {
	return ToDisplayPrice(value, decimals)
}

func (f *impl) ConvertEthToBrett(eth decimal.Decimal) decimal.Decimal {
	return eth.Mul(f.rate)
}

func (f *impl) NftPrice(ctx bCtx.Ctx, n *nft.NFT) decimal.Decimal {
	if n == nil || n.Listing == nil {
		return f.displayPrice
	}
	current := n.Listing.Price.Current
	p, err := ToDisplayPrice(current.Value, current.Decimals)
	if err != nil {
		ctx.WithFields(log.Fields{
			"identifier": n.Identifier,
			"err":        err,
		}).Warn("ToDisplayPrice failed")
		return f.displayPrice
	}
	return p
}

func (f *impl) Label(eth decimal.Decimal) Label {
	return Label{
		Eth:   eth.String(),
		Brett: f.ConvertEthToBrett(eth).StringFixed(brettPlaces),
	}
}
