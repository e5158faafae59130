package pricefomatter

import (
	"errors"

	"github.com/shopspring/decimal"
	bCtx "github.com/x-xyz/nftcheckout/base/ctx"
	"github.com/x-xyz/nftcheckout/domain/nft"
)

var (
	ErrInvalidPrice = errors.New("invalid price value")
)

// Label is the pair of prices shown next to an nft
type Label struct {
	Eth   string `json:"eth"`
	Brett string `json:"brett"`
}

type PriceFormatter interface {
	// ToDisplayPrice scales an integer string by 10^-decimals
	ToDisplayPrice(value string, decimals int32) (decimal.Decimal, error)
	ConvertEthToBrett(eth decimal.Decimal) decimal.Decimal
	// NftPrice is the listing price of n, or the configured display price when unlisted
	NftPrice(ctx bCtx.Ctx, n *nft.NFT) decimal.Decimal
	Label(eth decimal.Decimal) Label
}
