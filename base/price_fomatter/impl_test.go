package pricefomatter

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	bCtx "github.com/x-xyz/nftcheckout/base/ctx"
	"github.com/x-xyz/nftcheckout/domain/nft"
)

type testsuite struct {
	suite.Suite
	im *impl
}

func (ts *testsuite) SetupTest() {
	ts.im = NewPriceFormatter(&PriceFormatterCfg{}).(*impl)
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestToDisplayPrice() {
	cases := []struct {
		Desc     string
		Value    string
		Decimals int32
		Want     string
		Err      error
	}{
		{Desc: "one eth", Value: "1000000000000000000", Decimals: 18, Want: "1"},
		{Desc: "listing", Value: "1700000000000000", Decimals: 18, Want: "0.0017"},
		{Desc: "usdc", Value: "2500000", Decimals: 6, Want: "2.5"},
		{Desc: "no decimals", Value: "3", Decimals: 0, Want: "3"},
		{Desc: "garbage", Value: "1e18", Decimals: 18, Err: ErrInvalidPrice},
		{Desc: "negative value", Value: "-1000000000000000000", Decimals: 18, Err: ErrInvalidPrice},
		{Desc: "negative decimals", Value: "1", Decimals: -2, Err: ErrInvalidPrice},
	}
	for _, c := range cases {
		d, err := ts.im.ToDisplayPrice(c.Value, c.Decimals)
		if c.Err != nil {
			ts.True(errors.Is(err, c.Err), c.Desc)
			continue
		}
		ts.NoError(err, c.Desc)
		ts.Equal(c.Want, d.String(), c.Desc)
	}
}

func (ts *testsuite) TestConvertEthToBrett() {
	ts.Equal("71000.00", ts.im.ConvertEthToBrett(decimal.NewFromInt(1)).StringFixed(2))
	ts.Equal("120.70", ts.im.ConvertEthToBrett(decimal.RequireFromString("0.0017")).StringFixed(2))

	custom := NewPriceFormatter(&PriceFormatterCfg{EthToBrettRate: decimal.NewFromInt(10)})
	ts.Equal("5", custom.ConvertEthToBrett(decimal.RequireFromString("0.5")).String())
}

func (ts *testsuite) TestNftPrice() {
	c := bCtx.Background()
	ts.Equal("0.0017", ts.im.NftPrice(c, nil).String())
	ts.Equal("0.0017", ts.im.NftPrice(c, &nft.NFT{Identifier: "1"}).String())

	listed := &nft.NFT{Listing: &nft.Listing{Price: nft.Price{Current: nft.CurrentPrice{Value: "20000000000000000", Decimals: 18}}}}
	ts.Equal("0.02", ts.im.NftPrice(c, listed).String())

	broken := &nft.NFT{Listing: &nft.Listing{Price: nft.Price{Current: nft.CurrentPrice{Value: "", Decimals: 18}}}}
	ts.Equal("0.0017", ts.im.NftPrice(c, broken).String())
}

func (ts *testsuite) TestLabel() {
	ts.Equal(Label{Eth: "1", Brett: "71000.00"}, ts.im.Label(decimal.NewFromInt(1)))
}
