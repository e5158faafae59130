package usecase

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	goabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/nftcheckout/base/abi"
	"github.com/x-xyz/nftcheckout/domain"
	"github.com/x-xyz/nftcheckout/domain/nft"
	"github.com/x-xyz/nftcheckout/domain/purchase"
)

var (
	buyer      = domain.Address("0x2222222222222222222222222222222222222222")
	conduitKey = "0x0000007b02230091a7ed01230072f7006a004d60a8d4e71d599b8104250f0000"
)

func listedNft() *nft.NFT {
	return &nft.NFT{
		Identifier: "42",
		Contract:   domain.DefaultCollectionContract,
		Listing: &nft.Listing{
			OrderHash: "0xabc",
			Price: nft.Price{Current: nft.CurrentPrice{
				Currency: "ETH",
				Value:    "1000000000000000000",
				Decimals: 18,
			}},
			ProtocolData: nft.ProtocolData{
				Parameters: nft.OrderParameters{
					Offerer: "0x1111111111111111111111111111111111111111",
					Zone:    "0x0000000000000000000000000000000000000000",
					Offer: []nft.OfferItem{{
						ItemType:             nft.ItemTypeErc721,
						Token:                domain.DefaultCollectionContract,
						IdentifierOrCriteria: "42",
						StartAmount:          "1",
						EndAmount:            "1",
					}},
					Consideration: []nft.ConsiderationItem{{
						ItemType:             nft.ItemTypeNative,
						Token:                "0x0000000000000000000000000000000000000000",
						IdentifierOrCriteria: "0",
						StartAmount:          "975000000000000000",
						EndAmount:            "975000000000000000",
						Recipient:            "0x1111111111111111111111111111111111111111",
					}},
					OrderType:  0,
					StartTime:  "1700000000",
					EndTime:    "1800000000",
					ZoneHash:   "0x0000000000000000000000000000000000000000000000000000000000000000",
					Salt:       "0x3d958fe20000000000000000000000000000000000000000aa3f1e9a62d2c1f4",
					ConduitKey: conduitKey,
				},
				Signature: "0xdeadbeef",
			},
		},
	}
}

type builderSuite struct {
	suite.Suite
	im *builder
}

func (ts *builderSuite) SetupTest() {
	ts.im = NewBuilder(BuilderCfg{}).(*builder)
}

func TestBuilder(t *testing.T) {
	suite.Run(t, new(builderSuite))
}

func (ts *builderSuite) decode(payload string) abi.BasicOrderParameters {
	data, err := hexutil.Decode(payload)
	ts.Require().NoError(err)
	method := abi.SeaportABI.Methods[abi.FulfillBasicOrderMethod]
	ts.Require().Equal(method.ID, data[:4])
	args, err := method.Inputs.Unpack(data[4:])
	ts.Require().NoError(err)
	return *goabi.ConvertType(args[0], new(abi.BasicOrderParameters)).(*abi.BasicOrderParameters)
}

func (ts *builderSuite) TestFulfillment() {
	amount, dest, err := ts.im.Build(listedNft(), purchase.ModeMarketplaceFulfillment, buyer)
	ts.NoError(err)
	ts.Equal("1", amount.String())
	ts.Equal(domain.DefaultSeaportContract, dest.ContractAddress)
	ts.Equal("RampX NFT", dest.ContractName)
	ts.Equal(marketplaceGasLimit, dest.ContractGasLimit)
	ts.Equal(domain.DefaultLogoURI, dest.ContractLogoURI)
	ts.Equal(dest.ContractPayload, dest.CalldataParams)
	ts.Equal(abi.FulfillBasicOrderABIJson, dest.CalldataABI)

	p := ts.decode(dest.ContractPayload)
	ts.Equal(common.HexToAddress("0x1111111111111111111111111111111111111111"), p.Offerer)
	ts.Equal(common.HexToAddress(string(domain.DefaultCollectionContract)), p.OfferToken)
	ts.Zero(big.NewInt(42).Cmp(p.OfferIdentifier))
	ts.Zero(big.NewInt(1).Cmp(p.OfferAmount))
	ts.Equal(common.Address{}, p.ConsiderationToken)
	ts.Equal("975000000000000000", p.ConsiderationAmount.String())
	ts.Equal(uint8(0), p.BasicOrderType)
	ts.Equal("1700000000", p.StartTime.String())
	ts.Equal("1800000000", p.EndTime.String())
	salt, _ := new(big.Int).SetString("3d958fe20000000000000000000000000000000000000000aa3f1e9a62d2c1f4", 16)
	ts.Zero(salt.Cmp(p.Salt))
	ts.Equal(common.HexToHash(conduitKey), common.Hash(p.OffererConduitKey))
	ts.Equal([32]byte{}, p.FulfillerConduitKey)
	ts.Zero(p.TotalOriginalAdditionalRecipients.Sign())
	ts.Empty(p.AdditionalRecipients)
	ts.Equal([]byte{0xde, 0xad, 0xbe, 0xef}, p.Signature)
}

func (ts *builderSuite) TestFulfillmentSignatureInParameters() {
	n := listedNft()
	n.Listing.ProtocolData.Signature = ""
	n.Listing.ProtocolData.Parameters.Signature = "0x01"
	_, dest, err := ts.im.Build(n, purchase.ModeMarketplaceFulfillment, buyer)
	ts.NoError(err)
	ts.Equal([]byte{0x01}, ts.decode(dest.ContractPayload).Signature)
}

func (ts *builderSuite) TestFulfillmentOfferTokenFallback() {
	collection := domain.Address("0x00000000000000000000000000000000000000c1")
	im := NewBuilder(BuilderCfg{CollectionContract: collection})

	n := listedNft()
	n.Contract = ""
	n.Listing.ProtocolData.Parameters.Offer[0].Token = ""
	_, dest, err := im.Build(n, purchase.ModeMarketplaceFulfillment, buyer)
	ts.Require().NoError(err)
	ts.Equal(common.HexToAddress(string(collection)), ts.decode(dest.ContractPayload).OfferToken)

	n = listedNft()
	n.Listing.ProtocolData.Parameters.Offer[0].Token = ""
	_, dest, err = im.Build(n, purchase.ModeMarketplaceFulfillment, buyer)
	ts.Require().NoError(err)
	ts.Equal(common.HexToAddress(string(domain.DefaultCollectionContract)), ts.decode(dest.ContractPayload).OfferToken, "nft contract first")
}

func (ts *builderSuite) TestBasicOrderType() {
	cases := []struct {
		Desc          string
		OrderType     int
		Consideration int
		Offer         int
		Want          uint8
		Err           bool
	}{
		{Desc: "eth for 721 full open", OrderType: 0, Consideration: nft.ItemTypeNative, Offer: nft.ItemTypeErc721, Want: 0},
		{Desc: "eth for 721 partial restricted", OrderType: 3, Consideration: nft.ItemTypeNative, Offer: nft.ItemTypeErc721, Want: 3},
		{Desc: "eth for 1155", OrderType: 1, Consideration: nft.ItemTypeNative, Offer: nft.ItemTypeErc1155, Want: 5},
		{Desc: "erc20 for 721", OrderType: 2, Consideration: nft.ItemTypeErc20, Offer: nft.ItemTypeErc721, Want: 10},
		{Desc: "erc20 for 1155", OrderType: 0, Consideration: nft.ItemTypeErc20, Offer: nft.ItemTypeErc1155, Want: 12},
		{Desc: "721 for eth", OrderType: 0, Consideration: nft.ItemTypeErc721, Offer: nft.ItemTypeNative, Err: true},
		{Desc: "contract order", OrderType: 4, Consideration: nft.ItemTypeNative, Offer: nft.ItemTypeErc721, Err: true},
	}
	for _, c := range cases {
		got, err := basicOrderType(c.OrderType, nft.ConsiderationItem{ItemType: c.Consideration}, nft.OfferItem{ItemType: c.Offer})
		if c.Err {
			ts.True(errors.Is(err, purchase.ErrMalformedListing), c.Desc)
			continue
		}
		ts.NoError(err, c.Desc)
		ts.Equal(c.Want, got, c.Desc)
	}
}

func (ts *builderSuite) TestFulfillmentErrors() {
	_, _, err := ts.im.Build(&nft.NFT{Identifier: "1"}, purchase.ModeMarketplaceFulfillment, buyer)
	ts.Equal(purchase.ErrNoListing, err)

	_, _, err = ts.im.Build(nil, purchase.ModeMarketplaceFulfillment, buyer)
	ts.Equal(purchase.ErrNoListing, err)

	cases := []struct {
		Desc   string
		Mutate func(*nft.NFT)
		Field  string
	}{
		{Desc: "no offer", Mutate: func(n *nft.NFT) { n.Listing.ProtocolData.Parameters.Offer = nil }, Field: "offer"},
		{Desc: "no consideration", Mutate: func(n *nft.NFT) { n.Listing.ProtocolData.Parameters.Consideration = nil }, Field: "consideration"},
		{Desc: "bad price", Mutate: func(n *nft.NFT) { n.Listing.Price.Current.Value = "one" }, Field: "price"},
		{Desc: "negative price", Mutate: func(n *nft.NFT) { n.Listing.Price.Current.Value = "-1" }, Field: "price"},
		{Desc: "negative decimals", Mutate: func(n *nft.NFT) { n.Listing.Price.Current.Decimals = -1 }, Field: "price"},
		{Desc: "bad salt", Mutate: func(n *nft.NFT) { n.Listing.ProtocolData.Parameters.Salt = "0xzz" }, Field: "salt"},
		{Desc: "empty end time", Mutate: func(n *nft.NFT) { n.Listing.ProtocolData.Parameters.EndTime = "" }, Field: "endTime"},
		{Desc: "bad offerer", Mutate: func(n *nft.NFT) { n.Listing.ProtocolData.Parameters.Offerer = "bob" }, Field: "offerer"},
		{Desc: "short zone hash", Mutate: func(n *nft.NFT) { n.Listing.ProtocolData.Parameters.ZoneHash = "0x01" }, Field: "zoneHash"},
		{Desc: "bad signature", Mutate: func(n *nft.NFT) { n.Listing.ProtocolData.Signature = "nope" }, Field: "signature"},
	}
	for _, c := range cases {
		n := listedNft()
		c.Mutate(n)
		amount, dest, err := ts.im.Build(n, purchase.ModeMarketplaceFulfillment, buyer)
		ts.True(errors.Is(err, purchase.ErrMalformedListing), c.Desc)
		ts.True(strings.HasPrefix(err.Error(), c.Field+":"), "%s: %v", c.Desc, err)
		ts.Nil(dest, c.Desc)
		ts.True(amount.IsZero(), c.Desc)
	}
}

func (ts *builderSuite) TestSimpleMint() {
	amount, dest, err := ts.im.Build(nil, purchase.ModeSimpleMint, buyer)
	ts.NoError(err)
	ts.Equal("0.0001", amount.String())
	ts.Equal(domain.DefaultMintingContract, dest.ContractAddress)
	ts.Equal("RampX Mint", dest.ContractName)
	ts.Equal(mintGasLimit, dest.ContractGasLimit)
	ts.Equal(abi.MethodABIJson(abi.MintToMethod), dest.CalldataABI)

	expected, err := abi.PackMintTo(common.HexToAddress(string(buyer)), big.NewInt(1))
	ts.NoError(err)
	ts.Equal(hexutil.Encode(expected), dest.ContractPayload)
	ts.Equal(dest.ContractPayload, dest.CalldataParams)

	// listing is irrelevant for mint
	amount2, dest2, err := ts.im.Build(listedNft(), purchase.ModeSimpleMint, buyer)
	ts.NoError(err)
	ts.True(amount.Equal(amount2))
	ts.Equal(dest, dest2)

	_, _, err = ts.im.Build(nil, purchase.ModeSimpleMint, "not-an-address")
	ts.Equal(domain.ErrInvalidAddress, err)
}

func (ts *builderSuite) TestMintWithToken() {
	token := domain.Address("0x532f27101965dd16442e59d40670faf5ebb142e4")
	im := NewBuilder(BuilderCfg{
		MintPrice: decimal.RequireFromString("0.002"),
		MintToken: &MintToken{Token: token, Amount: big.NewInt(1000)},
	})
	amount, dest, err := im.Build(nil, purchase.ModeSimpleMint, buyer)
	ts.NoError(err)
	ts.Equal("0.002", amount.String())
	ts.Equal(abi.MethodABIJson(abi.MintWithTokenMethod), dest.CalldataABI)

	data, err := hexutil.Decode(dest.ContractPayload)
	ts.NoError(err)
	method := abi.MintABI.Methods[abi.MintWithTokenMethod]
	ts.Equal(method.ID, data[:4])
	args, err := method.Inputs.Unpack(data[4:])
	ts.NoError(err)
	ts.Equal(common.HexToAddress(string(buyer)), args[0])
	ts.Equal(common.HexToAddress(string(token)), args[1])
	ts.Equal("1000", args[2].(*big.Int).String())
}

func (ts *builderSuite) TestUnsupportedMode() {
	_, _, err := ts.im.Build(listedNft(), purchase.Mode(9), buyer)
	ts.Equal(purchase.ErrUnsupportedMode, err)
}
