package abi

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"
)

func TestFulfillBasicOrderRoundTrip(t *testing.T) {
	req := require.New(t)
	method := SeaportABI.Methods[FulfillBasicOrderMethod]
	req.Equal("fulfillBasicOrder((address,uint256,uint256,address,address,address,uint256,uint256,uint8,uint256,uint256,bytes32,uint256,bytes32,bytes32,uint256,(uint256,address)[],bytes))", method.Sig)
	// well known seaport selector
	req.Equal("0xfb0f3ee1", hexutil.Encode(method.ID))

	in := BasicOrderParameters{
		ConsiderationToken:                common.Address{},
		ConsiderationIdentifier:           big.NewInt(0),
		ConsiderationAmount:               big.NewInt(1700000000000000),
		Offerer:                           common.HexToAddress("0x1111111111111111111111111111111111111111"),
		Zone:                              common.Address{},
		OfferToken:                        common.HexToAddress("0x4db9e0d1631491a3edba3e2cc9e581cac1d29699"),
		OfferIdentifier:                   big.NewInt(42),
		OfferAmount:                       big.NewInt(1),
		BasicOrderType:                    0,
		StartTime:                         big.NewInt(1700000000),
		EndTime:                           big.NewInt(1800000000),
		ZoneHash:                          [32]byte{},
		Salt:                              big.NewInt(12345),
		OffererConduitKey:                 common.HexToHash("0x0000007b02230091a7ed01230072f7006a004d60a8d4e71d599b8104250f0000"),
		FulfillerConduitKey:               [32]byte{},
		TotalOriginalAdditionalRecipients: big.NewInt(0),
		Signature:                         []byte{0xab, 0xcd},
	}
	data, err := PackFulfillBasicOrder(in)
	req.NoError(err)
	req.Equal(method.ID, data[:4])

	args, err := method.Inputs.Unpack(data[4:])
	req.NoError(err)
	req.Len(args, 1)
	out := *abi.ConvertType(args[0], new(BasicOrderParameters)).(*BasicOrderParameters)
	req.Equal(in.Offerer, out.Offerer)
	req.Equal(in.OfferToken, out.OfferToken)
	req.Zero(in.OfferIdentifier.Cmp(out.OfferIdentifier))
	req.Zero(in.ConsiderationAmount.Cmp(out.ConsiderationAmount))
	req.Equal(in.OffererConduitKey, out.OffererConduitKey)
	req.Equal(in.FulfillerConduitKey, out.FulfillerConduitKey)
	req.Equal(in.Signature, out.Signature)
	req.Empty(out.AdditionalRecipients)

	repacked, err := PackFulfillBasicOrder(out)
	req.NoError(err)
	req.Equal(data, repacked)
}

func TestMint(t *testing.T) {
	req := require.New(t)
	recipient := common.HexToAddress("0x2222222222222222222222222222222222222222")

	data, err := PackMintTo(recipient, big.NewInt(1))
	req.NoError(err)
	method := MintABI.Methods[MintToMethod]
	req.Equal(method.ID, data[:4])
	args, err := method.Inputs.Unpack(data[4:])
	req.NoError(err)
	req.Equal(recipient, args[0])
	req.Zero(big.NewInt(1).Cmp(args[1].(*big.Int)))

	token := common.HexToAddress("0x532f27101965dd16442e59d40670faf5ebb142e4")
	data, err = PackMintWithToken(recipient, token, big.NewInt(5))
	req.NoError(err)
	method = MintABI.Methods[MintWithTokenMethod]
	req.Equal("mintWithToken(address,address,uint256)", method.Sig)
	req.Equal(method.ID, data[:4])

	for _, name := range []string{MintToMethod, MintWithTokenMethod, FulfillBasicOrderMethod} {
		parsed, err := abi.JSON(strings.NewReader(MethodABIJson(name)))
		req.NoError(err, name)
		req.Len(parsed.Methods, 1, name)
		req.Contains(parsed.Methods, name)
	}
	req.Equal("", MethodABIJson("burn"))
}

