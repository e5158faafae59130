package usecase

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"
	"github.com/x-xyz/nftcheckout/base/abi"
	pricefomatter "github.com/x-xyz/nftcheckout/base/price_fomatter"
	"github.com/x-xyz/nftcheckout/domain"
	"github.com/x-xyz/nftcheckout/domain/nft"
	"github.com/x-xyz/nftcheckout/domain/purchase"
	"golang.org/x/xerrors"
)

const (
	marketplaceGasLimit = "300000"
	mintGasLimit        = "200000"
)

// MintToken switches simple mint to the mint-with-token variant
type MintToken struct {
	Token  domain.Address
	Amount *big.Int
}

type BuilderCfg struct {
	SeaportContract    domain.Address
	// CollectionContract stands in for an offer item without a token, as the
	// listing fetcher does
	CollectionContract domain.Address
	// MarketplaceName is shown by the widget for fulfillment payloads
	MarketplaceName    string
	MintingContract    domain.Address
	MintName           string
	MintPrice          decimal.Decimal
	MintToken          *MintToken
	LogoURI            string
}

type builder struct {
	cfg BuilderCfg
}

func NewBuilder(cfg BuilderCfg) purchase.Builder {
	if cfg.SeaportContract.IsEmpty() {
		cfg.SeaportContract = domain.DefaultSeaportContract
	}
	if cfg.CollectionContract.IsEmpty() {
		cfg.CollectionContract = domain.DefaultCollectionContract
	}
	if cfg.MarketplaceName == "" {
		cfg.MarketplaceName = "RampX NFT"
	}
	if cfg.MintingContract.IsEmpty() {
		cfg.MintingContract = domain.DefaultMintingContract
	}
	if cfg.MintName == "" {
		cfg.MintName = "RampX Mint"
	}
	if cfg.MintPrice.IsZero() {
		cfg.MintPrice = decimal.RequireFromString(domain.DefaultMintPrice)
	}
	if cfg.LogoURI == "" {
		cfg.LogoURI = domain.DefaultLogoURI
	}
	return &builder{cfg: cfg}
}

func (b *builder) Build(n *nft.NFT, mode purchase.Mode, recipient domain.Address) (decimal.Decimal, *purchase.DestinationContract, error) {
	switch mode {
	case purchase.ModeMarketplaceFulfillment:
		return b.buildFulfillment(n)
	case purchase.ModeSimpleMint:
		return b.buildMint(recipient)
	}
	return decimal.Zero, nil, purchase.ErrUnsupportedMode
}

func (b *builder) buildFulfillment(n *nft.NFT) (decimal.Decimal, *purchase.DestinationContract, error) {
	if n == nil || n.Listing == nil {
		return decimal.Zero, nil, purchase.ErrNoListing
	}
	listing := n.Listing

	price, err := pricefomatter.ToDisplayPrice(listing.Price.Current.Value, listing.Price.Current.Decimals)
	if err != nil {
		return decimal.Zero, nil, malformed("price", err)
	}

	fallback := n.Contract
	if fallback.IsEmpty() {
		fallback = b.cfg.CollectionContract
	}
	params, err := basicOrderParameters(listing, fallback)
	if err != nil {
		return decimal.Zero, nil, err
	}
	data, err := abi.PackFulfillBasicOrder(*params)
	if err != nil {
		return decimal.Zero, nil, malformed("pack", err)
	}

	payload := hexutil.Encode(data)
	return price, &purchase.DestinationContract{
		ContractAddress:  b.cfg.SeaportContract,
		ContractName:     b.cfg.MarketplaceName,
		ContractLogoURI:  b.cfg.LogoURI,
		ContractGasLimit: marketplaceGasLimit,
		ContractPayload:  payload,
		CalldataABI:      abi.FulfillBasicOrderABIJson,
		CalldataParams:   payload,
	}, nil
}

func (b *builder) buildMint(recipient domain.Address) (decimal.Decimal, *purchase.DestinationContract, error) {
	if !common.IsHexAddress(string(recipient)) {
		return decimal.Zero, nil, domain.ErrInvalidAddress
	}
	to := common.HexToAddress(string(recipient))

	var (
		data   []byte
		method string
		err    error
	)
	if t := b.cfg.MintToken; t != nil {
		method = abi.MintWithTokenMethod
		data, err = abi.PackMintWithToken(to, common.HexToAddress(string(t.Token)), t.Amount)
	} else {
		method = abi.MintToMethod
		data, err = abi.PackMintTo(to, big.NewInt(1))
	}
	if err != nil {
		return decimal.Zero, nil, xerrors.Errorf("pack %s: %w", method, err)
	}

	payload := hexutil.Encode(data)
	return b.cfg.MintPrice, &purchase.DestinationContract{
		ContractAddress:  b.cfg.MintingContract,
		ContractName:     b.cfg.MintName,
		ContractLogoURI:  b.cfg.LogoURI,
		ContractGasLimit: mintGasLimit,
		ContractPayload:  payload,
		CalldataABI:      abi.MethodABIJson(method),
		CalldataParams:   payload,
	}, nil
}

func malformed(field string, err error) error {
	return xerrors.Errorf("%s: %v: %w", field, err, purchase.ErrMalformedListing)
}

// basicOrderType = orderType + 4 * route
func basicOrderType(orderType int, consideration nft.ConsiderationItem, offer nft.OfferItem) (uint8, error) {
	if orderType < 0 || orderType > 3 {
		return 0, malformed("orderType", xerrors.Errorf("unsupported %d", orderType))
	}
	var route int
	switch {
	case consideration.ItemType == nft.ItemTypeNative && offer.ItemType == nft.ItemTypeErc721:
		route = 0
	case consideration.ItemType == nft.ItemTypeNative && offer.ItemType == nft.ItemTypeErc1155:
		route = 1
	case consideration.ItemType == nft.ItemTypeErc20 && offer.ItemType == nft.ItemTypeErc721:
		route = 2
	case consideration.ItemType == nft.ItemTypeErc20 && offer.ItemType == nft.ItemTypeErc1155:
		route = 3
	default:
		return 0, malformed("itemType", xerrors.Errorf("unsupported route %d -> %d", consideration.ItemType, offer.ItemType))
	}
	return uint8(orderType + 4*route), nil
}

func basicOrderParameters(listing *nft.Listing, fallbackContract domain.Address) (*abi.BasicOrderParameters, error) {
	p := listing.ProtocolData.Parameters
	if len(p.Offer) == 0 {
		return nil, malformed("offer", nft.ErrListingWithoutOffer)
	}
	if len(p.Consideration) == 0 {
		return nil, malformed("consideration", xerrors.New("listing has no consideration item"))
	}
	offer := p.Offer[0]
	if offer.Token.IsEmpty() {
		offer.Token = fallbackContract
	}
	consideration := p.Consideration[0]

	orderType, err := basicOrderType(p.OrderType, consideration, offer)
	if err != nil {
		return nil, err
	}

	ints := map[string]string{
		"considerationIdentifier": consideration.IdentifierOrCriteria,
		"considerationAmount":     consideration.EndAmount,
		"offerIdentifier":         offer.IdentifierOrCriteria,
		"offerAmount":             offer.EndAmount,
		"startTime":               p.StartTime,
		"endTime":                 p.EndTime,
		"salt":                    p.Salt,
	}
	parsed := make(map[string]*big.Int, len(ints))
	for field, s := range ints {
		v, ok := new(big.Int).SetString(s, 0)
		if !ok || v.Sign() < 0 {
			return nil, malformed(field, xerrors.Errorf("not an unsigned integer %q", s))
		}
		parsed[field] = v
	}

	addrs := map[string]domain.Address{
		"considerationToken": consideration.Token,
		"offerer":            p.Offerer,
		"zone":               p.Zone,
		"offerToken":         offer.Token,
	}
	for field, a := range addrs {
		if !common.IsHexAddress(string(a)) {
			return nil, malformed(field, domain.ErrInvalidAddress)
		}
	}

	zoneHash, err := bytes32(p.ZoneHash)
	if err != nil {
		return nil, malformed("zoneHash", err)
	}
	conduitKey, err := bytes32(p.ConduitKey)
	if err != nil {
		return nil, malformed("conduitKey", err)
	}
	sig, err := hexutil.Decode(listing.Signature())
	if err != nil {
		return nil, malformed("signature", err)
	}

	return &abi.BasicOrderParameters{
		ConsiderationToken:                common.HexToAddress(string(consideration.Token)),
		ConsiderationIdentifier:           parsed["considerationIdentifier"],
		ConsiderationAmount:               parsed["considerationAmount"],
		Offerer:                           common.HexToAddress(string(p.Offerer)),
		Zone:                              common.HexToAddress(string(p.Zone)),
		OfferToken:                        common.HexToAddress(string(offer.Token)),
		OfferIdentifier:                   parsed["offerIdentifier"],
		OfferAmount:                       parsed["offerAmount"],
		BasicOrderType:                    orderType,
		StartTime:                         parsed["startTime"],
		EndTime:                           parsed["endTime"],
		ZoneHash:                          zoneHash,
		Salt:                              parsed["salt"],
		OffererConduitKey:                 conduitKey,
		FulfillerConduitKey:               [32]byte{},
		TotalOriginalAdditionalRecipients: big.NewInt(0),
		AdditionalRecipients:              []abi.AdditionalRecipient{},
		Signature:                         sig,
	}, nil
}

// bytes32 accepts an empty string as the zero value
func bytes32(s string) ([32]byte, error) {
	if s == "" {
		return [32]byte{}, nil
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return [32]byte{}, err
	}
	if len(b) != 32 {
		return [32]byte{}, xerrors.Errorf("want 32 bytes, got %d", len(b))
	}
	return common.BytesToHash(b), nil
}
