package purchase

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/x-xyz/nftcheckout/base/ctx"
	"github.com/x-xyz/nftcheckout/domain"
	"github.com/x-xyz/nftcheckout/domain/nft"
)

var (
	ErrNoListing           = errors.New("nft has no listing")
	ErrMalformedListing    = errors.New("malformed listing")
	ErrUnsupportedMode     = errors.New("unsupported purchase mode")
	ErrPurchaseUnavailable = errors.New("purchase unavailable")
)

type Mode int

const (
	ModeMarketplaceFulfillment Mode = iota
	ModeSimpleMint
)

func (m Mode) String() string {
	switch m {
	case ModeMarketplaceFulfillment:
		return "marketplace"
	case ModeSimpleMint:
		return "mint"
	}
	return "unknown"
}

// RequiresListing is true for modes that can only buy listed nfts
func (m Mode) RequiresListing() bool {
	return m == ModeMarketplaceFulfillment
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "marketplace", "fulfillment", "marketplace_fulfillment":
		return ModeMarketplaceFulfillment, nil
	case "mint", "simple_mint":
		return ModeSimpleMint, nil
	}
	return 0, ErrUnsupportedMode
}

// DestinationContract describes the call the funding widget executes for the user
type DestinationContract struct {
	ContractAddress  domain.Address `json:"contractAddress"`
	ContractName     string         `json:"contractName"`
	ContractLogoURI  string         `json:"contractLogoURI,omitempty"`
	ContractGasLimit string         `json:"contractGasLimit"`
	ContractPayload  string         `json:"contractPayload"`
	CalldataABI      string         `json:"calldataABI,omitempty"`
	CalldataParams   string         `json:"calldataParams,omitempty"`
}

// Request lives only while a purchase is being handed to the widget
type Request struct {
	NFT             nft.NFT
	RequestedAmount decimal.Decimal
	Destination     DestinationContract
}

type Builder interface {
	Build(n *nft.NFT, mode Mode, recipient domain.Address) (decimal.Decimal, *DestinationContract, error)
}

// Widget is the external funding/checkout modal
type Widget interface {
	UpdateRequestedAmount(amount decimal.Decimal)
	UpdateDestinationContract(dest DestinationContract)
	OpenModal()
	Close()
}

// Target is the selection state a purchase runs against
type Target interface {
	// TryBeginProcessing checks that a purchase can start and marks the target
	// processing in one step. It returns the wallet and selection to purchase
	// with, or ok false and leaves the target untouched.
	TryBeginProcessing(requireListing bool) (wallet *domain.Wallet, selected *nft.NFT, ok bool)
	SetProcessing(processing bool)
	ClearSelection()
}

type Orchestrator interface {
	Mode() Mode
	Execute(c ctx.Ctx, target Target, widget Widget) error
}
