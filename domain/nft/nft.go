package nft

import (
	"errors"

	"github.com/x-xyz/nftcheckout/base/ctx"
	"github.com/x-xyz/nftcheckout/domain"
)

var (
	ErrListingWithoutOffer = errors.New("listing has no offer item")
)

// seaport item types
const (
	ItemTypeNative  = 0
	ItemTypeErc20   = 1
	ItemTypeErc721  = 2
	ItemTypeErc1155 = 3
)

type Trait struct {
	TraitType   string      `json:"trait_type"`
	DisplayType string      `json:"display_type,omitempty"`
	MaxValue    string      `json:"max_value,omitempty"`
	Value       interface{} `json:"value,omitempty"`
}

type NFT struct {
	Identifier          domain.TokenId `json:"identifier"`
	Collection          string         `json:"collection"`
	Contract            domain.Address `json:"contract"`
	TokenStandard       string         `json:"token_standard"`
	Name                string         `json:"name"`
	Description         string         `json:"description"`
	ImageUrl            string         `json:"image_url,omitempty"`
	DisplayImageUrl     string         `json:"display_image_url,omitempty"`
	DisplayAnimationUrl string         `json:"display_animation_url,omitempty"`
	MetadataUrl         string         `json:"metadata_url,omitempty"`
	OpenseaUrl          string         `json:"opensea_url,omitempty"`
	AnimationUrl        string         `json:"animation_url,omitempty"`
	UpdatedAt           string         `json:"updated_at"`
	IsDisabled          bool           `json:"is_disabled"`
	IsNsfw              bool           `json:"is_nsfw"`
	IsSuspicious        bool           `json:"is_suspicious"`
	Creator             domain.Address `json:"creator"`
	Traits              []Trait        `json:"traits"`
	Listing             *Listing       `json:"listing,omitempty"`
}

// PreviewUrl is the image shown in a grid cell, empty when the nft has none
func (n *NFT) PreviewUrl() string {
	if n.DisplayImageUrl != "" {
		return n.DisplayImageUrl
	}
	return n.ImageUrl
}

type CurrentPrice struct {
	Currency string `json:"currency,omitempty"`
	Value    string `json:"value"`
	Decimals int32  `json:"decimals"`
}

type Price struct {
	Current CurrentPrice `json:"current"`
}

type OfferItem struct {
	ItemType             int            `json:"itemType"`
	Token                domain.Address `json:"token"`
	IdentifierOrCriteria string         `json:"identifierOrCriteria"`
	StartAmount          string         `json:"startAmount"`
	EndAmount            string         `json:"endAmount"`
}

type ConsiderationItem struct {
	ItemType             int            `json:"itemType"`
	Token                domain.Address `json:"token"`
	IdentifierOrCriteria string         `json:"identifierOrCriteria"`
	StartAmount          string         `json:"startAmount"`
	EndAmount            string         `json:"endAmount"`
	Recipient            domain.Address `json:"recipient"`
}

type OrderParameters struct {
	Offerer                         domain.Address      `json:"offerer"`
	Zone                            domain.Address      `json:"zone"`
	Offer                           []OfferItem         `json:"offer"`
	Consideration                   []ConsiderationItem `json:"consideration"`
	OrderType                       int                 `json:"orderType"`
	StartTime                       string              `json:"startTime"`
	EndTime                         string              `json:"endTime"`
	ZoneHash                        string              `json:"zoneHash"`
	Salt                            string              `json:"salt"`
	ConduitKey                      string              `json:"conduitKey"`
	TotalOriginalConsiderationItems int                 `json:"totalOriginalConsiderationItems,omitempty"`
	Signature                       string              `json:"signature,omitempty"`
}

type ProtocolData struct {
	Parameters OrderParameters `json:"parameters"`
	Signature  string          `json:"signature,omitempty"`
}

type Listing struct {
	OrderHash    domain.OrderHash `json:"order_hash"`
	Chain        string           `json:"chain,omitempty"`
	Price        Price            `json:"price"`
	ProtocolData ProtocolData     `json:"protocol_data"`
}

// Signature returns the order signature wherever the api placed it
func (l *Listing) Signature() string {
	if s := l.ProtocolData.Parameters.Signature; s != "" {
		return s
	}
	return l.ProtocolData.Signature
}

// TokenIdentifier returns the identifier of the first offer item, which is
// the nft the listing sells
func (l *Listing) TokenIdentifier() (domain.TokenId, domain.Address, error) {
	if len(l.ProtocolData.Parameters.Offer) == 0 {
		return "", "", ErrListingWithoutOffer
	}
	offer := l.ProtocolData.Parameters.Offer[0]
	return domain.TokenId(offer.IdentifierOrCriteria), offer.Token, nil
}

// CacheStore keeps a single time boxed snapshot of fetched nfts
type CacheStore interface {
	// Get returns the snapshot and true, or false when absent, expired or unreadable
	Get(c ctx.Ctx) ([]NFT, bool)
	Put(c ctx.Ctx, nfts []NFT) error
}

type Usecase interface {
	// Fetch returns the listed nfts of a collection deduplicated by identifier.
	// Order follows request completion and is not deterministic.
	Fetch(c ctx.Ctx, collectionSlug string) ([]NFT, error)
}
