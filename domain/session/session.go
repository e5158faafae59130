package session

import (
	"errors"
	"time"

	"github.com/x-xyz/nftcheckout/base/ctx"
	pricefomatter "github.com/x-xyz/nftcheckout/base/price_fomatter"
	"github.com/x-xyz/nftcheckout/domain"
	"github.com/x-xyz/nftcheckout/domain/nft"
	"github.com/x-xyz/nftcheckout/domain/purchase"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNftNotFound     = errors.New("nft not in session")
	ErrNotConnected    = errors.New("wallet not connected")
	ErrProcessing      = errors.New("purchase in progress")
)

// PlaceholderImage is shown for nfts without any image
const PlaceholderImage = "/placeholder-nft.png"

type Item struct {
	nft.NFT
	Preview  string              `json:"preview"`
	Price    pricefomatter.Label `json:"price"`
	Selected bool                `json:"selected"`
}

// NewItem decorates n for display
func NewItem(c ctx.Ctx, n nft.NFT, formatter pricefomatter.PriceFormatter, selected bool) Item {
	preview := n.PreviewUrl()
	if preview == "" {
		preview = PlaceholderImage
	}
	return Item{
		NFT:      n,
		Preview:  preview,
		Price:    formatter.Label(formatter.NftPrice(c, &n)),
		Selected: selected,
	}
}

// View is a read only snapshot of a session
type View struct {
	Id          string         `json:"id"`
	Wallet      *domain.Wallet `json:"wallet,omitempty"`
	Loading     bool           `json:"loading"`
	Processing  bool           `json:"processing"`
	Selected    domain.TokenId `json:"selected,omitempty"`
	CanPurchase bool           `json:"canPurchase"`
	Items       []Item         `json:"items"`
}

type Usecase interface {
	Create(c ctx.Ctx) *View
	Get(c ctx.Ctx, id string) (*View, error)
	Delete(c ctx.Ctx, id string) error

	// Connect starts loading nfts for wallet, results of an older connect are dropped
	Connect(c ctx.Ctx, id string, wallet domain.Wallet) (*View, error)
	Disconnect(c ctx.Ctx, id string) (*View, error)
	// Select marks identifier as selected, an empty identifier clears the selection
	Select(c ctx.Ctx, id string, identifier domain.TokenId) (*View, error)
	// Purchase hands the selection to widget, ErrPurchaseUnavailable when the action is disabled
	Purchase(c ctx.Ctx, id string, widget purchase.Widget) (*View, error)

	// Prune removes sessions idle for longer than idle and returns how many
	Prune(c ctx.Ctx, idle time.Duration) int
}
