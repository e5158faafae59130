package usecase

import (
	"sync"
	"time"

	"github.com/x-xyz/nftcheckout/base/goroutine"
	"github.com/x-xyz/nftcheckout/domain"
	"github.com/x-xyz/nftcheckout/domain/nft"
	"github.com/x-xyz/nftcheckout/domain/purchase"
)

// state is the selection state of one session, it is the purchase.Target
// handed to the orchestrator
type state struct {
	id string

	mu         sync.Mutex
	wallet     *domain.Wallet
	nfts       []nft.NFT
	selected   *nft.NFT
	loading    bool
	processing bool
	generation uint64
	lastSeen   time.Time
	// fetching is closed when the latest fetch goroutine ends. Nothing in the
	// request path blocks on it; it is the hook for waiting until a connect
	// has loaded, and carries the panic if the fetch crashed.
	fetching chan *goroutine.PanicEvent
}

func (s *state) TryBeginProcessing(requireListing bool) (*domain.Wallet, *nft.NFT, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.wallet == nil || s.selected == nil || s.processing {
		return nil, nil, false
	}
	if requireListing && s.selected.Listing == nil {
		return nil, nil, false
	}
	s.processing = true
	w, n := *s.wallet, *s.selected
	return &w, &n, true
}

func (s *state) SetProcessing(processing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processing = processing
}

func (s *state) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// canPurchase must be called with mu held
func (s *state) canPurchase(mode purchase.Mode) bool {
	if s.wallet == nil || s.selected == nil || s.processing {
		return false
	}
	return !mode.RequiresListing() || s.selected.Listing != nil
}

func (s *state) touch() {
	s.lastSeen = timeNow()
}
