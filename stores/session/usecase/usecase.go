package usecase

import (
	"time"

	"github.com/google/uuid"
	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/x-xyz/nftcheckout/base/ctx"
	"github.com/x-xyz/nftcheckout/base/goroutine"
	"github.com/x-xyz/nftcheckout/base/log"
	"github.com/x-xyz/nftcheckout/base/metrics"
	pricefomatter "github.com/x-xyz/nftcheckout/base/price_fomatter"
	"github.com/x-xyz/nftcheckout/domain"
	"github.com/x-xyz/nftcheckout/domain/nft"
	"github.com/x-xyz/nftcheckout/domain/purchase"
	"github.com/x-xyz/nftcheckout/domain/session"
)

const defaultFetchTimeout = 30 * time.Second

var timeNow = time.Now

type Config struct {
	Nft            nft.Usecase
	CollectionSlug string
	Orchestrator   purchase.Orchestrator
	PriceFormatter pricefomatter.PriceFormatter
	// FetchTimeout bounds a connect triggered fetch
	FetchTimeout time.Duration
}

type impl struct {
	sessions     cmap.ConcurrentMap[string, *state]
	nft          nft.Usecase
	slug         string
	orchestrator purchase.Orchestrator
	price        pricefomatter.PriceFormatter
	fetchTimeout time.Duration
	met          metrics.Service
}

func New(cfg *Config) session.Usecase {
	im := &impl{
		sessions:     cmap.New[*state](),
		nft:          cfg.Nft,
		slug:         cfg.CollectionSlug,
		orchestrator: cfg.Orchestrator,
		price:        cfg.PriceFormatter,
		fetchTimeout: cfg.FetchTimeout,
		met:          metrics.New("session"),
	}
	if im.slug == "" {
		im.slug = domain.DefaultCollectionSlug
	}
	if im.price == nil {
		im.price = pricefomatter.NewPriceFormatter(&pricefomatter.PriceFormatterCfg{})
	}
	if im.fetchTimeout <= 0 {
		im.fetchTimeout = defaultFetchTimeout
	}
	return im
}

func (im *impl) Create(c ctx.Ctx) *session.View {
	s := &state{id: uuid.NewString()}
	s.touch()
	im.sessions.Set(s.id, s)
	im.met.BumpSum("create", 1)
	return im.view(c, s)
}

func (im *impl) get(id string) (*state, error) {
	s, ok := im.sessions.Get(id)
	if !ok {
		return nil, session.ErrSessionNotFound
	}
	return s, nil
}

func (im *impl) Get(c ctx.Ctx, id string) (*session.View, error) {
	s, err := im.get(id)
	if err != nil {
		return nil, err
	}
	return im.view(c, s), nil
}

func (im *impl) Delete(c ctx.Ctx, id string) error {
	s, ok := im.sessions.Pop(id)
	if !ok {
		return session.ErrSessionNotFound
	}
	// drops the result of an in flight fetch
	s.mu.Lock()
	s.generation++
	s.mu.Unlock()
	return nil
}

func (im *impl) Connect(c ctx.Ctx, id string, wallet domain.Wallet) (*session.View, error) {
	if err := wallet.Validate(); err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"wallet": wallet,
		}).Warn("wallet.Validate failed")
		return nil, err
	}
	s, err := im.get(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.wallet = &wallet
	s.nfts = nil
	s.selected = nil
	s.loading = true
	s.generation++
	gen := s.generation
	s.touch()
	s.mu.Unlock()

	fc := ctx.WithValues(ctx.Detach(c), map[string]interface{}{
		"session": id,
		"wallet":  wallet.Address.ToLowerStr(),
	})
	done := goroutine.RecoverableGo(func() {
		im.fetch(fc, s, gen)
	}, goroutine.WithLogger(fc.Logger), goroutine.WithAfterRecovered(func(interface{}, []byte) {
		im.apply(fc, s, gen, []nft.NFT{})
	}))

	s.mu.Lock()
	if s.generation == gen {
		s.fetching = done
	}
	s.mu.Unlock()

	return im.view(c, s), nil
}

func (im *impl) fetch(c ctx.Ctx, s *state, gen uint64) {
	c, cancel := ctx.WithTimeout(c, im.fetchTimeout)
	defer cancel()

	nfts, err := im.nft.Fetch(c, im.slug)
	if err != nil {
		im.met.BumpSum("fetch.err", 1)
		c.WithField("err", err).Error("nft.Fetch failed")
		nfts = []nft.NFT{}
	}
	im.apply(c, s, gen, nfts)
}

// apply stores a fetch result unless the session moved on since it started
func (im *impl) apply(c ctx.Ctx, s *state, gen uint64, nfts []nft.NFT) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		im.met.BumpSum("fetch.stale", 1)
		c.Debug("drop stale fetch result")
		return
	}
	s.nfts = nfts
	s.loading = false
}

func (im *impl) Disconnect(c ctx.Ctx, id string) (*session.View, error) {
	s, err := im.get(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.wallet = nil
	s.nfts = nil
	s.selected = nil
	s.loading = false
	s.generation++
	s.touch()
	s.mu.Unlock()

	return im.view(c, s), nil
}

func (im *impl) Select(c ctx.Ctx, id string, identifier domain.TokenId) (*session.View, error) {
	s, err := im.get(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.touch()
	if s.wallet == nil {
		s.mu.Unlock()
		return nil, session.ErrNotConnected
	}
	if s.processing {
		s.mu.Unlock()
		return nil, session.ErrProcessing
	}
	if identifier == "" {
		s.selected = nil
		s.mu.Unlock()
		return im.view(c, s), nil
	}
	found := false
	for i := range s.nfts {
		if s.nfts[i].Identifier == identifier {
			n := s.nfts[i]
			s.selected = &n
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		return nil, session.ErrNftNotFound
	}
	return im.view(c, s), nil
}

func (im *impl) Purchase(c ctx.Ctx, id string, widget purchase.Widget) (*session.View, error) {
	s, err := im.get(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.touch()
	ok := s.canPurchase(im.orchestrator.Mode())
	s.mu.Unlock()
	if !ok {
		return nil, purchase.ErrPurchaseUnavailable
	}

	c = ctx.WithValue(c, "session", id)
	if err := im.orchestrator.Execute(c, s, widget); err != nil {
		c.WithField("err", err).Error("orchestrator.Execute failed")
		return nil, err
	}
	return im.view(c, s), nil
}

func (im *impl) Prune(c ctx.Ctx, idle time.Duration) int {
	deadline := timeNow().Add(-idle)
	pruned := 0
	for _, id := range im.sessions.Keys() {
		removed := im.sessions.RemoveCb(id, func(_ string, s *state, exists bool) bool {
			if !exists {
				return false
			}
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.processing || s.lastSeen.After(deadline) {
				return false
			}
			s.generation++
			return true
		})
		if removed {
			pruned++
		}
	}
	if pruned > 0 {
		im.met.BumpSum("prune", float64(pruned))
		c.WithField("pruned", pruned).Info("idle sessions pruned")
	}
	return pruned
}

func (im *impl) view(c ctx.Ctx, s *state) *session.View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := &session.View{
		Id:          s.id,
		Loading:     s.loading,
		Processing:  s.processing,
		CanPurchase: s.canPurchase(im.orchestrator.Mode()),
		Items:       make([]session.Item, 0, len(s.nfts)),
	}
	if s.wallet != nil {
		w := *s.wallet
		v.Wallet = &w
	}
	if s.selected != nil {
		v.Selected = s.selected.Identifier
	}
	for i := range s.nfts {
		selected := s.selected != nil && s.selected.Identifier == s.nfts[i].Identifier
		v.Items = append(v.Items, session.NewItem(c, s.nfts[i], im.price, selected))
	}
	return v
}
