package fundkit

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/x-xyz/nftcheckout/base/ctx"
	"github.com/x-xyz/nftcheckout/base/log"
	"github.com/x-xyz/nftcheckout/domain/purchase"
	"github.com/x-xyz/nftcheckout/service/events"
)

var timeNow = time.Now

// Modal is a checkout widget whose live configuration can be read back
type Modal interface {
	purchase.Widget
	Snapshot() Snapshot
}

type Snapshot struct {
	Config          Config `json:"config"`
	RequestedAmount string `json:"requestedAmount"`
	Open            bool   `json:"open"`
}

// Checkout holds the configuration of one widget instance. The browser sdk
// is initialized from Snapshot.
type Checkout struct {
	c         ctx.Ctx
	sink      events.Sink
	sessionId string

	// mutex protected members
	mu     sync.Mutex
	config Config
	amount decimal.Decimal
	open   bool
}

func NewCheckout(c ctx.Ctx, cfg Config, sink events.Sink, sessionId string) *Checkout {
	if sink == nil {
		sink = events.NewLogSink()
	}
	return &Checkout{
		c:         c,
		sink:      sink,
		sessionId: sessionId,
		config:    cfg,
	}
}

func (m *Checkout) UpdateRequestedAmount(amount decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.amount = amount
}

func (m *Checkout) UpdateDestinationContract(dest purchase.DestinationContract) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config.Destination.Contract = dest
}

func (m *Checkout) OpenModal() {
	m.mu.Lock()
	wasOpen := m.open
	m.open = true
	m.mu.Unlock()
	if !wasOpen {
		m.publish(events.TypeWidgetOpened)
	}
}

func (m *Checkout) Close() {
	m.mu.Lock()
	wasOpen := m.open
	m.open = false
	m.mu.Unlock()
	// a close without a prior open still resets a half configured widget
	m.publish(events.TypeWidgetClosed)
	if !wasOpen {
		m.c.Debug("close on a widget that was not open")
	}
}

func (m *Checkout) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		Config:          m.config,
		RequestedAmount: m.amount.String(),
		Open:            m.open,
	}
}

func (m *Checkout) publish(t events.Type) {
	ev := events.Event{
		Type:      t,
		SessionId: m.sessionId,
		Time:      timeNow(),
	}
	if err := m.sink.Publish(m.c, ev); err != nil {
		m.c.WithFields(log.Fields{
			"err":   err,
			"event": t,
		}).Warn("sink.Publish failed")
	}
}
