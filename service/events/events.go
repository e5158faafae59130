package events

import (
	"time"

	"github.com/x-xyz/nftcheckout/base/ctx"
)

type Type string

const (
	TypePurchaseOpened Type = "purchase.opened"
	TypePurchaseFailed Type = "purchase.failed"
	TypeWidgetOpened   Type = "widget.opened"
	TypeWidgetClosed   Type = "widget.closed"
)

type Event struct {
	Type       Type      `json:"type"`
	SessionId  string    `json:"sessionId,omitempty"`
	Wallet     string    `json:"wallet,omitempty"`
	Identifier string    `json:"identifier,omitempty"`
	Mode       string    `json:"mode,omitempty"`
	Amount     string    `json:"amount,omitempty"`
	Error      string    `json:"error,omitempty"`
	Time       time.Time `json:"time"`
}

// Sink receives purchase and widget events for observability
type Sink interface {
	Publish(c ctx.Ctx, ev Event) error
}
