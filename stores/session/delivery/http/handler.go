package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/x-xyz/nftcheckout/base/ctx"
	"github.com/x-xyz/nftcheckout/base/delivery"
	"github.com/x-xyz/nftcheckout/domain"
	"github.com/x-xyz/nftcheckout/domain/purchase"
	"github.com/x-xyz/nftcheckout/domain/session"
	"github.com/x-xyz/nftcheckout/service/events"
	"github.com/x-xyz/nftcheckout/service/fundkit"
)

type handler struct {
	su       session.Usecase
	checkout fundkit.Config
	sink     events.Sink
}

type purchaseResp struct {
	Session  *session.View    `json:"session"`
	Checkout fundkit.Snapshot `json:"checkout"`
}

func New(e *echo.Echo, su session.Usecase, checkout fundkit.Config, sink events.Sink) {
	h := &handler{
		su:       su,
		checkout: checkout,
		sink:     sink,
	}

	e.POST("/sessions", h.create)

	g := e.Group("/sessions/:id")
	g.GET("", h.get)
	g.DELETE("", h.delete)
	g.POST("/connect", h.connect)
	g.POST("/disconnect", h.disconnect)
	g.POST("/select", h.selectNft)
	g.POST("/purchase", h.purchase)
}

func status(err error) int {
	switch {
	case errors.Is(err, session.ErrSessionNotFound), errors.Is(err, session.ErrNftNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrNotConnected),
		errors.Is(err, session.ErrProcessing),
		errors.Is(err, purchase.ErrPurchaseUnavailable):
		return http.StatusConflict
	case errors.Is(err, purchase.ErrNoListing),
		errors.Is(err, purchase.ErrMalformedListing),
		errors.Is(err, purchase.ErrUnsupportedMode):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	return delivery.MakeJsonResp(c, http.StatusCreated, h.su.Create(ctx))
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	v, err := h.su.Get(ctx, c.Param("id"))
	if err != nil {
		return delivery.MakeJsonResp(c, status(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, v)
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	if err := h.su.Delete(ctx, c.Param("id")); err != nil {
		return delivery.MakeJsonResp(c, status(err), err)
	}
	return c.NoContent(http.StatusNoContent)
}

// connect
//
//	@Summary		Attach a wallet and start loading nfts
//	@Tags			sessions
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string			true	"session id"
//	@Param			params	body	domain.Wallet	true	"wallet"
//	@Success		200		{object}	session.View
//	@Failure		400
//	@Failure		404
//	@Router			/sessions/{id}/connect [post]
func (h *handler) connect(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	wallet := domain.Wallet{}
	if err := c.Bind(&wallet); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&wallet); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	wallet.Address = wallet.Address.ToLower()

	v, err := h.su.Connect(ctx, c.Param("id"), wallet)
	if err != nil {
		return delivery.MakeJsonResp(c, status(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, v)
}

func (h *handler) disconnect(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	v, err := h.su.Disconnect(ctx, c.Param("id"))
	if err != nil {
		return delivery.MakeJsonResp(c, status(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, v)
}

func (h *handler) selectNft(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		// empty clears the selection
		Identifier domain.TokenId `json:"identifier"`
	}{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	v, err := h.su.Select(ctx, c.Param("id"), p.Identifier)
	if err != nil {
		return delivery.MakeJsonResp(c, status(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, v)
}

// purchase
//
//	@Summary		Build the purchase of the selected nft and open the checkout widget
//	@Tags			sessions
//	@Produce		json
//	@Param			id	path		string	true	"session id"
//	@Success		200	{object}	http.purchaseResp
//	@Failure		404
//	@Failure		409
//	@Failure		422
//	@Router			/sessions/{id}/purchase [post]
func (h *handler) purchase(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	id := c.Param("id")

	cfg := h.checkout
	if v, err := h.su.Get(ctx, id); err != nil {
		return delivery.MakeJsonResp(c, status(err), err)
	} else if v.Wallet != nil {
		cfg.UserId = v.Wallet.Address.ToLowerStr()
	}

	checkout := fundkit.NewCheckout(ctx, cfg, h.sink, id)
	v, err := h.su.Purchase(ctx, id, checkout)
	if err != nil {
		return delivery.MakeJsonResp(c, status(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, purchaseResp{
		Session:  v,
		Checkout: checkout.Snapshot(),
	})
}
