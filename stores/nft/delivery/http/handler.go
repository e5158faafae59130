package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/x-xyz/nftcheckout/base/ctx"
	"github.com/x-xyz/nftcheckout/base/delivery"
	pricefomatter "github.com/x-xyz/nftcheckout/base/price_fomatter"
	"github.com/x-xyz/nftcheckout/domain"
	"github.com/x-xyz/nftcheckout/domain/nft"
	"github.com/x-xyz/nftcheckout/domain/session"
)

type handler struct {
	nftUsecase nft.Usecase
	formatter  pricefomatter.PriceFormatter
	slug       string
}

func New(e *echo.Echo, nftUsecase nft.Usecase, formatter pricefomatter.PriceFormatter, slug string) {
	if slug == "" {
		slug = domain.DefaultCollectionSlug
	}
	h := &handler{
		nftUsecase: nftUsecase,
		formatter:  formatter,
		slug:       slug,
	}

	g := e.Group("/nfts")
	g.GET("", h.list)
}

// list
//
//	@Summary		List listed nfts of the collection
//	@Tags			nfts
//	@Produce		json
//	@Success		200	{object}	[]session.Item
//	@Failure		500
//	@Router			/nfts [get]
func (h *handler) list(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	nfts, err := h.nftUsecase.Fetch(ctx, h.slug)
	if err != nil {
		ctx.WithField("err", err).Error("nftUsecase.Fetch failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	items := make([]session.Item, 0, len(nfts))
	for _, n := range nfts {
		items = append(items, session.NewItem(ctx, n, h.formatter, false))
	}
	return delivery.MakeJsonResp(c, http.StatusOK, items)
}
