package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/x-xyz/nftcheckout/base/delivery"
	pricefomatter "github.com/x-xyz/nftcheckout/base/price_fomatter"
	"github.com/x-xyz/nftcheckout/domain"
)

type handler struct {
	formatter pricefomatter.PriceFormatter
}

func New(e *echo.Echo, formatter pricefomatter.PriceFormatter, middlewares ...echo.MiddlewareFunc) {
	h := &handler{
		formatter: formatter,
	}

	g := e.Group("/prices")
	g.GET("/:coinId", h.getPrice, middlewares...)
}

// getPrice converts an eth amount into the display labels of coinId
func (h *handler) getPrice(c echo.Context) error {
	p := struct {
		CoinId string `param:"coinId" validate:"required"`
		Eth    string `query:"eth" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if strings.ToLower(p.CoinId) != "brett" {
		return delivery.MakeJsonResp(c, http.StatusNotFound, domain.ErrNotFound)
	}

	eth, err := decimal.NewFromString(p.Eth)
	if err != nil || eth.IsNegative() {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, h.formatter.Label(eth))
}
