package main

import (
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/x-xyz/nftcheckout/app/internal/setup"
	"github.com/x-xyz/nftcheckout/base/ctx"
	"github.com/x-xyz/nftcheckout/domain"
	"github.com/x-xyz/nftcheckout/domain/nft"
	"github.com/x-xyz/nftcheckout/domain/purchase"
	"github.com/x-xyz/nftcheckout/domain/session"
)

// fetch runs the listing fetcher against the configured cache provider
func fetch(c ctx.Ctx) ([]nft.NFT, error) {
	p, _, closeCache, err := setup.CacheProvider(c)
	if err != nil {
		return nil, err
	}
	defer closeCache()
	return setup.NftUsecase(p).Fetch(c, setup.CollectionSlug())
}

func newCtx(c *cli.Context) ctx.Ctx {
	bg := ctx.Background()
	return ctx.Ctx{Context: c.Context, Logger: bg.Logger}
}

func nftsCommands() *cli.Command {
	return &cli.Command{
		Name:  "nfts",
		Usage: "listed nfts of the configured collection",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "fetch listed nfts, served from cache when fresh",
				Action: func(c *cli.Context) error {
					bc := newCtx(c)
					nfts, err := fetch(bc)
					if err != nil {
						return err
					}
					formatter := setup.PriceFormatter()
					items := make([]session.Item, 0, len(nfts))
					for _, n := range nfts {
						items = append(items, session.NewItem(bc, n, formatter, false))
					}
					return printJSON(c.App.Writer, items)
				},
			},
		},
	}
}

func payloadCommands() *cli.Command {
	return &cli.Command{
		Name:  "payload",
		Usage: "destination contract payloads",
		Subcommands: []*cli.Command{
			{
				Name:  "build",
				Usage: "build the widget destination for one nft",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "identifier", Aliases: []string{"i"}, Usage: "token identifier, required for marketplace mode"},
					&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Usage: "marketplace or mint, defaults to purchase.mode"},
					&cli.StringFlag{Name: "recipient", Aliases: []string{"r"}, Required: true, Usage: "buyer address"},
				},
				Action: func(c *cli.Context) error {
					bc := newCtx(c)

					mode, err := setup.PurchaseMode()
					if err != nil {
						return err
					}
					if s := c.String("mode"); s != "" {
						if mode, err = purchase.ParseMode(s); err != nil {
							return err
						}
					}
					builder, err := setup.Builder()
					if err != nil {
						return err
					}

					var target *nft.NFT
					if mode.RequiresListing() {
						id := domain.TokenId(c.String("identifier"))
						if id == "" {
							return xerrors.Errorf("--identifier: %w", domain.ErrBadParamInput)
						}
						nfts, err := fetch(bc)
						if err != nil {
							return err
						}
						for i := range nfts {
							if nfts[i].Identifier == id {
								target = &nfts[i]
								break
							}
						}
						if target == nil {
							return xerrors.Errorf("identifier %s: %w", id, domain.ErrNotFound)
						}
					}

					amount, dest, err := builder.Build(target, mode, domain.Address(c.String("recipient")).ToLower())
					if err != nil {
						return err
					}
					req := purchase.Request{
						RequestedAmount: amount,
						Destination:     *dest,
					}
					if target != nil {
						req.NFT = *target
					}
					return printJSON(c.App.Writer, req)
				},
			},
		},
	}
}

func priceCommands() *cli.Command {
	return &cli.Command{
		Name:  "price",
		Usage: "price conversions",
		Subcommands: []*cli.Command{
			{
				Name:  "brett",
				Usage: "convert an eth amount to BRETT",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "eth", Required: true, Usage: "eth amount, e.g. 0.0017"},
				},
				Action: func(c *cli.Context) error {
					eth, err := decimal.NewFromString(c.String("eth"))
					if err != nil {
						return xerrors.Errorf("--eth %q: %w", c.String("eth"), domain.ErrInvalidNumberFormat)
					}
					return printJSON(c.App.Writer, setup.PriceFormatter().Label(eth))
				},
			},
		},
	}
}
