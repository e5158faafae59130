package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/x-xyz/nftcheckout/app/internal/setup"
	"github.com/x-xyz/nftcheckout/base/log"
)

func main() {
	app := &cli.App{
		Name:  "nftcheckout",
		Usage: "inspect listings, payloads and prices of the checkout service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "infra/configs/config.yaml",
				Usage:   "path of the yaml config",
				EnvVars: []string{"NFTCHECKOUT_CONFIG"},
			},
		},
		Before: func(c *cli.Context) error {
			if err := setup.LoadConfig(c.String("config")); err != nil {
				return err
			}
			return setup.Observability()
		},
		After: func(*cli.Context) error {
			log.Sync()
			return nil
		},
		Commands: []*cli.Command{
			nftsCommands(),
			payloadCommands(),
			priceCommands(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
