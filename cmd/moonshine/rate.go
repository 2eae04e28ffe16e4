package main

import (
	"net/http"

	"github.com/urfave/cli/v2"
)

var rate = cli.Command{
	Name:   "rate",
	Usage:  "show or refresh the exchange rate of the selected currency pair",
	Action: getRateAction,
	Subcommands: []*cli.Command{
		{
			Name:  "source",
			Usage: "change the rate source, either coingecko or coincap",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Required: true,
				},
			},
			Action: changeRateSourceAction,
		},
		{
			Name:   "update",
			Usage:  "fetch a fresh rate from the selected source",
			Action: updateRateAction,
		},
	},
}

func getRateAction(ctx *cli.Context) error {
	return callAndPrint(ctx, http.MethodGet, "/v1/rate", nil)
}

func changeRateSourceAction(ctx *cli.Context) error {
	return callAndPrint(
		ctx, http.MethodPost, "/v1/rate/source",
		map[string]string{"source": ctx.String("name")},
	)
}

func updateRateAction(ctx *cli.Context) error {
	return callAndPrint(ctx, http.MethodPost, "/v1/rate/update", nil)
}
