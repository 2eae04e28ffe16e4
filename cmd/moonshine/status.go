package main

import (
	"net/http"

	"github.com/urfave/cli/v2"
)

var status = cli.Command{
	Name:   "status",
	Usage:  "returns the busy flags, the active panel and the selection",
	Action: statusAction,
}

var settingsCmd = cli.Command{
	Name:   "settings",
	Usage:  "show or change the app settings",
	Action: getSettingsAction,
	Subcommands: []*cli.Command{
		{
			Name:  "toggle",
			Usage: "enable or disable one of testnet, rbf, sendTransactionFallback, biometrics",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Usage:    "the name of the setting",
					Required: true,
				},
				&cli.BoolFlag{
					Name:  "enabled",
					Usage: "whether to enable the setting",
				},
			},
			Action: setToggleAction,
		},
		{
			Name:  "unit",
			Usage: "set the crypto unit, either BTC or satoshi",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "unit",
					Required: true,
				},
			},
			Action: setCryptoUnitAction,
		},
	},
}

func statusAction(ctx *cli.Context) error {
	return callAndPrint(ctx, http.MethodGet, "/v1/status", nil)
}

func getSettingsAction(ctx *cli.Context) error {
	return callAndPrint(ctx, http.MethodGet, "/v1/settings", nil)
}

func setToggleAction(ctx *cli.Context) error {
	return callAndPrint(
		ctx, http.MethodPost, "/v1/toggles/"+ctx.String("name"),
		map[string]bool{"enabled": ctx.Bool("enabled")},
	)
}

func setCryptoUnitAction(ctx *cli.Context) error {
	return callAndPrint(
		ctx, http.MethodPost, "/v1/crypto-unit",
		map[string]string{"unit": ctx.String("unit")},
	)
}
