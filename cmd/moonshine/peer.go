package main

import (
	"net/http"

	"github.com/urfave/cli/v2"
)

var peer = cli.Command{
	Name:   "peer",
	Usage:  "show or change the Electrum peer of the selected currency",
	Action: peerInfoAction,
	Subcommands: []*cli.Command{
		{
			Name:   "reconnect",
			Usage:  "drop the current connection and connect to a new peer",
			Action: reconnectPeerAction,
		},
		{
			Name:  "add",
			Usage: "add a custom peer, preferred over the default ones",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "host",
					Required: true,
				},
				&cli.IntFlag{
					Name:     "port",
					Required: true,
				},
				&cli.StringFlag{
					Name:  "protocol",
					Usage: "either ssl or tcp",
					Value: "ssl",
				},
			},
			Action: addCustomPeerAction,
		},
		{
			Name:   "clear",
			Usage:  "remove every custom peer",
			Action: clearCustomPeersAction,
		},
	},
}

func peerInfoAction(ctx *cli.Context) error {
	return callAndPrint(ctx, http.MethodGet, "/v1/peer", nil)
}

func reconnectPeerAction(ctx *cli.Context) error {
	return callAndPrint(ctx, http.MethodPost, "/v1/peer/reconnect", nil)
}

func addCustomPeerAction(ctx *cli.Context) error {
	return callAndPrint(ctx, http.MethodPost, "/v1/peer/custom", map[string]interface{}{
		"host":     ctx.String("host"),
		"port":     ctx.Int("port"),
		"protocol": ctx.String("protocol"),
	})
}

func clearCustomPeersAction(ctx *cli.Context) error {
	return callAndPrint(ctx, http.MethodDelete, "/v1/peer/custom", nil)
}
