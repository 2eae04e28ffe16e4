package main

import (
	"net/http"

	"github.com/urfave/cli/v2"
)

var wallet = cli.Command{
	Name:   "wallet",
	Usage:  "manage the wallets and the configuration of the selected one",
	Action: listWalletsAction,
	Subcommands: []*cli.Command{
		{
			Name:   "create",
			Usage:  "create a wallet with a new mnemonic and select it",
			Action: createWalletAction,
		},
		{
			Name:  "import",
			Usage: "import a wallet from its mnemonic, select it and rescan it",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "mnemonic",
					Required: true,
				},
			},
			Action: importWalletAction,
		},
		{
			Name:  "select",
			Usage: "change the wallet, currency or fiat currency in use",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "id"},
				&cli.StringFlag{Name: "currency"},
				&cli.StringFlag{Name: "fiat"},
			},
			Action: selectAction,
		},
		{
			Name:   "config",
			Usage:  "show the crypto config of the selected currency",
			Action: walletConfigAction,
		},
		{
			Name:   "chain-state",
			Usage:  "show addresses, transactions and balances",
			Action: chainStateAction,
		},
		{
			Name:  "address-type",
			Usage: "set the address type (legacy, segwit, bech32) and rescan",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "type",
					Required: true,
				},
			},
			Action: setAddressTypeAction,
		},
		{
			Name:  "derivation-path",
			Usage: "override the derivation path purpose (0, 44, 49, 84)",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "path",
					Required: true,
				},
				&cli.BoolFlag{
					Name:  "rescan",
					Usage: "rescan the wallet afterwards",
				},
			},
			Action: setDerivationPathAction,
		},
		{
			Name:  "passphrase",
			Usage: "manage the BIP39 passphrase of the selected wallet",
			Subcommands: []*cli.Command{
				{
					Name:  "add",
					Usage: "add the passphrase and rescan",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:     "passphrase",
							Required: true,
						},
					},
					Action: addPassphraseAction,
				},
				{
					Name:   "remove",
					Usage:  "remove the passphrase and rescan",
					Action: removePassphraseAction,
				},
			},
		},
		{
			Name:   "rescan",
			Usage:  "rebuild the chain state of the selected currency",
			Action: rescanAction,
		},
	},
}

func listWalletsAction(ctx *cli.Context) error {
	return callAndPrint(ctx, http.MethodGet, "/v1/wallets", nil)
}

func createWalletAction(ctx *cli.Context) error {
	return callAndPrint(ctx, http.MethodPost, "/v1/wallets", nil)
}

func importWalletAction(ctx *cli.Context) error {
	return callAndPrint(
		ctx, http.MethodPost, "/v1/wallets/import",
		map[string]string{"mnemonic": ctx.String("mnemonic")},
	)
}

func selectAction(ctx *cli.Context) error {
	return callAndPrint(ctx, http.MethodPost, "/v1/select", map[string]string{
		"walletId":     ctx.String("id"),
		"currency":     ctx.String("currency"),
		"fiatCurrency": ctx.String("fiat"),
	})
}

func walletConfigAction(ctx *cli.Context) error {
	return callAndPrint(ctx, http.MethodGet, "/v1/wallet/config", nil)
}

func chainStateAction(ctx *cli.Context) error {
	return callAndPrint(ctx, http.MethodGet, "/v1/wallet/chain-state", nil)
}

func setAddressTypeAction(ctx *cli.Context) error {
	return callAndPrint(
		ctx, http.MethodPost, "/v1/wallet/address-type",
		map[string]string{"addressType": ctx.String("type")},
	)
}

func setDerivationPathAction(ctx *cli.Context) error {
	return callAndPrint(
		ctx, http.MethodPost, "/v1/wallet/derivation-path",
		map[string]interface{}{
			"path":   ctx.String("path"),
			"rescan": ctx.Bool("rescan"),
		},
	)
}

func addPassphraseAction(ctx *cli.Context) error {
	return callAndPrint(
		ctx, http.MethodPost, "/v1/wallet/passphrase",
		map[string]string{"passphrase": ctx.String("passphrase")},
	)
}

func removePassphraseAction(ctx *cli.Context) error {
	return callAndPrint(ctx, http.MethodDelete, "/v1/wallet/passphrase", nil)
}

func rescanAction(ctx *cli.Context) error {
	return callAndPrint(ctx, http.MethodPost, "/v1/wallet/rescan", nil)
}
