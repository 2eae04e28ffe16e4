package main

import (
	"net/http"

	"github.com/urfave/cli/v2"
)

var waitFlag = cli.BoolFlag{
	Name:  "wait",
	Usage: "wait for the transitions to settle",
}

var panels = cli.Command{
	Name:   "panels",
	Usage:  "list the panels' states or move between them",
	Action: listPanelsAction,
	Subcommands: []*cli.Command{
		{
			Name:      "open",
			Usage:     "open importPhrase or electrumOptions",
			ArgsUsage: "<panel>",
			Flags:     []cli.Flag{&waitFlag},
			Action:    openPanelAction,
		},
		{
			Name:      "close",
			Usage:     "close the given panel and go back to settings",
			ArgsUsage: "<panel>",
			Flags:     []cli.Flag{&waitFlag},
			Action:    closePanelAction,
		},
		{
			Name:   "back",
			Usage:  "close the open panel, if any",
			Flags:  []cli.Flag{&waitFlag},
			Action: backAction,
		},
	},
}

var pin = cli.Command{
	Name:  "pin",
	Usage: "manage the app pin",
	Subcommands: []*cli.Command{
		{
			Name:   "toggle",
			Usage:  "enable the pin and open its setup, or disable it",
			Flags:  []cli.Flag{&waitFlag},
			Action: togglePinAction,
		},
		{
			Name:  "set",
			Usage: "store the pin being set up",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "pin",
					Usage:    "4 to 8 digits",
					Required: true,
				},
			},
			Action: setPinAction,
		},
		{
			Name:   "confirm",
			Usage:  "complete the pin setup",
			Flags:  []cli.Flag{&waitFlag},
			Action: pinSuccessAction,
		},
	},
}

var backup = cli.Command{
	Name:   "backup",
	Usage:  "print the words of the backup phrase being displayed",
	Action: backupPhraseAction,
	Subcommands: []*cli.Command{
		{
			Name:   "show",
			Usage:  "open the backup phrase of the selected wallet",
			Action: showBackupPhraseAction,
		},
		{
			Name:   "hide",
			Usage:  "close the backup phrase",
			Flags:  []cli.Flag{&waitFlag},
			Action: hideBackupPhraseAction,
		},
	},
}

func listPanelsAction(ctx *cli.Context) error {
	return callAndPrint(ctx, http.MethodGet, "/v1/panels", nil)
}

func openPanelAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return &invalidUsageError{ctx, "open"}
	}
	return callAndPrint(
		ctx, http.MethodPost, batchPath(ctx, "/v1/panels/"+ctx.Args().First()+"/open"), nil,
	)
}

func closePanelAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return &invalidUsageError{ctx, "close"}
	}
	return callAndPrint(
		ctx, http.MethodPost, batchPath(ctx, "/v1/panels/"+ctx.Args().First()+"/close"), nil,
	)
}

func backAction(ctx *cli.Context) error {
	return callAndPrint(ctx, http.MethodPost, batchPath(ctx, "/v1/panels/back"), nil)
}

func togglePinAction(ctx *cli.Context) error {
	return callAndPrint(ctx, http.MethodPost, batchPath(ctx, "/v1/pin/toggle"), nil)
}

func setPinAction(ctx *cli.Context) error {
	return callAndPrint(
		ctx, http.MethodPost, "/v1/pin", map[string]string{"pin": ctx.String("pin")},
	)
}

func pinSuccessAction(ctx *cli.Context) error {
	return callAndPrint(ctx, http.MethodPost, batchPath(ctx, "/v1/pin/success"), nil)
}

func backupPhraseAction(ctx *cli.Context) error {
	return callAndPrint(ctx, http.MethodGet, "/v1/backup-phrase", nil)
}

func showBackupPhraseAction(ctx *cli.Context) error {
	return callAndPrint(ctx, http.MethodPost, "/v1/backup-phrase/show", nil)
}

func hideBackupPhraseAction(ctx *cli.Context) error {
	return callAndPrint(ctx, http.MethodPost, batchPath(ctx, "/v1/backup-phrase/hide"), nil)
}

func batchPath(ctx *cli.Context, path string) string {
	if ctx.Bool(waitFlag.Name) {
		return path + "?wait=true"
	}
	return path
}
