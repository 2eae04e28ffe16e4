package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var configCmd = cli.Command{
	Name:   "config",
	Usage:  "Print local configuration of the moonshine CLI",
	Action: configAction,
	Subcommands: []*cli.Command{
		{
			Name:   "set",
			Usage:  "set a <key> <value> in the local state",
			Action: configSetAction,
		},
		{
			Name:   "init",
			Usage:  "initialize the local state with flags",
			Action: configInitAction,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "url",
					Usage: "url of the moonshine daemon HTTP interface",
					Value: defaultDaemonURL,
				},
			},
		},
	},
}

func configAction(ctx *cli.Context) error {
	state, err := getState()
	if err != nil {
		return fmt.Errorf("get config state error: try 'config init'")
	}

	for key, value := range state {
		fmt.Fprintln(ctx.App.Writer, key+": "+value)
	}
	return nil
}

func configInitAction(ctx *cli.Context) error {
	return setState(map[string]string{
		"daemon": ctx.String("url"),
	})
}

func configSetAction(ctx *cli.Context) error {
	if ctx.NArg() < 2 {
		return &invalidUsageError{ctx, "set"}
	}

	key := ctx.Args().Get(0)
	value := ctx.Args().Get(1)

	if err := setState(map[string]string{key: value}); err != nil {
		return err
	}

	fmt.Fprintf(ctx.App.Writer, "%s %s has been set\n", key, value)
	return nil
}
