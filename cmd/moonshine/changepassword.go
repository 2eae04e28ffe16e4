package main

import (
	"fmt"
	"net/http"

	"github.com/urfave/cli/v2"
)

const (
	curPwdFlagName = "current_password"
	newPwdFlagName = "new_password"
)

var changepassword = cli.Command{
	Name: "changepassword",
	Usage: "change the password encrypting the secret store of the daemon. " +
		"Update the daemon's password file accordingly before restarting it.",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     curPwdFlagName,
			Usage:    "the current password of the secret store",
			Required: true,
		},
		&cli.StringFlag{
			Name:     newPwdFlagName,
			Usage:    "the new password that replaces the current one",
			Required: true,
		},
	},
	Action: changePasswordAction,
}

func changePasswordAction(ctx *cli.Context) error {
	if _, err := call(
		ctx, http.MethodPost, "/v1/secret-store/password",
		map[string]string{
			"currentPassword": ctx.String(curPwdFlagName),
			"newPassword":     ctx.String(newPwdFlagName),
		},
	); err != nil {
		return err
	}

	fmt.Fprintln(ctx.App.Writer, "Done")
	return nil
}
