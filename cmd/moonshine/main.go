package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/moonshine-wallet/moonshine-daemon/pkg/util"
	"github.com/urfave/cli/v2"
)

const defaultDaemonURL = "http://localhost:7070"

var (
	moonshineDataDir = btcutil.AppDataDir("moonshine-cli", false)
	statePath        = filepath.Join(moonshineDataDir, "state.json")

	daemonFlag = cli.StringFlag{
		Name:    "daemon",
		Usage:   "url of the moonshine daemon HTTP interface",
		EnvVars: []string{"MOONSHINE_DAEMON"},
	}
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fatal(err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "moonshine"
	app.Usage = "Command line interface for the moonshine wallet daemon"
	app.Flags = []cli.Flag{&daemonFlag}
	app.Commands = append(
		app.Commands,
		&configCmd,
		&status,
		&settingsCmd,
		&panels,
		&pin,
		&backup,
		&peer,
		&rate,
		&wallet,
		&changepassword,
	)
	return app
}

type daemonReply struct {
	Ok     bool            `json:"ok"`
	Reason string          `json:"reason"`
	Data   json.RawMessage `json:"data"`
}

// call sends the request to the daemon and returns the data of the reply.
func call(ctx *cli.Context, method, path string, body interface{}) (json.RawMessage, error) {
	baseURL, err := getDaemonURL(ctx)
	if err != nil {
		return nil, err
	}

	var reqBody string
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = string(buf)
	}

	status, resp, err := util.NewHTTPRequest(
		context.Background(), method, strings.TrimSuffix(baseURL, "/")+path,
		reqBody, map[string]string{"Content-Type": "application/json"},
	)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to daemon: %w", err)
	}

	var reply daemonReply
	if err := json.Unmarshal([]byte(resp), &reply); err != nil {
		return nil, fmt.Errorf("unexpected reply from daemon (status %d): %s", status, resp)
	}
	if !reply.Ok || status != http.StatusOK {
		return nil, errors.New(reply.Reason)
	}
	return reply.Data, nil
}

// callAndPrint is like call but prints the data of the reply, if any.
func callAndPrint(ctx *cli.Context, method, path string, body interface{}) error {
	data, err := call(ctx, method, path, body)
	if err != nil {
		return err
	}
	printRespJSON(ctx, data)
	return nil
}

func printRespJSON(ctx *cli.Context, data json.RawMessage) {
	if len(data) <= 0 {
		return
	}
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "\t"); err != nil {
		fmt.Fprintln(ctx.App.Writer, "unable to decode response: ", err)
		return
	}
	fmt.Fprintln(ctx.App.Writer, out.String())
}

func getDaemonURL(ctx *cli.Context) (string, error) {
	if url := ctx.String(daemonFlag.Name); url != "" {
		return url, nil
	}
	state, err := getState()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultDaemonURL, nil
		}
		return "", err
	}
	if url, ok := state["daemon"]; ok {
		return url, nil
	}
	return defaultDaemonURL, nil
}

func getState() (map[string]string, error) {
	data := map[string]string{}

	file, err := os.ReadFile(statePath)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(file, &data); err != nil {
		return nil, fmt.Errorf("invalid state file %s: %w", statePath, err)
	}
	return data, nil
}

func setState(data map[string]string) error {
	if err := os.MkdirAll(moonshineDataDir, os.ModeDir|0755); err != nil {
		return err
	}

	currentData, err := getState()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		currentData = map[string]string{}
	}
	for k, v := range data {
		currentData[k] = v
	}

	buf, err := json.Marshal(currentData)
	if err != nil {
		return err
	}
	if err := os.WriteFile(statePath, buf, 0644); err != nil {
		return fmt.Errorf("writing to file: %w", err)
	}
	return nil
}

type invalidUsageError struct {
	ctx     *cli.Context
	command string
}

func (e *invalidUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s", e.command)
}

func fatal(err error) {
	var e *invalidUsageError
	if errors.As(err, &e) {
		_ = cli.ShowCommandHelp(e.ctx, e.command)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[moonshine] %v\n", err)
	}
	os.Exit(1)
}
