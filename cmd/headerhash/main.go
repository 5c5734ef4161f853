// Command headerhash computes and checks canonical block header hashes.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/urfave/cli.v1"
)

var (
	version = "v0.1.0"
	commit  = "unknown"
)

func newApp(w io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = filepath.Base(os.Args[0])
	app.Usage = "canonical block header hashing tool"
	app.Version = fmt.Sprintf("%s (commit %s)", version, commit)
	app.Writer = w
	app.ErrWriter = os.Stderr
	app.Flags = []cli.Flag{
		configFlag,
		networkFlag,
		logLevelFlag,
		logFormatFlag,
	}
	app.Before = setupLogging
	app.CommandNotFound = func(ctx *cli.Context, cmd string) {
		fmt.Fprintf(os.Stderr, "No such command: %s\n", cmd)
		os.Exit(1)
	}
	app.Commands = []cli.Command{
		hashCommand,
		verifyCommand,
		dumpCommand,
		encodeCommand,
		decodeCommand,
		genesisCommand,
		sealCommand,
		bloomCommand,
	}
	return app
}

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
