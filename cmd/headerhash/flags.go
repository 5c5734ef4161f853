package main

import (
	"fmt"
	"os"

	"gopkg.in/urfave/cli.v1"

	"github.com/eth2030/headerhash/log"
	"github.com/eth2030/headerhash/params"
)

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML file with network genesis overrides",
	}
	networkFlag = cli.StringFlag{
		Name:  "network",
		Value: params.DefaultNetwork,
		Usage: "Network whose genesis defaults are used",
	}
	logLevelFlag = cli.StringFlag{
		Name:  "loglevel",
		Value: "info",
		Usage: "Log level (debug, info, warn, error)",
	}
	logFormatFlag = cli.StringFlag{
		Name:  "logformat",
		Value: log.FormatText,
		Usage: "Log output format (text, json)",
	}
	keyFlag = cli.StringFlag{
		Name:  "key",
		Usage: "Hex-encoded secp256k1 private key used to seal",
	}
	cacheSizeFlag = cli.IntFlag{
		Name:  "cache",
		Value: 1024,
		Usage: "Number of headers kept for duplicate detection",
	}
	signersFlag = cli.BoolFlag{
		Name:  "signers",
		Usage: "Recover and print the sealer of each verified record",
	}
)

// setupLogging installs the process logger from the global flags.
func setupLogging(ctx *cli.Context) error {
	level, err := log.ParseLevel(ctx.GlobalString(logLevelFlag.Name))
	if err != nil {
		return err
	}
	logger, err := log.NewWithFormat(os.Stderr, level, ctx.GlobalString(logFormatFlag.Name))
	if err != nil {
		return err
	}
	log.SetDefault(logger)
	return nil
}

// loadNetwork resolves the selected network, layering the optional config
// file over the built-in networks.
func loadNetwork(ctx *cli.Context) (*params.NetworkConfig, error) {
	networks := params.BuiltinNetworks()
	if path := ctx.GlobalString(configFlag.Name); path != "" {
		loaded, err := params.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		networks = loaded
	}
	cfg, err := networks.Lookup(ctx.GlobalString(networkFlag.Name))
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("network %s: %w", cfg.Name, err)
	}
	return cfg, nil
}
