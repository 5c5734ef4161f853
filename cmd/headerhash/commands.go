package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"gopkg.in/urfave/cli.v1"

	"github.com/eth2030/headerhash/core"
	"github.com/eth2030/headerhash/core/types"
	"github.com/eth2030/headerhash/crypto"
	"github.com/eth2030/headerhash/log"
)

var (
	hashCommand = cli.Command{
		Name:      "hash",
		Usage:     "Print the hash, mining hash and signing hash of a block record",
		ArgsUsage: "<block.json>",
		Action:    hashAction,
	}
	verifyCommand = cli.Command{
		Name:      "verify",
		Usage:     "Check that each block record's hash matches its recomputed hash",
		ArgsUsage: "<block.json>...",
		Action:    verifyAction,
		Flags:     []cli.Flag{cacheSizeFlag, signersFlag},
	}
	dumpCommand = cli.Command{
		Name:      "dump",
		Usage:     "Print the header fields of a block record as JSON",
		ArgsUsage: "<block.json>",
		Action:    dumpAction,
	}
	encodeCommand = cli.Command{
		Name:      "encode",
		Usage:     "Print the canonical RLP encoding of a block record's header",
		ArgsUsage: "<block.json>",
		Action:    encodeAction,
	}
	decodeCommand = cli.Command{
		Name:      "decode",
		Usage:     "Decode a hex RLP header and print its fields as JSON",
		ArgsUsage: "<hex>",
		Action:    decodeAction,
	}
	genesisCommand = cli.Command{
		Name:   "genesis",
		Usage:  "Print the genesis header of the selected network",
		Action: genesisAction,
	}
	sealCommand = cli.Command{
		Name:      "seal",
		Usage:     "Seal a block record's header with a private key",
		ArgsUsage: "<block.json>",
		Action:    sealAction,
		Flags:     []cli.Flag{keyFlag},
	}
	bloomCommand = cli.Command{
		Name:      "bloom",
		Usage:     "Check whether hex values (addresses, topics) may be logged in a block record",
		ArgsUsage: "<block.json> <hex>...",
		Action:    bloomAction,
	}
)

func loadHeader(path string) (*types.Header, *types.BlockJSON, error) {
	b, err := types.LoadBlockJSON(path)
	if err != nil {
		return nil, nil, err
	}
	h, err := b.Header()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return h, b, nil
}

func singleArg(ctx *cli.Context) (string, error) {
	if ctx.NArg() != 1 {
		return "", fmt.Errorf("%s: expected exactly one argument", ctx.Command.Name)
	}
	return ctx.Args().First(), nil
}

func printHashes(ctx *cli.Context, h *types.Header) {
	w := ctx.App.Writer
	fmt.Fprintf(w, "hash         %s\n", h.Hash())
	fmt.Fprintf(w, "mining hash  %s\n", h.MiningHash())
	fmt.Fprintf(w, "signing hash %s\n", h.SigningHash())
}

func printJSON(ctx *cli.Context, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, string(out))
	return nil
}

func hashAction(ctx *cli.Context) error {
	path, err := singleArg(ctx)
	if err != nil {
		return err
	}
	h, _, err := loadHeader(path)
	if err != nil {
		return err
	}
	printHashes(ctx, h)
	return nil
}

// errVerify is returned by verify when any record fails.
var errVerify = errors.New("verification failed")

func verifyAction(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return errors.New("verify: provide one or more block records")
	}
	logger := log.Module("verify")
	sigs := crypto.NewSigCache(ctx.Int(cacheSizeFlag.Name))
	index := core.NewHeaderIndex(ctx.Int(cacheSizeFlag.Name), sigs)

	var failed int
	for _, path := range ctx.Args() {
		h, b, err := loadHeader(path)
		if err != nil {
			logger.Error("Invalid block record", "err", err)
			failed++
			continue
		}
		want, ok := b.ExpectedHash()
		switch {
		case !ok:
			logger.Warn("Block record has no hash", "path", path, "computed", h.Hash())
			failed++
			continue
		case want != h.Hash():
			logger.Warn("Hash mismatch", "path", path, "want", want, "have", h.Hash())
			fmt.Fprintf(ctx.App.Writer, "FAIL %s %s\n", path, h.Hash())
			failed++
			continue
		}
		if err := index.Add(h); errors.Is(err, core.ErrKnownHeader) {
			logger.Warn("Duplicate header", "path", path, "hash", h.Hash())
		}
		logger.Debug("Verified header", "path", path, "header", h.String())
		fmt.Fprintf(ctx.App.Writer, "OK   %s %s\n", path, h.Hash())
		if ctx.Bool(signersFlag.Name) {
			printSigner(ctx, logger, index, path, h)
		}
	}
	logger.Info("Verification done", "records", ctx.NArg(), "unique", index.Len(), "failed", failed)
	logger.Debug("Index metrics", index.Metrics().LogArgs()...)
	stats := sigs.Stats()
	logger.Debug("Signature cache", "hits", stats.Hits, "misses", stats.Misses, "entries", stats.Entries)
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d records", errVerify, failed, ctx.NArg())
	}
	return nil
}

// printSigner reports who sealed an indexed header. Records whose extra data
// is too short to carry a seal are reported as unsealed.
func printSigner(ctx *cli.Context, logger *log.Logger, index *core.HeaderIndex, path string, h *types.Header) {
	signer, err := index.Signer(h.Hash())
	switch {
	case errors.Is(err, types.ErrMissingSeal):
		fmt.Fprintf(ctx.App.Writer, "     unsealed\n")
	case err != nil:
		logger.Warn("Invalid seal", "path", path, "err", err)
		fmt.Fprintf(ctx.App.Writer, "     invalid seal\n")
	default:
		fmt.Fprintf(ctx.App.Writer, "     signer %s\n", signer)
	}
}

func dumpAction(ctx *cli.Context) error {
	path, err := singleArg(ctx)
	if err != nil {
		return err
	}
	h, _, err := loadHeader(path)
	if err != nil {
		return err
	}
	return printJSON(ctx, h.ToDict())
}

func encodeAction(ctx *cli.Context) error {
	path, err := singleArg(ctx)
	if err != nil {
		return err
	}
	h, _, err := loadHeader(path)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, hexutil.Encode(h.EncodeRLP()))
	return nil
}

func decodeAction(ctx *cli.Context) error {
	arg, err := singleArg(ctx)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(arg, "0x") {
		arg = "0x" + arg
	}
	enc, err := hexutil.Decode(arg)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	h, err := types.DecodeHeaderRLP(enc)
	if err != nil {
		return err
	}
	d := h.ToDict()
	d["hash"] = h.HexHash()
	return printJSON(ctx, d)
}

func genesisAction(ctx *cli.Context) error {
	cfg, err := loadNetwork(ctx)
	if err != nil {
		return err
	}
	h, err := types.NewHeader(types.DefaultRawHeader(cfg))
	if err != nil {
		return err
	}
	log.Module("genesis").Info("Built genesis header", "network", cfg.Name, "header", h.String())
	printHashes(ctx, h)
	fmt.Fprintf(ctx.App.Writer, "rlp          %s\n", hexutil.Encode(h.EncodeRLP()))
	return nil
}

func sealAction(ctx *cli.Context) error {
	path, err := singleArg(ctx)
	if err != nil {
		return err
	}
	hexkey := ctx.String(keyFlag.Name)
	if hexkey == "" {
		hexkey = os.Getenv("HEADERHASH_KEY")
	}
	if hexkey == "" {
		return errors.New("seal: --key or HEADERHASH_KEY is required")
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexkey, "0x"))
	if err != nil {
		return fmt.Errorf("seal: %w", err)
	}
	b, err := types.LoadBlockJSON(path)
	if err != nil {
		return err
	}
	raw, err := b.RawHeader()
	if err != nil {
		return err
	}
	sealed, err := types.SealHeader(raw, key)
	if err != nil {
		return err
	}
	signer, err := sealed.Signer()
	if err != nil {
		return err
	}
	printHashes(ctx, sealed)
	fmt.Fprintf(ctx.App.Writer, "signer       %s\n", signer)
	fmt.Fprintf(ctx.App.Writer, "extra        %s\n", hexutil.Encode(sealed.Extra()))
	return nil
}

// bloomAction prints "maybe" or "no" for each value. A set of bloom bits only
// shows a value may be present.
func bloomAction(ctx *cli.Context) error {
	if ctx.NArg() < 2 {
		return errors.New("bloom: provide a block record and one or more hex values")
	}
	h, _, err := loadHeader(ctx.Args().First())
	if err != nil {
		return err
	}
	bloom := h.Bloom()
	for _, arg := range ctx.Args().Tail() {
		if !strings.HasPrefix(arg, "0x") {
			arg = "0x" + arg
		}
		data, err := hexutil.Decode(arg)
		if err != nil {
			return fmt.Errorf("bloom: %s: %w", arg, err)
		}
		result := "no"
		if bloom.Test(data) {
			result = "maybe"
		}
		fmt.Fprintf(ctx.App.Writer, "%-5s %s\n", result, arg)
	}
	return nil
}
