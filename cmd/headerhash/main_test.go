package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/eth2030/headerhash/core/types"
	"github.com/eth2030/headerhash/crypto"
)

const (
	testKey        = "0x289c2857d4598e37fb9647507e47a309d6133539bf21a8b9cb6df88fd5232032"
	testSigner     = "0x970e8128ab834e8eac17ab8e3812f010678cf791"
	londonFixture  = "../../core/types/testdata/synthetic_london.json"
	powFixture     = "../../core/types/testdata/synthetic_pow.json"
	genesisFixture = "../../core/types/testdata/genesis_mainnet_defaults.json"
	legacyFixture  = "../../core/types/testdata/mainnet_genesis.json"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newApp(&out).Run(append([]string{"headerhash", "--loglevel", "error"}, args...))
	return out.String(), err
}

func TestHashCommand(t *testing.T) {
	out, err := runApp(t, "hash", londonFixture)
	require.NoError(t, err)
	require.Contains(t, out, "hash         0x9818ead09f5c4d0fcea7d1c1c1a529369e2d423b319b832d114965260a3ec745")
	require.Contains(t, out, "mining hash  0xbc9f812e6a29a3f486aeea9af3bb6525f3b8a0c058e060cccff0fc0f3303db66")
	require.Contains(t, out, "signing hash 0x5412d95d6db48084fe6253cf6c1dee173455dfdddfa2482a5c9130e8d6ec1b25")

	_, err = runApp(t, "hash")
	require.Error(t, err)
}

func TestVerifyCommand(t *testing.T) {
	out, err := runApp(t, "verify", londonFixture, powFixture, genesisFixture, londonFixture)
	require.NoError(t, err)
	require.Equal(t, 4, strings.Count(out, "OK "))

	// Pre-London records hash over 15 fields, so the 16-field hash differs.
	out, err = runApp(t, "verify", londonFixture, legacyFixture)
	require.True(t, errors.Is(err, errVerify), "got %v", err)
	require.Contains(t, out, "FAIL "+legacyFixture)

	_, err = runApp(t, "verify")
	require.Error(t, err)
}

// writeSealedRecord seals the london record with testKey and writes it, with
// its new hash, to a temporary file.
func writeSealedRecord(t *testing.T) string {
	t.Helper()
	b, err := types.LoadBlockJSON(londonFixture)
	require.NoError(t, err)
	raw, err := b.RawHeader()
	require.NoError(t, err)
	key, err := crypto.HexToECDSA(testKey[2:])
	require.NoError(t, err)
	sealed, err := types.SealHeader(raw, key)
	require.NoError(t, err)

	b.ExtraData = sealed.Extra()
	hash := common.Hash(sealed.Hash())
	b.Hash = &hash
	data, err := json.Marshal(b)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "sealed.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestVerifySigners(t *testing.T) {
	sealed := writeSealedRecord(t)
	out, err := runApp(t, "verify", "--signers", sealed, londonFixture, sealed)
	require.NoError(t, err)
	require.Equal(t, 3, strings.Count(out, "OK "))
	// The duplicate record is served from the signature cache.
	require.Equal(t, 2, strings.Count(out, "signer "+testSigner))
	require.Equal(t, 1, strings.Count(out, "unsealed"))

	out, err = runApp(t, "verify", sealed)
	require.NoError(t, err)
	require.NotContains(t, out, "signer")
}

func TestBloomCommand(t *testing.T) {
	out, err := runApp(t, "bloom", londonFixture,
		"0x00000000000000000000000000000000000000aa",
		"ddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef",
		"0x00000000000000000000000000000000000000bb",
	)
	require.NoError(t, err)
	require.Contains(t, out, "maybe 0x00000000000000000000000000000000000000aa")
	require.Contains(t, out, "maybe 0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef")
	require.Contains(t, out, "no    0x00000000000000000000000000000000000000bb")

	_, err = runApp(t, "bloom", londonFixture)
	require.Error(t, err)
	_, err = runApp(t, "bloom", londonFixture, "0xzz")
	require.Error(t, err)
}

func TestDumpCommand(t *testing.T) {
	out, err := runApp(t, "dump", londonFixture)
	require.NoError(t, err)
	var d map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	require.Len(t, d, 16)
	require.Equal(t, "1193046", d["number"])
	require.Equal(t, "0x00000000000000000000000000000000000000aa", d["coinbase"])
}

func TestEncodeDecodeCommands(t *testing.T) {
	out, err := runApp(t, "encode", genesisFixture)
	require.NoError(t, err)
	enc := strings.TrimSpace(out)
	require.True(t, strings.HasPrefix(enc, "0xf901eda0"), enc)

	out, err = runApp(t, "decode", strings.TrimPrefix(enc, "0x"))
	require.NoError(t, err)
	var d map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	require.Equal(t, "0xf287e161d2dcd5e30747d5160dc41cf8e1660f447ffe48c9c9a75d3998ceed59", d["hash"])
	require.Equal(t, "17179869184", d["difficulty"])

	_, err = runApp(t, "decode", enc+"80")
	require.Error(t, err)
}

func TestGenesisCommand(t *testing.T) {
	out, err := runApp(t, "--network", "mainnet", "genesis")
	require.NoError(t, err)
	require.Contains(t, out, "hash         0xf287e161d2dcd5e30747d5160dc41cf8e1660f447ffe48c9c9a75d3998ceed59")

	out, err = runApp(t, "genesis")
	require.NoError(t, err)
	require.Contains(t, out, "hash         0xf83723764211a50953756d7351dbff1335511430796f2ef5bbd3da29e0665a41")

	_, err = runApp(t, "--network", "nope", "genesis")
	require.Error(t, err)
}

func TestGenesisCommandConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "networks.toml")
	conf := "[networks.mainnet]\ngenesis_gas_limit = 5000\n\n[networks.devnet]\ngenesis_difficulty = \"0x400000000\"\ngenesis_gas_limit = 5000\n"
	require.NoError(t, os.WriteFile(path, []byte(conf), 0o644))

	out, err := runApp(t, "--config", path, "--network", "devnet", "genesis")
	require.NoError(t, err)
	// devnet inherits the default network's zero mix hash and addresses.
	require.Contains(t, out, "hash         0xf287e161d2dcd5e30747d5160dc41cf8e1660f447ffe48c9c9a75d3998ceed59")
}

func TestSealCommand(t *testing.T) {
	out, err := runApp(t, "seal", "--key", testKey, londonFixture)
	require.NoError(t, err)
	require.Contains(t, out, "signer       "+testSigner)
	// Sealing leaves the signing hash unchanged.
	require.Contains(t, out, "signing hash 0x5412d95d6db48084fe6253cf6c1dee173455dfdddfa2482a5c9130e8d6ec1b25")

	t.Setenv("HEADERHASH_KEY", "")
	_, err = runApp(t, "seal", londonFixture)
	require.Error(t, err)
}

func TestLogFlags(t *testing.T) {
	_, err := runApp(t, "--logformat", "xml", "genesis")
	require.Error(t, err)
	_, err = runApp(t, "--loglevel", "loud", "genesis")
	require.Error(t, err)
}
