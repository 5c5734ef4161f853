package params

import (
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/common"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.GenesisDifficulty.Cmp(big.NewInt(131072)) != 0 {
		t.Errorf("difficulty = %s, want 131072", cfg.GenesisDifficulty)
	}
	if cfg.GenesisGasLimit != 3141592 {
		t.Errorf("gas limit = %d, want 3141592", cfg.GenesisGasLimit)
	}
	if cfg.GenesisPrevHash != (common.Hash{}) || cfg.GenesisCoinbase != (common.Address{}) {
		t.Error("prev hash and coinbase should be zero")
	}
	if len(cfg.GenesisMixHash) != 32 {
		t.Errorf("mix hash length = %d, want 32", len(cfg.GenesisMixHash))
	}
}

func TestMainnetConfig(t *testing.T) {
	cfg := MainnetConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("mainnet config invalid: %v", err)
	}
	if cfg.GenesisDifficulty.Cmp(new(big.Int).Lsh(big.NewInt(1), 34)) != 0 {
		t.Errorf("difficulty = %s, want 2^34", cfg.GenesisDifficulty)
	}
	if cfg.GenesisGasLimit != 5000 {
		t.Errorf("gas limit = %d, want 5000", cfg.GenesisGasLimit)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*NetworkConfig)
		errMsg string
	}{
		{"empty name", func(c *NetworkConfig) { c.Name = "" }, "name"},
		{"nil difficulty", func(c *NetworkConfig) { c.GenesisDifficulty = nil }, "difficulty"},
		{"negative difficulty", func(c *NetworkConfig) { c.GenesisDifficulty = big.NewInt(-1) }, "negative"},
		{"long mix hash", func(c *NetworkConfig) { c.GenesisMixHash = make([]byte, 33) }, "mix hash"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tt.errMsg)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	cfg, err := Lookup(MainnetNetwork)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != MainnetNetwork {
		t.Fatalf("name = %q", cfg.Name)
	}
	if _, err := Lookup("nope"); err == nil {
		t.Fatal("expected error for unknown network")
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	nets := BuiltinNetworks()
	a, _ := nets.Lookup(DefaultNetwork)
	a.GenesisDifficulty.SetInt64(1)
	a.GenesisMixHash[0] = 0xff

	b, _ := nets.Lookup(DefaultNetwork)
	if b.GenesisDifficulty.Int64() != 131072 || b.GenesisMixHash[0] != 0 {
		t.Fatal("mutating a looked-up config changed the registry")
	}
}

func TestLoadConfig(t *testing.T) {
	nets, err := LoadConfig(filepath.Join("testdata", "networks.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(nets.Names(), ","); got != "bigdiff,default,devnet,mainnet" {
		t.Fatalf("names = %s", got)
	}

	dev, _ := nets.Lookup("devnet")
	if dev.GenesisCoinbase != common.HexToAddress("0x8888f1f195afa192cfee860698584c030f4c9db1") {
		t.Errorf("devnet coinbase = %s", dev.GenesisCoinbase.Hex())
	}
	if dev.GenesisDifficulty.Int64() != 0x20000 || dev.GenesisGasLimit != 8000000 {
		t.Errorf("devnet difficulty/gas = %s/%d", dev.GenesisDifficulty, dev.GenesisGasLimit)
	}
	// Unset keys inherit the default network.
	if len(dev.GenesisMixHash) != 32 {
		t.Errorf("devnet mix hash length = %d, want 32", len(dev.GenesisMixHash))
	}

	// Overriding a built-in keeps its other values.
	mn, _ := nets.Lookup(MainnetNetwork)
	if mn.GenesisDifficulty.Cmp(big.NewInt(0x400000000)) != 0 {
		t.Errorf("mainnet difficulty = %s", mn.GenesisDifficulty)
	}

	big1, _ := nets.Lookup("bigdiff")
	if big1.GenesisDifficulty.BitLen() != 256 {
		t.Errorf("bigdiff difficulty bitlen = %d", big1.GenesisDifficulty.BitLen())
	}
	if big1.GenesisPrevHash[0] != 0x01 || len(big1.GenesisMixHash) != 0 {
		t.Errorf("bigdiff prev/mix = %x/%x", big1.GenesisPrevHash, big1.GenesisMixHash)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "[networks.x\n"},
		{"unknown key", "[networks.x]\ngenesis_nonce = \"0x00\"\n"},
		{"bad prev hash", "[networks.x]\ngenesis_prev_hash = \"0x01\"\n"},
		{"bad coinbase", "[networks.x]\ngenesis_coinbase = \"0x1234\"\n"},
		{"bad difficulty", "[networks.x]\ngenesis_difficulty = \"-5\"\n"},
		{"bad mix hash", "[networks.x]\ngenesis_mix_hash = \"zz\"\n"},
		{"long mix hash", "[networks.x]\ngenesis_mix_hash = \"0x" + strings.Repeat("00", 33) + "\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseConfig([]byte(tt.data)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestConfigRoundTrip(t *testing.T) {
	in := configFile{Networks: map[string]networkFile{
		"roundtrip": {
			GenesisPrevHash:   common.Hash{0xaa}.Hex(),
			GenesisCoinbase:   common.Address{0xbb}.Hex(),
			GenesisDifficulty: "12345",
			GenesisGasLimit:   42,
			GenesisMixHash:    "0x01",
		},
	}}
	path := filepath.Join(t.TempDir(), "config.toml")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := toml.NewEncoder(f).Encode(in); err != nil {
		t.Fatal(err)
	}
	f.Close()

	nets, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := nets.Lookup("roundtrip")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.GenesisPrevHash != (common.Hash{0xaa}) || cfg.GenesisCoinbase != (common.Address{0xbb}) {
		t.Errorf("hash/coinbase = %s/%s", cfg.GenesisPrevHash.Hex(), cfg.GenesisCoinbase.Hex())
	}
	if cfg.GenesisDifficulty.Int64() != 12345 || cfg.GenesisGasLimit != 42 {
		t.Errorf("difficulty/gas = %s/%d", cfg.GenesisDifficulty, cfg.GenesisGasLimit)
	}
	if len(cfg.GenesisMixHash) != 1 || cfg.GenesisMixHash[0] != 1 {
		t.Errorf("mix hash = %x", cfg.GenesisMixHash)
	}
}
