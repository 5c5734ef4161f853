package params

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/eth2030/headerhash/log"
)

// networkFile is the on-disk form of a network configuration. Hashes and
// addresses are 0x-prefixed hex; the difficulty is a decimal or 0x-prefixed
// hex string so that it may exceed 64 bits.
type networkFile struct {
	GenesisPrevHash   string `toml:"genesis_prev_hash"`
	GenesisCoinbase   string `toml:"genesis_coinbase"`
	GenesisDifficulty string `toml:"genesis_difficulty"`
	GenesisGasLimit   uint64 `toml:"genesis_gas_limit"`
	GenesisMixHash    string `toml:"genesis_mix_hash"`
}

type configFile struct {
	Networks map[string]networkFile `toml:"networks"`
}

// LoadConfig reads a TOML network configuration file. See ParseConfig.
func LoadConfig(path string) (Networks, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	nets, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Module("params").Debug("loaded network config", "path", path, "networks", nets.Names())
	return nets, nil
}

// ParseConfig decodes TOML network tables and layers them over the built-in
// networks. Keys missing from a table inherit the default network's values;
// unknown keys are rejected.
func ParseConfig(data []byte) (Networks, error) {
	var file configFile
	md, err := toml.Decode(string(data), &file)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config: unknown keys: %s", strings.Join(keys, ", "))
	}

	nets := BuiltinNetworks()
	for name, nf := range file.Networks {
		base, ok := nets[name]
		if !ok {
			base = DefaultConfig()
		}
		cfg, err := nf.apply(base.Copy(), md, name)
		if err != nil {
			return nil, err
		}
		cfg.Name = name
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		nets[name] = cfg
	}
	return nets, nil
}

func (nf networkFile) apply(cfg *NetworkConfig, md toml.MetaData, name string) (*NetworkConfig, error) {
	defined := func(key string) bool {
		return md.IsDefined("networks", name, key)
	}
	if defined("genesis_prev_hash") {
		b, err := hexutil.Decode(nf.GenesisPrevHash)
		if err != nil || len(b) != common.HashLength {
			return nil, fmt.Errorf("config: %s: invalid genesis_prev_hash %q", name, nf.GenesisPrevHash)
		}
		cfg.GenesisPrevHash = common.BytesToHash(b)
	}
	if defined("genesis_coinbase") {
		if !common.IsHexAddress(nf.GenesisCoinbase) {
			return nil, fmt.Errorf("config: %s: invalid genesis_coinbase %q", name, nf.GenesisCoinbase)
		}
		cfg.GenesisCoinbase = common.HexToAddress(nf.GenesisCoinbase)
	}
	if defined("genesis_difficulty") {
		d, ok := math.ParseBig256(nf.GenesisDifficulty)
		if !ok {
			return nil, fmt.Errorf("config: %s: invalid genesis_difficulty %q", name, nf.GenesisDifficulty)
		}
		cfg.GenesisDifficulty = d
	}
	if defined("genesis_gas_limit") {
		cfg.GenesisGasLimit = nf.GenesisGasLimit
	}
	if defined("genesis_mix_hash") {
		b, err := hexutil.Decode(nf.GenesisMixHash)
		if err != nil {
			return nil, fmt.Errorf("config: %s: invalid genesis_mix_hash %q: %w", name, nf.GenesisMixHash, err)
		}
		cfg.GenesisMixHash = b
	}
	return cfg, nil
}
