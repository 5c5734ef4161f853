// Package params holds the network configuration records that supply
// genesis defaults to the header record.
package params

import (
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	gethparams "github.com/ethereum/go-ethereum/params"
)

// Names of the built-in networks.
const (
	DefaultNetwork = "default"
	MainnetNetwork = "mainnet"
)

// MaxMixHashLength bounds the configured genesis mix hash.
const MaxMixHashLength = 32

// NetworkConfig is a read-only record of genesis default values.
type NetworkConfig struct {
	// Name identifies the network for Lookup.
	Name string

	GenesisPrevHash   common.Hash
	GenesisCoinbase   common.Address
	GenesisDifficulty *big.Int
	GenesisGasLimit   uint64
	GenesisMixHash    []byte
}

// DefaultConfig returns the protocol default genesis values: zero parent
// hash, zero coinbase, difficulty 131072, gas limit 3141592 and a zero mix
// hash.
func DefaultConfig() *NetworkConfig {
	return &NetworkConfig{
		Name:              DefaultNetwork,
		GenesisDifficulty: new(big.Int).Set(gethparams.GenesisDifficulty),
		GenesisGasLimit:   3141592,
		GenesisMixHash:    make([]byte, common.HashLength),
	}
}

// MainnetConfig returns the genesis values of the main network: difficulty
// 2^34 and gas limit 5000.
func MainnetConfig() *NetworkConfig {
	return &NetworkConfig{
		Name:              MainnetNetwork,
		GenesisDifficulty: big.NewInt(0x400000000),
		GenesisGasLimit:   5000,
		GenesisMixHash:    make([]byte, common.HashLength),
	}
}

// Copy returns a deep copy of c.
func (c *NetworkConfig) Copy() *NetworkConfig {
	cpy := *c
	if c.GenesisDifficulty != nil {
		cpy.GenesisDifficulty = new(big.Int).Set(c.GenesisDifficulty)
	}
	cpy.GenesisMixHash = common.CopyBytes(c.GenesisMixHash)
	return &cpy
}

// Validate checks configuration values for correctness.
func (c *NetworkConfig) Validate() error {
	if c.Name == "" {
		return errors.New("config: network name must not be empty")
	}
	if c.GenesisDifficulty == nil {
		return fmt.Errorf("config: %s: genesis difficulty must be set", c.Name)
	}
	if c.GenesisDifficulty.Sign() < 0 {
		return fmt.Errorf("config: %s: negative genesis difficulty %s", c.Name, c.GenesisDifficulty)
	}
	if len(c.GenesisMixHash) > MaxMixHashLength {
		return fmt.Errorf("config: %s: genesis mix hash is %d bytes, max %d", c.Name, len(c.GenesisMixHash), MaxMixHashLength)
	}
	return nil
}

// Networks is a set of network configurations keyed by name.
type Networks map[string]*NetworkConfig

// BuiltinNetworks returns fresh copies of the built-in networks.
func BuiltinNetworks() Networks {
	return Networks{
		DefaultNetwork: DefaultConfig(),
		MainnetNetwork: MainnetConfig(),
	}
}

// Lookup returns a copy of the named network configuration.
func (n Networks) Lookup(name string) (*NetworkConfig, error) {
	cfg, ok := n[name]
	if !ok {
		return nil, fmt.Errorf("config: unknown network %q (have %v)", name, n.Names())
	}
	return cfg.Copy(), nil
}

// Names returns the network names in sorted order.
func (n Networks) Names() []string {
	names := make([]string, 0, len(n))
	for name := range n {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns a copy of the named built-in network configuration.
func Lookup(name string) (*NetworkConfig, error) {
	return BuiltinNetworks().Lookup(name)
}
