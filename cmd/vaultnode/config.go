package main

import (
	"github.com/meverselabs/yieldvault/cmd/config"
	"github.com/pkg/errors"
)

// NodeConfig is the toml config of the vault node
type NodeConfig struct {
	DataDir       string
	StoreDriver   string
	CacheSize     int
	ChainID       uint64
	BlockInterval int64
	LogLevel      string
	API           APIConfig
	Metrics       MetricsConfig
	Genesis       GenesisConfig
}

type APIConfig struct {
	Bind    string
	Workers int
}

type MetricsConfig struct {
	Enabled bool
}

// GenesisConfig lists the contracts deployed in the first block. Tokens are referred by
// their symbol and farms by their name.
type GenesisConfig struct {
	Admin      string
	Tokens     []TokenConfig
	Rates      []RateConfig
	Liquidity  []LiquidityConfig
	Oracle     OracleConfig
	Prices     []PriceConfig
	FeeManager *FeeManagerConfig
	Farms      []FarmConfig
	IBVaults   []IBVaultConfig
	Vaults     []VaultConfig
}

type TokenConfig struct {
	Name   string
	Symbol string
	Supply string
}

type RateConfig struct {
	In   string
	Out  string
	Rate string
}

// LiquidityConfig is sent from the admin to the router
type LiquidityConfig struct {
	Symbol string
	Amount string
}

type PriceConfig struct {
	TokenA string
	TokenB string
	Price  string
}

type OracleConfig struct {
	Feeder           string
	ThresholdPercent uint64
}

type FeeManagerConfig struct {
	DiscountToken      string
	Recipient          string
	BaseFeeBps         uint16
	DiscountFeeBps     uint16
	MinDiscountBalance string
}

type FarmConfig struct {
	Name        string
	RewardToken string
	PerBlock    string
	Pools       []string
}

type IBVaultConfig struct {
	Underlying string
	ShareToken string
}

// VaultConfig is a vault with its worker, Kind is single or dual
type VaultConfig struct {
	Name                  string
	Symbol                string
	Kind                  string
	Principal             string
	Reward                string
	Farm                  string
	PoolID                uint64
	RewardPath            []string
	IBVault               string
	SecondFarm            string
	SecondPoolID          uint64
	SecondRewardPath      []string
	WithdrawalDelayBlocks uint32
	UseFeeManager         bool
}

const (
	KindSingle = "single"
	KindDual   = "dual"
)

// DefaultConfig returns the config used for the missing keys
func DefaultConfig() *NodeConfig {
	return &NodeConfig{
		DataDir:       "./data",
		StoreDriver:   "leveldb",
		CacheSize:     4096,
		ChainID:       1,
		BlockInterval: 1000,
		LogLevel:      "info",
		API: APIConfig{
			Bind:    ":48000",
			Workers: 8,
		},
		Genesis: GenesisConfig{
			Oracle: OracleConfig{
				ThresholdPercent: 10,
			},
		},
	}
}

// LoadNodeConfig reads the file over the default config
func LoadNodeConfig(path string) (*NodeConfig, error) {
	cfg := DefaultConfig()
	if path != "" {
		if err := config.LoadFile(path, cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *NodeConfig) Validate() error {
	if cfg.DataDir == "" && cfg.StoreDriver != "memory" {
		return errors.Wrap(ErrInvalidConfig, "DataDir is empty")
	}
	if cfg.BlockInterval <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "BlockInterval %v", cfg.BlockInterval)
	}
	if cfg.API.Workers <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "API.Workers %v", cfg.API.Workers)
	}
	for _, v := range cfg.Genesis.Vaults {
		if v.Kind != KindSingle && v.Kind != KindDual {
			return errors.Wrapf(ErrInvalidConfig, "vault %v kind %v", v.Name, v.Kind)
		}
		if v.UseFeeManager && cfg.Genesis.FeeManager == nil {
			return errors.Wrapf(ErrInvalidConfig, "vault %v uses a missing fee manager", v.Name)
		}
	}
	return nil
}
