package main

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/common/bin"
	"github.com/meverselabs/yieldvault/common/rlog"
	"github.com/meverselabs/yieldvault/contract"
	"github.com/meverselabs/yieldvault/contract/farm"
	"github.com/meverselabs/yieldvault/contract/feemanager"
	"github.com/meverselabs/yieldvault/contract/ibvault"
	"github.com/meverselabs/yieldvault/contract/priceoracle"
	"github.com/meverselabs/yieldvault/contract/swaprouter"
	"github.com/meverselabs/yieldvault/contract/token"
	"github.com/meverselabs/yieldvault/contract/vault"
	"github.com/meverselabs/yieldvault/contract/worker"
	"github.com/meverselabs/yieldvault/core/chain"
	"github.com/pkg/errors"
)

const genesisFile = "genesis.json"

// Genesis is the address book of the contracts deployed in the first block
type Genesis struct {
	Admin      common.Address            `json:"admin"`
	Tokens     map[string]common.Address `json:"tokens"`
	Router     common.Address            `json:"router"`
	Oracle     common.Address            `json:"oracle"`
	FeeManager common.Address            `json:"feeManager"`
	Viewer     common.Address            `json:"viewer"`
	Farms      map[string]common.Address `json:"farms"`
	IBVaults   map[string]common.Address `json:"ibVaults"`
	Vaults     map[string]*GenesisVault  `json:"vaults"`
}

type GenesisVault struct {
	Vault  common.Address `json:"vault"`
	Worker common.Address `json:"worker"`
}

type genesisBuilder struct {
	cn  *chain.Chain
	cfg *GenesisConfig
	gen *Genesis
}

// DeployGenesis deploys the configured contracts in the pending block of the chain
func DeployGenesis(cn *chain.Chain, cfg *GenesisConfig) (*Genesis, error) {
	admin, err := common.ParseAddress(cfg.Admin)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidConfig, "Genesis.Admin")
	}
	b := &genesisBuilder{
		cn:  cn,
		cfg: cfg,
		gen: &Genesis{
			Admin:    admin,
			Tokens:   map[string]common.Address{},
			Farms:    map[string]common.Address{},
			IBVaults: map[string]common.Address{},
			Vaults:   map[string]*GenesisVault{},
		},
	}
	steps := []func() error{
		b.deployTokens,
		b.deployMarket,
		b.deployFeeManager,
		b.deployFarms,
		b.deployIBVaults,
		b.deployVaults,
		b.deployViewer,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return b.gen, nil
}

func (b *genesisBuilder) deploy(class string, args io.WriterTo) (common.Address, error) {
	classID, err := contract.ClassID(class)
	if err != nil {
		return common.ZeroAddr, err
	}
	var bs []byte
	if args != nil {
		if bs, _, err = bin.WriterToBytes(args); err != nil {
			return common.ZeroAddr, err
		}
	}
	return b.cn.Deploy(b.gen.Admin, classID, bs)
}

func (b *genesisBuilder) exec(to common.Address, method string, args ...interface{}) error {
	if _, err := b.cn.Execute(b.gen.Admin, to, method, args); err != nil {
		return errors.Wrapf(err, "genesis %v", method)
	}
	return nil
}

func (b *genesisBuilder) token(symbol string) (common.Address, error) {
	addr, has := b.gen.Tokens[symbol]
	if !has {
		return common.ZeroAddr, errors.Wrapf(ErrUnknownSymbol, "%v", symbol)
	}
	return addr, nil
}

func (b *genesisBuilder) path(symbols []string) ([]common.Address, error) {
	path := make([]common.Address, 0, len(symbols))
	for _, s := range symbols {
		addr, err := b.token(s)
		if err != nil {
			return nil, err
		}
		path = append(path, addr)
	}
	return path, nil
}

func (b *genesisBuilder) addressOrAdmin(s string) (common.Address, error) {
	if s == "" {
		return b.gen.Admin, nil
	}
	return common.ParseAddress(s)
}

func (b *genesisBuilder) deployTokens() error {
	for _, t := range b.cfg.Tokens {
		supply, err := parseAmount(t.Supply)
		if err != nil {
			return errors.Wrapf(err, "token %v", t.Symbol)
		}
		addr, err := b.deploy(contract.ClassToken, &token.TokenContractConstruction{
			Name:   t.Name,
			Symbol: t.Symbol,
			InitialSupplyMap: map[common.Address]*amount.Amount{
				b.gen.Admin: supply,
			},
		})
		if err != nil {
			return errors.Wrapf(err, "token %v", t.Symbol)
		}
		b.gen.Tokens[t.Symbol] = addr
	}
	return nil
}

// deployMarket deploys the router with its rates and the oracle reading it
func (b *genesisBuilder) deployMarket() error {
	addr, err := b.deploy(contract.ClassRouter, &swaprouter.RouterContractConstruction{
		Owner: b.gen.Admin,
	})
	if err != nil {
		return err
	}
	b.gen.Router = addr

	for _, r := range b.cfg.Rates {
		in, err := b.token(r.In)
		if err != nil {
			return err
		}
		out, err := b.token(r.Out)
		if err != nil {
			return err
		}
		rate, err := parseAmount(r.Rate)
		if err != nil {
			return err
		}
		if err := b.exec(b.gen.Router, "SetRate", in, out, rate); err != nil {
			return err
		}
	}
	for _, l := range b.cfg.Liquidity {
		addr, err := b.token(l.Symbol)
		if err != nil {
			return err
		}
		am, err := parseAmount(l.Amount)
		if err != nil {
			return err
		}
		if err := b.exec(addr, "Transfer", b.gen.Router, am); err != nil {
			return err
		}
	}

	feeder, err := b.addressOrAdmin(b.cfg.Oracle.Feeder)
	if err != nil {
		return errors.Wrap(ErrInvalidConfig, "Oracle.Feeder")
	}
	addr, err = b.deploy(contract.ClassPriceOracle, &priceoracle.PriceOracleContractConstruction{
		Owner:            b.gen.Admin,
		Feeder:           feeder,
		Router:           b.gen.Router,
		ThresholdPercent: b.cfg.Oracle.ThresholdPercent,
	})
	if err != nil {
		return err
	}
	b.gen.Oracle = addr
	return b.feedPrices(feeder)
}

// feedPrices stores the reference prices as the feeder
func (b *genesisBuilder) feedPrices(feeder common.Address) error {
	if len(b.cfg.Prices) == 0 {
		return nil
	}
	as := make([]common.Address, 0, len(b.cfg.Prices))
	bs := make([]common.Address, 0, len(b.cfg.Prices))
	prices := make([]*amount.Amount, 0, len(b.cfg.Prices))
	for _, p := range b.cfg.Prices {
		a, err := b.token(p.TokenA)
		if err != nil {
			return err
		}
		bt, err := b.token(p.TokenB)
		if err != nil {
			return err
		}
		price, err := parseAmount(p.Price)
		if err != nil {
			return err
		}
		as = append(as, a)
		bs = append(bs, bt)
		prices = append(prices, price)
	}
	if _, err := b.cn.Execute(feeder, b.gen.Oracle, "SetPrices", []interface{}{as, bs, prices}); err != nil {
		return errors.Wrap(err, "genesis SetPrices")
	}
	return nil
}

func (b *genesisBuilder) deployFeeManager() error {
	fc := b.cfg.FeeManager
	if fc == nil {
		return nil
	}
	var discount common.Address
	if fc.DiscountToken != "" {
		addr, err := b.token(fc.DiscountToken)
		if err != nil {
			return err
		}
		discount = addr
	}
	recipient, err := b.addressOrAdmin(fc.Recipient)
	if err != nil {
		return errors.Wrap(ErrInvalidConfig, "FeeManager.Recipient")
	}
	minBalance, err := parseAmount(fc.MinDiscountBalance)
	if err != nil {
		return err
	}
	addr, err := b.deploy(contract.ClassFeeManager, &feemanager.FeeManagerContractConstruction{
		Owner:         b.gen.Admin,
		DiscountToken: discount,
		FeeRecipient:  recipient,
		FeeSchedule: feemanager.FeeSchedule{
			BaseFeeBps:         fc.BaseFeeBps,
			DiscountFeeBps:     fc.DiscountFeeBps,
			MinDiscountBalance: minBalance,
		},
	})
	if err != nil {
		return err
	}
	b.gen.FeeManager = addr
	return nil
}

// deployFarms deploys the farms as minters of their reward token and adds the pools in order
func (b *genesisBuilder) deployFarms() error {
	for _, f := range b.cfg.Farms {
		reward, err := b.token(f.RewardToken)
		if err != nil {
			return err
		}
		perBlock, err := parseAmount(f.PerBlock)
		if err != nil {
			return err
		}
		addr, err := b.deploy(contract.ClassFarm, &farm.FarmContractConstruction{
			Owner:         b.gen.Admin,
			FarmToken:     reward,
			TokenPerBlock: perBlock,
		})
		if err != nil {
			return errors.Wrapf(err, "farm %v", f.Name)
		}
		if err := b.exec(reward, "SetMinter", addr, true); err != nil {
			return err
		}
		for _, p := range f.Pools {
			want, err := b.token(p)
			if err != nil {
				return err
			}
			if err := b.exec(addr, "Add", uint32(100), want, false); err != nil {
				return err
			}
		}
		b.gen.Farms[f.Name] = addr
	}
	return nil
}

// deployIBVaults keys the vaults by the symbol of the share token
func (b *genesisBuilder) deployIBVaults() error {
	for _, v := range b.cfg.IBVaults {
		underlying, err := b.token(v.Underlying)
		if err != nil {
			return err
		}
		share, err := b.token(v.ShareToken)
		if err != nil {
			return err
		}
		addr, err := b.deploy(contract.ClassIBVault, &ibvault.IBVaultContractConstruction{
			Underlying: underlying,
			ShareToken: share,
		})
		if err != nil {
			return err
		}
		if err := b.exec(share, "SetMinter", addr, true); err != nil {
			return err
		}
		b.gen.IBVaults[v.ShareToken] = addr
	}
	return nil
}

func (b *genesisBuilder) farm(name string) (common.Address, error) {
	addr, has := b.gen.Farms[name]
	if !has {
		return common.ZeroAddr, errors.Wrapf(ErrUnknownFarm, "%v", name)
	}
	return addr, nil
}

func (b *genesisBuilder) deployWorker(v *VaultConfig, principal common.Address, reward common.Address) (common.Address, error) {
	farmAddr, err := b.farm(v.Farm)
	if err != nil {
		return common.ZeroAddr, err
	}
	path, err := b.path(v.RewardPath)
	if err != nil {
		return common.ZeroAddr, err
	}
	single := worker.SingleWorkerConstruction{
		Owner:            b.gen.Admin,
		Oracle:           b.gen.Oracle,
		Router:           b.gen.Router,
		PrincipalToken:   principal,
		VaultRewardToken: reward,
		Farm:             farmAddr,
		PoolID:           v.PoolID,
		RewardPath:       path,
	}
	if v.Kind == KindSingle {
		return b.deploy(contract.ClassSingleWorker, &single)
	}

	ib, has := b.gen.IBVaults[v.IBVault]
	if !has {
		return common.ZeroAddr, errors.Wrapf(ErrUnknownIBVault, "%v", v.IBVault)
	}
	secondFarm, err := b.farm(v.SecondFarm)
	if err != nil {
		return common.ZeroAddr, err
	}
	secondPath, err := b.path(v.SecondRewardPath)
	if err != nil {
		return common.ZeroAddr, err
	}
	return b.deploy(contract.ClassDualWorker, &worker.DualWorkerConstruction{
		SingleWorkerConstruction: single,
		IBVault:                  ib,
		SecondFarm:               secondFarm,
		SecondPoolID:             v.SecondPoolID,
		SecondRewardPath:         secondPath,
	})
}

func (b *genesisBuilder) deployVaults() error {
	for i := range b.cfg.Vaults {
		v := &b.cfg.Vaults[i]
		principal, err := b.token(v.Principal)
		if err != nil {
			return err
		}
		reward, err := b.token(v.Reward)
		if err != nil {
			return err
		}
		workerAddr, err := b.deployWorker(v, principal, reward)
		if err != nil {
			return errors.Wrapf(err, "vault %v", v.Name)
		}
		var fm common.Address
		if v.UseFeeManager {
			fm = b.gen.FeeManager
		}
		vaultAddr, err := b.deploy(contract.ClassVault, &vault.VaultContractConstruction{
			Owner:                 b.gen.Admin,
			Strategy:              workerAddr,
			PrincipalToken:        principal,
			RewardToken:           reward,
			FeeManager:            fm,
			WithdrawalDelayBlocks: v.WithdrawalDelayBlocks,
			Name:                  v.Name,
			Symbol:                v.Symbol,
		})
		if err != nil {
			return errors.Wrapf(err, "vault %v", v.Name)
		}
		if err := b.exec(workerAddr, "SetVault", vaultAddr); err != nil {
			return err
		}
		b.gen.Vaults[v.Name] = &GenesisVault{
			Vault:  vaultAddr,
			Worker: workerAddr,
		}
		logger := rlog.GetForComponent("genesis")
		logger.Info().
			Str("vault", v.Name).
			Str("kind", v.Kind).
			Str("address", vaultAddr.String()).
			Msg("vault deployed")
	}
	return nil
}

func (b *genesisBuilder) deployViewer() error {
	addr, err := b.deploy(contract.ClassVaultViewer, nil)
	if err != nil {
		return err
	}
	b.gen.Viewer = addr
	return nil
}

func parseAmount(s string) (*amount.Amount, error) {
	if s == "" {
		return amount.NewAmount(0, 0), nil
	}
	am, err := amount.ParseAmount(s)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidConfig, "amount %v", s)
	}
	return am, nil
}

// SaveGenesis writes the address book into the data dir
func SaveGenesis(dir string, gen *Genesis) error {
	bs, err := json.MarshalIndent(gen, "", "\t")
	if err != nil {
		return errors.WithStack(err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(os.WriteFile(filepath.Join(dir, genesisFile), bs, 0o644))
}

// LoadGenesis reads the address book written by SaveGenesis
func LoadGenesis(dir string) (*Genesis, error) {
	bs, err := os.ReadFile(filepath.Join(dir, genesisFile))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	gen := &Genesis{}
	if err := json.Unmarshal(bs, gen); err != nil {
		return nil, errors.WithStack(err)
	}
	if gen.Viewer == common.ZeroAddr {
		return nil, errors.WithStack(ErrNoViewer)
	}
	return gen, nil
}
