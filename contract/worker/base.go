package worker

import (
	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/contract/capability"
	"github.com/meverselabs/yieldvault/core/types"
	"github.com/pkg/errors"
)

var (
	ownable  = capability.Ownable{Tag: tagOwner}
	pausable = capability.Pausable{Tag: tagPause}
	latch    = capability.ReentrancyGuard{Tag: tagLatch}
)

// base keeps what both workers share: the principal stake in the primary farm,
// the binding to the vault and the reserve of harvested vault reward
type base struct {
	addr   common.Address
	master common.Address
}

func (w *base) Address() common.Address {
	return w.addr
}

func (w *base) Master() common.Address {
	return w.master
}

func (w *base) Init(addr common.Address, master common.Address) {
	w.addr = addr
	w.master = master
}

func checkPath(path []common.Address, principal common.Address, vaultReward common.Address) error {
	if len(path) < 2 {
		return errors.Wrapf(capability.ErrInvalidLength, "reward path of %v tokens", len(path))
	}
	if path[len(path)-1] != vaultReward {
		return errors.Wrapf(capability.ErrInvalidAddress, "reward path ends with %v", path[len(path)-1].String())
	}
	if path[0] == principal || path[0] == vaultReward {
		return errors.Wrapf(capability.ErrInvalidAddress, "reward path starts with %v", path[0].String())
	}
	return nil
}

func (w *base) storeConfig(cc *types.ContractContext, data *SingleWorkerConstruction) error {
	if data.PrincipalToken == data.VaultRewardToken {
		return errors.Wrap(capability.ErrInvalidAddress, "principal token is the reward token")
	}
	if err := checkPath(data.RewardPath, data.PrincipalToken, data.VaultRewardToken); err != nil {
		return err
	}
	ownable.SetOwner(cc, data.Owner)
	cc.SetContractData([]byte{tagOracle}, data.Oracle[:])
	cc.SetContractData([]byte{tagRouter}, data.Router[:])
	cc.SetContractData([]byte{tagPrincipalToken}, data.PrincipalToken[:])
	cc.SetContractData([]byte{tagVaultRewardToken}, data.VaultRewardToken[:])
	storeSource(cc, primaryTags, data.Farm, data.PoolID, data.RewardPath)
	return nil
}

func (w *base) oracle(cc *types.ContractContext) capability.PriceGuard {
	return capability.PriceGuard{Addr: common.BytesToAddress(cc.ContractData([]byte{tagOracle}))}
}

func (w *base) router(cc *types.ContractContext) capability.Router {
	return capability.Router{Addr: common.BytesToAddress(cc.ContractData([]byte{tagRouter}))}
}

func (w *base) principal(cc *types.ContractContext) capability.Token {
	return capability.Token{Addr: w.PrincipalToken(cc)}
}

func (w *base) vaultReward(cc *types.ContractContext) capability.Token {
	return capability.Token{Addr: w.VaultRewardToken(cc)}
}

func (w *base) primary(cc *types.ContractContext) source {
	return loadSource(cc, primaryTags)
}

func (w *base) setReserve(cc *types.ContractContext, amt *amount.Amount) {
	if amt.IsZero() {
		cc.SetContractData([]byte{tagReserve}, nil)
		return
	}
	cc.SetContractData([]byte{tagReserve}, amt.Bytes())
}

// enter admits only the bound vault and takes the latch
func (w *base) enter(cc *types.ContractContext) error {
	vault := w.Vault(cc)
	if vault == common.ZeroAddr || cc.From() != vault {
		return errors.Wrapf(capability.ErrPermissionDenied, "%v is not the vault", cc.From().String())
	}
	return latch.Enter(cc)
}

// guard fails when the oracle reports any swap path of the sources over its threshold
func (w *base) guard(cc *types.ContractContext, sources []source) error {
	paths := make([][]common.Address, 0, len(sources))
	for _, s := range sources {
		paths = append(paths, s.path)
	}
	return w.oracle(cc).CheckPaths(cc, paths...)
}

func (w *base) stake(cc *types.ContractContext, amt *amount.Amount, sources []source) error {
	if err := w.enter(cc); err != nil {
		return err
	}
	if err := pausable.WhenNotPaused(cc); err != nil {
		return err
	}
	if err := w.guard(cc, sources); err != nil {
		return err
	}
	if !amt.IsPlus() {
		latch.Exit(cc)
		return nil
	}
	principal := w.principal(cc)
	if err := principal.TransferFrom(cc, cc.From(), w.addr, amt); err != nil {
		return err
	}
	primary := w.primary(cc)
	if err := principal.Approve(cc, primary.farm.Addr, amt); err != nil {
		return err
	}
	if err := primary.farm.Deposit(cc, primary.pid, amt); err != nil {
		return err
	}
	cc.EmitEvent("Staked", amt)
	latch.Exit(cc)
	return nil
}

func (w *base) unstake(cc *types.ContractContext, amt *amount.Amount, sources []source) (*amount.Amount, error) {
	if err := w.enter(cc); err != nil {
		return nil, err
	}
	if err := w.guard(cc, sources); err != nil {
		return nil, err
	}
	if !amt.IsPlus() {
		latch.Exit(cc)
		return amount.NewAmount(0, 0), nil
	}
	primary := w.primary(cc)
	if err := primary.farm.Withdraw(cc, primary.pid, amt); err != nil {
		return nil, err
	}
	if err := w.principal(cc).Transfer(cc, cc.From(), amt); err != nil {
		return nil, err
	}
	cc.EmitEvent("Unstaked", amt)
	latch.Exit(cc)
	return amt, nil
}

// harvestSources runs every source in a call of its own and adds the vault reward they
// swapped to the reserve. A failing source is reverted alone and reported by SourceFailed.
func (w *base) harvestSources(cc *types.ContractContext, sources []source) (*amount.Amount, error) {
	credited := amount.NewAmount(0, 0)
	for i, s := range sources {
		is, err := cc.Exec(cc, w.addr, "HarvestSource", []interface{}{uint64(i)})
		if err != nil {
			cc.EmitEvent("SourceFailed", s.farm.Addr, s.pid, err.Error())
			continue
		}
		if len(is) == 0 {
			return nil, errors.Wrap(capability.ErrInvalidResult, "HarvestSource returns nothing")
		}
		got, ok := is[0].(*amount.Amount)
		if !ok {
			return nil, errors.Wrapf(capability.ErrInvalidResult, "HarvestSource returns %T", is[0])
		}
		credited = credited.Add(got)
	}
	if credited.IsPlus() {
		w.setReserve(cc, w.Reserve(cc).Add(credited))
	}
	cc.EmitEvent("Harvested", credited)
	return credited, nil
}

// harvestSource claims and swaps the source at index, the worker is its only caller
func (w *base) harvestSource(cc *types.ContractContext, sources []source, index uint64) (*amount.Amount, error) {
	if cc.From() != w.addr {
		return nil, errors.Wrapf(capability.ErrPermissionDenied, "%v is not the worker", cc.From().String())
	}
	if index >= uint64(len(sources)) {
		return nil, errors.Wrapf(capability.ErrInvalidLength, "source %v of %v", index, len(sources))
	}
	return sources[index].harvest(cc, w.router(cc))
}

// pendingOf quotes the unswapped reward of the sources in the vault reward token.
// Reward tokens shared by two sources count their held balance once.
func (w *base) pendingOf(cc *types.ContractContext, sources []source) (*amount.Amount, error) {
	router := w.router(cc)
	total := amount.NewAmount(0, 0)
	seen := map[common.Address]bool{}
	for _, s := range sources {
		pending, held, err := s.unswapped(cc)
		if err != nil {
			return nil, err
		}
		if seen[s.path[0]] {
			held = amount.NewAmount(0, 0)
		}
		seen[s.path[0]] = true
		unswapped := pending.Add(held)
		if !unswapped.IsPlus() {
			continue
		}
		quoted, err := router.Quote(cc, unswapped, s.path)
		if err != nil {
			return nil, err
		}
		total = total.Add(quoted)
	}
	return total, nil
}

func (w *base) emergencyUnstake(cc *types.ContractContext) (*amount.Amount, error) {
	if err := w.enter(cc); err != nil {
		return nil, err
	}
	primary := w.primary(cc)
	staked, _, err := primary.farm.UserInfo(cc, primary.pid, w.addr)
	if err != nil {
		return nil, err
	}
	if staked.IsPlus() {
		if err := primary.farm.EmergencyWithdraw(cc, primary.pid); err != nil {
			return nil, err
		}
	}
	principal := w.principal(cc)
	bal, err := principal.SelfBalance(cc)
	if err != nil {
		return nil, err
	}
	if bal.IsPlus() {
		if err := principal.Transfer(cc, cc.From(), bal); err != nil {
			return nil, err
		}
	}
	cc.EmitEvent("EmergencyUnstaked", bal)
	latch.Exit(cc)
	return bal, nil
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (w *base) Owner(cc *types.ContractContext) common.Address {
	return ownable.Owner(cc)
}

func (w *base) Vault(cc *types.ContractContext) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagVault}))
}

func (w *base) IsPaused(cc *types.ContractContext) bool {
	return pausable.IsPaused(cc)
}

func (w *base) Oracle(cc *types.ContractContext) common.Address {
	return w.oracle(cc).Addr
}

func (w *base) Router(cc *types.ContractContext) common.Address {
	return w.router(cc).Addr
}

func (w *base) PrincipalToken(cc *types.ContractContext) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagPrincipalToken}))
}

func (w *base) VaultRewardToken(cc *types.ContractContext) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagVaultRewardToken}))
}

// Reserve is the harvested vault reward not claimed by the vault yet
func (w *base) Reserve(cc *types.ContractContext) *amount.Amount {
	return amount.NewAmountFromBytes(cc.ContractData([]byte{tagReserve}))
}

// TotalStaked is the principal staked in the primary farm
func (w *base) TotalStaked(cc *types.ContractContext) (*amount.Amount, error) {
	primary := w.primary(cc)
	staked, _, err := primary.farm.UserInfo(cc, primary.pid, w.addr)
	return staked, err
}

//////////////////////////////////////////////////
// Public Writer only owner Functions
//////////////////////////////////////////////////

// SetVault binds the worker to its vault once
func (w *base) SetVault(cc *types.ContractContext, vault common.Address) error {
	if err := ownable.OnlyOwner(cc); err != nil {
		return err
	}
	if w.Vault(cc) != common.ZeroAddr {
		return errors.Wrapf(capability.ErrAlreadyBound, "bound to %v", w.Vault(cc).String())
	}
	if vault == common.ZeroAddr {
		return errors.Wrap(capability.ErrInvalidAddress, "vault")
	}
	cc.SetContractData([]byte{tagVault}, vault[:])
	cc.EmitEvent("VaultBound", vault)
	return nil
}

func (w *base) Pause(cc *types.ContractContext) error {
	if err := ownable.OnlyOwner(cc); err != nil {
		return err
	}
	pausable.SetPaused(cc, true)
	return nil
}

func (w *base) Unpause(cc *types.ContractContext) error {
	if err := ownable.OnlyOwner(cc); err != nil {
		return err
	}
	pausable.SetPaused(cc, false)
	return nil
}

// SetMinSwap sets the reward balance each source holds before it is swapped
func (w *base) SetMinSwap(cc *types.ContractContext, minPrimary *amount.Amount, minSecondary *amount.Amount) error {
	if err := ownable.OnlyOwner(cc); err != nil {
		return err
	}
	if minPrimary.IsMinus() || minSecondary.IsMinus() {
		return errors.Wrap(capability.ErrInvalidAmount, "min swap")
	}
	cc.SetContractData([]byte{primaryTags.minSwap}, minPrimary.Bytes())
	cc.SetContractData([]byte{secondaryTags.minSwap}, minSecondary.Bytes())
	return nil
}

func (w *base) TransferOwnership(cc *types.ContractContext, newOwner common.Address) error {
	return ownable.TransferOwnership(cc, newOwner)
}
