package worker

import (
	"bytes"

	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/contract/capability"
	"github.com/meverselabs/yieldvault/core/types"
	"github.com/pkg/errors"
)

// DualWorker harvests two sources. The principal is staked in the primary farm.
// The harvested vault reward is parked in the intermediary vault and its shares are
// staked in the second farm, which is the second source of reward.
type DualWorker struct {
	base
}

var _ capability.Strategy = &DualWorker{}

func (w *DualWorker) Name() string {
	return "DualWorker"
}

func (w *DualWorker) OnCreate(cc *types.ContractContext, Args []byte) error {
	data := &DualWorkerConstruction{}
	if _, err := data.ReadFrom(bytes.NewReader(Args)); err != nil {
		return err
	}
	if err := w.storeConfig(cc, &data.SingleWorkerConstruction); err != nil {
		return err
	}
	if err := checkPath(data.SecondRewardPath, data.PrincipalToken, data.VaultRewardToken); err != nil {
		return err
	}
	ib := capability.IBVault{Addr: data.IBVault}
	underlying, err := ib.Underlying(cc)
	if err != nil {
		return err
	}
	if underlying != data.VaultRewardToken {
		return errors.Wrapf(capability.ErrInvalidAddress, "intermediary vault of %v", underlying.String())
	}
	shareToken, err := ib.ShareToken(cc)
	if err != nil {
		return err
	}
	if data.SecondRewardPath[0] == shareToken {
		return errors.Wrap(capability.ErrInvalidAddress, "second reward is the intermediary share")
	}
	cc.SetContractData([]byte{tagIBVault}, data.IBVault[:])
	storeSource(cc, secondaryTags, data.SecondFarm, data.SecondPoolID, data.SecondRewardPath)
	return nil
}

func (w *DualWorker) ibVault(cc *types.ContractContext) capability.IBVault {
	return capability.IBVault{Addr: w.IBVault(cc)}
}

func (w *DualWorker) secondary(cc *types.ContractContext) source {
	return loadSource(cc, secondaryTags)
}

func (w *DualWorker) sources(cc *types.ContractContext) []source {
	return []source{w.primary(cc), w.secondary(cc)}
}

func (w *DualWorker) shareToken(cc *types.ContractContext) (capability.Token, error) {
	addr, err := w.ibVault(cc).ShareToken(cc)
	if err != nil {
		return capability.Token{}, err
	}
	return capability.Token{Addr: addr}, nil
}

// park deposits the vault reward held by the worker into the intermediary vault
// and stakes the shares it holds in the second farm
func (w *DualWorker) park(cc *types.ContractContext) error {
	reward := w.vaultReward(cc)
	bal, err := reward.SelfBalance(cc)
	if err != nil {
		return err
	}
	ib := w.ibVault(cc)
	if bal.IsPlus() {
		if err := reward.Approve(cc, ib.Addr, bal); err != nil {
			return err
		}
		if _, err := ib.Deposit(cc, bal); err != nil {
			return err
		}
	}
	share, err := w.shareToken(cc)
	if err != nil {
		return err
	}
	shares, err := share.SelfBalance(cc)
	if err != nil {
		return err
	}
	if !shares.IsPlus() {
		return nil
	}
	second := w.secondary(cc)
	if err := share.Approve(cc, second.farm.Addr, shares); err != nil {
		return err
	}
	if err := second.farm.Deposit(cc, second.pid, shares); err != nil {
		return err
	}
	cc.EmitEvent("Parked", bal, shares)
	return nil
}

// unpark redeems enough intermediary shares to hold at least amt of the vault reward.
// Shares held by the worker go first. When the second farm refuses the withdrawal
// the whole stake is pulled out of it without its reward.
func (w *DualWorker) unpark(cc *types.ContractContext, amt *amount.Amount) error {
	reward := w.vaultReward(cc)
	bal, err := reward.SelfBalance(cc)
	if err != nil {
		return err
	}
	if !bal.Less(amt) {
		return nil
	}
	need := amt.Sub(bal)
	ib := w.ibVault(cc)
	totalToken, err := ib.TotalToken(cc)
	if err != nil {
		return err
	}
	totalShares, err := ib.TotalShares(cc)
	if err != nil {
		return err
	}
	if !totalToken.IsPlus() {
		return errors.Wrap(capability.ErrInsufficientBalance, "intermediary vault is empty")
	}
	share, err := w.shareToken(cc)
	if err != nil {
		return err
	}
	held, err := share.SelfBalance(cc)
	if err != nil {
		return err
	}
	shares := need.MulDivCeil(totalShares, totalToken)
	if held.Less(shares) {
		second := w.secondary(cc)
		staked, _, err := second.farm.UserInfo(cc, second.pid, w.addr)
		if err != nil {
			return err
		}
		take := amount.Min(shares.Sub(held), staked)
		if take.IsPlus() {
			if werr := second.farm.Withdraw(cc, second.pid, take); werr != nil {
				if err := second.farm.EmergencyWithdraw(cc, second.pid); err != nil {
					return err
				}
				cc.EmitEvent("ParkedRecovered", staked, werr.Error())
			}
		}
		if held, err = share.SelfBalance(cc); err != nil {
			return err
		}
		shares = amount.Min(shares, held)
	}
	if !shares.IsPlus() {
		return errors.Wrap(capability.ErrInsufficientBalance, "no parked shares")
	}
	if err := share.Approve(cc, ib.Addr, shares); err != nil {
		return err
	}
	if _, err := ib.Withdraw(cc, shares); err != nil {
		return err
	}
	cc.EmitEvent("Unparked", shares)
	return nil
}

func (w *DualWorker) Stake(cc *types.ContractContext, amt *amount.Amount) error {
	return w.stake(cc, amt, w.sources(cc))
}

func (w *DualWorker) Unstake(cc *types.ContractContext, amt *amount.Amount) (*amount.Amount, error) {
	return w.unstake(cc, amt, w.sources(cc))
}

// Harvest runs the primary and the secondary source one after the other and parks
// the proceeds. A source with nothing accrued adds zero. A failing park leaves the
// vault reward held by the worker.
func (w *DualWorker) Harvest(cc *types.ContractContext) (*amount.Amount, error) {
	if err := w.enter(cc); err != nil {
		return nil, err
	}
	sources := w.sources(cc)
	if err := w.guard(cc, sources); err != nil {
		return nil, err
	}
	credited, err := w.harvestSources(cc, sources)
	if err != nil {
		return nil, err
	}
	if _, err := cc.Exec(cc, w.addr, "Park", nil); err != nil {
		cc.EmitEvent("ParkFailed", err.Error())
	}
	latch.Exit(cc)
	return credited, nil
}

func (w *DualWorker) HarvestSource(cc *types.ContractContext, index uint64) (*amount.Amount, error) {
	return w.harvestSource(cc, w.sources(cc), index)
}

// Park is called by the worker itself after a harvest
func (w *DualWorker) Park(cc *types.ContractContext) error {
	if cc.From() != w.addr {
		return errors.Wrapf(capability.ErrPermissionDenied, "%v is not the worker", cc.From().String())
	}
	return w.park(cc)
}

func (w *DualWorker) PendingReward(cc *types.ContractContext) (*amount.Amount, error) {
	return w.pendingOf(cc, w.sources(cc))
}

// ClaimReward pays the vault out of the reserve, unwinding parked shares as needed
func (w *DualWorker) ClaimReward(cc *types.ContractContext, amt *amount.Amount) error {
	if err := w.enter(cc); err != nil {
		return err
	}
	if amt.IsMinus() {
		return errors.Wrap(capability.ErrInvalidAmount, "negative claim")
	}
	reserve := w.Reserve(cc)
	if reserve.Less(amt) {
		return errors.Wrapf(capability.ErrInsufficientBalance, "reserve %v, claim %v", reserve.String(), amt.String())
	}
	w.setReserve(cc, reserve.Sub(amt))
	if amt.IsPlus() {
		if err := w.unpark(cc, amt); err != nil {
			return err
		}
		if err := w.vaultReward(cc).Transfer(cc, cc.From(), amt); err != nil {
			return err
		}
	}
	cc.EmitEvent("RewardClaimed", amt)
	latch.Exit(cc)
	return nil
}

func (w *DualWorker) EmergencyUnstake(cc *types.ContractContext) (*amount.Amount, error) {
	return w.emergencyUnstake(cc)
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (w *DualWorker) IBVault(cc *types.ContractContext) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagIBVault}))
}

// Parked returns the intermediary shares of the worker, staked in the second farm or held,
// and the vault reward they redeem
func (w *DualWorker) Parked(cc *types.ContractContext) (*amount.Amount, *amount.Amount, error) {
	second := w.secondary(cc)
	staked, _, err := second.farm.UserInfo(cc, second.pid, w.addr)
	if err != nil {
		return nil, nil, err
	}
	share, err := w.shareToken(cc)
	if err != nil {
		return nil, nil, err
	}
	held, err := share.SelfBalance(cc)
	if err != nil {
		return nil, nil, err
	}
	shares := staked.Add(held)
	if !shares.IsPlus() {
		return shares, amount.NewAmount(0, 0), nil
	}
	value, err := w.ibVault(cc).SharesToToken(cc, shares)
	if err != nil {
		return nil, nil, err
	}
	return shares, value, nil
}
