package worker

import (
	"bytes"

	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/contract/capability"
	"github.com/meverselabs/yieldvault/core/types"
	"github.com/pkg/errors"
)

// SingleWorker stakes the principal of its vault into one farm pool and swaps the farm reward
// into the vault reward token, which it keeps as reserve until the vault claims it
type SingleWorker struct {
	base
}

var _ capability.Strategy = &SingleWorker{}

func (w *SingleWorker) Name() string {
	return "SingleWorker"
}

func (w *SingleWorker) OnCreate(cc *types.ContractContext, Args []byte) error {
	data := &SingleWorkerConstruction{}
	if _, err := data.ReadFrom(bytes.NewReader(Args)); err != nil {
		return err
	}
	return w.storeConfig(cc, data)
}

func (w *SingleWorker) sources(cc *types.ContractContext) []source {
	return []source{w.primary(cc)}
}

func (w *SingleWorker) Stake(cc *types.ContractContext, amt *amount.Amount) error {
	return w.stake(cc, amt, w.sources(cc))
}

func (w *SingleWorker) Unstake(cc *types.ContractContext, amt *amount.Amount) (*amount.Amount, error) {
	return w.unstake(cc, amt, w.sources(cc))
}

func (w *SingleWorker) Harvest(cc *types.ContractContext) (*amount.Amount, error) {
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
	latch.Exit(cc)
	return credited, nil
}

func (w *SingleWorker) HarvestSource(cc *types.ContractContext, index uint64) (*amount.Amount, error) {
	return w.harvestSource(cc, w.sources(cc), index)
}

func (w *SingleWorker) PendingReward(cc *types.ContractContext) (*amount.Amount, error) {
	return w.pendingOf(cc, w.sources(cc))
}

// ClaimReward pays the vault out of the reserve
func (w *SingleWorker) ClaimReward(cc *types.ContractContext, amt *amount.Amount) error {
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
		if err := w.vaultReward(cc).Transfer(cc, cc.From(), amt); err != nil {
			return err
		}
	}
	cc.EmitEvent("RewardClaimed", amt)
	latch.Exit(cc)
	return nil
}

func (w *SingleWorker) EmergencyUnstake(cc *types.ContractContext) (*amount.Amount, error) {
	return w.emergencyUnstake(cc)
}
