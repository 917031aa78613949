package capability

import (
	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/core/types"
)

// Strategy is the capability a vault needs from the worker that puts its principal to work.
// Every writer must be called by the vault the worker is bound to.
type Strategy interface {
	Stake(cc *types.ContractContext, amt *amount.Amount) error
	Unstake(cc *types.ContractContext, amt *amount.Amount) (*amount.Amount, error)
	Harvest(cc *types.ContractContext) (*amount.Amount, error)
	PendingReward(cc *types.ContractContext) (*amount.Amount, error)
	ClaimReward(cc *types.ContractContext, amt *amount.Amount) error
	EmergencyUnstake(cc *types.ContractContext) (*amount.Amount, error)
}

// StrategyProxy calls a worker contract deployed at Addr
type StrategyProxy struct {
	Addr common.Address
}

var _ Strategy = StrategyProxy{}

func (s StrategyProxy) Stake(cc *types.ContractContext, amt *amount.Amount) error {
	return call(cc, s.Addr, "Stake", amt)
}

func (s StrategyProxy) Unstake(cc *types.ContractContext, amt *amount.Amount) (*amount.Amount, error) {
	return callAmount(cc, s.Addr, "Unstake", amt)
}

func (s StrategyProxy) Harvest(cc *types.ContractContext) (*amount.Amount, error) {
	return callAmount(cc, s.Addr, "Harvest")
}

func (s StrategyProxy) PendingReward(cc *types.ContractContext) (*amount.Amount, error) {
	return callAmount(cc, s.Addr, "PendingReward")
}

func (s StrategyProxy) ClaimReward(cc *types.ContractContext, amt *amount.Amount) error {
	return call(cc, s.Addr, "ClaimReward", amt)
}

func (s StrategyProxy) EmergencyUnstake(cc *types.ContractContext) (*amount.Amount, error) {
	return callAmount(cc, s.Addr, "EmergencyUnstake")
}
