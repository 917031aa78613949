package capability

import (
	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/core/types"
	"github.com/pkg/errors"
)

// Farm calls a staking farm contract
type Farm struct {
	Addr common.Address
}

func (f Farm) Deposit(cc *types.ContractContext, pid uint64, amt *amount.Amount) error {
	return call(cc, f.Addr, "Deposit", pid, amt)
}

func (f Farm) Withdraw(cc *types.ContractContext, pid uint64, amt *amount.Amount) error {
	return call(cc, f.Addr, "Withdraw", pid, amt)
}

func (f Farm) EmergencyWithdraw(cc *types.ContractContext, pid uint64) error {
	return call(cc, f.Addr, "EmergencyWithdraw", pid)
}

func (f Farm) PendingReward(cc *types.ContractContext, pid uint64, who common.Address) (*amount.Amount, error) {
	return callAmount(cc, f.Addr, "PendingReward", pid, who)
}

func (f Farm) RewardToken(cc *types.ContractContext) (common.Address, error) {
	return callAddress(cc, f.Addr, "FarmToken")
}

func (f Farm) UserInfo(cc *types.ContractContext, pid uint64, who common.Address) (*amount.Amount, *amount.Amount, error) {
	is, err := cc.Exec(cc, f.Addr, "UserInfo", []interface{}{pid, who})
	if err != nil {
		return nil, nil, err
	}
	if len(is) != 2 {
		return nil, nil, errors.Wrapf(ErrInvalidResult, "UserInfo returns %v values", len(is))
	}
	amt, ok1 := is[0].(*amount.Amount)
	debt, ok2 := is[1].(*amount.Amount)
	if !ok1 || !ok2 {
		return nil, nil, errors.Wrap(ErrInvalidResult, "UserInfo")
	}
	return amt, debt, nil
}
